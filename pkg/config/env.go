package config

const (
	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvLeadStore      = "LEAD_STORE"
	EnvBadgerPath     = "BADGER_PATH"
	EnvLeadStorageKey = "LEAD_STORAGE_KEY"

	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvRelayURL     = "RELAY_URL"
	EnvRelayTimeout = "RELAY_TIMEOUT"

	EnvBookingsInbox    = "BOOKINGS_INBOX"
	EnvBusinessPhone    = "BUSINESS_PHONE"
	EnvBusinessEmail    = "BUSINESS_EMAIL"
	EnvServiceArea      = "SERVICE_AREA"
	EnvBusinessTimeZone = "BUSINESS_TIME_ZONE"
	EnvSiteURL          = "SITE_URL"

	EnvShareEnabled = "SHARE_ENABLED"
	EnvShareTopic   = "SHARE_TOPIC"

	EnvSMTPEnabled  = "SMTP_ENABLED"
	EnvSMTPHost     = "SMTP_HOST"
	EnvSMTPPort     = "SMTP_PORT"
	EnvSMTPUsername = "SMTP_USERNAME"
	EnvSMTPPassword = "SMTP_PASSWORD"
	EnvSMTPFrom     = "SMTP_FROM"

	EnvSMSEnabled       = "SMS_ENABLED"
	EnvTwilioAccountSID = "TWILIO_ACCOUNT_SID"
	EnvTwilioAuthToken  = "TWILIO_AUTH_TOKEN"
	EnvTwilioFromNumber = "TWILIO_FROM_NUMBER"
	EnvTwilioBaseURL    = "TWILIO_BASE_URL"
	EnvOperatorPhone    = "OPERATOR_PHONE"

	EnvOfferStore    = "OFFER_STORE"
	EnvOfferDuration = "OFFER_DURATION"
	EnvRedisAddr     = "REDIS_ADDR"
	EnvRedisPassword = "REDIS_PASSWORD"
	EnvRedisDB       = "REDIS_DB"

	EnvCORSAllowedOrigins = "CORS_ALLOWED_ORIGINS"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"
)
