package config

import "time"

const (
	LeadStoreBadger = "badger"
	LeadStoreMongo  = "mongo"
	LeadStoreMemory = "memory"

	OfferStoreRedis  = "redis"
	OfferStoreMemory = "memory"
)

const (
	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultLeadStore      = LeadStoreBadger
	DefaultBadgerPath     = "./data/leads"
	DefaultLeadStorageKey = "foamPartyBookings"

	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "foamparty"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultRelayURL     = "https://formspree.io/f/xdklzrjd"
	DefaultRelayTimeout = 10 * time.Second

	DefaultBookingsInbox    = "bookings@gulfcoastfoamparty.com"
	DefaultBusinessPhone    = "(228) 365-3626"
	DefaultBusinessEmail    = "info@gulfcoastfoamparty.com"
	DefaultServiceArea      = "Mississippi Gulf Coast"
	DefaultBusinessTimeZone = "America/Chicago"
	DefaultSiteURL          = "https://gulfcoastfoamparty.com"

	DefaultShareTopic = "booking.shared"

	DefaultSMTPPort = 587

	DefaultTwilioBaseURL = "https://api.twilio.com"

	DefaultOfferStore    = OfferStoreMemory
	DefaultOfferDuration = 10 * time.Minute
	DefaultRedisAddr     = "localhost:6379"
	DefaultRedisDB       = 0

	DefaultRateLimitRequests = 10
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 64 * 1024 // 64KB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultPaginationLimit = 100
)

var DefaultCORSAllowedOrigins = []string{
	"https://gulfcoastfoamparty.com",
	"https://www.gulfcoastfoamparty.com",
	"http://localhost:5173",
}
