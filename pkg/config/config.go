package config

import (
	"fmt"
	"net/mail"
	"net/url"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"foamparty/pkg/client"
	"foamparty/pkg/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	LogLevel string

	LeadStore      string
	BadgerPath     string
	LeadStorageKey string

	MongoURI          string
	MongoDatabaseName string
	MongoConnTimeout  time.Duration

	RelayURL     string
	RelayTimeout time.Duration

	BookingsInbox    string
	BusinessPhone    string
	BusinessEmail    string
	ServiceArea      string
	BusinessTimeZone string
	SiteURL          string

	ShareEnabled bool
	ShareTopic   string

	SMTPEnabled  bool
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string

	SMSEnabled       bool
	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFromNumber string
	TwilioBaseURL    string
	OperatorPhone    string

	OfferStore    string
	OfferDuration time.Duration
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	CORSAllowedOrigins []string

	RateLimitRequests int
	RateLimitWindow   time.Duration

	RequestTimeout time.Duration
	IdempotencyTTL time.Duration
	MaxRequestSize int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	Log    *logger.Logger
	Client *client.Client
}

// Load reads an optional .env file, builds the configuration from the
// environment and exits when it does not validate.
func Load(serviceName string) *Config {
	_ = godotenv.Load()

	cfg := FromEnv(serviceName)

	err := cfg.Validate()
	if err != nil {
		cfg.Log.Fatal(err.Error())
	}
	cfg.LogConfiguration()
	return cfg
}

// FromEnv builds the configuration without validating it.
func FromEnv(serviceName string) *Config {
	logLevel := getEnvStr(EnvLogLevel, DefaultLogLevel)

	return &Config{
		Port:     getEnvStr(EnvPort, DefaultPort),
		LogLevel: logLevel,

		LeadStore:      strings.ToLower(getEnvStr(EnvLeadStore, DefaultLeadStore)),
		BadgerPath:     getEnvStr(EnvBadgerPath, DefaultBadgerPath),
		LeadStorageKey: getEnvStr(EnvLeadStorageKey, DefaultLeadStorageKey),

		MongoURI:          getEnvStr(EnvMongoURI, DefaultMongoURI),
		MongoDatabaseName: getEnvStr(EnvMongoDatabaseName, DefaultMongoDatabaseName),
		MongoConnTimeout:  getEnvDuration(EnvMongoConnTimeout, DefaultMongoConnTimeout),

		RelayURL:     getEnvStr(EnvRelayURL, DefaultRelayURL),
		RelayTimeout: getEnvDuration(EnvRelayTimeout, DefaultRelayTimeout),

		BookingsInbox:    getEnvStr(EnvBookingsInbox, DefaultBookingsInbox),
		BusinessPhone:    getEnvStr(EnvBusinessPhone, DefaultBusinessPhone),
		BusinessEmail:    getEnvStr(EnvBusinessEmail, DefaultBusinessEmail),
		ServiceArea:      getEnvStr(EnvServiceArea, DefaultServiceArea),
		BusinessTimeZone: getEnvStr(EnvBusinessTimeZone, DefaultBusinessTimeZone),
		SiteURL:          getEnvStr(EnvSiteURL, DefaultSiteURL),

		ShareEnabled: getEnvBool(EnvShareEnabled, false),
		ShareTopic:   getEnvStr(EnvShareTopic, DefaultShareTopic),

		SMTPEnabled:  getEnvBool(EnvSMTPEnabled, false),
		SMTPHost:     getEnvStr(EnvSMTPHost, ""),
		SMTPPort:     getEnvNum(EnvSMTPPort, DefaultSMTPPort),
		SMTPUsername: getEnvStr(EnvSMTPUsername, ""),
		SMTPPassword: getEnvStr(EnvSMTPPassword, ""),
		SMTPFrom:     getEnvStr(EnvSMTPFrom, ""),

		SMSEnabled:       getEnvBool(EnvSMSEnabled, false),
		TwilioAccountSID: getEnvStr(EnvTwilioAccountSID, ""),
		TwilioAuthToken:  getEnvStr(EnvTwilioAuthToken, ""),
		TwilioFromNumber: getEnvStr(EnvTwilioFromNumber, ""),
		TwilioBaseURL:    getEnvStr(EnvTwilioBaseURL, DefaultTwilioBaseURL),
		OperatorPhone:    getEnvStr(EnvOperatorPhone, DefaultBusinessPhone),

		OfferStore:    strings.ToLower(getEnvStr(EnvOfferStore, DefaultOfferStore)),
		OfferDuration: getEnvDuration(EnvOfferDuration, DefaultOfferDuration),
		RedisAddr:     getEnvStr(EnvRedisAddr, DefaultRedisAddr),
		RedisPassword: getEnvStr(EnvRedisPassword, ""),
		RedisDB:       getEnvNum(EnvRedisDB, DefaultRedisDB),

		CORSAllowedOrigins: getEnvList(EnvCORSAllowedOrigins, DefaultCORSAllowedOrigins),

		RateLimitRequests: getEnvNum(EnvRateLimitRequests, DefaultRateLimitRequests),
		RateLimitWindow:   getEnvDuration(EnvRateLimitWindow, DefaultRateLimitWindow),

		RequestTimeout: getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		IdempotencyTTL: getEnvDuration(EnvIdempotencyTTL, DefaultIdempotencyTTL),
		MaxRequestSize: getEnvNum(EnvMaxRequestSize, DefaultMaxRequestSize),

		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		Log: logger.New(logger.Config{
			Level:     logLevel,
			Format:    logger.JSON,
			AddSource: true,
			Service:   serviceName,
		}),
		Client: client.NewClient(),
	}
}

func (cfg *Config) SetMongo() {
	cfg.Client.SetMongo(cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout)
}

func (cfg *Config) SetRedis() {
	cfg.Client.SetRedis(cfg.Log, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
}

// Location returns the business time zone. Validate guarantees it loads.
func (cfg *Config) Location() *time.Location {
	loc, err := time.LoadLocation(cfg.BusinessTimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (cfg *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}

	switch cfg.LeadStore {
	case LeadStoreBadger:
		if cfg.BadgerPath == "" {
			errors = append(errors, "BadgerPath cannot be empty when LeadStore is badger")
		}
	case LeadStoreMongo:
		if cfg.MongoURI == "" {
			errors = append(errors, "MongoURI cannot be empty")
		} else if len(cfg.MongoURI) < 10 || !regexp.MustCompile(`^mongodb(\+srv)?://`).MatchString(cfg.MongoURI) {
			errors = append(errors, fmt.Sprintf("MongoURI must start with 'mongodb://' or 'mongodb+srv://', got: %s", redactMongoURI(cfg.MongoURI)))
		}
		if cfg.MongoDatabaseName == "" {
			errors = append(errors, "MongoDatabaseName cannot be empty")
		}
		if cfg.MongoConnTimeout <= 0 {
			errors = append(errors, fmt.Sprintf("MongoConnTimeout must be positive, got: %s", cfg.MongoConnTimeout))
		}
	case LeadStoreMemory:
	default:
		errors = append(errors, fmt.Sprintf("LeadStore must be one of badger, mongo, memory, got: %s", cfg.LeadStore))
	}

	if cfg.LeadStorageKey == "" {
		errors = append(errors, "LeadStorageKey cannot be empty")
	}

	if u, err := url.Parse(cfg.RelayURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errors = append(errors, fmt.Sprintf("RelayURL must be an absolute http(s) URL, got: %s", cfg.RelayURL))
	}
	if cfg.RelayTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("RelayTimeout must be positive, got: %s", cfg.RelayTimeout))
	}

	if _, err := mail.ParseAddress(cfg.BookingsInbox); err != nil {
		errors = append(errors, fmt.Sprintf("BookingsInbox must be an email address, got: %s", cfg.BookingsInbox))
	}
	if _, err := mail.ParseAddress(cfg.BusinessEmail); err != nil {
		errors = append(errors, fmt.Sprintf("BusinessEmail must be an email address, got: %s", cfg.BusinessEmail))
	}
	if cfg.BusinessPhone == "" {
		errors = append(errors, "BusinessPhone cannot be empty")
	}
	if _, err := time.LoadLocation(cfg.BusinessTimeZone); err != nil {
		errors = append(errors, fmt.Sprintf("BusinessTimeZone must be an IANA zone name, got: %s", cfg.BusinessTimeZone))
	}

	if cfg.ShareEnabled && cfg.ShareTopic == "" {
		errors = append(errors, "ShareTopic cannot be empty when sharing is enabled")
	}

	if cfg.SMTPEnabled {
		if cfg.SMTPHost == "" {
			errors = append(errors, "SMTPHost cannot be empty when SMTP is enabled")
		}
		if cfg.SMTPPort < 1 || cfg.SMTPPort > 65535 {
			errors = append(errors, fmt.Sprintf("SMTPPort must be between 1 and 65535, got: %d", cfg.SMTPPort))
		}
		if cfg.SMTPFrom == "" {
			errors = append(errors, "SMTPFrom cannot be empty when SMTP is enabled")
		}
	}

	if cfg.SMSEnabled {
		if cfg.TwilioAccountSID == "" || cfg.TwilioAuthToken == "" || cfg.TwilioFromNumber == "" {
			errors = append(errors, "Twilio account SID, auth token and from number are required when SMS is enabled")
		}
		if cfg.OperatorPhone == "" {
			errors = append(errors, "OperatorPhone cannot be empty when SMS is enabled")
		}
	}

	switch cfg.OfferStore {
	case OfferStoreRedis:
		if cfg.RedisAddr == "" {
			errors = append(errors, "RedisAddr cannot be empty when OfferStore is redis")
		}
		if cfg.RedisDB < 0 {
			errors = append(errors, fmt.Sprintf("RedisDB cannot be negative, got: %d", cfg.RedisDB))
		}
	case OfferStoreMemory:
	default:
		errors = append(errors, fmt.Sprintf("OfferStore must be one of redis, memory, got: %s", cfg.OfferStore))
	}
	if cfg.OfferDuration <= 0 {
		errors = append(errors, fmt.Sprintf("OfferDuration must be positive, got: %s", cfg.OfferDuration))
	}

	if cfg.RateLimitWindow <= 0 {
		errors = append(errors, fmt.Sprintf("RateLimitWindow must be positive, got: %s", cfg.RateLimitWindow))
	}
	if cfg.RequestTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("RequestTimeout must be positive, got: %s", cfg.RequestTimeout))
	}
	if cfg.IdempotencyTTL <= 0 {
		errors = append(errors, fmt.Sprintf("IdempotencyTTL must be positive, got: %s", cfg.IdempotencyTTL))
	}
	if cfg.ReadTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ReadTimeout must be positive, got: %s", cfg.ReadTimeout))
	}
	if cfg.WriteTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("WriteTimeout must be positive, got: %s", cfg.WriteTimeout))
	}
	if cfg.IdleTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("IdleTimeout must be positive, got: %s", cfg.IdleTimeout))
	}
	if cfg.ShutdownTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ShutdownTimeout must be positive, got: %s", cfg.ShutdownTimeout))
	}

	if cfg.RateLimitRequests <= 0 {
		errors = append(errors, fmt.Sprintf("RateLimitRequests must be positive, got: %d", cfg.RateLimitRequests))
	}
	if cfg.MaxRequestSize <= 0 {
		errors = append(errors, fmt.Sprintf("MaxRequestSize must be positive, got: %d", cfg.MaxRequestSize))
	}

	if len(errors) > 0 {
		errMsg := "Configuration validation failed:\n"
		for i, err := range errors {
			errMsg += fmt.Sprintf("  %d. %s\n", i+1, err)
		}
		return fmt.Errorf("%s", errMsg)
	}

	return nil
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded successfully",
		"port", cfg.Port,
		"log_level", cfg.LogLevel,
		"lead_store", cfg.LeadStore,
		"badger_path", cfg.BadgerPath,
		"lead_storage_key", cfg.LeadStorageKey,
		"mongo_uri", redactMongoURI(cfg.MongoURI),
		"mongo_database", cfg.MongoDatabaseName,
		"relay_url", cfg.RelayURL,
		"relay_timeout", cfg.RelayTimeout,
		"bookings_inbox", cfg.BookingsInbox,
		"business_phone", cfg.BusinessPhone,
		"business_time_zone", cfg.BusinessTimeZone,
		"share_enabled", cfg.ShareEnabled,
		"share_topic", cfg.ShareTopic,
		"smtp_enabled", cfg.SMTPEnabled,
		"smtp_host", cfg.SMTPHost,
		"smtp_password_set", cfg.SMTPPassword != "",
		"sms_enabled", cfg.SMSEnabled,
		"twilio_auth_token_set", cfg.TwilioAuthToken != "",
		"offer_store", cfg.OfferStore,
		"offer_duration", cfg.OfferDuration,
		"redis_addr", cfg.RedisAddr,
		"redis_password_set", cfg.RedisPassword != "",
		"cors_allowed_origins", cfg.CORSAllowedOrigins,
		"rate_limit_requests", cfg.RateLimitRequests,
		"rate_limit_window", cfg.RateLimitWindow,
		"request_timeout", cfg.RequestTimeout,
		"idempotency_ttl", cfg.IdempotencyTTL,
		"max_request_size", cfg.MaxRequestSize,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"idle_timeout", cfg.IdleTimeout,
		"shutdown_timeout", cfg.ShutdownTimeout,
	)
}

func redactMongoURI(uri string) string {
	credentialRegex := regexp.MustCompile(`(mongodb(\+srv)?://)[^:]+:[^@]+@`)
	return credentialRegex.ReplaceAllString(uri, "${1}***:***@")
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}

func (cfg *Config) GracefulShutdown() {
	cfg.Client.GracefulShutdown(cfg.Log)
}

func NormalizePaginationLimit(limit int) int {
	if limit <= 0 {
		limit = 10
	} else if limit > DefaultPaginationLimit {
		limit = DefaultPaginationLimit
	}
	return limit
}

func NormalizeOffset(offset int64) int64 {
	return max(0, offset)
}
