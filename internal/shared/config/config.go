package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for our application
type Config struct {
	// Server configuration
	Port           string
	GinMode        string
	APIVersion     string
	APIPrefix      string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxHeaderBytes int

	// Database configuration
	Database DatabaseConfig

	// Redis configuration
	Redis RedisConfig

	// JWT configuration
	JWT JWTConfig

	// Kafka ingestion
	Kafka KafkaConfig

	// Rate limiting
	RateLimit RateLimitConfig

	// Notification reconciliation
	Reconcile ReconcileConfig

	// Logging
	LogLevel string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	DSN      string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Addr     string

	// TTL values for cached derived views
	StatsCacheTTL  time.Duration
	UnreadCountTTL time.Duration
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret       string
	JWTExpiresIn time.Duration
}

// KafkaConfig holds notification event stream configuration
type KafkaConfig struct {
	Enabled           bool
	Brokers           []string
	NotificationTopic string
	ConsumerGroupID   string
	NumWorkers        int
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Enabled          bool          `json:"enabled"`
	WindowDuration   time.Duration `json:"window_duration"`
	DefaultRequests  int           `json:"default_requests"`
	PublicRequests   int           `json:"public_requests"`
	UserRequests     int           `json:"user_requests"`
	MerchantRequests int           `json:"merchant_requests"`
	HealthRequests   int           `json:"health_requests"`
	WhitelistedIPs   []string      `json:"whitelisted_ips"`
}

// ReconcileConfig controls retry behaviour for optimistic notification mutations
type ReconcileConfig struct {
	MaxAttempts int
	BaseBackoff time.Duration
}

// Load loads configuration from environment variables
func Load() *Config {
	cfg := &Config{
		// Server configuration
		Port:           getEnv("PORT", "8080"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		APIVersion:     getEnv("API_VERSION", "v1"),
		APIPrefix:      getEnv("API_PREFIX", "/api"),
		ReadTimeout:    getDurationEnv("READ_TIMEOUT", 15*time.Second),
		WriteTimeout:   getDurationEnv("WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:    getDurationEnv("IDLE_TIMEOUT", 60*time.Second),
		MaxHeaderBytes: getIntEnv("MAX_HEADER_BYTES", 1<<20), // 1 MB

		// Database configuration
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "tixly_db"),
			User:     getEnv("DB_USER", "tixly_user"),
			Password: getEnv("DB_PASSWORD", "tixly_password"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},

		// Redis configuration
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),

			StatsCacheTTL:  getDurationEnv("REDIS_STATS_CACHE_TTL", 2*time.Minute),
			UnreadCountTTL: getDurationEnv("REDIS_UNREAD_COUNT_TTL", 30*time.Second),
		},

		// JWT configuration
		JWT: JWTConfig{
			Secret:       getEnv("JWT_SECRET", "your-super-secret-jwt-key"),
			JWTExpiresIn: getDurationEnvSeconds("JWT_EXPIRES_IN", 15*time.Minute),
		},

		// Kafka ingestion
		Kafka: KafkaConfig{
			Enabled:           getBoolEnv("KAFKA_ENABLED", false),
			Brokers:           getStringSliceEnv("KAFKA_BROKERS", []string{"localhost:9092"}),
			NotificationTopic: getEnv("NOTIFICATION_TOPIC", "notifications"),
			ConsumerGroupID:   getEnv("CONSUMER_GROUP_ID", "tixly-notification-workers"),
			NumWorkers:        getIntEnv("NUM_CONSUMER_WORKERS", 3),
		},

		// Rate limiting
		RateLimit: RateLimitConfig{
			Enabled:          getBoolEnv("RATE_LIMIT_ENABLED", true),
			WindowDuration:   getDurationEnv("RATE_LIMIT_WINDOW_DURATION", 60*time.Second),
			DefaultRequests:  getIntEnv("RATE_LIMIT_DEFAULT_REQUESTS", 60),
			PublicRequests:   getIntEnv("RATE_LIMIT_PUBLIC_REQUESTS", 100),
			UserRequests:     getIntEnv("RATE_LIMIT_USER_REQUESTS", 120),
			MerchantRequests: getIntEnv("RATE_LIMIT_MERCHANT_REQUESTS", 60),
			HealthRequests:   getIntEnv("RATE_LIMIT_HEALTH_REQUESTS", 300),
			WhitelistedIPs:   getStringSliceEnv("RATE_LIMIT_WHITELISTED_IPS", []string{}),
		},

		// Reconciliation
		Reconcile: ReconcileConfig{
			MaxAttempts: getIntEnv("RECONCILE_MAX_ATTEMPTS", 3),
			BaseBackoff: getDurationEnv("RECONCILE_BASE_BACKOFF", 500*time.Millisecond),
		},

		// Logging
		LogLevel: getEnv("LOG_LEVEL", "debug"),
	}

	// Build composite values
	cfg.Database.DSN = buildDatabaseDSN(cfg.Database)
	cfg.Redis.Addr = cfg.Redis.Host + ":" + cfg.Redis.Port

	return cfg
}

// buildDatabaseDSN builds the database connection string
func buildDatabaseDSN(db DatabaseConfig) string {
	return "host=" + db.Host +
		" port=" + db.Port +
		" user=" + db.User +
		" password=" + db.Password +
		" dbname=" + db.Name +
		" sslmode=" + db.SSLMode
}

// getEnv gets an environment variable with a fallback value
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getIntEnv gets an integer environment variable with a fallback value
func getIntEnv(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return fallback
}

// getDurationEnv gets a duration environment variable with a fallback value
func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return fallback
}

// getDurationEnvSeconds gets an environment variable as seconds (int) and converts to time.Duration
func getDurationEnvSeconds(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if seconds, err := strconv.Atoi(value); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return fallback
}

// getBoolEnv gets a boolean environment variable with a fallback value
func getBoolEnv(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return fallback
}

// getStringSliceEnv gets a comma-separated string environment variable as a slice
func getStringSliceEnv(key string, fallback []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		var result []string
		for _, part := range parts {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.GinMode == "debug"
}

// GetServerAddress returns the full server address
func (c *Config) GetServerAddress() string {
	return ":" + c.Port
}

// GetAPIBasePath returns the API base path
func (c *Config) GetAPIBasePath() string {
	return c.APIPrefix + "/" + c.APIVersion
}
