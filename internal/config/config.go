package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int    `env:"PORT" validate:"gte=0,lte=65535"`
	APIKey      string `env:"API_KEY" validate:"required"`
	LogLevel    string `env:"LOG_LEVEL" validate:"oneof=debug info warn warning error"`
	LogFormat   string `env:"LOG_FORMAT" validate:"oneof=json text"`
	ServiceName string
	Version     string
	Environment string

	// Proxies whose X-Forwarded-For header is trusted for client IPs
	TrustedProxies []string

	DBUser            string
	DBPassword        string
	DBHost            string `env:"DB_HOST" validate:"required"`
	DBPort            string
	DBName            string `env:"DB_NAME" validate:"required"`
	DBMaxConns        int    `env:"DB_MAX_CONNS" validate:"gt=0"`
	DBMaxConnIdleTime time.Duration
	DBMaxConnLifetime time.Duration

	CacheBackend  string        `env:"CACHE_BACKEND" validate:"oneof=lru redis"`
	CacheSize     int           `env:"CACHE_SIZE" validate:"gt=0"`
	CacheTTL      time.Duration `env:"CACHE_TTL" validate:"gt=0"`
	RedisAddr     string        `env:"REDIS_ADDR" validate:"required_if=CacheBackend redis"`
	RedisPassword string
	RedisDB       int `env:"REDIS_DB" validate:"gte=0"`

	CatalogPath string // optional shop catalog seeded at startup

	LogDir string // session log files are written here when set

	EventMaxRetries     int           `env:"EVENT_MAX_RETRIES" validate:"gte=0"`
	EventRetryDelay     time.Duration `env:"EVENT_RETRY_DELAY" validate:"gte=0"`
	EventDeadLetterPath string
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		APIKey:      getEnv("API_KEY", ""),
		LogLevel:    getEnv("LOG_LEVEL", DefaultLogLevel),
		LogFormat:   getEnv("LOG_FORMAT", DefaultLogFormat),
		ServiceName: getEnv("SERVICE_NAME", DefaultServiceName),
		Version:     getEnv("VERSION", DefaultVersion),
		Environment: getEnv("ENVIRONMENT", DefaultEnvironment),

		DBUser:            getEnv("DB_USER", "postgres"),
		DBPassword:        getEnv("DB_PASSWORD", "postgres"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBName:            getEnv("DB_NAME", "frizzlenshop"),
		DBMaxConns:        getEnvAsInt("DB_MAX_CONNS", DefaultDBMaxConns),
		DBMaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", DefaultDBMaxConnIdleTime),
		DBMaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", DefaultDBMaxConnLifetime),

		CacheBackend:  getEnv("CACHE_BACKEND", CacheBackendLRU),
		CacheSize:     getEnvAsInt("CACHE_SIZE", DefaultCacheSize),
		CacheTTL:      getEnvAsDuration("CACHE_TTL", DefaultCacheTTL),
		RedisAddr:     getEnv("REDIS_ADDR", DefaultRedisAddr),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		CatalogPath: getEnv("CATALOG_PATH", ""),

		LogDir: getEnv("LOG_DIR", ""),

		EventMaxRetries:     getEnvAsInt("EVENT_MAX_RETRIES", 0),
		EventRetryDelay:     getEnvAsDuration("EVENT_RETRY_DELAY", 0),
		EventDeadLetterPath: getEnv("EVENT_DEADLETTER_PATH", ""),
	}

	if proxies := getEnv("TRUSTED_PROXIES", ""); proxies != "" {
		for _, p := range strings.Split(proxies, ",") {
			if p = strings.TrimSpace(p); p != "" {
				cfg.TrustedProxies = append(cfg.TrustedProxies, p)
			}
		}
	}

	portStr := getEnv("PORT", DefaultPort)
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt parses an integer environment variable, falling back to the default on error
func getEnvAsInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration parses a duration environment variable, falling back to the default on error
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

// IsDevelopment reports whether the service runs in a development environment
func (c *Config) IsDevelopment() bool {
	return c.Environment == "dev" || c.Environment == "development"
}
