package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("API_KEY", "test-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "dev", cfg.Environment)
	assert.Equal(t, DefaultServiceName, cfg.ServiceName)
	assert.Equal(t, "postgres", cfg.DBUser)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "frizzlenshop", cfg.DBName)
	assert.Equal(t, CacheBackendLRU, cfg.CacheBackend)
	assert.Equal(t, DefaultCacheSize, cfg.CacheSize)
	assert.Equal(t, DefaultCacheTTL, cfg.CacheTTL)
	assert.Equal(t, DefaultRedisAddr, cfg.RedisAddr)
	assert.Empty(t, cfg.CatalogPath)
	assert.Zero(t, cfg.EventMaxRetries)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoad_Overrides(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("PORT", "3000")
	t.Setenv("API_KEY", "custom-api-key")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("ENVIRONMENT", "prod")
	t.Setenv("DB_HOST", "db.example.com")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("CACHE_BACKEND", "redis")
	t.Setenv("CACHE_TTL", "90s")
	t.Setenv("REDIS_ADDR", "cache:6379")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("CATALOG_PATH", "configs/catalog.toml")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.1, 10.0.0.2,")
	t.Setenv("EVENT_MAX_RETRIES", "2")
	t.Setenv("EVENT_RETRY_DELAY", "250ms")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, "custom-api-key", cfg.APIKey)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "prod", cfg.Environment)
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, "db.example.com", cfg.DBHost)
	assert.Equal(t, "5433", cfg.DBPort)
	assert.Equal(t, CacheBackendRedis, cfg.CacheBackend)
	assert.Equal(t, 90*time.Second, cfg.CacheTTL)
	assert.Equal(t, "cache:6379", cfg.RedisAddr)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, "configs/catalog.toml", cfg.CatalogPath)
	assert.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, cfg.TrustedProxies)
	assert.Equal(t, 2, cfg.EventMaxRetries)
	assert.Equal(t, 250*time.Millisecond, cfg.EventRetryDelay)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing API key", func(t *testing.T) {
		clearEnvVars(t)

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "API_KEY")
		assert.Contains(t, err.Error(), "must be set")
	})

	t.Run("unknown cache backend", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("API_KEY", "test-key")
		t.Setenv("CACHE_BACKEND", "memcached")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "CACHE_BACKEND")
	})

	ports := []struct {
		name        string
		value       string
		shouldError bool
	}{
		{"zero port", "0", false},
		{"max valid port", "65535", false},
		{"not a number", "not-a-number", true},
		{"float port", "8080.5", true},
		{"empty string", "", true},
	}

	for _, tc := range ports {
		t.Run("PORT "+tc.name, func(t *testing.T) {
			clearEnvVars(t)
			t.Setenv("API_KEY", "test-key")
			t.Setenv("PORT", tc.value)

			_, err := Load()
			if tc.shouldError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "invalid PORT")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGetDBConnString(t *testing.T) {
	cfg := &Config{
		DBUser:     "shop",
		DBPassword: "p@ss:word",
		DBHost:     "db",
		DBPort:     "5433",
		DBName:     "listings",
	}

	assert.Equal(t, "postgres://shop:p@ss:word@db:5433/listings?sslmode=disable", cfg.GetDBConnString())
}

// clearEnvVars removes every variable Load reads so tests start from defaults
func clearEnvVars(t *testing.T) {
	t.Helper()

	envVars := []string{
		"PORT", "API_KEY", "LOG_LEVEL", "LOG_FORMAT",
		"SERVICE_NAME", "VERSION", "ENVIRONMENT",
		"DB_USER", "DB_PASSWORD", "DB_HOST", "DB_PORT", "DB_NAME",
		"DB_MAX_CONNS", "DB_MAX_CONN_IDLE_TIME", "DB_MAX_CONN_LIFETIME",
		"CACHE_BACKEND", "CACHE_SIZE", "CACHE_TTL",
		"LOG_DIR", "EVENT_MAX_RETRIES", "EVENT_RETRY_DELAY", "EVENT_DEADLETTER_PATH",
		"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB", "CATALOG_PATH",
		"TRUSTED_PROXIES",
	}

	for _, key := range envVars {
		// t.Setenv registers the restore, Unsetenv then hides the value
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}
