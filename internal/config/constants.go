package config

import "time"

// Defaults
const (
	DefaultPort        = "8080"
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "text"
	DefaultServiceName = "frizzlen-shop"
	DefaultVersion     = "dev"
	DefaultEnvironment = "dev"

	DefaultDBMaxConns        = 20
	DefaultDBMaxConnIdleTime = 5 * time.Minute
	DefaultDBMaxConnLifetime = 30 * time.Minute

	DefaultCacheSize = 1024
	DefaultCacheTTL  = 5 * time.Minute
	DefaultRedisAddr = "localhost:6379"

	// ShutdownTimeout bounds graceful shutdown of the HTTP server and services
	ShutdownTimeout = 15 * time.Second
)

// Listing cache backends
const (
	CacheBackendLRU   = "lru"
	CacheBackendRedis = "redis"
)
