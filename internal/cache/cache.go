// Package cache keeps recently read shop listings out of the database.
package cache

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/go-redis/redis/v9"
	"github.com/google/uuid"

	"github.com/osse101/FrizzlenShop_Go/internal/domain"
	"github.com/osse101/FrizzlenShop_Go/internal/metrics"
)

// CacheSchemaVersion is the current version of the cache schema
// Increment this when the cached data structure changes to auto-invalidate old entries
const CacheSchemaVersion = "1.0"

// Backends
const (
	BackendLRU   = "lru"
	BackendRedis = "redis"
)

// Cache stores listing snapshots keyed by listing id. Every Get returns a
// fresh listing, so callers may mutate it freely.
type Cache interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.ShopListing, bool)
	Set(ctx context.Context, listing *domain.ShopListing)
	Invalidate(ctx context.Context, id uuid.UUID)
	Clear(ctx context.Context)
	Stats() Stats
}

// Stats reports cache effectiveness. Size is -1 when the backend cannot count entries cheaply.
type Stats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
	Size   int   `json:"size"`
}

// Config selects and sizes a backend
type Config struct {
	Backend       string
	Size          int
	TTL           time.Duration
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// New builds the configured backend. The redis backend is pinged before use.
func New(ctx context.Context, cfg Config) (Cache, error) {
	switch cfg.Backend {
	case BackendLRU, "":
		return NewLRU(cfg.Size, cfg.TTL), nil
	case BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("failed to reach redis at %s: %w", cfg.RedisAddr, err)
		}
		return NewRedis(client, cfg.TTL), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}

// cachedListingEntry wraps a listing snapshot with version metadata for cache invalidation
type cachedListingEntry struct {
	Version  string                 `json:"version"`
	Listing  domain.ListingSnapshot `json:"listing"`
	CachedAt time.Time              `json:"cached_at"`
}

func newEntry(listing *domain.ShopListing) *cachedListingEntry {
	return &cachedListingEntry{
		Version:  CacheSchemaVersion,
		Listing:  listing.Snapshot(),
		CachedAt: time.Now(),
	}
}

// counters tracks hits and misses locally and in prometheus
type counters struct {
	backend string
	hits    atomic.Int64
	misses  atomic.Int64
}

func (c *counters) hit() {
	c.hits.Add(1)
	metrics.ListingCacheHits.WithLabelValues(c.backend).Inc()
}

func (c *counters) miss() {
	c.misses.Add(1)
	metrics.ListingCacheMisses.WithLabelValues(c.backend).Inc()
}

func (c *counters) stats(size int) Stats {
	return Stats{Hits: c.hits.Load(), Misses: c.misses.Load(), Size: size}
}
