package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v9"
	"github.com/google/uuid"

	"github.com/osse101/FrizzlenShop_Go/internal/domain"
	"github.com/osse101/FrizzlenShop_Go/internal/logger"
)

// RedisKeyPrefix namespaces listing entries inside a shared redis
const RedisKeyPrefix = "frizzlen:listing:"

// redisCache shares listings between service instances. Redis failures are
// logged and treated as misses.
type redisCache struct {
	client *redis.Client
	ttl    time.Duration
	counters
}

// NewRedis creates a cache storing JSON entries in redis for ttl each
func NewRedis(client *redis.Client, ttl time.Duration) Cache {
	return &redisCache{
		client:   client,
		ttl:      ttl,
		counters: counters{backend: BackendRedis},
	}
}

func redisKey(id uuid.UUID) string {
	return RedisKeyPrefix + id.String()
}

func (c *redisCache) Get(ctx context.Context, id uuid.UUID) (*domain.ShopListing, bool) {
	key := redisKey(id)
	cached, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.FromContext(ctx).Error("Failed to read listing cache", "key", key, "error", err)
		}
		c.miss()
		return nil, false
	}

	var entry cachedListingEntry
	if err := json.Unmarshal(cached, &entry); err != nil || entry.Version != CacheSchemaVersion {
		c.Invalidate(ctx, id)
		c.miss()
		return nil, false
	}

	c.hit()
	return domain.FromSnapshot(entry.Listing), true
}

func (c *redisCache) Set(ctx context.Context, listing *domain.ShopListing) {
	key := redisKey(listing.ID())
	data, err := json.Marshal(newEntry(listing))
	if err != nil {
		logger.FromContext(ctx).Error("Failed to encode listing for cache", "key", key, "error", err)
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		logger.FromContext(ctx).Error("Failed to write listing cache", "key", key, "error", err)
	}
}

func (c *redisCache) Invalidate(ctx context.Context, id uuid.UUID) {
	if err := c.client.Del(ctx, redisKey(id)).Err(); err != nil {
		logger.FromContext(ctx).Error("Failed to invalidate listing cache", "listing_id", id, "error", err)
	}
}

// Clear deletes every listing key, leaving other data in the database untouched
func (c *redisCache) Clear(ctx context.Context) {
	iter := c.client.Scan(ctx, 0, RedisKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			logger.FromContext(ctx).Error("Failed to clear listing cache key", "key", iter.Val(), "error", err)
		}
	}
	if err := iter.Err(); err != nil {
		logger.FromContext(ctx).Error("Failed to scan listing cache", "error", err)
	}
}

func (c *redisCache) Stats() Stats {
	return c.stats(-1)
}
