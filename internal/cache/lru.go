package cache

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/FrizzlenShop_Go/internal/domain"
)

// lruCache is an in-process cache with time-based expiration and version-based invalidation
type lruCache struct {
	lru *expirable.LRU[uuid.UUID, *cachedListingEntry]
	counters
}

// NewLRU creates an in-memory cache holding at most size listings for ttl each
func NewLRU(size int, ttl time.Duration) Cache {
	return &lruCache{
		lru:      expirable.NewLRU[uuid.UUID, *cachedListingEntry](size, nil, ttl),
		counters: counters{backend: BackendLRU},
	}
}

func (c *lruCache) Get(ctx context.Context, id uuid.UUID) (*domain.ShopListing, bool) {
	entry, found := c.lru.Get(id)
	if !found {
		c.miss()
		return nil, false
	}

	if entry.Version != CacheSchemaVersion {
		c.lru.Remove(id)
		c.miss()
		return nil, false
	}

	c.hit()
	return domain.FromSnapshot(entry.Listing), true
}

func (c *lruCache) Set(ctx context.Context, listing *domain.ShopListing) {
	c.lru.Add(listing.ID(), newEntry(listing))
}

func (c *lruCache) Invalidate(ctx context.Context, id uuid.UUID) {
	c.lru.Remove(id)
}

func (c *lruCache) Clear(ctx context.Context) {
	c.lru.Purge()
}

func (c *lruCache) Stats() Stats {
	return c.stats(c.lru.Len())
}
