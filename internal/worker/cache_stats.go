package worker

import (
	"context"

	"github.com/osse101/FrizzlenShop_Go/internal/cache"
	"github.com/osse101/FrizzlenShop_Go/internal/metrics"
)

// CacheStatsJob publishes the listing cache size as a gauge
type CacheStatsJob struct {
	Cache   cache.Cache
	Backend string
}

func NewCacheStatsJob(c cache.Cache, backend string) *CacheStatsJob {
	return &CacheStatsJob{Cache: c, Backend: backend}
}

// Process samples the cache. Backends that cannot count (Size -1) are skipped.
func (j *CacheStatsJob) Process(ctx context.Context) error {
	stats := j.Cache.Stats()
	if stats.Size < 0 {
		return nil
	}
	metrics.ListingCacheEntries.WithLabelValues(j.Backend).Set(float64(stats.Size))
	return nil
}
