package bootstrap

import (
	"log/slog"

	"github.com/osse101/FrizzlenShop_Go/internal/cache"
	"github.com/osse101/FrizzlenShop_Go/internal/config"
	"github.com/osse101/FrizzlenShop_Go/internal/scheduler"
	"github.com/osse101/FrizzlenShop_Go/internal/worker"
)

// BackgroundJobs owns the worker pool and the scheduler feeding it
type BackgroundJobs struct {
	Pool      *worker.Pool
	Scheduler *scheduler.Scheduler
}

// StartBackgroundJobs schedules the periodic maintenance jobs
func StartBackgroundJobs(cfg *config.Config, listingCache cache.Cache) *BackgroundJobs {
	pool := worker.NewPool(BackgroundWorkers, BackgroundQueueSize)
	pool.Start()

	sched := scheduler.New(pool)
	sched.Schedule(CacheStatsInterval, worker.NewCacheStatsJob(listingCache, cfg.CacheBackend))

	slog.Info(LogMsgBackgroundJobsStarted, "cache_stats_interval", CacheStatsInterval)
	return &BackgroundJobs{Pool: pool, Scheduler: sched}
}

// Stop halts the schedules first so nothing enqueues into a stopped pool
func (j *BackgroundJobs) Stop() {
	j.Scheduler.Stop()
	j.Pool.Stop()
}
