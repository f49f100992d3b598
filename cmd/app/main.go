package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/osse101/FrizzlenShop_Go/internal/bootstrap"
	"github.com/osse101/FrizzlenShop_Go/internal/cache"
	"github.com/osse101/FrizzlenShop_Go/internal/concurrency"
	"github.com/osse101/FrizzlenShop_Go/internal/config"
	"github.com/osse101/FrizzlenShop_Go/internal/database"
	"github.com/osse101/FrizzlenShop_Go/internal/economy"
	"github.com/osse101/FrizzlenShop_Go/internal/handler"
	"github.com/osse101/FrizzlenShop_Go/internal/server"
	"github.com/osse101/FrizzlenShop_Go/internal/shop"
	"github.com/osse101/FrizzlenShop_Go/internal/sse"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		slog.Error("Failed to set up logging", "error", err)
		os.Exit(1)
	}
	if logFile != nil {
		defer logFile.Close()
	}
	for _, warning := range cfg.Warnings() {
		slog.Warn(warning)
	}

	if err := run(cfg); err != nil {
		slog.Error("FrizzlenShop exited with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	handler.InitValidator()

	dbPool, err := database.NewPool(cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
	if err != nil {
		return err
	}
	defer dbPool.Close()

	version, err := database.Migrate(ctx, dbPool)
	if err != nil {
		return err
	}
	slog.Info("Database schema up to date", "version", version)

	listingCache, err := cache.New(ctx, cache.Config{
		Backend:       cfg.CacheBackend,
		Size:          cfg.CacheSize,
		TTL:           cfg.CacheTTL,
		RedisAddr:     cfg.RedisAddr,
		RedisPassword: cfg.RedisPassword,
		RedisDB:       cfg.RedisDB,
	})
	if err != nil {
		return err
	}

	jobs := bootstrap.StartBackgroundJobs(cfg, listingCache)

	repos := bootstrap.InitializeRepositories(dbPool)
	if err := bootstrap.SyncCatalog(ctx, cfg, repos.Listing); err != nil {
		return err
	}

	eventBus, publisher, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		return err
	}
	bootstrap.RegisterEventHandlers(eventBus)

	eventHub := sse.NewHub()
	eventHub.Start()
	sse.NewSubscriber(eventHub, eventBus).Subscribe()

	// Shop edits and trades serialise on the same per-listing locks
	locks := concurrency.NewLockManager()
	shopService := shop.NewService(repos.Listing, listingCache, locks, publisher)
	economyService := economy.NewService(repos.Listing, shopService, listingCache, locks, publisher)

	srv := server.NewServer(cfg.Port, cfg.APIKey, cfg.TrustedProxies, server.Dependencies{
		DBPool:         dbPool,
		ShopService:    shopService,
		EconomyService: economyService,
		ListingCache:   listingCache,
		EventHub:       eventHub,
	})

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	runErr := waitForServer(ctx, serverErr)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		EventHub:           eventHub,
		Server:             srv,
		BackgroundJobs:     jobs,
		EconomyService:     economyService,
		ResilientPublisher: publisher,
	})
	return runErr
}

// waitForServer blocks until shutdown is requested or the server stops.
// A server failure is returned so the process exits non-zero.
func waitForServer(ctx context.Context, serverErr <-chan error) error {
	select {
	case <-ctx.Done():
		return nil
	case err, ok := <-serverErr:
		if !ok || err == nil {
			return nil
		}
		slog.Error("Server failed", "error", err)
		return fmt.Errorf("server failed: %w", err)
	}
}
