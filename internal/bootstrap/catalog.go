package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/osse101/FrizzlenShop_Go/internal/catalog"
	"github.com/osse101/FrizzlenShop_Go/internal/config"
	"github.com/osse101/FrizzlenShop_Go/internal/repository"
)

// SyncCatalog seeds listings from cfg.CatalogPath. It is a no-op when no catalog
// is configured, and listings already in the database are never overwritten.
func SyncCatalog(ctx context.Context, cfg *config.Config, repo repository.Listing) error {
	if cfg.CatalogPath == "" {
		slog.Info(LogMsgCatalogSkipped)
		return nil
	}

	slog.Info(LogMsgSyncingCatalog, "path", cfg.CatalogPath)
	loader, err := catalog.NewLoader()
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedLoadCatalog, err)
	}

	cat, err := loader.LoadFile(cfg.CatalogPath)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedLoadCatalog, err)
	}

	if _, err := catalog.Sync(ctx, repo, cat); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedSyncCatalog, err)
	}
	return nil
}
