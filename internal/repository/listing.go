package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/osse101/FrizzlenShop_Go/internal/domain"
)

// Listing defines the interface for shop listing persistence
type Listing interface {
	// SaveListing inserts the listing or overwrites the stored row with the same id
	SaveListing(ctx context.Context, listing *domain.ShopListing) error
	// GetListing returns domain.ErrListingNotFound when no row exists
	GetListing(ctx context.Context, id uuid.UUID) (*domain.ShopListing, error)
	// ListListingsByShop returns the shop's listings in creation order
	ListListingsByShop(ctx context.Context, shopID uuid.UUID) ([]*domain.ShopListing, error)
	DeleteListing(ctx context.Context, id uuid.UUID) error

	// Balance operations
	GetBalance(ctx context.Context, playerID, currency string) (float64, error)
	GetTrades(ctx context.Context, listingID uuid.UUID, limit int) ([]domain.Trade, error)

	BeginTx(ctx context.Context) (ListingTx, error)
}

// ListingTx extends Tx with the operations a trade runs atomically
type ListingTx interface {
	Tx // Commit, Rollback

	// GetListingForUpdate locks the listing row until the transaction ends
	GetListingForUpdate(ctx context.Context, id uuid.UUID) (*domain.ShopListing, error)
	SaveListing(ctx context.Context, listing *domain.ShopListing) error

	// AdjustBalance adds delta to the player's balance in the currency and returns the new balance.
	// Returns domain.ErrInsufficientFunds when the result would be negative.
	AdjustBalance(ctx context.Context, playerID, currency string, delta float64) (float64, error)
	RecordTrade(ctx context.Context, trade *domain.Trade) error
}
