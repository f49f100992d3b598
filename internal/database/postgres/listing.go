package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/FrizzlenShop_Go/internal/database/generated"
	"github.com/osse101/FrizzlenShop_Go/internal/domain"
	"github.com/osse101/FrizzlenShop_Go/internal/repository"
)

// ListingRepository implements repository.Listing for PostgreSQL
type ListingRepository struct {
	db *pgxpool.Pool
	q  *generated.Queries
}

// NewListingRepository creates a new ListingRepository
func NewListingRepository(db *pgxpool.Pool) *ListingRepository {
	return &ListingRepository{
		db: db,
		q:  generated.New(db),
	}
}

// ListingTx implements repository.ListingTx
type ListingTx struct {
	tx pgx.Tx
	q  *generated.Queries
}

// BeginTx starts a new transaction
func (r *ListingRepository) BeginTx(ctx context.Context) (repository.ListingTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	return &ListingTx{
		tx: tx,
		q:  r.q.WithTx(tx),
	}, nil
}

// SaveListing upserts a listing
func (r *ListingRepository) SaveListing(ctx context.Context, listing *domain.ShopListing) error {
	return saveListing(ctx, r.q, listing)
}

// GetListing retrieves a listing by id
func (r *ListingRepository) GetListing(ctx context.Context, id uuid.UUID) (*domain.ShopListing, error) {
	row, err := r.q.GetListing(ctx, id)
	return mapListingRow(row, err)
}

// ListListingsByShop retrieves all listings of a shop
func (r *ListingRepository) ListListingsByShop(ctx context.Context, shopID uuid.UUID) ([]*domain.ShopListing, error) {
	rows, err := r.q.ListListingsByShop(ctx, uuid.NullUUID{UUID: shopID, Valid: true})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListListings, err)
	}

	listings := make([]*domain.ShopListing, 0, len(rows))
	for _, row := range rows {
		listing, err := listingFromRow(row)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListListings, err)
		}
		listings = append(listings, listing)
	}
	return listings, nil
}

// DeleteListing removes a listing and, through the foreign key, its trade history
func (r *ListingRepository) DeleteListing(ctx context.Context, id uuid.UUID) error {
	affected, err := r.q.DeleteListing(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToDeleteListing, err)
	}
	if affected == 0 {
		return domain.ErrListingNotFound
	}
	return nil
}

// GetBalance returns the player's balance, zero when the player never traded in the currency
func (r *ListingRepository) GetBalance(ctx context.Context, playerID, currency string) (float64, error) {
	balance, err := r.q.GetBalance(ctx, generated.GetBalanceParams{
		PlayerID: playerID,
		Currency: currency,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToGetBalance, err)
	}
	return balance, nil
}

// GetTrades returns the most recent trades of a listing, newest first
func (r *ListingRepository) GetTrades(ctx context.Context, listingID uuid.UUID, limit int) ([]domain.Trade, error) {
	rows, err := r.q.GetTradesByListing(ctx, generated.GetTradesByListingParams{
		ListingID: listingID,
		Limit:     clampInt32(limit),
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetTrades, err)
	}

	trades := make([]domain.Trade, 0, len(rows))
	for _, row := range rows {
		trades = append(trades, tradeFromRow(row))
	}
	return trades, nil
}

// Commit commits the transaction
func (t *ListingTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

// Rollback rolls back the transaction
func (t *ListingTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

// GetListingForUpdate reads a listing and holds its row lock until commit
func (t *ListingTx) GetListingForUpdate(ctx context.Context, id uuid.UUID) (*domain.ShopListing, error) {
	row, err := t.q.GetListingForUpdate(ctx, id)
	return mapListingRow(row, err)
}

// SaveListing upserts a listing inside the transaction
func (t *ListingTx) SaveListing(ctx context.Context, listing *domain.ShopListing) error {
	return saveListing(ctx, t.q, listing)
}

// AdjustBalance applies delta to the player's balance
func (t *ListingTx) AdjustBalance(ctx context.Context, playerID, currency string, delta float64) (float64, error) {
	balance, err := t.q.AdjustBalance(ctx, generated.AdjustBalanceParams{
		PlayerID: playerID,
		Currency: currency,
		Balance:  delta,
	})
	if err != nil {
		if isPgError(err, PgErrorCodeCheckViolation) {
			return 0, domain.ErrInsufficientFunds
		}
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToAdjustBalance, err)
	}
	return balance, nil
}

// RecordTrade appends a row to the trade log
func (t *ListingTx) RecordTrade(ctx context.Context, trade *domain.Trade) error {
	if err := t.q.InsertTrade(ctx, insertTradeParams(trade)); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToRecordTrade, err)
	}
	return nil
}

var (
	_ repository.Listing   = (*ListingRepository)(nil)
	_ repository.ListingTx = (*ListingTx)(nil)
)
