package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/osse101/FrizzlenShop_Go/internal/database/generated"
	"github.com/osse101/FrizzlenShop_Go/internal/domain"
)

// isPgError reports whether err carries the given PostgreSQL error code
func isPgError(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}

// clampInt32 narrows counters and limits to the INTEGER columns
func clampInt32(n int) int32 {
	switch {
	case n > math.MaxInt32:
		return math.MaxInt32
	case n < math.MinInt32:
		return math.MinInt32
	}
	return int32(n)
}

func toTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: !t.IsZero()}
}

// listingFromRow rebuilds the listing with its counters and price-change time intact
func listingFromRow(row generated.ShopListing) (*domain.ShopListing, error) {
	snap := domain.ListingSnapshot{
		ID:              row.ListingID,
		ShopID:          row.ShopID,
		BuyPrice:        row.BuyPrice,
		SellPrice:       row.SellPrice,
		Currency:        row.Currency,
		Stock:           int(row.Stock),
		SoldCount:       int(row.SoldCount),
		BoughtCount:     int(row.BoughtCount),
		LastPriceChange: row.LastPriceChange,
	}
	if err := json.Unmarshal(row.Item, &snap.Item); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToUnmarshalItem, err)
	}
	return domain.FromSnapshot(snap), nil
}

// mapListingRow converts a single-row query result, mapping no rows to ErrListingNotFound
func mapListingRow(row generated.ShopListing, err error) (*domain.ShopListing, error) {
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrListingNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetListing, err)
	}
	listing, err := listingFromRow(row)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetListing, err)
	}
	return listing, nil
}

func upsertListingParams(listing *domain.ShopListing) (generated.UpsertListingParams, error) {
	snap := listing.Snapshot()
	itemJSON, err := json.Marshal(snap.Item)
	if err != nil {
		return generated.UpsertListingParams{}, fmt.Errorf("%s: %w", ErrMsgFailedToMarshalItem, err)
	}
	return generated.UpsertListingParams{
		ListingID:       snap.ID,
		ShopID:          snap.ShopID,
		Item:            itemJSON,
		BuyPrice:        snap.BuyPrice,
		SellPrice:       snap.SellPrice,
		Currency:        snap.Currency,
		Stock:           clampInt32(snap.Stock),
		SoldCount:       clampInt32(snap.SoldCount),
		BoughtCount:     clampInt32(snap.BoughtCount),
		LastPriceChange: snap.LastPriceChange,
	}, nil
}

func saveListing(ctx context.Context, q *generated.Queries, listing *domain.ShopListing) error {
	params, err := upsertListingParams(listing)
	if err != nil {
		return err
	}
	if err := q.UpsertListing(ctx, params); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSaveListing, err)
	}
	return nil
}

// insertTradeParams fills in a missing id and timestamp on the trade before mapping it
func insertTradeParams(trade *domain.Trade) generated.InsertTradeParams {
	if trade.ID == uuid.Nil {
		trade.ID = uuid.New()
	}
	if trade.CreatedAt.IsZero() {
		trade.CreatedAt = time.Now().UTC()
	}
	return generated.InsertTradeParams{
		TradeID:   trade.ID,
		ListingID: trade.ListingID,
		ShopID:    trade.ShopID,
		PlayerID:  trade.PlayerID,
		Direction: trade.Direction,
		Quantity:  clampInt32(trade.Quantity),
		Total:     trade.Total,
		Currency:  trade.Currency,
		CreatedAt: toTimestamptz(trade.CreatedAt),
	}
}

func tradeFromRow(row generated.ShopTrade) domain.Trade {
	return domain.Trade{
		ID:        row.TradeID,
		ListingID: row.ListingID,
		ShopID:    row.ShopID,
		PlayerID:  row.PlayerID,
		Direction: row.Direction,
		Quantity:  int(row.Quantity),
		Total:     row.Total,
		Currency:  row.Currency,
		CreatedAt: row.CreatedAt.Time,
	}
}
