package domain

import (
	"time"

	"github.com/google/uuid"
)

// Trade records one completed buy or sell against a listing.
type Trade struct {
	ID        uuid.UUID     `json:"id"`
	ListingID uuid.UUID     `json:"listing_id"`
	ShopID    uuid.NullUUID `json:"shop_id"`
	PlayerID  string        `json:"player_id"`
	Direction string        `json:"direction"` // TradeBuy or TradeSell
	Quantity  int           `json:"quantity"`
	Total     float64       `json:"total"`
	Currency  string        `json:"currency"`
	CreatedAt time.Time     `json:"created_at"`
}
