package domain

import "github.com/google/uuid"

// ListingSnapshot is the full exported state of a listing, used by storage and caches.
type ListingSnapshot struct {
	ID              uuid.UUID      `json:"id"`
	ShopID          uuid.NullUUID  `json:"shop_id"`
	Item            ItemDescriptor `json:"item"`
	BuyPrice        float64        `json:"buy_price"`
	SellPrice       float64        `json:"sell_price"`
	Currency        string         `json:"currency"`
	Stock           int            `json:"stock"`
	SoldCount       int            `json:"sold_count"`
	BoughtCount     int            `json:"bought_count"`
	LastPriceChange int64          `json:"last_price_change"`
}

// Snapshot copies the listing state. The item is deep-copied.
func (l *ShopListing) Snapshot() ListingSnapshot {
	return ListingSnapshot{
		ID:              l.id,
		ShopID:          l.shopID,
		Item:            l.item.Clone(),
		BuyPrice:        l.buyPrice,
		SellPrice:       l.sellPrice,
		Currency:        l.currency,
		Stock:           l.stock,
		SoldCount:       l.soldCount,
		BoughtCount:     l.boughtCount,
		LastPriceChange: l.lastPriceChange,
	}
}

// FromSnapshot rebuilds a listing including its counters and price-change time.
// Unlike Restore, nothing is reset.
func FromSnapshot(s ListingSnapshot) *ShopListing {
	return &ShopListing{
		id:              s.ID,
		shopID:          s.ShopID,
		item:            s.Item.Clone(),
		buyPrice:        s.BuyPrice,
		sellPrice:       s.SellPrice,
		currency:        s.Currency,
		stock:           s.Stock,
		soldCount:       s.SoldCount,
		boughtCount:     s.BoughtCount,
		lastPriceChange: s.LastPriceChange,
	}
}
