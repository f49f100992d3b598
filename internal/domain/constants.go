package domain

// Listing defaults
const (
	// UnlimitedStock marks a listing whose stock is never depleted.
	UnlimitedStock = -1

	// DefaultCurrency is used by listings created from a single price.
	DefaultCurrency = "coin"

	// DefaultSellRatio is the share of the buy price paid back when a player sells.
	DefaultSellRatio = 0.8
)

// Transaction limits
const (
	// MaxTransactionQuantity caps the units moved by a single buy or sell.
	MaxTransactionQuantity = 10000
)

// Trade directions, as seen from the player
const (
	TradeBuy  = "buy"
	TradeSell = "sell"
)
