package domain

// StockResultKind is the outcome of a stock change.
type StockResultKind int

const (
	// StockUpdated means finite stock was changed.
	StockUpdated StockResultKind = iota
	// StockUnlimited means the listing has unlimited stock and nothing changed.
	StockUnlimited
	// StockInsufficient means the removal was larger than the finite stock.
	StockInsufficient
)

func (k StockResultKind) String() string {
	switch k {
	case StockUpdated:
		return "updated"
	case StockUnlimited:
		return "unlimited"
	case StockInsufficient:
		return "insufficient"
	default:
		return "unknown"
	}
}

// StockResult is the tagged result of TryAddStock and TryRemoveStock.
// Stock holds the new value when Kind is StockUpdated and the untouched value otherwise.
type StockResult struct {
	Kind  StockResultKind
	Stock int
}

// Updated returns the new stock and true when the stock was changed.
func (r StockResult) Updated() (int, bool) {
	return r.Stock, r.Kind == StockUpdated
}

func (r StockResult) Unlimited() bool {
	return r.Kind == StockUnlimited
}

func (r StockResult) Insufficient() bool {
	return r.Kind == StockInsufficient
}

// Legacy folds the result into the sentinel form returned by AddStock and RemoveStock.
func (r StockResult) Legacy() int {
	if r.Kind == StockUpdated {
		return r.Stock
	}
	return UnlimitedStock
}

// TryAddStock adds amount to finite stock. Amount may be negative and no floor is enforced.
func (l *ShopListing) TryAddStock(amount int) StockResult {
	if l.stock == UnlimitedStock {
		return StockResult{Kind: StockUnlimited, Stock: UnlimitedStock}
	}
	l.stock += amount
	return StockResult{Kind: StockUpdated, Stock: l.stock}
}

// TryRemoveStock takes amount from finite stock, leaving it unchanged if there is not enough.
func (l *ShopListing) TryRemoveStock(amount int) StockResult {
	if l.stock == UnlimitedStock {
		return StockResult{Kind: StockUnlimited, Stock: UnlimitedStock}
	}
	if amount > l.stock {
		return StockResult{Kind: StockInsufficient, Stock: l.stock}
	}
	l.stock -= amount
	return StockResult{Kind: StockUpdated, Stock: l.stock}
}
