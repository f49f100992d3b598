package domain

import (
	"time"

	"github.com/google/uuid"
)

// nowMillis is swapped in tests to pin price-change timestamps.
var nowMillis = func() int64 {
	return time.Now().UnixMilli()
}

// ShopListing is one priced, stocked offer of a game item inside a shop.
//
// A listing does no locking of its own. The owner of a listing (shop service,
// repository transaction) serialises composite read-then-write updates.
type ShopListing struct {
	id              uuid.UUID
	shopID          uuid.NullUUID
	item            ItemDescriptor
	buyPrice        float64
	sellPrice       float64
	currency        string
	stock           int
	soldCount       int
	boughtCount     int
	lastPriceChange int64
}

// New creates a listing that is not yet attached to a shop.
func New(item ItemDescriptor, buyPrice, sellPrice float64, currency string, stock int) *ShopListing {
	return Restore(uuid.New(), uuid.NullUUID{}, item, buyPrice, sellPrice, currency, stock)
}

// Restore rebuilds a listing with known identifiers, e.g. when loading from storage.
// Counters start at zero and the price-change time is now.
func Restore(id uuid.UUID, shopID uuid.NullUUID, item ItemDescriptor, buyPrice, sellPrice float64, currency string, stock int) *ShopListing {
	return &ShopListing{
		id:              id,
		shopID:          shopID,
		item:            item.Clone(),
		buyPrice:        buyPrice,
		sellPrice:       sellPrice,
		currency:        currency,
		stock:           stock,
		lastPriceChange: nowMillis(),
	}
}

// RestoreSimple rebuilds a listing from a single price: the sell price is
// DefaultSellRatio of it, the currency is DefaultCurrency and stock is unlimited.
func RestoreSimple(id uuid.UUID, shopID uuid.NullUUID, item ItemDescriptor, price float64) *ShopListing {
	return Restore(id, shopID, item, price, price*DefaultSellRatio, DefaultCurrency, UnlimitedStock)
}

func (l *ShopListing) ID() uuid.UUID {
	return l.id
}

// ShopID returns the owning shop; Valid is false for an unattached listing.
func (l *ShopListing) ShopID() uuid.NullUUID {
	return l.shopID
}

// Item returns a copy of the traded item. Changing it does not affect the listing.
func (l *ShopListing) Item() ItemDescriptor {
	return l.item.Clone()
}

func (l *ShopListing) BuyPrice() float64 {
	return l.buyPrice
}

// Price is an alias of BuyPrice for stores that keep a single price column.
func (l *ShopListing) Price() float64 {
	return l.buyPrice
}

func (l *ShopListing) SellPrice() float64 {
	return l.sellPrice
}

func (l *ShopListing) Currency() string {
	return l.currency
}

// Stock returns the units available, or UnlimitedStock.
func (l *ShopListing) Stock() int {
	return l.stock
}

func (l *ShopListing) SoldCount() int {
	return l.soldCount
}

func (l *ShopListing) BoughtCount() int {
	return l.boughtCount
}

// LastPriceChange returns the time of the last price update in milliseconds since epoch.
func (l *ShopListing) LastPriceChange() int64 {
	return l.lastPriceChange
}

// SetBuyPrice sets the buy price. Negative prices are stored as given.
func (l *ShopListing) SetBuyPrice(price float64) {
	l.buyPrice = price
	l.lastPriceChange = nowMillis()
}

// SetPrice sets the buy price and derives the sell price from it,
// replacing any sell price set with SetSellPrice.
func (l *ShopListing) SetPrice(price float64) {
	l.buyPrice = price
	l.sellPrice = price * DefaultSellRatio
	l.lastPriceChange = nowMillis()
}

func (l *ShopListing) SetSellPrice(price float64) {
	l.sellPrice = price
	l.lastPriceChange = nowMillis()
}

// SetCurrency changes the currency. It is not a price change.
func (l *ShopListing) SetCurrency(currency string) {
	l.currency = currency
}

// SetStock overwrites the stock without any clamping.
func (l *ShopListing) SetStock(stock int) {
	l.stock = stock
}

// AddStock adds amount to finite stock and returns the new stock.
// Unlimited listings are left alone and -1 is returned.
func (l *ShopListing) AddStock(amount int) int {
	return l.TryAddStock(amount).Legacy()
}

// RemoveStock takes amount from finite stock and returns the new stock.
// It returns -1 both for unlimited listings and when stock is insufficient;
// use TryRemoveStock to tell the two apart.
func (l *ShopListing) RemoveStock(amount int) int {
	return l.TryRemoveStock(amount).Legacy()
}

// HasStock reports whether amount units can be taken from the listing.
func (l *ShopListing) HasStock(amount int) bool {
	return l.stock == UnlimitedStock || l.stock >= amount
}

// IncrementSoldCount records units the shop sold to players.
func (l *ShopListing) IncrementSoldCount(amount int) {
	l.soldCount += amount
}

// IncrementBoughtCount records units the shop bought from players.
func (l *ShopListing) IncrementBoughtCount(amount int) {
	l.boughtCount += amount
}

// Matches reports whether other is the same item configuration as the listed item.
func (l *ShopListing) Matches(other *ItemDescriptor) bool {
	return sameItem(&l.item, other)
}

// CalculateBuyPrice returns what a player pays for amount units.
func (l *ShopListing) CalculateBuyPrice(amount int) float64 {
	return l.buyPrice * float64(amount)
}

// CalculateSellPrice returns what a player receives for amount units.
func (l *ShopListing) CalculateSellPrice(amount int) float64 {
	return l.sellPrice * float64(amount)
}
