package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Type represents the type of an event
type Type string

// Event represents a generic event in the system
type Event struct {
	Version  string                 `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type                   `json:"type"`
	Payload  interface{}            `json:"payload"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// Listing and trade event types
const (
	ListingCreated      Type = "listing.created"
	ListingPriceChanged Type = "listing.price_changed"
	ListingRestocked    Type = "listing.restocked"
	ListingRemoved      Type = "listing.removed"
	TradeCompleted      Type = "trade.completed"
)

// Typed event payloads

// ListingPayloadV1 describes a listing at the moment it was created or removed
type ListingPayloadV1 struct {
	ListingID string  `json:"listing_id"`
	ShopID    string  `json:"shop_id,omitempty"`
	Material  string  `json:"material"`
	Currency  string  `json:"currency"`
	BuyPrice  float64 `json:"buy_price"`
	SellPrice float64 `json:"sell_price"`
	Stock     int     `json:"stock"`
}

// PriceChangedPayloadV1 carries both price pairs of a repricing
type PriceChangedPayloadV1 struct {
	ListingID    string  `json:"listing_id"`
	Currency     string  `json:"currency"`
	OldBuyPrice  float64 `json:"old_buy_price"`
	NewBuyPrice  float64 `json:"new_buy_price"`
	OldSellPrice float64 `json:"old_sell_price"`
	NewSellPrice float64 `json:"new_sell_price"`
	ChangedAt    int64   `json:"changed_at"` // unix millis, matches the listing timestamp
}

// RestockedPayloadV1 reports the stock after a restock
type RestockedPayloadV1 struct {
	ListingID string `json:"listing_id"`
	Stock     int    `json:"stock"` // -1 when unlimited
}

// TradeCompletedPayloadV1 is published after a buy or sell commits
type TradeCompletedPayloadV1 struct {
	TradeID   string  `json:"trade_id"`
	ListingID string  `json:"listing_id"`
	ShopID    string  `json:"shop_id,omitempty"`
	PlayerID  string  `json:"player_id"`
	Direction string  `json:"direction"`
	Material  string  `json:"material"`
	Quantity  int     `json:"quantity"`
	Total     float64 `json:"total"`
	Currency  string  `json:"currency"`
	Timestamp int64   `json:"timestamp"`
}

// Type-safe event constructors

// NewListingEvent creates a listing.created or listing.removed event
func NewListingEvent(eventType Type, payload ListingPayloadV1) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    eventType,
		Payload: payload,
	}
}

// NewPriceChangedEvent creates a listing.price_changed event
func NewPriceChangedEvent(payload PriceChangedPayloadV1) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ListingPriceChanged,
		Payload: payload,
	}
}

// NewRestockedEvent creates a listing.restocked event
func NewRestockedEvent(listingID uuid.UUID, stock int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ListingRestocked,
		Payload: RestockedPayloadV1{
			ListingID: listingID.String(),
			Stock:     stock,
		},
	}
}

// NewTradeCompletedEvent creates a trade.completed event stamped with the current time
func NewTradeCompletedEvent(payload TradeCompletedPayloadV1) Event {
	if payload.Timestamp == 0 {
		payload.Timestamp = time.Now().Unix()
	}
	return Event{
		Version: EventSchemaVersion,
		Type:    TradeCompleted,
		Payload: payload,
		Metadata: map[string]interface{}{
			"direction": payload.Direction,
		},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish runs every subscriber synchronously and joins their errors
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := b.handlers[event.Type]
	b.mu.RUnlock()

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}
	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
