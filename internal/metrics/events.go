package metrics

import (
	"context"

	"github.com/osse101/FrizzlenShop_Go/internal/domain"
	"github.com/osse101/FrizzlenShop_Go/internal/event"
	"github.com/osse101/FrizzlenShop_Go/internal/logger"
)

// EventMetricsCollector subscribes to listing and trade events and records business metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all events
func (e *EventMetricsCollector) Register(bus event.Bus) {
	eventTypes := []event.Type{
		event.ListingCreated,
		event.ListingPriceChanged,
		event.ListingRestocked,
		event.ListingRemoved,
		event.TradeCompleted,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch evt.Type {
	case event.TradeCompleted:
		payload, err := event.DecodePayload[event.TradeCompletedPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgPayloadDecodeFailed, "type", evt.Type, "error", err)
			return nil
		}
		recordTrade(payload)

	case event.ListingPriceChanged:
		payload, err := event.DecodePayload[event.PriceChangedPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgPayloadDecodeFailed, "type", evt.Type, "error", err)
			return nil
		}
		PriceChanges.WithLabelValues(payload.Currency).Inc()
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}

// recordTrade counts from the shop's side: a player buy is a shop sale
func recordTrade(p event.TradeCompletedPayloadV1) {
	switch p.Direction {
	case domain.TradeBuy:
		ItemsSold.WithLabelValues(p.Currency).Add(float64(p.Quantity))
		MoneySpent.WithLabelValues(p.Currency).Add(p.Total)
	case domain.TradeSell:
		ItemsBought.WithLabelValues(p.Currency).Add(float64(p.Quantity))
		MoneyEarned.WithLabelValues(p.Currency).Add(p.Total)
	}
}
