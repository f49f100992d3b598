package sse

import (
	"context"
	"log/slog"

	"github.com/osse101/FrizzlenShop_Go/internal/event"
)

// StreamedEventTypes are the bus events forwarded to stream clients
var StreamedEventTypes = []event.Type{
	event.ListingCreated,
	event.ListingPriceChanged,
	event.ListingRestocked,
	event.ListingRemoved,
	event.TradeCompleted,
}

// Subscriber bridges the event bus to the hub
type Subscriber struct {
	hub *Hub
	bus event.Bus
}

func NewSubscriber(hub *Hub, bus event.Bus) *Subscriber {
	return &Subscriber{hub: hub, bus: bus}
}

// Subscribe registers the forwarding handler for every streamed type
func (s *Subscriber) Subscribe() {
	names := make([]string, 0, len(StreamedEventTypes))
	for _, t := range StreamedEventTypes {
		s.bus.Subscribe(t, s.forward)
		names = append(names, string(t))
	}
	slog.Info(LogMsgSubscribed, "types", names)
}

// forward never fails so a slow stream cannot trigger publisher retries
func (s *Subscriber) forward(_ context.Context, evt event.Event) error {
	s.hub.Broadcast(string(evt.Type), evt.Payload)
	slog.Debug(LogMsgEventBroadcast, "event_type", evt.Type, "clients", s.hub.ClientCount())
	return nil
}
