package bootstrap

import (
	"log/slog"

	"github.com/osse101/FrizzlenShop_Go/internal/event"
	"github.com/osse101/FrizzlenShop_Go/internal/metrics"
)

// RegisterEventHandlers subscribes the listing and trade metrics collector to the bus.
func RegisterEventHandlers(bus event.Bus) *metrics.EventMetricsCollector {
	collector := metrics.NewEventMetricsCollector()
	collector.Register(bus)
	slog.Info(LogMsgMetricsCollectorRegistered)
	return collector
}
