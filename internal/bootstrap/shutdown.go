package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/FrizzlenShop_Go/internal/economy"
	"github.com/osse101/FrizzlenShop_Go/internal/event"
	"github.com/osse101/FrizzlenShop_Go/internal/server"
	"github.com/osse101/FrizzlenShop_Go/internal/sse"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	EventHub           *sse.Hub
	BackgroundJobs     *BackgroundJobs
	Server             *server.Server
	EconomyService     economy.Service
	ResilientPublisher *event.ResilientPublisher
}

// GracefulShutdown stops components in dependency order:
// 1. Event hub (ends open streams so the server can drain)
// 2. HTTP server (stop accepting new requests)
// 3. Background jobs
// 4. Economy service (hand pending trade events to the bus)
// 5. Event publisher (flush retries, dead-letter what is left)
//
// Errors are logged and do not stop the sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if components.EventHub != nil {
		components.EventHub.Stop()
	}

	if components.Server != nil {
		if err := components.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if components.BackgroundJobs != nil {
		slog.Info(LogMsgStoppingBackgroundJobs)
		components.BackgroundJobs.Stop()
	}

	if components.EconomyService != nil {
		shutdownService(ctx, ServiceNameEconomy, components.EconomyService)
	}

	if components.ResilientPublisher != nil {
		slog.Info(LogMsgShuttingDownEventPublisher)
		if err := components.ResilientPublisher.Shutdown(ctx); err != nil {
			slog.Error(LogMsgResilientPublisherFailed, "error", err)
		}
	}

	slog.Info(LogMsgServerStopped)
}

type shutdownableService interface {
	Shutdown(context.Context) error
}

func shutdownService(ctx context.Context, name string, service shutdownableService) {
	if err := service.Shutdown(ctx); err != nil {
		slog.Error(name+LogMsgServiceShutdownFailed, "error", err)
	}
}
