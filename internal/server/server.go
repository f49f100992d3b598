package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/osse101/FrizzlenShop_Go/internal/cache"
	"github.com/osse101/FrizzlenShop_Go/internal/database"
	"github.com/osse101/FrizzlenShop_Go/internal/economy"
	"github.com/osse101/FrizzlenShop_Go/internal/handler"
	"github.com/osse101/FrizzlenShop_Go/internal/logger"
	"github.com/osse101/FrizzlenShop_Go/internal/metrics"
	"github.com/osse101/FrizzlenShop_Go/internal/shop"
	"github.com/osse101/FrizzlenShop_Go/internal/sse"
)

// Dependencies are the services the HTTP API is served from
type Dependencies struct {
	DBPool         database.Pool
	ShopService    shop.Service
	EconomyService economy.Service
	ListingCache   cache.Cache
	EventHub       *sse.Hub // optional; nil disables /api/v1/events
}

type Server struct {
	httpServer *http.Server
	deps       Dependencies
}

// NewServer creates a new Server instance
func NewServer(port int, apiKey string, trustedProxies []string, deps Dependencies) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           newRouter(apiKey, trustedProxies, deps),
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
		deps: deps,
	}
}

// Handler exposes the routed handler, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func newRouter(apiKey string, trustedProxies []string, deps Dependencies) http.Handler {
	r := chi.NewRouter()

	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(apiKey, trustedProxies, detector))
	r.Use(SecurityLoggingMiddleware(trustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBodyBytes))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(deps.DBPool))
	r.Get("/version", handler.HandleVersion())
	r.Handle("/metrics", promhttp.Handler())

	listings := handler.NewListingHandler(deps.ShopService)
	trades := handler.NewTradeHandler(deps.EconomyService)
	balances := handler.NewBalanceHandler(deps.EconomyService)
	adminCache := handler.NewAdminCacheHandler(deps.ListingCache)

	r.Route("/api/v1", func(r chi.Router) {
		if deps.EventHub != nil {
			r.Get("/events", sse.Handler(deps.EventHub))
		}

		r.Route("/shops/{shopID}", func(r chi.Router) {
			r.Post("/match", listings.HandleMatch)

			r.Route("/listings", func(r chi.Router) {
				r.Get("/", listings.HandleList)
				r.Post("/", listings.HandleCreate)

				r.Route("/{listingID}", func(r chi.Router) {
					r.Get("/", listings.HandleGet)
					r.Delete("/", listings.HandleDelete)
					r.Put("/prices", listings.HandleUpdatePrices)
					r.Put("/currency", listings.HandleSetCurrency)
					r.Post("/stock", listings.HandleRestock)
					r.Get("/trades", listings.HandleTrades)

					r.Get("/quote", trades.HandleQuote)
					r.Post("/buy", trades.HandleBuy)
					r.Post("/sell", trades.HandleSell)
				})
			})
		})

		r.Route("/players/{playerID}/balances/{currency}", func(r chi.Router) {
			r.Get("/", balances.HandleGetBalance)
			r.Post("/", balances.HandleDeposit)
		})

		r.Route("/admin/cache", func(r chi.Router) {
			r.Get("/stats", adminCache.HandleGetCacheStats)
			r.Delete("/", adminCache.HandleClearCache)
		})
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return r
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

// Flush keeps the event stream working through the logging wrapper
func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Probes and scrapes are too chatty to log
		for _, prefix := range QuietPaths {
			if strings.HasPrefix(r.URL.Path, prefix) {
				next.ServeHTTP(w, r)
				return
			}
		}

		ctx := logger.WithRequestID(r.Context(), logger.GenerateRequestID())
		r = r.WithContext(ctx)
		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		sanitizedHeaders := make(http.Header, len(r.Header))
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds())
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
