package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/gobank/internal/adapter/http/handler"
	"github.com/iho/gobank/internal/adapter/http/middleware"
	"github.com/iho/gobank/internal/infrastructure/metrics"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	ClientHandler   *handler.ClientHandler
	AccountHandler  *handler.AccountHandler
	TransferHandler *handler.TransferHandler
	HealthHandler   *handler.HealthHandler
	Logger          zerolog.Logger
	Metrics         *metrics.Metrics
	RateLimitRPS    float64
	RateLimitBurst  int
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery(cfg.Logger))

	if cfg.Metrics != nil {
		r.Use(middleware.NewMetricsMiddleware(cfg.Metrics).Wrap)
	}

	if cfg.RateLimitRPS > 0 {
		r.Use(middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, cfg.Metrics).Limit)
	}

	// Health and metrics endpoints
	if cfg.HealthHandler != nil {
		r.Get("/health", cfg.HealthHandler.Liveness)
		r.Get("/ready", cfg.HealthHandler.Readiness)
	}
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Clients
		r.Route("/clients", func(r chi.Router) {
			r.Post("/", cfg.ClientHandler.Create)
			r.Get("/{id}", cfg.ClientHandler.Get)
			r.Patch("/{id}", cfg.ClientHandler.Rename)
			r.Post("/{id}/accounts", cfg.AccountHandler.Open)
			r.Get("/{id}/accounts", cfg.AccountHandler.ListByClient)
		})

		// Accounts
		r.Get("/accounts/{number}", cfg.AccountHandler.Get)

		// Transfers
		r.Post("/transfers", cfg.TransferHandler.Create)
	})

	return r
}
