package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/iho/studentledger/internal/adapter/http/handler"
	"github.com/iho/studentledger/internal/adapter/http/middleware"
	"github.com/iho/studentledger/internal/infrastructure/metrics"
	"github.com/iho/studentledger/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	TransactionHandler *handler.TransactionHandler
	ReportHandler      *handler.ReportHandler
	HealthHandler      *handler.HealthHandler
	// AuthHandler and TokenVerifier are nil when authentication is disabled;
	// every request then runs as DefaultOwner.
	AuthHandler   *handler.AuthHandler
	TokenVerifier middleware.TokenVerifier
	DefaultOwner  string

	IdempotencyStore usecase.IdempotencyStore
	IdempotencyTTL   time.Duration
	RateLimiter      *middleware.RateLimiter
	Metrics          *metrics.Metrics
	MetricsHandler   http.Handler
	Logger           zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery(cfg.Logger))
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}

	// Health endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	if cfg.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", cfg.MetricsHandler)
	}

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		if cfg.AuthHandler != nil {
			r.Post("/auth/register", cfg.AuthHandler.Register)
			r.Post("/auth/login", cfg.AuthHandler.Login)
		}

		r.Group(func(r chi.Router) {
			if cfg.TokenVerifier != nil {
				r.Use(middleware.AuthMiddleware(cfg.TokenVerifier))
			} else {
				r.Use(middleware.StaticOwner(cfg.DefaultOwner))
			}

			// Idempotency middleware for mutating requests
			if cfg.IdempotencyStore != nil {
				r.Use(middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL, cfg.Logger).Wrap)
			}

			r.Get("/transactions", cfg.TransactionHandler.List)
			r.Post("/transactions", cfg.TransactionHandler.Create)
			r.Delete("/transactions/{id}", cfg.TransactionHandler.Delete)
			r.Post("/transfers/tuition", cfg.TransactionHandler.Transfer)
			r.Get("/summary", cfg.TransactionHandler.Summary)
			r.Get("/report/pdf", cfg.ReportHandler.PDF)

			if cfg.AuthHandler != nil {
				r.Get("/auth/me", cfg.AuthHandler.Me)
			}
		})
	})

	return r
}
