package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// RouterConfig carries the optional pieces of the router.
type RouterConfig struct {
	// Token enables bearer auth on the countries route when non-empty.
	Token string
	// RateLimit is applied to the countries route when non-nil.
	RateLimit func(http.Handler) http.Handler
	// Redis is pinged by the health check; nil reports it as disabled.
	Redis Pinger
	// Metrics serves /metrics when non-nil.
	Metrics http.Handler
}

// NewRouter builds and returns the Chi router with all routes configured.
// Health and metrics are unauthenticated and not rate limited.
func NewRouter(handlers *Handlers, cfg RouterConfig, log *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(Metrics)

	r.Get("/api/v1/health", HealthHandlerFunc(cfg.Redis, log))
	if cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.Metrics)
	}

	r.Group(func(r chi.Router) {
		if cfg.RateLimit != nil {
			r.Use(cfg.RateLimit)
		}
		if cfg.Token != "" {
			r.Use(BearerAuth(cfg.Token))
		}
		r.Get("/api/v1/countries", handlers.ListCountries)
	})

	return r
}

// Ensure chi.Mux implements http.Handler.
var _ http.Handler = (*chi.Mux)(nil)
