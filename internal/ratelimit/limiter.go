package ratelimit

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/httprate"

	"github.com/neexbeast/countries-api/internal/metrics"
)

// Middleware returns a per-IP limiter allowing requestLimit requests per window.
// With a nil counter the limiter keeps its state in memory.
func Middleware(requestLimit int, window time.Duration, counter httprate.LimitCounter, log *slog.Logger) func(http.Handler) http.Handler {
	backend := "memory"
	opts := []httprate.Option{
		httprate.WithKeyFuncs(httprate.KeyByIP),
	}
	if counter != nil {
		backend = "redis"
		opts = append(opts, httprate.WithLimitCounter(counter))
	}

	opts = append(opts,
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			metrics.RateLimitRejected.WithLabelValues(backend).Inc()
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
		}),
		httprate.WithErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
			log.Error("rate limiter failed", "backend", backend, "err", err)
			writeError(w, http.StatusServiceUnavailable, "rate limiter unavailable")
		}),
	)

	return httprate.Limit(requestLimit, window, opts...)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
