package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/neexbeast/countries-api/internal/country"
)

// Handlers holds the dependencies for all HTTP handlers.
type Handlers struct {
	fetcher CountryFetcher
	log     *slog.Logger
}

// NewHandlers constructs Handlers with all required dependencies.
func NewHandlers(fetcher CountryFetcher, log *slog.Logger) *Handlers {
	return &Handlers{
		fetcher: fetcher,
		log:     log,
	}
}

// writeJSON encodes v as JSON and writes it with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// ListCountries handles GET /api/v1/countries.
// Parameters are validated first, then the full dataset is fetched and run
// through name filter → population filter → sort → limit.
func (h *Handlers) ListCountries(w http.ResponseWriter, r *http.Request) {
	log := h.log.With("request_id", middleware.GetReqID(r.Context()))

	q, err := parseQuery(r.URL.Query())
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	resp, err := h.fetcher.Fetch(r.Context())
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, context.DeadlineExceeded) {
			status = http.StatusGatewayTimeout
		}
		log.Error("upstream fetch failed", "status", status, "err", err)
		w.WriteHeader(status)
		return
	}

	if !resp.OK() {
		log.Warn("forwarding upstream status", "status", resp.StatusCode)
		w.WriteHeader(resp.StatusCode)
		return
	}

	countries, err := country.Decode(resp.Body)
	if err != nil {
		if errors.Is(err, country.ErrNoData) {
			log.Warn("upstream returned no country data")
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "no country data available"})
			return
		}
		log.Error("decoding upstream response failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	result := country.Apply(countries, q)
	log.Debug("countries listed",
		"upstream", len(countries),
		"returned", len(result),
		"sort", q.Sort.String(),
	)
	writeJSON(w, http.StatusOK, result)
}

// HealthHandlerFunc returns an http.HandlerFunc reporting Redis connectivity.
// A nil pinger means the service runs without Redis and is reported as disabled.
func HealthHandlerFunc(redis Pinger, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if redis == nil {
			writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "redis": "disabled"})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		if err := redis.Ping(ctx); err != nil {
			log.Error("health check: redis ping failed", "err", err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded", "redis": "error"})
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "redis": "ok"})
	}
}
