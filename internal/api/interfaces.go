package api

import (
	"context"

	"github.com/neexbeast/countries-api/internal/upstream"
)

// CountryFetcher retrieves the raw upstream country dataset.
type CountryFetcher interface {
	Fetch(ctx context.Context) (*upstream.Response, error)
}

// Pinger reports whether a backing service is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}
