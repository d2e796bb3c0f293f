package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "countries_api"

var (
	// RequestsTotal counts inbound requests by chi route pattern and status code.
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "http_requests_total", Help: "Number of served requests by route and status code."},
		[]string{"route", "code"},
	)
	// UpstreamRequests counts country dataset fetches by outcome.
	UpstreamRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "upstream_requests_total", Help: "Number of upstream fetches by outcome (success, status, error)."},
		[]string{"outcome"},
	)
	// UpstreamDuration observes how long each dataset fetch took.
	UpstreamDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{Namespace: namespace, Name: "upstream_request_duration_seconds", Help: "Latency of upstream fetches.", Buckets: prometheus.DefBuckets},
	)
	// RateLimitRejected counts requests refused with 429, by limiter backend.
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter backend."},
		[]string{"limiter"},
	)
)

// RegisterCollectors registers the service collectors on reg.
// It panics if they are already registered there.
func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(RequestsTotal)
	reg.MustRegister(UpstreamRequests)
	reg.MustRegister(UpstreamDuration)
	reg.MustRegister(RateLimitRejected)
}
