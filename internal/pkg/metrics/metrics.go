// Package metrics holds the prometheus collectors exported on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ModelAttempts counts text model calls by route, model and outcome.
	ModelAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "editor",
		Subsystem: "ai",
		Name:      "model_attempts_total",
		Help:      "Text generation attempts per model and outcome.",
	}, []string{"route", "model", "outcome"})

	// ProviderLatency observes outbound provider calls.
	ProviderLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "editor",
		Subsystem: "provider",
		Name:      "request_duration_seconds",
		Help:      "Latency of outbound provider requests.",
		Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
	}, []string{"provider", "status"})

	// HTTPRequests counts served requests by route template and status class.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "editor",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Served HTTP requests.",
	}, []string{"method", "route", "code"})
)

// ObserveProvider records one outbound call.
func ObserveProvider(provider, status string, started time.Time) {
	ProviderLatency.WithLabelValues(provider, status).Observe(time.Since(started).Seconds())
}
