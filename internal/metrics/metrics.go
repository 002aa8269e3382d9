// Package metrics holds the Prometheus collectors exposed on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels recorded for every handled request.
const (
	OutcomeSuccess         = "success"
	OutcomeValidationError = "validation_error"
	OutcomeControllerError = "controller_error"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "todo_http_requests_total",
			Help: "Total number of handled API requests by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "todo_http_request_duration_seconds",
			Help:    "Duration of API requests in seconds, validation included",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	RateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "todo_rate_limit_hits_total",
			Help: "Requests rejected by the rate limiter",
		},
		[]string{"path"},
	)
)

// RecordRequest records one handled request.
func RecordRequest(operation, outcome string, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(operation, outcome).Inc()
	HTTPRequestDuration.WithLabelValues(operation).Observe(duration.Seconds())
}
