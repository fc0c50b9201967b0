// Package metrics exposes Prometheus instrumentation for the analytics
// backend.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// httpRequestsTotal counts HTTP requests by route and status code.
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chatstats_http_requests_total",
		Help: "Total HTTP requests by route and status",
	}, []string{"route", "status"})

	// httpRequestDuration tracks request latency per route.
	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "chatstats_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
	}, []string{"route"})

	// correlationOutcomes counts how each question found its answer.
	correlationOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chatstats_correlation_outcomes_total",
		Help: "Question-answer correlation outcomes by rule",
	}, []string{"outcome"}) // "hash", "sequence", "nearest", "unanswered"

	// queryDuration tracks database query latency by query name.
	queryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "chatstats_db_query_duration_seconds",
		Help:    "Database query duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12), // 0.5ms to ~2s
	}, []string{"query"})

	// recordsLoaded tracks how many log records a conversation search pulled
	// into memory.
	recordsLoaded = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "chatstats_records_loaded",
		Help:    "Log records loaded per conversation search",
		Buckets: []float64{10, 50, 100, 500, 1000, 5000, 10000, 50000},
	})
)

// ObserveRequest records an HTTP request against the route counter and
// latency histogram.
func ObserveRequest(route, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(route, status).Inc()
	httpRequestDuration.WithLabelValues(route).Observe(duration.Seconds())
}

// CountOutcome increments the correlation outcome counter.
func CountOutcome(outcome string) {
	correlationOutcomes.WithLabelValues(outcome).Inc()
}

// ObserveQuery records a database query duration under the given name.
func ObserveQuery(name string, duration time.Duration) {
	queryDuration.WithLabelValues(name).Observe(duration.Seconds())
}

// ObserveRecordsLoaded records the working-set size of a conversation search.
func ObserveRecordsLoaded(n int) {
	recordsLoaded.Observe(float64(n))
}
