package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CacheReads = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "carrental", Subsystem: "query", Name: "reads_total", Help: "Query reads by resource and result (hit, miss)"},
		[]string{"resource", "result"},
	)
	CacheInvalidations = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "carrental", Subsystem: "query", Name: "invalidations_total", Help: "Cache entries marked stale"},
		[]string{"resource"},
	)
	CacheDiscardedResults = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "carrental", Subsystem: "query", Name: "discarded_results_total", Help: "Superseded read results that were not applied"},
		[]string{"resource"},
	)
	CacheEntries = promauto.NewGauge(prometheus.GaugeOpts{Namespace: "carrental", Subsystem: "query", Name: "entries", Help: "Number of cache entries"})

	MutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "carrental", Subsystem: "mutation", Name: "total", Help: "Mutations by name and outcome"},
		[]string{"mutation", "outcome"},
	)

	BackendRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "carrental",
			Name:      "backend_request_duration_seconds",
			Help:      "Backend API latency distribution",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation", "outcome"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "carrental", Name: "http_requests_total", Help: "Total front-end HTTP requests handled"},
		[]string{"method", "path", "status"},
	)
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "carrental",
			Name:      "http_request_duration_seconds",
			Help:      "Front-end HTTP request latency distribution",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)
