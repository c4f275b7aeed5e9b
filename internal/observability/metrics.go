package observability

import "github.com/prometheus/client_golang/prometheus"

// Request metrics for the API surface. Domain counters for the
// translate and execute pipeline live in domain_metrics.go.
var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "querydeck_http_requests_total",
			Help: "Requests served, labeled by method, path and status.",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "querydeck_http_request_duration_seconds",
			Help:    "End-to-end request latency, including translation and query time.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)

func init() {
	prometheus.MustRegister(httpRequestsTotal, httpRequestDurationSeconds)
}
