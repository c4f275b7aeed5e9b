package observability

import "github.com/prometheus/client_golang/prometheus"

var (
	translationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "querydeck_translations_total",
			Help: "Questions translated, labeled by classified query type.",
		},
		[]string{"type"},
	)

	executionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "querydeck_executions_total",
			Help: "Queries executed, labeled by execution type.",
		},
		[]string{"type"},
	)

	translateDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "querydeck_translate_duration_seconds",
			Help:    "Latency of one natural-language translation.",
			Buckets: prometheus.DefBuckets,
		},
	)
)

func init() {
	prometheus.MustRegister(translationsTotal, executionsTotal, translateDurationSeconds)
}

func IncrementTranslation(queryType string) {
	translationsTotal.WithLabelValues(queryType).Inc()
}

func IncrementExecution(queryType string) {
	executionsTotal.WithLabelValues(queryType).Inc()
}

func ObserveTranslateDuration(seconds float64) {
	translateDurationSeconds.Observe(seconds)
}
