package metrics

import "github.com/prometheus/client_golang/prometheus"

// Extraction and retrieval Prometheus metrics.
var (
	ExtractionRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "casedex",
			Name:      "extraction_requests_total",
			Help:      "Total number of category extraction requests",
		},
		[]string{"provider", "model", "status"}, // status: success / parse_failed / error
	)

	ExtractionRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "casedex",
			Name:      "extraction_request_duration_seconds",
			Help:      "Category extraction request duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"provider", "model"},
	)

	RetrievalResultsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "casedex",
			Name:      "retrieval_results_total",
			Help:      "Ranked results returned, by source",
		},
		[]string{"source"}, // "vector" / "fallback"
	)

	RetrievalFallbackTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "casedex",
			Name:      "retrieval_fallback_total",
			Help:      "Fallback matcher invocations by outcome",
		},
		[]string{"outcome"}, // "filled" / "empty" / "error"
	)
)

var retrievalMetricsRegistered bool

// RegisterRetrievalMetrics registers extraction and retrieval metrics. Must be called once from main.
func RegisterRetrievalMetrics() {
	if retrievalMetricsRegistered {
		return
	}
	prometheus.MustRegister(ExtractionRequestsTotal)
	prometheus.MustRegister(ExtractionRequestDuration)
	prometheus.MustRegister(RetrievalResultsTotal)
	prometheus.MustRegister(RetrievalFallbackTotal)
	retrievalMetricsRegistered = true
}
