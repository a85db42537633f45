package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	QueryDuration       *prometheus.HistogramVec
	DomainsExtracted    prometheus.Counter
	SessionRunning      prometheus.Gauge
)

func Init() {
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	QueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "query_duration_seconds",
			Help:    "Engine-side latency of row and diff queries.",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"engine"},
	)

	DomainsExtracted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "domains_extracted_total",
			Help: "Total number of unique domains extracted across all sessions.",
		},
	)

	SessionRunning = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "extraction_session_running",
			Help: "1 while an extraction session is active.",
		},
	)
}
