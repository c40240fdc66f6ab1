// Package metrics exposes Prometheus instrumentation for extraction runs.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ClientAttemptsTotal counts upstream attempts by client profile and outcome.
	ClientAttemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ytstream_client_attempts_total",
		Help: "Upstream player requests by client profile and outcome",
	}, []string{"client", "outcome"})

	// ExtractionsTotal counts finished extractions by selected stream kind.
	ExtractionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ytstream_extractions_total",
		Help: "Extraction calls by result (manifest, muxed, none, no_result)",
	}, []string{"result"})

	// ExtractionDuration tracks wall time of one extraction call.
	ExtractionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "ytstream_extraction_duration_seconds",
		Help:    "Wall time of one extraction call across all client attempts",
		Buckets: []float64{0.25, 0.5, 1, 2, 4, 8, 12, 24, 48},
	})
)

// IncClientAttempt records one client attempt outcome.
func IncClientAttempt(client, outcome string) {
	ClientAttemptsTotal.WithLabelValues(client, outcome).Inc()
}

// IncExtraction records the result kind of one extraction.
func IncExtraction(result string) {
	ExtractionsTotal.WithLabelValues(result).Inc()
}

// ObserveExtractionDuration records extraction wall time.
func ObserveExtractionDuration(d time.Duration) {
	ExtractionDuration.Observe(d.Seconds())
}
