// Package metrics exposes Prometheus metrics for document extraction and
// record matching.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	// Extraction metrics
	RecordsExtractedTotal     *prometheus.CounterVec
	ExtractionFailuresTotal   *prometheus.CounterVec
	ExtractionDurationSeconds *prometheus.HistogramVec

	// Match metrics
	MatchesTotal         *prometheus.CounterVec
	MatchCapReachedTotal prometheus.Counter

	// Comparison metrics
	ComparisonsTotal          *prometheus.CounterVec
	ComparisonDurationSeconds *prometheus.HistogramVec
}

// New creates a new Metrics instance with all metrics registered
func New(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		// Extraction metrics
		RecordsExtractedTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "centeno_records_extracted_total",
				Help: "Total number of class-section records extracted by source kind",
			},
			[]string{"kind"}, // kind: tabular, text
		),

		ExtractionFailuresTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "centeno_extraction_failures_total",
				Help: "Total number of recovered extraction failures by source kind and reason",
			},
			[]string{"kind", "reason"}, // reason: unparseable, empty, panic, other
		),

		ExtractionDurationSeconds: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "centeno_extraction_duration_seconds",
				Help:    "Extraction duration in seconds by source kind",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
			},
			[]string{"kind"},
		),

		// Match metrics
		MatchesTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "centeno_matches_total",
				Help: "Total number of match results by kind",
			},
			[]string{"kind"}, // kind: exact, fuzzy, unmatched
		),

		MatchCapReachedTotal: promauto.With(registry).NewCounter(
			prometheus.CounterOpts{
				Name: "centeno_match_cap_reached_total",
				Help: "Total number of comparisons that stopped at the match cap",
			},
		),

		// Comparison metrics
		ComparisonsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "centeno_comparisons_total",
				Help: "Total number of document comparisons by pipeline and status",
			},
			[]string{"pipeline", "status"}, // pipeline: standard, capped; status: matched, empty
		),

		ComparisonDurationSeconds: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "centeno_comparison_duration_seconds",
				Help:    "End-to-end comparison duration in seconds by pipeline",
				Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10},
			},
			[]string{"pipeline"},
		),
	}

	return m
}

// RecordExtraction records the outcome of one extraction.
func (m *Metrics) RecordExtraction(kind string, records int, duration float64) {
	if m == nil {
		return
	}
	m.RecordsExtractedTotal.WithLabelValues(kind).Add(float64(records))
	m.ExtractionDurationSeconds.WithLabelValues(kind).Observe(duration)
}

// RecordExtractionFailure records a recovered extraction failure.
func (m *Metrics) RecordExtractionFailure(kind, reason string) {
	if m == nil {
		return
	}
	m.ExtractionFailuresTotal.WithLabelValues(kind, reason).Inc()
}

// RecordMatches adds n match results of the given kind.
func (m *Metrics) RecordMatches(kind string, n int) {
	if m == nil || n == 0 {
		return
	}
	m.MatchesTotal.WithLabelValues(kind).Add(float64(n))
}

// RecordMatchCapReached records a comparison cut short by the match cap.
func (m *Metrics) RecordMatchCapReached() {
	if m == nil {
		return
	}
	m.MatchCapReachedTotal.Inc()
}

// RecordComparison records one finished comparison.
func (m *Metrics) RecordComparison(pipeline, status string, duration float64) {
	if m == nil {
		return
	}
	m.ComparisonsTotal.WithLabelValues(pipeline, status).Inc()
	m.ComparisonDurationSeconds.WithLabelValues(pipeline).Observe(duration)
}
