// Package metrics provides Prometheus metrics for predicate evaluation.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Evaluation paths.
const (
	PathFast     = "fast"
	PathFallback = "fallback"
)

// Metrics holds the evaluation counters. A nil *Metrics records nothing.
type Metrics struct {
	// Predicate evaluations by path and outcome
	Evaluations *prometheus.CounterVec

	// Predicates built per path
	PredicatesBuilt *prometheus.CounterVec

	// Extractor invocations on the fast path
	ExtractorCalls prometheus.Counter

	// Wall time of concurrent scans
	ScanDuration prometheus.Histogram

	registry *prometheus.Registry
}

// New creates the metrics on a private registry.
func New() *Metrics {
	m := &Metrics{
		Evaluations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "fastnbt",
				Subsystem: "predicate",
				Name:      "evaluations_total",
				Help:      "Total number of predicate evaluations",
			},
			[]string{"path", "result"},
		),
		PredicatesBuilt: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "fastnbt",
				Subsystem: "predicate",
				Name:      "built_total",
				Help:      "Total number of predicates built",
			},
			[]string{"path"},
		),
		ExtractorCalls: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "fastnbt",
				Subsystem: "extractor",
				Name:      "calls_total",
				Help:      "Total number of field extractor invocations",
			},
		),
		ScanDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "fastnbt",
				Subsystem: "scan",
				Name:      "duration_seconds",
				Help:      "Duration of entity scans in seconds",
				Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
			},
		),
		registry: prometheus.NewRegistry(),
	}
	m.registry.MustRegister(m.Evaluations, m.PredicatesBuilt, m.ExtractorCalls, m.ScanDuration)
	return m
}

// Registry returns the registry the metrics are registered on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordBuild counts a predicate built for path.
func (m *Metrics) RecordBuild(path string) {
	if m == nil {
		return
	}
	m.PredicatesBuilt.WithLabelValues(path).Inc()
}

// RecordEvaluation counts one evaluation.
func (m *Metrics) RecordEvaluation(path string, matched bool) {
	if m == nil {
		return
	}
	result := "miss"
	if matched {
		result = "match"
	}
	m.Evaluations.WithLabelValues(path, result).Inc()
}

// RecordExtractions counts n extractor invocations.
func (m *Metrics) RecordExtractions(n int) {
	if m == nil {
		return
	}
	m.ExtractorCalls.Add(float64(n))
}

// RecordScan observes the duration of a scan started at start.
func (m *Metrics) RecordScan(start time.Time) {
	if m == nil {
		return
	}
	m.ScanDuration.Observe(time.Since(start).Seconds())
}
