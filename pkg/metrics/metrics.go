// Package metrics provides Prometheus instrumentation for the scan pipeline.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the violation scan pipeline.
type Metrics struct {
	// Scan cycle outcomes: "ok" or "fetch_failed"
	Cycles *prometheus.CounterVec

	// Violations persisted
	ViolationsRecorded prometheus.Counter

	// Entries skipped per cycle, by reason
	EntriesSkipped *prometheus.CounterVec

	// Full cycle latency including upstream calls
	CycleDuration prometheus.Histogram
}

// New creates a new Metrics instance with all scan pipeline metrics registered.
func New() *Metrics {
	return &Metrics{
		Cycles: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "airguardian_scan_cycles_total",
			Help: "Total scan cycles by outcome",
		}, []string{"outcome"}),

		ViolationsRecorded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "airguardian_violations_recorded_total",
			Help: "Total no-fly-zone violations persisted",
		}),

		EntriesSkipped: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "airguardian_scan_entries_skipped_total",
			Help: "Total fleet entries skipped during scans, by reason",
		}, []string{"reason"}),

		CycleDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "airguardian_scan_cycle_duration_seconds",
			Help:    "Duration of full scan cycles including upstream calls",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
	}
}

// IncrementCycle records a completed scan cycle outcome.
func (m *Metrics) IncrementCycle(outcome string) {
	if m != nil {
		m.Cycles.WithLabelValues(outcome).Inc()
	}
}

// IncrementViolations records persisted violations.
func (m *Metrics) IncrementViolations(n int) {
	if m != nil {
		m.ViolationsRecorded.Add(float64(n))
	}
}

// IncrementSkipped records a skipped fleet entry.
func (m *Metrics) IncrementSkipped(reason string) {
	if m != nil {
		m.EntriesSkipped.WithLabelValues(reason).Inc()
	}
}

// ObserveCycleDuration records the duration of one scan cycle.
func (m *Metrics) ObserveCycleDuration(d time.Duration) {
	if m != nil {
		m.CycleDuration.Observe(d.Seconds())
	}
}
