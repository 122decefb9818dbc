// Package metrics counts annotation runs and writes them in the Prometheus
// text exposition format, for node_exporter's textfile collector.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/czbiohub-sf/maca/pkg/annotation"
)

const namespace = "maca"

// Table outcomes.
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// Recorder collects per-tissue counters. It is safe for concurrent use.
type Recorder struct {
	reg      *prometheus.Registry
	tables   *prometheus.CounterVec
	rows     *prometheus.CounterVec
	changes  *prometheus.CounterVec
	unknown  prometheus.Counter
	duration *prometheus.HistogramVec
}

// New returns a Recorder with its own registry.
func New() *Recorder {
	r := &Recorder{
		reg: prometheus.NewRegistry(),
		tables: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tables_total",
			Help:      "Annotation tables processed, by tissue and outcome.",
		}, []string{"tissue", "status"}),
		rows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_total",
			Help:      "Rows cleaned, by tissue.",
		}, []string{"tissue"}),
		changes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "step_changes_total",
			Help:      "Row changes made by tissue-specific steps.",
		}, []string{"tissue"}),
		unknown: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "unknown_tissue_tables_total",
			Help:      "Tables whose tissue has no registered rule set.",
		}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "table_duration_seconds",
			Help:      "Time to read, clean and write one table.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 4, 8),
		}, []string{"tissue"}),
	}
	r.reg.MustRegister(r.tables, r.rows, r.changes, r.unknown, r.duration)
	return r
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry { return r.reg }

// Observe records a successful table.
func (r *Recorder) Observe(rep annotation.Report, elapsed time.Duration) {
	r.tables.WithLabelValues(rep.Tissue, StatusOK).Inc()
	r.rows.WithLabelValues(rep.Tissue).Add(float64(rep.Rows))
	r.changes.WithLabelValues(rep.Tissue).Add(float64(rep.Changed()))
	r.duration.WithLabelValues(rep.Tissue).Observe(elapsed.Seconds())
	if !rep.Known {
		r.unknown.Inc()
	}
}

// Failed records a table that could not be processed.
func (r *Recorder) Failed(tissue string) {
	r.tables.WithLabelValues(tissue, StatusFailed).Inc()
}

// WriteFile atomically writes all metrics to path.
func (r *Recorder) WriteFile(path string) error {
	return prometheus.WriteToTextfile(path, r.reg)
}
