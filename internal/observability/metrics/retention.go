// Package metrics provides retention guard metrics for observability
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// RetentionMetrics contains Prometheus metrics for record and retention
// guard operations.
type RetentionMetrics struct {
	registry *prometheus.Registry

	recordsCreatedTotal    prometheus.Counter
	deletionRejectedTotal  *prometheus.CounterVec
	recordsPurgedTotal     prometheus.Counter
	recordOperationsTotal  *prometheus.CounterVec

	// collectors is a slice of all collectors for easier iteration
	collectors []prometheus.Collector
}

// NewRetentionMetrics creates and registers new retention metrics
func NewRetentionMetrics(registry *prometheus.Registry) (*RetentionMetrics, error) {
	m := &RetentionMetrics{registry: registry}
	m.initMetrics()
	if err := registry.Register(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *RetentionMetrics) initMetrics() {
	m.recordsCreatedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "arkiv_records_created_total",
		Help: "Total number of records written to the archive",
	})

	m.deletionRejectedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "arkiv_deletion_rejected_total",
		Help: "Total number of removal attempts rejected by the retention guard",
	}, []string{"path"})

	m.recordsPurgedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "arkiv_records_purged_total",
		Help: "Total number of records removed through the explicit purge path",
	})

	m.recordOperationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "arkiv_record_operations_total",
		Help: "Total number of record operations by type and status",
	}, []string{"operation", "status"})

	m.collectors = []prometheus.Collector{
		m.recordsCreatedTotal,
		m.deletionRejectedTotal,
		m.recordsPurgedTotal,
		m.recordOperationsTotal,
	}
}

// Describe implements the prometheus.Collector interface
func (m *RetentionMetrics) Describe(ch chan<- *prometheus.Desc) {
	for _, collector := range m.collectors {
		collector.Describe(ch)
	}
}

// Collect implements the prometheus.Collector interface
func (m *RetentionMetrics) Collect(ch chan<- prometheus.Metric) {
	for _, collector := range m.collectors {
		collector.Collect(ch)
	}
}

// RecordCreated increments the created records counter.
func (m *RetentionMetrics) RecordCreated() {
	m.recordsCreatedTotal.Inc()
}

// DeletionRejected increments the rejected deletions counter for the given
// path ("record", "bulk" or "api").
func (m *RetentionMetrics) DeletionRejected(path string) {
	m.deletionRejectedTotal.WithLabelValues(path).Inc()
}

// RecordPurged increments the purged records counter.
func (m *RetentionMetrics) RecordPurged() {
	m.recordsPurgedTotal.Inc()
}

// RecordOperation increments the record operations counter.
func (m *RetentionMetrics) RecordOperation(operation, status string) {
	m.recordOperationsTotal.WithLabelValues(operation, status).Inc()
}
