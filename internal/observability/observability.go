// Package observability provides metrics and monitoring capabilities for arkiv.
package observability

import (
	"fmt"
	"net/http"

	"github.com/ahvenlahti/arkiv/internal/observability/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all the metric collectors for the application.
type Metrics struct {
	registry  *prometheus.Registry
	Retention *metrics.RetentionMetrics
}

// NewMetrics creates a new instance of Metrics, initializing all metric
// collectors. It returns an error if any collector fails to initialize.
func NewMetrics() (*Metrics, error) {
	registry := prometheus.NewRegistry()

	retentionMetrics, err := metrics.NewRetentionMetrics(registry)
	if err != nil {
		return nil, fmt.Errorf("failed to create retention metrics: %w", err)
	}

	return &Metrics{
		registry:  registry,
		Retention: retentionMetrics,
	}, nil
}

// Handler returns an HTTP handler exposing the registered metrics in
// Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
