package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the service's prometheus collectors.
type Metrics struct {
	registry *prometheus.Registry

	// RainfallFetches counts pipeline invocations by outcome:
	// ok, not_found, upstream_error.
	RainfallFetches *prometheus.CounterVec

	// RecordsCreated counts stored records by entity:
	// harvest, rainfall, interval.
	RecordsCreated *prometheus.CounterVec

	// AnalysisCalls counts analysis requests by outcome: ok, error.
	AnalysisCalls *prometheus.CounterVec
}

// NewMetrics creates and registers the service collectors on a fresh
// registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		RainfallFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "farmlog_rainfall_fetches_total",
			Help: "Rainfall pipeline invocations by outcome.",
		}, []string{"outcome"}),
		RecordsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "farmlog_records_created_total",
			Help: "Records created by entity type.",
		}, []string{"entity"}),
		AnalysisCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "farmlog_analysis_calls_total",
			Help: "AI analysis requests by outcome.",
		}, []string{"outcome"}),
	}

	registry.MustRegister(m.RainfallFetches, m.RecordsCreated, m.AnalysisCalls)
	return m
}

// Registry exposes the underlying registry for the /metrics handler.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
