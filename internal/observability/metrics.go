// Package observability holds the Prometheus instrumentation for the
// service: upstream fetch outcomes, cache effectiveness, and simulation run
// timings.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for the service.
type Metrics struct {
	UpstreamRequests *prometheus.CounterVec // labels: upstream={nws,wyoming}, outcome={success,error}
	CacheEvents      *prometheus.CounterVec // labels: cache={nws,sounding}, result={hit,miss}

	SimulationRuns     *prometheus.CounterVec   // labels: kind={advection_1d,advection_2d}
	SimulationDuration *prometheus.HistogramVec // labels: kind={advection_1d,advection_2d}

	DerivedForecasts prometheus.Counter
}

// NewMetrics creates and registers all service metrics with the given
// registerer (use prometheus.DefaultRegisterer in production).
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wxlab",
			Name:      "upstream_requests_total",
			Help:      "Upstream data provider requests by outcome.",
		}, []string{"upstream", "outcome"}),
		CacheEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wxlab",
			Name:      "cache_events_total",
			Help:      "Upstream response cache hits and misses.",
		}, []string{"cache", "result"}),
		SimulationRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wxlab",
			Name:      "simulation_runs_total",
			Help:      "PDE demonstration runs by kind.",
		}, []string{"kind"}),
		SimulationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "wxlab",
			Name:      "simulation_duration_seconds",
			Help:      "Wall time of PDE demonstration runs.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
		}, []string{"kind"}),
		DerivedForecasts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "wxlab",
			Name:      "derived_forecasts_total",
			Help:      "Derived forecast computations served.",
		}),
	}

	reg.MustRegister(
		m.UpstreamRequests,
		m.CacheEvents,
		m.SimulationRuns,
		m.SimulationDuration,
		m.DerivedForecasts,
	)
	return m
}
