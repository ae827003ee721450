// Package observability holds the Prometheus metrics of the simulation.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "aquasentinel"

// Metrics holds the Prometheus counters, histograms and gauges for the simulation.
type Metrics struct {
	TicksTotal           *prometheus.CounterVec // labels: trigger={scheduled,manual}
	TickDuration         prometheus.Histogram
	StationsUpdated      prometheus.Counter
	SynthesisErrors      prometheus.Counter
	StaleReadings        prometheus.Counter
	SkippedStations      prometheus.Counter
	PollutionEvents      prometheus.Counter
	ActiveAlerts         *prometheus.GaugeVec // labels: severity={warning,critical}
	FleetAverageWQI      prometheus.Gauge
	SimulationRunning    prometheus.Gauge
	PublishedReadings    *prometheus.CounterVec // labels: topic
	PublishErrors        *prometheus.CounterVec // labels: topic
	StationsByStatus     *prometheus.GaugeVec   // labels: status
	DigestRuns           prometheus.Counter
	ControlMessagesTotal *prometheus.CounterVec // labels: command, outcome
}

// NewMetrics creates and registers all simulation metrics with reg. A nil reg
// uses the default Prometheus registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := newMetrics()
	reg.MustRegister(m.collectors()...)
	return m
}

// NewMetricsForTesting creates unregistered metrics so tests can build as many
// as they like.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		TicksTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticks_total",
			Help:      "Completed simulation ticks by trigger.",
		}, []string{"trigger"}),
		TickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tick_duration_seconds",
			Help:      "Wall time of a complete fleet tick.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		StationsUpdated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stations_updated_total",
			Help:      "Readings published to station state.",
		}),
		SynthesisErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "synthesis_errors_total",
			Help:      "Stations skipped because synthesis failed or panicked.",
		}),
		StaleReadings: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stale_readings_total",
			Help:      "Readings rejected because they were not newer than the current one.",
		}),
		SkippedStations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "skipped_stations_total",
			Help:      "Stations left untouched because a tick ran out of time.",
		}),
		PollutionEvents: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pollution_events_total",
			Help:      "Readings that carried a pollution event.",
		}),
		ActiveAlerts: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_alerts",
			Help:      "Alerts across current readings by severity.",
		}, []string{"severity"}),
		FleetAverageWQI: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "fleet_average_wqi",
			Help:      "Average WQI over current readings.",
		}),
		SimulationRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "simulation_running",
			Help:      "1 while the scheduler is running, 0 otherwise.",
		}),
		PublishedReadings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "published_readings_total",
			Help:      "Messages written to the reading sinks by topic.",
		}, []string{"topic"}),
		PublishErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "publish_errors_total",
			Help:      "Failed sink writes by topic.",
		}, []string{"topic"}),
		StationsByStatus: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "stations_by_status",
			Help:      "Stations per WQI status in the current readings.",
		}, []string{"status"}),
		DigestRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "digest_runs_total",
			Help:      "Fleet digest jobs executed.",
		}),
		ControlMessagesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "control_messages_total",
			Help:      "Simulation control messages by command and outcome.",
		}, []string{"command", "outcome"}),
	}
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.TicksTotal,
		m.TickDuration,
		m.StationsUpdated,
		m.SynthesisErrors,
		m.StaleReadings,
		m.SkippedStations,
		m.PollutionEvents,
		m.ActiveAlerts,
		m.FleetAverageWQI,
		m.SimulationRunning,
		m.PublishedReadings,
		m.PublishErrors,
		m.StationsByStatus,
		m.DigestRuns,
		m.ControlMessagesTotal,
	}
}
