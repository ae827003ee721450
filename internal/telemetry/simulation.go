package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// SimulationInstruments mirrors the tick outcome onto OTLP so collectors
// without a Prometheus scrape still see fleet progress. A nil receiver is
// a no-op.
type SimulationInstruments struct {
	ticks    metric.Int64Counter
	updated  metric.Int64Counter
	failed   metric.Int64Counter
	events   metric.Int64Counter
	duration metric.Float64Histogram
}

// NewSimulationInstruments registers the simulation instruments on meter.
func NewSimulationInstruments(meter metric.Meter) (*SimulationInstruments, error) {
	ticks, err := meter.Int64Counter("simulation.ticks",
		metric.WithDescription("Completed simulation ticks"))
	if err != nil {
		return nil, err
	}
	updated, err := meter.Int64Counter("simulation.stations.updated",
		metric.WithDescription("Stations that received a new reading"))
	if err != nil {
		return nil, err
	}
	failed, err := meter.Int64Counter("simulation.stations.failed",
		metric.WithDescription("Stations whose reading could not be produced or stored"))
	if err != nil {
		return nil, err
	}
	events, err := meter.Int64Counter("simulation.pollution_events",
		metric.WithDescription("Readings carrying an injected pollution event"))
	if err != nil {
		return nil, err
	}
	duration, err := meter.Float64Histogram("simulation.tick.duration",
		metric.WithDescription("Wall time of one tick"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, err
	}

	return &SimulationInstruments{
		ticks:    ticks,
		updated:  updated,
		failed:   failed,
		events:   events,
		duration: duration,
	}, nil
}

// RecordTick records one completed tick.
func (s *SimulationInstruments) RecordTick(ctx context.Context, trigger string, updated, failed, events int, d time.Duration) {
	if s == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("trigger", trigger))
	s.ticks.Add(ctx, 1, attrs)
	s.updated.Add(ctx, int64(updated), attrs)
	s.failed.Add(ctx, int64(failed), attrs)
	s.events.Add(ctx, int64(events), attrs)
	s.duration.Record(ctx, d.Seconds(), attrs)
}
