package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/aquasentinel/aquasentinel/internal/fleet"
	"github.com/aquasentinel/aquasentinel/internal/observability"
	"github.com/aquasentinel/aquasentinel/internal/telemetry"
	"github.com/aquasentinel/aquasentinel/internal/waterquality"
)

// Scheduler errors.
var (
	ErrAlreadyRunning = errors.New("simulation is already running")
	ErrNotRunning     = errors.New("simulation is not running")
)

const tracerName = "github.com/aquasentinel/aquasentinel/internal/worker"

// Tick triggers, used as metric labels.
const (
	TriggerScheduled = "scheduled"
	TriggerManual    = "manual"
)

// State is the lifecycle state of the scheduler.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Sink receives the readings of every tick.
type Sink interface {
	Publish(ctx context.Context, readings []*waterquality.Reading) error
}

// FlagSource supplies the runtime toggles read at the start of each tick.
// *featureflags.Service satisfies it.
type FlagSource interface {
	PollutionEventsEnabled(ctx context.Context) bool
	PollutionEventProbability(ctx context.Context, defaultValue float64) float64
	ExtendedWQIEnabled(ctx context.Context) bool
	ReadingSinkEnabled(ctx context.Context) bool
}

// RefreshResult summarises one tick.
type RefreshResult struct {
	Timestamp       time.Time     `json:"timestamp"`
	Trigger         string        `json:"trigger"`
	StationsUpdated int           `json:"stationsUpdated"`
	Failed          int           `json:"failed"`
	Skipped         int           `json:"skipped"`
	PollutionEvents int           `json:"pollutionEvents"`
	Duration        time.Duration `json:"-"`
}

// TickMetrics tracks scheduler statistics across ticks.
type TickMetrics struct {
	TotalTicks           int64
	ManualTicks          int64
	TotalStationsUpdated int64
	TotalFailures        int64
	TotalSkipped         int64

	LastTickAt       time.Time
	LastTickDuration time.Duration
	TotalDuration    time.Duration
	LastResult       RefreshResult
}

// Status is a point-in-time view of the scheduler.
type Status struct {
	State    State         `json:"state"`
	Interval time.Duration `json:"-"`
	Stations int           `json:"stations"`
	Metrics  TickMetrics   `json:"-"`
}

// SchedulerOptions holds the dependencies of a Scheduler.
type SchedulerOptions struct {
	Config  SchedulerConfig
	Fleet   *fleet.Fleet
	Clock   clockwork.Clock
	Logger  zerolog.Logger
	Metrics *observability.Metrics
	Flags   FlagSource
	Sinks   []Sink
	Tracer  trace.Tracer

	// Instruments, when set, mirrors tick outcomes onto OTLP.
	Instruments *telemetry.SimulationInstruments
}

// Scheduler advances the simulation. It is the only writer of fleet state.
// Ticks never overlap, whether scheduled or requested through Refresh.
type Scheduler struct {
	config  SchedulerConfig
	fleet   *fleet.Fleet
	clock   clockwork.Clock
	logger  zerolog.Logger
	metrics *observability.Metrics
	flags   FlagSource
	sinks   []Sink
	tracer  trace.Tracer
	otlp    *telemetry.SimulationInstruments

	synthesizer *waterquality.Synthesizer
	engine      waterquality.Engine

	mu       sync.Mutex
	state    State
	interval time.Duration
	cancel   context.CancelFunc
	done     chan struct{}

	tickMu    sync.Mutex
	lastTick  time.Time
	tickCount uint64

	statsMu sync.RWMutex
	stats   TickMetrics
}

// NewScheduler creates an idle scheduler.
func NewScheduler(opts SchedulerOptions) *Scheduler {
	cfg := opts.Config.withDefaults()
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.Tracer == nil {
		opts.Tracer = otel.Tracer(tracerName)
	}

	synthCfg := waterquality.DefaultSynthesizerConfig()
	synthCfg.Location = cfg.Location
	synthCfg.Logger = opts.Logger

	engine := waterquality.NewEngine(cfg.WQIMethod)
	engine.TemperatureCompensation = cfg.TemperatureCompensation

	return &Scheduler{
		config:      cfg,
		fleet:       opts.Fleet,
		clock:       opts.Clock,
		logger:      opts.Logger,
		metrics:     opts.Metrics,
		flags:       opts.Flags,
		sinks:       opts.Sinks,
		tracer:      opts.Tracer,
		otlp:        opts.Instruments,
		synthesizer: waterquality.NewSynthesizer(synthCfg),
		engine:      engine,
		interval:    cfg.Interval,
	}
}

// Start runs one tick synchronously and then ticks every interval until Stop.
// A non-positive interval uses the configured one. Neither the first tick nor
// the loop observe ctx cancellation; ctx carries trace context only.
func (s *Scheduler) Start(ctx context.Context, interval time.Duration) (RefreshResult, error) {
	s.mu.Lock()
	if s.state == StateRunning {
		s.mu.Unlock()
		return RefreshResult{}, ErrAlreadyRunning
	}
	if interval <= 0 {
		interval = s.config.Interval
	}
	loopCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	done := make(chan struct{})
	s.state = StateRunning
	s.interval = interval
	s.cancel = cancel
	s.done = done
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.SimulationRunning.Set(1)
	}
	s.logger.Info().
		Dur("interval", interval).
		Int("stations", s.fleet.Len()).
		Msg("simulation started")

	result := s.tick(ctx, TriggerScheduled)
	go s.loop(loopCtx, interval, done)
	return result, nil
}

// Stop halts the loop and waits for an in-flight tick to finish.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	if s.state != StateRunning {
		s.mu.Unlock()
		return ErrNotRunning
	}
	cancel, done := s.cancel, s.done
	s.state = StateStopped
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	cancel()
	<-done

	if s.metrics != nil {
		s.metrics.SimulationRunning.Set(0)
	}
	s.logger.Info().Msg("simulation stopped")
	return nil
}

// Refresh runs one tick immediately, regardless of state.
func (s *Scheduler) Refresh(ctx context.Context) RefreshResult {
	return s.tick(ctx, TriggerManual)
}

// State returns the lifecycle state.
func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Status returns the lifecycle state, interval and tick statistics.
func (s *Scheduler) Status() Status {
	s.mu.Lock()
	st := Status{State: s.state, Interval: s.interval, Stations: s.fleet.Len()}
	s.mu.Unlock()
	st.Metrics = s.GetMetrics()
	return st
}

// GetMetrics returns a copy of the tick statistics.
func (s *Scheduler) GetMetrics() TickMetrics {
	s.statsMu.RLock()
	defer s.statsMu.RUnlock()
	return s.stats
}

func (s *Scheduler) loop(ctx context.Context, interval time.Duration, done chan struct{}) {
	defer close(done)

	ticker := s.clock.NewTicker(interval)
	defer ticker.Stop()

	// In-flight ticks run to completion after Stop.
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			if ctx.Err() != nil {
				return
			}
			s.tick(ctx, TriggerScheduled)
		}
	}
}

// tick synthesizes a reading for every station and publishes it. A tick
// ignores cancellation of ctx; only MaxTickDuration cuts it short.
func (s *Scheduler) tick(ctx context.Context, trigger string) RefreshResult {
	ctx = context.WithoutCancel(ctx)

	s.tickMu.Lock()
	defer s.tickMu.Unlock()

	start := s.clock.Now()
	at := start
	if !s.lastTick.IsZero() && !at.After(s.lastTick) {
		at = s.lastTick.Add(time.Millisecond)
	}
	s.lastTick = at
	s.tickCount++
	tickSeed := s.fleet.Seed() ^ (s.tickCount * 0x9e3779b97f4a7c15)

	ctx, span := s.tracer.Start(ctx, "simulation.tick", trace.WithAttributes(
		attribute.String("simulation.trigger", trigger),
		attribute.Int("simulation.stations", s.fleet.Len()),
		attribute.Int64("simulation.tick", int64(s.tickCount)),
	))
	defer span.End()

	model := s.model(ctx)

	var deadline time.Time
	if s.config.MaxTickDuration > 0 {
		deadline = start.Add(s.config.MaxTickDuration)
	}

	n := s.fleet.Len()
	readings := make([]*waterquality.Reading, n)
	var updated, failed, events atomic.Int64
	skipped := 0

	var g errgroup.Group
	g.SetLimit(s.config.Concurrency)
	for i := 0; i < n; i++ {
		if !deadline.IsZero() && s.clock.Now().After(deadline) {
			skipped = n - i
			break
		}
		g.Go(func() error {
			r, err := s.updateStation(i, at, model, tickSeed)
			if err != nil {
				failed.Add(1)
				s.recordStationError(s.fleet.At(i).Station().ID, err)
				return nil
			}
			readings[i] = r
			updated.Add(1)
			if r.PollutionEvent {
				events.Add(1)
			}
			return nil
		})
	}
	_ = g.Wait()

	if updated.Load() > 0 {
		s.fleet.MarkUpdated(at)
	}

	published := make([]*waterquality.Reading, 0, updated.Load())
	for _, r := range readings {
		if r != nil {
			published = append(published, r)
		}
	}
	s.publish(ctx, published)

	result := RefreshResult{
		Timestamp:       at,
		Trigger:         trigger,
		StationsUpdated: int(updated.Load()),
		Failed:          int(failed.Load()),
		Skipped:         skipped,
		PollutionEvents: int(events.Load()),
		Duration:        s.clock.Since(start),
	}
	span.SetAttributes(
		attribute.Int("simulation.updated", result.StationsUpdated),
		attribute.Int("simulation.failed", result.Failed),
		attribute.Int("simulation.skipped", result.Skipped),
	)

	s.updateMetrics(result)
	s.otlp.RecordTick(ctx, trigger, result.StationsUpdated, result.Failed, result.PollutionEvents, result.Duration)

	s.logger.Info().
		Str("trigger", trigger).
		Time("timestamp", at).
		Int("updated", result.StationsUpdated).
		Int("failed", result.Failed).
		Int("skipped", result.Skipped).
		Int("pollution_events", result.PollutionEvents).
		Dur("duration", result.Duration).
		Msg("simulation tick completed")
	if skipped > 0 {
		s.logger.Warn().Int("skipped", skipped).Dur("max_tick_duration", s.config.MaxTickDuration).Msg("tick exceeded its time budget")
	}
	return result
}

// model builds the synthesis pipeline for one tick from the current flags.
func (s *Scheduler) model(ctx context.Context) waterquality.Model {
	events := waterquality.DefaultEventInjector()
	engine := s.engine
	if s.flags != nil {
		events.Enabled = s.flags.PollutionEventsEnabled(ctx)
		events.Probability = s.flags.PollutionEventProbability(ctx, waterquality.DefaultEventProbability)
		if s.flags.ExtendedWQIEnabled(ctx) {
			engine.Weights = waterquality.ExtendedWeights
		}
	}
	return waterquality.Model{
		Synthesizer: s.synthesizer.WithEvents(events),
		Engine:      engine,
	}
}

func (s *Scheduler) updateStation(i int, at time.Time, model waterquality.Model, tickSeed uint64) (r *waterquality.Reading, err error) {
	state := s.fleet.At(i)
	st := state.Station()

	defer func() {
		if rec := recover(); rec != nil {
			r, err = nil, fmt.Errorf("%w: station %s panicked: %v", waterquality.ErrSynthesis, st.ID, rec)
		}
	}()

	r, err = model.Generate(st, s.fleet.Baseline(i), at, waterquality.StationRandom(tickSeed, st.ID))
	if err != nil {
		return nil, err
	}
	if err := state.Publish(r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *Scheduler) recordStationError(id string, err error) {
	stale := errors.Is(err, fleet.ErrStaleReading)
	if s.metrics != nil {
		if stale {
			s.metrics.StaleReadings.Inc()
		} else {
			s.metrics.SynthesisErrors.Inc()
		}
	}
	s.logger.Error().Err(err).Str("station_id", id).Bool("stale", stale).Msg("station skipped this tick")
}

func (s *Scheduler) publish(ctx context.Context, readings []*waterquality.Reading) {
	if len(s.sinks) == 0 || len(readings) == 0 {
		return
	}
	if s.flags != nil && !s.flags.ReadingSinkEnabled(ctx) {
		return
	}
	for _, sink := range s.sinks {
		sinkCtx, cancel := context.WithTimeout(ctx, s.config.SinkTimeout)
		if err := sink.Publish(sinkCtx, readings); err != nil {
			s.logger.Error().Err(err).Int("readings", len(readings)).Msg("failed to publish readings")
		}
		cancel()
	}
}

func (s *Scheduler) updateMetrics(result RefreshResult) {
	s.statsMu.Lock()
	s.stats.TotalTicks++
	if result.Trigger == TriggerManual {
		s.stats.ManualTicks++
	}
	s.stats.TotalStationsUpdated += int64(result.StationsUpdated)
	s.stats.TotalFailures += int64(result.Failed)
	s.stats.TotalSkipped += int64(result.Skipped)
	s.stats.LastTickAt = result.Timestamp
	s.stats.LastTickDuration = result.Duration
	s.stats.TotalDuration += result.Duration
	s.stats.LastResult = result
	s.statsMu.Unlock()

	if s.metrics == nil {
		return
	}
	s.metrics.TicksTotal.WithLabelValues(result.Trigger).Inc()
	s.metrics.TickDuration.Observe(result.Duration.Seconds())
	s.metrics.StationsUpdated.Add(float64(result.StationsUpdated))
	s.metrics.SkippedStations.Add(float64(result.Skipped))
	s.metrics.PollutionEvents.Add(float64(result.PollutionEvents))
	s.updateFleetGauges()
}

// updateFleetGauges recomputes gauges over every current reading, including
// stations that kept an older reading this tick.
func (s *Scheduler) updateFleetGauges() {
	var warning, critical, reporting int
	var total float64
	byStatus := make(map[waterquality.Status]int)
	for _, r := range s.fleet.Readings() {
		reporting++
		total += r.WQI
		byStatus[r.Status]++
		for _, a := range r.Alerts {
			if a.Severity == waterquality.SeverityCritical {
				critical++
			} else {
				warning++
			}
		}
	}

	s.metrics.ActiveAlerts.WithLabelValues(string(waterquality.SeverityWarning)).Set(float64(warning))
	s.metrics.ActiveAlerts.WithLabelValues(string(waterquality.SeverityCritical)).Set(float64(critical))
	for _, st := range waterquality.Statuses() {
		s.metrics.StationsByStatus.WithLabelValues(st.String()).Set(float64(byStatus[st]))
	}
	if reporting > 0 {
		s.metrics.FleetAverageWQI.Set(total / float64(reporting))
	}
}
