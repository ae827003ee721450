// Package fleet owns the live state of every monitoring station.
//
// The scheduler is the only writer; any number of readers may query the
// fleet concurrently. Each station has its own lock, held only while its
// current reading and history are swapped.
package fleet

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/aquasentinel/aquasentinel/internal/station"
	"github.com/aquasentinel/aquasentinel/internal/waterquality"
)

// Config holds configuration for a fleet.
type Config struct {
	// HistoryCapacity is the number of superseded readings kept per station.
	// Default: 100
	HistoryCapacity int

	// Seed drives baseline derivation and per-tick randomness.
	Seed uint64

	Logger zerolog.Logger
}

// DefaultConfig returns the default fleet configuration.
func DefaultConfig() Config {
	return Config{
		HistoryCapacity: DefaultHistoryCapacity,
		Seed:            42,
		Logger:          zerolog.Nop(),
	}
}

// Fleet is the set of station states, built once and never resized.
type Fleet struct {
	registry  *station.Registry
	states    []*State
	baselines []waterquality.Baseline
	seed      uint64

	mu         sync.RWMutex
	lastUpdate time.Time
}

// New creates a fleet for every station in reg and derives their baselines.
func New(reg *station.Registry, cfg Config) *Fleet {
	if cfg.HistoryCapacity <= 0 {
		cfg.HistoryCapacity = DefaultHistoryCapacity
	}

	deriver := waterquality.Deriver{Logger: cfg.Logger}
	f := &Fleet{
		registry:  reg,
		states:    make([]*State, reg.Len()),
		baselines: make([]waterquality.Baseline, reg.Len()),
		seed:      cfg.Seed,
	}
	for i := 0; i < reg.Len(); i++ {
		st := reg.At(i)
		f.states[i] = NewState(st, cfg.HistoryCapacity)
		f.baselines[i] = deriver.Derive(st, waterquality.StationRandom(cfg.Seed, st.ID))
	}

	cfg.Logger.Info().
		Int("stations", reg.Len()).
		Int("history_capacity", cfg.HistoryCapacity).
		Msg("fleet initialized")
	return f
}

// Registry returns the station registry.
func (f *Fleet) Registry() *station.Registry { return f.registry }

// Len returns the number of stations.
func (f *Fleet) Len() int { return len(f.states) }

// Seed returns the fleet seed.
func (f *Fleet) Seed() uint64 { return f.seed }

// At returns the state at position i in registry order.
func (f *Fleet) At(i int) *State { return f.states[i] }

// Baseline returns the baseline of the station at position i.
func (f *Fleet) Baseline(i int) waterquality.Baseline { return f.baselines[i] }

// State returns the state of a station by id.
func (f *Fleet) State(id string) (*State, error) {
	i, ok := f.registry.Index(id)
	if !ok {
		return nil, station.ErrStationNotFound
	}
	return f.states[i], nil
}

// Current returns a station's current reading.
func (f *Fleet) Current(id string) (*waterquality.Reading, error) {
	s, err := f.State(id)
	if err != nil {
		return nil, err
	}
	r, ok := s.Current()
	if !ok {
		return nil, ErrNoReading
	}
	return r, nil
}

// History returns up to limit superseded readings of a station, most recent last.
func (f *Fleet) History(id string, limit int) ([]*waterquality.Reading, error) {
	s, err := f.State(id)
	if err != nil {
		return nil, err
	}
	return s.History(limit), nil
}

// Each calls fn for every station in registry order with its current reading,
// which is nil before the station's first tick.
func (f *Fleet) Each(fn func(st station.Station, current *waterquality.Reading)) {
	for _, s := range f.states {
		r, _ := s.Current()
		fn(s.station, r)
	}
}

// Readings returns the current reading of every ticked station.
func (f *Fleet) Readings() []*waterquality.Reading {
	out := make([]*waterquality.Reading, 0, len(f.states))
	for _, s := range f.states {
		if r, ok := s.Current(); ok {
			out = append(out, r)
		}
	}
	return out
}

// MarkUpdated records the time of the last completed tick.
func (f *Fleet) MarkUpdated(t time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if t.After(f.lastUpdate) {
		f.lastUpdate = t
	}
}

// LastUpdate returns the time of the last completed tick, zero before the first.
func (f *Fleet) LastUpdate() time.Time {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.lastUpdate
}
