package waterquality

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/aquasentinel/aquasentinel/internal/station"
)

// ErrSynthesis is returned when a station's reading cannot be computed.
var ErrSynthesis = errors.New("reading synthesis failed")

// Noise band applied to every synthesized value.
const (
	NoiseMin = 0.85
	NoiseMax = 1.15
)

// requiredDefaults are substituted when a baseline lacks a required entry.
var requiredDefaults = map[Parameter]float64{
	PH:              7.5,
	Temperature:     25,
	Turbidity:       5,
	TDS:             300,
	Conductivity:    450,
	TotalHardness:   150,
	TotalAlkalinity: 120,
	Chlorides:       60,
	Nitrates:        10,
	Phosphates:      0.5,
	Fluoride:        0.8,
	Iron:            0.2,
	Arsenic:         0.002,
	Lead:            0.001,
	Chromium:        0.005,
	Cadmium:         0.0005,
	TotalColiform:   50,
	FecalColiform:   10,
}

// derivation estimates a parameter from an already synthesized peer when the
// baseline does not model it.
type derivation struct {
	target Parameter
	source Parameter
	ratio  float64
}

// Evaluated in order; potassium depends on sodium.
var derivations = []derivation{
	{Calcium, TotalHardness, 0.25},
	{Magnesium, TotalHardness, 0.12},
	{Sodium, Chlorides, 0.2},
	{Potassium, Sodium, 0.1},
	{Sulfates, Chlorides, 0.15},
}

func isDerived(p Parameter) bool {
	for _, d := range derivations {
		if d.target == p {
			return true
		}
	}
	return false
}

// Sample is a synthesized, unscored set of parameter values.
type Sample struct {
	StationID      string
	Timestamp      time.Time
	Season         Season
	Values         Values
	Odor           string
	Taste          string
	PollutionEvent bool
}

// SynthesizerConfig holds configuration for the reading synthesizer.
type SynthesizerConfig struct {
	// Events perturbs values with pollution events.
	Events EventInjector

	// Location is the time zone seasons and hours are evaluated in.
	// Default: UTC
	Location *time.Location

	Logger zerolog.Logger
}

// DefaultSynthesizerConfig returns the default synthesizer configuration.
func DefaultSynthesizerConfig() SynthesizerConfig {
	return SynthesizerConfig{
		Events:   DefaultEventInjector(),
		Location: time.UTC,
		Logger:   zerolog.Nop(),
	}
}

// Synthesizer turns a station baseline into a sample for a point in time.
type Synthesizer struct {
	config SynthesizerConfig
}

// NewSynthesizer creates a synthesizer.
func NewSynthesizer(cfg SynthesizerConfig) *Synthesizer {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &Synthesizer{config: cfg}
}

// WithEvents returns a copy of the synthesizer using the given injector.
func (s *Synthesizer) WithEvents(events EventInjector) *Synthesizer {
	cfg := s.config
	cfg.Events = events
	return &Synthesizer{config: cfg}
}

// Location returns the time zone the synthesizer evaluates time in.
func (s *Synthesizer) Location() *time.Location {
	return s.config.Location
}

// Synthesize computes a sample for st at the given time.
//
// Each modelled value is baseline × seasonal × diurnal × noise, then possibly
// perturbed by a pollution event, clamped to its plausible range and rounded.
// Derived ions are computed afterwards from their synthesized peers.
func (s *Synthesizer) Synthesize(st station.Station, baseline Baseline, at time.Time, rng RandomSource) (Sample, error) {
	local := at.In(s.config.Location)
	season := SeasonAt(local)
	hour := local.Hour()

	sample := Sample{
		StationID: st.ID,
		Timestamp: at,
		Season:    season,
		Odor:      baseline.Odor,
		Taste:     baseline.Taste,
	}

	base := baseline.Values
	for p, def := range requiredDefaults {
		if !base.Has(p) {
			s.config.Logger.Warn().
				Str("station_id", st.ID).
				Str("parameter", p.String()).
				Float64("default", def).
				Msg("baseline missing required parameter, using default")
			base.Set(p, def)
		}
	}

	for _, p := range Parameters() {
		if isDerived(p) {
			continue
		}
		b, ok := base.Get(p)
		if !ok {
			continue
		}
		if err := s.vary(&sample, rng, p, b, TemporalFactor(season, hour, p)); err != nil {
			return Sample{}, err
		}
	}

	for _, d := range derivations {
		if b, ok := base.Get(d.target); ok {
			if err := s.vary(&sample, rng, d.target, b, TemporalFactor(season, hour, d.target)); err != nil {
				return Sample{}, err
			}
			continue
		}
		peer, ok := sample.Values.Get(d.source)
		if !ok {
			continue
		}
		if err := s.vary(&sample, rng, d.target, peer*d.ratio, 1.0); err != nil {
			return Sample{}, err
		}
	}

	return sample, nil
}

func (s *Synthesizer) vary(sample *Sample, rng RandomSource, p Parameter, base, factor float64) error {
	value := base * factor * uniform(rng, NoiseMin, NoiseMax)

	value, fired := s.config.Events.Apply(rng, p, value)
	if fired {
		sample.PollutionEvent = true
	}

	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("%w: station %s parameter %s is not finite", ErrSynthesis, sample.StationID, p)
	}

	sample.Values.Set(p, Round(p, Clamp(p, value)))
	return nil
}
