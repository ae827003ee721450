package waterquality

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/aquasentinel/aquasentinel/internal/station"
)

// Reading is a scored, immutable snapshot of one station at one instant.
type Reading struct {
	StationID      string
	Timestamp      time.Time
	Season         Season
	Values         Values
	Odor           string
	Taste          string
	WQI            float64
	Classification Category
	WaterClass     WaterClass
	Status         Status
	PollutionEvent bool
	Alerts         []Alert
}

// NewReading scores a sample with engine and evaluates its alerts.
func NewReading(sample Sample, engine Engine) *Reading {
	idx := engine.Compute(sample.Values)
	return &Reading{
		StationID:      sample.StationID,
		Timestamp:      sample.Timestamp,
		Season:         sample.Season,
		Values:         sample.Values,
		Odor:           sample.Odor,
		Taste:          sample.Taste,
		WQI:            idx.WQI,
		Classification: idx.Classification,
		WaterClass:     idx.WaterClass,
		Status:         idx.Status,
		PollutionEvent: sample.PollutionEvent,
		Alerts:         EvaluateAlerts(sample.Values),
	}
}

// Value returns the value of p and whether it was measured.
func (r *Reading) Value(p Parameter) (float64, bool) {
	return r.Values.Get(p)
}

// AlertCount returns the number of alerts.
func (r *Reading) AlertCount() int {
	return len(r.Alerts)
}

// HasCriticalAlert reports whether any alert is critical.
func (r *Reading) HasCriticalAlert() bool {
	for _, a := range r.Alerts {
		if a.Severity == SeverityCritical {
			return true
		}
	}
	return false
}

// MarshalJSON writes the reading as a flat object: metadata, then parameters
// in canonical order, then the derived fields. Unmeasured parameters are omitted.
func (r *Reading) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	field := func(key string, v any) error {
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encoding %s: %w", key, err)
		}
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		buf.WriteString(strconv.Quote(key))
		buf.WriteByte(':')
		buf.Write(b)
		return nil
	}

	if err := field("station_id", r.StationID); err != nil {
		return nil, err
	}
	if err := field("timestamp", r.Timestamp.Format(time.RFC3339Nano)); err != nil {
		return nil, err
	}
	if err := field("season", r.Season); err != nil {
		return nil, err
	}

	var err error
	r.Values.Each(func(p Parameter, x float64) {
		if err == nil {
			err = field(p.String(), x)
		}
	})
	if err != nil {
		return nil, err
	}

	alerts := r.Alerts
	if alerts == nil {
		alerts = []Alert{}
	}
	rest := []struct {
		key string
		v   any
	}{
		{"odor", r.Odor},
		{"taste", r.Taste},
		{"wqi", r.WQI},
		{"classification", r.Classification},
		{"waterQualityClass", r.WaterClass},
		{"status", r.Status},
		{"pollutionEvent", r.PollutionEvent},
		{"alerts", alerts},
	}
	for _, f := range rest {
		if err := field(f.key, f.v); err != nil {
			return nil, err
		}
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Model runs the full reading pipeline for a station.
type Model struct {
	Synthesizer *Synthesizer
	Engine      Engine
}

// Generate synthesizes and scores a reading for st at the given time.
func (m Model) Generate(st station.Station, baseline Baseline, at time.Time, rng RandomSource) (*Reading, error) {
	sample, err := m.Synthesizer.Synthesize(st, baseline, at, rng)
	if err != nil {
		return nil, err
	}
	return NewReading(sample, m.Engine), nil
}
