// Package featureflags toggles simulation behavior at runtime without a restart.
package featureflags

import (
	"time"
)

// Well-known feature flag keys.
const (
	// FlagPollutionEvents enables random pollution event injection.
	FlagPollutionEvents = "pollution_events_enabled"

	// FlagPollutionEventProbability overrides the per-parameter event chance.
	FlagPollutionEventProbability = "pollution_event_probability"

	// FlagExtendedWQI scores readings with the extended weight set instead of CPCB.
	FlagExtendedWQI = "extended_wqi_enabled"

	// FlagReadingSink enables publishing readings to the configured sinks.
	FlagReadingSink = "reading_sink_enabled"

	// FlagFleetDigest enables the periodic fleet digest job.
	FlagFleetDigest = "fleet_digest_enabled"
)

// Flag represents a feature flag with its current value.
type Flag struct {
	Key       string      `json:"key"`
	Value     interface{} `json:"value"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// FlagList represents a list of feature flags.
type FlagList struct {
	Items []Flag `json:"items"`
}

// FlagUpdate represents a single flag update request.
type FlagUpdate struct {
	Key   string      `json:"key"`
	Value interface{} `json:"value"`
}

// FlagUpdateRequest represents a request to update feature flags.
type FlagUpdateRequest struct {
	Updates []FlagUpdate `json:"updates"`
	Reason  string       `json:"reason"`
}

// BoolValue returns the flag value as a boolean.
// Returns the default value if the flag is nil or not a boolean.
func (f *Flag) BoolValue(defaultValue bool) bool {
	if f == nil {
		return defaultValue
	}
	switch v := f.Value.(type) {
	case bool:
		return v
	case float64:
		// JSON unmarshals numbers as float64
		return v != 0
	default:
		return defaultValue
	}
}

// StringValue returns the flag value as a string.
func (f *Flag) StringValue(defaultValue string) string {
	if f == nil {
		return defaultValue
	}
	if v, ok := f.Value.(string); ok {
		return v
	}
	return defaultValue
}

// Float64Value returns the flag value as a float64.
func (f *Flag) Float64Value(defaultValue float64) float64 {
	if f == nil {
		return defaultValue
	}
	switch v := f.Value.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	default:
		return defaultValue
	}
}

// DefaultFlags returns the default feature flags, stamped with now.
func DefaultFlags(now time.Time) map[string]*Flag {
	return map[string]*Flag{
		FlagPollutionEvents:           {Key: FlagPollutionEvents, Value: true, UpdatedAt: now},
		FlagPollutionEventProbability: {Key: FlagPollutionEventProbability, Value: 0.05, UpdatedAt: now},
		FlagExtendedWQI:               {Key: FlagExtendedWQI, Value: false, UpdatedAt: now},
		FlagReadingSink:               {Key: FlagReadingSink, Value: true, UpdatedAt: now},
		FlagFleetDigest:               {Key: FlagFleetDigest, Value: true, UpdatedAt: now},
	}
}
