// Package worker runs the simulation loop and its background jobs.
package worker

import (
	"runtime"
	"time"

	"github.com/aquasentinel/aquasentinel/internal/waterquality"
)

// DefaultInterval is the time between scheduled ticks.
const DefaultInterval = 900 * time.Second

// SchedulerConfig holds configuration for the simulation scheduler.
type SchedulerConfig struct {
	// Interval is the time between scheduled ticks.
	// Default: 900 seconds
	Interval time.Duration

	// Concurrency bounds the number of stations synthesized in parallel.
	// Default: GOMAXPROCS
	Concurrency int

	// MaxTickDuration stops scheduling further stations once a tick has run
	// this long. Remaining stations keep their previous reading.
	// Default: 0 (unbounded)
	MaxTickDuration time.Duration

	// SinkTimeout bounds how long a tick waits on each sink.
	// Default: 10 seconds
	SinkTimeout time.Duration

	// WQIMethod selects the weight set, "cpcb" or "extended".
	// Default: cpcb
	WQIMethod string

	// TemperatureCompensation uses the temperature dependent DO saturation.
	TemperatureCompensation bool

	// Location is the time zone seasons and diurnal hours are evaluated in.
	// Default: UTC
	Location *time.Location
}

// DefaultSchedulerConfig returns the default scheduler configuration.
func DefaultSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		Interval:    DefaultInterval,
		Concurrency: runtime.GOMAXPROCS(0),
		SinkTimeout: 10 * time.Second,
		WQIMethod:   waterquality.MethodCPCB,
		Location:    time.UTC,
	}
}

func (c SchedulerConfig) withDefaults() SchedulerConfig {
	d := DefaultSchedulerConfig()
	if c.Interval <= 0 {
		c.Interval = d.Interval
	}
	if c.Concurrency <= 0 {
		c.Concurrency = d.Concurrency
	}
	if c.SinkTimeout <= 0 {
		c.SinkTimeout = d.SinkTimeout
	}
	if c.WQIMethod == "" {
		c.WQIMethod = d.WQIMethod
	}
	if c.Location == nil {
		c.Location = d.Location
	}
	return c
}
