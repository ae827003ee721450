// Package config loads service settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/aquasentinel/aquasentinel/internal/waterquality"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	Port     string
	Env      string
	LogLevel zerolog.Level

	// Station registry source. File wins over URL; with neither set the
	// network is generated from StationSeed.
	StationsFile    string
	StationsURL     string
	StationDistrict string
	StationSeed     uint64

	SimulationInterval    time.Duration
	SimulationAutostart   bool
	SimulationConcurrency int
	HistoryCapacity       int
	MaxTickDuration       time.Duration
	WQIMethod             string
	Location              *time.Location

	// TemperatureCompensation scores DO against temperature dependent saturation.
	TemperatureCompensation bool

	KafkaEnabled       bool
	KafkaBrokers       []string
	KafkaReadingsTopic string
	KafkaAlertsTopic   string

	PubSubProjectID    string
	PubSubSubscription string

	DigestSchedule string

	OTelEnabled     bool
	OTelEndpoint    string
	OTelSampleRatio float64

	// AdminToken guards simulation control and flag endpoints. Empty leaves
	// them open.
	AdminToken string
	RequireTLS bool

	ShutdownTimeout time.Duration
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(envOrDefault("LOG_LEVEL", "info")))
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	seed, err := strconv.ParseUint(envOrDefault("STATION_SEED", "42"), 10, 64)
	if err != nil {
		return nil, errors.New("invalid STATION_SEED")
	}

	interval, err := parseDuration("SIMULATION_INTERVAL", "900s")
	if err != nil {
		return nil, err
	}
	maxTick, err := parseDuration("MAX_TICK_DURATION", "0s")
	if err != nil {
		return nil, err
	}
	shutdown, err := parseDuration("SHUTDOWN_TIMEOUT", "30s")
	if err != nil {
		return nil, err
	}

	concurrency, err := parseInt("SIMULATION_CONCURRENCY", runtime.GOMAXPROCS(0))
	if err != nil {
		return nil, err
	}
	capacity, err := parseInt("HISTORY_CAPACITY", 100)
	if err != nil {
		return nil, err
	}

	ratio, err := strconv.ParseFloat(envOrDefault("OTEL_SAMPLE_RATIO", "1"), 64)
	if err != nil || ratio < 0 || ratio > 1 {
		return nil, errors.New("OTEL_SAMPLE_RATIO must be a number in [0, 1]")
	}

	loc, err := time.LoadLocation(envOrDefault("TIMEZONE", "Asia/Kolkata"))
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE: %w", err)
	}

	cfg := &Config{
		Port:     envOrDefault("APP_PORT", "8080"),
		Env:      envOrDefault("APP_ENV", "development"),
		LogLevel: level,

		StationsFile:    os.Getenv("STATIONS_FILE"),
		StationsURL:     os.Getenv("STATIONS_URL"),
		StationDistrict: os.Getenv("STATION_DISTRICT"),
		StationSeed:     seed,

		SimulationInterval:    interval,
		SimulationAutostart:   envOrDefault("SIMULATION_AUTOSTART", "true") == "true",
		SimulationConcurrency: concurrency,
		HistoryCapacity:       capacity,
		MaxTickDuration:       maxTick,
		WQIMethod:             strings.ToLower(envOrDefault("WQI_METHOD", waterquality.MethodCPCB)),
		Location:              loc,

		TemperatureCompensation: os.Getenv("WQI_TEMPERATURE_COMPENSATION") == "true",

		KafkaEnabled:       os.Getenv("KAFKA_ENABLED") == "true",
		KafkaBrokers:       parseBrokers(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaReadingsTopic: envOrDefault("KAFKA_READINGS_TOPIC", "water-quality-readings"),
		KafkaAlertsTopic:   envOrDefault("KAFKA_ALERTS_TOPIC", "water-quality-alerts"),

		PubSubProjectID:    os.Getenv("PUBSUB_PROJECT_ID"),
		PubSubSubscription: envOrDefault("PUBSUB_SUBSCRIPTION", "simulation-control"),

		DigestSchedule: envOrDefault("DIGEST_SCHEDULE", "0 * * * *"),

		OTelEnabled:     os.Getenv("OTEL_ENABLED") == "true",
		OTelEndpoint:    envOrDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		OTelSampleRatio: ratio,

		AdminToken: os.Getenv("ADMIN_TOKEN"),
		RequireTLS: os.Getenv("REQUIRE_TLS") == "true",

		ShutdownTimeout: shutdown,
	}

	if cfg.SimulationInterval <= 0 {
		return nil, errors.New("SIMULATION_INTERVAL must be positive")
	}
	if cfg.SimulationConcurrency <= 0 {
		return nil, errors.New("SIMULATION_CONCURRENCY must be positive")
	}
	if cfg.HistoryCapacity <= 0 {
		return nil, errors.New("HISTORY_CAPACITY must be positive")
	}
	if cfg.MaxTickDuration < 0 {
		return nil, errors.New("MAX_TICK_DURATION must not be negative")
	}
	if cfg.WQIMethod != waterquality.MethodCPCB && cfg.WQIMethod != waterquality.MethodExtended {
		return nil, fmt.Errorf("WQI_METHOD must be %q or %q", waterquality.MethodCPCB, waterquality.MethodExtended)
	}
	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_BROKERS is required when KAFKA_ENABLED is true")
	}
	if cfg.KafkaEnabled && (cfg.KafkaReadingsTopic == "" || cfg.KafkaAlertsTopic == "") {
		return nil, errors.New("KAFKA_READINGS_TOPIC and KAFKA_ALERTS_TOPIC are required")
	}
	if cfg.IsProduction() && cfg.AdminToken == "" {
		return nil, errors.New("ADMIN_TOKEN is required in production")
	}

	return cfg, nil
}

// IsProduction reports whether APP_ENV is production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// PubSubEnabled reports whether a control subscription is configured.
func (c *Config) PubSubEnabled() bool {
	return c.PubSubProjectID != "" && c.PubSubSubscription != ""
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDuration(key, fallback string) (time.Duration, error) {
	raw := envOrDefault(key, fallback)
	d, err := time.ParseDuration(raw)
	if err != nil {
		// Bare integers are seconds.
		n, convErr := strconv.Atoi(raw)
		if convErr != nil {
			return 0, fmt.Errorf("invalid %s", key)
		}
		d = time.Duration(n) * time.Second
	}
	return d, nil
}

func parseInt(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return n, nil
}

func parseBrokers(raw string) []string {
	var out []string
	for _, b := range strings.Split(raw, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}
