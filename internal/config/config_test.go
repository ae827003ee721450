package config

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, zerolog.InfoLevel, cfg.LogLevel)
	assert.Equal(t, uint64(42), cfg.StationSeed)
	assert.Equal(t, 900*time.Second, cfg.SimulationInterval)
	assert.True(t, cfg.SimulationAutostart)
	assert.Positive(t, cfg.SimulationConcurrency)
	assert.Equal(t, 100, cfg.HistoryCapacity)
	assert.Zero(t, cfg.MaxTickDuration)
	assert.Equal(t, "cpcb", cfg.WQIMethod)
	assert.Equal(t, "Asia/Kolkata", cfg.Location.String())
	assert.False(t, cfg.KafkaEnabled)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "water-quality-readings", cfg.KafkaReadingsTopic)
	assert.Equal(t, "water-quality-alerts", cfg.KafkaAlertsTopic)
	assert.False(t, cfg.PubSubEnabled())
	assert.Equal(t, "0 * * * *", cfg.DigestSchedule)
	assert.False(t, cfg.OTelEnabled)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Empty(t, cfg.AdminToken)
	assert.False(t, cfg.RequireTLS)
	assert.Equal(t, 1.0, cfg.OTelSampleRatio)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("APP_ENV", "production")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("STATIONS_FILE", "/data/stations.json")
	t.Setenv("STATION_DISTRICT", "Pune")
	t.Setenv("STATION_SEED", "7")
	t.Setenv("SIMULATION_INTERVAL", "60")
	t.Setenv("SIMULATION_AUTOSTART", "false")
	t.Setenv("SIMULATION_CONCURRENCY", "4")
	t.Setenv("HISTORY_CAPACITY", "10")
	t.Setenv("MAX_TICK_DURATION", "30s")
	t.Setenv("WQI_METHOD", "Extended")
	t.Setenv("TIMEZONE", "UTC")
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", "broker1:9092, broker2:9092")
	t.Setenv("PUBSUB_PROJECT_ID", "water-project")
	t.Setenv("ADMIN_TOKEN", "ops-token")
	t.Setenv("REQUIRE_TLS", "true")
	t.Setenv("OTEL_SAMPLE_RATIO", "0.25")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, zerolog.DebugLevel, cfg.LogLevel)
	assert.Equal(t, "/data/stations.json", cfg.StationsFile)
	assert.Equal(t, "Pune", cfg.StationDistrict)
	assert.Equal(t, uint64(7), cfg.StationSeed)
	assert.Equal(t, time.Minute, cfg.SimulationInterval)
	assert.False(t, cfg.SimulationAutostart)
	assert.Equal(t, 4, cfg.SimulationConcurrency)
	assert.Equal(t, 10, cfg.HistoryCapacity)
	assert.Equal(t, 30*time.Second, cfg.MaxTickDuration)
	assert.Equal(t, "extended", cfg.WQIMethod)
	assert.Equal(t, time.UTC, cfg.Location)
	assert.True(t, cfg.KafkaEnabled)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.True(t, cfg.PubSubEnabled())
	assert.Equal(t, "ops-token", cfg.AdminToken)
	assert.True(t, cfg.RequireTLS)
	assert.InDelta(t, 0.25, cfg.OTelSampleRatio, 1e-9)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"log level", "LOG_LEVEL", "loud"},
		{"seed", "STATION_SEED", "-1"},
		{"interval", "SIMULATION_INTERVAL", "soon"},
		{"zero interval", "SIMULATION_INTERVAL", "0s"},
		{"concurrency", "SIMULATION_CONCURRENCY", "0"},
		{"history", "HISTORY_CAPACITY", "many"},
		{"tick duration", "MAX_TICK_DURATION", "-5s"},
		{"method", "WQI_METHOD", "nsf"},
		{"timezone", "TIMEZONE", "Mars/Olympus"},
		{"shutdown", "SHUTDOWN_TIMEOUT", "later"},
		{"sample ratio", "OTEL_SAMPLE_RATIO", "2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}

func TestLoad_KafkaWithoutBrokers(t *testing.T) {
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", " , ")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "KAFKA_BROKERS")
}

func TestLoad_ProductionRequiresAdminToken(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ADMIN_TOKEN")
}
