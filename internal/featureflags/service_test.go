package featureflags_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/aquasentinel/aquasentinel/internal/featureflags"
)

func newService(repo featureflags.Repository, ttl time.Duration) *featureflags.Service {
	return featureflags.NewService(featureflags.ServiceConfig{
		Repository: repo,
		Logger:     zerolog.Nop(),
		CacheTTL:   ttl,
	})
}

func TestService_GetFlagDefaults(t *testing.T) {
	service := newService(featureflags.NewInMemoryRepository(), time.Minute)
	ctx := context.Background()

	flag := service.GetFlag(ctx, featureflags.FlagPollutionEvents)
	if flag == nil {
		t.Fatal("expected flag to be returned")
	}
	if flag.Key != featureflags.FlagPollutionEvents {
		t.Errorf("expected key %q, got %q", featureflags.FlagPollutionEvents, flag.Key)
	}
	if !flag.BoolValue(false) {
		t.Error("expected pollution events to be enabled by default")
	}
	if service.GetFlag(ctx, "unknown") != nil {
		t.Error("expected nil for unknown flag without default")
	}
}

func TestService_SetFlags(t *testing.T) {
	service := newService(featureflags.NewInMemoryRepository(), time.Minute)
	ctx := context.Background()

	err := service.SetFlags(ctx, []*featureflags.Flag{
		{Key: featureflags.FlagPollutionEvents, Value: false},
		{Key: featureflags.FlagExtendedWQI, Value: true},
		{Key: featureflags.FlagPollutionEventProbability, Value: 0.2},
	})
	if err != nil {
		t.Fatalf("failed to set flags: %v", err)
	}

	if service.PollutionEventsEnabled(ctx) {
		t.Error("expected pollution events to be disabled")
	}
	if !service.ExtendedWQIEnabled(ctx) {
		t.Error("expected extended WQI to be enabled")
	}
	if got := service.PollutionEventProbability(ctx, 0.05); got != 0.2 {
		t.Errorf("PollutionEventProbability() = %v, want 0.2", got)
	}
}

func TestService_SetFlagsRejectsInvalidValues(t *testing.T) {
	repo := featureflags.NewInMemoryRepository()
	service := newService(repo, time.Minute)
	ctx := context.Background()

	tests := []struct {
		name string
		flag *featureflags.Flag
	}{
		{"non-boolean toggle", &featureflags.Flag{Key: featureflags.FlagPollutionEvents, Value: "yes"}},
		{"probability above one", &featureflags.Flag{Key: featureflags.FlagPollutionEventProbability, Value: 1.5}},
		{"probability not a number", &featureflags.Flag{Key: featureflags.FlagPollutionEventProbability, Value: true}},
		{"missing key", &featureflags.Flag{Value: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := service.SetFlag(ctx, tt.flag)
			if !errors.Is(err, featureflags.ErrInvalidFlagValue) {
				t.Errorf("expected ErrInvalidFlagValue, got %v", err)
			}
		})
	}

	all, _ := repo.GetAllFlags(ctx)
	if len(all) != 0 {
		t.Errorf("expected nothing stored, got %d flags", len(all))
	}
}

func TestService_CustomFlagsAccepted(t *testing.T) {
	service := newService(featureflags.NewInMemoryRepository(), time.Minute)
	ctx := context.Background()

	if err := service.SetFlag(ctx, &featureflags.Flag{Key: "dashboard_banner", Value: "maintenance"}); err != nil {
		t.Fatalf("failed to set custom flag: %v", err)
	}
	if got := service.GetFlag(ctx, "dashboard_banner").StringValue(""); got != "maintenance" {
		t.Errorf("StringValue() = %q, want %q", got, "maintenance")
	}
}

func TestService_GetAllFlags(t *testing.T) {
	service := newService(featureflags.NewInMemoryRepository(), time.Minute)
	flags := service.GetAllFlags(context.Background())

	expected := []string{
		featureflags.FlagPollutionEvents,
		featureflags.FlagPollutionEventProbability,
		featureflags.FlagExtendedWQI,
		featureflags.FlagReadingSink,
		featureflags.FlagFleetDigest,
	}
	for _, key := range expected {
		if _, ok := flags[key]; !ok {
			t.Errorf("expected flag %q to be present", key)
		}
	}
}

func TestService_CacheExpiresWithClock(t *testing.T) {
	clock := clockwork.NewFakeClock()
	repo := featureflags.NewInMemoryRepositoryWithFlags(map[string]*featureflags.Flag{
		featureflags.FlagReadingSink: {Key: featureflags.FlagReadingSink, Value: true},
	})
	service := featureflags.NewService(featureflags.ServiceConfig{
		Repository: repo,
		Logger:     zerolog.Nop(),
		CacheTTL:   time.Minute,
		Clock:      clock,
	})
	ctx := context.Background()

	if !service.ReadingSinkEnabled(ctx) {
		t.Fatal("expected reading sink to be enabled")
	}

	// Bypass the service so only the repository changes.
	_ = repo.SetFlags(ctx, []*featureflags.Flag{{Key: featureflags.FlagReadingSink, Value: false}})
	if !service.ReadingSinkEnabled(ctx) {
		t.Error("expected cached value before TTL expiry")
	}

	clock.Advance(2 * time.Minute)
	if service.ReadingSinkEnabled(ctx) {
		t.Error("expected fresh value after TTL expiry")
	}
}

func TestService_InvalidateCache(t *testing.T) {
	repo := featureflags.NewInMemoryRepository()
	service := newService(repo, time.Hour)
	ctx := context.Background()

	_ = service.GetFlag(ctx, featureflags.FlagFleetDigest)
	_ = repo.SetFlags(ctx, []*featureflags.Flag{{Key: featureflags.FlagFleetDigest, Value: false}})

	service.InvalidateCache()

	if service.FleetDigestEnabled(ctx) {
		t.Error("expected updated value after cache invalidation")
	}
}

func TestService_PollutionEventProbabilityFallback(t *testing.T) {
	repo := featureflags.NewInMemoryRepositoryWithFlags(map[string]*featureflags.Flag{
		featureflags.FlagPollutionEventProbability: {Key: featureflags.FlagPollutionEventProbability, Value: 7.0},
	})
	service := newService(repo, time.Minute)

	if got := service.PollutionEventProbability(context.Background(), 0.05); got != 0.05 {
		t.Errorf("PollutionEventProbability() = %v, want fallback 0.05", got)
	}
}

func TestFlag_ValueHelpers(t *testing.T) {
	tests := []struct {
		name          string
		value         interface{}
		wantBool      bool
		wantString    string
		wantFloat     float64
		defaultBool   bool
		defaultString string
		defaultFloat  float64
	}{
		{name: "boolean true", value: true, wantBool: true, wantString: "default", wantFloat: 3.14, defaultString: "default", defaultFloat: 3.14},
		{name: "boolean false", value: false, wantBool: false, defaultBool: true, wantString: "default", defaultString: "default"},
		{name: "string value", value: "hello", wantString: "hello", defaultString: "default"},
		{name: "float64 value", value: 0.25, wantBool: true, wantString: "default", wantFloat: 0.25, defaultString: "default"},
		{name: "int value", value: 3, wantString: "d", wantFloat: 3, defaultString: "d"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag := &featureflags.Flag{Key: "test", Value: tt.value}

			if got := flag.BoolValue(tt.defaultBool); got != tt.wantBool {
				t.Errorf("BoolValue() = %v, want %v", got, tt.wantBool)
			}
			if got := flag.StringValue(tt.defaultString); got != tt.wantString {
				t.Errorf("StringValue() = %v, want %v", got, tt.wantString)
			}
			if got := flag.Float64Value(tt.defaultFloat); got != tt.wantFloat {
				t.Errorf("Float64Value() = %v, want %v", got, tt.wantFloat)
			}
		})
	}
}

func TestFlag_NilFlag(t *testing.T) {
	var flag *featureflags.Flag

	if !flag.BoolValue(true) {
		t.Error("expected default value for nil flag")
	}
	if flag.StringValue("default") != "default" {
		t.Error("expected default value for nil flag")
	}
	if flag.Float64Value(3.14) != 3.14 {
		t.Error("expected default value for nil flag")
	}
}

func TestService_ResetFlag(t *testing.T) {
	service := newService(featureflags.NewInMemoryRepository(), time.Minute)
	ctx := context.Background()

	if err := service.SetFlag(ctx, &featureflags.Flag{Key: featureflags.FlagPollutionEvents, Value: false}); err != nil {
		t.Fatalf("failed to set flag: %v", err)
	}
	if service.IsEnabled(ctx, featureflags.FlagPollutionEvents) {
		t.Fatal("expected override to disable pollution events")
	}

	if err := service.ResetFlag(ctx, featureflags.FlagPollutionEvents); err != nil {
		t.Fatalf("failed to reset flag: %v", err)
	}
	if !service.IsEnabled(ctx, featureflags.FlagPollutionEvents) {
		t.Error("expected default to apply after reset")
	}
	if err := service.ResetFlag(ctx, featureflags.FlagPollutionEvents); !errors.Is(err, featureflags.ErrFlagNotFound) {
		t.Errorf("expected ErrFlagNotFound on second reset, got %v", err)
	}
}

func TestInMemoryRepository_DeleteFlag(t *testing.T) {
	repo := featureflags.NewInMemoryRepositoryWithFlags(featureflags.DefaultFlags(time.Now()))
	ctx := context.Background()

	if err := repo.DeleteFlag(ctx, featureflags.FlagExtendedWQI); err != nil {
		t.Fatalf("failed to delete flag: %v", err)
	}
	if _, err := repo.GetFlag(ctx, featureflags.FlagExtendedWQI); !errors.Is(err, featureflags.ErrFlagNotFound) {
		t.Errorf("expected ErrFlagNotFound after delete, got %v", err)
	}
	if err := repo.DeleteFlag(ctx, "nonexistent"); !errors.Is(err, featureflags.ErrFlagNotFound) {
		t.Errorf("expected ErrFlagNotFound for non-existent flag, got %v", err)
	}
}

func TestInMemoryRepository_ReturnsCopies(t *testing.T) {
	repo := featureflags.NewInMemoryRepositoryWithFlags(map[string]*featureflags.Flag{
		"x": {Key: "x", Value: true},
	})
	ctx := context.Background()

	got, _ := repo.GetFlag(ctx, "x")
	got.Value = false

	again, _ := repo.GetFlag(ctx, "x")
	if again.Value != true {
		t.Error("expected stored flag to be unaffected by caller mutation")
	}
}
