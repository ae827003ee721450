package featureflags

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
)

// ErrInvalidFlagValue is returned when a well-known flag is set to a value of
// the wrong type or range.
var ErrInvalidFlagValue = errors.New("invalid feature flag value")

// ServiceConfig holds configuration for the feature flag service.
type ServiceConfig struct {
	Repository   Repository
	Logger       zerolog.Logger
	CacheTTL     time.Duration // How long to cache flags in memory
	DefaultFlags map[string]*Flag
	Clock        clockwork.Clock
}

// Service provides feature flag evaluation with caching and fallback.
type Service struct {
	repo         Repository
	logger       zerolog.Logger
	cacheTTL     time.Duration
	defaultFlags map[string]*Flag
	clock        clockwork.Clock

	mu          sync.RWMutex
	cache       map[string]*Flag
	cacheExpiry time.Time
}

// NewService creates a new feature flag service.
func NewService(cfg ServiceConfig) *Service {
	clock := cfg.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	cacheTTL := cfg.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 1 * time.Minute
	}

	defaultFlags := cfg.DefaultFlags
	if defaultFlags == nil {
		defaultFlags = DefaultFlags(clock.Now())
	}

	repo := cfg.Repository
	if repo == nil {
		repo = NewInMemoryRepository()
	}

	return &Service{
		repo:         repo,
		logger:       cfg.Logger,
		cacheTTL:     cacheTTL,
		defaultFlags: defaultFlags,
		clock:        clock,
		cache:        make(map[string]*Flag),
	}
}

// GetFlag retrieves a feature flag by key.
// Uses cached value if available and not expired, with fallback to defaults.
func (s *Service) GetFlag(ctx context.Context, key string) *Flag {
	if flag := s.getCached(key); flag != nil {
		return flag
	}

	flag, err := s.repo.GetFlag(ctx, key)
	if err == nil {
		s.setCached(key, flag)
		return flag
	}

	if !errors.Is(err, ErrFlagNotFound) {
		s.logger.Warn().Err(err).Str("flag", key).Msg("failed to get feature flag from repository")
	}

	if defaultFlag, ok := s.defaultFlags[key]; ok {
		return defaultFlag
	}
	return nil
}

// GetAllFlags returns repository flags merged over defaults.
func (s *Service) GetAllFlags(ctx context.Context) map[string]*Flag {
	result := make(map[string]*Flag, len(s.defaultFlags))
	for k, v := range s.defaultFlags {
		result[k] = v
	}

	flags, err := s.repo.GetAllFlags(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to get feature flags from repository, using defaults")
		return result
	}
	for k, v := range flags {
		result[k] = v
	}

	s.mu.Lock()
	s.cache = flags
	s.cacheExpiry = s.clock.Now().Add(s.cacheTTL)
	s.mu.Unlock()

	return result
}

// SetFlag updates a single feature flag.
func (s *Service) SetFlag(ctx context.Context, flag *Flag) error {
	return s.SetFlags(ctx, []*Flag{flag})
}

// SetFlags validates and updates multiple feature flags atomically.
func (s *Service) SetFlags(ctx context.Context, flags []*Flag) error {
	for _, flag := range flags {
		if err := validate(flag); err != nil {
			return err
		}
	}

	now := s.clock.Now()
	for _, flag := range flags {
		flag.UpdatedAt = now
	}
	if err := s.repo.SetFlags(ctx, flags); err != nil {
		return err
	}

	s.mu.Lock()
	for _, flag := range flags {
		s.cache[flag.Key] = flag
	}
	s.mu.Unlock()

	for _, flag := range flags {
		s.logger.Info().Str("flag", flag.Key).Interface("value", flag.Value).Msg("feature flag updated")
	}
	return nil
}

// ResetFlag drops the stored override for key so the default applies again.
// It returns ErrFlagNotFound when no override exists.
func (s *Service) ResetFlag(ctx context.Context, key string) error {
	if err := s.repo.DeleteFlag(ctx, key); err != nil {
		return err
	}

	s.mu.Lock()
	delete(s.cache, key)
	s.mu.Unlock()

	s.logger.Info().Str("flag", key).Msg("feature flag reset to default")
	return nil
}

// InvalidateCache clears the cached flags, forcing a refresh on next access.
func (s *Service) InvalidateCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = make(map[string]*Flag)
	s.cacheExpiry = time.Time{}
}

// IsEnabled returns true if the flag with the given key is truthy.
func (s *Service) IsEnabled(ctx context.Context, key string) bool {
	return s.GetFlag(ctx, key).BoolValue(false)
}

func (s *Service) getCached(key string) *Flag {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.clock.Now().After(s.cacheExpiry) {
		return nil
	}
	return s.cache[key]
}

func (s *Service) setCached(key string, flag *Flag) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache[key] = flag
	if now := s.clock.Now(); s.cacheExpiry.Before(now) {
		s.cacheExpiry = now.Add(s.cacheTTL)
	}
}

func validate(flag *Flag) error {
	switch flag.Key {
	case "":
		return fmt.Errorf("%w: missing key", ErrInvalidFlagValue)
	case FlagPollutionEvents, FlagExtendedWQI, FlagReadingSink, FlagFleetDigest:
		if _, ok := flag.Value.(bool); !ok {
			return fmt.Errorf("%w: %s must be a boolean", ErrInvalidFlagValue, flag.Key)
		}
	case FlagPollutionEventProbability:
		p, ok := flag.Value.(float64)
		if !ok || p < 0 || p > 1 {
			return fmt.Errorf("%w: %s must be a number in [0, 1]", ErrInvalidFlagValue, flag.Key)
		}
	}
	return nil
}

// Convenience methods for well-known flags.

// PollutionEventsEnabled reports whether pollution events may be injected.
func (s *Service) PollutionEventsEnabled(ctx context.Context) bool {
	return s.IsEnabled(ctx, FlagPollutionEvents)
}

// PollutionEventProbability returns the configured event chance, or
// defaultValue when unset or invalid.
func (s *Service) PollutionEventProbability(ctx context.Context, defaultValue float64) float64 {
	p := s.GetFlag(ctx, FlagPollutionEventProbability).Float64Value(defaultValue)
	if p < 0 || p > 1 {
		return defaultValue
	}
	return p
}

// ExtendedWQIEnabled reports whether readings use the extended weight set.
func (s *Service) ExtendedWQIEnabled(ctx context.Context) bool {
	return s.IsEnabled(ctx, FlagExtendedWQI)
}

// ReadingSinkEnabled reports whether readings are handed to sinks.
func (s *Service) ReadingSinkEnabled(ctx context.Context) bool {
	return s.IsEnabled(ctx, FlagReadingSink)
}

// FleetDigestEnabled reports whether the digest job should run.
func (s *Service) FleetDigestEnabled(ctx context.Context) bool {
	return s.IsEnabled(ctx, FlagFleetDigest)
}
