package featureflags

import (
	"context"
	"errors"
)

// ErrFlagNotFound is returned when no override is stored for a key.
var ErrFlagNotFound = errors.New("feature flag not found")

// Repository stores operator overrides. Keys absent from the repository fall
// back to the service defaults.
type Repository interface {
	GetFlag(ctx context.Context, key string) (*Flag, error)
	GetAllFlags(ctx context.Context) (map[string]*Flag, error)

	// SetFlags stores all overrides or none.
	SetFlags(ctx context.Context, flags []*Flag) error

	// DeleteFlag removes an override, returning ErrFlagNotFound if absent.
	DeleteFlag(ctx context.Context, key string) error
}
