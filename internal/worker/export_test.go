package worker

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/aquasentinel/aquasentinel/internal/observability"
)

// ApplyControl exposes message dispatch to tests without a Pub/Sub client.
func ApplyControl(ctx context.Context, c Controller, metrics *observability.Metrics, data []byte) error {
	return newControlHandler(c, zerolog.Nop(), metrics).apply(ctx, data)
}
