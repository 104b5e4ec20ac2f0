package contracts

import (
	"context"

	"providercard-service/internal/pkg/dto/responses"
)

type ProbeUsecase interface {
	// EnqueueProbe schedules a single registry entry for probing.
	EnqueueProbe(ctx context.Context, entryID string) error
	// ExecuteProbe performs the availability check against the entry's
	// endpoint, updates its telemetry, and archives the report.
	ExecuteProbe(ctx context.Context, entryID string) (*responses.ProbeReport, error)
}
