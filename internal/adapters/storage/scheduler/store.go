package scheduler

import (
	"context"

	"feisworks/internal/domain/scheduling"
)

// Store is the read/write boundary of the instant scheduler: one batched
// read of the whole feis, one transactional write of the placements.
type Store interface {
	LoadContext(ctx context.Context, feisID string) (*scheduling.Context, error)
	PersistPlacements(ctx context.Context, feisID string, placements []scheduling.Placement) error
	ClearSchedule(ctx context.Context, feisID string) (int, error)
}
