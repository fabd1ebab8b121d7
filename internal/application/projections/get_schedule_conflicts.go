package projections

import (
	"context"

	"feisworks/internal/domain/scheduling"
)

// ConflictsSchedulerStore defines the store interface needed by this projection.
type ConflictsSchedulerStore interface {
	LoadContext(ctx context.Context, feisID string) (*scheduling.Context, error)
}

// GetScheduleConflictsDeps holds dependencies for the projection.
type GetScheduleConflictsDeps struct {
	SchedulerStore ConflictsSchedulerStore
}

// QueryGetScheduleConflicts runs conflict detection against the schedule as
// currently stored, independent of any scheduler run. Useful after manual
// edits to placements or entries.
func QueryGetScheduleConflicts(ctx context.Context, feisID string, deps GetScheduleConflictsDeps) ([]scheduling.Conflict, error) {
	sctx, err := deps.SchedulerStore.LoadContext(ctx, feisID)
	if err != nil {
		return nil, err
	}
	return scheduling.DetectConflicts(sctx), nil
}
