package orchestrators

import (
	"context"
	"errors"
	"log/slog"
)

// ScheduleClearStore defines the store interface needed by ClearSchedule.
type ScheduleClearStore interface {
	ClearSchedule(ctx context.Context, feisID string) (int, error)
}

// ClearScheduleInput carries input for the clear schedule orchestrator.
type ClearScheduleInput struct {
	FeisID string
}

// ClearScheduleDeps holds dependencies for ClearSchedule.
type ClearScheduleDeps struct {
	ScheduleStore ScheduleClearStore
}

// ExecuteClearSchedule wipes stage and start from every competition of the
// feis, returning them to the unscheduled pool. Durations are kept so an
// organizer-set duration survives the clear.
// PRE: FeisID must be non-empty
// POST: No competition of the feis carries a stage or start; returns how
// many were cleared
func ExecuteClearSchedule(ctx context.Context, input ClearScheduleInput, deps ClearScheduleDeps) (int, error) {
	if input.FeisID == "" {
		return 0, errors.New("feis ID is required")
	}

	cleared, err := deps.ScheduleStore.ClearSchedule(ctx, input.FeisID)
	if err != nil {
		return 0, err
	}

	slog.Info("scheduler_event", "event", "schedule_cleared", "feis_id", input.FeisID, "competitions", cleared)
	return cleared, nil
}
