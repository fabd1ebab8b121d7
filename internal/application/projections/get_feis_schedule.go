package projections

import (
	"context"
	"sort"
	"time"

	"feisworks/internal/domain/scheduling"
)

// ScheduleSchedulerStore defines the store interface needed by this projection.
type ScheduleSchedulerStore interface {
	LoadContext(ctx context.Context, feisID string) (*scheduling.Context, error)
}

// GetFeisScheduleDeps holds dependencies for the projection.
type GetFeisScheduleDeps struct {
	SchedulerStore ScheduleSchedulerStore
}

// ScheduleSlot is one competition on the timetable.
type ScheduleSlot struct {
	CompetitionID   string    `json:"competition_id"`
	Name            string    `json:"name"`
	AgeRange        string    `json:"age_range"`
	Level           string    `json:"level"`
	ScheduledStart  time.Time `json:"scheduled_start"`
	ScheduledEnd    time.Time `json:"scheduled_end"`
	DurationMinutes int       `json:"duration_minutes"`
	EntryCount      int       `json:"entry_count"`
	Championship    bool      `json:"championship"`
}

// StageSchedule is the ordered timetable of one stage.
type StageSchedule struct {
	StageID   string         `json:"stage_id"`
	StageName string         `json:"stage_name"`
	Slots     []ScheduleSlot `json:"slots"`
}

// FeisScheduleView is the whole feis timetable plus whatever is still
// unscheduled.
type FeisScheduleView struct {
	FeisID      string          `json:"feis_id"`
	FeisName    string          `json:"feis_name"`
	Date        string          `json:"date"`
	Venue       string          `json:"venue"`
	Notes       string          `json:"notes"`
	Stages      []StageSchedule `json:"stages"`
	Unscheduled []ScheduleSlot  `json:"unscheduled"`
}

// QueryGetFeisSchedule builds the per-stage timetable for display: stages in
// sequence order, slots in start order, unscheduled competitions listed
// separately.
func QueryGetFeisSchedule(ctx context.Context, feisID string, deps GetFeisScheduleDeps) (FeisScheduleView, error) {
	sctx, err := deps.SchedulerStore.LoadContext(ctx, feisID)
	if err != nil {
		return FeisScheduleView{}, err
	}

	view := FeisScheduleView{
		FeisID:   sctx.Feis.ID,
		FeisName: sctx.Feis.Name,
		Date:     sctx.Feis.Date,
		Venue:    sctx.Feis.Venue,
		Notes:    sctx.Feis.Notes,
	}

	counts := sctx.EntryCounts()
	slotsByStage := make(map[string][]ScheduleSlot)
	for _, c := range sctx.Competitions {
		slot := ScheduleSlot{
			CompetitionID:   c.ID,
			Name:            c.Name,
			AgeRange:        c.AgeRange(),
			Level:           c.Level,
			ScheduledStart:  c.ScheduledStart,
			ScheduledEnd:    c.ScheduledEnd(),
			DurationMinutes: c.DurationMinutes,
			EntryCount:      counts[c.ID],
			Championship:    c.IsChampionship(),
		}
		if c.IsScheduled() {
			slotsByStage[c.StageID] = append(slotsByStage[c.StageID], slot)
		} else {
			view.Unscheduled = append(view.Unscheduled, slot)
		}
	}

	ordered := sctx.Stages
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Sequence < ordered[j].Sequence })
	for _, s := range ordered {
		slots := slotsByStage[s.ID]
		sort.Slice(slots, func(i, j int) bool { return slots[i].ScheduledStart.Before(slots[j].ScheduledStart) })
		view.Stages = append(view.Stages, StageSchedule{
			StageID:   s.ID,
			StageName: s.Name,
			Slots:     slots,
		})
	}

	sort.Slice(view.Unscheduled, func(i, j int) bool {
		return view.Unscheduled[i].Name < view.Unscheduled[j].Name
	})
	return view, nil
}
