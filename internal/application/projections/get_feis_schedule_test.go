package projections

import (
	"context"
	"errors"
	"testing"
	"time"

	"feisworks/internal/domain/competition"
	"feisworks/internal/domain/dancer"
	"feisworks/internal/domain/entry"
	"feisworks/internal/domain/feis"
	"feisworks/internal/domain/scheduling"
	"feisworks/internal/domain/stage"
)

type fakeContextLoader struct {
	sctx    *scheduling.Context
	loadErr error
}

func (l *fakeContextLoader) LoadContext(_ context.Context, feisID string) (*scheduling.Context, error) {
	if l.loadErr != nil {
		return nil, l.loadErr
	}
	return l.sctx, nil
}

func scheduleTestContext() *scheduling.Context {
	day := func(hhmm string) time.Time {
		t, _ := time.Parse("2006-01-02 15:04", "2026-03-14 "+hhmm)
		return t
	}
	later := competition.Competition{
		ID: "c-late", FeisID: "f1", Name: "Novice Reel U9", MinAge: 8, MaxAge: 8,
		Level: competition.LevelNovice, ScoringMethod: competition.ScoringSolo,
		StageID: "s1", ScheduledStart: day("10:00"), DurationMinutes: 15,
	}
	earlier := competition.Competition{
		ID: "c-early", FeisID: "f1", Name: "Beginner 1 Reel U8", MinAge: 7, MaxAge: 7,
		Level: competition.LevelBeginner1, ScoringMethod: competition.ScoringSolo,
		StageID: "s1", ScheduledStart: day("09:00"), DurationMinutes: 15,
	}
	pending := competition.Competition{
		ID: "c-pending", FeisID: "f1", Name: "Prizewinner Jig U10", MinAge: 9, MaxAge: 9,
		Level: competition.LevelPrizewinner, ScoringMethod: competition.ScoringSolo,
	}
	return &scheduling.Context{
		Feis: feis.Feis{ID: "f1", Name: "Test Feis", Date: "2026-03-14", Venue: "Hall"},
		Competitions: []competition.Competition{later, earlier, pending},
		Stages: []stage.Stage{
			{ID: "s2", FeisID: "f1", Name: "Stage B", Sequence: 2},
			{ID: "s1", FeisID: "f1", Name: "Stage A", Sequence: 1},
		},
		Entries: []entry.Entry{
			{ID: "e1", CompetitionID: "c-early", DancerID: "d1"},
			{ID: "e2", CompetitionID: "c-early", DancerID: "d2"},
		},
		Dancers: []dancer.Dancer{
			{ID: "d1", Name: "Aoife", ParentID: "p1"},
			{ID: "d2", Name: "Liam", ParentID: "p2"},
		},
	}
}

// TestQueryGetFeisSchedule tests stage ordering, slot ordering and the
// unscheduled bucket.
func TestQueryGetFeisSchedule(t *testing.T) {
	deps := GetFeisScheduleDeps{SchedulerStore: &fakeContextLoader{sctx: scheduleTestContext()}}
	view, err := QueryGetFeisSchedule(context.Background(), "f1", deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if view.FeisName != "Test Feis" || view.Date != "2026-03-14" {
		t.Errorf("header = %q/%q, want feis name and date", view.FeisName, view.Date)
	}
	if len(view.Stages) != 2 {
		t.Fatalf("stages = %d, want 2", len(view.Stages))
	}
	if view.Stages[0].StageID != "s1" || view.Stages[1].StageID != "s2" {
		t.Errorf("stage order = %s, %s, want s1, s2", view.Stages[0].StageID, view.Stages[1].StageID)
	}

	slots := view.Stages[0].Slots
	if len(slots) != 2 {
		t.Fatalf("stage A slots = %d, want 2", len(slots))
	}
	if slots[0].CompetitionID != "c-early" || slots[1].CompetitionID != "c-late" {
		t.Errorf("slot order = %s, %s, want c-early, c-late", slots[0].CompetitionID, slots[1].CompetitionID)
	}
	if slots[0].EntryCount != 2 {
		t.Errorf("entry count = %d, want 2", slots[0].EntryCount)
	}
	if slots[0].AgeRange != "U8" {
		t.Errorf("age range = %q, want U8", slots[0].AgeRange)
	}
	if !slots[0].ScheduledEnd.Equal(slots[0].ScheduledStart.Add(15 * time.Minute)) {
		t.Errorf("end = %v, want start + 15m", slots[0].ScheduledEnd)
	}

	if len(view.Unscheduled) != 1 || view.Unscheduled[0].CompetitionID != "c-pending" {
		t.Errorf("unscheduled = %+v, want only c-pending", view.Unscheduled)
	}
}

// TestQueryGetFeisScheduleNotFound tests store error passthrough.
func TestQueryGetFeisScheduleNotFound(t *testing.T) {
	deps := GetFeisScheduleDeps{SchedulerStore: &fakeContextLoader{loadErr: feis.ErrNotFound}}
	_, err := QueryGetFeisSchedule(context.Background(), "missing", deps)
	if !errors.Is(err, feis.ErrNotFound) {
		t.Errorf("err = %v, want feis.ErrNotFound", err)
	}
}

// TestQueryGetScheduleConflicts tests that stored placements are checked
// without running the scheduler.
func TestQueryGetScheduleConflicts(t *testing.T) {
	sctx := scheduleTestContext()
	// Put the two scheduled competitions on different stages at the same
	// time with a shared parent to force a sibling conflict.
	sctx.Competitions[0].StageID = "s2"
	sctx.Competitions[0].ScheduledStart = sctx.Competitions[1].ScheduledStart
	sctx.Dancers[1].ParentID = "p1"
	sctx.Entries[1].CompetitionID = "c-late"

	deps := GetScheduleConflictsDeps{SchedulerStore: &fakeContextLoader{sctx: sctx}}
	conflicts, err := QueryGetScheduleConflicts(context.Background(), "f1", deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(conflicts) != 1 || conflicts[0].Type != scheduling.ConflictSibling {
		t.Errorf("conflicts = %+v, want one sibling conflict", conflicts)
	}
}
