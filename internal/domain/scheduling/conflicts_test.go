package scheduling

import (
	"testing"
	"time"

	"feisworks/internal/domain/adjudicator"
	"feisworks/internal/domain/competition"
	"feisworks/internal/domain/dancer"
	"feisworks/internal/domain/entry"
	"feisworks/internal/domain/feis"
)

var conflictFeis = feis.Feis{ID: "f1", Name: "Demo Feis", Date: "2026-03-14"}

func scheduledComp(id, stageID, start string, durationMinutes int) competition.Competition {
	var startAt time.Time
	if start != "" {
		startAt = at("2026-03-14", start)
	}
	return competition.Competition{
		ID: id, FeisID: "f1", Name: id, MinAge: 8, MaxAge: 8,
		Level: competition.LevelNovice, ScoringMethod: competition.ScoringSolo,
		StageID: stageID, ScheduledStart: startAt, DurationMinutes: durationMinutes,
	}
}

func countByType(conflicts []Conflict, conflictType string) int {
	n := 0
	for _, c := range conflicts {
		if c.Type == conflictType {
			n++
		}
	}
	return n
}

// TestDetectSiblingClash tests conflict symmetry: one pair of overlapping
// competitions on different stages with a shared parent yields exactly one
// sibling conflict referencing both.
func TestDetectSiblingClash(t *testing.T) {
	sctx := &Context{
		Feis: conflictFeis,
		Competitions: []competition.Competition{
			scheduledComp("c1", "s1", "10:00", 15),
			scheduledComp("c2", "s2", "10:00", 15),
		},
		Dancers: []dancer.Dancer{
			{ID: "d1", Name: "Aoife", ParentID: "p1"},
			{ID: "d2", Name: "Liam", ParentID: "p1"},
		},
		Entries: []entry.Entry{
			{ID: "e1", CompetitionID: "c1", DancerID: "d1"},
			{ID: "e2", CompetitionID: "c2", DancerID: "d2"},
		},
	}

	conflicts := DetectConflicts(sctx)
	if n := countByType(conflicts, ConflictSibling); n != 1 {
		t.Fatalf("sibling conflicts = %d, want exactly 1", n)
	}
	for _, c := range conflicts {
		if c.Type != ConflictSibling {
			continue
		}
		if c.Severity != SeverityWarning {
			t.Errorf("severity = %q, want %q", c.Severity, SeverityWarning)
		}
		if len(c.AffectedCompetitionIDs) != 2 {
			t.Errorf("affected competitions = %v, want both", c.AffectedCompetitionIDs)
		}
	}
}

// TestDetectSiblingSameStageIgnored tests that same-stage overlap is not a
// sibling conflict (parents stay in one place).
func TestDetectSiblingSameStageIgnored(t *testing.T) {
	sctx := &Context{
		Feis: conflictFeis,
		Competitions: []competition.Competition{
			scheduledComp("c1", "s1", "10:00", 15),
			scheduledComp("c2", "s1", "10:00", 15),
		},
		Dancers: []dancer.Dancer{
			{ID: "d1", Name: "Aoife", ParentID: "p1"},
			{ID: "d2", Name: "Liam", ParentID: "p1"},
		},
		Entries: []entry.Entry{
			{ID: "e1", CompetitionID: "c1", DancerID: "d1"},
			{ID: "e2", CompetitionID: "c2", DancerID: "d2"},
		},
	}
	if n := countByType(DetectConflicts(sctx), ConflictSibling); n != 0 {
		t.Errorf("sibling conflicts = %d, want 0 on the same stage", n)
	}
}

// TestDetectAdjudicatorSchoolLink tests both school-link variants: dancer
// taught by the judge directly and by the judge's declared school.
func TestDetectAdjudicatorSchoolLink(t *testing.T) {
	c1 := scheduledComp("c1", "s1", "10:00", 15)
	c1.AdjudicatorID = "j1"
	c2 := scheduledComp("c2", "s1", "11:00", 15)
	c2.AdjudicatorID = "j2"

	sctx := &Context{
		Feis:         conflictFeis,
		Competitions: []competition.Competition{c1, c2},
		Adjudicators: []adjudicator.Adjudicator{
			{ID: "j1", Name: "Judge One"},
			{ID: "j2", Name: "Judge Two", SchoolID: "school-x"},
		},
		Dancers: []dancer.Dancer{
			{ID: "d1", Name: "Aoife", ParentID: "p1", SchoolID: "j1"},
			{ID: "d2", Name: "Liam", ParentID: "p2", SchoolID: "school-x"},
			{ID: "d3", Name: "Niamh", ParentID: "p3", SchoolID: "school-y"},
		},
		Entries: []entry.Entry{
			{ID: "e1", CompetitionID: "c1", DancerID: "d1"},
			{ID: "e2", CompetitionID: "c2", DancerID: "d2"},
			{ID: "e3", CompetitionID: "c2", DancerID: "d3"},
		},
	}

	conflicts := DetectConflicts(sctx)
	if n := countByType(conflicts, ConflictAdjudicatorSchool); n != 2 {
		t.Fatalf("school conflicts = %d, want 2", n)
	}
	for _, c := range conflicts {
		if c.Type == ConflictAdjudicatorSchool && c.Severity != SeverityError {
			t.Errorf("severity = %q, want %q", c.Severity, SeverityError)
		}
	}
}

// TestDetectAdjudicatorDoubleBooked tests one error conflict for a judge
// assigned to two overlapping competitions.
func TestDetectAdjudicatorDoubleBooked(t *testing.T) {
	c1 := scheduledComp("c1", "s1", "10:00", 30)
	c1.AdjudicatorID = "j1"
	c2 := scheduledComp("c2", "s2", "10:15", 30)
	c2.AdjudicatorID = "j1"

	sctx := &Context{
		Feis:         conflictFeis,
		Competitions: []competition.Competition{c1, c2},
		Adjudicators: []adjudicator.Adjudicator{{ID: "j1", Name: "Judge One"}},
	}

	conflicts := DetectConflicts(sctx)
	if n := countByType(conflicts, ConflictAdjudicatorDoubleBooked); n != 1 {
		t.Fatalf("double-booked conflicts = %d, want 1", n)
	}
	for _, c := range conflicts {
		if c.Type == ConflictAdjudicatorDoubleBooked && c.Severity != SeverityError {
			t.Errorf("severity = %q, want %q", c.Severity, SeverityError)
		}
	}
}

// TestDetectAdjudicatorUnavailable tests the availability rule and its
// no-declared-blocks exemption.
func TestDetectAdjudicatorUnavailable(t *testing.T) {
	c1 := scheduledComp("c1", "s1", "13:00", 30)
	c1.AdjudicatorID = "j1"
	c2 := scheduledComp("c2", "s2", "13:00", 30)
	c2.AdjudicatorID = "j2" // j2 declared nothing: fully available

	sctx := &Context{
		Feis:         conflictFeis,
		Competitions: []competition.Competition{c1, c2},
		Adjudicators: []adjudicator.Adjudicator{
			{ID: "j1", Name: "Judge One"},
			{ID: "j2", Name: "Judge Two"},
		},
		Availability: []adjudicator.AvailabilityBlock{
			{ID: "a1", AdjudicatorID: "j1", Day: "2026-03-14", StartTime: "09:00", EndTime: "12:00", Type: adjudicator.AvailabilityAvailable},
		},
	}

	conflicts := DetectConflicts(sctx)
	if n := countByType(conflicts, ConflictAdjudicatorUnavailable); n != 1 {
		t.Fatalf("availability conflicts = %d, want 1", n)
	}
	for _, c := range conflicts {
		if c.Type == ConflictAdjudicatorUnavailable {
			if c.Severity != SeverityWarning {
				t.Errorf("severity = %q, want %q", c.Severity, SeverityWarning)
			}
			if len(c.AffectedCompetitionIDs) != 1 || c.AffectedCompetitionIDs[0] != "c1" {
				t.Errorf("affected = %v, want [c1]", c.AffectedCompetitionIDs)
			}
		}
	}
}

// TestDetectAdjudicatorOtherDayBlockExempt tests that blocks declared for a
// different day do not count as a declaration for the feis day.
func TestDetectAdjudicatorOtherDayBlockExempt(t *testing.T) {
	c1 := scheduledComp("c1", "s1", "13:00", 30)
	c1.AdjudicatorID = "j1"

	sctx := &Context{
		Feis:         conflictFeis,
		Competitions: []competition.Competition{c1},
		Adjudicators: []adjudicator.Adjudicator{{ID: "j1", Name: "Judge One"}},
		Availability: []adjudicator.AvailabilityBlock{
			{ID: "a1", AdjudicatorID: "j1", Day: "2026-03-15", StartTime: "09:00", EndTime: "12:00", Type: adjudicator.AvailabilityAvailable},
		},
	}

	conflicts := DetectConflicts(sctx)
	if n := countByType(conflicts, ConflictAdjudicatorUnavailable); n != 0 {
		t.Errorf("availability conflicts = %d, want 0 for an undeclared day", n)
	}
}

// TestDetectAdjudicatorContainedWindowOK tests that a window fully inside an
// Available block raises nothing.
func TestDetectAdjudicatorContainedWindowOK(t *testing.T) {
	c1 := scheduledComp("c1", "s1", "10:00", 30)
	c1.AdjudicatorID = "j1"

	sctx := &Context{
		Feis:         conflictFeis,
		Competitions: []competition.Competition{c1},
		Adjudicators: []adjudicator.Adjudicator{{ID: "j1", Name: "Judge One"}},
		Availability: []adjudicator.AvailabilityBlock{
			{ID: "a1", AdjudicatorID: "j1", Day: "2026-03-14", StartTime: "09:00", EndTime: "12:00", Type: adjudicator.AvailabilityAvailable},
		},
	}
	if n := countByType(DetectConflicts(sctx), ConflictAdjudicatorUnavailable); n != 0 {
		t.Errorf("availability conflicts = %d, want 0", n)
	}
}

// TestDetectDancerDoubleBooked tests a dancer entered in two overlapping
// competitions, and the 2-minute minimal window for zero durations.
func TestDetectDancerDoubleBooked(t *testing.T) {
	sctx := &Context{
		Feis: conflictFeis,
		Competitions: []competition.Competition{
			scheduledComp("c1", "s1", "10:00", 0), // zero duration: minimal window
			scheduledComp("c2", "s2", "10:00", 0),
		},
		Dancers: []dancer.Dancer{{ID: "d1", Name: "Aoife", ParentID: "p1"}},
		Entries: []entry.Entry{
			{ID: "e1", CompetitionID: "c1", DancerID: "d1"},
			{ID: "e2", CompetitionID: "c2", DancerID: "d1"},
		},
	}

	conflicts := DetectConflicts(sctx)
	if n := countByType(conflicts, ConflictDancerDoubleBooked); n != 1 {
		t.Fatalf("dancer double-booked conflicts = %d, want 1", n)
	}
	for _, c := range conflicts {
		if c.Type == ConflictDancerDoubleBooked {
			if c.Severity != SeverityError {
				t.Errorf("severity = %q, want %q", c.Severity, SeverityError)
			}
			if len(c.AffectedDancerIDs) != 1 || c.AffectedDancerIDs[0] != "d1" {
				t.Errorf("affected dancers = %v, want [d1]", c.AffectedDancerIDs)
			}
		}
	}
}

// TestDetectBackToBackNotConflicting tests that adjacent windows with real
// durations do not overlap.
func TestDetectBackToBackNotConflicting(t *testing.T) {
	sctx := &Context{
		Feis: conflictFeis,
		Competitions: []competition.Competition{
			scheduledComp("c1", "s1", "10:00", 30),
			scheduledComp("c2", "s2", "10:30", 30),
		},
		Dancers: []dancer.Dancer{{ID: "d1", Name: "Aoife", ParentID: "p1"}},
		Entries: []entry.Entry{
			{ID: "e1", CompetitionID: "c1", DancerID: "d1"},
			{ID: "e2", CompetitionID: "c2", DancerID: "d1"},
		},
	}
	if got := DetectConflicts(sctx); len(got) != 0 {
		t.Errorf("conflicts = %+v, want none for back-to-back windows", got)
	}
}

// TestDetectUnscheduledIgnored tests that unscheduled competitions carry no
// conflict window.
func TestDetectUnscheduledIgnored(t *testing.T) {
	unscheduled := scheduledComp("c1", "", "", 0)
	other := scheduledComp("c2", "s2", "10:00", 30)
	sctx := &Context{
		Feis:         conflictFeis,
		Competitions: []competition.Competition{unscheduled, other},
		Dancers:      []dancer.Dancer{{ID: "d1", Name: "Aoife", ParentID: "p1"}},
		Entries: []entry.Entry{
			{ID: "e1", CompetitionID: "c1", DancerID: "d1"},
			{ID: "e2", CompetitionID: "c2", DancerID: "d1"},
		},
	}
	if got := DetectConflicts(sctx); len(got) != 0 {
		t.Errorf("conflicts = %+v, want none with an unscheduled competition", got)
	}
}
