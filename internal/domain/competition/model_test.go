package competition_test

import (
	"errors"
	"testing"
	"time"

	"feisworks/internal/domain/competition"
)

// TestCompetitionValidation tests validation of Competition.
func TestCompetitionValidation(t *testing.T) {
	valid := competition.Competition{
		ID:            "c1",
		FeisID:        "f1",
		Name:          "Beginner 1 Reel U8",
		MinAge:        7,
		MaxAge:        7,
		Level:         competition.LevelBeginner1,
		DanceType:     "reel",
		ScoringMethod: competition.ScoringSolo,
	}

	tests := []struct {
		name    string
		mutate  func(*competition.Competition)
		wantErr error
	}{
		{
			name:    "valid grade competition",
			mutate:  func(c *competition.Competition) {},
			wantErr: nil,
		},
		{
			name: "valid championship without dance type",
			mutate: func(c *competition.Competition) {
				c.Level = competition.LevelOpenChampionship
				c.ScoringMethod = competition.ScoringChampionship
				c.DanceType = ""
			},
			wantErr: nil,
		},
		{
			name:    "empty name",
			mutate:  func(c *competition.Competition) { c.Name = "  " },
			wantErr: competition.ErrEmptyName,
		},
		{
			name:    "empty feis ID",
			mutate:  func(c *competition.Competition) { c.FeisID = "" },
			wantErr: competition.ErrEmptyFeisID,
		},
		{
			name: "min age above max age",
			mutate: func(c *competition.Competition) {
				c.MinAge = 10
				c.MaxAge = 8
			},
			wantErr: competition.ErrInvalidAges,
		},
		{
			name:    "unknown level",
			mutate:  func(c *competition.Competition) { c.Level = "advanced" },
			wantErr: competition.ErrInvalidLevel,
		},
		{
			name:    "unknown scoring method",
			mutate:  func(c *competition.Competition) { c.ScoringMethod = "panel" },
			wantErr: competition.ErrInvalidScoring,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			err := c.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// TestLevelOrder verifies levels sort lowest first and unknown levels last.
func TestLevelOrder(t *testing.T) {
	if competition.LevelOrder(competition.LevelFirstFeis) != 0 {
		t.Errorf("first feis must sort first")
	}
	if competition.LevelOrder(competition.LevelBeginner1) >= competition.LevelOrder(competition.LevelNovice) {
		t.Errorf("beginner 1 must sort before novice")
	}
	if competition.LevelOrder("advanced") != len(competition.ValidLevels) {
		t.Errorf("unknown level must sort after all valid ones")
	}
}

// TestIsScheduled verifies both stage and start are required.
func TestIsScheduled(t *testing.T) {
	c := competition.Competition{}
	if c.IsScheduled() {
		t.Error("empty competition must not count as scheduled")
	}
	c.StageID = "s1"
	if c.IsScheduled() {
		t.Error("stage without start must not count as scheduled")
	}
	c.ScheduledStart = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	if !c.IsScheduled() {
		t.Error("stage and start must count as scheduled")
	}
}

// TestScheduledEnd verifies end = start + duration and zero when unscheduled.
func TestScheduledEnd(t *testing.T) {
	c := competition.Competition{DurationMinutes: 15}
	if !c.ScheduledEnd().IsZero() {
		t.Error("unscheduled competition must have zero end")
	}
	c.ScheduledStart = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	want := time.Date(2026, 3, 14, 9, 15, 0, 0, time.UTC)
	if got := c.ScheduledEnd(); !got.Equal(want) {
		t.Errorf("ScheduledEnd() = %v, want %v", got, want)
	}
}

// TestAgeRange verifies the syllabus rendering of age brackets.
func TestAgeRange(t *testing.T) {
	single := competition.Competition{MinAge: 7, MaxAge: 7}
	if got := single.AgeRange(); got != "U8" {
		t.Errorf("single year bracket = %q, want U8", got)
	}
	span := competition.Competition{MinAge: 8, MaxAge: 10}
	if got := span.AgeRange(); got != "8-10" {
		t.Errorf("range bracket = %q, want 8-10", got)
	}
}
