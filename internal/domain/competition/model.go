package competition

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Competition levels, ordered from first feis up to open championship.
const (
	LevelFirstFeis          = "first_feis"
	LevelBeginner1          = "beginner_1"
	LevelBeginner2          = "beginner_2"
	LevelNovice             = "novice"
	LevelPrizewinner        = "prizewinner"
	LevelPrelimChampionship = "prelim_championship"
	LevelOpenChampionship   = "open_championship"
)

// ValidLevels contains all valid levels in ascending order.
var ValidLevels = []string{
	LevelFirstFeis,
	LevelBeginner1,
	LevelBeginner2,
	LevelNovice,
	LevelPrizewinner,
	LevelPrelimChampionship,
	LevelOpenChampionship,
}

// Scoring methods.
const (
	ScoringSolo         = "solo"
	ScoringChampionship = "championship"
)

// Domain errors
var (
	ErrNotFound       = errors.New("competition not found")
	ErrEmptyName      = errors.New("competition name cannot be empty")
	ErrEmptyFeisID    = errors.New("competition feis ID cannot be empty")
	ErrInvalidAges    = errors.New("min age must not exceed max age")
	ErrInvalidLevel   = errors.New("level must be a valid competition level")
	ErrInvalidScoring = errors.New("scoring method must be solo or championship")
)

// Competition is one line of the syllabus: an age bracket of a level and
// dance type that dancers enter and a judge scores. The scheduler owns
// StageID, ScheduledStart, DurationMinutes and AdjudicatorID; everything
// else is organizer data.
type Competition struct {
	ID            string
	FeisID        string
	Name          string
	MinAge        int
	MaxAge        int
	Level         string
	Gender        string // "" when the competition is not gender-split
	DanceType     string // reel, hornpipe, etc; "" for championship rounds
	ScoringMethod string
	Bars          int // 0 means use the default for the dance
	TempoBPM      int // 0 means use the default tempo

	StageID         string    // "" until scheduled
	ScheduledStart  time.Time // zero until scheduled
	DurationMinutes int       // 0 until estimated or set by the organizer
	AdjudicatorID   string    // "" until assigned
}

// LevelOrder returns the sort position of a level, lowest level first.
// Unknown levels sort after all valid ones.
func LevelOrder(level string) int {
	for i, l := range ValidLevels {
		if l == level {
			return i
		}
	}
	return len(ValidLevels)
}

// Validate checks if the Competition has valid data.
// PRE: Competition struct is populated
// POST: Returns nil if valid, error otherwise
func (c *Competition) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(c.FeisID) == "" {
		return ErrEmptyFeisID
	}
	if c.MinAge > c.MaxAge {
		return ErrInvalidAges
	}
	if LevelOrder(c.Level) == len(ValidLevels) {
		return ErrInvalidLevel
	}
	if c.ScoringMethod != ScoringSolo && c.ScoringMethod != ScoringChampionship {
		return ErrInvalidScoring
	}
	return nil
}

// IsChampionship reports whether this competition is panel-judged.
func (c *Competition) IsChampionship() bool {
	return c.ScoringMethod == ScoringChampionship
}

// IsScheduled reports whether the scheduler has placed this competition.
func (c *Competition) IsScheduled() bool {
	return c.StageID != "" && !c.ScheduledStart.IsZero()
}

// ScheduledEnd returns the scheduled end time (start + duration).
// INVARIANT: scheduled_end = scheduled_start + duration_minutes
func (c *Competition) ScheduledEnd() time.Time {
	if c.ScheduledStart.IsZero() {
		return time.Time{}
	}
	return c.ScheduledStart.Add(time.Duration(c.DurationMinutes) * time.Minute)
}

// AgeRange renders the bracket the way it appears in the syllabus:
// "U9" for a single-year bracket of dancers under 9, "8-10" for a range.
func (c *Competition) AgeRange() string {
	if c.MinAge == c.MaxAge {
		return fmt.Sprintf("U%d", c.MaxAge+1)
	}
	return fmt.Sprintf("%d-%d", c.MinAge, c.MaxAge)
}
