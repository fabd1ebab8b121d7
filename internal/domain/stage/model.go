package stage

import (
	"errors"
	"strings"
)

// Domain errors
var (
	ErrNotFound           = errors.New("stage not found")
	ErrEmptyName          = errors.New("stage name cannot be empty")
	ErrEmptyFeisID        = errors.New("stage feis ID cannot be empty")
	ErrEmptyStageID       = errors.New("coverage stage ID cannot be empty")
	ErrEmptyAdjudicatorID = errors.New("coverage adjudicator ID cannot be empty")
	ErrEmptyDay           = errors.New("coverage day cannot be empty")
	ErrInvalidWindow      = errors.New("coverage start time must be before end time")
)

// Stage is a physical performance area at the venue.
type Stage struct {
	ID       string
	FeisID   string
	Name     string
	Sequence int // display and tie-break order
}

// Validate checks if the Stage has valid data.
// PRE: Stage struct is populated
// POST: Returns nil if valid, error otherwise
func (s *Stage) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(s.FeisID) == "" {
		return ErrEmptyFeisID
	}
	return nil
}

// CoverageBlock records that a judge covers a stage during a time window:
// the raw material stage plans are built from. A block with an empty
// AdjudicatorID is a venue-hours fallback window, not a judge assignment.
type CoverageBlock struct {
	ID            string
	StageID       string
	AdjudicatorID string
	Day           string // YYYY-MM-DD
	StartTime     string // HH:MM
	EndTime       string // HH:MM
}

// Validate checks if the CoverageBlock has valid data.
// PRE: CoverageBlock struct is populated
// POST: Returns nil if valid, error otherwise
func (b *CoverageBlock) Validate() error {
	if strings.TrimSpace(b.StageID) == "" {
		return ErrEmptyStageID
	}
	if strings.TrimSpace(b.AdjudicatorID) == "" {
		return ErrEmptyAdjudicatorID
	}
	if strings.TrimSpace(b.Day) == "" {
		return ErrEmptyDay
	}
	if b.StartTime >= b.EndTime {
		return ErrInvalidWindow
	}
	return nil
}
