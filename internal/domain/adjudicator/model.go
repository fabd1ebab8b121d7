package adjudicator

import (
	"errors"
	"strings"
)

// Availability block types.
const (
	AvailabilityAvailable   = "available"
	AvailabilityUnavailable = "unavailable"
	AvailabilityLunch       = "lunch"
)

// ValidAvailabilityTypes contains all valid availability block types.
var ValidAvailabilityTypes = []string{
	AvailabilityAvailable,
	AvailabilityUnavailable,
	AvailabilityLunch,
}

// Domain errors
var (
	ErrNotFound           = errors.New("adjudicator not found")
	ErrEmptyName          = errors.New("adjudicator name cannot be empty")
	ErrEmptyAdjudicatorID = errors.New("availability adjudicator ID cannot be empty")
	ErrEmptyDay           = errors.New("availability day cannot be empty")
	ErrInvalidWindow      = errors.New("availability start time must be before end time")
	ErrInvalidBlockType   = errors.New("availability type must be available, unavailable or lunch")
)

// Adjudicator is a judge on the feis roster. SchoolID is the judge's own
// school affiliation, used by the conflict detector: a judge must not score
// dancers from their own school.
type Adjudicator struct {
	ID       string
	Name     string
	SchoolID string // "" when the judge has no school affiliation
}

// Validate checks if the Adjudicator has valid data.
// PRE: Adjudicator struct is populated
// POST: Returns nil if valid, error otherwise
func (a *Adjudicator) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return ErrEmptyName
	}
	return nil
}

// AvailabilityBlock is a window a judge has declared as available,
// unavailable or reserved for lunch on a given day. A judge with no
// declared blocks at all is treated as fully available.
type AvailabilityBlock struct {
	ID            string
	AdjudicatorID string
	Day           string // YYYY-MM-DD
	StartTime     string // HH:MM
	EndTime       string // HH:MM
	Type          string
}

// Validate checks if the AvailabilityBlock has valid data.
// PRE: AvailabilityBlock struct is populated
// POST: Returns nil if valid, error otherwise
func (b *AvailabilityBlock) Validate() error {
	if strings.TrimSpace(b.AdjudicatorID) == "" {
		return ErrEmptyAdjudicatorID
	}
	if strings.TrimSpace(b.Day) == "" {
		return ErrEmptyDay
	}
	if b.StartTime >= b.EndTime {
		return ErrInvalidWindow
	}
	valid := false
	for _, t := range ValidAvailabilityTypes {
		if b.Type == t {
			valid = true
			break
		}
	}
	if !valid {
		return ErrInvalidBlockType
	}
	return nil
}
