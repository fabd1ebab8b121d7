package entry

import (
	"errors"
	"strings"
)

// Domain errors
var (
	ErrNotFound           = errors.New("entry not found")
	ErrEmptyCompetitionID = errors.New("entry competition ID cannot be empty")
	ErrEmptyDancerID      = errors.New("entry dancer ID cannot be empty")
)

// Entry links one dancer to one competition they will dance in.
type Entry struct {
	ID            string
	CompetitionID string
	DancerID      string
}

// Validate checks if the Entry has valid data.
// PRE: Entry struct is populated
// POST: Returns nil if valid, error otherwise
func (e *Entry) Validate() error {
	if strings.TrimSpace(e.CompetitionID) == "" {
		return ErrEmptyCompetitionID
	}
	if strings.TrimSpace(e.DancerID) == "" {
		return ErrEmptyDancerID
	}
	return nil
}
