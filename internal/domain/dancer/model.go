package dancer

import (
	"errors"
	"strings"
)

// Domain errors
var (
	ErrNotFound      = errors.New("dancer not found")
	ErrEmptyName     = errors.New("dancer name cannot be empty")
	ErrEmptyParentID = errors.New("dancer parent ID cannot be empty")
)

// Dancer is a competitor. ParentID is the owning family account (siblings
// share it); SchoolID identifies the teacher the dancer trains with and is
// optional for unaffiliated dancers.
type Dancer struct {
	ID       string
	Name     string
	ParentID string
	SchoolID string // "" for unaffiliated dancers
}

// Validate checks if the Dancer has valid data.
// PRE: Dancer struct is populated
// POST: Returns nil if valid, error otherwise
func (d *Dancer) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(d.ParentID) == "" {
		return ErrEmptyParentID
	}
	return nil
}
