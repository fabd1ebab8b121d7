package feis

import (
	"errors"
	"strings"
	"time"
)

// Domain errors
var (
	ErrNotFound     = errors.New("feis not found")
	ErrEmptyName    = errors.New("feis name cannot be empty")
	ErrEmptyDate    = errors.New("feis date cannot be empty")
	ErrInvalidDate  = errors.New("feis date must be YYYY-MM-DD")
	ErrInvalidHours = errors.New("venue open time must be before close time")
)

// Feis represents a single competition event (one day of one feis).
// Venue hours and lunch settings are the per-event scheduling defaults;
// zero values fall back to global defaults at scheduling time.
type Feis struct {
	ID             string
	Name           string
	Date           string // YYYY-MM-DD
	Venue          string
	OrganizerEmail string
	Notes          string // markdown, shown on the public schedule page
	VenueOpen      string // HH:MM
	VenueClose     string // HH:MM

	// Scheduling defaults (optional overrides)
	LunchWindowStart     string // HH:MM, "" means unset
	LunchWindowEnd       string // HH:MM, "" means unset
	LunchDurationMinutes int    // 0 means unset
}

// Validate checks if the Feis has valid data.
// PRE: Feis struct is populated
// POST: Returns nil if valid, error otherwise
func (f *Feis) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(f.Date) == "" {
		return ErrEmptyDate
	}
	if _, err := time.Parse("2006-01-02", f.Date); err != nil {
		return ErrInvalidDate
	}
	if f.VenueOpen != "" && f.VenueClose != "" && f.VenueOpen >= f.VenueClose {
		return ErrInvalidHours
	}
	return nil
}
