package feis_test

import (
	"errors"
	"testing"

	"feisworks/internal/domain/feis"
)

// TestFeisValidation tests validation of Feis.
func TestFeisValidation(t *testing.T) {
	tests := []struct {
		name    string
		feis    feis.Feis
		wantErr error
	}{
		{
			name:    "valid feis",
			feis:    feis.Feis{ID: "f1", Name: "Harvest Feis", Date: "2026-10-03"},
			wantErr: nil,
		},
		{
			name:    "valid feis with venue hours",
			feis:    feis.Feis{ID: "f1", Name: "Harvest Feis", Date: "2026-10-03", VenueOpen: "08:00", VenueClose: "18:00"},
			wantErr: nil,
		},
		{
			name:    "empty name",
			feis:    feis.Feis{ID: "f1", Date: "2026-10-03"},
			wantErr: feis.ErrEmptyName,
		},
		{
			name:    "empty date",
			feis:    feis.Feis{ID: "f1", Name: "Harvest Feis"},
			wantErr: feis.ErrEmptyDate,
		},
		{
			name:    "malformed date",
			feis:    feis.Feis{ID: "f1", Name: "Harvest Feis", Date: "03/10/2026"},
			wantErr: feis.ErrInvalidDate,
		},
		{
			name:    "venue closes before it opens",
			feis:    feis.Feis{ID: "f1", Name: "Harvest Feis", Date: "2026-10-03", VenueOpen: "18:00", VenueClose: "08:00"},
			wantErr: feis.ErrInvalidHours,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.feis.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
