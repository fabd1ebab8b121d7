package entry

import (
	"context"

	domain "feisworks/internal/domain/entry"
)

// Store persists Entry state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Entry, error)
	Save(ctx context.Context, value domain.Entry) error
	Delete(ctx context.Context, id string) error
	ListByCompetitionID(ctx context.Context, competitionID string) ([]domain.Entry, error)
	ListByFeisID(ctx context.Context, feisID string) ([]domain.Entry, error)
}
