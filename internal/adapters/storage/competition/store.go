package competition

import (
	"context"

	domain "feisworks/internal/domain/competition"
)

// Store persists Competition state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Competition, error)
	Save(ctx context.Context, value domain.Competition) error
	Delete(ctx context.Context, id string) error
	ListByFeisID(ctx context.Context, feisID string) ([]domain.Competition, error)
}
