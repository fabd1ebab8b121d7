package dancer

import (
	"context"

	domain "feisworks/internal/domain/dancer"
)

// Store persists Dancer state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Dancer, error)
	Save(ctx context.Context, value domain.Dancer) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Dancer, error)
	ListByParentID(ctx context.Context, parentID string) ([]domain.Dancer, error)
}
