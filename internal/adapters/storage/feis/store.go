package feis

import (
	"context"

	domain "feisworks/internal/domain/feis"
)

// Store persists Feis state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Feis, error)
	Save(ctx context.Context, value domain.Feis) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Feis, error)
}
