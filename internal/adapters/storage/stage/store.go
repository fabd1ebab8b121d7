package stage

import (
	"context"

	domain "feisworks/internal/domain/stage"
)

// Store persists Stage state and judge coverage.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Stage, error)
	Save(ctx context.Context, value domain.Stage) error
	Delete(ctx context.Context, id string) error
	ListByFeisID(ctx context.Context, feisID string) ([]domain.Stage, error)

	SaveCoverage(ctx context.Context, block domain.CoverageBlock) error
	DeleteCoverage(ctx context.Context, id string) error
	ListCoverageByFeisID(ctx context.Context, feisID string) ([]domain.CoverageBlock, error)
}
