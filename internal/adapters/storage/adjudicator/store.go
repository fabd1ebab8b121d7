package adjudicator

import (
	"context"

	domain "feisworks/internal/domain/adjudicator"
)

// Store persists Adjudicator state and declared availability.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Adjudicator, error)
	Save(ctx context.Context, value domain.Adjudicator) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Adjudicator, error)

	SaveAvailability(ctx context.Context, block domain.AvailabilityBlock) error
	DeleteAvailability(ctx context.Context, id string) error
	ListAvailabilityByDay(ctx context.Context, day string) ([]domain.AvailabilityBlock, error)
}
