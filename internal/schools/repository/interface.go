package repository

import (
	"context"

	"github.com/google/uuid"
)

// Store is the persistence surface the schools service depends on.
type Store interface {
	Create(ctx context.Context, p CreateSchoolParams) (School, error)
	List(ctx context.Context, p ListSchoolsParams) ([]School, int, error)
	GetByID(ctx context.Context, id uuid.UUID) (School, error)
	Update(ctx context.Context, p UpdateSchoolParams) (School, error)
	ToggleActive(ctx context.Context, id uuid.UUID) (School, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetStats(ctx context.Context, id uuid.UUID) (Stats, error)
}

var _ Store = (*Repository)(nil)
