package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Store is the persistence surface the attendance service depends on.
type Store interface {
	StudentExists(ctx context.Context, studentID, schoolID uuid.UUID) (bool, error)
	Create(ctx context.Context, p CreateParams) (Record, error)
	List(ctx context.Context, p ListParams) ([]Record, int, error)
	GetByID(ctx context.Context, id, schoolID uuid.UUID) (Record, error)
	Update(ctx context.Context, p UpdateParams) (Record, error)
	Delete(ctx context.Context, id, schoolID uuid.UUID) error
	GetStats(ctx context.Context, schoolID uuid.UUID, date *time.Time) (Stats, error)
}

var _ Store = (*Repository)(nil)
