package repository

import (
	"context"

	"github.com/google/uuid"
)

// Store is the persistence surface the teachers service depends on.
type Store interface {
	Create(ctx context.Context, p CreateTeacherParams) (Teacher, error)
	List(ctx context.Context, p ListTeachersParams) ([]Teacher, int, error)
	GetByID(ctx context.Context, id, schoolID uuid.UUID) (Teacher, error)
	Update(ctx context.Context, p UpdateTeacherParams) (Teacher, error)
	Delete(ctx context.Context, id, schoolID uuid.UUID) error
}

var _ Store = (*Repository)(nil)
