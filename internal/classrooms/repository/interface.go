package repository

import (
	"context"

	"github.com/google/uuid"
)

// Store is the persistence surface the classrooms service depends on.
type Store interface {
	Create(ctx context.Context, p CreateClassroomParams) (Classroom, error)
	List(ctx context.Context, p ListClassroomsParams) ([]Classroom, int, error)
	GetByID(ctx context.Context, id, schoolID uuid.UUID) (Classroom, error)
	Students(ctx context.Context, classroomID uuid.UUID) ([]Student, error)
	Update(ctx context.Context, p UpdateClassroomParams) (Classroom, error)
	Delete(ctx context.Context, id, schoolID uuid.UUID) error
}

var _ Store = (*Repository)(nil)
