package repository

import (
	"context"

	"github.com/google/uuid"
)

// Store is the persistence surface the dashboard service depends on.
type Store interface {
	CountSchools(ctx context.Context) (int, error)
	CountActiveSchools(ctx context.Context) (int, error)
	CountUsers(ctx context.Context) (int, error)
	CountTeachers(ctx context.Context) (int, error)
	CountStudents(ctx context.Context) (int, error)
	CountSchoolTeachers(ctx context.Context, schoolID uuid.UUID) (int, error)
	CountSchoolStudents(ctx context.Context, schoolID uuid.UUID) (int, error)
	CountSchoolClassrooms(ctx context.Context, schoolID uuid.UUID) (int, error)
	CountAttendanceToday(ctx context.Context, schoolID uuid.UUID) (int, error)
}

var _ Store = (*Repository)(nil)
