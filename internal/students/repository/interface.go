package repository

import (
	"context"

	"github.com/google/uuid"
)

// Store is the persistence surface the students service depends on.
type Store interface {
	ClassroomExists(ctx context.Context, classroomID, schoolID uuid.UUID) (bool, error)
	Create(ctx context.Context, p CreateStudentParams) (Student, error)
	List(ctx context.Context, p ListStudentsParams) ([]Student, int, error)
	GetByID(ctx context.Context, id, schoolID uuid.UUID) (Student, error)
	RecentAttendance(ctx context.Context, studentID uuid.UUID, limit int) ([]AttendanceRecord, error)
	Update(ctx context.Context, p UpdateStudentParams) (Student, error)
	Delete(ctx context.Context, id, schoolID uuid.UUID) error
}

var _ Store = (*Repository)(nil)
