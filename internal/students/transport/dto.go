package transport

import (
	"time"

	"github.com/google/uuid"
)

type CreateStudentRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=200"`
	RollNumber  string  `json:"rollNumber" validate:"required,min=1,max=50"`
	ClassroomID string  `json:"classroomId" validate:"required,uuid"`
	Email       *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone       *string `json:"phone,omitempty" validate:"omitempty,max=30"`
	DateOfBirth *string `json:"dateOfBirth,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Address     *string `json:"address,omitempty" validate:"omitempty,max=500"`
}

type UpdateStudentRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	RollNumber  *string `json:"rollNumber,omitempty" validate:"omitempty,min=1,max=50"`
	ClassroomID *string `json:"classroomId,omitempty" validate:"omitempty,uuid"`
	Email       *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone       *string `json:"phone,omitempty" validate:"omitempty,max=30"`
	DateOfBirth *string `json:"dateOfBirth,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Address     *string `json:"address,omitempty" validate:"omitempty,max=500"`
}

type ListStudentsRequest struct {
	Page        int    `form:"page" validate:"omitempty,min=1"`
	Limit       int    `form:"limit" validate:"omitempty,min=1,max=100"`
	Search      string `form:"search" validate:"max=100"`
	ClassroomID string `form:"classroomId" validate:"omitempty,uuid"`
}

type ClassroomSummary struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Section string    `json:"section"`
}

type AttendanceEntry struct {
	ID      uuid.UUID `json:"id"`
	Date    string    `json:"date"`
	Status  string    `json:"status"`
	Remarks *string   `json:"remarks"`
}

type StudentResponse struct {
	ID          uuid.UUID        `json:"id"`
	Name        string           `json:"name"`
	RollNumber  string           `json:"rollNumber"`
	Email       *string          `json:"email"`
	Phone       *string          `json:"phone"`
	DateOfBirth *string          `json:"dateOfBirth"`
	Address     *string          `json:"address"`
	SchoolID    uuid.UUID        `json:"schoolId"`
	Classroom   ClassroomSummary `json:"classroom"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`

	// RecentAttendance is populated on single-student reads only.
	RecentAttendance []AttendanceEntry `json:"recentAttendance,omitempty"`
}
