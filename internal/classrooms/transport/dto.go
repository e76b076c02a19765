package transport

import (
	"time"

	"github.com/google/uuid"
)

type CreateClassroomRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=100"`
	Section string `json:"section" validate:"required,min=1,max=50"`
}

type UpdateClassroomRequest struct {
	Name    *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Section *string `json:"section,omitempty" validate:"omitempty,min=1,max=50"`
}

type ListClassroomsRequest struct {
	Page   int    `form:"page" validate:"omitempty,min=1"`
	Limit  int    `form:"limit" validate:"omitempty,min=1,max=100"`
	Search string `form:"search" validate:"max=100"`
}

type ClassroomStudent struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	RollNumber string    `json:"rollNumber"`
	Email      *string   `json:"email"`
}

type ClassroomResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Section      string    `json:"section"`
	SchoolID     uuid.UUID `json:"schoolId"`
	StudentCount int       `json:"studentCount"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	// Students is populated on single-classroom reads only.
	Students []ClassroomStudent `json:"students,omitempty"`
}
