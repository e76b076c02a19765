package transport

import (
	"time"

	"github.com/google/uuid"
)

type CreateTeacherRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=200"`
	Email       string  `json:"email" validate:"required,email"`
	Password    *string `json:"password,omitempty" validate:"omitempty,min=6"`
	Designation *string `json:"designation,omitempty" validate:"omitempty,max=100"`
	Phone       *string `json:"phone,omitempty" validate:"omitempty,max=30"`
}

type UpdateTeacherRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Designation *string `json:"designation,omitempty" validate:"omitempty,max=100"`
	Phone       *string `json:"phone,omitempty" validate:"omitempty,max=30"`
}

type ListTeachersRequest struct {
	Page   int    `form:"page" validate:"omitempty,min=1"`
	Limit  int    `form:"limit" validate:"omitempty,min=1,max=100"`
	Search string `form:"search" validate:"max=100"`
}

type TeacherUser struct {
	ID     uuid.UUID `json:"id"`
	Email  string    `json:"email"`
	Name   string    `json:"name"`
	Role   string    `json:"role"`
	Active bool      `json:"isActive"`
}

type TeacherResponse struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name"`
	Designation string      `json:"designation"`
	Phone       *string     `json:"phone"`
	SchoolID    uuid.UUID   `json:"schoolId"`
	User        TeacherUser `json:"user"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}
