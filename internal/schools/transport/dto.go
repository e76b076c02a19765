package transport

import (
	"time"

	"github.com/google/uuid"
)

type CreateSchoolRequest struct {
	Name    string  `json:"name" validate:"required,min=1,max=200"`
	Slug    string  `json:"slug" validate:"required,min=2,max=63"`
	Email   *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone   *string `json:"phone,omitempty" validate:"omitempty,max=30"`
	Address *string `json:"address,omitempty" validate:"omitempty,max=500"`
	Active  *bool   `json:"isActive,omitempty"`
}

type UpdateSchoolRequest struct {
	Name    *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Email   *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone   *string `json:"phone,omitempty" validate:"omitempty,max=30"`
	Address *string `json:"address,omitempty" validate:"omitempty,max=500"`
	Active  *bool   `json:"isActive,omitempty"`
}

type ListSchoolsRequest struct {
	Page   int    `form:"page" validate:"omitempty,min=1"`
	Limit  int    `form:"limit" validate:"omitempty,min=1,max=100"`
	Search string `form:"search" validate:"max=100"`
}

type SchoolCounts struct {
	Users      int `json:"users"`
	Teachers   int `json:"teachers"`
	Students   int `json:"students"`
	Classrooms int `json:"classrooms"`
}

type SchoolResponse struct {
	ID        uuid.UUID    `json:"id"`
	Name      string       `json:"name"`
	Slug      string       `json:"slug"`
	Email     *string      `json:"email"`
	Phone     *string      `json:"phone"`
	Address   *string      `json:"address"`
	Active    bool         `json:"isActive"`
	Counts    SchoolCounts `json:"counts"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

type SchoolStatsResponse struct {
	School struct {
		ID     uuid.UUID `json:"id"`
		Name   string    `json:"name"`
		Slug   string    `json:"slug"`
		Active bool      `json:"isActive"`
	} `json:"school"`
	Stats struct {
		TotalUsers            int `json:"totalUsers"`
		TotalTeachers         int `json:"totalTeachers"`
		TotalStudents         int `json:"totalStudents"`
		TotalClassrooms       int `json:"totalClassrooms"`
		AttendanceMarkedToday int `json:"attendanceMarkedToday"`
	} `json:"stats"`
}
