package transport

import "github.com/google/uuid"

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	Email    string     `json:"email" validate:"required,email"`
	Password string     `json:"password" validate:"required,min=6"`
	Name     string     `json:"name" validate:"required,min=1,max=200"`
	Role     string     `json:"role" validate:"required,oneof=SUPER_ADMIN SCHOOL_ADMIN TEACHER"`
	SchoolID *uuid.UUID `json:"schoolId,omitempty"`
}

type SchoolSummary struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

type UserResponse struct {
	ID       uuid.UUID      `json:"id"`
	Email    string         `json:"email"`
	Name     string         `json:"name"`
	Role     string         `json:"role"`
	SchoolID *uuid.UUID     `json:"schoolId"`
	School   *SchoolSummary `json:"school"`
}

type AuthResponse struct {
	AccessToken string       `json:"accessToken"`
	User        UserResponse `json:"user"`
}
