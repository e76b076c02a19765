package repository

import (
	"context"

	"github.com/google/uuid"
)

// Store is the persistence surface the auth service depends on.
type Store interface {
	GetUserByEmail(ctx context.Context, email string) (UserWithSchool, error)
	GetUserByID(ctx context.Context, userID uuid.UUID) (User, error)
	GetUserWithSchoolByID(ctx context.Context, userID uuid.UUID) (UserWithSchool, error)
	GetSchoolByID(ctx context.Context, schoolID uuid.UUID) (SchoolInfo, error)
	CreateUser(ctx context.Context, p CreateUserParams) (User, error)
}

var _ Store = (*Repository)(nil)
