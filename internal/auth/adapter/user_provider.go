// Package adapter provides implementations of external interfaces that other
// layers need from the auth domain (anti-corruption layer).
package adapter

import (
	"context"

	"taleschool_backend/internal/auth/repository"
	"taleschool_backend/platform/httpkit"

	"github.com/google/uuid"
)

// UserProviderAdapter implements httpkit.UserProvider using the auth
// repository, giving the verification middleware its mandatory user re-fetch
// without depending on auth internals.
type UserProviderAdapter struct {
	repo *repository.Repository
}

// NewUserProviderAdapter creates a new adapter for the auth middleware.
func NewUserProviderAdapter(repo *repository.Repository) *UserProviderAdapter {
	return &UserProviderAdapter{repo: repo}
}

// GetUserByID implements httpkit.UserProvider.
func (a *UserProviderAdapter) GetUserByID(ctx context.Context, userID uuid.UUID) (httpkit.AuthUser, error) {
	user, err := a.repo.GetUserByID(ctx, userID)
	if err != nil {
		return httpkit.AuthUser{}, err
	}

	return httpkit.AuthUser{
		ID:       user.ID,
		Email:    user.Email,
		Name:     user.Name,
		Role:     user.Role,
		SchoolID: user.SchoolID,
		Active:   user.Active,
	}, nil
}

var _ httpkit.UserProvider = (*UserProviderAdapter)(nil)
