package service

import (
	"context"
	"errors"
	"strings"

	"taleschool_backend/internal/auth/password"
	"taleschool_backend/internal/auth/repository"
	"taleschool_backend/internal/auth/roles"
	"taleschool_backend/internal/auth/token"
	"taleschool_backend/internal/auth/transport"
	"taleschool_backend/platform/apperr"
	"taleschool_backend/platform/config"
	"taleschool_backend/platform/logger"

	"github.com/google/uuid"
)

const (
	msgInvalidCredentials = "invalid credentials"
	msgInactiveUser       = "user account is inactive"
	msgInactiveSchool     = "school is currently inactive"
)

type Service struct {
	repo repository.Store
	cfg  config.AuthServiceConfig
	log  *logger.Logger
}

func New(repo repository.Store, cfg config.AuthServiceConfig, log *logger.Logger) *Service {
	return &Service{repo: repo, cfg: cfg, log: log}
}

// Login authenticates a user by email and password. Inactive users and users
// of deactivated schools are rejected even with correct credentials.
func (s *Service) Login(ctx context.Context, email, plainPassword string) (transport.AuthResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.log.AuthEvent("login", email, false, "unknown email")
			return transport.AuthResponse{}, apperr.Unauthorized(msgInvalidCredentials)
		}
		return transport.AuthResponse{}, err
	}

	if !user.Active {
		s.log.AuthEvent("login", email, false, "inactive user")
		return transport.AuthResponse{}, apperr.Unauthorized(msgInactiveUser)
	}

	if err := password.Compare(user.PasswordHash, plainPassword); err != nil {
		s.log.AuthEvent("login", email, false, "bad password")
		return transport.AuthResponse{}, apperr.Unauthorized(msgInvalidCredentials)
	}

	if user.SchoolID != nil && user.School != nil && !user.School.Active {
		s.log.AuthEvent("login", email, false, "inactive school")
		return transport.AuthResponse{}, apperr.Unauthorized(msgInactiveSchool)
	}

	accessToken, err := s.issueToken(user.User)
	if err != nil {
		return transport.AuthResponse{}, err
	}

	s.log.AuthEvent("login", email, true, "")
	return transport.AuthResponse{
		AccessToken: accessToken,
		User:        toUserResponse(user),
	}, nil
}

// Register creates a user account. Non-super-admin roles must reference an
// existing active school.
func (s *Service) Register(ctx context.Context, req transport.RegisterRequest) (transport.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if req.Role != roles.SuperAdmin && req.SchoolID == nil {
		return transport.AuthResponse{}, apperr.BadRequest("schoolId is required for non-super admin users")
	}

	var school *repository.SchoolInfo
	if req.SchoolID != nil {
		found, err := s.repo.GetSchoolByID(ctx, *req.SchoolID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return transport.AuthResponse{}, apperr.BadRequest("invalid schoolId")
			}
			return transport.AuthResponse{}, err
		}
		if !found.Active {
			return transport.AuthResponse{}, apperr.BadRequest(msgInactiveSchool)
		}
		school = &found
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return transport.AuthResponse{}, err
	}

	user, err := s.repo.CreateUser(ctx, repository.CreateUserParams{
		Email:        email,
		PasswordHash: hash,
		Name:         strings.TrimSpace(req.Name),
		Role:         req.Role,
		SchoolID:     req.SchoolID,
	})
	if err != nil {
		return transport.AuthResponse{}, err
	}

	accessToken, err := s.issueToken(user)
	if err != nil {
		return transport.AuthResponse{}, err
	}

	s.log.AuthEvent("register", email, true, "")
	return transport.AuthResponse{
		AccessToken: accessToken,
		User:        toUserResponse(repository.UserWithSchool{User: user, School: school}),
	}, nil
}

// Profile returns the current user with its school summary.
func (s *Service) Profile(ctx context.Context, userID uuid.UUID) (transport.UserResponse, error) {
	user, err := s.repo.GetUserWithSchoolByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return transport.UserResponse{}, apperr.Unauthorized("user not found")
		}
		return transport.UserResponse{}, err
	}
	return toUserResponse(user), nil
}

func (s *Service) issueToken(user repository.User) (string, error) {
	return token.IssueAccess(s.cfg.GetJWTSecret(), s.cfg.GetAccessTokenTTL(), token.Subject{
		UserID:   user.ID,
		Email:    user.Email,
		Role:     user.Role,
		SchoolID: user.SchoolID,
	})
}

func toUserResponse(user repository.UserWithSchool) transport.UserResponse {
	resp := transport.UserResponse{
		ID:       user.ID,
		Email:    user.Email,
		Name:     user.Name,
		Role:     user.Role,
		SchoolID: user.SchoolID,
	}
	if user.School != nil {
		resp.School = &transport.SchoolSummary{
			ID:   user.School.ID,
			Name: user.School.Name,
			Slug: user.School.Slug,
		}
	}
	return resp
}
