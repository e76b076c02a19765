package service

import (
	"context"
	"errors"
	"strings"

	"taleschool_backend/internal/auth/password"
	"taleschool_backend/internal/auth/roles"
	"taleschool_backend/internal/teachers/repository"
	"taleschool_backend/internal/teachers/transport"
	"taleschool_backend/platform/apperr"
	"taleschool_backend/platform/httpkit"
	"taleschool_backend/platform/logger"
	"taleschool_backend/platform/phone"

	"github.com/google/uuid"
)

// defaultPassword is assigned when a teacher is provisioned without an
// explicit password; admins are expected to hand it over out of band.
const defaultPassword = "Teacher@123"

type Service struct {
	repo repository.Store
	log  *logger.Logger
}

func New(repo repository.Store, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Create provisions a teacher together with a TEACHER-role user account.
func (s *Service) Create(ctx context.Context, schoolID uuid.UUID, req transport.CreateTeacherRequest) (transport.TeacherResponse, error) {
	plain := defaultPassword
	if req.Password != nil && *req.Password != "" {
		plain = *req.Password
	}
	hash, err := password.Hash(plain)
	if err != nil {
		return transport.TeacherResponse{}, apperr.Wrap(apperr.KindInternal, "failed to hash password", err)
	}

	designation := "Teacher"
	if req.Designation != nil && strings.TrimSpace(*req.Designation) != "" {
		designation = strings.TrimSpace(*req.Designation)
	}

	teacher, err := s.repo.Create(ctx, repository.CreateTeacherParams{
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
		Role:         roles.Teacher,
		Designation:  designation,
		Phone:        normalizePhone(req.Phone),
		SchoolID:     schoolID,
	})
	if err != nil {
		return transport.TeacherResponse{}, err
	}

	s.log.Info("teacher created", "id", teacher.ID, "schoolId", schoolID)
	return toTeacherResponse(teacher), nil
}

func (s *Service) List(ctx context.Context, schoolID uuid.UUID, req transport.ListTeachersRequest) ([]transport.TeacherResponse, httpkit.ListMeta, error) {
	page, limit := normalizePage(req.Page, req.Limit)

	teachers, total, err := s.repo.List(ctx, repository.ListTeachersParams{
		SchoolID: schoolID,
		Search:   strings.TrimSpace(req.Search),
		Offset:   (page - 1) * limit,
		Limit:    limit,
	})
	if err != nil {
		return nil, httpkit.ListMeta{}, err
	}

	responses := make([]transport.TeacherResponse, len(teachers))
	for i, t := range teachers {
		responses[i] = toTeacherResponse(t)
	}
	return responses, httpkit.NewListMeta(total, page, limit), nil
}

func (s *Service) Get(ctx context.Context, id, schoolID uuid.UUID) (transport.TeacherResponse, error) {
	teacher, err := s.repo.GetByID(ctx, id, schoolID)
	if err != nil {
		return transport.TeacherResponse{}, notFoundOr(err)
	}
	return toTeacherResponse(teacher), nil
}

func (s *Service) Update(ctx context.Context, id, schoolID uuid.UUID, req transport.UpdateTeacherRequest) (transport.TeacherResponse, error) {
	teacher, err := s.repo.Update(ctx, repository.UpdateTeacherParams{
		ID:          id,
		SchoolID:    schoolID,
		Name:        trimPtr(req.Name),
		Designation: trimPtr(req.Designation),
		Phone:       normalizePhone(req.Phone),
	})
	if err != nil {
		return transport.TeacherResponse{}, notFoundOr(err)
	}
	return toTeacherResponse(teacher), nil
}

// Delete removes the teacher and its linked user account.
func (s *Service) Delete(ctx context.Context, id, schoolID uuid.UUID) error {
	if err := s.repo.Delete(ctx, id, schoolID); err != nil {
		return notFoundOr(err)
	}
	s.log.Info("teacher deleted", "id", id, "schoolId", schoolID)
	return nil
}

func notFoundOr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound("teacher not found")
	}
	return err
}

func normalizePhone(value *string) *string {
	if value == nil {
		return nil
	}
	normalized := phone.NormalizeE164(*value)
	return &normalized
}

func trimPtr(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	return &trimmed
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

func toTeacherResponse(t repository.Teacher) transport.TeacherResponse {
	return transport.TeacherResponse{
		ID:          t.ID,
		Name:        t.Name,
		Designation: t.Designation,
		Phone:       t.Phone,
		SchoolID:    t.SchoolID,
		User: transport.TeacherUser{
			ID:     t.UserID,
			Email:  t.UserEmail,
			Name:   t.UserName,
			Role:   t.UserRole,
			Active: t.UserActive,
		},
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}
