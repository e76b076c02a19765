package service

import (
	"context"
	"errors"
	"strings"

	"taleschool_backend/internal/classrooms/repository"
	"taleschool_backend/internal/classrooms/transport"
	"taleschool_backend/platform/apperr"
	"taleschool_backend/platform/httpkit"
	"taleschool_backend/platform/logger"

	"github.com/google/uuid"
)

type Service struct {
	repo repository.Store
	log  *logger.Logger
}

func New(repo repository.Store, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

func (s *Service) Create(ctx context.Context, schoolID uuid.UUID, req transport.CreateClassroomRequest) (transport.ClassroomResponse, error) {
	classroom, err := s.repo.Create(ctx, repository.CreateClassroomParams{
		Name:     strings.TrimSpace(req.Name),
		Section:  strings.TrimSpace(req.Section),
		SchoolID: schoolID,
	})
	if err != nil {
		return transport.ClassroomResponse{}, err
	}

	s.log.Info("classroom created", "id", classroom.ID, "schoolId", schoolID)
	return toClassroomResponse(classroom, nil), nil
}

func (s *Service) List(ctx context.Context, schoolID uuid.UUID, req transport.ListClassroomsRequest) ([]transport.ClassroomResponse, httpkit.ListMeta, error) {
	page, limit := normalizePage(req.Page, req.Limit)

	classrooms, total, err := s.repo.List(ctx, repository.ListClassroomsParams{
		SchoolID: schoolID,
		Search:   strings.TrimSpace(req.Search),
		Offset:   (page - 1) * limit,
		Limit:    limit,
	})
	if err != nil {
		return nil, httpkit.ListMeta{}, err
	}

	responses := make([]transport.ClassroomResponse, len(classrooms))
	for i, c := range classrooms {
		responses[i] = toClassroomResponse(c, nil)
	}
	return responses, httpkit.NewListMeta(total, page, limit), nil
}

// Get returns one classroom with its full roster.
func (s *Service) Get(ctx context.Context, id, schoolID uuid.UUID) (transport.ClassroomResponse, error) {
	classroom, err := s.repo.GetByID(ctx, id, schoolID)
	if err != nil {
		return transport.ClassroomResponse{}, notFoundOr(err)
	}

	students, err := s.repo.Students(ctx, id)
	if err != nil {
		return transport.ClassroomResponse{}, err
	}
	return toClassroomResponse(classroom, students), nil
}

func (s *Service) Update(ctx context.Context, id, schoolID uuid.UUID, req transport.UpdateClassroomRequest) (transport.ClassroomResponse, error) {
	classroom, err := s.repo.Update(ctx, repository.UpdateClassroomParams{
		ID:       id,
		SchoolID: schoolID,
		Name:     trimPtr(req.Name),
		Section:  trimPtr(req.Section),
	})
	if err != nil {
		return transport.ClassroomResponse{}, notFoundOr(err)
	}
	return toClassroomResponse(classroom, nil), nil
}

// Delete removes an empty classroom. A classroom with students assigned is
// rejected and left untouched; students must be reassigned first.
func (s *Service) Delete(ctx context.Context, id, schoolID uuid.UUID) error {
	classroom, err := s.repo.GetByID(ctx, id, schoolID)
	if err != nil {
		return notFoundOr(err)
	}

	if classroom.StudentCount > 0 {
		return apperr.Validation("cannot delete classroom with students; please reassign or delete students first")
	}

	if err := s.repo.Delete(ctx, id, schoolID); err != nil {
		return notFoundOr(err)
	}

	s.log.Info("classroom deleted", "id", id, "schoolId", schoolID)
	return nil
}

func notFoundOr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound("classroom not found")
	}
	return err
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

func toClassroomResponse(c repository.Classroom, students []repository.Student) transport.ClassroomResponse {
	var roster []transport.ClassroomStudent
	for _, st := range students {
		roster = append(roster, transport.ClassroomStudent{
			ID:         st.ID,
			Name:       st.Name,
			RollNumber: st.RollNumber,
			Email:      st.Email,
		})
	}

	return transport.ClassroomResponse{
		ID:           c.ID,
		Name:         c.Name,
		Section:      c.Section,
		SchoolID:     c.SchoolID,
		StudentCount: c.StudentCount,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
		Students:     roster,
	}
}
