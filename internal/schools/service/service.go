package service

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"taleschool_backend/internal/events"
	"taleschool_backend/internal/schools/repository"
	"taleschool_backend/internal/schools/transport"
	"taleschool_backend/platform/apperr"
	"taleschool_backend/platform/httpkit"
	"taleschool_backend/platform/logger"
	"taleschool_backend/platform/phone"

	"github.com/google/uuid"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// Service provides platform-level school management.
type Service struct {
	repo repository.Store
	bus  events.Bus
	log  *logger.Logger
}

func New(repo repository.Store, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, bus: bus, log: log}
}

// Create registers a new school. Slugs double as tenant subdomains, so the
// character set is restricted and uniqueness surfaces as Conflict.
func (s *Service) Create(ctx context.Context, req transport.CreateSchoolRequest) (transport.SchoolResponse, error) {
	slug := strings.TrimSpace(req.Slug)
	if !slugPattern.MatchString(slug) {
		return transport.SchoolResponse{}, apperr.Validation("slug must contain only lowercase letters, numbers, and hyphens")
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	school, err := s.repo.Create(ctx, repository.CreateSchoolParams{
		Name:    strings.TrimSpace(req.Name),
		Slug:    slug,
		Email:   req.Email,
		Phone:   normalizePhone(req.Phone),
		Address: req.Address,
		Active:  active,
	})
	if err != nil {
		return transport.SchoolResponse{}, err
	}

	s.log.Info("school created", "id", school.ID, "slug", school.Slug)
	return toSchoolResponse(school), nil
}

// List returns schools with search and pagination.
func (s *Service) List(ctx context.Context, req transport.ListSchoolsRequest) ([]transport.SchoolResponse, httpkit.ListMeta, error) {
	page, limit := normalizePage(req.Page, req.Limit)

	schools, total, err := s.repo.List(ctx, repository.ListSchoolsParams{
		Search: strings.TrimSpace(req.Search),
		Offset: (page - 1) * limit,
		Limit:  limit,
	})
	if err != nil {
		return nil, httpkit.ListMeta{}, err
	}

	responses := make([]transport.SchoolResponse, len(schools))
	for i, school := range schools {
		responses[i] = toSchoolResponse(school)
	}
	return responses, httpkit.NewListMeta(total, page, limit), nil
}

// Get returns a single school by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (transport.SchoolResponse, error) {
	school, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.SchoolResponse{}, notFoundOr(err)
	}
	return toSchoolResponse(school), nil
}

// Update applies a partial update and invalidates the tenant cache entry.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req transport.UpdateSchoolRequest) (transport.SchoolResponse, error) {
	school, err := s.repo.Update(ctx, repository.UpdateSchoolParams{
		ID:      id,
		Name:    trimPtr(req.Name),
		Email:   req.Email,
		Phone:   normalizePhone(req.Phone),
		Address: req.Address,
		Active:  req.Active,
	})
	if err != nil {
		return transport.SchoolResponse{}, notFoundOr(err)
	}

	s.publishUpdated(ctx, school)
	s.log.Info("school updated", "id", school.ID, "slug", school.Slug)
	return toSchoolResponse(school), nil
}

// ToggleActive flips the activation flag. Deactivation blocks all further
// tenant-scoped requests for the school without deleting data.
func (s *Service) ToggleActive(ctx context.Context, id uuid.UUID) (transport.SchoolResponse, error) {
	school, err := s.repo.ToggleActive(ctx, id)
	if err != nil {
		return transport.SchoolResponse{}, notFoundOr(err)
	}

	s.publishUpdated(ctx, school)
	s.log.Info("school toggled", "id", school.ID, "slug", school.Slug, "active", school.Active)
	return toSchoolResponse(school), nil
}

// Delete removes an empty school. Schools that still own users, teachers or
// students must be emptied or deactivated instead.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	school, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return notFoundOr(err)
	}

	if school.UserCount > 0 || school.TeacherCount > 0 || school.StudentCount > 0 {
		return apperr.BadRequest("cannot delete school with existing users, teachers, or students; delete related data first or deactivate the school")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return notFoundOr(err)
	}

	s.bus.Publish(ctx, events.SchoolDeleted{
		BaseEvent: events.NewBaseEvent(),
		SchoolID:  school.ID,
		Slug:      school.Slug,
	})
	s.log.Info("school deleted", "id", id, "slug", school.Slug)
	return nil
}

// Stats returns aggregate counts for one school.
func (s *Service) Stats(ctx context.Context, id uuid.UUID) (transport.SchoolStatsResponse, error) {
	school, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.SchoolStatsResponse{}, notFoundOr(err)
	}

	stats, err := s.repo.GetStats(ctx, id)
	if err != nil {
		return transport.SchoolStatsResponse{}, err
	}

	var resp transport.SchoolStatsResponse
	resp.School.ID = school.ID
	resp.School.Name = school.Name
	resp.School.Slug = school.Slug
	resp.School.Active = school.Active
	resp.Stats.TotalUsers = stats.Users
	resp.Stats.TotalTeachers = stats.Teachers
	resp.Stats.TotalStudents = stats.Students
	resp.Stats.TotalClassrooms = stats.Classrooms
	resp.Stats.AttendanceMarkedToday = stats.AttendanceToday
	return resp, nil
}

func (s *Service) publishUpdated(ctx context.Context, school repository.School) {
	s.bus.Publish(ctx, events.SchoolUpdated{
		BaseEvent: events.NewBaseEvent(),
		SchoolID:  school.ID,
		Slug:      school.Slug,
		Active:    school.Active,
	})
}

func notFoundOr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound("school not found")
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

func toSchoolResponse(school repository.School) transport.SchoolResponse {
	return transport.SchoolResponse{
		ID:      school.ID,
		Name:    school.Name,
		Slug:    school.Slug,
		Email:   school.Email,
		Phone:   school.Phone,
		Address: school.Address,
		Active:  school.Active,
		Counts: transport.SchoolCounts{
			Users:      school.UserCount,
			Teachers:   school.TeacherCount,
			Students:   school.StudentCount,
			Classrooms: school.ClassroomCount,
		},
		CreatedAt: school.CreatedAt,
		UpdatedAt: school.UpdatedAt,
	}
}
