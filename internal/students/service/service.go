package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"taleschool_backend/internal/students/repository"
	"taleschool_backend/internal/students/transport"
	"taleschool_backend/platform/apperr"
	"taleschool_backend/platform/httpkit"
	"taleschool_backend/platform/logger"
	"taleschool_backend/platform/phone"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// recentAttendanceLimit caps the attendance history attached to a single
// student read.
const recentAttendanceLimit = 10

type Service struct {
	repo repository.Store
	log  *logger.Logger
}

func New(repo repository.Store, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Create enrolls a student. The classroom must belong to the same school;
// roll numbers are unique per school.
func (s *Service) Create(ctx context.Context, schoolID uuid.UUID, req transport.CreateStudentRequest) (transport.StudentResponse, error) {
	classroomID, err := uuid.Parse(req.ClassroomID)
	if err != nil {
		return transport.StudentResponse{}, apperr.Validation("invalid classroom id")
	}

	ok, err := s.repo.ClassroomExists(ctx, classroomID, schoolID)
	if err != nil {
		return transport.StudentResponse{}, err
	}
	if !ok {
		return transport.StudentResponse{}, apperr.Validation("invalid classroom or classroom does not belong to this school")
	}

	dob, err := parseDate(req.DateOfBirth)
	if err != nil {
		return transport.StudentResponse{}, err
	}

	student, err := s.repo.Create(ctx, repository.CreateStudentParams{
		Name:        strings.TrimSpace(req.Name),
		RollNumber:  strings.TrimSpace(req.RollNumber),
		ClassroomID: classroomID,
		Email:       req.Email,
		Phone:       normalizePhone(req.Phone),
		DateOfBirth: dob,
		Address:     req.Address,
		SchoolID:    schoolID,
	})
	if err != nil {
		return transport.StudentResponse{}, err
	}

	s.log.Info("student created", "id", student.ID, "schoolId", schoolID)
	return toStudentResponse(student, nil), nil
}

func (s *Service) List(ctx context.Context, schoolID uuid.UUID, req transport.ListStudentsRequest) ([]transport.StudentResponse, httpkit.ListMeta, error) {
	page, limit := normalizePage(req.Page, req.Limit)

	var classroomID *uuid.UUID
	if req.ClassroomID != "" {
		id, err := uuid.Parse(req.ClassroomID)
		if err != nil {
			return nil, httpkit.ListMeta{}, apperr.Validation("invalid classroom id")
		}
		classroomID = &id
	}

	students, total, err := s.repo.List(ctx, repository.ListStudentsParams{
		SchoolID:    schoolID,
		ClassroomID: classroomID,
		Search:      strings.TrimSpace(req.Search),
		Offset:      (page - 1) * limit,
		Limit:       limit,
	})
	if err != nil {
		return nil, httpkit.ListMeta{}, err
	}

	responses := make([]transport.StudentResponse, len(students))
	for i, st := range students {
		responses[i] = toStudentResponse(st, nil)
	}
	return responses, httpkit.NewListMeta(total, page, limit), nil
}

// Get returns one student with their recent attendance history.
func (s *Service) Get(ctx context.Context, id, schoolID uuid.UUID) (transport.StudentResponse, error) {
	student, err := s.repo.GetByID(ctx, id, schoolID)
	if err != nil {
		return transport.StudentResponse{}, notFoundOr(err)
	}

	records, err := s.repo.RecentAttendance(ctx, id, recentAttendanceLimit)
	if err != nil {
		return transport.StudentResponse{}, err
	}
	return toStudentResponse(student, records), nil
}

func (s *Service) Update(ctx context.Context, id, schoolID uuid.UUID, req transport.UpdateStudentRequest) (transport.StudentResponse, error) {
	var classroomID *uuid.UUID
	if req.ClassroomID != nil {
		parsed, err := uuid.Parse(*req.ClassroomID)
		if err != nil {
			return transport.StudentResponse{}, apperr.Validation("invalid classroom id")
		}
		ok, err := s.repo.ClassroomExists(ctx, parsed, schoolID)
		if err != nil {
			return transport.StudentResponse{}, err
		}
		if !ok {
			return transport.StudentResponse{}, apperr.Validation("invalid classroom or classroom does not belong to this school")
		}
		classroomID = &parsed
	}

	dob, err := parseDate(req.DateOfBirth)
	if err != nil {
		return transport.StudentResponse{}, err
	}

	student, err := s.repo.Update(ctx, repository.UpdateStudentParams{
		ID:          id,
		SchoolID:    schoolID,
		Name:        trimPtr(req.Name),
		RollNumber:  trimPtr(req.RollNumber),
		ClassroomID: classroomID,
		Email:       req.Email,
		Phone:       normalizePhone(req.Phone),
		DateOfBirth: dob,
		Address:     req.Address,
	})
	if err != nil {
		return transport.StudentResponse{}, notFoundOr(err)
	}
	return toStudentResponse(student, nil), nil
}

func (s *Service) Delete(ctx context.Context, id, schoolID uuid.UUID) error {
	if err := s.repo.Delete(ctx, id, schoolID); err != nil {
		return notFoundOr(err)
	}
	s.log.Info("student deleted", "id", id, "schoolId", schoolID)
	return nil
}

func notFoundOr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound("student not found")
	}
	return err
}

func parseDate(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, *value)
	if err != nil {
		return nil, apperr.Validation("invalid date format, expected YYYY-MM-DD")
	}
	return &t, nil
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

func toStudentResponse(st repository.Student, records []repository.AttendanceRecord) transport.StudentResponse {
	var dob *string
	if st.DateOfBirth != nil {
		formatted := st.DateOfBirth.Format(dateLayout)
		dob = &formatted
	}

	var recent []transport.AttendanceEntry
	for _, rec := range records {
		recent = append(recent, transport.AttendanceEntry{
			ID:      rec.ID,
			Date:    rec.Date.Format(dateLayout),
			Status:  rec.Status,
			Remarks: rec.Remarks,
		})
	}

	return transport.StudentResponse{
		ID:          st.ID,
		Name:        st.Name,
		RollNumber:  st.RollNumber,
		Email:       st.Email,
		Phone:       st.Phone,
		DateOfBirth: dob,
		Address:     st.Address,
		SchoolID:    st.SchoolID,
		Classroom: transport.ClassroomSummary{
			ID:      st.ClassroomID,
			Name:    st.ClassroomName,
			Section: st.ClassroomSection,
		},
		CreatedAt:        st.CreatedAt,
		UpdatedAt:        st.UpdatedAt,
		RecentAttendance: recent,
	}
}
