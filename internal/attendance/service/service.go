package service

import (
	"context"
	"errors"
	"time"

	"taleschool_backend/internal/attendance/repository"
	"taleschool_backend/internal/attendance/transport"
	"taleschool_backend/platform/apperr"
	"taleschool_backend/platform/httpkit"
	"taleschool_backend/platform/logger"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

type Service struct {
	repo repository.Store
	log  *logger.Logger
}

func New(repo repository.Store, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Mark records attendance for one student on one date. The student must
// belong to the school; one record per student per day.
func (s *Service) Mark(ctx context.Context, schoolID, markedBy uuid.UUID, req transport.MarkAttendanceRequest) (transport.AttendanceResponse, error) {
	studentID, err := uuid.Parse(req.StudentID)
	if err != nil {
		return transport.AttendanceResponse{}, apperr.Validation("invalid student id")
	}

	ok, err := s.repo.StudentExists(ctx, studentID, schoolID)
	if err != nil {
		return transport.AttendanceResponse{}, err
	}
	if !ok {
		return transport.AttendanceResponse{}, apperr.Validation("invalid student or student does not belong to this school")
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return transport.AttendanceResponse{}, apperr.Validation("invalid date format, expected YYYY-MM-DD")
	}

	record, err := s.repo.Create(ctx, repository.CreateParams{
		StudentID: studentID,
		Date:      date,
		Status:    req.Status,
		Remarks:   req.Remarks,
		MarkedBy:  markedBy,
		SchoolID:  schoolID,
	})
	if err != nil {
		return transport.AttendanceResponse{}, err
	}
	return toAttendanceResponse(record), nil
}

// BulkMark records attendance for a batch of students. Items are isolated:
// a failing item is reported per student and never aborts the rest.
func (s *Service) BulkMark(ctx context.Context, schoolID, markedBy uuid.UUID, req transport.BulkMarkAttendanceRequest) (transport.BulkMarkResponse, error) {
	resp := transport.BulkMarkResponse{
		Results: []transport.BulkResult{},
		Errors:  []transport.BulkError{},
	}

	for _, item := range req.Attendances {
		record, err := s.Mark(ctx, schoolID, markedBy, item)
		if err != nil {
			resp.Failed++
			resp.Errors = append(resp.Errors, transport.BulkError{
				Success:   false,
				StudentID: item.StudentID,
				Error:     err.Error(),
			})
			continue
		}
		resp.Successful++
		resp.Results = append(resp.Results, transport.BulkResult{Success: true, Data: record})
	}

	s.log.Info("bulk attendance marked",
		"schoolId", schoolID, "successful", resp.Successful, "failed", resp.Failed)
	return resp, nil
}

func (s *Service) List(ctx context.Context, schoolID uuid.UUID, req transport.ListAttendanceRequest) ([]transport.AttendanceResponse, httpkit.ListMeta, error) {
	page, limit := normalizePage(req.Page, req.Limit)

	params := repository.ListParams{
		SchoolID: schoolID,
		Offset:   (page - 1) * limit,
		Limit:    limit,
	}
	if req.Date != "" {
		date, err := time.Parse(dateLayout, req.Date)
		if err != nil {
			return nil, httpkit.ListMeta{}, apperr.Validation("invalid date format, expected YYYY-MM-DD")
		}
		params.Date = &date
	}
	if req.StudentID != "" {
		id, err := uuid.Parse(req.StudentID)
		if err != nil {
			return nil, httpkit.ListMeta{}, apperr.Validation("invalid student id")
		}
		params.StudentID = &id
	}
	if req.ClassroomID != "" {
		id, err := uuid.Parse(req.ClassroomID)
		if err != nil {
			return nil, httpkit.ListMeta{}, apperr.Validation("invalid classroom id")
		}
		params.ClassroomID = &id
	}

	records, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, httpkit.ListMeta{}, err
	}

	responses := make([]transport.AttendanceResponse, len(records))
	for i, rec := range records {
		responses[i] = toAttendanceResponse(rec)
	}
	return responses, httpkit.NewListMeta(total, page, limit), nil
}

func (s *Service) Get(ctx context.Context, id, schoolID uuid.UUID) (transport.AttendanceResponse, error) {
	record, err := s.repo.GetByID(ctx, id, schoolID)
	if err != nil {
		return transport.AttendanceResponse{}, notFoundOr(err)
	}
	return toAttendanceResponse(record), nil
}

func (s *Service) Update(ctx context.Context, id, schoolID uuid.UUID, req transport.UpdateAttendanceRequest) (transport.AttendanceResponse, error) {
	record, err := s.repo.Update(ctx, repository.UpdateParams{
		ID:       id,
		SchoolID: schoolID,
		Status:   req.Status,
		Remarks:  req.Remarks,
	})
	if err != nil {
		return transport.AttendanceResponse{}, notFoundOr(err)
	}
	return toAttendanceResponse(record), nil
}

func (s *Service) Delete(ctx context.Context, id, schoolID uuid.UUID) error {
	if err := s.repo.Delete(ctx, id, schoolID); err != nil {
		return notFoundOr(err)
	}
	return nil
}

// Stats returns attendance counts for the school, optionally for one date.
// The percentage counts late arrivals as attending.
func (s *Service) Stats(ctx context.Context, schoolID uuid.UUID, req transport.StatsRequest) (transport.StatsResponse, error) {
	var date *time.Time
	if req.Date != "" {
		parsed, err := time.Parse(dateLayout, req.Date)
		if err != nil {
			return transport.StatsResponse{}, apperr.Validation("invalid date format, expected YYYY-MM-DD")
		}
		date = &parsed
	}

	stats, err := s.repo.GetStats(ctx, schoolID, date)
	if err != nil {
		return transport.StatsResponse{}, err
	}

	var percentage float64
	if stats.TotalStudents > 0 {
		percentage = float64(stats.Present+stats.Late) / float64(stats.TotalStudents) * 100
	}

	return transport.StatsResponse{
		Total:                stats.Total,
		Present:              stats.Present,
		Absent:               stats.Absent,
		Late:                 stats.Late,
		TotalStudents:        stats.TotalStudents,
		AttendancePercentage: percentage,
	}, nil
}

func notFoundOr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound("attendance record not found")
	}
	return err
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

func toAttendanceResponse(rec repository.Record) transport.AttendanceResponse {
	resp := transport.AttendanceResponse{
		ID:       rec.ID,
		Date:     rec.Date.Format(dateLayout),
		Status:   rec.Status,
		Remarks:  rec.Remarks,
		SchoolID: rec.SchoolID,
		MarkedBy: transport.MarkedBySummary{
			ID:    rec.MarkedBy,
			Name:  rec.MarkerName,
			Email: rec.MarkerEmail,
		},
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
	resp.Student.ID = rec.StudentID
	resp.Student.Name = rec.StudentName
	resp.Student.RollNumber = rec.StudentRollNumber
	resp.Student.Classroom.ID = rec.ClassroomID
	resp.Student.Classroom.Name = rec.ClassroomName
	resp.Student.Classroom.Section = rec.ClassroomSection
	return resp
}
