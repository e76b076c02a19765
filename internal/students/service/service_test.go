package service

import (
	"context"
	"testing"
	"time"

	"taleschool_backend/internal/students/repository"
	"taleschool_backend/internal/students/transport"
	"taleschool_backend/platform/apperr"
	"taleschool_backend/platform/logger"

	"github.com/google/uuid"
)

type fakeStore struct {
	classrooms map[uuid.UUID]uuid.UUID // classroom id -> owning school
	students   map[uuid.UUID]repository.Student
	attendance map[uuid.UUID][]repository.AttendanceRecord

	lastAttendanceLimit int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		classrooms: map[uuid.UUID]uuid.UUID{},
		students:   map[uuid.UUID]repository.Student{},
		attendance: map[uuid.UUID][]repository.AttendanceRecord{},
	}
}

func (f *fakeStore) ClassroomExists(ctx context.Context, classroomID, schoolID uuid.UUID) (bool, error) {
	owner, ok := f.classrooms[classroomID]
	return ok && owner == schoolID, nil
}

func (f *fakeStore) Create(ctx context.Context, p repository.CreateStudentParams) (repository.Student, error) {
	for _, st := range f.students {
		if st.SchoolID == p.SchoolID && st.RollNumber == p.RollNumber {
			return repository.Student{}, apperr.Conflict("student with this roll number already exists in this school")
		}
	}
	st := repository.Student{
		ID:          uuid.New(),
		Name:        p.Name,
		RollNumber:  p.RollNumber,
		Email:       p.Email,
		Phone:       p.Phone,
		DateOfBirth: p.DateOfBirth,
		Address:     p.Address,
		SchoolID:    p.SchoolID,
		ClassroomID: p.ClassroomID,
	}
	f.students[st.ID] = st
	return st, nil
}

func (f *fakeStore) List(ctx context.Context, p repository.ListStudentsParams) ([]repository.Student, int, error) {
	var out []repository.Student
	for _, st := range f.students {
		if st.SchoolID != p.SchoolID {
			continue
		}
		if p.ClassroomID != nil && st.ClassroomID != *p.ClassroomID {
			continue
		}
		out = append(out, st)
	}
	return out, len(out), nil
}

func (f *fakeStore) GetByID(ctx context.Context, id, schoolID uuid.UUID) (repository.Student, error) {
	st, ok := f.students[id]
	if !ok || st.SchoolID != schoolID {
		return repository.Student{}, repository.ErrNotFound
	}
	return st, nil
}

func (f *fakeStore) RecentAttendance(ctx context.Context, studentID uuid.UUID, limit int) ([]repository.AttendanceRecord, error) {
	f.lastAttendanceLimit = limit
	records := f.attendance[studentID]
	if len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

func (f *fakeStore) Update(ctx context.Context, p repository.UpdateStudentParams) (repository.Student, error) {
	st, ok := f.students[p.ID]
	if !ok || st.SchoolID != p.SchoolID {
		return repository.Student{}, repository.ErrNotFound
	}
	if p.Name != nil {
		st.Name = *p.Name
	}
	if p.ClassroomID != nil {
		st.ClassroomID = *p.ClassroomID
	}
	f.students[p.ID] = st
	return st, nil
}

func (f *fakeStore) Delete(ctx context.Context, id, schoolID uuid.UUID) error {
	st, ok := f.students[id]
	if !ok || st.SchoolID != schoolID {
		return repository.ErrNotFound
	}
	delete(f.students, id)
	return nil
}

func newService(store *fakeStore) *Service {
	return New(store, logger.New("test"))
}

func TestCreateRejectsForeignClassroom(t *testing.T) {
	store := newFakeStore()
	classroomID := uuid.New()
	store.classrooms[classroomID] = uuid.New()

	req := transport.CreateStudentRequest{
		Name:        "Alice",
		RollNumber:  "ABC001",
		ClassroomID: classroomID.String(),
	}
	_, err := newService(store).Create(context.Background(), uuid.New(), req)
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error for foreign classroom, got %v", err)
	}
}

func TestCreateEnrollsStudent(t *testing.T) {
	store := newFakeStore()
	schoolID, classroomID := uuid.New(), uuid.New()
	store.classrooms[classroomID] = schoolID

	dob := "2012-05-14"
	resp, err := newService(store).Create(context.Background(), schoolID, transport.CreateStudentRequest{
		Name:        "Alice",
		RollNumber:  " ABC001 ",
		ClassroomID: classroomID.String(),
		DateOfBirth: &dob,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if resp.RollNumber != "ABC001" {
		t.Fatalf("expected trimmed roll number, got %q", resp.RollNumber)
	}
	if resp.DateOfBirth == nil || *resp.DateOfBirth != dob {
		t.Fatalf("expected date of birth %q, got %v", dob, resp.DateOfBirth)
	}
}

func TestCreateDuplicateRollNumberConflicts(t *testing.T) {
	store := newFakeStore()
	schoolID, classroomID := uuid.New(), uuid.New()
	store.classrooms[classroomID] = schoolID
	svc := newService(store)

	first := transport.CreateStudentRequest{Name: "Alice", RollNumber: "ABC001", ClassroomID: classroomID.String()}
	if _, err := svc.Create(context.Background(), schoolID, first); err != nil {
		t.Fatalf("first create: %v", err)
	}

	second := transport.CreateStudentRequest{Name: "Bob", RollNumber: "ABC001", ClassroomID: classroomID.String()}
	_, err := svc.Create(context.Background(), schoolID, second)
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("expected conflict for duplicate roll number, got %v", err)
	}
}

func TestCreateRejectsBadDate(t *testing.T) {
	store := newFakeStore()
	schoolID, classroomID := uuid.New(), uuid.New()
	store.classrooms[classroomID] = schoolID

	bad := "14-05-2012"
	_, err := newService(store).Create(context.Background(), schoolID, transport.CreateStudentRequest{
		Name:        "Alice",
		RollNumber:  "ABC001",
		ClassroomID: classroomID.String(),
		DateOfBirth: &bad,
	})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error for bad date, got %v", err)
	}
}

func TestGetIncludesRecentAttendance(t *testing.T) {
	store := newFakeStore()
	schoolID := uuid.New()
	student := repository.Student{ID: uuid.New(), Name: "Alice", RollNumber: "ABC001", SchoolID: schoolID}
	store.students[student.ID] = student

	for i := 0; i < 15; i++ {
		store.attendance[student.ID] = append(store.attendance[student.ID], repository.AttendanceRecord{
			ID:     uuid.New(),
			Date:   time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -i),
			Status: "PRESENT",
		})
	}

	resp, err := newService(store).Get(context.Background(), student.ID, schoolID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(resp.RecentAttendance) != 10 {
		t.Fatalf("expected history capped at 10, got %d", len(resp.RecentAttendance))
	}
	if store.lastAttendanceLimit != 10 {
		t.Fatalf("expected limit 10 passed through, got %d", store.lastAttendanceLimit)
	}
}

func TestUpdateRejectsForeignClassroom(t *testing.T) {
	store := newFakeStore()
	schoolID := uuid.New()
	student := repository.Student{ID: uuid.New(), Name: "Alice", RollNumber: "ABC001", SchoolID: schoolID}
	store.students[student.ID] = student

	foreign := uuid.New()
	store.classrooms[foreign] = uuid.New()

	classroomID := foreign.String()
	_, err := newService(store).Update(context.Background(), student.ID, schoolID, transport.UpdateStudentRequest{
		ClassroomID: &classroomID,
	})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDeleteScopedToSchool(t *testing.T) {
	store := newFakeStore()
	student := repository.Student{ID: uuid.New(), Name: "Alice", RollNumber: "ABC001", SchoolID: uuid.New()}
	store.students[student.ID] = student

	err := newService(store).Delete(context.Background(), student.ID, uuid.New())
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found for foreign school, got %v", err)
	}
}
