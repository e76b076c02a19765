package service

import (
	"context"
	"testing"

	"taleschool_backend/internal/classrooms/repository"
	"taleschool_backend/internal/classrooms/transport"
	"taleschool_backend/platform/apperr"
	"taleschool_backend/platform/logger"

	"github.com/google/uuid"
)

type fakeStore struct {
	classrooms map[uuid.UUID]repository.Classroom
	deleted    []uuid.UUID
	deleteErr  error
}

func newFakeStore() *fakeStore {
	return &fakeStore{classrooms: map[uuid.UUID]repository.Classroom{}}
}

func (f *fakeStore) Create(ctx context.Context, p repository.CreateClassroomParams) (repository.Classroom, error) {
	for _, c := range f.classrooms {
		if c.SchoolID == p.SchoolID && c.Name == p.Name && c.Section == p.Section {
			return repository.Classroom{}, apperr.Conflict("classroom already exists")
		}
	}
	c := repository.Classroom{ID: uuid.New(), Name: p.Name, Section: p.Section, SchoolID: p.SchoolID}
	f.classrooms[c.ID] = c
	return c, nil
}

func (f *fakeStore) List(ctx context.Context, p repository.ListClassroomsParams) ([]repository.Classroom, int, error) {
	var out []repository.Classroom
	for _, c := range f.classrooms {
		if c.SchoolID == p.SchoolID {
			out = append(out, c)
		}
	}
	return out, len(out), nil
}

func (f *fakeStore) GetByID(ctx context.Context, id, schoolID uuid.UUID) (repository.Classroom, error) {
	c, ok := f.classrooms[id]
	if !ok || c.SchoolID != schoolID {
		return repository.Classroom{}, repository.ErrNotFound
	}
	return c, nil
}

func (f *fakeStore) Students(ctx context.Context, classroomID uuid.UUID) ([]repository.Student, error) {
	return nil, nil
}

func (f *fakeStore) Update(ctx context.Context, p repository.UpdateClassroomParams) (repository.Classroom, error) {
	c, ok := f.classrooms[p.ID]
	if !ok || c.SchoolID != p.SchoolID {
		return repository.Classroom{}, repository.ErrNotFound
	}
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Section != nil {
		c.Section = *p.Section
	}
	f.classrooms[p.ID] = c
	return c, nil
}

func (f *fakeStore) Delete(ctx context.Context, id, schoolID uuid.UUID) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	c, ok := f.classrooms[id]
	if !ok || c.SchoolID != schoolID {
		return repository.ErrNotFound
	}
	delete(f.classrooms, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func TestDeleteEmptyClassroom(t *testing.T) {
	store := newFakeStore()
	schoolID := uuid.New()
	classroom := repository.Classroom{ID: uuid.New(), Name: "Class 10", Section: "A", SchoolID: schoolID}
	store.classrooms[classroom.ID] = classroom

	svc := New(store, logger.New("test"))
	if err := svc.Delete(context.Background(), classroom.ID, schoolID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(store.deleted) != 1 {
		t.Fatal("expected classroom to be deleted")
	}
}

func TestDeleteClassroomWithStudentsIsRejected(t *testing.T) {
	store := newFakeStore()
	schoolID := uuid.New()
	classroom := repository.Classroom{ID: uuid.New(), Name: "Class 10", Section: "A", SchoolID: schoolID, StudentCount: 3}
	store.classrooms[classroom.ID] = classroom

	svc := New(store, logger.New("test"))
	err := svc.Delete(context.Background(), classroom.ID, schoolID)
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(store.deleted) != 0 {
		t.Fatal("classroom row must be left untouched")
	}
	if _, ok := store.classrooms[classroom.ID]; !ok {
		t.Fatal("classroom must still exist after rejected delete")
	}
}

func TestDeleteConcurrentEnrollmentIsRejected(t *testing.T) {
	store := newFakeStore()
	schoolID := uuid.New()
	// Roster counted as empty, but a student enrolls before the delete runs;
	// the row delete then reports the constraint as a validation error.
	classroom := repository.Classroom{ID: uuid.New(), Name: "Class 10", Section: "A", SchoolID: schoolID}
	store.classrooms[classroom.ID] = classroom
	store.deleteErr = apperr.Validation("cannot delete classroom with students; please reassign or delete students first")

	svc := New(store, logger.New("test"))
	err := svc.Delete(context.Background(), classroom.ID, schoolID)
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDeleteClassroomScopedToSchool(t *testing.T) {
	store := newFakeStore()
	classroom := repository.Classroom{ID: uuid.New(), Name: "Class 10", Section: "A", SchoolID: uuid.New()}
	store.classrooms[classroom.ID] = classroom

	svc := New(store, logger.New("test"))
	err := svc.Delete(context.Background(), classroom.ID, uuid.New())
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found for foreign school, got %v", err)
	}
}

func TestGetIncludesRoster(t *testing.T) {
	store := newFakeStore()
	schoolID := uuid.New()
	classroom := repository.Classroom{ID: uuid.New(), Name: "Class 10", Section: "A", SchoolID: schoolID}
	store.classrooms[classroom.ID] = classroom

	svc := New(store, logger.New("test"))
	resp, err := svc.Get(context.Background(), classroom.ID, schoolID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if resp.Name != "Class 10" || resp.Section != "A" {
		t.Fatalf("unexpected classroom: %+v", resp)
	}
}

func TestCreateTrimsInput(t *testing.T) {
	store := newFakeStore()
	svc := New(store, logger.New("test"))

	resp, err := svc.Create(context.Background(), uuid.New(), transport.CreateClassroomRequest{
		Name:    "  Class 10  ",
		Section: " A ",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if resp.Name != "Class 10" || resp.Section != "A" {
		t.Fatalf("expected trimmed values, got %q %q", resp.Name, resp.Section)
	}
}
