package service

import (
	"context"
	"testing"

	"taleschool_backend/internal/auth/password"
	"taleschool_backend/internal/auth/roles"
	"taleschool_backend/internal/teachers/repository"
	"taleschool_backend/internal/teachers/transport"
	"taleschool_backend/platform/apperr"
	"taleschool_backend/platform/logger"

	"github.com/google/uuid"
)

type fakeStore struct {
	teachers map[uuid.UUID]repository.Teacher
	created  []repository.CreateTeacherParams
	deleted  []uuid.UUID
}

func newFakeStore() *fakeStore {
	return &fakeStore{teachers: map[uuid.UUID]repository.Teacher{}}
}

func (f *fakeStore) Create(ctx context.Context, p repository.CreateTeacherParams) (repository.Teacher, error) {
	for _, t := range f.teachers {
		if t.UserEmail == p.Email {
			return repository.Teacher{}, apperr.Conflict("user with this email already exists")
		}
	}
	f.created = append(f.created, p)
	t := repository.Teacher{
		ID:          uuid.New(),
		UserID:      uuid.New(),
		Name:        p.Name,
		Designation: p.Designation,
		Phone:       p.Phone,
		SchoolID:    p.SchoolID,
		UserEmail:   p.Email,
		UserName:    p.Name,
		UserRole:    p.Role,
		UserActive:  true,
	}
	f.teachers[t.ID] = t
	return t, nil
}

func (f *fakeStore) List(ctx context.Context, p repository.ListTeachersParams) ([]repository.Teacher, int, error) {
	var out []repository.Teacher
	for _, t := range f.teachers {
		if t.SchoolID == p.SchoolID {
			out = append(out, t)
		}
	}
	return out, len(out), nil
}

func (f *fakeStore) GetByID(ctx context.Context, id, schoolID uuid.UUID) (repository.Teacher, error) {
	t, ok := f.teachers[id]
	if !ok || t.SchoolID != schoolID {
		return repository.Teacher{}, repository.ErrNotFound
	}
	return t, nil
}

func (f *fakeStore) Update(ctx context.Context, p repository.UpdateTeacherParams) (repository.Teacher, error) {
	t, ok := f.teachers[p.ID]
	if !ok || t.SchoolID != p.SchoolID {
		return repository.Teacher{}, repository.ErrNotFound
	}
	if p.Name != nil {
		t.Name = *p.Name
	}
	if p.Designation != nil {
		t.Designation = *p.Designation
	}
	f.teachers[p.ID] = t
	return t, nil
}

func (f *fakeStore) Delete(ctx context.Context, id, schoolID uuid.UUID) error {
	t, ok := f.teachers[id]
	if !ok || t.SchoolID != schoolID {
		return repository.ErrNotFound
	}
	delete(f.teachers, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func newService(store *fakeStore) *Service {
	return New(store, logger.New("test"))
}

func TestCreateProvisionsUserAccount(t *testing.T) {
	store := newFakeStore()
	schoolID := uuid.New()

	resp, err := newService(store).Create(context.Background(), schoolID, transport.CreateTeacherRequest{
		Name:  "John Doe",
		Email: "John.Doe@ABC.com",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if len(store.created) != 1 {
		t.Fatalf("expected one user provisioned, got %d", len(store.created))
	}
	created := store.created[0]
	if created.Email != "john.doe@abc.com" {
		t.Fatalf("email must be lowercased, got %q", created.Email)
	}
	if created.Role != roles.Teacher {
		t.Fatalf("linked user must have teacher role, got %q", created.Role)
	}
	if resp.User.Email != "john.doe@abc.com" || !resp.User.Active {
		t.Fatalf("unexpected linked user: %+v", resp.User)
	}
}

func TestCreateAppliesDefaults(t *testing.T) {
	store := newFakeStore()

	resp, err := newService(store).Create(context.Background(), uuid.New(), transport.CreateTeacherRequest{
		Name:  "John Doe",
		Email: "john@abc.com",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if resp.Designation != "Teacher" {
		t.Fatalf("expected default designation, got %q", resp.Designation)
	}
	if err := password.Compare(store.created[0].PasswordHash, "Teacher@123"); err != nil {
		t.Fatalf("default password does not verify: %v", err)
	}
}

func TestCreateHashesExplicitPassword(t *testing.T) {
	store := newFakeStore()
	plain := "S3cret@pass"

	_, err := newService(store).Create(context.Background(), uuid.New(), transport.CreateTeacherRequest{
		Name:     "John Doe",
		Email:    "john@abc.com",
		Password: &plain,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	stored := store.created[0].PasswordHash
	if stored == plain {
		t.Fatal("password stored in plaintext")
	}
	if err := password.Compare(stored, plain); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}
}

func TestCreateDuplicateEmailConflicts(t *testing.T) {
	store := newFakeStore()
	svc := newService(store)
	schoolID := uuid.New()

	if _, err := svc.Create(context.Background(), schoolID, transport.CreateTeacherRequest{Name: "A", Email: "john@abc.com"}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := svc.Create(context.Background(), schoolID, transport.CreateTeacherRequest{Name: "B", Email: "john@abc.com"})
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("expected conflict for duplicate email, got %v", err)
	}
}

func TestGetScopedToSchool(t *testing.T) {
	store := newFakeStore()
	teacher := repository.Teacher{ID: uuid.New(), Name: "John", SchoolID: uuid.New()}
	store.teachers[teacher.ID] = teacher

	_, err := newService(store).Get(context.Background(), teacher.ID, uuid.New())
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found for foreign school, got %v", err)
	}
}

func TestDeleteRemovesTeacher(t *testing.T) {
	store := newFakeStore()
	schoolID := uuid.New()
	teacher := repository.Teacher{ID: uuid.New(), Name: "John", SchoolID: schoolID}
	store.teachers[teacher.ID] = teacher

	if err := newService(store).Delete(context.Background(), teacher.ID, schoolID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(store.deleted) != 1 {
		t.Fatal("expected teacher to be deleted")
	}
}
