package service

import (
	"context"
	"testing"
	"time"

	"taleschool_backend/internal/auth/password"
	"taleschool_backend/internal/auth/repository"
	"taleschool_backend/internal/auth/roles"
	"taleschool_backend/internal/auth/transport"
	"taleschool_backend/platform/apperr"
	"taleschool_backend/platform/logger"

	"github.com/google/uuid"
)

type fakeAuthConfig struct{}

func (fakeAuthConfig) GetJWTSecret() string             { return "test-secret" }
func (fakeAuthConfig) GetAccessTokenTTL() time.Duration { return time.Hour }

type fakeStore struct {
	usersByEmail map[string]repository.UserWithSchool
	usersByID    map[uuid.UUID]repository.UserWithSchool
	schools      map[uuid.UUID]repository.SchoolInfo
	created      []repository.CreateUserParams
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		usersByEmail: map[string]repository.UserWithSchool{},
		usersByID:    map[uuid.UUID]repository.UserWithSchool{},
		schools:      map[uuid.UUID]repository.SchoolInfo{},
	}
}

func (f *fakeStore) GetUserByEmail(ctx context.Context, email string) (repository.UserWithSchool, error) {
	user, ok := f.usersByEmail[email]
	if !ok {
		return repository.UserWithSchool{}, repository.ErrNotFound
	}
	return user, nil
}

func (f *fakeStore) GetUserByID(ctx context.Context, userID uuid.UUID) (repository.User, error) {
	user, ok := f.usersByID[userID]
	if !ok {
		return repository.User{}, repository.ErrNotFound
	}
	return user.User, nil
}

func (f *fakeStore) GetUserWithSchoolByID(ctx context.Context, userID uuid.UUID) (repository.UserWithSchool, error) {
	user, ok := f.usersByID[userID]
	if !ok {
		return repository.UserWithSchool{}, repository.ErrNotFound
	}
	return user, nil
}

func (f *fakeStore) GetSchoolByID(ctx context.Context, schoolID uuid.UUID) (repository.SchoolInfo, error) {
	school, ok := f.schools[schoolID]
	if !ok {
		return repository.SchoolInfo{}, repository.ErrNotFound
	}
	return school, nil
}

func (f *fakeStore) CreateUser(ctx context.Context, p repository.CreateUserParams) (repository.User, error) {
	if _, exists := f.usersByEmail[p.Email]; exists {
		return repository.User{}, apperr.Conflict("user with this email already exists")
	}
	f.created = append(f.created, p)
	user := repository.User{
		ID:           uuid.New(),
		Email:        p.Email,
		PasswordHash: p.PasswordHash,
		Name:         p.Name,
		Role:         p.Role,
		SchoolID:     p.SchoolID,
		Active:       true,
	}
	f.usersByEmail[p.Email] = repository.UserWithSchool{User: user}
	return user, nil
}

func mustHash(t *testing.T, plain string) string {
	t.Helper()
	hash, err := password.Hash(plain)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	return hash
}

func seedUser(t *testing.T, store *fakeStore, email, plain string, active bool, school *repository.SchoolInfo) repository.User {
	t.Helper()
	user := repository.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: mustHash(t, plain),
		Name:         "Test User",
		Role:         roles.SchoolAdmin,
		Active:       active,
	}
	if school != nil {
		user.SchoolID = &school.ID
	}
	withSchool := repository.UserWithSchool{User: user, School: school}
	store.usersByEmail[email] = withSchool
	store.usersByID[user.ID] = withSchool
	return user
}

func newService(store *fakeStore) *Service {
	return New(store, fakeAuthConfig{}, logger.New("test"))
}

func TestLoginSucceedsWithValidCredentials(t *testing.T) {
	store := newFakeStore()
	school := repository.SchoolInfo{ID: uuid.New(), Name: "ABC School", Slug: "abc", Active: true}
	seedUser(t, store, "admin@abc.com", "Admin@123", true, &school)

	resp, err := newService(store).Login(context.Background(), "Admin@ABC.com", "Admin@123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.AccessToken == "" {
		t.Fatal("expected access token")
	}
	if resp.User.School == nil || resp.User.School.Slug != "abc" {
		t.Fatalf("expected school summary, got %+v", resp.User.School)
	}
}

func TestLoginUnknownEmailIsUnauthorized(t *testing.T) {
	_, err := newService(newFakeStore()).Login(context.Background(), "ghost@abc.com", "whatever")
	if !apperr.Is(err, apperr.KindUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestLoginWrongPasswordIsUnauthorized(t *testing.T) {
	store := newFakeStore()
	seedUser(t, store, "admin@abc.com", "Admin@123", true, nil)

	_, err := newService(store).Login(context.Background(), "admin@abc.com", "wrong")
	if !apperr.Is(err, apperr.KindUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestLoginInactiveUserIsRejected(t *testing.T) {
	store := newFakeStore()
	seedUser(t, store, "admin@abc.com", "Admin@123", false, nil)

	_, err := newService(store).Login(context.Background(), "admin@abc.com", "Admin@123")
	if !apperr.Is(err, apperr.KindUnauthorized) {
		t.Fatalf("expected unauthorized for inactive user, got %v", err)
	}
}

func TestLoginInactiveSchoolIsRejected(t *testing.T) {
	store := newFakeStore()
	school := repository.SchoolInfo{ID: uuid.New(), Name: "ABC School", Slug: "abc", Active: false}
	seedUser(t, store, "admin@abc.com", "Admin@123", true, &school)

	_, err := newService(store).Login(context.Background(), "admin@abc.com", "Admin@123")
	if !apperr.Is(err, apperr.KindUnauthorized) {
		t.Fatalf("expected unauthorized for inactive school, got %v", err)
	}
}

func TestRegisterNonSuperAdminRequiresSchool(t *testing.T) {
	req := transport.RegisterRequest{
		Email:    "admin@abc.com",
		Password: "Admin@123",
		Name:     "Admin",
		Role:     roles.SchoolAdmin,
	}
	_, err := newService(newFakeStore()).Register(context.Background(), req)
	if !apperr.Is(err, apperr.KindBadRequest) {
		t.Fatalf("expected bad request without schoolId, got %v", err)
	}
}

func TestRegisterRejectsUnknownSchool(t *testing.T) {
	schoolID := uuid.New()
	req := transport.RegisterRequest{
		Email:    "admin@abc.com",
		Password: "Admin@123",
		Name:     "Admin",
		Role:     roles.SchoolAdmin,
		SchoolID: &schoolID,
	}
	_, err := newService(newFakeStore()).Register(context.Background(), req)
	if !apperr.Is(err, apperr.KindBadRequest) {
		t.Fatalf("expected bad request for unknown school, got %v", err)
	}
}

func TestRegisterRejectsInactiveSchool(t *testing.T) {
	store := newFakeStore()
	school := repository.SchoolInfo{ID: uuid.New(), Name: "ABC School", Slug: "abc", Active: false}
	store.schools[school.ID] = school

	req := transport.RegisterRequest{
		Email:    "admin@abc.com",
		Password: "Admin@123",
		Name:     "Admin",
		Role:     roles.SchoolAdmin,
		SchoolID: &school.ID,
	}
	_, err := newService(store).Register(context.Background(), req)
	if !apperr.Is(err, apperr.KindBadRequest) {
		t.Fatalf("expected bad request for inactive school, got %v", err)
	}
}

func TestRegisterSuperAdminWithoutSchool(t *testing.T) {
	store := newFakeStore()
	req := transport.RegisterRequest{
		Email:    "root@platform.com",
		Password: "Admin@123",
		Name:     "Root",
		Role:     roles.SuperAdmin,
	}
	resp, err := newService(store).Register(context.Background(), req)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if resp.AccessToken == "" {
		t.Fatal("expected access token")
	}
	if len(store.created) != 1 || store.created[0].SchoolID != nil {
		t.Fatalf("expected one user created without school, got %+v", store.created)
	}
}

func TestRegisterStoresHashedPassword(t *testing.T) {
	store := newFakeStore()
	school := repository.SchoolInfo{ID: uuid.New(), Name: "ABC School", Slug: "abc", Active: true}
	store.schools[school.ID] = school

	req := transport.RegisterRequest{
		Email:    "admin@abc.com",
		Password: "Admin@123",
		Name:     "Admin",
		Role:     roles.SchoolAdmin,
		SchoolID: &school.ID,
	}
	if _, err := newService(store).Register(context.Background(), req); err != nil {
		t.Fatalf("register: %v", err)
	}

	stored := store.created[0].PasswordHash
	if stored == "Admin@123" {
		t.Fatal("password stored in plaintext")
	}
	if err := password.Compare(stored, "Admin@123"); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}
}
