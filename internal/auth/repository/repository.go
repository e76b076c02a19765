package repository

import (
	"context"
	"errors"
	"time"

	"taleschool_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("not found")

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Name         string
	Role         string
	SchoolID     *uuid.UUID
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SchoolInfo is the slice of the school row the auth flows need.
type SchoolInfo struct {
	ID     uuid.UUID
	Name   string
	Slug   string
	Active bool
}

// UserWithSchool joins a user with its school, when it has one.
type UserWithSchool struct {
	User
	School *SchoolInfo
}

func (r *Repository) GetUserByEmail(ctx context.Context, email string) (UserWithSchool, error) {
	var (
		user         UserWithSchool
		schoolID     *uuid.UUID
		schoolName   *string
		schoolSlug   *string
		schoolActive *bool
	)
	err := r.pool.QueryRow(ctx, `
		SELECT u.id, u.email, u.password_hash, u.name, u.role, u.school_id, u.is_active,
		       u.created_at, u.updated_at,
		       s.id, s.name, s.slug, s.is_active
		FROM users u
		LEFT JOIN schools s ON s.id = u.school_id
		WHERE u.email = $1
	`, email).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.Name, &user.Role,
		&user.SchoolID, &user.Active, &user.CreatedAt, &user.UpdatedAt,
		&schoolID, &schoolName, &schoolSlug, &schoolActive,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return UserWithSchool{}, ErrNotFound
	}
	if err != nil {
		return UserWithSchool{}, err
	}

	if schoolID != nil {
		user.School = &SchoolInfo{ID: *schoolID, Name: *schoolName, Slug: *schoolSlug, Active: *schoolActive}
	}
	return user, nil
}

func (r *Repository) GetUserByID(ctx context.Context, userID uuid.UUID) (User, error) {
	var user User
	err := r.pool.QueryRow(ctx, `
		SELECT id, email, password_hash, name, role, school_id, is_active, created_at, updated_at
		FROM users WHERE id = $1
	`, userID).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.Name, &user.Role,
		&user.SchoolID, &user.Active, &user.CreatedAt, &user.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrNotFound
	}
	return user, err
}

func (r *Repository) GetUserWithSchoolByID(ctx context.Context, userID uuid.UUID) (UserWithSchool, error) {
	user, err := r.GetUserByID(ctx, userID)
	if err != nil {
		return UserWithSchool{}, err
	}

	out := UserWithSchool{User: user}
	if user.SchoolID != nil {
		school, err := r.GetSchoolByID(ctx, *user.SchoolID)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return UserWithSchool{}, err
		}
		if err == nil {
			out.School = &school
		}
	}
	return out, nil
}

func (r *Repository) GetSchoolByID(ctx context.Context, schoolID uuid.UUID) (SchoolInfo, error) {
	var school SchoolInfo
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, slug, is_active
		FROM schools WHERE id = $1
	`, schoolID).Scan(&school.ID, &school.Name, &school.Slug, &school.Active)
	if errors.Is(err, pgx.ErrNoRows) {
		return SchoolInfo{}, ErrNotFound
	}
	return school, err
}

type CreateUserParams struct {
	Email        string
	PasswordHash string
	Name         string
	Role         string
	SchoolID     *uuid.UUID
}

func (r *Repository) CreateUser(ctx context.Context, p CreateUserParams) (User, error) {
	var user User
	err := r.pool.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, name, role, school_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, email, password_hash, name, role, school_id, is_active, created_at, updated_at
	`, p.Email, p.PasswordHash, p.Name, p.Role, p.SchoolID).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.Name, &user.Role,
		&user.SchoolID, &user.Active, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return User{}, apperr.Conflict("user with this email already exists")
		}
		return User{}, err
	}
	return user, nil
}
