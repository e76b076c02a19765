package repository

import (
	"context"
	"errors"
	"fmt"
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

// Teacher is a teacher row joined with its linked user account.
type Teacher struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Name        string
	Designation string
	Phone       *string
	SchoolID    uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time

	UserEmail  string
	UserName   string
	UserRole   string
	UserActive bool
}

const teacherColumns = `
	t.id, t.user_id, t.name, t.designation, t.phone, t.school_id, t.created_at, t.updated_at,
	u.email, u.name, u.role, u.is_active`

func scanTeacher(row pgx.Row) (Teacher, error) {
	var t Teacher
	err := row.Scan(
		&t.ID, &t.UserID, &t.Name, &t.Designation, &t.Phone, &t.SchoolID,
		&t.CreatedAt, &t.UpdatedAt,
		&t.UserEmail, &t.UserName, &t.UserRole, &t.UserActive,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Teacher{}, ErrNotFound
	}
	return t, err
}

type CreateTeacherParams struct {
	Name         string
	Email        string
	PasswordHash string
	Role         string
	Designation  string
	Phone        *string
	SchoolID     uuid.UUID
}

// Create inserts the user account and the teacher row in one transaction so a
// teacher never exists without a login and vice versa.
func (r *Repository) Create(ctx context.Context, p CreateTeacherParams) (Teacher, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return Teacher{}, err
	}
	defer tx.Rollback(ctx)

	var userID uuid.UUID
	err = tx.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, name, role, school_id, is_active)
		VALUES ($1, $2, $3, $4, $5, TRUE)
		RETURNING id
	`, p.Email, p.PasswordHash, p.Name, p.Role, p.SchoolID).Scan(&userID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Teacher{}, apperr.Conflict("user with this email already exists")
		}
		return Teacher{}, err
	}

	var teacherID uuid.UUID
	err = tx.QueryRow(ctx, `
		INSERT INTO teachers (user_id, name, designation, phone, school_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, userID, p.Name, p.Designation, p.Phone, p.SchoolID).Scan(&teacherID)
	if err != nil {
		return Teacher{}, err
	}

	teacher, err := scanTeacher(tx.QueryRow(ctx, `
		SELECT `+teacherColumns+`
		FROM teachers t JOIN users u ON u.id = t.user_id
		WHERE t.id = $1
	`, teacherID))
	if err != nil {
		return Teacher{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Teacher{}, err
	}
	return teacher, nil
}

type ListTeachersParams struct {
	SchoolID uuid.UUID
	Search   string
	Offset   int
	Limit    int
}

func (r *Repository) List(ctx context.Context, p ListTeachersParams) ([]Teacher, int, error) {
	where := `WHERE t.school_id = $1`
	args := []interface{}{p.SchoolID}
	if p.Search != "" {
		where += ` AND (t.name ILIKE $2 OR t.designation ILIKE $2 OR t.phone ILIKE $2 OR u.email ILIKE $2)`
		args = append(args, "%"+p.Search+"%")
	}

	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM teachers t JOIN users u ON u.id = t.user_id `+where, args...,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM teachers t JOIN users u ON u.id = t.user_id
		%s
		ORDER BY t.created_at DESC
		LIMIT $%d OFFSET $%d
	`, teacherColumns, where, len(args)+1, len(args)+2)
	args = append(args, p.Limit, p.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var teachers []Teacher
	for rows.Next() {
		t, err := scanTeacher(rows)
		if err != nil {
			return nil, 0, err
		}
		teachers = append(teachers, t)
	}
	return teachers, total, rows.Err()
}

func (r *Repository) GetByID(ctx context.Context, id, schoolID uuid.UUID) (Teacher, error) {
	return scanTeacher(r.pool.QueryRow(ctx, `
		SELECT `+teacherColumns+`
		FROM teachers t JOIN users u ON u.id = t.user_id
		WHERE t.id = $1 AND t.school_id = $2
	`, id, schoolID))
}

type UpdateTeacherParams struct {
	ID          uuid.UUID
	SchoolID    uuid.UUID
	Name        *string
	Designation *string
	Phone       *string
}

func (r *Repository) Update(ctx context.Context, p UpdateTeacherParams) (Teacher, error) {
	var id uuid.UUID
	err := r.pool.QueryRow(ctx, `
		UPDATE teachers SET
			name = COALESCE($3, name),
			designation = COALESCE($4, designation),
			phone = COALESCE($5, phone),
			updated_at = now()
		WHERE id = $1 AND school_id = $2
		RETURNING id
	`, p.ID, p.SchoolID, p.Name, p.Designation, p.Phone).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return Teacher{}, ErrNotFound
	}
	if err != nil {
		return Teacher{}, err
	}
	return r.GetByID(ctx, p.ID, p.SchoolID)
}

// Delete removes the teacher row and its linked user in one transaction.
func (r *Repository) Delete(ctx context.Context, id, schoolID uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var userID uuid.UUID
	err = tx.QueryRow(ctx, `
		DELETE FROM teachers WHERE id = $1 AND school_id = $2
		RETURNING user_id
	`, id, schoolID).Scan(&userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
