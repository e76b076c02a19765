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

type School struct {
	ID        uuid.UUID
	Name      string
	Slug      string
	Email     *string
	Phone     *string
	Address   *string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time

	UserCount      int
	TeacherCount   int
	StudentCount   int
	ClassroomCount int
}

const schoolColumns = `
	s.id, s.name, s.slug, s.email, s.phone, s.address, s.is_active, s.created_at, s.updated_at,
	(SELECT COUNT(*) FROM users u WHERE u.school_id = s.id),
	(SELECT COUNT(*) FROM teachers t WHERE t.school_id = s.id),
	(SELECT COUNT(*) FROM students st WHERE st.school_id = s.id),
	(SELECT COUNT(*) FROM classrooms c WHERE c.school_id = s.id)`

func scanSchool(row pgx.Row) (School, error) {
	var s School
	err := row.Scan(
		&s.ID, &s.Name, &s.Slug, &s.Email, &s.Phone, &s.Address, &s.Active,
		&s.CreatedAt, &s.UpdatedAt,
		&s.UserCount, &s.TeacherCount, &s.StudentCount, &s.ClassroomCount,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return School{}, ErrNotFound
	}
	return s, err
}

type CreateSchoolParams struct {
	Name    string
	Slug    string
	Email   *string
	Phone   *string
	Address *string
	Active  bool
}

func (r *Repository) Create(ctx context.Context, p CreateSchoolParams) (School, error) {
	var s School
	err := r.pool.QueryRow(ctx, `
		INSERT INTO schools (name, slug, email, phone, address, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, name, slug, email, phone, address, is_active, created_at, updated_at
	`, p.Name, p.Slug, p.Email, p.Phone, p.Address, p.Active).Scan(
		&s.ID, &s.Name, &s.Slug, &s.Email, &s.Phone, &s.Address, &s.Active,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return School{}, apperr.Conflict(fmt.Sprintf("school with slug %q already exists", p.Slug))
		}
		return School{}, err
	}
	return s, nil
}

type ListSchoolsParams struct {
	Search string
	Offset int
	Limit  int
}

func (r *Repository) List(ctx context.Context, p ListSchoolsParams) ([]School, int, error) {
	where := ""
	args := []interface{}{}
	if p.Search != "" {
		where = `WHERE s.name ILIKE $1 OR s.slug ILIKE $1 OR s.email ILIKE $1`
		args = append(args, "%"+p.Search+"%")
	}

	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM schools s `+where, args...,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT %s FROM schools s %s
		ORDER BY s.created_at DESC
		LIMIT $%d OFFSET $%d
	`, schoolColumns, where, len(args)+1, len(args)+2)
	args = append(args, p.Limit, p.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var schools []School
	for rows.Next() {
		s, err := scanSchool(rows)
		if err != nil {
			return nil, 0, err
		}
		schools = append(schools, s)
	}
	return schools, total, rows.Err()
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (School, error) {
	return scanSchool(r.pool.QueryRow(ctx, `
		SELECT `+schoolColumns+` FROM schools s WHERE s.id = $1
	`, id))
}

type UpdateSchoolParams struct {
	ID      uuid.UUID
	Name    *string
	Email   *string
	Phone   *string
	Address *string
	Active  *bool
}

func (r *Repository) Update(ctx context.Context, p UpdateSchoolParams) (School, error) {
	var s School
	err := r.pool.QueryRow(ctx, `
		UPDATE schools SET
			name = COALESCE($2, name),
			email = COALESCE($3, email),
			phone = COALESCE($4, phone),
			address = COALESCE($5, address),
			is_active = COALESCE($6, is_active),
			updated_at = now()
		WHERE id = $1
		RETURNING id, name, slug, email, phone, address, is_active, created_at, updated_at
	`, p.ID, p.Name, p.Email, p.Phone, p.Address, p.Active).Scan(
		&s.ID, &s.Name, &s.Slug, &s.Email, &s.Phone, &s.Address, &s.Active,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return School{}, ErrNotFound
	}
	return s, err
}

func (r *Repository) ToggleActive(ctx context.Context, id uuid.UUID) (School, error) {
	var s School
	err := r.pool.QueryRow(ctx, `
		UPDATE schools SET is_active = NOT is_active, updated_at = now()
		WHERE id = $1
		RETURNING id, name, slug, email, phone, address, is_active, created_at, updated_at
	`, id).Scan(
		&s.ID, &s.Name, &s.Slug, &s.Email, &s.Phone, &s.Address, &s.Active,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return School{}, ErrNotFound
	}
	return s, err
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM schools WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Stats returns tenant-level aggregate counts for a school.
type Stats struct {
	Users           int
	Teachers        int
	Students        int
	Classrooms      int
	AttendanceToday int
}

func (r *Repository) GetStats(ctx context.Context, id uuid.UUID) (Stats, error) {
	var st Stats
	err := r.pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM users WHERE school_id = $1),
			(SELECT COUNT(*) FROM teachers WHERE school_id = $1),
			(SELECT COUNT(*) FROM students WHERE school_id = $1),
			(SELECT COUNT(*) FROM classrooms WHERE school_id = $1),
			(SELECT COUNT(*) FROM attendance WHERE school_id = $1 AND date = CURRENT_DATE)
	`, id).Scan(&st.Users, &st.Teachers, &st.Students, &st.Classrooms, &st.AttendanceToday)
	return st, err
}
