package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) CountSchools(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM schools`)
}

func (r *Repository) CountActiveSchools(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM schools WHERE is_active`)
}

func (r *Repository) CountUsers(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM users`)
}

func (r *Repository) CountTeachers(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM teachers`)
}

func (r *Repository) CountStudents(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM students`)
}

func (r *Repository) CountSchoolTeachers(ctx context.Context, schoolID uuid.UUID) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM teachers WHERE school_id = $1`, schoolID)
}

func (r *Repository) CountSchoolStudents(ctx context.Context, schoolID uuid.UUID) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM students WHERE school_id = $1`, schoolID)
}

func (r *Repository) CountSchoolClassrooms(ctx context.Context, schoolID uuid.UUID) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM classrooms WHERE school_id = $1`, schoolID)
}

func (r *Repository) CountAttendanceToday(ctx context.Context, schoolID uuid.UUID) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM attendance WHERE school_id = $1 AND date = CURRENT_DATE`, schoolID)
}

func (r *Repository) count(ctx context.Context, query string, args ...interface{}) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, query, args...).Scan(&n)
	return n, err
}
