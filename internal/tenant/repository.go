package tenant

import (
	"context"
	"errors"

	"taleschool_backend/platform/apperr"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository is the pgx-backed school finder used by the resolver.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a school finder over the shared pool.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// FindBySlug looks up a school by its exact slug.
func (r *Repository) FindBySlug(ctx context.Context, slug string) (School, error) {
	var school School
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, slug, is_active
		FROM schools WHERE slug = $1
	`, slug).Scan(&school.ID, &school.Name, &school.Slug, &school.Active)
	if errors.Is(err, pgx.ErrNoRows) {
		return School{}, ErrSchoolNotFound
	}
	if err != nil {
		return School{}, apperr.Wrap(apperr.KindInternal, "school lookup failed", err)
	}
	return school, nil
}

var _ SchoolFinder = (*Repository)(nil)
