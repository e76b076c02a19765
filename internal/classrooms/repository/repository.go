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

type Classroom struct {
	ID           uuid.UUID
	Name         string
	Section      string
	SchoolID     uuid.UUID
	StudentCount int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Student is the roster view of a classroom member.
type Student struct {
	ID         uuid.UUID
	Name       string
	RollNumber string
	Email      *string
}

const classroomColumns = `
	c.id, c.name, c.section, c.school_id, c.created_at, c.updated_at,
	(SELECT COUNT(*) FROM students st WHERE st.classroom_id = c.id)`

func scanClassroom(row pgx.Row) (Classroom, error) {
	var c Classroom
	err := row.Scan(&c.ID, &c.Name, &c.Section, &c.SchoolID, &c.CreatedAt, &c.UpdatedAt, &c.StudentCount)
	if errors.Is(err, pgx.ErrNoRows) {
		return Classroom{}, ErrNotFound
	}
	return c, err
}

type CreateClassroomParams struct {
	Name     string
	Section  string
	SchoolID uuid.UUID
}

func (r *Repository) Create(ctx context.Context, p CreateClassroomParams) (Classroom, error) {
	var c Classroom
	err := r.pool.QueryRow(ctx, `
		INSERT INTO classrooms (name, section, school_id)
		VALUES ($1, $2, $3)
		RETURNING id, name, section, school_id, created_at, updated_at
	`, p.Name, p.Section, p.SchoolID).Scan(
		&c.ID, &c.Name, &c.Section, &c.SchoolID, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Classroom{}, apperr.Conflict(fmt.Sprintf("classroom %s %s already exists", p.Name, p.Section))
		}
		return Classroom{}, err
	}
	return c, nil
}

type ListClassroomsParams struct {
	SchoolID uuid.UUID
	Search   string
	Offset   int
	Limit    int
}

func (r *Repository) List(ctx context.Context, p ListClassroomsParams) ([]Classroom, int, error) {
	where := `WHERE c.school_id = $1`
	args := []interface{}{p.SchoolID}
	if p.Search != "" {
		args = append(args, "%"+p.Search+"%")
		where += fmt.Sprintf(` AND (c.name ILIKE $%d OR c.section ILIKE $%d)`, len(args), len(args))
	}

	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM classrooms c `+where, args...,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT %s FROM classrooms c %s
		ORDER BY c.name ASC, c.section ASC
		LIMIT $%d OFFSET $%d
	`, classroomColumns, where, len(args)+1, len(args)+2)
	args = append(args, p.Limit, p.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var classrooms []Classroom
	for rows.Next() {
		c, err := scanClassroom(rows)
		if err != nil {
			return nil, 0, err
		}
		classrooms = append(classrooms, c)
	}
	return classrooms, total, rows.Err()
}

func (r *Repository) GetByID(ctx context.Context, id, schoolID uuid.UUID) (Classroom, error) {
	return scanClassroom(r.pool.QueryRow(ctx, `
		SELECT `+classroomColumns+` FROM classrooms c
		WHERE c.id = $1 AND c.school_id = $2
	`, id, schoolID))
}

// Students returns the classroom roster ordered by roll number.
func (r *Repository) Students(ctx context.Context, classroomID uuid.UUID) ([]Student, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, roll_number, email
		FROM students
		WHERE classroom_id = $1
		ORDER BY roll_number ASC
	`, classroomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []Student
	for rows.Next() {
		var s Student
		if err := rows.Scan(&s.ID, &s.Name, &s.RollNumber, &s.Email); err != nil {
			return nil, err
		}
		students = append(students, s)
	}
	return students, rows.Err()
}

type UpdateClassroomParams struct {
	ID       uuid.UUID
	SchoolID uuid.UUID
	Name     *string
	Section  *string
}

func (r *Repository) Update(ctx context.Context, p UpdateClassroomParams) (Classroom, error) {
	var id uuid.UUID
	err := r.pool.QueryRow(ctx, `
		UPDATE classrooms SET
			name = COALESCE($3, name),
			section = COALESCE($4, section),
			updated_at = now()
		WHERE id = $1 AND school_id = $2
		RETURNING id
	`, p.ID, p.SchoolID, p.Name, p.Section).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return Classroom{}, ErrNotFound
	}
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Classroom{}, apperr.Conflict("classroom with this name and section already exists")
		}
		return Classroom{}, err
	}
	return r.GetByID(ctx, p.ID, p.SchoolID)
}

func (r *Repository) Delete(ctx context.Context, id, schoolID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM classrooms WHERE id = $1 AND school_id = $2`, id, schoolID)
	if err != nil {
		// A student enrolled after the service counted the roster still
		// references the row; the FK rejection gets the same message.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return apperr.Validation("cannot delete classroom with students; please reassign or delete students first")
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
