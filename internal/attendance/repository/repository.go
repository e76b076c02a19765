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

// Record is an attendance row joined with student, classroom and marker.
type Record struct {
	ID        uuid.UUID
	Date      time.Time
	Status    string
	Remarks   *string
	SchoolID  uuid.UUID
	StudentID uuid.UUID
	MarkedBy  uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time

	StudentName       string
	StudentRollNumber string
	ClassroomID       uuid.UUID
	ClassroomName     string
	ClassroomSection  string
	MarkerName        string
	MarkerEmail       string
}

const recordColumns = `
	a.id, a.date, a.status, a.remarks, a.school_id, a.student_id, a.marked_by,
	a.created_at, a.updated_at,
	st.name, st.roll_number,
	c.id, c.name, c.section,
	u.name, u.email`

const recordJoins = `
	FROM attendance a
	JOIN students st ON st.id = a.student_id
	JOIN classrooms c ON c.id = st.classroom_id
	JOIN users u ON u.id = a.marked_by`

func scanRecord(row pgx.Row) (Record, error) {
	var rec Record
	err := row.Scan(
		&rec.ID, &rec.Date, &rec.Status, &rec.Remarks, &rec.SchoolID, &rec.StudentID,
		&rec.MarkedBy, &rec.CreatedAt, &rec.UpdatedAt,
		&rec.StudentName, &rec.StudentRollNumber,
		&rec.ClassroomID, &rec.ClassroomName, &rec.ClassroomSection,
		&rec.MarkerName, &rec.MarkerEmail,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	return rec, err
}

// StudentExists reports whether the student belongs to the school.
func (r *Repository) StudentExists(ctx context.Context, studentID, schoolID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM students WHERE id = $1 AND school_id = $2)
	`, studentID, schoolID).Scan(&exists)
	return exists, err
}

type CreateParams struct {
	StudentID uuid.UUID
	Date      time.Time
	Status    string
	Remarks   *string
	MarkedBy  uuid.UUID
	SchoolID  uuid.UUID
}

func (r *Repository) Create(ctx context.Context, p CreateParams) (Record, error) {
	var id uuid.UUID
	err := r.pool.QueryRow(ctx, `
		INSERT INTO attendance (student_id, date, status, remarks, marked_by, school_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, p.StudentID, p.Date, p.Status, p.Remarks, p.MarkedBy, p.SchoolID).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return Record{}, apperr.Conflict("attendance already marked for this student on this date")
			case "23503":
				return Record{}, apperr.Validation("invalid student or student does not belong to this school")
			}
		}
		return Record{}, err
	}
	return r.GetByID(ctx, id, p.SchoolID)
}

type ListParams struct {
	SchoolID    uuid.UUID
	Date        *time.Time
	StudentID   *uuid.UUID
	ClassroomID *uuid.UUID
	Offset      int
	Limit       int
}

func (r *Repository) List(ctx context.Context, p ListParams) ([]Record, int, error) {
	where := `WHERE a.school_id = $1`
	args := []interface{}{p.SchoolID}
	if p.Date != nil {
		args = append(args, *p.Date)
		where += fmt.Sprintf(` AND a.date = $%d`, len(args))
	}
	if p.StudentID != nil {
		args = append(args, *p.StudentID)
		where += fmt.Sprintf(` AND a.student_id = $%d`, len(args))
	}
	if p.ClassroomID != nil {
		args = append(args, *p.ClassroomID)
		where += fmt.Sprintf(` AND st.classroom_id = $%d`, len(args))
	}

	var total int
	if err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM attendance a
		JOIN students st ON st.id = a.student_id
		`+where, args...,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT %s %s %s
		ORDER BY a.date DESC, st.roll_number ASC
		LIMIT $%d OFFSET $%d
	`, recordColumns, recordJoins, where, len(args)+1, len(args)+2)
	args = append(args, p.Limit, p.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, 0, err
		}
		records = append(records, rec)
	}
	return records, total, rows.Err()
}

func (r *Repository) GetByID(ctx context.Context, id, schoolID uuid.UUID) (Record, error) {
	return scanRecord(r.pool.QueryRow(ctx, `
		SELECT `+recordColumns+recordJoins+`
		WHERE a.id = $1 AND a.school_id = $2
	`, id, schoolID))
}

type UpdateParams struct {
	ID       uuid.UUID
	SchoolID uuid.UUID
	Status   *string
	Remarks  *string
}

func (r *Repository) Update(ctx context.Context, p UpdateParams) (Record, error) {
	var id uuid.UUID
	err := r.pool.QueryRow(ctx, `
		UPDATE attendance SET
			status = COALESCE($3, status),
			remarks = COALESCE($4, remarks),
			updated_at = now()
		WHERE id = $1 AND school_id = $2
		RETURNING id
	`, p.ID, p.SchoolID, p.Status, p.Remarks).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, err
	}
	return r.GetByID(ctx, p.ID, p.SchoolID)
}

func (r *Repository) Delete(ctx context.Context, id, schoolID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM attendance WHERE id = $1 AND school_id = $2`, id, schoolID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Stats holds per-school attendance counts, optionally for one date.
type Stats struct {
	Total         int
	Present       int
	Absent        int
	Late          int
	TotalStudents int
}

func (r *Repository) GetStats(ctx context.Context, schoolID uuid.UUID, date *time.Time) (Stats, error) {
	where := `WHERE school_id = $1`
	args := []interface{}{schoolID}
	if date != nil {
		args = append(args, *date)
		where += fmt.Sprintf(` AND date = $%d`, len(args))
	}

	var st Stats
	err := r.pool.QueryRow(ctx, `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'PRESENT'),
			COUNT(*) FILTER (WHERE status = 'ABSENT'),
			COUNT(*) FILTER (WHERE status = 'LATE')
		FROM attendance `+where, args...,
	).Scan(&st.Total, &st.Present, &st.Absent, &st.Late)
	if err != nil {
		return Stats{}, err
	}

	err = r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM students WHERE school_id = $1`, schoolID,
	).Scan(&st.TotalStudents)
	return st, err
}
