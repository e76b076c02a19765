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

// Student is a student row joined with its classroom.
type Student struct {
	ID          uuid.UUID
	Name        string
	RollNumber  string
	Email       *string
	Phone       *string
	DateOfBirth *time.Time
	Address     *string
	SchoolID    uuid.UUID
	ClassroomID uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time

	ClassroomName    string
	ClassroomSection string
}

// AttendanceRecord is one attendance row for the recent-attendance view.
type AttendanceRecord struct {
	ID      uuid.UUID
	Date    time.Time
	Status  string
	Remarks *string
}

const studentColumns = `
	st.id, st.name, st.roll_number, st.email, st.phone, st.date_of_birth, st.address,
	st.school_id, st.classroom_id, st.created_at, st.updated_at,
	c.name, c.section`

func scanStudent(row pgx.Row) (Student, error) {
	var s Student
	err := row.Scan(
		&s.ID, &s.Name, &s.RollNumber, &s.Email, &s.Phone, &s.DateOfBirth, &s.Address,
		&s.SchoolID, &s.ClassroomID, &s.CreatedAt, &s.UpdatedAt,
		&s.ClassroomName, &s.ClassroomSection,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Student{}, ErrNotFound
	}
	return s, err
}

// ClassroomExists reports whether the classroom belongs to the school.
func (r *Repository) ClassroomExists(ctx context.Context, classroomID, schoolID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM classrooms WHERE id = $1 AND school_id = $2)
	`, classroomID, schoolID).Scan(&exists)
	return exists, err
}

type CreateStudentParams struct {
	Name        string
	RollNumber  string
	ClassroomID uuid.UUID
	Email       *string
	Phone       *string
	DateOfBirth *time.Time
	Address     *string
	SchoolID    uuid.UUID
}

func (r *Repository) Create(ctx context.Context, p CreateStudentParams) (Student, error) {
	var id uuid.UUID
	err := r.pool.QueryRow(ctx, `
		INSERT INTO students (name, roll_number, classroom_id, email, phone, date_of_birth, address, school_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`, p.Name, p.RollNumber, p.ClassroomID, p.Email, p.Phone, p.DateOfBirth, p.Address, p.SchoolID).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return Student{}, apperr.Conflict(fmt.Sprintf("student with roll number %q already exists", p.RollNumber))
			case "23503":
				return Student{}, apperr.Validation("invalid classroom or classroom does not belong to this school")
			}
		}
		return Student{}, err
	}
	return r.GetByID(ctx, id, p.SchoolID)
}

type ListStudentsParams struct {
	SchoolID    uuid.UUID
	ClassroomID *uuid.UUID
	Search      string
	Offset      int
	Limit       int
}

func (r *Repository) List(ctx context.Context, p ListStudentsParams) ([]Student, int, error) {
	where := `WHERE st.school_id = $1`
	args := []interface{}{p.SchoolID}
	if p.ClassroomID != nil {
		args = append(args, *p.ClassroomID)
		where += fmt.Sprintf(` AND st.classroom_id = $%d`, len(args))
	}
	if p.Search != "" {
		args = append(args, "%"+p.Search+"%")
		where += fmt.Sprintf(` AND (st.name ILIKE $%d OR st.roll_number ILIKE $%d OR st.email ILIKE $%d)`,
			len(args), len(args), len(args))
	}

	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM students st `+where, args...,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM students st JOIN classrooms c ON c.id = st.classroom_id
		%s
		ORDER BY st.roll_number ASC
		LIMIT $%d OFFSET $%d
	`, studentColumns, where, len(args)+1, len(args)+2)
	args = append(args, p.Limit, p.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var students []Student
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, 0, err
		}
		students = append(students, s)
	}
	return students, total, rows.Err()
}

func (r *Repository) GetByID(ctx context.Context, id, schoolID uuid.UUID) (Student, error) {
	return scanStudent(r.pool.QueryRow(ctx, `
		SELECT `+studentColumns+`
		FROM students st JOIN classrooms c ON c.id = st.classroom_id
		WHERE st.id = $1 AND st.school_id = $2
	`, id, schoolID))
}

// RecentAttendance returns the student's latest attendance rows, newest first.
func (r *Repository) RecentAttendance(ctx context.Context, studentID uuid.UUID, limit int) ([]AttendanceRecord, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, date, status, remarks
		FROM attendance
		WHERE student_id = $1
		ORDER BY date DESC
		LIMIT $2
	`, studentID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []AttendanceRecord
	for rows.Next() {
		var rec AttendanceRecord
		if err := rows.Scan(&rec.ID, &rec.Date, &rec.Status, &rec.Remarks); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

type UpdateStudentParams struct {
	ID          uuid.UUID
	SchoolID    uuid.UUID
	Name        *string
	RollNumber  *string
	ClassroomID *uuid.UUID
	Email       *string
	Phone       *string
	DateOfBirth *time.Time
	Address     *string
}

func (r *Repository) Update(ctx context.Context, p UpdateStudentParams) (Student, error) {
	var id uuid.UUID
	err := r.pool.QueryRow(ctx, `
		UPDATE students SET
			name = COALESCE($3, name),
			roll_number = COALESCE($4, roll_number),
			classroom_id = COALESCE($5, classroom_id),
			email = COALESCE($6, email),
			phone = COALESCE($7, phone),
			date_of_birth = COALESCE($8, date_of_birth),
			address = COALESCE($9, address),
			updated_at = now()
		WHERE id = $1 AND school_id = $2
		RETURNING id
	`, p.ID, p.SchoolID, p.Name, p.RollNumber, p.ClassroomID, p.Email, p.Phone, p.DateOfBirth, p.Address).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return Student{}, ErrNotFound
	}
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Student{}, apperr.Conflict("student with this roll number already exists")
		}
		return Student{}, err
	}
	return r.GetByID(ctx, p.ID, p.SchoolID)
}

// Delete removes the student; attendance rows cascade.
func (r *Repository) Delete(ctx context.Context, id, schoolID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM students WHERE id = $1 AND school_id = $2`, id, schoolID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
