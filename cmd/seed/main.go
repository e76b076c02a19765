// Command seed loads demo data: a super admin, two schools with admins, a
// teacher, classrooms, students and today's attendance for the first school.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"taleschool_backend/internal/auth/password"
	"taleschool_backend/internal/auth/roles"
	"taleschool_backend/platform/config"
	"taleschool_backend/platform/db"
	"taleschool_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := run(ctx, pool); err != nil {
		log.Error("seed failed", "error", err)
		os.Exit(1)
	}

	log.Info("seed completed")
	log.Info("login credentials",
		"superAdmin", "superadmin@xyz.com / Admin@123",
		"abcAdmin", "admin@abc.com / Admin@123",
		"abcTeacher", "teacher1@abc.com / Teacher@123",
		"xyzAdmin", "admin@xyz-school.com / Admin@123")
}

func run(ctx context.Context, pool *pgxpool.Pool) error {
	adminHash, err := password.Hash("Admin@123")
	if err != nil {
		return err
	}
	teacherHash, err := password.Hash("Teacher@123")
	if err != nil {
		return err
	}

	if err := upsertUser(ctx, pool, "superadmin@xyz.com", adminHash, "Super Admin", roles.SuperAdmin, nil); err != nil {
		return err
	}

	abcID, err := upsertSchool(ctx, pool, "ABC School", "abc", "admin@abcschool.com", "+1234567890", "123 Main St, City")
	if err != nil {
		return err
	}
	if err := upsertUser(ctx, pool, "admin@abc.com", adminHash, "ABC School Admin", roles.SchoolAdmin, &abcID); err != nil {
		return err
	}

	teacherUserID, err := upsertUserReturning(ctx, pool, "teacher1@abc.com", teacherHash, "John Doe", roles.Teacher, &abcID)
	if err != nil {
		return err
	}
	if _, err := pool.Exec(ctx, `
		INSERT INTO teachers (user_id, name, designation, phone, school_id)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO NOTHING
	`, teacherUserID, "John Doe", "Mathematics Teacher", "+1234567891", abcID); err != nil {
		return err
	}

	classA, err := upsertClassroom(ctx, pool, abcID, "Class 10", "A")
	if err != nil {
		return err
	}
	classB, err := upsertClassroom(ctx, pool, abcID, "Class 10", "B")
	if err != nil {
		return err
	}

	for i := 1; i <= 5; i++ {
		classroomID := classA
		if i > 3 {
			classroomID = classB
		}
		roll := fmt.Sprintf("ABC%03d", i)
		email := fmt.Sprintf("student%d@abc.com", i)

		var studentID uuid.UUID
		err := pool.QueryRow(ctx, `
			INSERT INTO students (name, roll_number, classroom_id, email, school_id)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (school_id, roll_number) DO UPDATE SET name = EXCLUDED.name
			RETURNING id
		`, fmt.Sprintf("Student %d", i), roll, classroomID, email, abcID).Scan(&studentID)
		if err != nil {
			return err
		}

		if _, err := pool.Exec(ctx, `
			INSERT INTO attendance (student_id, date, status, marked_by, school_id)
			VALUES ($1, CURRENT_DATE, 'PRESENT', $2, $3)
			ON CONFLICT (student_id, date) DO NOTHING
		`, studentID, teacherUserID, abcID); err != nil {
			return err
		}
	}

	xyzID, err := upsertSchool(ctx, pool, "XYZ School", "xyz-school", "admin@xyzschool.com", "+1234567892", "456 Second St, City")
	if err != nil {
		return err
	}
	return upsertUser(ctx, pool, "admin@xyz-school.com", adminHash, "XYZ School Admin", roles.SchoolAdmin, &xyzID)
}

func upsertSchool(ctx context.Context, pool *pgxpool.Pool, name, slug, email, phone, address string) (uuid.UUID, error) {
	var id uuid.UUID
	err := pool.QueryRow(ctx, `
		INSERT INTO schools (name, slug, email, phone, address, is_active)
		VALUES ($1, $2, $3, $4, $5, TRUE)
		ON CONFLICT (slug) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`, name, slug, email, phone, address).Scan(&id)
	return id, err
}

func upsertUser(ctx context.Context, pool *pgxpool.Pool, email, hash, name, role string, schoolID *uuid.UUID) error {
	_, err := upsertUserReturning(ctx, pool, email, hash, name, role, schoolID)
	return err
}

func upsertUserReturning(ctx context.Context, pool *pgxpool.Pool, email, hash, name, role string, schoolID *uuid.UUID) (uuid.UUID, error) {
	var id uuid.UUID
	err := pool.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, name, role, school_id, is_active)
		VALUES ($1, $2, $3, $4, $5, TRUE)
		ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`, email, hash, name, role, schoolID).Scan(&id)
	return id, err
}

func upsertClassroom(ctx context.Context, pool *pgxpool.Pool, schoolID uuid.UUID, name, section string) (uuid.UUID, error) {
	var id uuid.UUID
	err := pool.QueryRow(ctx, `
		INSERT INTO classrooms (name, section, school_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (school_id, name, section) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`, name, section, schoolID).Scan(&id)
	return id, err
}
