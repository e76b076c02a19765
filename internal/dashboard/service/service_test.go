package service

import (
	"context"
	"testing"

	"taleschool_backend/internal/auth/roles"
	"taleschool_backend/internal/dashboard/transport"

	"github.com/google/uuid"
)

type fakeStore struct {
	schools, activeSchools, users, teachers, students int

	perSchool map[uuid.UUID]schoolCounts
}

type schoolCounts struct {
	teachers, students, classrooms, attendanceToday int
}

func (f *fakeStore) CountSchools(ctx context.Context) (int, error)       { return f.schools, nil }
func (f *fakeStore) CountActiveSchools(ctx context.Context) (int, error) { return f.activeSchools, nil }
func (f *fakeStore) CountUsers(ctx context.Context) (int, error)         { return f.users, nil }
func (f *fakeStore) CountTeachers(ctx context.Context) (int, error)      { return f.teachers, nil }
func (f *fakeStore) CountStudents(ctx context.Context) (int, error)      { return f.students, nil }

func (f *fakeStore) CountSchoolTeachers(ctx context.Context, schoolID uuid.UUID) (int, error) {
	return f.perSchool[schoolID].teachers, nil
}

func (f *fakeStore) CountSchoolStudents(ctx context.Context, schoolID uuid.UUID) (int, error) {
	return f.perSchool[schoolID].students, nil
}

func (f *fakeStore) CountSchoolClassrooms(ctx context.Context, schoolID uuid.UUID) (int, error) {
	return f.perSchool[schoolID].classrooms, nil
}

func (f *fakeStore) CountAttendanceToday(ctx context.Context, schoolID uuid.UUID) (int, error) {
	return f.perSchool[schoolID].attendanceToday, nil
}

func TestStatsSuperAdminGetsPlatformTotals(t *testing.T) {
	store := &fakeStore{schools: 4, activeSchools: 3, users: 40, teachers: 12, students: 300}
	svc := New(store)

	resp, err := svc.Stats(context.Background(), roles.SuperAdmin, nil)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if resp.Role != roles.SuperAdmin {
		t.Fatalf("unexpected role: %s", resp.Role)
	}
	stats, ok := resp.Stats.(transport.GlobalStats)
	if !ok {
		t.Fatalf("expected GlobalStats, got %T", resp.Stats)
	}
	want := transport.GlobalStats{TotalSchools: 4, ActiveSchools: 3, TotalUsers: 40, TotalTeachers: 12, TotalStudents: 300}
	if stats != want {
		t.Fatalf("got %+v, want %+v", stats, want)
	}
}

func TestStatsSchoolAdminGetsSchoolCounts(t *testing.T) {
	schoolID := uuid.New()
	store := &fakeStore{perSchool: map[uuid.UUID]schoolCounts{
		schoolID: {teachers: 5, students: 120, classrooms: 6, attendanceToday: 98},
	}}
	svc := New(store)

	resp, err := svc.Stats(context.Background(), roles.SchoolAdmin, &schoolID)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if resp.SchoolID == nil || *resp.SchoolID != schoolID {
		t.Fatalf("expected school id in response, got %v", resp.SchoolID)
	}
	stats, ok := resp.Stats.(transport.SchoolStats)
	if !ok {
		t.Fatalf("expected SchoolStats, got %T", resp.Stats)
	}
	want := transport.SchoolStats{TotalTeachers: 5, TotalStudents: 120, TotalClassrooms: 6, AttendanceMarkedToday: 98}
	if stats != want {
		t.Fatalf("got %+v, want %+v", stats, want)
	}
}

func TestStatsSuperAdminIgnoresSchoolScope(t *testing.T) {
	schoolID := uuid.New()
	store := &fakeStore{schools: 2, perSchool: map[uuid.UUID]schoolCounts{
		schoolID: {students: 999},
	}}

	resp, err := New(store).Stats(context.Background(), roles.SuperAdmin, &schoolID)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if _, ok := resp.Stats.(transport.GlobalStats); !ok {
		t.Fatalf("super admin must get platform totals, got %T", resp.Stats)
	}
}

func TestStatsWithoutSchoolScopeReturnsZeroes(t *testing.T) {
	resp, err := New(&fakeStore{}).Stats(context.Background(), roles.Teacher, nil)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	stats, ok := resp.Stats.(transport.SchoolStats)
	if !ok {
		t.Fatalf("expected SchoolStats, got %T", resp.Stats)
	}
	if stats != (transport.SchoolStats{}) {
		t.Fatalf("expected zeroed counts, got %+v", stats)
	}
}
