package service

import (
	"context"

	"taleschool_backend/internal/auth/roles"
	"taleschool_backend/internal/dashboard/repository"
	"taleschool_backend/internal/dashboard/transport"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type Service struct {
	repo repository.Store
}

func New(repo repository.Store) *Service {
	return &Service{repo: repo}
}

// Stats returns role-dependent dashboard counts. Super admins see platform
// totals; everyone else sees their school's counts. A user without any
// school scope gets zeroes rather than an error.
func (s *Service) Stats(ctx context.Context, role string, schoolID *uuid.UUID) (transport.StatsResponse, error) {
	if role == roles.SuperAdmin {
		stats, err := s.globalStats(ctx)
		if err != nil {
			return transport.StatsResponse{}, err
		}
		return transport.StatsResponse{Role: role, Stats: stats}, nil
	}

	if schoolID == nil {
		return transport.StatsResponse{Role: role, Stats: transport.SchoolStats{}}, nil
	}

	stats, err := s.schoolStats(ctx, *schoolID)
	if err != nil {
		return transport.StatsResponse{}, err
	}
	return transport.StatsResponse{Role: role, SchoolID: schoolID, Stats: stats}, nil
}

func (s *Service) globalStats(ctx context.Context) (transport.GlobalStats, error) {
	var stats transport.GlobalStats
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) { stats.TotalSchools, err = s.repo.CountSchools(ctx); return })
	g.Go(func() (err error) { stats.ActiveSchools, err = s.repo.CountActiveSchools(ctx); return })
	g.Go(func() (err error) { stats.TotalUsers, err = s.repo.CountUsers(ctx); return })
	g.Go(func() (err error) { stats.TotalTeachers, err = s.repo.CountTeachers(ctx); return })
	g.Go(func() (err error) { stats.TotalStudents, err = s.repo.CountStudents(ctx); return })

	return stats, g.Wait()
}

func (s *Service) schoolStats(ctx context.Context, schoolID uuid.UUID) (transport.SchoolStats, error) {
	var stats transport.SchoolStats
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) { stats.TotalTeachers, err = s.repo.CountSchoolTeachers(ctx, schoolID); return })
	g.Go(func() (err error) { stats.TotalStudents, err = s.repo.CountSchoolStudents(ctx, schoolID); return })
	g.Go(func() (err error) { stats.TotalClassrooms, err = s.repo.CountSchoolClassrooms(ctx, schoolID); return })
	g.Go(func() (err error) { stats.AttendanceMarkedToday, err = s.repo.CountAttendanceToday(ctx, schoolID); return })

	return stats, g.Wait()
}
