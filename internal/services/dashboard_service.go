package services

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/elab-development/internet-tehnologije-2025-vebaplikacijazaucenjejezika-2022-0147/internal/models"
	"github.com/elab-development/internet-tehnologije-2025-vebaplikacijazaucenjejezika-2022-0147/internal/repositories"
)

type dashboardService struct {
	repo   repositories.Repository
	db     *gorm.DB
	logger *slog.Logger
}

func NewDashboardService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger) DashboardService {
	return &dashboardService{
		repo:   repo,
		db:     db,
		logger: logger,
	}
}

// GetAdminStats computes every dashboard figure on the fly. Nothing is cached.
func (s *dashboardService) GetAdminStats(ctx context.Context, actor *models.User) (*AdminStatsResponse, error) {
	if err := requireAdmin(actor, "admin_stats", "read", "Only admins can access this resource"); err != nil {
		return nil, err
	}
	return s.collect(ctx)
}

func (s *dashboardService) collect(ctx context.Context) (*AdminStatsResponse, error) {
	dashboard := s.repo.Dashboard()

	kpis, err := dashboard.GetKPIs(ctx, nil)
	if err != nil {
		s.logger.Error("Failed to get KPIs", "error", err)
		return nil, fmt.Errorf("failed to get KPIs: %w", err)
	}

	stats := &AdminStatsResponse{KPIs: *kpis}

	if stats.UsersByRole, err = dashboard.GetUsersByRole(ctx, nil); err != nil {
		return nil, err
	}
	if stats.CoursesByLanguage, err = dashboard.GetCoursesByLanguage(ctx, nil); err != nil {
		return nil, err
	}
	if stats.CoursesByLevel, err = dashboard.GetCoursesByLevel(ctx, nil); err != nil {
		return nil, err
	}
	if stats.EnrollmentsByStatus, err = dashboard.GetEnrollmentsByStatus(ctx, nil); err != nil {
		return nil, err
	}
	if stats.TopTeachersByActiveCourses, err = dashboard.GetTopTeachersByActiveCourses(ctx, nil, StatsTopLimit); err != nil {
		return nil, err
	}
	if stats.TopCoursesByEnrollments, err = dashboard.GetTopCoursesByEnrollments(ctx, nil, StatsTopLimit); err != nil {
		return nil, err
	}
	if stats.LessonsPerMonth, err = dashboard.GetLessonsPerMonth(ctx, nil, StatsMonthWindow); err != nil {
		return nil, err
	}

	return stats, nil
}
