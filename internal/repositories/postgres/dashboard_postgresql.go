package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/elab-development/internet-tehnologije-2025-vebaplikacijazaucenjejezika-2022-0147/internal/models"
	"github.com/elab-development/internet-tehnologije-2025-vebaplikacijazaucenjejezika-2022-0147/internal/repositories"
)

type dashboardRepository struct {
	baseRepository
}

func NewDashboardRepository(db *gorm.DB) repositories.DashboardRepository {
	return &dashboardRepository{baseRepository{db: db}}
}

// ===== KPIS =====

func (r *dashboardRepository) GetKPIs(ctx context.Context, tx *gorm.DB) (*repositories.KPIData, error) {
	db := r.getDB(tx).WithContext(ctx)
	kpis := &repositories.KPIData{}

	counts := []struct {
		model interface{}
		dest  *int64
		name  string
	}{
		{&models.User{}, &kpis.UsersTotal, "users"},
		{&models.Language{}, &kpis.Languages, "languages"},
		{&models.Course{}, &kpis.Courses, "courses"},
		{&models.Lesson{}, &kpis.Lessons, "lessons"},
		{&models.Enrollment{}, &kpis.Enrollments, "enrollments"},
	}

	for _, c := range counts {
		if err := db.Model(c.model).Count(c.dest).Error; err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", c.name, err)
		}
	}

	return kpis, nil
}

// ===== BREAKDOWNS =====

func (r *dashboardRepository) GetUsersByRole(ctx context.Context, tx *gorm.DB) ([]repositories.RoleCountData, error) {
	results := make([]repositories.RoleCountData, 0)

	if err := r.getDB(tx).WithContext(ctx).
		Model(&models.User{}).
		Select("role, COUNT(*) AS count").
		Group("role").
		Order("role ASC").
		Scan(&results).Error; err != nil {
		return nil, fmt.Errorf("failed to get users by role: %w", err)
	}

	return results, nil
}

func (r *dashboardRepository) GetCoursesByLanguage(ctx context.Context, tx *gorm.DB) ([]repositories.LabelValueData, error) {
	results := make([]repositories.LabelValueData, 0)

	if err := r.getDB(tx).WithContext(ctx).
		Table("courses").
		Joins("JOIN languages ON languages.id = courses.language_id").
		Select("languages.name AS label, COUNT(courses.id) AS value").
		Group("languages.name").
		Order("value DESC").
		Order("label ASC").
		Scan(&results).Error; err != nil {
		return nil, fmt.Errorf("failed to get courses by language: %w", err)
	}

	return results, nil
}

func (r *dashboardRepository) GetCoursesByLevel(ctx context.Context, tx *gorm.DB) ([]repositories.LabelValueData, error) {
	results := make([]repositories.LabelValueData, 0)

	if err := r.getDB(tx).WithContext(ctx).
		Model(&models.Course{}).
		Select("level AS label, COUNT(id) AS value").
		Group("level").
		Order("level ASC").
		Scan(&results).Error; err != nil {
		return nil, fmt.Errorf("failed to get courses by level: %w", err)
	}

	return results, nil
}

func (r *dashboardRepository) GetEnrollmentsByStatus(ctx context.Context, tx *gorm.DB) ([]repositories.LabelValueData, error) {
	results := make([]repositories.LabelValueData, 0)

	if err := r.getDB(tx).WithContext(ctx).
		Model(&models.Enrollment{}).
		Select("status AS label, COUNT(id) AS value").
		Group("status").
		Order("value DESC").
		Order("label ASC").
		Scan(&results).Error; err != nil {
		return nil, fmt.Errorf("failed to get enrollments by status: %w", err)
	}

	return results, nil
}

// ===== RANKINGS =====

func (r *dashboardRepository) GetTopTeachersByActiveCourses(ctx context.Context, tx *gorm.DB, limit int) ([]repositories.RankedData, error) {
	results := make([]repositories.RankedData, 0)

	if err := r.getDB(tx).WithContext(ctx).
		Table("courses").
		Joins("JOIN users ON users.id = courses.teacher_id").
		Select("users.id AS id, users.name AS label, COUNT(courses.id) AS value").
		Where("users.role = ?", models.RoleTeacher).
		Where("courses.is_active = ?", true).
		Group("users.id, users.name").
		Order("value DESC").
		Order("label ASC").
		Limit(limit).
		Scan(&results).Error; err != nil {
		return nil, fmt.Errorf("failed to get top teachers: %w", err)
	}

	return results, nil
}

func (r *dashboardRepository) GetTopCoursesByEnrollments(ctx context.Context, tx *gorm.DB, limit int) ([]repositories.RankedData, error) {
	results := make([]repositories.RankedData, 0)

	if err := r.getDB(tx).WithContext(ctx).
		Table("enrollments").
		Joins("JOIN courses ON courses.id = enrollments.course_id").
		Select("courses.id AS id, courses.title AS label, COUNT(enrollments.id) AS value").
		Group("courses.id, courses.title").
		Order("value DESC").
		Order("label ASC").
		Limit(limit).
		Scan(&results).Error; err != nil {
		return nil, fmt.Errorf("failed to get top courses: %w", err)
	}

	return results, nil
}

// ===== TIME SERIES =====

func (r *dashboardRepository) GetLessonsPerMonth(ctx context.Context, tx *gorm.DB, months int) ([]repositories.LabelValueData, error) {
	db := r.getDB(tx).WithContext(ctx)
	label := monthLabelExpr(db, "starts_at")

	results := make([]repositories.LabelValueData, 0)
	if err := db.
		Model(&models.Lesson{}).
		Select(fmt.Sprintf("%s AS label, COUNT(id) AS value", label)).
		Where("starts_at IS NOT NULL").
		Group(label).
		Order("label DESC").
		Limit(months).
		Scan(&results).Error; err != nil {
		return nil, fmt.Errorf("failed to get lessons per month: %w", err)
	}

	// newest buckets were selected; present them oldest first
	for i, j := 0, len(results)-1; i < j; i, j = i+1, j-1 {
		results[i], results[j] = results[j], results[i]
	}

	return results, nil
}
