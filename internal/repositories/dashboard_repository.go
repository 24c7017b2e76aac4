package repositories

import (
	"context"

	"gorm.io/gorm"
)

// DashboardRepository interface for admin reporting queries
type DashboardRepository interface {
	// Plain counts
	GetKPIs(ctx context.Context, tx *gorm.DB) (*KPIData, error)

	// Grouped breakdowns
	GetUsersByRole(ctx context.Context, tx *gorm.DB) ([]RoleCountData, error)
	GetCoursesByLanguage(ctx context.Context, tx *gorm.DB) ([]LabelValueData, error)
	GetCoursesByLevel(ctx context.Context, tx *gorm.DB) ([]LabelValueData, error)
	GetEnrollmentsByStatus(ctx context.Context, tx *gorm.DB) ([]LabelValueData, error)

	// Top-N rankings
	GetTopTeachersByActiveCourses(ctx context.Context, tx *gorm.DB, limit int) ([]RankedData, error)
	GetTopCoursesByEnrollments(ctx context.Context, tx *gorm.DB, limit int) ([]RankedData, error)

	// GetLessonsPerMonth returns the most recent populated months, oldest first.
	GetLessonsPerMonth(ctx context.Context, tx *gorm.DB, months int) ([]LabelValueData, error)
}

// Data structures for dashboard responses
type KPIData struct {
	UsersTotal  int64 `json:"users_total"`
	Languages   int64 `json:"languages"`
	Courses     int64 `json:"courses"`
	Lessons     int64 `json:"lessons"`
	Enrollments int64 `json:"enrollments"`
}

type RoleCountData struct {
	Role  string `json:"role"`
	Count int64  `json:"count"`
}

type LabelValueData struct {
	Label string `json:"label"`
	Value int64  `json:"value"`
}

type RankedData struct {
	ID    uint   `json:"id"`
	Label string `json:"label"`
	Value int64  `json:"value"`
}
