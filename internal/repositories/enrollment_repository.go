package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/elab-development/internet-tehnologije-2025-vebaplikacijazaucenjejezika-2022-0147/internal/models"
)

// EnrollmentFilters defines filters for enrollment queries
type EnrollmentFilters struct {
	CourseID  *uint
	StudentID *uint
	// TeacherID limits results to courses taught by that teacher.
	TeacherID *uint
	Statuses  []models.EnrollmentStatus
	Search    string // student name or email, or course title

	Limit  int
	Offset int
}

type EnrollmentRepository interface {
	Create(ctx context.Context, tx *gorm.DB, enrollment *models.Enrollment) error
	// GetByID preloads the enrollment's course.
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Enrollment, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, id uint, status models.EnrollmentStatus) error
	DeleteByCourse(ctx context.Context, tx *gorm.DB, courseID uint) error

	GetDetail(ctx context.Context, tx *gorm.DB, id uint) (*models.EnrollmentDetail, error)
	List(ctx context.Context, tx *gorm.DB, filters EnrollmentFilters) ([]*models.EnrollmentDetail, int64, error)
	ExistsForStudent(ctx context.Context, tx *gorm.DB, studentID, courseID uint) (bool, error)
}
