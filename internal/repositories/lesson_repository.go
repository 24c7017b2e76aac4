package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/elab-development/internet-tehnologije-2025-vebaplikacijazaucenjejezika-2022-0147/internal/models"
)

// LessonFilters defines filters for lesson queries
type LessonFilters struct {
	CourseID  *uint
	TeacherID *uint
	Search    string // matched against the title

	SortBy  string // starts_at, ends_at, title, created_at
	SortDir string // asc or desc
	Limit   int
	Offset  int
}

type LessonRepository interface {
	Create(ctx context.Context, tx *gorm.DB, lesson *models.Lesson) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Lesson, error)
	Update(ctx context.Context, tx *gorm.DB, lesson *models.Lesson) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
	DeleteByCourse(ctx context.Context, tx *gorm.DB, courseID uint) error

	List(ctx context.Context, tx *gorm.DB, filters LessonFilters) ([]*models.Lesson, int64, error)
}
