package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/elab-development/internet-tehnologije-2025-vebaplikacijazaucenjejezika-2022-0147/internal/models"
)

type LanguageRepository interface {
	Create(ctx context.Context, tx *gorm.DB, language *models.Language) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Language, error)
	Update(ctx context.Context, tx *gorm.DB, language *models.Language) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error

	// List returns every language ordered by name.
	List(ctx context.Context, tx *gorm.DB) ([]*models.Language, error)
	Exists(ctx context.Context, tx *gorm.DB, id uint) (bool, error)
	// ExistsByName ignores the language with excludeID, 0 to check all.
	ExistsByName(ctx context.Context, tx *gorm.DB, name string, excludeID uint) (bool, error)
}

// CourseFilters narrows course listings.
type CourseFilters struct {
	TeacherID *uint
}

type CourseRepository interface {
	Create(ctx context.Context, tx *gorm.DB, course *models.Course) error
	// GetByID preloads the course language.
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Course, error)
	Update(ctx context.Context, tx *gorm.DB, course *models.Course) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error

	// List returns active courses first, then by title, with languages preloaded.
	List(ctx context.Context, tx *gorm.DB, filters CourseFilters) ([]*models.Course, error)
	CountByLanguage(ctx context.Context, tx *gorm.DB, languageID uint) (int64, error)
}
