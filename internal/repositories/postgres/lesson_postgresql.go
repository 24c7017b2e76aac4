package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/elab-development/internet-tehnologije-2025-vebaplikacijazaucenjejezika-2022-0147/internal/models"
	"github.com/elab-development/internet-tehnologije-2025-vebaplikacijazaucenjejezika-2022-0147/internal/repositories"
)

var lessonSortColumns = map[string]string{
	"starts_at":  "starts_at",
	"ends_at":    "ends_at",
	"title":      "title",
	"created_at": "created_at",
}

type lessonRepository struct {
	baseRepository
}

func NewLessonPostgreSQL(db *gorm.DB) repositories.LessonRepository {
	return &lessonRepository{baseRepository{db: db}}
}

func (r *lessonRepository) Create(ctx context.Context, tx *gorm.DB, lesson *models.Lesson) error {
	if err := r.getDB(tx).WithContext(ctx).Omit(clause.Associations).Create(lesson).Error; err != nil {
		return handleDBError(err, "create lesson")
	}
	return nil
}

func (r *lessonRepository) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Lesson, error) {
	var lesson models.Lesson
	if err := r.getDB(tx).WithContext(ctx).First(&lesson, id).Error; err != nil {
		return nil, handleDBError(err, "get lesson by id")
	}
	return &lesson, nil
}

func (r *lessonRepository) Update(ctx context.Context, tx *gorm.DB, lesson *models.Lesson) error {
	if err := r.getDB(tx).WithContext(ctx).Omit(clause.Associations).Save(lesson).Error; err != nil {
		return handleDBError(err, "update lesson")
	}
	return nil
}

func (r *lessonRepository) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	if err := r.getDB(tx).WithContext(ctx).Delete(&models.Lesson{}, id).Error; err != nil {
		return handleDBError(err, "delete lesson")
	}
	return nil
}

func (r *lessonRepository) DeleteByCourse(ctx context.Context, tx *gorm.DB, courseID uint) error {
	if err := r.getDB(tx).WithContext(ctx).
		Where("course_id = ?", courseID).
		Delete(&models.Lesson{}).Error; err != nil {
		return handleDBError(err, "delete lessons by course")
	}
	return nil
}

func (r *lessonRepository) List(ctx context.Context, tx *gorm.DB, filters repositories.LessonFilters) ([]*models.Lesson, int64, error) {
	base := func() *gorm.DB {
		return r.applyLessonFilters(r.getDB(tx).WithContext(ctx).Model(&models.Lesson{}), filters)
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, handleDBError(err, "count lessons")
	}

	var lessons []*models.Lesson
	query := applyPaginationAndSorting(base(), lessonSortColumns, "starts_at", filters.SortBy, filters.SortDir, filters.Limit, filters.Offset)
	if err := query.Find(&lessons).Error; err != nil {
		return nil, 0, handleDBError(err, "list lessons")
	}

	return lessons, total, nil
}

func (r *lessonRepository) applyLessonFilters(query *gorm.DB, filters repositories.LessonFilters) *gorm.DB {
	if filters.CourseID != nil {
		query = query.Where("course_id = ?", *filters.CourseID)
	}
	if filters.TeacherID != nil {
		query = query.Where("teacher_id = ?", *filters.TeacherID)
	}
	if filters.Search != "" {
		query = query.Where("LOWER(title) LIKE ?"+likeEscape, containsPattern(filters.Search))
	}
	return query
}
