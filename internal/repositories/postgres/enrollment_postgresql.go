package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/elab-development/internet-tehnologije-2025-vebaplikacijazaucenjejezika-2022-0147/internal/models"
	"github.com/elab-development/internet-tehnologije-2025-vebaplikacijazaucenjejezika-2022-0147/internal/repositories"
)

const enrollmentDetailColumns = "enrollments.id, enrollments.course_id, courses.title AS course_title, " +
	"enrollments.student_id, users.name AS student_name, enrollments.status, " +
	"enrollments.created_at, enrollments.updated_at"

type enrollmentRepository struct {
	baseRepository
}

func NewEnrollmentPostgreSQL(db *gorm.DB) repositories.EnrollmentRepository {
	return &enrollmentRepository{baseRepository{db: db}}
}

func (r *enrollmentRepository) Create(ctx context.Context, tx *gorm.DB, enrollment *models.Enrollment) error {
	if err := r.getDB(tx).WithContext(ctx).Omit(clause.Associations).Create(enrollment).Error; err != nil {
		return handleDBError(err, "create enrollment")
	}
	return nil
}

func (r *enrollmentRepository) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	if err := r.getDB(tx).WithContext(ctx).
		Preload("Course").
		First(&enrollment, id).Error; err != nil {
		return nil, handleDBError(err, "get enrollment by id")
	}
	return &enrollment, nil
}

func (r *enrollmentRepository) UpdateStatus(ctx context.Context, tx *gorm.DB, id uint, status models.EnrollmentStatus) error {
	result := r.getDB(tx).WithContext(ctx).
		Model(&models.Enrollment{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return handleDBError(result.Error, "update enrollment status")
	}
	if result.RowsAffected == 0 {
		return handleDBError(gorm.ErrRecordNotFound, "update enrollment status")
	}
	return nil
}

func (r *enrollmentRepository) DeleteByCourse(ctx context.Context, tx *gorm.DB, courseID uint) error {
	if err := r.getDB(tx).WithContext(ctx).
		Where("course_id = ?", courseID).
		Delete(&models.Enrollment{}).Error; err != nil {
		return handleDBError(err, "delete enrollments by course")
	}
	return nil
}

func (r *enrollmentRepository) GetDetail(ctx context.Context, tx *gorm.DB, id uint) (*models.EnrollmentDetail, error) {
	var details []*models.EnrollmentDetail
	if err := r.joined(r.getDB(tx).WithContext(ctx)).
		Select(enrollmentDetailColumns).
		Where("enrollments.id = ?", id).
		Limit(1).
		Scan(&details).Error; err != nil {
		return nil, handleDBError(err, "get enrollment detail")
	}
	if len(details) == 0 {
		return nil, handleDBError(gorm.ErrRecordNotFound, "get enrollment detail")
	}
	return details[0], nil
}

func (r *enrollmentRepository) List(ctx context.Context, tx *gorm.DB, filters repositories.EnrollmentFilters) ([]*models.EnrollmentDetail, int64, error) {
	base := func() *gorm.DB {
		return r.applyEnrollmentFilters(r.joined(r.getDB(tx).WithContext(ctx)), filters)
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, handleDBError(err, "count enrollments")
	}

	query := base().
		Select(enrollmentDetailColumns).
		Order("enrollments.created_at DESC").
		Order("enrollments.id DESC")
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	details := make([]*models.EnrollmentDetail, 0)
	if err := query.Scan(&details).Error; err != nil {
		return nil, 0, handleDBError(err, "list enrollments")
	}

	return details, total, nil
}

func (r *enrollmentRepository) ExistsForStudent(ctx context.Context, tx *gorm.DB, studentID, courseID uint) (bool, error) {
	var count int64
	if err := r.getDB(tx).WithContext(ctx).
		Model(&models.Enrollment{}).
		Where("student_id = ? AND course_id = ?", studentID, courseID).
		Count(&count).Error; err != nil {
		return false, handleDBError(err, "check existing enrollment")
	}
	return count > 0, nil
}

func (r *enrollmentRepository) joined(db *gorm.DB) *gorm.DB {
	return db.Table("enrollments").
		Joins("JOIN courses ON courses.id = enrollments.course_id").
		Joins("JOIN users ON users.id = enrollments.student_id")
}

func (r *enrollmentRepository) applyEnrollmentFilters(query *gorm.DB, filters repositories.EnrollmentFilters) *gorm.DB {
	if filters.CourseID != nil {
		query = query.Where("enrollments.course_id = ?", *filters.CourseID)
	}
	if filters.StudentID != nil {
		query = query.Where("enrollments.student_id = ?", *filters.StudentID)
	}
	if filters.TeacherID != nil {
		query = query.Where("courses.teacher_id = ?", *filters.TeacherID)
	}
	if len(filters.Statuses) > 0 {
		query = query.Where("enrollments.status IN ?", filters.Statuses)
	}
	if filters.Search != "" {
		pattern := containsPattern(filters.Search)
		query = query.Where(
			"LOWER(users.name) LIKE ?"+likeEscape+" OR LOWER(users.email) LIKE ?"+likeEscape+" OR LOWER(courses.title) LIKE ?"+likeEscape,
			pattern, pattern, pattern,
		)
	}
	return query
}
