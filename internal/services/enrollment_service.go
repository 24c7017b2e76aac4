package services

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/elab-development/internet-tehnologije-2025-vebaplikacijazaucenjejezika-2022-0147/internal/models"
	"github.com/elab-development/internet-tehnologije-2025-vebaplikacijazaucenjejezika-2022-0147/internal/repositories"
	"github.com/elab-development/internet-tehnologije-2025-vebaplikacijazaucenjejezika-2022-0147/internal/validator"
)

type enrollmentService struct {
	repo      repositories.Repository
	db        *gorm.DB
	logger    *slog.Logger
	validator *validator.Validator

	// uniqueEnrollments rejects a second enrollment of a student in the same course.
	uniqueEnrollments bool
}

func NewEnrollmentService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, validator *validator.Validator, uniqueEnrollments bool) EnrollmentService {
	return &enrollmentService{
		repo:              repo,
		db:                db,
		logger:            logger,
		validator:         validator,
		uniqueEnrollments: uniqueEnrollments,
	}
}

func (s *enrollmentService) Create(ctx context.Context, actor *models.User, req *CreateEnrollmentRequest) (*models.EnrollmentDetail, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}

	switch actor.Role {
	case models.RoleStudent:
	default:
		return nil, NewPermissionError(actor.ID, 0, "enrollment", "create", "Only students can enroll in courses")
	}

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	var detail *models.EnrollmentDetail
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		courseID := *req.CourseID
		if _, err := s.repo.Course().GetByID(ctx, tx, courseID); err != nil {
			if repositories.IsNotFoundError(err) {
				return validationError("course_id", "The selected course id is invalid.", courseID)
			}
			return fmt.Errorf("failed to get course: %w", err)
		}

		if s.uniqueEnrollments {
			exists, err := s.repo.Enrollment().ExistsForStudent(ctx, tx, actor.ID, courseID)
			if err != nil {
				return err
			}
			if exists {
				return ErrDuplicateEnrollment
			}
		}

		enrollment := &models.Enrollment{
			CourseID:  courseID,
			StudentID: actor.ID,
			Status:    models.EnrollmentActive,
		}
		if err := s.repo.Enrollment().Create(ctx, tx, enrollment); err != nil {
			return err
		}

		var err error
		detail, err = s.repo.Enrollment().GetDetail(ctx, tx, enrollment.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Enrollment created", "enrollment_id", detail.ID, "course_id", detail.CourseID, "student_id", actor.ID)
	return detail, nil
}

// List scopes the listing by role: admins see everything, teachers the
// enrollments of their courses, students their own.
func (s *enrollmentService) List(ctx context.Context, actor *models.User, params EnrollmentListParams) (*EnrollmentListResponse, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}

	page, perPage, limit, offset := pageBounds(params.Page, params.PerPage, DefaultEnrollmentsPerPage)
	filters := repositories.EnrollmentFilters{
		CourseID:  params.CourseID,
		StudentID: params.StudentID,
		Statuses:  params.Statuses,
		Search:    params.Search,
		Limit:     limit,
		Offset:    offset,
	}

	switch actor.Role {
	case models.RoleAdmin:
	case models.RoleTeacher:
		filters.TeacherID = &actor.ID
	case models.RoleStudent:
		filters.StudentID = &actor.ID
	default:
		return nil, NewPermissionError(actor.ID, 0, "enrollment", "list", "You are not allowed to view enrollments")
	}

	enrollments, total, err := s.repo.Enrollment().List(ctx, nil, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list enrollments: %w", err)
	}
	if enrollments == nil {
		enrollments = make([]*models.EnrollmentDetail, 0)
	}

	return &EnrollmentListResponse{
		Enrollments: enrollments,
		Meta:        newPageMeta(page, perPage, total),
	}, nil
}

// UpdateStatus sets any status. Only admins and the teacher of the course may do it.
func (s *enrollmentService) UpdateStatus(ctx context.Context, actor *models.User, id uint, req *UpdateEnrollmentRequest) (*models.EnrollmentDetail, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}

	var detail *models.EnrollmentDetail
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		enrollment, err := s.repo.Enrollment().GetByID(ctx, tx, id)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				return ErrEnrollmentNotFound
			}
			return fmt.Errorf("failed to get enrollment: %w", err)
		}

		if err := s.authorizeStatusChange(actor, enrollment); err != nil {
			return err
		}
		if err := s.validator.Validate(req); err != nil {
			return err
		}

		if err := s.repo.Enrollment().UpdateStatus(ctx, tx, id, req.Status); err != nil {
			return err
		}

		detail, err = s.repo.Enrollment().GetDetail(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Enrollment status updated", "enrollment_id", id, "status", req.Status, "user_id", actor.ID)
	return detail, nil
}

func (s *enrollmentService) ListByStudent(ctx context.Context, actor *models.User, studentID uint) (*StudentEnrollmentsResponse, error) {
	if err := requireAdmin(actor, "student_enrollments", "list", "Only admins can access this resource"); err != nil {
		return nil, err
	}

	student, err := s.repo.User().GetByID(ctx, nil, studentID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to get student: %w", err)
	}
	if !student.IsStudent() {
		return nil, ErrStudentNotFound
	}

	enrollments, _, err := s.repo.Enrollment().List(ctx, nil, repositories.EnrollmentFilters{StudentID: &student.ID})
	if err != nil {
		return nil, fmt.Errorf("failed to list student enrollments: %w", err)
	}
	if enrollments == nil {
		enrollments = make([]*models.EnrollmentDetail, 0)
	}

	return &StudentEnrollmentsResponse{
		Student:     student.Summary(),
		Enrollments: enrollments,
	}, nil
}

func (s *enrollmentService) authorizeStatusChange(actor *models.User, enrollment *models.Enrollment) error {
	switch actor.Role {
	case models.RoleAdmin:
		return nil
	case models.RoleTeacher:
		if enrollment.Course != nil && enrollment.Course.IsTaughtBy(actor.ID) {
			return nil
		}
		return NewPermissionError(actor.ID, enrollment.ID, "enrollment", "update", "You can only manage enrollments of your own courses")
	default:
		return NewPermissionError(actor.ID, enrollment.ID, "enrollment", "update", "Only admins or the course teacher can update enrollments")
	}
}
