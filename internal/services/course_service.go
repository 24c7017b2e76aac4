package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"gorm.io/gorm"

	"github.com/elab-development/internet-tehnologije-2025-vebaplikacijazaucenjejezika-2022-0147/internal/models"
	"github.com/elab-development/internet-tehnologije-2025-vebaplikacijazaucenjejezika-2022-0147/internal/repositories"
	"github.com/elab-development/internet-tehnologije-2025-vebaplikacijazaucenjejezika-2022-0147/internal/validator"
)

type courseService struct {
	repo      repositories.Repository
	db        *gorm.DB
	logger    *slog.Logger
	validator *validator.Validator
}

func NewCourseService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, validator *validator.Validator) CourseService {
	return &courseService{
		repo:      repo,
		db:        db,
		logger:    logger,
		validator: validator,
	}
}

// ===== READ OPERATIONS =====

func (s *courseService) List(ctx context.Context) ([]*models.Course, error) {
	courses, err := s.repo.Course().List(ctx, nil, repositories.CourseFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	return courses, nil
}

func (s *courseService) GetByID(ctx context.Context, id uint) (*models.Course, error) {
	course, err := s.repo.Course().GetByID(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}
	return course, nil
}

// ListByTeacher returns a teacher's courses. Admins may ask for any teacher,
// teachers only for themselves.
func (s *courseService) ListByTeacher(ctx context.Context, actor *models.User, teacherID uint) (*TeacherCoursesResponse, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}

	var teacher *models.User
	switch actor.Role {
	case models.RoleAdmin:
		user, err := s.repo.User().GetByID(ctx, nil, teacherID)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				return nil, ErrTeacherNotFound
			}
			return nil, fmt.Errorf("failed to get teacher: %w", err)
		}
		if !user.IsTeacher() {
			return nil, ErrTeacherNotFound
		}
		teacher = user
	case models.RoleTeacher:
		if actor.ID != teacherID {
			return nil, NewPermissionError(actor.ID, teacherID, "teacher_courses", "list", "You can only access your own courses")
		}
		teacher = actor
	default:
		return nil, NewPermissionError(actor.ID, teacherID, "teacher_courses", "list", "Only teachers or admins can access this resource")
	}

	courses, err := s.repo.Course().List(ctx, nil, repositories.CourseFilters{TeacherID: &teacher.ID})
	if err != nil {
		return nil, fmt.Errorf("failed to list teacher courses: %w", err)
	}
	if courses == nil {
		courses = make([]*models.Course, 0)
	}

	return &TeacherCoursesResponse{
		Teacher: teacher.Summary(),
		Courses: courses,
	}, nil
}

// ===== WRITE OPERATIONS =====

func (s *courseService) Create(ctx context.Context, actor *models.User, req *CreateCourseRequest) (*models.Course, error) {
	if err := requireAdmin(actor, "course", "create", "Only admins can create courses"); err != nil {
		return nil, err
	}

	var course *models.Course
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.validator.Validate(req); err != nil {
			return err
		}
		if err := s.checkReferences(ctx, tx, *req.LanguageID, req.TeacherID); err != nil {
			return err
		}

		isActive := true
		if req.IsActive != nil {
			isActive = *req.IsActive
		}

		created := &models.Course{
			Title:      strings.TrimSpace(req.Title),
			LanguageID: *req.LanguageID,
			Level:      req.Level,
			TeacherID:  req.TeacherID,
			IsActive:   isActive,
		}
		if err := s.repo.Course().Create(ctx, tx, created); err != nil {
			return err
		}

		var err error
		course, err = s.repo.Course().GetByID(ctx, tx, created.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Course created", "course_id", course.ID, "admin_id", actor.ID)
	return course, nil
}

func (s *courseService) Update(ctx context.Context, actor *models.User, id uint, req *UpdateCourseRequest) (*models.Course, error) {
	if err := requireAdmin(actor, "course", "update", "Only admins can update courses"); err != nil {
		return nil, err
	}

	var course *models.Course
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := s.repo.Course().GetByID(ctx, tx, id)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				return ErrCourseNotFound
			}
			return fmt.Errorf("failed to get course: %w", err)
		}

		if err := s.validator.Validate(req); err != nil {
			return err
		}

		languageID := current.LanguageID
		if req.LanguageID != nil {
			languageID = *req.LanguageID
		}
		teacherID := current.TeacherID
		if req.TeacherID.Set {
			teacherID = req.TeacherID.Value
		}

		var checkTeacher *uint
		if req.TeacherID.Set {
			checkTeacher = teacherID
		}
		if err := s.checkReferences(ctx, tx, languageID, checkTeacher); err != nil {
			return err
		}

		if req.Title != nil {
			current.Title = strings.TrimSpace(*req.Title)
		}
		if req.Level != nil {
			current.Level = *req.Level
		}
		if req.IsActive != nil {
			current.IsActive = *req.IsActive
		}
		current.LanguageID = languageID
		current.TeacherID = teacherID
		current.Language = nil

		if err := s.repo.Course().Update(ctx, tx, current); err != nil {
			return err
		}

		course, err = s.repo.Course().GetByID(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Course updated", "course_id", course.ID, "admin_id", actor.ID)
	return course, nil
}

// Delete removes the course with its lessons and enrollments.
func (s *courseService) Delete(ctx context.Context, actor *models.User, id uint) error {
	if err := requireAdmin(actor, "course", "delete", "Only admins can delete courses"); err != nil {
		return err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.repo.Course().GetByID(ctx, tx, id); err != nil {
			if repositories.IsNotFoundError(err) {
				return ErrCourseNotFound
			}
			return fmt.Errorf("failed to get course: %w", err)
		}

		if err := s.repo.Lesson().DeleteByCourse(ctx, tx, id); err != nil {
			return err
		}
		if err := s.repo.Enrollment().DeleteByCourse(ctx, tx, id); err != nil {
			return err
		}
		return s.repo.Course().Delete(ctx, tx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("Course deleted", "course_id", id, "admin_id", actor.ID)
	return nil
}

// ===== HELPERS =====

// checkReferences verifies the language exists and, when given, that the
// teacher id belongs to a teacher.
func (s *courseService) checkReferences(ctx context.Context, tx *gorm.DB, languageID uint, teacherID *uint) error {
	var problems ValidationErrors

	exists, err := s.repo.Language().Exists(ctx, tx, languageID)
	if err != nil {
		return fmt.Errorf("failed to check language: %w", err)
	}
	if !exists {
		problems = append(problems, validator.NewValidationError("language_id", "The selected language id is invalid.", languageID))
	}

	if teacherID != nil {
		isTeacher, err := s.repo.User().HasRole(ctx, tx, *teacherID, models.RoleTeacher)
		if err != nil {
			return fmt.Errorf("failed to check teacher: %w", err)
		}
		if !isTeacher {
			problems = append(problems, validator.NewValidationError("teacher_id", "The selected teacher id is invalid.", *teacherID))
		}
	}

	if len(problems) > 0 {
		return problems
	}
	return nil
}
