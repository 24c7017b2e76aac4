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

type lessonService struct {
	repo      repositories.Repository
	db        *gorm.DB
	logger    *slog.Logger
	validator *validator.Validator
}

func NewLessonService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, validator *validator.Validator) LessonService {
	return &lessonService{
		repo:      repo,
		db:        db,
		logger:    logger,
		validator: validator,
	}
}

func (s *lessonService) List(ctx context.Context, actor *models.User, params LessonListParams) (*LessonListResponse, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}

	page, perPage, limit, offset := pageBounds(params.Page, params.PerPage, DefaultLessonsPerPage)

	lessons, total, err := s.repo.Lesson().List(ctx, nil, repositories.LessonFilters{
		CourseID:  params.CourseID,
		TeacherID: params.TeacherID,
		Search:    params.Search,
		SortBy:    params.SortBy,
		SortDir:   params.SortDir,
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list lessons: %w", err)
	}
	if lessons == nil {
		lessons = make([]*models.Lesson, 0)
	}

	return &LessonListResponse{
		Lessons: lessons,
		Meta:    newPageMeta(page, perPage, total),
	}, nil
}

func (s *lessonService) GetByID(ctx context.Context, actor *models.User, id uint) (*models.Lesson, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}

	lesson, err := s.repo.Lesson().GetByID(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrLessonNotFound
		}
		return nil, fmt.Errorf("failed to get lesson: %w", err)
	}
	return lesson, nil
}

func (s *lessonService) Create(ctx context.Context, actor *models.User, req *CreateLessonRequest) (*models.Lesson, error) {
	if err := s.requireTeacher(actor, 0, "create"); err != nil {
		return nil, err
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	if errs := s.validator.GetBusinessValidator().ValidateLessonSchedule(req.StartsAt.Time, req.EndsAt.Ptr()); len(errs) > 0 {
		return nil, errs
	}

	lesson := &models.Lesson{
		CourseID:  *req.CourseID,
		TeacherID: actor.ID,
		Title:     strings.TrimSpace(req.Title),
		StartsAt:  req.StartsAt.Time,
		EndsAt:    req.EndsAt.Ptr(),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.checkCourseOwnership(ctx, tx, actor, lesson.CourseID); err != nil {
			return err
		}
		return s.repo.Lesson().Create(ctx, tx, lesson)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Lesson created", "lesson_id", lesson.ID, "course_id", lesson.CourseID, "teacher_id", actor.ID)
	return lesson, nil
}

func (s *lessonService) Update(ctx context.Context, actor *models.User, id uint, req *UpdateLessonRequest) (*models.Lesson, error) {
	if err := s.requireTeacher(actor, id, "update"); err != nil {
		return nil, err
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	var lesson *models.Lesson
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		lesson, err = s.loadOwned(ctx, tx, actor, id, "update")
		if err != nil {
			return err
		}

		if req.CourseID != nil && *req.CourseID != lesson.CourseID {
			if err := s.checkCourseOwnership(ctx, tx, actor, *req.CourseID); err != nil {
				return err
			}
			lesson.CourseID = *req.CourseID
		}
		if req.Title != nil {
			lesson.Title = strings.TrimSpace(*req.Title)
		}
		if req.StartsAt != nil {
			lesson.StartsAt = req.StartsAt.Time
		}
		if req.EndsAt.Set {
			lesson.EndsAt = req.EndsAt.Value.Ptr()
		}

		if errs := s.validator.GetBusinessValidator().ValidateLessonSchedule(lesson.StartsAt, lesson.EndsAt); len(errs) > 0 {
			return errs
		}

		return s.repo.Lesson().Update(ctx, tx, lesson)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Lesson updated", "lesson_id", lesson.ID, "teacher_id", actor.ID)
	return lesson, nil
}

func (s *lessonService) Delete(ctx context.Context, actor *models.User, id uint) error {
	if err := s.requireTeacher(actor, id, "delete"); err != nil {
		return err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.loadOwned(ctx, tx, actor, id, "delete"); err != nil {
			return err
		}
		return s.repo.Lesson().Delete(ctx, tx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("Lesson deleted", "lesson_id", id, "teacher_id", actor.ID)
	return nil
}

// ===== HELPERS =====

func (s *lessonService) requireTeacher(actor *models.User, lessonID uint, action string) error {
	if err := requireActor(actor); err != nil {
		return err
	}

	switch actor.Role {
	case models.RoleTeacher:
		return nil
	default:
		return NewPermissionError(actor.ID, lessonID, "lesson", action, "Only teachers can manage lessons")
	}
}

// checkCourseOwnership requires an existing course taught by the actor.
func (s *lessonService) checkCourseOwnership(ctx context.Context, tx *gorm.DB, actor *models.User, courseID uint) error {
	course, err := s.repo.Course().GetByID(ctx, tx, courseID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return validationError("course_id", "The selected course id is invalid.", courseID)
		}
		return fmt.Errorf("failed to get course: %w", err)
	}

	if !course.IsTaughtBy(actor.ID) {
		return NewPermissionError(actor.ID, courseID, "course", "manage_lessons", "You can only manage lessons of your own courses")
	}
	return nil
}

func (s *lessonService) loadOwned(ctx context.Context, tx *gorm.DB, actor *models.User, id uint, action string) (*models.Lesson, error) {
	lesson, err := s.repo.Lesson().GetByID(ctx, tx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrLessonNotFound
		}
		return nil, fmt.Errorf("failed to get lesson: %w", err)
	}

	course, err := s.repo.Course().GetByID(ctx, tx, lesson.CourseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get lesson course: %w", err)
	}
	if !course.IsTaughtBy(actor.ID) {
		return nil, NewPermissionError(actor.ID, id, "lesson", action, "You can only manage lessons of your own courses")
	}

	return lesson, nil
}
