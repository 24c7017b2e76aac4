package services

import (
	"errors"
	"log/slog"

	"github.com/elab-development/internet-tehnologije-2025-vebaplikacijazaucenjejezika-2022-0147/internal/validator"
)

var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email has already been taken")
	ErrSSODisabled        = errors.New("single sign-on is not configured")

	ErrUserNotFound    = errors.New("user not found")
	ErrTeacherNotFound = errors.New("teacher not found")
	ErrStudentNotFound = errors.New("student not found")

	ErrLanguageNotFound = errors.New("language not found")
	ErrLanguageInUse    = errors.New("language is used by existing courses")
	ErrCourseNotFound   = errors.New("course not found")
	ErrNoEditableFields = errors.New("no editable fields provided")

	ErrLessonNotFound = errors.New("lesson not found")

	ErrEnrollmentNotFound  = errors.New("enrollment not found")
	ErrDuplicateEnrollment = errors.New("student is already enrolled in this course")
)

type ValidationErrors = validator.ValidationErrors

// PermissionError is a refused action. Message is safe to show to the caller.
type PermissionError struct {
	UserID     uint
	ResourceID uint
	Resource   string
	Action     string
	Message    string
}

func NewPermissionError(userID, resourceID uint, resource, action, message string) *PermissionError {
	return &PermissionError{
		UserID:     userID,
		ResourceID: resourceID,
		Resource:   resource,
		Action:     action,
		Message:    message,
	}
}

func (e *PermissionError) Error() string {
	return e.Message
}

func (e *PermissionError) Unwrap() error {
	return ErrForbidden
}

func (e *PermissionError) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("user_id", uint64(e.UserID)),
		slog.String("resource", e.Resource),
		slog.Uint64("resource_id", uint64(e.ResourceID)),
		slog.String("action", e.Action),
	)
}

// validationError wraps a single field problem found outside struct tags.
func validationError(field, message string, value interface{}) error {
	return ValidationErrors{validator.NewValidationError(field, message, value)}
}
