package validator

import (
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/elab-development/internet-tehnologije-2025-vebaplikacijazaucenjejezika-2022-0147/internal/models"
)

var langCodePattern = regexp.MustCompile(`^[a-zA-Z]{2,3}(-[a-zA-Z]{2,4})?$`)

// BusinessValidator holds rules that need more than struct tags.
type BusinessValidator struct {
	validate *validator.Validate
}

func newBusinessValidator(validate *validator.Validate) *BusinessValidator {
	bv := &BusinessValidator{validate: validate}
	bv.registerBusinessRules()
	return bv
}

// registerBusinessRules registers the custom tags used by request DTOs
func (bv *BusinessValidator) registerBusinessRules() {
	bv.validate.RegisterValidation("cefr_level", func(fl validator.FieldLevel) bool {
		return models.CEFRLevel(fl.Field().String()).IsValid()
	})

	bv.validate.RegisterValidation("enrollment_status", func(fl validator.FieldLevel) bool {
		return models.EnrollmentStatus(fl.Field().String()).IsValid()
	})

	// admin accounts are never self-registered
	bv.validate.RegisterValidation("registrable_role", func(fl validator.FieldLevel) bool {
		role := models.UserRole(fl.Field().String())
		return role == models.RoleStudent || role == models.RoleTeacher
	})

	// rejects values that are empty once surrounding whitespace is trimmed
	bv.validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	bv.validate.RegisterValidation("lang_code", func(fl validator.FieldLevel) bool {
		return langCodePattern.MatchString(fl.Field().String())
	})
}

// ValidateLessonSchedule checks that an end time, when present, follows the start.
func (bv *BusinessValidator) ValidateLessonSchedule(startsAt time.Time, endsAt *time.Time) ValidationErrors {
	var errors ValidationErrors

	if startsAt.IsZero() {
		errors = append(errors, NewValidationError("starts_at", "The starts at field is required.", nil))
	}
	if endsAt != nil && !endsAt.After(startsAt) {
		errors = append(errors, NewValidationError("ends_at", "The ends at field must be a date after starts at.", endsAt))
	}

	return errors
}

// ValidateLanguagePair rejects translating a language into itself.
func (bv *BusinessValidator) ValidateLanguagePair(source, target string) ValidationErrors {
	if strings.EqualFold(source, target) {
		return ValidationErrors{NewValidationError("target", "The target language must differ from the source language.", target)}
	}
	return nil
}
