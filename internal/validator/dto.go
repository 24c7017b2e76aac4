package validator

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/elab-development/internet-tehnologije-2025-vebaplikacijazaucenjejezika-2022-0147/internal/models"
)

// ===== IDENTITY =====

type RegisterRequest struct {
	Name                 string          `json:"name" validate:"required,notblank,max=255"`
	Email                string          `json:"email" validate:"required,email,max=255"`
	Password             string          `json:"password" validate:"required,min=8,max=72"`
	PasswordConfirmation *string         `json:"password_confirmation" validate:"omitempty,eqfield=Password"`
	Role                 models.UserRole `json:"role" validate:"omitempty,registrable_role"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type SSOLoginRequest struct {
	Code  string `json:"code" validate:"required"`
	State string `json:"state"`
}

// ===== CATALOG =====

type LanguageCreateRequest struct {
	Name   string  `json:"name" validate:"required,notblank,max=80"`
	ImgURL *string `json:"img_url" validate:"omitempty,url,max=2048"`
	// ImgURLCamel accepts the camelCase key older clients send.
	ImgURLCamel *string `json:"imgUrl" validate:"omitempty,url,max=2048"`
}

func (r *LanguageCreateRequest) Image() *string {
	if r.ImgURL != nil {
		return r.ImgURL
	}
	return r.ImgURLCamel
}

type LanguageUpdateRequest struct {
	Name        *string `json:"name" validate:"omitempty,notblank,max=80"`
	ImgURL      *string `json:"img_url" validate:"omitempty,url,max=2048"`
	ImgURLCamel *string `json:"imgUrl" validate:"omitempty,url,max=2048"`
}

func (r *LanguageUpdateRequest) Image() *string {
	if r.ImgURL != nil {
		return r.ImgURL
	}
	return r.ImgURLCamel
}

// IsEmpty reports whether the payload carries no editable field.
func (r *LanguageUpdateRequest) IsEmpty() bool {
	return r.Name == nil && r.Image() == nil
}

type CourseCreateRequest struct {
	Title      string           `json:"title" validate:"required,notblank,max=255"`
	LanguageID *uint            `json:"language_id" validate:"required"`
	Level      models.CEFRLevel `json:"level" validate:"required,cefr_level"`
	TeacherID  *uint            `json:"teacher_id"`
	IsActive   *bool            `json:"is_active"`
}

type CourseUpdateRequest struct {
	Title      *string           `json:"title" validate:"omitempty,notblank,max=255"`
	LanguageID *uint             `json:"language_id"`
	Level      *models.CEFRLevel `json:"level" validate:"omitempty,cefr_level"`
	TeacherID  OptionalID        `json:"teacher_id"`
	IsActive   *bool             `json:"is_active"`
}

// OptionalID distinguishes an absent JSON key from an explicit null.
type OptionalID struct {
	Set   bool
	Value *uint
}

func (o *OptionalID) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}

	var id uint
	if err := json.Unmarshal(data, &id); err != nil {
		return fmt.Errorf("teacher_id must be an integer or null: %w", err)
	}
	o.Value = &id
	return nil
}

// ===== LESSONS =====

// DateTime accepts RFC 3339 as well as the shorter forms browsers send
// from datetime inputs. Values without a zone are read as UTC.
type DateTime struct {
	time.Time
}

var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

func (d *DateTime) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("datetime must be a string: %w", err)
	}
	raw = strings.TrimSpace(raw)

	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			d.Time = t.UTC()
			return nil
		}
	}
	return fmt.Errorf("invalid datetime %q", raw)
}

func (d *DateTime) Ptr() *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}

// OptionalDateTime distinguishes an absent JSON key from an explicit null.
type OptionalDateTime struct {
	Set   bool
	Value *DateTime
}

func (o *OptionalDateTime) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}

	var d DateTime
	if err := d.UnmarshalJSON(data); err != nil {
		return err
	}
	o.Value = &d
	return nil
}

type LessonCreateRequest struct {
	CourseID *uint     `json:"course_id" validate:"required"`
	Title    string    `json:"title" validate:"required,notblank,max=255"`
	StartsAt *DateTime `json:"starts_at" validate:"required"`
	EndsAt   *DateTime `json:"ends_at"`
}

type LessonUpdateRequest struct {
	CourseID *uint            `json:"course_id"`
	Title    *string          `json:"title" validate:"omitempty,notblank,max=255"`
	StartsAt *DateTime        `json:"starts_at"`
	EndsAt   OptionalDateTime `json:"ends_at"`
}

// ===== ENROLLMENTS =====

type EnrollmentCreateRequest struct {
	CourseID *uint `json:"course_id" validate:"required"`
}

type EnrollmentUpdateRequest struct {
	Status models.EnrollmentStatus `json:"status" validate:"required,enrollment_status"`
}

// ===== TRANSLATION =====

type TranslateRequest struct {
	Text   string `json:"q" form:"q" validate:"required,max=500"`
	Source string `json:"source" form:"source" validate:"required,lang_code"`
	Target string `json:"target" form:"target" validate:"required,lang_code"`
}
