package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/elab-development/internet-tehnologije-2025-vebaplikacijazaucenjejezika-2022-0147/internal/models"
	"github.com/elab-development/internet-tehnologije-2025-vebaplikacijazaucenjejezika-2022-0147/internal/validator"
)

func TestLanguageService_RoleGate(t *testing.T) {
	env := newTestEnv(t)
	languages := env.services.Language()
	ctx := context.Background()

	for _, actor := range []*models.User{env.teacher, env.student} {
		_, err := languages.Create(ctx, actor, &CreateLanguageRequest{Name: "German"})
		wantPermission(t, err, "Only admins can create languages")
	}
	if _, err := languages.Create(ctx, nil, &CreateLanguageRequest{Name: "German"}); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("Create() without actor error = %v", err)
	}
	if n := env.count(t, &models.Language{}); n != 0 {
		t.Errorf("languages = %d, want 0", n)
	}
}

func TestLanguageService_CRUD(t *testing.T) {
	env := newTestEnv(t)
	languages := env.services.Language()
	ctx := context.Background()

	german, err := languages.Create(ctx, env.admin, &CreateLanguageRequest{Name: " German ", ImgURLCamel: ptr("https://cdn.example.com/de.png")})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if german.Name != "German" || german.ImgURL == nil {
		t.Errorf("Create() = %+v", german)
	}

	_, err = languages.Create(ctx, env.admin, &CreateLanguageRequest{Name: "german"})
	wantFieldError(t, err, "name")
	_, err = languages.Create(ctx, env.admin, &CreateLanguageRequest{Name: "   "})
	wantFieldError(t, err, "name")

	french, err := languages.Create(ctx, env.admin, &CreateLanguageRequest{Name: "French"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if _, err := languages.Update(ctx, env.admin, french.ID, &UpdateLanguageRequest{}); !errors.Is(err, ErrNoEditableFields) {
		t.Errorf("Update() with empty payload error = %v", err)
	}
	_, err = languages.Update(ctx, env.admin, french.ID, &UpdateLanguageRequest{Name: ptr("German")})
	wantFieldError(t, err, "name")
	_, err = languages.Update(ctx, env.admin, french.ID, &UpdateLanguageRequest{Name: ptr("  ")})
	wantFieldError(t, err, "name")

	// renaming to its own name is not a conflict
	if _, err := languages.Update(ctx, env.admin, french.ID, &UpdateLanguageRequest{Name: ptr("FRENCH")}); err != nil {
		t.Errorf("Update() to same name error = %v", err)
	}
	if _, err := languages.Update(ctx, env.admin, 999, &UpdateLanguageRequest{Name: ptr("X")}); !errors.Is(err, ErrLanguageNotFound) {
		t.Errorf("Update() missing error = %v", err)
	}

	list, err := languages.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 2 || list[0].Name != "FRENCH" || list[1].Name != "German" {
		t.Errorf("List() order = %v, %v", list[0].Name, list[1].Name)
	}

	env.createCourse(t, "German A1", german.ID, nil)
	if err := languages.Delete(ctx, env.admin, german.ID); !errors.Is(err, ErrLanguageInUse) {
		t.Errorf("Delete() in use error = %v", err)
	}
	if err := languages.Delete(ctx, env.admin, french.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := languages.GetByID(ctx, french.ID); !errors.Is(err, ErrLanguageNotFound) {
		t.Errorf("GetByID() after delete error = %v", err)
	}
}

func TestCourseService_CreateValidation(t *testing.T) {
	env := newTestEnv(t)
	courses := env.services.Course()
	ctx := context.Background()
	spanish := env.createLanguage(t, "Spanish")

	tests := []struct {
		name      string
		actor     *models.User
		req       CreateCourseRequest
		wantField string
		wantPerm  string
	}{
		{
			name:     "teacher cannot create",
			actor:    env.teacher,
			req:      CreateCourseRequest{Title: "X", LanguageID: &spanish.ID, Level: models.LevelA1},
			wantPerm: "Only admins can create courses",
		},
		{
			name:      "blank title",
			actor:     env.admin,
			req:       CreateCourseRequest{Title: "   ", LanguageID: &spanish.ID, Level: models.LevelA1},
			wantField: "title",
		},
		{
			name:      "missing language id",
			actor:     env.admin,
			req:       CreateCourseRequest{Title: "No language", Level: models.LevelA1},
			wantField: "language_id",
		},
		{
			name:      "unknown language id",
			actor:     env.admin,
			req:       CreateCourseRequest{Title: "Ghost", LanguageID: ptr(uint(999)), Level: models.LevelA1},
			wantField: "language_id",
		},
		{
			name:      "invalid level",
			actor:     env.admin,
			req:       CreateCourseRequest{Title: "Bad level", LanguageID: &spanish.ID, Level: "D1"},
			wantField: "level",
		},
		{
			name:      "teacher id of a student",
			actor:     env.admin,
			req:       CreateCourseRequest{Title: "Wrong teacher", LanguageID: &spanish.ID, Level: models.LevelB1, TeacherID: &env.student.ID},
			wantField: "teacher_id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := courses.Create(ctx, tt.actor, &tt.req)
			if tt.wantPerm != "" {
				wantPermission(t, err, tt.wantPerm)
			} else {
				wantFieldError(t, err, tt.wantField)
			}
		})
	}

	if n := env.count(t, &models.Course{}); n != 0 {
		t.Errorf("courses = %d, want nothing persisted", n)
	}
}

func TestCourseService_RoundTrip(t *testing.T) {
	env := newTestEnv(t)
	courses := env.services.Course()
	ctx := context.Background()
	italian := env.createLanguage(t, "Italian")

	created, err := courses.Create(ctx, env.admin, &CreateCourseRequest{
		Title:      "Italian for travellers",
		LanguageID: &italian.ID,
		Level:      models.LevelA2,
		TeacherID:  &env.teacher.ID,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if !created.IsActive {
		t.Error("is_active should default to true")
	}

	got, err := courses.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Title != "Italian for travellers" || got.Level != models.LevelA2 || got.Language == nil || got.Language.Name != "Italian" {
		t.Errorf("GetByID() = %+v", got)
	}

	inactive, err := courses.Create(ctx, env.admin, &CreateCourseRequest{
		Title: "Archived Italian", LanguageID: &italian.ID, Level: models.LevelC2, IsActive: ptr(false),
	})
	if err != nil {
		t.Fatalf("Create() inactive error = %v", err)
	}
	if inactive.IsActive {
		t.Error("explicit is_active false was not kept")
	}

	list, err := courses.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 2 || list[0].ID != created.ID {
		t.Errorf("List() should put active courses first")
	}
}

func TestCourseService_Update(t *testing.T) {
	env := newTestEnv(t)
	courses := env.services.Course()
	ctx := context.Background()
	language := env.createLanguage(t, "Portuguese")
	course := env.createCourse(t, "Portuguese A1", language.ID, env.teacher)

	_, err := courses.Update(ctx, env.admin, course.ID, &UpdateCourseRequest{Title: ptr(" ")})
	wantFieldError(t, err, "title")

	var unassign UpdateCourseRequest
	if err := unassign.TeacherID.UnmarshalJSON([]byte("null")); err != nil {
		t.Fatalf("UnmarshalJSON() error = %v", err)
	}
	updated, err := courses.Update(ctx, env.admin, course.ID, &unassign)
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.TeacherID != nil {
		t.Errorf("teacher_id = %v, want nil", *updated.TeacherID)
	}

	updated, err = courses.Update(ctx, env.admin, course.ID, &UpdateCourseRequest{
		Title:     ptr("Portuguese A2"),
		Level:     ptr(models.LevelA2),
		TeacherID: validator.OptionalID{Set: true, Value: &env.otherTeacher.ID},
		IsActive:  ptr(false),
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Title != "Portuguese A2" || updated.Level != models.LevelA2 || updated.IsActive || !updated.IsTaughtBy(env.otherTeacher.ID) {
		t.Errorf("Update() = %+v", updated)
	}

	_, err = courses.Update(ctx, env.student, course.ID, &UpdateCourseRequest{Title: ptr("x")})
	wantPermission(t, err, "Only admins can update courses")

	if _, err := courses.Update(ctx, env.admin, 999, &UpdateCourseRequest{Title: ptr("x")}); !errors.Is(err, ErrCourseNotFound) {
		t.Errorf("Update() missing error = %v", err)
	}
}

func TestCourseService_DeleteCascades(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	language := env.createLanguage(t, "Dutch")
	course := env.createCourse(t, "Dutch A1", language.ID, env.teacher)
	other := env.createCourse(t, "Dutch B1", language.ID, env.teacher)

	for _, c := range []*models.Course{course, other} {
		lesson := &models.Lesson{CourseID: c.ID, TeacherID: env.teacher.ID, Title: "Intro", StartsAt: time.Now().UTC()}
		if err := env.repo.Lesson().Create(ctx, nil, lesson); err != nil {
			t.Fatalf("create lesson: %v", err)
		}
		enrollment := &models.Enrollment{CourseID: c.ID, StudentID: env.student.ID, Status: models.EnrollmentActive}
		if err := env.repo.Enrollment().Create(ctx, nil, enrollment); err != nil {
			t.Fatalf("create enrollment: %v", err)
		}
	}

	err := env.services.Course().Delete(ctx, env.teacher, course.ID)
	wantPermission(t, err, "Only admins can delete courses")

	if err := env.services.Course().Delete(ctx, env.admin, course.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if n := env.count(t, &models.Lesson{}); n != 1 {
		t.Errorf("lessons = %d, want 1", n)
	}
	if n := env.count(t, &models.Enrollment{}); n != 1 {
		t.Errorf("enrollments = %d, want 1", n)
	}
	if err := env.services.Course().Delete(ctx, env.admin, course.ID); !errors.Is(err, ErrCourseNotFound) {
		t.Errorf("second Delete() error = %v", err)
	}
}

func TestCourseService_ListByTeacher(t *testing.T) {
	env := newTestEnv(t)
	courses := env.services.Course()
	ctx := context.Background()
	language := env.createLanguage(t, "Greek")
	env.createCourse(t, "Greek A1", language.ID, env.teacher)
	env.createCourse(t, "Greek B2", language.ID, env.otherTeacher)

	tests := []struct {
		name      string
		actor     *models.User
		teacherID uint
		wantCount int
		wantErr   error
		wantPerm  string
	}{
		{name: "admin any teacher", actor: env.admin, teacherID: env.teacher.ID, wantCount: 1},
		{name: "admin non teacher id", actor: env.admin, teacherID: env.student.ID, wantErr: ErrTeacherNotFound},
		{name: "admin unknown id", actor: env.admin, teacherID: 999, wantErr: ErrTeacherNotFound},
		{name: "teacher self", actor: env.teacher, teacherID: env.teacher.ID, wantCount: 1},
		{name: "teacher other", actor: env.teacher, teacherID: env.otherTeacher.ID, wantPerm: "You can only access your own courses"},
		{name: "student", actor: env.student, teacherID: env.teacher.ID, wantPerm: "Only teachers or admins can access this resource"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := courses.ListByTeacher(ctx, tt.actor, tt.teacherID)
			switch {
			case tt.wantPerm != "":
				wantPermission(t, err, tt.wantPerm)
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ListByTeacher() error = %v, want %v", err, tt.wantErr)
				}
			default:
				if err != nil {
					t.Fatalf("ListByTeacher() error = %v", err)
				}
				if resp.Teacher.ID != tt.teacherID || len(resp.Courses) != tt.wantCount {
					t.Errorf("ListByTeacher() = teacher %d, %d courses", resp.Teacher.ID, len(resp.Courses))
				}
			}
		})
	}
}
