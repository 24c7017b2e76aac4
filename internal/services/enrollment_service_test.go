package services

import (
	"context"
	"errors"
	"testing"

	"github.com/elab-development/internet-tehnologije-2025-vebaplikacijazaucenjejezika-2022-0147/internal/models"
)

func TestEnrollmentService_Create(t *testing.T) {
	env := newTestEnv(t)
	enrollments := env.services.Enrollment()
	ctx := context.Background()
	language := env.createLanguage(t, "Polish")
	course := env.createCourse(t, "Polish A1", language.ID, env.teacher)

	for _, actor := range []*models.User{env.admin, env.teacher} {
		_, err := enrollments.Create(ctx, actor, &CreateEnrollmentRequest{CourseID: &course.ID})
		wantPermission(t, err, "Only students can enroll in courses")
	}

	_, err := enrollments.Create(ctx, env.student, &CreateEnrollmentRequest{})
	wantFieldError(t, err, "course_id")
	_, err = enrollments.Create(ctx, env.student, &CreateEnrollmentRequest{CourseID: ptr(uint(999))})
	wantFieldError(t, err, "course_id")

	first, err := enrollments.Create(ctx, env.student, &CreateEnrollmentRequest{CourseID: &course.ID})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if first.Status != models.EnrollmentActive || first.CourseTitle != "Polish A1" || first.StudentName != "Sam Student" {
		t.Errorf("Create() = %+v", first)
	}

	if _, err := enrollments.Create(ctx, env.student, &CreateEnrollmentRequest{CourseID: &course.ID}); err != nil {
		t.Fatalf("duplicate Create() error = %v", err)
	}
	if n := env.count(t, &models.Enrollment{}); n != 2 {
		t.Errorf("enrollments = %d, want 2 rows for the duplicate", n)
	}
}

func TestEnrollmentService_UniqueGuard(t *testing.T) {
	env := newTestEnv(t, withUniqueEnrollments())
	enrollments := env.services.Enrollment()
	ctx := context.Background()
	language := env.createLanguage(t, "Czech")
	course := env.createCourse(t, "Czech A1", language.ID, nil)

	if _, err := enrollments.Create(ctx, env.student, &CreateEnrollmentRequest{CourseID: &course.ID}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := enrollments.Create(ctx, env.student, &CreateEnrollmentRequest{CourseID: &course.ID}); !errors.Is(err, ErrDuplicateEnrollment) {
		t.Fatalf("duplicate Create() error = %v, want ErrDuplicateEnrollment", err)
	}
	if _, err := enrollments.Create(ctx, env.otherStudent, &CreateEnrollmentRequest{CourseID: &course.ID}); err != nil {
		t.Fatalf("other student Create() error = %v", err)
	}
}

func TestEnrollmentService_ListScopes(t *testing.T) {
	env := newTestEnv(t)
	enrollments := env.services.Enrollment()
	ctx := context.Background()
	language := env.createLanguage(t, "Turkish")
	mine := env.createCourse(t, "Turkish A1", language.ID, env.teacher)
	theirs := env.createCourse(t, "Turkish B1", language.ID, env.otherTeacher)

	enroll := func(student *models.User, course *models.Course) *models.EnrollmentDetail {
		t.Helper()
		detail, err := enrollments.Create(ctx, student, &CreateEnrollmentRequest{CourseID: &course.ID})
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		return detail
	}
	enroll(env.student, mine)
	enroll(env.student, theirs)
	cancelled := enroll(env.otherStudent, mine)
	if _, err := enrollments.UpdateStatus(ctx, env.admin, cancelled.ID, &UpdateEnrollmentRequest{Status: models.EnrollmentCancelled}); err != nil {
		t.Fatalf("UpdateStatus() error = %v", err)
	}

	tests := []struct {
		name   string
		actor  *models.User
		params EnrollmentListParams
		want   int64
	}{
		{name: "admin sees all", actor: env.admin, want: 3},
		{name: "teacher sees own courses", actor: env.teacher, want: 2},
		{name: "student sees own", actor: env.student, want: 2},
		{name: "student cannot widen scope", actor: env.otherStudent, params: EnrollmentListParams{StudentID: &env.student.ID}, want: 1},
		{name: "status filter", actor: env.admin, params: EnrollmentListParams{Statuses: []models.EnrollmentStatus{models.EnrollmentCancelled}}, want: 1},
		{name: "course filter", actor: env.admin, params: EnrollmentListParams{CourseID: &theirs.ID}, want: 1},
		{name: "search by student email", actor: env.admin, params: EnrollmentListParams{Search: "SUE@"}, want: 1},
		{name: "search by course title", actor: env.admin, params: EnrollmentListParams{Search: "b1"}, want: 1},
		{name: "percent matches literally", actor: env.admin, params: EnrollmentListParams{Search: "%"}, want: 0},
		{name: "underscore matches literally", actor: env.admin, params: EnrollmentListParams{Search: "s_e@"}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := enrollments.List(ctx, tt.actor, tt.params)
			if err != nil {
				t.Fatalf("List() error = %v", err)
			}
			if resp.Meta.Total != tt.want || int64(len(resp.Enrollments)) != tt.want {
				t.Errorf("List() total = %d len = %d, want %d", resp.Meta.Total, len(resp.Enrollments), tt.want)
			}
			if resp.Meta.PerPage != DefaultEnrollmentsPerPage {
				t.Errorf("per_page = %d", resp.Meta.PerPage)
			}
		})
	}
}

func TestEnrollmentService_UpdateStatus(t *testing.T) {
	env := newTestEnv(t)
	enrollments := env.services.Enrollment()
	ctx := context.Background()
	language := env.createLanguage(t, "Finnish")
	course := env.createCourse(t, "Finnish A1", language.ID, env.teacher)

	enrollment, err := enrollments.Create(ctx, env.student, &CreateEnrollmentRequest{CourseID: &course.ID})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	_, err = enrollments.UpdateStatus(ctx, env.student, enrollment.ID, &UpdateEnrollmentRequest{Status: models.EnrollmentCompleted})
	wantPermission(t, err, "")
	_, err = enrollments.UpdateStatus(ctx, env.otherTeacher, enrollment.ID, &UpdateEnrollmentRequest{Status: models.EnrollmentCompleted})
	wantPermission(t, err, "")
	_, err = enrollments.UpdateStatus(ctx, env.teacher, enrollment.ID, &UpdateEnrollmentRequest{Status: "paused"})
	wantFieldError(t, err, "status")

	// any status may follow any other
	sequence := []struct {
		actor  *models.User
		status models.EnrollmentStatus
	}{
		{env.teacher, models.EnrollmentCompleted},
		{env.admin, models.EnrollmentActive},
		{env.teacher, models.EnrollmentCancelled},
		{env.admin, models.EnrollmentCompleted},
	}
	for _, step := range sequence {
		detail, err := enrollments.UpdateStatus(ctx, step.actor, enrollment.ID, &UpdateEnrollmentRequest{Status: step.status})
		if err != nil {
			t.Fatalf("UpdateStatus(%s) error = %v", step.status, err)
		}
		if detail.Status != step.status {
			t.Errorf("status = %s, want %s", detail.Status, step.status)
		}
	}

	if _, err := enrollments.UpdateStatus(ctx, env.admin, 999, &UpdateEnrollmentRequest{Status: models.EnrollmentActive}); !errors.Is(err, ErrEnrollmentNotFound) {
		t.Errorf("UpdateStatus() missing error = %v", err)
	}
}

func TestEnrollmentService_ListByStudent(t *testing.T) {
	env := newTestEnv(t)
	enrollments := env.services.Enrollment()
	ctx := context.Background()
	language := env.createLanguage(t, "Norwegian")
	course := env.createCourse(t, "Norwegian A1", language.ID, env.teacher)

	if _, err := enrollments.Create(ctx, env.student, &CreateEnrollmentRequest{CourseID: &course.ID}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	resp, err := enrollments.ListByStudent(ctx, env.admin, env.student.ID)
	if err != nil {
		t.Fatalf("ListByStudent() error = %v", err)
	}
	if resp.Student.Email != "sam@example.com" || len(resp.Enrollments) != 1 {
		t.Errorf("ListByStudent() = %+v", resp)
	}

	empty, err := enrollments.ListByStudent(ctx, env.admin, env.otherStudent.ID)
	if err != nil {
		t.Fatalf("ListByStudent() error = %v", err)
	}
	if empty.Enrollments == nil {
		t.Error("enrollments should be an empty slice, not nil")
	}

	if _, err := enrollments.ListByStudent(ctx, env.admin, env.teacher.ID); !errors.Is(err, ErrStudentNotFound) {
		t.Errorf("ListByStudent(teacher) error = %v", err)
	}
	_, err = enrollments.ListByStudent(ctx, env.teacher, env.student.ID)
	wantPermission(t, err, "Only admins can access this resource")
}
