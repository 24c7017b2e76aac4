package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/elab-development/internet-tehnologije-2025-vebaplikacijazaucenjejezika-2022-0147/internal/services"
	"github.com/elab-development/internet-tehnologije-2025-vebaplikacijazaucenjejezika-2022-0147/internal/utils"
)

type EnrollmentHandler struct {
	BaseHandler
	service services.EnrollmentService
}

func NewEnrollmentHandler(service services.EnrollmentService, logger utils.Logger) *EnrollmentHandler {
	return &EnrollmentHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ListEnrollments returns the enrollments visible to the caller
// @Summary List enrollments
// @Description Admins see every enrollment, teachers those of their courses, students their own
// @Tags enrollments
// @Security BearerAuth
// @Produce json
// @Param course_id query int false "Course filter"
// @Param student_id query int false "Student filter"
// @Param status query []string false "active, completed, cancelled (repeated or comma separated)"
// @Param search query string false "Student name or email, course title"
// @Param page query int false "Page number (default: 1)"
// @Param per_page query int false "Page size (default: 15, max: 100)"
// @Success 200 {object} services.EnrollmentListResponse
// @Router /enrollments [get]
func (h *EnrollmentHandler) ListEnrollments(c *gin.Context) {
	h.LogRequest(c, "Listing enrollments")

	params, ok := h.parseEnrollmentParams(c)
	if !ok {
		return
	}

	resp, err := h.service.List(c.Request.Context(), CurrentUser(c), params)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// CreateEnrollment enrolls the calling student in a course
// @Summary Enroll
// @Tags enrollments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body services.CreateEnrollmentRequest true "Course to join"
// @Success 201 {object} map[string]interface{}
// @Failure 403 {object} map[string]string "Only students can enroll in courses"
// @Failure 409 {object} map[string]string "Already enrolled"
// @Router /enrollments [post]
func (h *EnrollmentHandler) CreateEnrollment(c *gin.Context) {
	h.LogRequest(c, "Creating enrollment")

	var req services.CreateEnrollmentRequest
	if !h.bindJSON(c, &req) {
		return
	}

	enrollment, err := h.service.Create(c.Request.Context(), CurrentUser(c), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Enrolled successfully",
		"enrollment": enrollment,
	})
}

func (h *EnrollmentHandler) UpdateEnrollment(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id", services.ErrEnrollmentNotFound)
	if !ok {
		return
	}

	h.LogRequest(c, "Updating enrollment", "enrollment_id", id)

	var req services.UpdateEnrollmentRequest
	if !h.bindJSON(c, &req) {
		return
	}

	enrollment, err := h.service.UpdateStatus(c.Request.Context(), CurrentUser(c), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Enrollment updated successfully",
		"enrollment": enrollment,
	})
}

// GetStudentEnrollments lists one student's enrollments (admin only)
// @Summary Student enrollments
// @Tags enrollments
// @Security BearerAuth
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} services.StudentEnrollmentsResponse
// @Failure 404 {object} map[string]string "Student not found"
// @Router /student/{id}/enrollments [get]
func (h *EnrollmentHandler) GetStudentEnrollments(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id", services.ErrStudentNotFound)
	if !ok {
		return
	}

	h.LogRequest(c, "Getting student enrollments", "student_id", id)

	resp, err := h.service.ListByStudent(c.Request.Context(), CurrentUser(c), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ===== HELPER METHODS =====

func (h *EnrollmentHandler) parseEnrollmentParams(c *gin.Context) (services.EnrollmentListParams, bool) {
	params := services.EnrollmentListParams{
		Search:  strings.TrimSpace(c.Query("search")),
		Page:    queryInt(c, "page"),
		PerPage: queryInt(c, "per_page"),
	}

	var ok bool
	if params.CourseID, ok = queryID(c, "course_id"); !ok {
		invalidQuery(c, "course_id", "The course id must be an integer.")
		return params, false
	}
	if params.StudentID, ok = queryID(c, "student_id"); !ok {
		invalidQuery(c, "student_id", "The student id must be an integer.")
		return params, false
	}

	statuses, invalid := queryStatuses(c)
	if len(invalid) > 0 {
		invalidQuery(c, "status", "The selected status is invalid.")
		return params, false
	}
	params.Statuses = statuses

	return params, true
}
