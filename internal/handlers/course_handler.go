package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/elab-development/internet-tehnologije-2025-vebaplikacijazaucenjejezika-2022-0147/internal/services"
	"github.com/elab-development/internet-tehnologije-2025-vebaplikacijazaucenjejezika-2022-0147/internal/utils"
)

type CourseHandler struct {
	BaseHandler
	service services.CourseService
}

func NewCourseHandler(service services.CourseService, logger utils.Logger) *CourseHandler {
	return &CourseHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ===== COURSE ENDPOINTS =====

// ListCourses returns every course, active ones first
// @Summary List courses
// @Tags courses
// @Produce json
// @Success 200 {object} map[string][]models.Course
// @Failure 404 {string} string "No courses found."
// @Router /courses [get]
func (h *CourseHandler) ListCourses(c *gin.Context) {
	h.LogRequest(c, "Listing courses")

	courses, err := h.service.List(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	if len(courses) == 0 {
		c.JSON(http.StatusNotFound, "No courses found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"courses": courses})
}

func (h *CourseHandler) GetCourse(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id", services.ErrCourseNotFound)
	if !ok {
		return
	}

	h.LogRequest(c, "Getting course", "course_id", id)

	course, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"course": course})
}

// CreateCourse adds a course (admin only)
// @Summary Create course
// @Tags courses
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body services.CreateCourseRequest true "Course"
// @Success 201 {object} map[string]interface{}
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 422 {object} map[string][]string "Validation failed"
// @Router /courses [post]
func (h *CourseHandler) CreateCourse(c *gin.Context) {
	h.LogRequest(c, "Creating course")

	var req services.CreateCourseRequest
	if !h.bindJSON(c, &req) {
		return
	}

	course, err := h.service.Create(c.Request.Context(), CurrentUser(c), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Course created successfully",
		"course":  course,
	})
}

// UpdateCourse applies a partial update; "teacher_id": null unassigns the teacher
// @Summary Update course
// @Tags courses
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Course ID"
// @Param request body services.UpdateCourseRequest true "Fields to change"
// @Success 200 {object} map[string]interface{}
// @Router /courses/{id} [put]
func (h *CourseHandler) UpdateCourse(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id", services.ErrCourseNotFound)
	if !ok {
		return
	}

	h.LogRequest(c, "Updating course", "course_id", id)

	var req services.UpdateCourseRequest
	if !h.bindJSON(c, &req) {
		return
	}

	course, err := h.service.Update(c.Request.Context(), CurrentUser(c), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Course updated successfully",
		"course":  course,
	})
}

func (h *CourseHandler) DeleteCourse(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id", services.ErrCourseNotFound)
	if !ok {
		return
	}

	h.LogRequest(c, "Deleting course", "course_id", id)

	if err := h.service.Delete(c.Request.Context(), CurrentUser(c), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Course deleted successfully"})
}

// GetTeacherCourses lists the courses assigned to one teacher
// @Summary Teacher courses
// @Tags courses
// @Security BearerAuth
// @Produce json
// @Param id path int true "Teacher ID"
// @Success 200 {object} services.TeacherCoursesResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Teacher not found"
// @Router /teacher/{id}/courses [get]
func (h *CourseHandler) GetTeacherCourses(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id", services.ErrTeacherNotFound)
	if !ok {
		return
	}

	h.LogRequest(c, "Getting teacher courses", "teacher_id", id)

	resp, err := h.service.ListByTeacher(c.Request.Context(), CurrentUser(c), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
