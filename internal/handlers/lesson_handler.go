package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/elab-development/internet-tehnologije-2025-vebaplikacijazaucenjejezika-2022-0147/internal/services"
	"github.com/elab-development/internet-tehnologije-2025-vebaplikacijazaucenjejezika-2022-0147/internal/utils"
)

type LessonHandler struct {
	BaseHandler
	service services.LessonService
}

func NewLessonHandler(service services.LessonService, logger utils.Logger) *LessonHandler {
	return &LessonHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ListLessons returns one page of lessons
// @Summary List lessons
// @Tags lessons
// @Security BearerAuth
// @Produce json
// @Param course_id query int false "Course filter"
// @Param teacher_id query int false "Teacher filter"
// @Param search query string false "Title search"
// @Param sort_by query string false "starts_at, ends_at, title or created_at (default: starts_at)"
// @Param sort_dir query string false "asc or desc (default: asc)"
// @Param page query int false "Page number (default: 1)"
// @Param per_page query int false "Page size (default: 10, max: 100)"
// @Success 200 {object} services.LessonListResponse
// @Router /lessons [get]
func (h *LessonHandler) ListLessons(c *gin.Context) {
	h.LogRequest(c, "Listing lessons")

	params, ok := h.parseLessonParams(c)
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

func (h *LessonHandler) GetLesson(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id", services.ErrLessonNotFound)
	if !ok {
		return
	}

	h.LogRequest(c, "Getting lesson", "lesson_id", id)

	lesson, err := h.service.GetByID(c.Request.Context(), CurrentUser(c), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"lesson": lesson})
}

// CreateLesson schedules a lesson in a course the caller teaches
// @Summary Create lesson
// @Tags lessons
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body services.CreateLessonRequest true "Lesson"
// @Success 201 {object} map[string]interface{}
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 422 {object} map[string][]string "Validation failed"
// @Router /lessons [post]
func (h *LessonHandler) CreateLesson(c *gin.Context) {
	h.LogRequest(c, "Creating lesson")

	var req services.CreateLessonRequest
	if !h.bindJSON(c, &req) {
		return
	}

	lesson, err := h.service.Create(c.Request.Context(), CurrentUser(c), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Lesson created successfully",
		"lesson":  lesson,
	})
}

func (h *LessonHandler) UpdateLesson(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id", services.ErrLessonNotFound)
	if !ok {
		return
	}

	h.LogRequest(c, "Updating lesson", "lesson_id", id)

	var req services.UpdateLessonRequest
	if !h.bindJSON(c, &req) {
		return
	}

	lesson, err := h.service.Update(c.Request.Context(), CurrentUser(c), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Lesson updated successfully",
		"lesson":  lesson,
	})
}

func (h *LessonHandler) DeleteLesson(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id", services.ErrLessonNotFound)
	if !ok {
		return
	}

	h.LogRequest(c, "Deleting lesson", "lesson_id", id)

	if err := h.service.Delete(c.Request.Context(), CurrentUser(c), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Lesson deleted successfully"})
}

// ===== HELPER METHODS =====

func (h *LessonHandler) parseLessonParams(c *gin.Context) (services.LessonListParams, bool) {
	params := services.LessonListParams{
		Search:  strings.TrimSpace(c.Query("search")),
		SortBy:  c.Query("sort_by"),
		SortDir: strings.ToLower(c.Query("sort_dir")),
		Page:    queryInt(c, "page"),
		PerPage: queryInt(c, "per_page"),
	}

	var ok bool
	if params.CourseID, ok = queryID(c, "course_id"); !ok {
		invalidQuery(c, "course_id", "The course id must be an integer.")
		return params, false
	}
	if params.TeacherID, ok = queryID(c, "teacher_id"); !ok {
		invalidQuery(c, "teacher_id", "The teacher id must be an integer.")
		return params, false
	}

	return params, true
}
