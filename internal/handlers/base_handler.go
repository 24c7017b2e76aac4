package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/elab-development/internet-tehnologije-2025-vebaplikacijazaucenjejezika-2022-0147/internal/models"
	"github.com/elab-development/internet-tehnologije-2025-vebaplikacijazaucenjejezika-2022-0147/internal/repositories"
	"github.com/elab-development/internet-tehnologije-2025-vebaplikacijazaucenjejezika-2022-0147/internal/services"
	"github.com/elab-development/internet-tehnologije-2025-vebaplikacijazaucenjejezika-2022-0147/internal/utils"
	"github.com/elab-development/internet-tehnologije-2025-vebaplikacijazaucenjejezika-2022-0147/internal/validator"
)

// BaseHandler carries what every handler shares: logging and error mapping.
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

func (h *BaseHandler) LogRequest(c *gin.Context, message string, args ...any) {
	logger := utils.GetLogger(c, h.logger)
	if user := CurrentUser(c); user != nil {
		args = append(args, "user_id", user.ID)
	}
	logger.Debug(message, args...)
}

func (h *BaseHandler) LogError(c *gin.Context, err error, message string, args ...any) {
	logger := utils.GetLogger(c, h.logger)
	args = append(args, "error", err)
	logger.Error(message, args...)
}

func errorBody(message string) gin.H {
	return gin.H{"error": message}
}

// notFoundMessages are the client-facing texts of the service not-found errors.
var notFoundMessages = []struct {
	err     error
	message string
}{
	{services.ErrUserNotFound, "User not found"},
	{services.ErrTeacherNotFound, "Teacher not found"},
	{services.ErrStudentNotFound, "Student not found"},
	{services.ErrLanguageNotFound, "Language not found"},
	{services.ErrCourseNotFound, "Course not found"},
	{services.ErrLessonNotFound, "Lesson not found"},
	{services.ErrEnrollmentNotFound, "Enrollment not found"},
}

// handleServiceError maps service errors to HTTP responses.
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	var validationErrs services.ValidationErrors
	if errors.As(err, &validationErrs) {
		c.JSON(http.StatusUnprocessableEntity, validationErrs.Fields())
		return
	}

	var permErr *services.PermissionError
	if errors.As(err, &permErr) {
		utils.GetLogger(c, h.logger).Warn("Permission denied", "permission", permErr)
		c.JSON(http.StatusForbidden, errorBody(permErr.Message))
		return
	}

	var upstreamErr *repositories.UpstreamError
	if errors.As(err, &upstreamErr) {
		status := upstreamErr.StatusCode
		if status < http.StatusBadRequest || status > 599 {
			status = http.StatusBadGateway
		}
		h.LogError(c, err, "Upstream provider failed", "provider", upstreamErr.Provider)
		c.JSON(status, errorBody(upstreamErr.Message))
		return
	}

	for _, nf := range notFoundMessages {
		if errors.Is(err, nf.err) {
			c.JSON(http.StatusNotFound, errorBody(nf.message))
			return
		}
	}

	switch {
	case errors.Is(err, services.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, errorBody("Unauthorized"))
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, errorBody("Invalid credentials"))
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, errorBody("Forbidden"))
	case errors.Is(err, services.ErrNoEditableFields):
		c.JSON(http.StatusUnprocessableEntity, errorBody("No editable fields provided"))
	case errors.Is(err, services.ErrEmailTaken):
		c.JSON(http.StatusConflict, errorBody("The email has already been taken."))
	case errors.Is(err, services.ErrDuplicateEnrollment):
		c.JSON(http.StatusConflict, errorBody("You are already enrolled in this course"))
	case errors.Is(err, services.ErrLanguageInUse):
		c.JSON(http.StatusConflict, errorBody("Language is used by existing courses"))
	case errors.Is(err, services.ErrSSODisabled):
		c.JSON(http.StatusNotImplemented, errorBody("Single sign-on is not configured"))
	default:
		h.LogError(c, err, "Unhandled service error")
		c.JSON(http.StatusInternalServerError, errorBody("Internal server error"))
	}
}

// bindJSON decodes the request body into req. An empty body leaves req
// untouched; malformed JSON is reported as a 422 on "request".
func (h *BaseHandler) bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusUnprocessableEntity, validator.ValidationErrors{
			validator.NewValidationError("request", "The request body is not valid JSON.", nil),
		}.Fields())
		return false
	}
	return true
}

// parseIDParam reads a positive integer path parameter. A malformed id
// cannot match any row, so it answers with notFound.
func (h *BaseHandler) parseIDParam(c *gin.Context, name string, notFound error) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		h.handleServiceError(c, notFound)
		return 0, false
	}
	return uint(id), true
}

// queryInt returns the integer query value, or 0 when absent or malformed.
func queryInt(c *gin.Context, key string) int {
	value, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return value
}

// queryID returns the positive integer query value. ok is false when the
// value is present but malformed.
func queryID(c *gin.Context, key string) (*uint, bool) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, true
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return nil, false
	}
	value := uint(id)
	return &value, true
}

// queryStatuses accepts ?status=a&status=b as well as ?status=a,b.
// Unknown values are reported back so the caller can reject them.
func queryStatuses(c *gin.Context) ([]models.EnrollmentStatus, []string) {
	var statuses []models.EnrollmentStatus
	var invalid []string
	seen := make(map[models.EnrollmentStatus]bool)

	for _, raw := range c.QueryArray("status") {
		for _, part := range strings.Split(raw, ",") {
			status := models.EnrollmentStatus(strings.ToLower(strings.TrimSpace(part)))
			if status == "" {
				continue
			}
			if !status.IsValid() {
				invalid = append(invalid, part)
				continue
			}
			if !seen[status] {
				seen[status] = true
				statuses = append(statuses, status)
			}
		}
	}
	return statuses, invalid
}

func invalidQuery(c *gin.Context, field, message string) {
	c.JSON(http.StatusUnprocessableEntity, validator.ValidationErrors{
		validator.NewValidationError(field, message, nil),
	}.Fields())
}
