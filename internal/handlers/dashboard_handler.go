package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/elab-development/internet-tehnologije-2025-vebaplikacijazaucenjejezika-2022-0147/internal/services"
	"github.com/elab-development/internet-tehnologije-2025-vebaplikacijazaucenjejezika-2022-0147/internal/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type DashboardHandler struct {
	BaseHandler
	service services.DashboardService
}

func NewDashboardHandler(service services.DashboardService, logger utils.Logger) *DashboardHandler {
	return &DashboardHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ===== DASHBOARD ENDPOINTS =====

// GetAdminStats returns the admin statistics
// @Summary Get admin statistics
// @Description KPIs and breakdowns of users, courses, enrollments and lessons
// @Tags dashboard
// @Security BearerAuth
// @Produce json
// @Success 200 {object} services.AdminStatsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Only admins can access this resource"
// @Router /admin/stats [get]
func (h *DashboardHandler) GetAdminStats(c *gin.Context) {
	h.LogRequest(c, "Getting admin stats")

	stats, err := h.service.GetAdminStats(c.Request.Context(), CurrentUser(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// ExportAdminStats downloads the admin statistics as an XLSX workbook
// @Summary Export admin statistics
// @Tags dashboard
// @Security BearerAuth
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Failure 403 {object} map[string]string "Only admins can access this resource"
// @Router /admin/stats/export [get]
func (h *DashboardHandler) ExportAdminStats(c *gin.Context) {
	h.LogRequest(c, "Exporting admin stats")

	workbook, err := h.service.ExportAdminStats(c.Request.Context(), CurrentUser(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("admin-stats-%s.xlsx", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, workbook)
}
