package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/elab-development/internet-tehnologije-2025-vebaplikacijazaucenjejezika-2022-0147/internal/services"
	"github.com/elab-development/internet-tehnologije-2025-vebaplikacijazaucenjejezika-2022-0147/internal/utils"
)

type TranslationHandler struct {
	BaseHandler
	service services.TranslationService
}

func NewTranslationHandler(service services.TranslationService, logger utils.Logger) *TranslationHandler {
	return &TranslationHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// Translate proxies one text to the machine translation provider
// @Summary Translate text
// @Tags translation
// @Security BearerAuth
// @Produce json
// @Param q query string true "Text, at most 500 characters"
// @Param source query string true "Source language code"
// @Param target query string true "Target language code"
// @Success 200 {object} services.TranslateResponse
// @Failure 422 {object} map[string][]string "Validation failed"
// @Failure 502 {object} map[string]string "Provider failure"
// @Router /translate [get]
func (h *TranslationHandler) Translate(c *gin.Context) {
	var req services.TranslateRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		invalidQuery(c, "request", "The query parameters are invalid.")
		return
	}

	h.LogRequest(c, "Translating text", "source", req.Source, "target", req.Target)

	resp, err := h.service.Translate(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
