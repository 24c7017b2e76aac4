package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/elab-development/internet-tehnologije-2025-vebaplikacijazaucenjejezika-2022-0147/internal/services"
	"github.com/elab-development/internet-tehnologije-2025-vebaplikacijazaucenjejezika-2022-0147/internal/utils"
)

type LanguageHandler struct {
	BaseHandler
	service services.LanguageService
}

func NewLanguageHandler(service services.LanguageService, logger utils.Logger) *LanguageHandler {
	return &LanguageHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ListLanguages returns every language ordered by name
// @Summary List languages
// @Tags languages
// @Produce json
// @Success 200 {object} map[string][]models.Language
// @Failure 404 {string} string "No languages found."
// @Router /languages [get]
func (h *LanguageHandler) ListLanguages(c *gin.Context) {
	h.LogRequest(c, "Listing languages")

	languages, err := h.service.List(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	if len(languages) == 0 {
		c.JSON(http.StatusNotFound, "No languages found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"languages": languages})
}

func (h *LanguageHandler) GetLanguage(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id", services.ErrLanguageNotFound)
	if !ok {
		return
	}

	h.LogRequest(c, "Getting language", "language_id", id)

	language, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"language": language})
}

// CreateLanguage adds a language (admin only)
// @Summary Create language
// @Tags languages
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body services.CreateLanguageRequest true "Language"
// @Success 201 {object} map[string]interface{}
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 422 {object} map[string][]string "Validation failed"
// @Router /languages [post]
func (h *LanguageHandler) CreateLanguage(c *gin.Context) {
	h.LogRequest(c, "Creating language")

	var req services.CreateLanguageRequest
	if !h.bindJSON(c, &req) {
		return
	}

	language, err := h.service.Create(c.Request.Context(), CurrentUser(c), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Language created successfully",
		"language": language,
	})
}

func (h *LanguageHandler) UpdateLanguage(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id", services.ErrLanguageNotFound)
	if !ok {
		return
	}

	h.LogRequest(c, "Updating language", "language_id", id)

	var req services.UpdateLanguageRequest
	if !h.bindJSON(c, &req) {
		return
	}

	language, err := h.service.Update(c.Request.Context(), CurrentUser(c), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Language updated successfully",
		"language": language,
	})
}

func (h *LanguageHandler) DeleteLanguage(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id", services.ErrLanguageNotFound)
	if !ok {
		return
	}

	h.LogRequest(c, "Deleting language", "language_id", id)

	if err := h.service.Delete(c.Request.Context(), CurrentUser(c), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Language deleted successfully"})
}
