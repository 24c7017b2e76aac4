package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/elab-development/internet-tehnologije-2025-vebaplikacijazaucenjejezika-2022-0147/internal/services"
	"github.com/elab-development/internet-tehnologije-2025-vebaplikacijazaucenjejezika-2022-0147/internal/utils"
)

type AuthHandler struct {
	BaseHandler
	service services.AuthService
}

func NewAuthHandler(service services.AuthService, logger utils.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// Register creates an account and signs it in
// @Summary Register
// @Tags auth
// @Accept json
// @Produce json
// @Param request body services.RegisterRequest true "Account data"
// @Success 201 {object} services.AuthResponse
// @Failure 409 {object} map[string]string "Email taken"
// @Failure 422 {object} map[string][]string "Validation failed"
// @Router /register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	h.LogRequest(c, "Registering user")

	var req services.RegisterRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Login exchanges credentials for an access token
// @Summary Login
// @Tags auth
// @Accept json
// @Produce json
// @Param request body services.LoginRequest true "Credentials"
// @Success 200 {object} services.AuthResponse
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Router /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	h.LogRequest(c, "Logging in")

	var req services.LoginRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// LoginWithSSO exchanges a Casdoor authorization code for an access token
// @Summary Single sign-on login
// @Tags auth
// @Accept json
// @Produce json
// @Param request body services.SSOLoginRequest true "Authorization code"
// @Success 200 {object} services.AuthResponse
// @Failure 501 {object} map[string]string "SSO not configured"
// @Router /login/sso [post]
func (h *AuthHandler) LoginWithSSO(c *gin.Context) {
	h.LogRequest(c, "Logging in with SSO")

	var req services.SSOLoginRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.service.LoginWithSSO(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Logout revokes the presented token
// @Summary Logout
// @Tags auth
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Router /logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	h.LogRequest(c, "Logging out")

	if err := h.service.Logout(c.Request.Context(), CurrentClaims(c)); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// Me returns the authenticated user
// @Summary Current user
// @Tags auth
// @Security BearerAuth
// @Success 200 {object} map[string]models.User
// @Router /me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		h.handleServiceError(c, services.ErrUnauthorized)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": user})
}
