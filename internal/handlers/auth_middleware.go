package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/elab-development/internet-tehnologije-2025-vebaplikacijazaucenjejezika-2022-0147/internal/models"
	"github.com/elab-development/internet-tehnologije-2025-vebaplikacijazaucenjejezika-2022-0147/internal/services"
	"github.com/elab-development/internet-tehnologije-2025-vebaplikacijazaucenjejezika-2022-0147/internal/utils"
)

const (
	contextUserKey   = "user"
	contextClaimsKey = "claims"
)

// AuthMiddleware resolves the bearer token of each request to a user.
type AuthMiddleware struct {
	auth   services.AuthService
	logger utils.Logger
}

func NewAuthMiddleware(auth services.AuthService, logger utils.Logger) *AuthMiddleware {
	return &AuthMiddleware{auth: auth, logger: logger}
}

// RequireAuth rejects requests without a valid, unrevoked token.
func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody("Unauthorized"))
			return
		}

		user, claims, err := am.auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			if !services.IsAuthError(err) {
				utils.GetLogger(c, am.logger).Error("Failed to authenticate request", "error", err)
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody("Unauthorized"))
			return
		}

		c.Set(contextUserKey, user)
		c.Set(contextClaimsKey, claims)
		c.Set("user_id", user.ID)
		c.Set("user_role", user.Role)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, services.TokenTypeBearer) {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// CurrentUser returns the authenticated user, or nil on public routes.
func CurrentUser(c *gin.Context) *models.User {
	value, exists := c.Get(contextUserKey)
	if !exists {
		return nil
	}
	user, _ := value.(*models.User)
	return user
}

// CurrentClaims returns the claims of the presented token.
func CurrentClaims(c *gin.Context) *services.TokenClaims {
	value, exists := c.Get(contextClaimsKey)
	if !exists {
		return nil
	}
	claims, _ := value.(*services.TokenClaims)
	return claims
}
