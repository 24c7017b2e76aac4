package casdoor

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/casdoor/casdoor-go-sdk/casdoorsdk"

	"github.com/elab-development/internet-tehnologije-2025-vebaplikacijazaucenjejezika-2022-0147/internal/models"
	"github.com/elab-development/internet-tehnologije-2025-vebaplikacijazaucenjejezika-2022-0147/internal/repositories"
)

// CasdoorConfig holds the configuration for Casdoor connection
type CasdoorConfig struct {
	Endpoint         string
	ClientID         string
	ClientSecret     string
	Certificate      string
	OrganizationName string
	ApplicationName  string
}

// Enabled reports whether enough settings are present to talk to Casdoor.
func (c CasdoorConfig) Enabled() bool {
	return c.Endpoint != "" && c.ClientID != ""
}

type IdentityCasdoor struct {
	client *casdoorsdk.Client
}

func NewIdentityCasdoor(config CasdoorConfig) repositories.IdentityProvider {
	client := casdoorsdk.NewClient(
		config.Endpoint,
		config.ClientID,
		config.ClientSecret,
		config.Certificate,
		config.OrganizationName,
		config.ApplicationName,
	)

	return &IdentityCasdoor{client: client}
}

// ExchangeCode trades an authorization code for a token and reads the
// signed user claims out of it.
func (i *IdentityCasdoor) ExchangeCode(ctx context.Context, code, state string) (*repositories.ExternalIdentity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	token, err := i.client.GetOAuthToken(code, state)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code with Casdoor: %w", err)
	}

	claims, err := i.client.ParseJwtToken(token.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Casdoor token: %w", err)
	}

	return convertClaimsToIdentity(claims)
}

// ===== CONVERSION METHODS =====

func convertClaimsToIdentity(claims *casdoorsdk.Claims) (*repositories.ExternalIdentity, error) {
	if claims == nil {
		return nil, fmt.Errorf("empty Casdoor claims")
	}

	email := strings.TrimSpace(claims.User.Email)
	if email == "" {
		return nil, fmt.Errorf("Casdoor user %q has no email", claims.User.Name)
	}

	name := claims.User.DisplayName
	if name == "" {
		name = claims.User.Name
	}

	return &repositories.ExternalIdentity{
		Subject: claims.User.Id,
		Name:    name,
		Email:   email,
		Role:    convertCasdoorRolesToModel(&claims.User),
	}, nil
}

func convertCasdoorRolesToModel(user *casdoorsdk.User) models.UserRole {
	var roles []models.UserRole
	for _, role := range user.Roles {
		if role == nil {
			continue
		}
		mapped := mapSingleCasdoorRoleToUserRole(role.Name)
		if !slices.Contains(roles, mapped) {
			roles = append(roles, mapped)
		}
	}

	// admin wins over any other role
	if slices.Contains(roles, models.RoleAdmin) || user.IsAdmin {
		return models.RoleAdmin
	}
	if slices.Contains(roles, models.RoleTeacher) {
		return models.RoleTeacher
	}
	if len(roles) == 0 && user.Type != "" {
		return mapSingleCasdoorRoleToUserRole(user.Type)
	}

	return models.RoleStudent
}

func mapSingleCasdoorRoleToUserRole(casdoorRole string) models.UserRole {
	switch strings.ToLower(casdoorRole) {
	case "teacher", "instructor":
		return models.RoleTeacher
	case "admin", "administrator":
		return models.RoleAdmin
	default:
		return models.RoleStudent
	}
}
