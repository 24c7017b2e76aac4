package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/elab-development/internet-tehnologije-2025-vebaplikacijazaucenjejezika-2022-0147/internal/models"
)

// UserRepository stores accounts and their credentials.
type UserRepository interface {
	Create(ctx context.Context, tx *gorm.DB, user *models.User) error

	// GetByID reads through the user cache when tx is nil.
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*models.User, error)
	ExistsByEmail(ctx context.Context, tx *gorm.DB, email string) (bool, error)
	HasRole(ctx context.Context, tx *gorm.DB, id uint, role models.UserRole) (bool, error)
}

// TokenRepository keeps the list of revoked access tokens.
type TokenRepository interface {
	Revoke(ctx context.Context, jti string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// ExternalIdentity is a user profile asserted by the single sign-on provider.
type ExternalIdentity struct {
	Subject string
	Name    string
	Email   string
	Role    models.UserRole
}

// IdentityProvider exchanges an OAuth authorization code for a verified identity.
type IdentityProvider interface {
	ExchangeCode(ctx context.Context, code, state string) (*ExternalIdentity, error)
}
