package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/elab-development/internet-tehnologije-2025-vebaplikacijazaucenjejezika-2022-0147/internal/cache"
	"github.com/elab-development/internet-tehnologije-2025-vebaplikacijazaucenjejezika-2022-0147/internal/models"
	"github.com/elab-development/internet-tehnologije-2025-vebaplikacijazaucenjejezika-2022-0147/internal/repositories"
)

// tokenRepository keeps revoked token ids in Redis when available and in the
// revoked_tokens table otherwise. Entries only live until the token expires.
type tokenRepository struct {
	baseRepository
	cache *cache.CacheHelper
	now   func() time.Time
}

func NewTokenRepository(db *gorm.DB, cacheHelper *cache.CacheHelper) repositories.TokenRepository {
	return &tokenRepository{
		baseRepository: baseRepository{db: db},
		cache:          cacheHelper,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

func (r *tokenRepository) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	ttl := expiresAt.Sub(r.now())
	if ttl <= 0 {
		return nil
	}

	if r.cache.Available() {
		if err := r.cache.SetString(ctx, jti, "1", ttl); err != nil {
			return handleDBError(err, "revoke token in cache")
		}
		return nil
	}

	db := r.getDB(nil).WithContext(ctx)
	if err := db.Where("expires_at < ?", r.now()).Delete(&models.RevokedToken{}).Error; err != nil {
		return handleDBError(err, "purge expired tokens")
	}

	revoked := &models.RevokedToken{JTI: jti, ExpiresAt: expiresAt.UTC()}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(revoked).Error; err != nil {
		return handleDBError(err, "revoke token")
	}
	return nil
}

func (r *tokenRepository) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if r.cache.Available() {
		revoked, err := r.cache.Exists(ctx, jti)
		if err != nil && !errors.Is(err, cache.ErrCacheNotAvailable) {
			return false, handleDBError(err, "check revoked token in cache")
		}
		return revoked, nil
	}

	var count int64
	if err := r.getDB(nil).WithContext(ctx).
		Model(&models.RevokedToken{}).
		Where("jti = ? AND expires_at > ?", jti, r.now()).
		Count(&count).Error; err != nil {
		return false, handleDBError(err, "check revoked token")
	}
	return count > 0, nil
}
