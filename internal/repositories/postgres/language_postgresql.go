package postgres

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/elab-development/internet-tehnologije-2025-vebaplikacijazaucenjejezika-2022-0147/internal/models"
	"github.com/elab-development/internet-tehnologije-2025-vebaplikacijazaucenjejezika-2022-0147/internal/repositories"
)

type languageRepository struct {
	baseRepository
}

func NewLanguagePostgreSQL(db *gorm.DB) repositories.LanguageRepository {
	return &languageRepository{baseRepository{db: db}}
}

func (r *languageRepository) Create(ctx context.Context, tx *gorm.DB, language *models.Language) error {
	if err := r.getDB(tx).WithContext(ctx).Omit(clause.Associations).Create(language).Error; err != nil {
		return handleDBError(err, "create language")
	}
	return nil
}

func (r *languageRepository) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Language, error) {
	var language models.Language
	if err := r.getDB(tx).WithContext(ctx).First(&language, id).Error; err != nil {
		return nil, handleDBError(err, "get language by id")
	}
	return &language, nil
}

func (r *languageRepository) Update(ctx context.Context, tx *gorm.DB, language *models.Language) error {
	if err := r.getDB(tx).WithContext(ctx).Omit(clause.Associations).Save(language).Error; err != nil {
		return handleDBError(err, "update language")
	}
	return nil
}

func (r *languageRepository) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	if err := r.getDB(tx).WithContext(ctx).Delete(&models.Language{}, id).Error; err != nil {
		return handleDBError(err, "delete language")
	}
	return nil
}

func (r *languageRepository) List(ctx context.Context, tx *gorm.DB) ([]*models.Language, error) {
	var languages []*models.Language
	if err := r.getDB(tx).WithContext(ctx).
		Order("name ASC").
		Find(&languages).Error; err != nil {
		return nil, handleDBError(err, "list languages")
	}
	return languages, nil
}

func (r *languageRepository) Exists(ctx context.Context, tx *gorm.DB, id uint) (bool, error) {
	var count int64
	if err := r.getDB(tx).WithContext(ctx).
		Model(&models.Language{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, handleDBError(err, "check language exists")
	}
	return count > 0, nil
}

func (r *languageRepository) ExistsByName(ctx context.Context, tx *gorm.DB, name string, excludeID uint) (bool, error) {
	query := r.getDB(tx).WithContext(ctx).
		Model(&models.Language{}).
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name)))
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, handleDBError(err, "check language name")
	}
	return count > 0, nil
}
