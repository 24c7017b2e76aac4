package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"gorm.io/gorm"

	"github.com/elab-development/internet-tehnologije-2025-vebaplikacijazaucenjejezika-2022-0147/internal/models"
	"github.com/elab-development/internet-tehnologije-2025-vebaplikacijazaucenjejezika-2022-0147/internal/repositories"
	"github.com/elab-development/internet-tehnologije-2025-vebaplikacijazaucenjejezika-2022-0147/internal/validator"
)

type languageService struct {
	repo      repositories.Repository
	db        *gorm.DB
	logger    *slog.Logger
	validator *validator.Validator
}

func NewLanguageService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, validator *validator.Validator) LanguageService {
	return &languageService{
		repo:      repo,
		db:        db,
		logger:    logger,
		validator: validator,
	}
}

func (s *languageService) List(ctx context.Context) ([]*models.Language, error) {
	languages, err := s.repo.Language().List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list languages: %w", err)
	}
	return languages, nil
}

func (s *languageService) GetByID(ctx context.Context, id uint) (*models.Language, error) {
	language, err := s.repo.Language().GetByID(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrLanguageNotFound
		}
		return nil, fmt.Errorf("failed to get language: %w", err)
	}
	return language, nil
}

func (s *languageService) Create(ctx context.Context, actor *models.User, req *CreateLanguageRequest) (*models.Language, error) {
	if err := requireAdmin(actor, "language", "create", "Only admins can create languages"); err != nil {
		return nil, err
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	language := &models.Language{
		Name:   strings.TrimSpace(req.Name),
		ImgURL: req.Image(),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := s.repo.Language().ExistsByName(ctx, tx, language.Name, 0)
		if err != nil {
			return fmt.Errorf("failed to check language name: %w", err)
		}
		if taken {
			return validationError("name", "The name has already been taken.", language.Name)
		}
		return s.repo.Language().Create(ctx, tx, language)
	})
	if repositories.IsDuplicateError(err) {
		return nil, validationError("name", "The name has already been taken.", language.Name)
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info("Language created", "language_id", language.ID, "admin_id", actor.ID)
	return language, nil
}

func (s *languageService) Update(ctx context.Context, actor *models.User, id uint, req *UpdateLanguageRequest) (*models.Language, error) {
	if err := requireAdmin(actor, "language", "update", "Only admins can update languages"); err != nil {
		return nil, err
	}
	if req.IsEmpty() {
		return nil, ErrNoEditableFields
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	var language *models.Language
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		language, err = s.repo.Language().GetByID(ctx, tx, id)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				return ErrLanguageNotFound
			}
			return fmt.Errorf("failed to get language: %w", err)
		}

		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			taken, err := s.repo.Language().ExistsByName(ctx, tx, name, language.ID)
			if err != nil {
				return fmt.Errorf("failed to check language name: %w", err)
			}
			if taken {
				return validationError("name", "The name has already been taken.", name)
			}
			language.Name = name
		}
		if image := req.Image(); image != nil {
			language.ImgURL = image
		}

		return s.repo.Language().Update(ctx, tx, language)
	})
	if repositories.IsDuplicateError(err) {
		return nil, validationError("name", "The name has already been taken.", language.Name)
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info("Language updated", "language_id", language.ID, "admin_id", actor.ID)
	return language, nil
}

func (s *languageService) Delete(ctx context.Context, actor *models.User, id uint) error {
	if err := requireAdmin(actor, "language", "delete", "Only admins can delete languages"); err != nil {
		return err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := s.repo.Language().Exists(ctx, tx, id)
		if err != nil {
			return fmt.Errorf("failed to get language: %w", err)
		}
		if !exists {
			return ErrLanguageNotFound
		}

		courses, err := s.repo.Course().CountByLanguage(ctx, tx, id)
		if err != nil {
			return fmt.Errorf("failed to count courses: %w", err)
		}
		if courses > 0 {
			return ErrLanguageInUse
		}

		return s.repo.Language().Delete(ctx, tx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("Language deleted", "language_id", id, "admin_id", actor.ID)
	return nil
}
