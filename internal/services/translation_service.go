package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/elab-development/internet-tehnologije-2025-vebaplikacijazaucenjejezika-2022-0147/internal/repositories"
	"github.com/elab-development/internet-tehnologije-2025-vebaplikacijazaucenjejezika-2022-0147/internal/validator"
)

type translationService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewTranslationService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) TranslationService {
	return &translationService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

// Translate forwards one text to the provider. There is no retry and no cache;
// provider failures come back as *repositories.UpstreamError.
func (s *translationService) Translate(ctx context.Context, req *TranslateRequest) (*TranslateResponse, error) {
	req.Text = strings.TrimSpace(req.Text)
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	if errs := s.validator.GetBusinessValidator().ValidateLanguagePair(req.Source, req.Target); len(errs) > 0 {
		return nil, errs
	}

	result, err := s.repo.Translator().Translate(ctx, req.Text, req.Source, req.Target)
	if err != nil {
		s.logger.Warn("Translation failed", "source", req.Source, "target", req.Target, "error", err)
		return nil, err
	}

	return &TranslateResponse{
		Source:   TranslationSide{Lang: req.Source, Text: req.Text},
		Target:   TranslationSide{Lang: req.Target, Text: result.Text},
		Provider: result.Provider,
	}, nil
}
