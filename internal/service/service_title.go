package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-accountant/internal/logger"
	"github.com/MKhiriev/go-accountant/internal/store"
	"github.com/MKhiriev/go-accountant/internal/validators"
	"github.com/MKhiriev/go-accountant/models"
)

// titleService implements TitleService over the learning table.
type titleService struct {
	titles    store.TitleRepository
	validator validators.Validator
	logger    *logger.Logger
}

// NewTitleService constructs the title-to-category service.
func NewTitleService(titles store.TitleRepository, validator validators.Validator, logger *logger.Logger) TitleService {
	return &titleService{
		titles:    titles,
		validator: validator,
		logger:    logger,
	}
}

// List implements TitleService.
func (s *titleService) List(ctx context.Context, userID int64) ([]models.AssociatedTitle, error) {
	titles, err := s.titles.ListTitles(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*titleService.List").
			Int64("user_id", userID).
			Msg("failed to list associated titles")
		return nil, err
	}

	return titles, nil
}

// Upsert implements TitleService. The title is stored trimmed; the
// repository keys uniqueness on it per user.
func (s *titleService) Upsert(ctx context.Context, userID int64, req models.TitleUpsertRequest) (models.AssociatedTitle, error) {
	if err := s.validator.Validate(ctx, req); err != nil {
		return models.AssociatedTitle{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	title, err := s.titles.UpsertTitle(ctx, models.AssociatedTitle{
		UserID:           userID,
		Title:            strings.TrimSpace(req.Title),
		CategoryServerID: req.CategoryServerID,
		IsExactMatch:     req.IsExactMatch,
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*titleService.Upsert").
			Int64("user_id", userID).
			Msg("failed to upsert associated title")
		return models.AssociatedTitle{}, err
	}

	return title, nil
}

// Delete implements TitleService.
func (s *titleService) Delete(ctx context.Context, userID int64, titleID int64) error {
	if err := s.titles.DeleteTitle(ctx, userID, titleID); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*titleService.Delete").
			Int64("user_id", userID).
			Int64("title_id", titleID).
			Msg("failed to delete associated title")
		return err
	}

	return nil
}

// Match implements TitleService: it resolves a transaction title to the
// learned category, or [store.ErrTitleNotFound] when nothing applies.
func (s *titleService) Match(ctx context.Context, userID int64, title string) (models.TitleMatchResponse, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return models.TitleMatchResponse{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, validators.ErrEmptyTitle)
	}

	found, err := s.titles.FindMatch(ctx, userID, title)
	if err != nil {
		return models.TitleMatchResponse{}, err
	}

	return models.TitleMatchResponse{
		CategoryServerID: found.CategoryServerID,
		MatchedTitle:     found.Title,
		Exact:            found.IsExactMatch,
	}, nil
}
