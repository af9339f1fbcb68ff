package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-accountant/internal/logger"
	"github.com/MKhiriev/go-accountant/models"
)

// titleRepository is the PostgreSQL-backed implementation of
// [TitleRepository], executing all title-learning operations against the
// "associated_titles" table.
type titleRepository struct {
	*DB
	logger *logger.Logger
}

// NewTitleRepository constructs a [TitleRepository] backed by the provided
// database connection and logger.
func NewTitleRepository(db *DB, logger *logger.Logger) TitleRepository {
	logger.Debug().Msg("creating title repository")
	return &titleRepository{
		DB:     db,
		logger: logger,
	}
}

func scanAssociatedTitle(row rowScanner) (models.AssociatedTitle, error) {
	var title models.AssociatedTitle

	err := row.Scan(
		&title.ID,
		&title.UserID,
		&title.Title,
		&title.CategoryServerID,
		&title.IsExactMatch,
		&title.CreatedAt,
		&title.UpdatedAt,
	)

	return title, err
}

// UpsertTitle creates or replaces the link for the title, keyed on
// (user_id, title).
func (p *titleRepository) UpsertTitle(ctx context.Context, title models.AssociatedTitle) (models.AssociatedTitle, error) {
	log := logger.FromContext(ctx)

	log.Debug().
		Str("func", "titleRepository.UpsertTitle").
		Int64("user_id", title.UserID).
		Str("title", title.Title).
		Msg("upserting associated title")

	saved, err := scanAssociatedTitle(p.DB.QueryRowContext(ctx, upsertAssociatedTitle,
		title.UserID,
		title.Title,
		title.CategoryServerID,
		title.IsExactMatch,
	))

	if err != nil {
		log.Err(err).
			Str("func", "titleRepository.UpsertTitle").
			Int64("user_id", title.UserID).
			Str("title", title.Title).
			Msg("failed to upsert associated title")
		return models.AssociatedTitle{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return saved, nil
}

// ListTitles returns every learned link of the user ordered by title.
func (p *titleRepository) ListTitles(ctx context.Context, userID int64) ([]models.AssociatedTitle, error) {
	log := logger.FromContext(ctx)

	rows, err := p.DB.QueryContext(ctx, listAssociatedTitles, userID)
	if err != nil {
		log.Err(err).
			Str("func", "titleRepository.ListTitles").
			Int64("user_id", userID).
			Msg("failed to execute list query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	titles := make([]models.AssociatedTitle, 0, 20)

	for rows.Next() {
		title, scanErr := scanAssociatedTitle(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "titleRepository.ListTitles").
				Int64("user_id", userID).
				Msg("failed to scan title row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		titles = append(titles, title)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "titleRepository.ListTitles").
			Int64("user_id", userID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return titles, nil
}

// DeleteTitle removes one learned link. Deleting an absent id surfaces as
// [ErrTitleNotFound].
func (p *titleRepository) DeleteTitle(ctx context.Context, userID int64, titleID int64) error {
	log := logger.FromContext(ctx)

	result, err := p.DB.ExecContext(ctx, deleteAssociatedTitle, userID, titleID)
	if err != nil {
		log.Err(err).
			Str("func", "titleRepository.DeleteTitle").
			Int64("user_id", userID).
			Int64("title_id", titleID).
			Msg("failed to delete associated title")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrTitleNotFound
	}

	return nil
}

// FindMatch resolves a transaction title to a learned category link:
// case-insensitive exact match first, then the longest stored substring
// contained in the given title. [ErrTitleNotFound] when neither matches.
func (p *titleRepository) FindMatch(ctx context.Context, userID int64, title string) (models.AssociatedTitle, error) {
	log := logger.FromContext(ctx)

	match, err := scanAssociatedTitle(p.DB.QueryRowContext(ctx, findTitleExact, userID, title))
	if err == nil {
		return match, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		log.Err(err).
			Str("func", "titleRepository.FindMatch").
			Int64("user_id", userID).
			Msg("failed to execute exact match query")
		return models.AssociatedTitle{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	match, err = scanAssociatedTitle(p.DB.QueryRowContext(ctx, findTitleContained, userID, title))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.AssociatedTitle{}, ErrTitleNotFound
		}

		log.Err(err).
			Str("func", "titleRepository.FindMatch").
			Int64("user_id", userID).
			Msg("failed to execute containment match query")
		return models.AssociatedTitle{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return match, nil
}
