package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-accountant/internal/logger"
	"github.com/MKhiriev/go-accountant/models"
	"github.com/shopspring/decimal"
)

// rateRepository is the PostgreSQL-backed implementation of
// [RateRepository], executing all currency-pair operations against the
// "exchange_rates" table.
type rateRepository struct {
	*DB
	logger *logger.Logger
}

// NewRateRepository constructs a [RateRepository] backed by the provided
// database connection and logger.
func NewRateRepository(db *DB, logger *logger.Logger) RateRepository {
	logger.Debug().Msg("creating rate repository")
	return &rateRepository{
		DB:     db,
		logger: logger,
	}
}

func scanExchangeRate(row rowScanner) (models.ExchangeRate, error) {
	var rate models.ExchangeRate

	err := row.Scan(
		&rate.ID,
		&rate.UserID,
		&rate.FromCurrency,
		&rate.ToCurrency,
		&rate.APIRate,
		&rate.CustomRate,
		&rate.UseCustomRate,
		&rate.APIRateFetchedAt,
		&rate.Version,
		&rate.CreatedAt,
		&rate.UpdatedAt,
	)

	return rate, err
}

// UpsertCustomRate stores a user-pinned rate for the pair, creating the row
// on first use and bumping the row version on every write. A nil rate is
// stored as NULL, clearing the override while keeping the pair registered.
func (p *rateRepository) UpsertCustomRate(ctx context.Context, userID int64, from, to string, rate *decimal.Decimal, useCustom bool) (models.ExchangeRate, error) {
	log := logger.FromContext(ctx)

	log.Debug().
		Str("func", "rateRepository.UpsertCustomRate").
		Int64("user_id", userID).
		Str("pair", from+"/"+to).
		Msg("upserting custom rate")

	saved, err := scanExchangeRate(p.DB.QueryRowContext(ctx, upsertCustomRate, userID, from, to, rate, useCustom))
	if err != nil {
		log.Err(err).
			Str("func", "rateRepository.UpsertCustomRate").
			Int64("user_id", userID).
			Str("pair", from+"/"+to).
			Msg("failed to upsert custom rate")
		return models.ExchangeRate{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return saved, nil
}

// UpsertAPIRate stores a provider-fetched rate for the pair. The custom
// override columns stay untouched so a refresh never clobbers user input.
func (p *rateRepository) UpsertAPIRate(ctx context.Context, userID int64, from, to string, rate decimal.Decimal, fetchedAt time.Time) (models.ExchangeRate, error) {
	log := logger.FromContext(ctx)

	saved, err := scanExchangeRate(p.DB.QueryRowContext(ctx, upsertAPIRate, userID, from, to, rate, fetchedAt))
	if err != nil {
		log.Err(err).
			Str("func", "rateRepository.UpsertAPIRate").
			Int64("user_id", userID).
			Str("pair", from+"/"+to).
			Msg("failed to upsert api rate")
		return models.ExchangeRate{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return saved, nil
}

// ListRates returns every currency pair of the user ordered by pair.
func (p *rateRepository) ListRates(ctx context.Context, userID int64) ([]models.ExchangeRate, error) {
	log := logger.FromContext(ctx)

	rows, err := p.DB.QueryContext(ctx, listExchangeRates, userID)
	if err != nil {
		log.Err(err).
			Str("func", "rateRepository.ListRates").
			Int64("user_id", userID).
			Msg("failed to execute list query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	rates := make([]models.ExchangeRate, 0, 10)

	for rows.Next() {
		rate, scanErr := scanExchangeRate(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "rateRepository.ListRates").
				Int64("user_id", userID).
				Msg("failed to scan rate row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		rates = append(rates, rate)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "rateRepository.ListRates").
			Int64("user_id", userID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return rates, nil
}

// DeleteRate removes one currency pair of the user.
// Returns [ErrRateNotFound] when no row matched.
func (p *rateRepository) DeleteRate(ctx context.Context, userID int64, rateID int64) error {
	log := logger.FromContext(ctx)

	result, err := p.DB.ExecContext(ctx, deleteExchangeRate, userID, rateID)
	if err != nil {
		log.Err(err).
			Str("func", "rateRepository.DeleteRate").
			Int64("user_id", userID).
			Int64("rate_id", rateID).
			Msg("failed to delete rate")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrRateNotFound
	}

	return nil
}

// FindRate returns the pair row for (from, to), or [ErrRateNotFound].
func (p *rateRepository) FindRate(ctx context.Context, userID int64, from, to string) (models.ExchangeRate, error) {
	log := logger.FromContext(ctx)

	rate, err := scanExchangeRate(p.DB.QueryRowContext(ctx, findExchangeRate, userID, from, to))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.ExchangeRate{}, ErrRateNotFound
		}

		log.Err(err).
			Str("func", "rateRepository.FindRate").
			Int64("user_id", userID).
			Str("pair", from+"/"+to).
			Msg("failed to find rate")
		return models.ExchangeRate{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return rate, nil
}
