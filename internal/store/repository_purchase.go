package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-accountant/internal/logger"
	"github.com/MKhiriev/go-accountant/models"
	"github.com/jackc/pgerrcode"
)

// purchaseRepository is the PostgreSQL-backed implementation of
// [PurchaseRepository], recording verified in-app purchases in the
// "purchases" table.
type purchaseRepository struct {
	*DB
	logger *logger.Logger
}

// NewPurchaseRepository constructs a [PurchaseRepository] backed by the
// provided database connection and logger.
func NewPurchaseRepository(db *DB, logger *logger.Logger) PurchaseRepository {
	logger.Debug().Msg("creating purchase repository")
	return &purchaseRepository{
		DB:     db,
		logger: logger,
	}
}

func scanPurchase(row rowScanner) (models.Purchase, error) {
	var purchase models.Purchase

	err := row.Scan(
		&purchase.ID,
		&purchase.UserID,
		&purchase.Platform,
		&purchase.ProductID,
		&purchase.TokenHash,
		&purchase.Tier,
		&purchase.ExpiresAt,
		&purchase.VerifiedAt,
		&purchase.CreatedAt,
	)

	return purchase, err
}

// InsertPurchase records one verified purchase. A token hash already on
// file surfaces as [ErrPurchaseExists] so restores never duplicate rows.
func (p *purchaseRepository) InsertPurchase(ctx context.Context, purchase models.Purchase) (models.Purchase, error) {
	log := logger.FromContext(ctx)

	log.Debug().
		Str("func", "purchaseRepository.InsertPurchase").
		Int64("user_id", purchase.UserID).
		Str("product_id", purchase.ProductID).
		Msg("recording verified purchase")

	saved, err := scanPurchase(p.DB.QueryRowContext(ctx, insertPurchase,
		purchase.UserID,
		purchase.Platform,
		purchase.ProductID,
		purchase.TokenHash,
		purchase.Tier,
		purchase.ExpiresAt,
	))

	if err != nil {
		if postgresError(err) == pgerrcode.UniqueViolation {
			return models.Purchase{}, ErrPurchaseExists
		}

		log.Err(err).
			Str("func", "purchaseRepository.InsertPurchase").
			Int64("user_id", purchase.UserID).
			Str("product_id", purchase.ProductID).
			Msg("failed to insert purchase")
		return models.Purchase{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return saved, nil
}

// FindByTokenHash returns the purchase previously verified under the token
// hash, if any.
func (p *purchaseRepository) FindByTokenHash(ctx context.Context, tokenHash string) (models.Purchase, error) {
	log := logger.FromContext(ctx)

	purchase, err := scanPurchase(p.DB.QueryRowContext(ctx, findPurchaseByTokenHash, tokenHash))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Purchase{}, ErrPurchaseNotFound
		}

		log.Err(err).
			Str("func", "purchaseRepository.FindByTokenHash").
			Msg("failed to find purchase by token hash")
		return models.Purchase{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return purchase, nil
}

// ListPurchasesByUser returns the user's verified purchases, newest first.
func (p *purchaseRepository) ListPurchasesByUser(ctx context.Context, userID int64) ([]models.Purchase, error) {
	log := logger.FromContext(ctx)

	rows, err := p.DB.QueryContext(ctx, listPurchasesByUser, userID)
	if err != nil {
		log.Err(err).
			Str("func", "purchaseRepository.ListPurchasesByUser").
			Int64("user_id", userID).
			Msg("failed to execute list query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	purchases := make([]models.Purchase, 0, 5)

	for rows.Next() {
		purchase, scanErr := scanPurchase(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "purchaseRepository.ListPurchasesByUser").
				Int64("user_id", userID).
				Msg("failed to scan purchase row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		purchases = append(purchases, purchase)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "purchaseRepository.ListPurchasesByUser").
			Int64("user_id", userID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return purchases, nil
}
