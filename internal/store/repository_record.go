package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-accountant/internal/logger"
	"github.com/MKhiriev/go-accountant/models"
	"github.com/jackc/pgerrcode"
)

// recordRepository is the PostgreSQL-backed implementation of
// [RecordRepository]. It executes every sync-envelope operation against the
// "records" table using the embedded [*DB] connection.
//
// All methods obtain a context-scoped logger via [logger.FromContext] so
// database interactions are traced with structured fields (user_id, kind,
// client_id).
type recordRepository struct {
	*DB
	logger *logger.Logger
}

// NewRecordRepository constructs a [RecordRepository] backed by the provided
// database connection and logger.
func NewRecordRepository(db *DB, logger *logger.Logger) RecordRepository {
	logger.Debug().Msg("creating record repository")
	return &recordRepository{
		DB:     db,
		logger: logger,
	}
}

// rowScanner abstracts *sql.Row and *sql.Rows for the shared record scan.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanRecord reads one full records row in [recordColumns] order.
func scanRecord(row rowScanner) (models.Record, error) {
	var record models.Record

	err := row.Scan(
		&record.ID,
		&record.UserID,
		&record.Kind,
		&record.ClientID,
		&record.ServerID,
		&record.Payload,
		&record.PayloadHash,
		&record.ClientUpdatedAt,
		&record.ServerUpdatedAt,
		&record.Deleted,
		&record.CreatedAt,
	)

	return record, err
}

// ChangeRecord runs apply against the row identified by key inside a single
// transaction.
//
// Protocol:
//  1. SELECT ... FOR UPDATE by (user_id, kind, client_id). A missing row
//     yields stored = nil; an existing row stays locked until commit.
//  2. apply decides what to write. write = false rolls back untouched and
//     returns the stored row as found (zero [models.Record] when none).
//  3. A nil stored row is INSERTed; a racing insert between our empty
//     SELECT and the INSERT surfaces as [ErrRecordExists] (FOR UPDATE
//     cannot lock a row that does not exist yet).
//  4. An existing row is UPDATEd guarded by the server_updated_at read in
//     step 1; a guard miss surfaces as [ErrConcurrentUpdate].
//
// Both sentinel errors are transient: the caller re-runs ChangeRecord and
// the second pass observes the winning row.
func (p *recordRepository) ChangeRecord(ctx context.Context, userID int64, key models.ClientKey, apply RecordChangeFunc) (models.Record, error) {
	log := logger.FromContext(ctx)

	tx, err := p.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.ChangeRecord").
			Int64("user_id", userID).
			Str("kind", key.Kind.String()).
			Msg("failed to begin transaction")
		return models.Record{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	var stored *models.Record

	found, err := scanRecord(tx.QueryRowContext(ctx, findRecordForUpdate, userID, key.Kind, key.ClientID))
	switch {
	case err == nil:
		stored = &found
	case errors.Is(err, sql.ErrNoRows):
		stored = nil
	default:
		log.Err(err).
			Str("func", "recordRepository.ChangeRecord").
			Int64("user_id", userID).
			Str("kind", key.Kind.String()).
			Str("client_id", key.ClientID).
			Msg("failed to lock record row")
		return models.Record{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	out, write, err := apply(stored)
	if err != nil {
		return models.Record{}, err
	}

	if !write {
		if stored == nil {
			return models.Record{}, nil
		}
		return *stored, nil
	}

	if stored == nil {
		saved, insertErr := p.insertRecordTx(ctx, tx, out)
		if insertErr != nil {
			return models.Record{}, insertErr
		}
		out = saved
	} else {
		saved, updateErr := p.updateRecordTx(ctx, tx, out, stored.ServerUpdatedAt)
		if updateErr != nil {
			return models.Record{}, updateErr
		}
		out = saved
	}

	if commitErr := tx.Commit(); commitErr != nil {
		log.Err(commitErr).
			Str("func", "recordRepository.ChangeRecord").
			Int64("user_id", userID).
			Str("kind", key.Kind.String()).
			Str("client_id", key.ClientID).
			Msg("failed to commit transaction")
		return models.Record{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, commitErr)
	}

	return out, nil
}

// insertRecordTx inserts a fresh envelope row inside tx and returns it with
// server-assigned fields populated.
func (p *recordRepository) insertRecordTx(ctx context.Context, tx *sql.Tx, record models.Record) (models.Record, error) {
	log := logger.FromContext(ctx)

	log.Debug().
		Str("func", "recordRepository.insertRecordTx").
		Int64("user_id", record.UserID).
		Str("kind", record.Kind.String()).
		Str("client_id", record.ClientID).
		Msg("inserting new record")

	err := tx.QueryRowContext(ctx, insertRecord,
		record.UserID,
		record.Kind,
		record.ClientID,
		record.ServerID,
		record.Payload,
		record.PayloadHash,
		record.ClientUpdatedAt,
		record.Deleted,
	).Scan(&record.ID, &record.ServerUpdatedAt, &record.CreatedAt)

	if err != nil {
		if postgresError(err) == pgerrcode.UniqueViolation {
			log.Warn().
				Str("func", "recordRepository.insertRecordTx").
				Int64("user_id", record.UserID).
				Str("kind", record.Kind.String()).
				Str("client_id", record.ClientID).
				Msg("insert lost the race for the client key")
			return models.Record{}, ErrRecordExists
		}

		log.Err(err).
			Str("func", "recordRepository.insertRecordTx").
			Int64("user_id", record.UserID).
			Str("kind", record.Kind.String()).
			Str("client_id", record.ClientID).
			Msg("failed to insert record")
		return models.Record{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return record, nil
}

// updateRecordTx overwrites the envelope row inside tx, guarded by the
// server_updated_at value read under the row lock.
//
// The CTE result disambiguates outcomes the same way on every path:
// no result row → the record vanished ([ErrRecordNotFound]); NULL updated
// columns → the guard did not match ([ErrConcurrentUpdate]).
func (p *recordRepository) updateRecordTx(ctx context.Context, tx *sql.Tx, record models.Record, expectedServerUpdatedAt time.Time) (models.Record, error) {
	log := logger.FromContext(ctx)

	var updatedID *int64
	var updatedServerAt *time.Time
	var currentServerAt *time.Time

	err := tx.QueryRowContext(ctx, updateRecordGuarded,
		record.UserID,
		record.Kind,
		record.ClientID,
		record.Payload,
		record.PayloadHash,
		record.ClientUpdatedAt,
		record.Deleted,
		expectedServerUpdatedAt,
	).Scan(&updatedID, &updatedServerAt, &currentServerAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Warn().
				Str("func", "recordRepository.updateRecordTx").
				Int64("user_id", record.UserID).
				Str("client_id", record.ClientID).
				Msg("record disappeared between lock and update")
			return models.Record{}, ErrRecordNotFound
		}

		log.Err(err).
			Str("func", "recordRepository.updateRecordTx").
			Int64("user_id", record.UserID).
			Str("client_id", record.ClientID).
			Msg("failed to execute guarded update")
		return models.Record{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	// found but not updated: the guard saw a newer server_updated_at
	if updatedID == nil {
		log.Warn().
			Str("func", "recordRepository.updateRecordTx").
			Int64("user_id", record.UserID).
			Str("client_id", record.ClientID).
			Time("expected_server_updated_at", expectedServerUpdatedAt).
			Msg("optimistic guard failed: record changed since read")
		return models.Record{}, ErrConcurrentUpdate
	}

	record.ID = *updatedID
	record.ServerUpdatedAt = *updatedServerAt

	return record, nil
}

// FindByClientKey retrieves one envelope row by its logical identity,
// tombstones included. No lock is taken.
func (p *recordRepository) FindByClientKey(ctx context.Context, userID int64, key models.ClientKey) (models.Record, error) {
	log := logger.FromContext(ctx)

	record, err := scanRecord(p.DB.QueryRowContext(ctx, findRecordByClientKey, userID, key.Kind, key.ClientID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Record{}, ErrRecordNotFound
		}

		log.Err(err).
			Str("func", "recordRepository.FindByClientKey").
			Int64("user_id", userID).
			Str("kind", key.Kind.String()).
			Str("client_id", key.ClientID).
			Msg("failed to find record by client key")
		return models.Record{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return record, nil
}

// GetByServerID retrieves one envelope row by its public server identifier,
// tombstones included.
func (p *recordRepository) GetByServerID(ctx context.Context, userID int64, serverID string) (models.Record, error) {
	log := logger.FromContext(ctx)

	record, err := scanRecord(p.DB.QueryRowContext(ctx, findRecordByServerID, userID, serverID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Record{}, ErrRecordNotFound
		}

		log.Err(err).
			Str("func", "recordRepository.GetByServerID").
			Int64("user_id", userID).
			Str("server_id", serverID).
			Msg("failed to find record by server id")
		return models.Record{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return record, nil
}

// ListChangedSince returns every record of the user changed strictly after
// since, tombstones included, ordered by server_updated_at ascending.
func (p *recordRepository) ListChangedSince(ctx context.Context, userID int64, since time.Time) ([]models.Record, error) {
	log := logger.FromContext(ctx)

	rows, err := p.DB.QueryContext(ctx, listRecordsChangedSince, userID, since)
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.ListChangedSince").
			Int64("user_id", userID).
			Time("since", since).
			Msg("failed to execute changed-since query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	return collectRecords(ctx, rows, "recordRepository.ListChangedSince")
}

// ListByKind returns the user's live records of one kind, newest change
// first.
func (p *recordRepository) ListByKind(ctx context.Context, userID int64, kind models.EntityKind) ([]models.Record, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListByKindQuery(ctx, userID, kind)
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.ListByKind").
			Int64("user_id", userID).
			Str("kind", kind.String()).
			Msg("failed to build query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := p.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.ListByKind").
			Int64("user_id", userID).
			Str("kind", kind.String()).
			Msg("failed to execute list query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	return collectRecords(ctx, rows, "recordRepository.ListByKind")
}

// ListTransactions returns the user's live transaction records narrowed by
// the filter criteria.
func (p *recordRepository) ListTransactions(ctx context.Context, userID int64, filter models.TransactionFilter) ([]models.Record, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListTransactionsQuery(ctx, userID, filter)
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.ListTransactions").
			Int64("user_id", userID).
			Msg("failed to build filtered query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := p.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.ListTransactions").
			Int64("user_id", userID).
			Msg("failed to execute filtered query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	return collectRecords(ctx, rows, "recordRepository.ListTransactions")
}

// CountsByKind returns per-kind record statistics for the sync status
// endpoint. Kinds without records are absent from the map.
func (p *recordRepository) CountsByKind(ctx context.Context, userID int64) (map[models.EntityKind]models.KindCounts, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildCountsByKindQuery(ctx, userID)
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.CountsByKind").
			Int64("user_id", userID).
			Msg("failed to build aggregate query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := p.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.CountsByKind").
			Int64("user_id", userID).
			Msg("failed to execute aggregate query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	counts := make(map[models.EntityKind]models.KindCounts, 7)

	for rows.Next() {
		var kind models.EntityKind
		var kindCounts models.KindCounts

		if scanErr := rows.Scan(&kind, &kindCounts.Total, &kindCounts.Deleted, &kindCounts.LastChangedAt); scanErr != nil {
			log.Err(scanErr).
				Str("func", "recordRepository.CountsByKind").
				Int64("user_id", userID).
				Msg("failed to scan aggregate row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		counts[kind] = kindCounts
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "recordRepository.CountsByKind").
			Int64("user_id", userID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return counts, nil
}

// ListDueRecurring returns live, active recurring-transaction records across
// all users whose next occurrence is at or before due, oldest first.
func (p *recordRepository) ListDueRecurring(ctx context.Context, due time.Time, limit int) ([]models.Record, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildDueRecurringQuery(ctx, due, limit)
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.ListDueRecurring").
			Time("due", due).
			Msg("failed to build due-recurring query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := p.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.ListDueRecurring").
			Time("due", due).
			Msg("failed to execute due-recurring query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	return collectRecords(ctx, rows, "recordRepository.ListDueRecurring")
}

// collectRecords drains rows into a record slice, wrapping scan and
// iteration failures with the caller's function name for tracing.
func collectRecords(ctx context.Context, rows *sql.Rows, funcName string) ([]models.Record, error) {
	log := logger.FromContext(ctx)

	records := make([]models.Record, 0, 50)

	for rows.Next() {
		record, scanErr := scanRecord(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", funcName).
				Msg("failed to scan record row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		records = append(records, record)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", funcName).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return records, nil
}
