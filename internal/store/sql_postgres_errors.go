package store

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrorClassification is what [ErrorClassificator.Classify] answers: retry
// the failed statement or give up. The retrier feeds every failed envelope
// write through it.
type ErrorClassification int

const (
	// NonRetryable covers everything a second attempt cannot fix:
	// constraint violations, bad data, bad SQL, and any code we do not
	// recognise.
	NonRetryable ErrorClassification = iota

	// Retryable marks transient failures (connection loss, deadlock or
	// serialization rollback) where the same statement may succeed on
	// the next attempt.
	Retryable
)

// PostgresErrorClassifier maps pgconn error codes to a classification.
type PostgresErrorClassifier struct{}

// NewPostgresErrorClassifier constructs a [PostgresErrorClassifier] ready for use.
func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

// Classify implements [ErrorClassificator]. Anything that does not unwrap
// to a *pgconn.PgError, nil included, is [NonRetryable]: errors raised by
// our own code (sentinels, scan failures) must never loop the retrier.
func (c *PostgresErrorClassifier) Classify(err error) ErrorClassification {
	if err == nil {
		return NonRetryable
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return ClassifyPgError(pgErr)
	}

	return NonRetryable
}

// ClassifyPgError classifies by the PostgreSQL error code
// (https://www.postgresql.org/docs/current/errcodes-appendix.html).
// Retryable: Class 08 connection exceptions, Class 40 transaction rollback
// (serialization failure 40001, deadlock 40P01), and 57P03 cannot-connect-now.
// Everything else, notably Class 23 integrity violations, stays
// [NonRetryable] here; the write races the reconciler retries on
// (unique_violation on a concurrent insert) are recognised by sentinel in
// the retrier, not by code class.
func ClassifyPgError(pgErr *pgconn.PgError) ErrorClassification {
	switch pgErr.Code {
	case pgerrcode.ConnectionException,
		pgerrcode.ConnectionDoesNotExist,
		pgerrcode.ConnectionFailure:
		return Retryable

	case pgerrcode.TransactionRollback, // 40000
		pgerrcode.SerializationFailure, // 40001
		pgerrcode.DeadlockDetected:     // 40P01
		return Retryable

	case pgerrcode.CannotConnectNow: // 57P03
		return Retryable
	}

	return NonRetryable
}
