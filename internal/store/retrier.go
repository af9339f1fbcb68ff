package store

import (
	"context"
	"errors"
	"time"

	"github.com/MKhiriev/go-accountant/internal/logger"
	"github.com/cenkalti/backoff/v4"
)

// Retrier re-runs storage operations that failed transiently, with
// exponential backoff. Two classes of failure qualify:
//
//   - driver errors the [ErrorClassificator] marks [Retryable]
//     (connection loss, serialization failure, deadlock rollback);
//   - the write races [ErrRecordExists] and [ErrConcurrentUpdate], where
//     a second pass of the same [RecordChangeFunc] observes the row the
//     winning writer left behind and resolves against it.
//
// Everything else aborts immediately via [backoff.Permanent].
type Retrier struct {
	classifier      ErrorClassificator
	maxRetries      int
	initialInterval time.Duration
	maxInterval     time.Duration
	maxElapsedTime  time.Duration
	logger          *logger.Logger
}

// NewRetrier creates a retrier with default settings suited to row-level
// write races: short first pause, bounded total wait.
func NewRetrier(log *logger.Logger) *Retrier {
	return &Retrier{
		classifier:      NewPostgresErrorClassifier(),
		maxRetries:      3,
		initialInterval: 50 * time.Millisecond,
		maxInterval:     1 * time.Second,
		maxElapsedTime:  10 * time.Second,
		logger:          log,
	}
}

// Do executes operation, retrying on transient failures until it succeeds,
// exhausts maxRetries, or ctx is done.
func (r *Retrier) Do(ctx context.Context, operation func() error) error {
	log := logger.FromContext(ctx)

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.initialInterval
	b.MaxInterval = r.maxInterval
	b.MaxElapsedTime = r.maxElapsedTime

	retryCount := 0

	return backoff.Retry(func() error {
		err := operation()
		if err == nil {
			return nil
		}

		if !r.retryable(err) {
			return backoff.Permanent(err)
		}

		retryCount++
		if retryCount > r.maxRetries {
			return backoff.Permanent(err)
		}

		log.Warn().
			Err(err).
			Str("func", "Retrier.Do").
			Int("retry", retryCount).
			Msg("transient storage error, retrying")

		return err
	}, backoff.WithContext(b, ctx))
}

func (r *Retrier) retryable(err error) bool {
	if errors.Is(err, ErrRecordExists) || errors.Is(err, ErrConcurrentUpdate) {
		return true
	}

	return r.classifier.Classify(err) == Retryable
}
