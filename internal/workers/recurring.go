package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-accountant/internal/logger"
)

// defaultScanInterval is used when the configured interval is missing.
const defaultScanInterval = time.Hour

// RecurringMaterializer periodically materializes due recurring schedules
// into concrete transaction records. All writes go through the record
// store, so created instances reach devices with the next sync pull.
type RecurringMaterializer struct {
	processor RecurringProcessor
	interval  time.Duration
	logger    *logger.Logger
}

// NewRecurringMaterializer creates the materializer worker. A zero or
// negative interval falls back to one hour.
func NewRecurringMaterializer(processor RecurringProcessor, interval time.Duration, logger *logger.Logger) *RecurringMaterializer {
	if interval <= 0 {
		interval = defaultScanInterval
	}
	return &RecurringMaterializer{processor: processor, interval: interval, logger: logger}
}

// Run implements Worker. The first scan happens immediately so a restart
// does not delay schedules that came due while the server was down; after
// that the loop ticks at the configured interval until ctx is cancelled.
func (w *RecurringMaterializer) Run(ctx context.Context) error {
	w.logger.Info().
		Str("func", "*RecurringMaterializer.Run").
		Dur("interval", w.interval).
		Msg("recurring materializer started")

	w.scan(ctx)

	t := time.NewTicker(w.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info().
				Str("func", "*RecurringMaterializer.Run").
				Msg("recurring materializer stopped")
			return ctx.Err()
		case <-t.C:
			w.scan(ctx)
		}
	}
}

// scan runs one materialization pass. Errors are logged and swallowed:
// a failed pass must not kill the loop, the next tick retries.
func (w *RecurringMaterializer) scan(ctx context.Context) {
	created, err := w.processor.ProcessDue(ctx, time.Now())
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		w.logger.Error().Err(err).
			Str("func", "*RecurringMaterializer.scan").
			Msg("recurring materialization pass failed")
		return
	}

	if created > 0 {
		w.logger.Info().
			Str("func", "*RecurringMaterializer.scan").
			Int("instances_created", created).
			Msg("recurring schedules materialized")
	}
}
