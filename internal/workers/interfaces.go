// Package workers runs the server's background workers. It defines the
// Worker interface and a Workers aggregate that supervises all of them
// under one context.
package workers

import (
	"context"
	"time"
)

// Worker is implemented by any background worker. Run blocks until ctx is
// cancelled or the worker fails fatally; transient errors are expected to
// be handled (logged) inside the loop.
type Worker interface {
	Run(ctx context.Context) error
}

// RecurringProcessor is the slice of the recurring service the
// materializer worker drives.
type RecurringProcessor interface {
	ProcessDue(ctx context.Context, now time.Time) (int, error)
}
