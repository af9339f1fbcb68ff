package workers

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Workers supervises a set of background workers.
type Workers struct {
	workers []Worker
}

// New bundles workers into one supervised group.
func New(workers ...Worker) *Workers {
	return &Workers{workers: workers}
}

// Run starts every worker in its own goroutine and blocks until all have
// exited. The shared group context is cancelled as soon as one worker
// returns an error, which stops the rest.
func (w *Workers) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	for _, worker := range w.workers {
		worker := worker
		g.Go(func() error {
			return worker.Run(ctx)
		})
	}

	return g.Wait()
}
