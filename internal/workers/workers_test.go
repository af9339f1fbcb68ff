// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// funcWorker adapts a function to the Worker interface.
type funcWorker func(ctx context.Context) error

func (f funcWorker) Run(ctx context.Context) error { return f(ctx) }

func TestWorkers_Run_AllWorkersAreCalled(t *testing.T) {
	var calls atomic.Int32

	worker := funcWorker(func(_ context.Context) error {
		calls.Add(1)
		return nil
	})

	ws := New(worker, worker, worker)
	err := ws.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
}

func TestWorkers_Run_Empty(t *testing.T) {
	assert.NoError(t, New().Run(context.Background()))
}

func TestWorkers_Run_ErrorCancelsSiblings(t *testing.T) {
	failErr := errors.New("worker broke")

	failing := funcWorker(func(_ context.Context) error {
		return failErr
	})

	siblingStopped := make(chan struct{})
	sibling := funcWorker(func(ctx context.Context) error {
		<-ctx.Done()
		close(siblingStopped)
		return ctx.Err()
	})

	err := New(failing, sibling).Run(context.Background())

	assert.ErrorIs(t, err, failErr)
	select {
	case <-siblingStopped:
	case <-time.After(2 * time.Second):
		t.Fatal("sibling worker was not cancelled after a worker failed")
	}
}

func TestWorkers_Run_StopsOnContextCancel(t *testing.T) {
	blocking := funcWorker(func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- New(blocking, blocking).Run(ctx) }()

	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("workers did not stop after context cancellation")
	}
}
