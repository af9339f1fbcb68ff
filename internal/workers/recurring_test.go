package workers

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/go-accountant/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubProcessor counts ProcessDue calls and returns canned results.
type stubProcessor struct {
	calls   atomic.Int32
	created int
	err     error
}

func (s *stubProcessor) ProcessDue(_ context.Context, _ time.Time) (int, error) {
	s.calls.Add(1)
	return s.created, s.err
}

func runMaterializer(t *testing.T, w *RecurringMaterializer, d time.Duration) error {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	time.Sleep(d)
	cancel()

	select {
	case err := <-done:
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("materializer did not stop after context cancellation")
		return nil
	}
}

func TestRecurringMaterializer_FirstScanIsImmediate(t *testing.T) {
	processor := &stubProcessor{created: 2}
	// Interval far beyond the test window: only the startup pass can fire.
	w := NewRecurringMaterializer(processor, time.Hour, logger.Nop())

	err := runMaterializer(t, w, 50*time.Millisecond)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int32(1), processor.calls.Load())
}

func TestRecurringMaterializer_TicksRepeatedly(t *testing.T) {
	processor := &stubProcessor{}
	w := NewRecurringMaterializer(processor, 10*time.Millisecond, logger.Nop())

	err := runMaterializer(t, w, 120*time.Millisecond)

	assert.ErrorIs(t, err, context.Canceled)
	// Startup pass plus several ticks; exact count depends on scheduling.
	assert.GreaterOrEqual(t, processor.calls.Load(), int32(3))
}

func TestRecurringMaterializer_SurvivesFailingPass(t *testing.T) {
	processor := &stubProcessor{err: assert.AnError}
	w := NewRecurringMaterializer(processor, 10*time.Millisecond, logger.Nop())

	err := runMaterializer(t, w, 100*time.Millisecond)

	assert.ErrorIs(t, err, context.Canceled)
	// Every pass failed, yet the loop kept ticking.
	assert.GreaterOrEqual(t, processor.calls.Load(), int32(2))
}

func TestRecurringMaterializer_DefaultInterval(t *testing.T) {
	w := NewRecurringMaterializer(&stubProcessor{}, 0, logger.Nop())
	require.Equal(t, defaultScanInterval, w.interval)

	w = NewRecurringMaterializer(&stubProcessor{}, -time.Minute, logger.Nop())
	require.Equal(t, defaultScanInterval, w.interval)

	w = NewRecurringMaterializer(&stubProcessor{}, 30*time.Minute, logger.Nop())
	require.Equal(t, 30*time.Minute, w.interval)
}
