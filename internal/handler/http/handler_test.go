package http

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-accountant/internal/config"
	"github.com/MKhiriev/go-accountant/internal/logger"
	"github.com/MKhiriev/go-accountant/internal/metrics"
	"github.com/MKhiriev/go-accountant/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pingerFunc adapts a function to the Pinger interface.
type pingerFunc func(ctx context.Context) error

func (f pingerFunc) PingContext(ctx context.Context) error { return f(ctx) }

// ─────────────────────────────────────────────
// NewHandler
// ─────────────────────────────────────────────

func TestNewHandler_ReturnsNonNil(t *testing.T) {
	h := NewHandler(&service.Services{}, nil, nil, config.RateLimit{}, logger.Nop())

	require.NotNil(t, h)
}

func TestNewHandler_StoresDependencies(t *testing.T) {
	svc := &service.Services{}
	db := pingerFunc(func(context.Context) error { return nil })
	m := metrics.NewWith(prometheus.NewRegistry())
	limits := config.RateLimit{RPS: 5, Burst: 10}
	log := logger.Nop()

	h := NewHandler(svc, db, m, limits, log)

	assert.Equal(t, svc, h.services)
	assert.NotNil(t, h.db)
	assert.Equal(t, m, h.metrics)
	assert.Equal(t, limits, h.limits)
	assert.Equal(t, log, h.logger)
}

func TestNewHandler_NilOptionalDependencies(t *testing.T) {
	// db and metrics are optional: /health degrades to a skipped check
	// and the metrics middleware becomes a passthrough.
	h := NewHandler(&service.Services{}, nil, nil, config.RateLimit{}, logger.Nop())

	assert.Nil(t, h.db)
	assert.Nil(t, h.metrics)
}

func TestNewHandler_IndependentInstances(t *testing.T) {
	h1 := NewHandler(&service.Services{}, nil, nil, config.RateLimit{}, logger.Nop())
	h2 := NewHandler(&service.Services{}, nil, nil, config.RateLimit{}, logger.Nop())

	assert.NotSame(t, h1, h2)
}

// ─────────────────────────────────────────────
// Init
// ─────────────────────────────────────────────

func TestInit_ReturnsRouter(t *testing.T) {
	router := newHandlerWithServices(t, newStubServices()).Init()

	require.NotNil(t, router)
}
