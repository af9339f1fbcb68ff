package http

import (
	"context"

	"github.com/MKhiriev/go-accountant/internal/config"
	"github.com/MKhiriev/go-accountant/internal/logger"
	"github.com/MKhiriev/go-accountant/internal/metrics"
	"github.com/MKhiriev/go-accountant/internal/service"
)

// Pinger is the slice of the database handle the health endpoint needs.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Handler struct {
	services *service.Services

	// db is pinged by /health; nil reports the check as skipped.
	db Pinger

	metrics *metrics.Metrics
	limits  config.RateLimit

	logger *logger.Logger
}

func NewHandler(services *service.Services, db Pinger, m *metrics.Metrics, limits config.RateLimit, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		db:       db,
		metrics:  m,
		limits:   limits,
		logger:   logger,
	}
}
