package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/MKhiriev/go-accountant/internal/config"
	"github.com/MKhiriev/go-accountant/internal/logger"
	"github.com/MKhiriev/go-accountant/internal/workers"
	"golang.org/x/sync/errgroup"
)

// defaultShutdownTimeout bounds graceful shutdown when the config leaves
// it unset.
const defaultShutdownTimeout = 10 * time.Second

// Server owns the HTTP listener and the background workers. Run blocks
// until a termination signal arrives, then shuts both down gracefully.
type Server struct {
	http            *http.Server
	workers         *workers.Workers
	shutdownTimeout time.Duration
	logger          *logger.Logger
}

// New creates a Server serving handler on cfg.HTTPAddress. ws may be nil
// when the process runs without background jobs.
func New(handler http.Handler, ws *workers.Workers, cfg config.Server, logger *logger.Logger) (*Server, error) {
	if cfg.HTTPAddress == "" {
		return nil, errNoHTTPAddress
	}

	shutdownTimeout := cfg.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = defaultShutdownTimeout
	}

	return &Server{
		http: &http.Server{
			Addr:         cfg.HTTPAddress,
			Handler:      handler,
			ReadTimeout:  cfg.RequestTimeout,
			WriteTimeout: cfg.RequestTimeout,
		},
		workers:         ws,
		shutdownTimeout: shutdownTimeout,
		logger:          logger,
	}, nil
}

// Run serves until SIGINT, SIGTERM or SIGQUIT.
func (s *Server) Run() error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer stop()

	return s.run(ctx)
}

func (s *Server) run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info().
			Str("func", "*Server.run").
			Str("address", s.http.Addr).
			Msg("launching HTTP server")

		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	if s.workers != nil {
		g.Go(func() error {
			if err := s.workers.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("workers: %w", err)
			}
			return nil
		})
	}

	// Shutdown driver: waits for a signal or a failed sibling, then gives
	// in-flight requests shutdownTimeout to drain.
	g.Go(func() error {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()

		s.logger.Info().Str("func", "*Server.run").Msg("shutting down HTTP server")
		if err := s.http.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	s.logger.Info().Str("func", "*Server.run").Msg("server shut down gracefully")
	return nil
}
