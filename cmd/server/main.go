package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-accountant/internal/adapter"
	"github.com/MKhiriev/go-accountant/internal/config"
	"github.com/MKhiriev/go-accountant/internal/handler/http"
	"github.com/MKhiriev/go-accountant/internal/logger"
	"github.com/MKhiriev/go-accountant/internal/metrics"
	"github.com/MKhiriev/go-accountant/internal/server"
	"github.com/MKhiriev/go-accountant/internal/service"
	"github.com/MKhiriev/go-accountant/internal/store"
	"github.com/MKhiriev/go-accountant/internal/workers"
	"github.com/MKhiriev/go-accountant/migrations"
	"github.com/joho/godotenv"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	// .env is a dev convenience; absence is fine.
	_ = godotenv.Load()

	log := logger.NewLogger("accountant-server")

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	// printBuildInfo normalized an unset ldflags version to "N/A".
	if buildVersion != "N/A" {
		cfg.App.Version = buildVersion
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx := context.Background()

	storages, err := store.NewStorages(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	// Deferred first so the pool closes after everything that uses it.
	defer storages.Close()

	if err := migrations.Migrate(storages.DB.DB); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	adapters, err := adapter.NewAdapters(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating adapters")
	}
	defer adapters.Close()

	m := metrics.New()

	services, err := service.NewServices(storages, adapters, m, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handler := http.NewHandler(services, storages.DB, m, cfg.RateLimit, log)

	materializer := workers.NewRecurringMaterializer(
		services.RecurringService,
		cfg.Workers.RecurringInterval,
		log,
	)

	srv, err := server.New(handler.Init(), workers.New(materializer), cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	if err := srv.Run(); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
