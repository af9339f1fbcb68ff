package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/MKhiriev/go-accountant/internal/adapter"
	"github.com/MKhiriev/go-accountant/internal/config"
	"github.com/MKhiriev/go-accountant/internal/logger"
	"github.com/MKhiriev/go-accountant/internal/metrics"
	"github.com/MKhiriev/go-accountant/internal/service"
	"github.com/MKhiriev/go-accountant/internal/store"
	"github.com/MKhiriev/go-accountant/migrations"
	"github.com/MKhiriev/go-accountant/models"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	seedEmail    string
	seedPassword string
	seedCurrency string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "accountantctl",
		Short: "Accountant operations tool",
		Long:  `Administrative commands for the accountant backend: schema migrations and development seeding.`,
	}

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage database schema migrations",
	}

	migrateUpCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Run: func(cmd *cobra.Command, args []string) {
			runMigration(migrations.Migrate, "migrations applied")
		},
	}

	migrateDownCmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		Run: func(cmd *cobra.Command, args []string) {
			runMigration(migrations.Rollback, "migration rolled back")
		},
	}

	migrateStatusCmd := &cobra.Command{
		Use:   "status",
		Short: "Print the status of every known migration",
		Run: func(cmd *cobra.Command, args []string) {
			runMigration(migrations.Status, "")
		},
	}

	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateStatusCmd)
	rootCmd.AddCommand(migrateCmd)

	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Create a demo account with default records",
		Long:  `Registers a demo user and creates a starter wallet, categories and payment methods. Intended for development databases only.`,
		Run: func(cmd *cobra.Command, args []string) {
			runSeed()
		},
	}

	seedCmd.Flags().StringVar(&seedEmail, "email", "demo@example.com", "Email of the demo account")
	seedCmd.Flags().StringVar(&seedPassword, "password", "demo-password-1", "Password of the demo account")
	seedCmd.Flags().StringVar(&seedCurrency, "currency", "", "Currency of the starter wallet (defaults to the configured base currency)")
	rootCmd.AddCommand(seedCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// loadConfig reads the environment the same way the server does, so one
// .env file drives both binaries.
func loadConfig() *config.StructuredConfig {
	_ = godotenv.Load()

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	return cfg
}

func runMigration(fn func(db *sql.DB) error, doneMsg string) {
	log := logger.NewConsoleLogger("accountantctl")
	cfg := loadConfig()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := store.NewConnectPostgres(ctx, cfg.Storage.DB, log)
	if err != nil {
		fmt.Printf("Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := fn(db.DB); err != nil {
		fmt.Printf("Migration command failed: %v\n", err)
		os.Exit(1)
	}

	if doneMsg != "" {
		fmt.Println(doneMsg)
	}
}

func runSeed() {
	log := logger.NewConsoleLogger("accountantctl")
	cfg := loadConfig()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	storages, err := store.NewStorages(ctx, cfg.Storage.DB, log)
	if err != nil {
		fmt.Printf("Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer storages.Close()

	adapters, err := adapter.NewAdapters(cfg, log)
	if err != nil {
		fmt.Printf("Failed to build adapters: %v\n", err)
		os.Exit(1)
	}
	defer adapters.Close()

	// Unregistered metrics; nothing scrapes a one-shot command.
	services, err := service.NewServices(storages, adapters, metrics.NewWith(nil), cfg, log)
	if err != nil {
		fmt.Printf("Failed to build services: %v\n", err)
		os.Exit(1)
	}

	displayName := "Demo User"
	auth, err := services.AuthService.Register(ctx, models.RegisterRequest{
		Email:       seedEmail,
		Password:    seedPassword,
		DisplayName: &displayName,
	})
	if err != nil {
		fmt.Printf("Failed to register demo user: %v\n", err)
		os.Exit(1)
	}
	userID := auth.User.UserID
	fmt.Printf("Created user %s (id %d)\n", auth.User.Email, userID)

	currency := seedCurrency
	if currency == "" {
		currency = cfg.Rates.BaseCurrency
	}

	seedRecord(ctx, services.RecordService, userID, models.KindWallet, models.WalletPayload{
		Name:      "Cash",
		Currency:  currency,
		IsDefault: true,
	})

	for _, name := range []string{"Groceries", "Transport", "Entertainment", "Salary"} {
		seedRecord(ctx, services.RecordService, userID, models.KindCategory, models.CategoryPayload{Name: name})
	}

	seedRecord(ctx, services.RecordService, userID, models.KindPaymentMethod, models.PaymentMethodPayload{
		Name:      "Cash",
		IsDefault: true,
	})
	seedRecord(ctx, services.RecordService, userID, models.KindPaymentMethod, models.PaymentMethodPayload{
		Name: "Debit card",
	})

	fmt.Println("Seeding complete")
}

func seedRecord(ctx context.Context, records service.RecordService, userID int64, kind models.EntityKind, payload any) {
	raw, err := json.Marshal(payload)
	if err != nil {
		fmt.Printf("Failed to encode %s payload: %v\n", kind, err)
		os.Exit(1)
	}

	entity, err := records.Create(ctx, userID, kind, raw)
	if err != nil {
		fmt.Printf("Failed to create %s: %v\n", kind, err)
		os.Exit(1)
	}

	fmt.Printf("Created %s %s\n", kind, entity.ServerID)
}
