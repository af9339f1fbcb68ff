package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-accountant/internal/logger"
	"github.com/shopspring/decimal"
)

var rateTestColumns = []string{
	"id", "user_id", "from_currency", "to_currency", "api_rate", "custom_rate",
	"use_custom_rate", "api_rate_fetched_at", "version", "created_at", "updated_at",
}

func newTestRateRepo(t *testing.T) (*rateRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.NewLogger("test")
	repo := &rateRepository{
		DB:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func TestUpsertCustomRate_Success(t *testing.T) {
	repo, mock, db := newTestRateRepo(t)
	defer db.Close()

	ctx := context.Background()
	now := time.Now()
	rate := decimal.RequireFromString("0.92")

	mock.ExpectQuery("INSERT INTO exchange_rates").
		WithArgs(int64(1), "USD", "EUR", &rate, true).
		WillReturnRows(sqlmock.NewRows(rateTestColumns).
			AddRow(int64(5), int64(1), "USD", "EUR", nil, "0.92", true, nil, int64(2), now, now))

	saved, err := repo.UpsertCustomRate(ctx, 1, "USD", "EUR", &rate, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved.CustomRate == nil || !saved.CustomRate.Equal(rate) {
		t.Errorf("expected custom rate 0.92, got %v", saved.CustomRate)
	}
	if !saved.UseCustomRate {
		t.Error("expected use_custom_rate to be set")
	}
	if saved.Version != 2 {
		t.Errorf("expected bumped version, got %d", saved.Version)
	}
}

func TestUpsertAPIRate_KeepsCustomColumns(t *testing.T) {
	repo, mock, db := newTestRateRepo(t)
	defer db.Close()

	ctx := context.Background()
	now := time.Now()
	fetched := now.Add(-time.Minute)
	rate := decimal.RequireFromString("1.0871")

	mock.ExpectQuery("INSERT INTO exchange_rates").
		WithArgs(int64(1), "EUR", "USD", rate, fetched).
		WillReturnRows(sqlmock.NewRows(rateTestColumns).
			AddRow(int64(6), int64(1), "EUR", "USD", "1.0871", "1.10", true, fetched, int64(4), now, now))

	saved, err := repo.UpsertAPIRate(ctx, 1, "EUR", "USD", rate, fetched)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved.APIRate == nil || !saved.APIRate.Equal(rate) {
		t.Errorf("expected api rate 1.0871, got %v", saved.APIRate)
	}
	if saved.CustomRate == nil || !saved.UseCustomRate {
		t.Error("expected custom override to survive the refresh")
	}
}

func TestFindRate_NotFound(t *testing.T) {
	repo, mock, db := newTestRateRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("FROM exchange_rates").
		WithArgs(int64(1), "USD", "JPY").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindRate(ctx, 1, "USD", "JPY")
	if !errors.Is(err, ErrRateNotFound) {
		t.Fatalf("expected ErrRateNotFound, got %v", err)
	}
}

func TestListRates_ScansAllRows(t *testing.T) {
	repo, mock, db := newTestRateRepo(t)
	defer db.Close()

	ctx := context.Background()
	now := time.Now()

	mock.ExpectQuery("FROM exchange_rates").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(rateTestColumns).
			AddRow(int64(1), int64(1), "EUR", "USD", "1.08", nil, false, now, int64(1), now, now).
			AddRow(int64(2), int64(1), "USD", "EUR", nil, "0.92", true, nil, int64(3), now, now))

	rates, err := repo.ListRates(ctx, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rates) != 2 {
		t.Fatalf("expected 2 rates, got %d", len(rates))
	}
	if rates[0].APIRate == nil {
		t.Error("expected api rate on first row")
	}
	if rates[1].APIRate != nil {
		t.Error("expected nil api rate on second row")
	}
}

func TestDeleteRate_Success(t *testing.T) {
	repo, mock, db := newTestRateRepo(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM exchange_rates").
		WithArgs(int64(1), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.DeleteRate(context.Background(), 1, 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDeleteRate_NotFound(t *testing.T) {
	repo, mock, db := newTestRateRepo(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM exchange_rates").
		WithArgs(int64(1), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.DeleteRate(context.Background(), 1, 7); !errors.Is(err, ErrRateNotFound) {
		t.Fatalf("expected ErrRateNotFound, got %v", err)
	}
}
