package store

import (
	"context"

	"github.com/MKhiriev/go-accountant/internal/config"
	"github.com/MKhiriev/go-accountant/internal/logger"
)

// Storages bundles every repository behind one handle so the service layer
// receives a single dependency.
type Storages struct {
	DB *DB

	Users     UserRepository
	Records   RecordRepository
	Rates     RateRepository
	Titles    TitleRepository
	Purchases PurchaseRepository

	// Retrier re-runs record writes that lost a row-level race.
	Retrier *Retrier
}

// NewStorages connects to PostgreSQL and constructs every repository over
// the shared connection pool.
func NewStorages(ctx context.Context, cfg config.DB, log *logger.Logger) (*Storages, error) {
	db, err := NewConnectPostgres(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	return &Storages{
		DB:        db,
		Users:     NewUserRepository(db, log),
		Records:   NewRecordRepository(db, log),
		Rates:     NewRateRepository(db, log),
		Titles:    NewTitleRepository(db, log),
		Purchases: NewPurchaseRepository(db, log),
		Retrier:   NewRetrier(log),
	}, nil
}

// Close releases the underlying connection pool.
func (s *Storages) Close() error {
	if s.DB == nil {
		return nil
	}
	return s.DB.Close()
}
