package service

import (
	"github.com/MKhiriev/go-accountant/internal/adapter"
	"github.com/MKhiriev/go-accountant/internal/config"
	"github.com/MKhiriev/go-accountant/internal/logger"
	"github.com/MKhiriev/go-accountant/internal/metrics"
	"github.com/MKhiriev/go-accountant/internal/store"
	"github.com/MKhiriev/go-accountant/internal/validators"
)

// Services bundles every business-logic service the handlers and
// workers depend on.
type Services struct {
	AuthService        AuthService
	SyncService        SyncService
	RecordService      RecordService
	TransactionService TransactionService
	RateService        RateService
	IAPService         IAPService
	RecurringService   RecurringService
	TitleService       TitleService
	AppInfoService     AppInfoService
}

// NewServices wires the service layer over the repositories and outbound
// adapters. All services share one payload validator and the store's
// write retrier.
func NewServices(storages *store.Storages, adapters *adapter.Adapters, m *metrics.Metrics, cfg *config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, err
	}

	validator := validators.NewPayloadValidator()

	return &Services{
		AuthService:        NewAuthService(storages.Users, adapters.Firebase, validator, cfg.App, logger),
		SyncService:        NewSyncService(storages.Records, storages.Retrier, validator, adapters.Events, m, logger),
		RecordService:      NewRecordService(storages.Records, storages.Retrier, validator, adapters.Events, logger),
		TransactionService: NewTransactionService(storages.Records, storages.Retrier, validator, adapters.Events, logger),
		RateService:        NewRateService(storages.Rates, adapters.Rates, validator, cfg.Rates, logger),
		IAPService:         NewIAPService(storages.Users, storages.Purchases, adapters.Purchases, validator, logger),
		RecurringService:   NewRecurringService(storages.Records, storages.Retrier, adapters.Events, m, cfg.Workers, logger),
		TitleService:       NewTitleService(storages.Titles, validator, logger),
		AppInfoService:     appInfoService,
	}, nil
}
