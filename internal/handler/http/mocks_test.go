// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/MKhiriev/go-accountant/internal/config"
	"github.com/MKhiriev/go-accountant/internal/logger"
	"github.com/MKhiriev/go-accountant/internal/service"
	"github.com/MKhiriev/go-accountant/internal/utils"
	"github.com/MKhiriev/go-accountant/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// testUserID is the account id the stub token resolves to.
const testUserID int64 = 42

// ─────────────────────────────────────────────
// Service mocks
// ─────────────────────────────────────────────
//
// Each mock implements one service interface through overridable
// function fields. A test sets only the functions it expects the
// handler to call; an unexpected call panics on the nil field and
// fails the test loudly.

type mockAuthService struct {
	registerFn       func(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error)
	loginFn          func(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error)
	firebaseSignInFn func(ctx context.Context, req models.FirebaseSignInRequest) (models.AuthResponse, error)
	linkGoogleFn     func(ctx context.Context, req models.LinkAccountRequest) (models.AuthResponse, error)
	unlinkGoogleFn   func(ctx context.Context, userID int64) (models.User, error)
	providersFn      func(ctx context.Context, userID int64) (models.AuthProvidersResponse, error)
	profileFn        func(ctx context.Context, userID int64) (models.User, error)
	updateProfileFn  func(ctx context.Context, userID int64, req models.ProfileUpdateRequest) (models.User, error)
	parseTokenFn     func(ctx context.Context, tokenString string) (models.Token, error)
}

func (m *mockAuthService) Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error) {
	return m.registerFn(ctx, req)
}

func (m *mockAuthService) Login(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error) {
	return m.loginFn(ctx, req)
}

func (m *mockAuthService) FirebaseSignIn(ctx context.Context, req models.FirebaseSignInRequest) (models.AuthResponse, error) {
	return m.firebaseSignInFn(ctx, req)
}

func (m *mockAuthService) LinkGoogle(ctx context.Context, req models.LinkAccountRequest) (models.AuthResponse, error) {
	return m.linkGoogleFn(ctx, req)
}

func (m *mockAuthService) UnlinkGoogle(ctx context.Context, userID int64) (models.User, error) {
	return m.unlinkGoogleFn(ctx, userID)
}

func (m *mockAuthService) Providers(ctx context.Context, userID int64) (models.AuthProvidersResponse, error) {
	return m.providersFn(ctx, userID)
}

func (m *mockAuthService) Profile(ctx context.Context, userID int64) (models.User, error) {
	return m.profileFn(ctx, userID)
}

func (m *mockAuthService) UpdateProfile(ctx context.Context, userID int64, req models.ProfileUpdateRequest) (models.User, error) {
	return m.updateProfileFn(ctx, userID, req)
}

func (m *mockAuthService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	return m.parseTokenFn(ctx, tokenString)
}

type mockSyncService struct {
	reconcileFn func(ctx context.Context, userID int64, batch models.SyncBatch) (models.SyncResult, error)
	statusFn    func(ctx context.Context, userID int64) (models.SyncStatus, error)
}

func (m *mockSyncService) Reconcile(ctx context.Context, userID int64, batch models.SyncBatch) (models.SyncResult, error) {
	return m.reconcileFn(ctx, userID, batch)
}

func (m *mockSyncService) Status(ctx context.Context, userID int64) (models.SyncStatus, error) {
	return m.statusFn(ctx, userID)
}

type mockRecordService struct {
	createFn        func(ctx context.Context, userID int64, kind models.EntityKind, payload []byte) (models.SyncEntity, error)
	getFn           func(ctx context.Context, userID int64, kind models.EntityKind, serverID string) (models.SyncEntity, error)
	listFn          func(ctx context.Context, userID int64, kind models.EntityKind) ([]models.SyncEntity, error)
	updateFn        func(ctx context.Context, userID int64, kind models.EntityKind, serverID string, payload []byte) (models.SyncEntity, error)
	deleteFn        func(ctx context.Context, userID int64, kind models.EntityKind, serverID string) error
	defaultWalletFn func(ctx context.Context, userID int64) (models.SyncEntity, error)
}

func (m *mockRecordService) Create(ctx context.Context, userID int64, kind models.EntityKind, payload []byte) (models.SyncEntity, error) {
	return m.createFn(ctx, userID, kind, payload)
}

func (m *mockRecordService) Get(ctx context.Context, userID int64, kind models.EntityKind, serverID string) (models.SyncEntity, error) {
	return m.getFn(ctx, userID, kind, serverID)
}

func (m *mockRecordService) List(ctx context.Context, userID int64, kind models.EntityKind) ([]models.SyncEntity, error) {
	return m.listFn(ctx, userID, kind)
}

func (m *mockRecordService) Update(ctx context.Context, userID int64, kind models.EntityKind, serverID string, payload []byte) (models.SyncEntity, error) {
	return m.updateFn(ctx, userID, kind, serverID, payload)
}

func (m *mockRecordService) Delete(ctx context.Context, userID int64, kind models.EntityKind, serverID string) error {
	return m.deleteFn(ctx, userID, kind, serverID)
}

func (m *mockRecordService) DefaultWallet(ctx context.Context, userID int64) (models.SyncEntity, error) {
	return m.defaultWalletFn(ctx, userID)
}

type mockTransactionService struct {
	listFn       func(ctx context.Context, userID int64, filter models.TransactionFilter) ([]models.SyncEntity, error)
	createFn     func(ctx context.Context, userID int64, payload []byte) (models.SyncEntity, error)
	updateFn     func(ctx context.Context, userID int64, serverID string, payload []byte) (models.SyncEntity, error)
	deleteFn     func(ctx context.Context, userID int64, serverID string) error
	bulkCreateFn func(ctx context.Context, userID int64, payloads [][]byte) (models.BulkCreateResponse, error)
}

func (m *mockTransactionService) List(ctx context.Context, userID int64, filter models.TransactionFilter) ([]models.SyncEntity, error) {
	return m.listFn(ctx, userID, filter)
}

func (m *mockTransactionService) Create(ctx context.Context, userID int64, payload []byte) (models.SyncEntity, error) {
	return m.createFn(ctx, userID, payload)
}

func (m *mockTransactionService) Update(ctx context.Context, userID int64, serverID string, payload []byte) (models.SyncEntity, error) {
	return m.updateFn(ctx, userID, serverID, payload)
}

func (m *mockTransactionService) Delete(ctx context.Context, userID int64, serverID string) error {
	return m.deleteFn(ctx, userID, serverID)
}

func (m *mockTransactionService) BulkCreate(ctx context.Context, userID int64, payloads [][]byte) (models.BulkCreateResponse, error) {
	return m.bulkCreateFn(ctx, userID, payloads)
}

type mockRateService struct {
	listFn    func(ctx context.Context, userID int64) ([]models.ExchangeRate, error)
	upsertFn  func(ctx context.Context, userID int64, req models.RateUpsertRequest) (models.ExchangeRate, error)
	deleteFn  func(ctx context.Context, userID int64, rateID int64) error
	convertFn func(ctx context.Context, userID int64, from, to string, amount decimal.Decimal) (models.ConvertResponse, error)
	refreshFn func(ctx context.Context, userID int64) ([]models.ExchangeRate, error)
}

func (m *mockRateService) List(ctx context.Context, userID int64) ([]models.ExchangeRate, error) {
	return m.listFn(ctx, userID)
}

func (m *mockRateService) Upsert(ctx context.Context, userID int64, req models.RateUpsertRequest) (models.ExchangeRate, error) {
	return m.upsertFn(ctx, userID, req)
}

func (m *mockRateService) Delete(ctx context.Context, userID int64, rateID int64) error {
	return m.deleteFn(ctx, userID, rateID)
}

func (m *mockRateService) Convert(ctx context.Context, userID int64, from, to string, amount decimal.Decimal) (models.ConvertResponse, error) {
	return m.convertFn(ctx, userID, from, to, amount)
}

func (m *mockRateService) Refresh(ctx context.Context, userID int64) ([]models.ExchangeRate, error) {
	return m.refreshFn(ctx, userID)
}

type mockIAPService struct {
	verifyFn  func(ctx context.Context, userID int64, req models.VerifyPurchaseRequest) (models.SubscriptionStatus, error)
	restoreFn func(ctx context.Context, userID int64, req models.RestorePurchasesRequest) (models.RestoreResponse, error)
	statusFn  func(ctx context.Context, userID int64) (models.SubscriptionStatus, error)
}

func (m *mockIAPService) Verify(ctx context.Context, userID int64, req models.VerifyPurchaseRequest) (models.SubscriptionStatus, error) {
	return m.verifyFn(ctx, userID, req)
}

func (m *mockIAPService) Restore(ctx context.Context, userID int64, req models.RestorePurchasesRequest) (models.RestoreResponse, error) {
	return m.restoreFn(ctx, userID, req)
}

func (m *mockIAPService) Status(ctx context.Context, userID int64) (models.SubscriptionStatus, error) {
	return m.statusFn(ctx, userID)
}

type mockRecurringService struct {
	processUserFn func(ctx context.Context, userID int64) (int, error)
	processDueFn  func(ctx context.Context, now time.Time) (int, error)
}

func (m *mockRecurringService) ProcessUser(ctx context.Context, userID int64) (int, error) {
	return m.processUserFn(ctx, userID)
}

func (m *mockRecurringService) ProcessDue(ctx context.Context, now time.Time) (int, error) {
	return m.processDueFn(ctx, now)
}

type mockTitleService struct {
	listFn   func(ctx context.Context, userID int64) ([]models.AssociatedTitle, error)
	upsertFn func(ctx context.Context, userID int64, req models.TitleUpsertRequest) (models.AssociatedTitle, error)
	deleteFn func(ctx context.Context, userID int64, titleID int64) error
	matchFn  func(ctx context.Context, userID int64, title string) (models.TitleMatchResponse, error)
}

func (m *mockTitleService) List(ctx context.Context, userID int64) ([]models.AssociatedTitle, error) {
	return m.listFn(ctx, userID)
}

func (m *mockTitleService) Upsert(ctx context.Context, userID int64, req models.TitleUpsertRequest) (models.AssociatedTitle, error) {
	return m.upsertFn(ctx, userID, req)
}

func (m *mockTitleService) Delete(ctx context.Context, userID int64, titleID int64) error {
	return m.deleteFn(ctx, userID, titleID)
}

func (m *mockTitleService) Match(ctx context.Context, userID int64, title string) (models.TitleMatchResponse, error) {
	return m.matchFn(ctx, userID, title)
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

// newTestHandler builds a bare Handler for middleware tests that never
// reach the service layer.
func newTestHandler() *Handler {
	return &Handler{logger: logger.Nop()}
}

// newHandlerWithServices builds a Handler over the given service set with
// a nop logger, no database and no metrics.
func newHandlerWithServices(t *testing.T, svcs *service.Services) *Handler {
	t.Helper()
	return NewHandler(svcs, nil, nil, config.RateLimit{}, logger.Nop())
}

// withUser attaches the authenticated user id the way the auth
// middleware does, so handlers can be invoked directly.
func withUser(r *http.Request, userID int64) *http.Request {
	ctx := context.WithValue(r.Context(), utils.UserIDCtxKey, userID)
	return r.WithContext(ctx)
}

// jsonBody serialises v into a JSON request body string.
func jsonBody(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

// decodeJSON unmarshals the response body into out.
func decodeJSON(t *testing.T, data []byte, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(data, out))
}

// newStubServices returns a service set whose every method succeeds with
// zero values. Router-level tests use it so any route can be exercised
// without per-test wiring; the stub token resolves to testUserID.
func newStubServices() *service.Services {
	return &service.Services{
		AuthService: &mockAuthService{
			registerFn: func(context.Context, models.RegisterRequest) (models.AuthResponse, error) {
				return models.AuthResponse{}, nil
			},
			loginFn: func(context.Context, models.LoginRequest) (models.AuthResponse, error) {
				return models.AuthResponse{}, nil
			},
			firebaseSignInFn: func(context.Context, models.FirebaseSignInRequest) (models.AuthResponse, error) {
				return models.AuthResponse{}, nil
			},
			linkGoogleFn: func(context.Context, models.LinkAccountRequest) (models.AuthResponse, error) {
				return models.AuthResponse{}, nil
			},
			unlinkGoogleFn: func(context.Context, int64) (models.User, error) {
				return models.User{}, nil
			},
			providersFn: func(context.Context, int64) (models.AuthProvidersResponse, error) {
				return models.AuthProvidersResponse{}, nil
			},
			profileFn: func(context.Context, int64) (models.User, error) {
				return models.User{}, nil
			},
			updateProfileFn: func(context.Context, int64, models.ProfileUpdateRequest) (models.User, error) {
				return models.User{}, nil
			},
			parseTokenFn: func(context.Context, string) (models.Token, error) {
				return models.Token{UserID: testUserID}, nil
			},
		},
		SyncService: &mockSyncService{
			reconcileFn: func(context.Context, int64, models.SyncBatch) (models.SyncResult, error) {
				return models.SyncResult{}, nil
			},
			statusFn: func(context.Context, int64) (models.SyncStatus, error) {
				return models.SyncStatus{}, nil
			},
		},
		RecordService: &mockRecordService{
			createFn: func(context.Context, int64, models.EntityKind, []byte) (models.SyncEntity, error) {
				return models.SyncEntity{}, nil
			},
			getFn: func(context.Context, int64, models.EntityKind, string) (models.SyncEntity, error) {
				return models.SyncEntity{}, nil
			},
			listFn: func(context.Context, int64, models.EntityKind) ([]models.SyncEntity, error) {
				return nil, nil
			},
			updateFn: func(context.Context, int64, models.EntityKind, string, []byte) (models.SyncEntity, error) {
				return models.SyncEntity{}, nil
			},
			deleteFn: func(context.Context, int64, models.EntityKind, string) error {
				return nil
			},
			defaultWalletFn: func(context.Context, int64) (models.SyncEntity, error) {
				return models.SyncEntity{}, nil
			},
		},
		TransactionService: &mockTransactionService{
			listFn: func(context.Context, int64, models.TransactionFilter) ([]models.SyncEntity, error) {
				return nil, nil
			},
			createFn: func(context.Context, int64, []byte) (models.SyncEntity, error) {
				return models.SyncEntity{}, nil
			},
			updateFn: func(context.Context, int64, string, []byte) (models.SyncEntity, error) {
				return models.SyncEntity{}, nil
			},
			deleteFn: func(context.Context, int64, string) error {
				return nil
			},
			bulkCreateFn: func(context.Context, int64, [][]byte) (models.BulkCreateResponse, error) {
				return models.BulkCreateResponse{}, nil
			},
		},
		RateService: &mockRateService{
			listFn: func(context.Context, int64) ([]models.ExchangeRate, error) {
				return nil, nil
			},
			upsertFn: func(context.Context, int64, models.RateUpsertRequest) (models.ExchangeRate, error) {
				return models.ExchangeRate{}, nil
			},
			deleteFn: func(context.Context, int64, int64) error {
				return nil
			},
			convertFn: func(context.Context, int64, string, string, decimal.Decimal) (models.ConvertResponse, error) {
				return models.ConvertResponse{}, nil
			},
			refreshFn: func(context.Context, int64) ([]models.ExchangeRate, error) {
				return nil, nil
			},
		},
		IAPService: &mockIAPService{
			verifyFn: func(context.Context, int64, models.VerifyPurchaseRequest) (models.SubscriptionStatus, error) {
				return models.SubscriptionStatus{}, nil
			},
			restoreFn: func(context.Context, int64, models.RestorePurchasesRequest) (models.RestoreResponse, error) {
				return models.RestoreResponse{}, nil
			},
			statusFn: func(context.Context, int64) (models.SubscriptionStatus, error) {
				return models.SubscriptionStatus{}, nil
			},
		},
		RecurringService: &mockRecurringService{
			processUserFn: func(context.Context, int64) (int, error) {
				return 0, nil
			},
			processDueFn: func(context.Context, time.Time) (int, error) {
				return 0, nil
			},
		},
		TitleService: &mockTitleService{
			listFn: func(context.Context, int64) ([]models.AssociatedTitle, error) {
				return nil, nil
			},
			upsertFn: func(context.Context, int64, models.TitleUpsertRequest) (models.AssociatedTitle, error) {
				return models.AssociatedTitle{}, nil
			},
			deleteFn: func(context.Context, int64, int64) error {
				return nil
			},
			matchFn: func(context.Context, int64, string) (models.TitleMatchResponse, error) {
				return models.TitleMatchResponse{}, nil
			},
		},
		AppInfoService: &mockAppInfoService{version: "test-version"},
	}
}
