package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/go-accountant/internal/service"
	"github.com/MKhiriev/go-accountant/internal/store"
	"github.com/MKhiriev/go-accountant/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHandlerWithIAP(t *testing.T, iap service.IAPService) *Handler {
	t.Helper()
	return newHandlerWithServices(t, &service.Services{IAPService: iap})
}

// ---- verify ----

func TestVerifyPurchase_Success(t *testing.T) {
	expires := time.Date(2026, 9, 25, 0, 0, 0, 0, time.UTC)
	days := 31

	iap := &mockIAPService{
		verifyFn: func(_ context.Context, userID int64, req models.VerifyPurchaseRequest) (models.SubscriptionStatus, error) {
			assert.Equal(t, testUserID, userID)
			assert.Equal(t, models.PlatformAndroid, req.Platform)
			assert.Equal(t, "premium_monthly", req.ProductID)
			assert.Equal(t, "token-abc", req.PurchaseToken)
			return models.SubscriptionStatus{
				Tier:          models.TierPremium,
				IsPremium:     true,
				ExpiresAt:     &expires,
				DaysRemaining: &days,
			}, nil
		},
	}

	h := newHandlerWithIAP(t, iap)
	body := jsonBody(t, models.VerifyPurchaseRequest{
		Platform:      models.PlatformAndroid,
		ProductID:     "premium_monthly",
		PurchaseToken: "token-abc",
	})
	req := withUser(httptest.NewRequest(http.MethodPost, "/api/v1/iap/verify", strings.NewReader(body)), testUserID)
	rec := httptest.NewRecorder()

	h.verifyPurchase(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var status models.SubscriptionStatus
	decodeJSON(t, rec.Body.Bytes(), &status)
	assert.Equal(t, models.TierPremium, status.Tier)
	assert.True(t, status.IsPremium)
	require.NotNil(t, status.DaysRemaining)
	assert.Equal(t, 31, *status.DaysRemaining)
}

func TestVerifyPurchase_InvalidJSON(t *testing.T) {
	h := newHandlerWithIAP(t, &mockIAPService{})

	req := withUser(httptest.NewRequest(http.MethodPost, "/api/v1/iap/verify", strings.NewReader(`{"platform":`)), testUserID)
	rec := httptest.NewRecorder()

	h.verifyPurchase(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid JSON was passed")
}

func TestVerifyPurchase_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{name: "store rejected token", serviceErr: service.ErrVerificationFailed, wantStatus: http.StatusPaymentRequired},
		{name: "unknown product", serviceErr: service.ErrUnknownProduct, wantStatus: http.StatusBadRequest},
		{name: "token already claimed", serviceErr: store.ErrPurchaseExists, wantStatus: http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			iap := &mockIAPService{
				verifyFn: func(_ context.Context, _ int64, _ models.VerifyPurchaseRequest) (models.SubscriptionStatus, error) {
					return models.SubscriptionStatus{}, tt.serviceErr
				},
			}

			h := newHandlerWithIAP(t, iap)
			body := jsonBody(t, models.VerifyPurchaseRequest{Platform: models.PlatformIOS, ProductID: "premium_yearly", PurchaseToken: "t"})
			req := withUser(httptest.NewRequest(http.MethodPost, "/api/v1/iap/verify", strings.NewReader(body)), testUserID)
			rec := httptest.NewRecorder()

			h.verifyPurchase(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

// ---- restore ----

func TestRestorePurchases_Success(t *testing.T) {
	iap := &mockIAPService{
		restoreFn: func(_ context.Context, userID int64, req models.RestorePurchasesRequest) (models.RestoreResponse, error) {
			assert.Equal(t, testUserID, userID)
			assert.Equal(t, models.PlatformIOS, req.Platform)
			assert.Equal(t, []string{"tok-1", "tok-2"}, req.PurchaseTokens)
			return models.RestoreResponse{RestoredCount: 2, ActiveSubscription: models.TierPremium}, nil
		},
	}

	h := newHandlerWithIAP(t, iap)
	body := jsonBody(t, models.RestorePurchasesRequest{Platform: models.PlatformIOS, PurchaseTokens: []string{"tok-1", "tok-2"}})
	req := withUser(httptest.NewRequest(http.MethodPost, "/api/v1/iap/restore", strings.NewReader(body)), testUserID)
	rec := httptest.NewRecorder()

	h.restorePurchases(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.RestoreResponse
	decodeJSON(t, rec.Body.Bytes(), &resp)
	assert.Equal(t, 2, resp.RestoredCount)
	assert.Equal(t, models.TierPremium, resp.ActiveSubscription)
}

func TestRestorePurchases_NothingToRestore(t *testing.T) {
	iap := &mockIAPService{
		restoreFn: func(_ context.Context, _ int64, _ models.RestorePurchasesRequest) (models.RestoreResponse, error) {
			return models.RestoreResponse{RestoredCount: 0, ActiveSubscription: models.TierFree}, nil
		},
	}

	h := newHandlerWithIAP(t, iap)
	body := jsonBody(t, models.RestorePurchasesRequest{Platform: models.PlatformAndroid})
	req := withUser(httptest.NewRequest(http.MethodPost, "/api/v1/iap/restore", strings.NewReader(body)), testUserID)
	rec := httptest.NewRecorder()

	h.restorePurchases(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.RestoreResponse
	decodeJSON(t, rec.Body.Bytes(), &resp)
	assert.Zero(t, resp.RestoredCount)
}

// ---- status ----

func TestSubscriptionStatus_FreeUser(t *testing.T) {
	iap := &mockIAPService{
		statusFn: func(_ context.Context, userID int64) (models.SubscriptionStatus, error) {
			assert.Equal(t, testUserID, userID)
			return models.SubscriptionStatus{Tier: models.TierFree}, nil
		},
	}

	h := newHandlerWithIAP(t, iap)
	req := withUser(httptest.NewRequest(http.MethodGet, "/api/v1/iap/status", nil), testUserID)
	rec := httptest.NewRecorder()

	h.subscriptionStatus(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var status models.SubscriptionStatus
	decodeJSON(t, rec.Body.Bytes(), &status)
	assert.Equal(t, models.TierFree, status.Tier)
	assert.False(t, status.IsPremium)
	assert.Nil(t, status.ExpiresAt)
}

func TestSubscriptionStatus_Lifetime(t *testing.T) {
	iap := &mockIAPService{
		statusFn: func(_ context.Context, _ int64) (models.SubscriptionStatus, error) {
			return models.SubscriptionStatus{Tier: models.TierPremiumLifetime, IsPremium: true}, nil
		},
	}

	h := newHandlerWithIAP(t, iap)
	req := withUser(httptest.NewRequest(http.MethodGet, "/api/v1/iap/status", nil), testUserID)
	rec := httptest.NewRecorder()

	h.subscriptionStatus(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var status models.SubscriptionStatus
	decodeJSON(t, rec.Body.Bytes(), &status)
	assert.Equal(t, models.TierPremiumLifetime, status.Tier)
	assert.Nil(t, status.DaysRemaining)
}

func TestSubscriptionStatus_NoUserInContext(t *testing.T) {
	h := newHandlerWithIAP(t, &mockIAPService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/iap/status", nil)
	rec := httptest.NewRecorder()

	h.subscriptionStatus(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
