package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/go-accountant/internal/service"
	"github.com/MKhiriev/go-accountant/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHandlerWithSync(t *testing.T, sync service.SyncService) *Handler {
	t.Helper()
	return newHandlerWithServices(t, &service.Services{SyncService: sync})
}

// ---- sync ----

func TestSync_Success(t *testing.T) {
	watermark := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	var gotUserID int64
	var gotBatch models.SyncBatch
	sync := &mockSyncService{
		reconcileFn: func(_ context.Context, userID int64, batch models.SyncBatch) (models.SyncResult, error) {
			gotUserID = userID
			gotBatch = batch
			return models.SyncResult{
				Outcomes: []models.EntityOutcome{
					{Kind: models.KindWallet, ClientID: "w-1", ServerID: "srv-1", Status: models.OutcomeAccepted},
				},
				ServerChanges: []models.SyncEntity{
					{Kind: models.KindCategory, ClientID: "c-9", ServerID: "srv-9"},
				},
				SyncedAt: watermark,
			}, nil
		},
	}

	h := newHandlerWithSync(t, sync)
	body := jsonBody(t, models.SyncBatch{
		Entities: []models.SyncEntity{
			{Kind: models.KindWallet, ClientID: "w-1", ClientUpdatedAt: watermark.Add(-time.Hour)},
		},
	})
	req := withUser(httptest.NewRequest(http.MethodPost, "/api/v1/sync", strings.NewReader(body)), testUserID)
	rec := httptest.NewRecorder()

	h.sync(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, testUserID, gotUserID)
	require.Len(t, gotBatch.Entities, 1)
	assert.Equal(t, "w-1", gotBatch.Entities[0].ClientID)

	var result models.SyncResult
	decodeJSON(t, rec.Body.Bytes(), &result)
	require.Len(t, result.Outcomes, 1)
	assert.Equal(t, models.OutcomeAccepted, result.Outcomes[0].Status)
	require.Len(t, result.ServerChanges, 1)
	assert.Equal(t, "srv-9", result.ServerChanges[0].ServerID)
	assert.True(t, result.SyncedAt.Equal(watermark))
}

func TestSync_EmptyBatch(t *testing.T) {
	sync := &mockSyncService{
		reconcileFn: func(_ context.Context, _ int64, batch models.SyncBatch) (models.SyncResult, error) {
			assert.Empty(t, batch.Entities)
			return models.SyncResult{SyncedAt: time.Now()}, nil
		},
	}

	h := newHandlerWithSync(t, sync)
	req := withUser(httptest.NewRequest(http.MethodPost, "/api/v1/sync", strings.NewReader(`{"entities":[]}`)), testUserID)
	rec := httptest.NewRecorder()

	h.sync(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSync_InvalidJSON(t *testing.T) {
	h := newHandlerWithSync(t, &mockSyncService{})

	req := withUser(httptest.NewRequest(http.MethodPost, "/api/v1/sync", strings.NewReader("{broken")), testUserID)
	rec := httptest.NewRecorder()

	h.sync(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid JSON was passed")
}

func TestSync_NoUserInContext(t *testing.T) {
	h := newHandlerWithSync(t, &mockSyncService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sync", strings.NewReader(`{"entities":[]}`))
	rec := httptest.NewRecorder()

	h.sync(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSync_ServiceErrors(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{"validation failure", service.ErrInvalidDataProvided, http.StatusBadRequest},
		{"storage failure", errors.New("pg down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sync := &mockSyncService{
				reconcileFn: func(_ context.Context, _ int64, _ models.SyncBatch) (models.SyncResult, error) {
					return models.SyncResult{}, tt.serviceErr
				},
			}

			h := newHandlerWithSync(t, sync)
			req := withUser(httptest.NewRequest(http.MethodPost, "/api/v1/sync", strings.NewReader(`{"entities":[]}`)), testUserID)
			rec := httptest.NewRecorder()

			h.sync(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

// ---- syncStatus ----

func TestSyncStatus_Success(t *testing.T) {
	serverAt := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	changed := serverAt.Add(-time.Minute)

	sync := &mockSyncService{
		statusFn: func(_ context.Context, userID int64) (models.SyncStatus, error) {
			assert.Equal(t, testUserID, userID)
			return models.SyncStatus{
				Kinds: map[models.EntityKind]models.KindCounts{
					models.KindWallet:      {Total: 3, Deleted: 1, LastChangedAt: &changed},
					models.KindTransaction: {Total: 120},
				},
				ServerAt: serverAt,
			}, nil
		},
	}

	h := newHandlerWithSync(t, sync)
	req := withUser(httptest.NewRequest(http.MethodGet, "/api/v1/sync/status", nil), testUserID)
	rec := httptest.NewRecorder()

	h.syncStatus(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var status models.SyncStatus
	decodeJSON(t, rec.Body.Bytes(), &status)
	assert.Equal(t, int64(3), status.Kinds[models.KindWallet].Total)
	assert.Equal(t, int64(1), status.Kinds[models.KindWallet].Deleted)
	assert.Equal(t, int64(120), status.Kinds[models.KindTransaction].Total)
	assert.True(t, status.ServerAt.Equal(serverAt))
}

func TestSyncStatus_ServiceFailure(t *testing.T) {
	sync := &mockSyncService{
		statusFn: func(_ context.Context, _ int64) (models.SyncStatus, error) {
			return models.SyncStatus{}, errors.New("stats query failed")
		},
	}

	h := newHandlerWithSync(t, sync)
	req := withUser(httptest.NewRequest(http.MethodGet, "/api/v1/sync/status", nil), testUserID)
	rec := httptest.NewRecorder()

	h.syncStatus(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
