// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/go-accountant/internal/adapter"
	"github.com/MKhiriev/go-accountant/internal/logger"
	"github.com/MKhiriev/go-accountant/internal/store"
	"github.com/MKhiriev/go-accountant/internal/utils"
	"github.com/MKhiriev/go-accountant/internal/validators"
	"github.com/MKhiriev/go-accountant/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errTestStorage = errors.New("connection reset")

func newTestTransactionService(t *testing.T, repo *fakeRecordStore, events adapter.RecordEventPublisher) *transactionService {
	t.Helper()

	svc := NewTransactionService(
		repo,
		passRetrier{},
		validators.NewPayloadValidator(),
		events,
		logger.NewLogger("test"),
	).(*transactionService)
	svc.now = func() time.Time { return syncNow }

	return svc
}

// txnDoc builds a transaction document submitted over REST.
func txnDoc(walletID, amount string, income bool) []byte {
	doc := map[string]any{
		"wallet_id": walletID,
		"amount":    amount,
		"title":     "Coffee",
		"date":      "2026-08-15T00:00:00Z",
		"is_income": income,
	}

	payload, _ := json.Marshal(doc)
	return payload
}

// storedTxn builds a stored transaction row owned by walletID.
func storedTxn(clientID, serverID, walletID, amount string, income bool) models.Record {
	payload := txnDoc(walletID, amount, income)

	return models.Record{
		UserID:          testUserID,
		Kind:            models.KindTransaction,
		ClientID:        clientID,
		ServerID:        serverID,
		Payload:         json.RawMessage(payload),
		PayloadHash:     utils.PayloadHash(payload),
		ClientUpdatedAt: syncBase,
		ServerUpdatedAt: syncBase,
	}
}

// walletBalance reads the stored balance of a wallet row.
func walletBalance(t *testing.T, repo *fakeRecordStore, serverID string) decimal.Decimal {
	t.Helper()

	row, err := repo.GetByServerID(context.Background(), testUserID, serverID)
	require.NoError(t, err)

	var wallet models.WalletPayload
	require.NoError(t, row.UnmarshalPayload(&wallet))

	return wallet.Balance
}

func assertBalance(t *testing.T, repo *fakeRecordStore, serverID, want string) {
	t.Helper()

	got := walletBalance(t, repo, serverID)
	assert.True(t, decimal.RequireFromString(want).Equal(got),
		"wallet %s balance: want %s, got %s", serverID, want, got)
}

// ─────────────────────────────────────────────────────────────────────────────
// Create
// ─────────────────────────────────────────────────────────────────────────────

func TestTransactionService_Create_MovesWalletBalance(t *testing.T) {
	tests := []struct {
		name        string
		amount      string
		income      bool
		wantBalance string
	}{
		{name: "Expense → wallet decreases", amount: "40", income: false, wantBalance: "60"},
		{name: "Income → wallet increases", amount: "40", income: true, wantBalance: "140"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRecordStore()
			repo.seed(storedWallet("w-1", "sw-1", `{"name":"Cash","currency":"USD","balance":"100"}`))

			events := &recordingPublisher{}
			svc := newTestTransactionService(t, repo, events)

			entity, err := svc.Create(context.Background(), testUserID, txnDoc("sw-1", tt.amount, tt.income))
			require.NoError(t, err)
			require.NotEmpty(t, entity.ServerID)

			assertBalance(t, repo, "sw-1", tt.wantBalance)

			var txn models.TransactionPayload
			require.NoError(t, json.Unmarshal(entity.Payload, &txn))
			assert.Equal(t, models.TransactionRegular, txn.Type, "omitted type defaults to regular")

			// Transaction insert plus wallet adjustment.
			require.Len(t, events.events, 2)
			assert.Equal(t, models.KindTransaction, events.events[0].Kind)
			assert.Equal(t, models.KindWallet, events.events[1].Kind)
		})
	}
}

func TestTransactionService_Create_Rejections(t *testing.T) {
	repo := newFakeRecordStore()
	repo.seed(storedWallet("w-1", "sw-1", `{"name":"Cash","currency":"USD","balance":"100"}`))

	svc := newTestTransactionService(t, repo, &recordingPublisher{})

	t.Run("UnknownWallet → rejected", func(t *testing.T) {
		_, err := svc.Create(context.Background(), testUserID, txnDoc("sw-missing", "40", false))
		require.ErrorIs(t, err, ErrUnknownWallet)
		assert.Zero(t, repo.writes)
	})

	t.Run("NonPositiveAmount → rejected", func(t *testing.T) {
		_, err := svc.Create(context.Background(), testUserID, txnDoc("sw-1", "0", false))
		require.ErrorIs(t, err, ErrInvalidDataProvided)
		require.ErrorIs(t, err, validators.ErrNonPositiveAmount)
		assert.Zero(t, repo.writes)
	})
}

func TestTransactionService_Create_CompensatesWhenWalletAdjustFails(t *testing.T) {
	repo := newFakeRecordStore()
	wallet := storedWallet("w-1", "sw-1", `{"name":"Cash","currency":"USD","balance":"100"}`)
	repo.seed(wallet)
	repo.failKeys = map[models.ClientKey]error{wallet.Key(): errTestStorage}

	svc := newTestTransactionService(t, repo, &recordingPublisher{})

	_, err := svc.Create(context.Background(), testUserID, txnDoc("sw-1", "40", false))
	require.ErrorIs(t, err, errTestStorage)

	assertBalance(t, repo, "sw-1", "100")

	// The created transaction was retired, not left dangling.
	transactions := 0
	for _, row := range repo.rows {
		if row.Kind == models.KindTransaction {
			transactions++
			assert.True(t, row.Deleted, "orphaned transaction must be tombstoned")
		}
	}
	require.Equal(t, 1, transactions)
}

// ─────────────────────────────────────────────────────────────────────────────
// Update
// ─────────────────────────────────────────────────────────────────────────────

func TestTransactionService_Update_SameWalletMovesByDelta(t *testing.T) {
	repo := newFakeRecordStore()
	// Balance already reflects the seeded 40 expense.
	repo.seed(storedWallet("w-1", "sw-1", `{"name":"Cash","currency":"USD","balance":"60"}`))
	repo.seed(storedTxn("t-1", "st-1", "sw-1", "40", false))

	svc := newTestTransactionService(t, repo, &recordingPublisher{})

	entity, err := svc.Update(context.Background(), testUserID, "st-1", txnDoc("sw-1", "55", false))
	require.NoError(t, err)
	assert.Equal(t, "st-1", entity.ServerID)

	assertBalance(t, repo, "sw-1", "45")
}

func TestTransactionService_Update_MovedBetweenWallets(t *testing.T) {
	repo := newFakeRecordStore()
	repo.seed(storedWallet("w-1", "sw-1", `{"name":"Cash","currency":"USD","balance":"60"}`))
	repo.seed(storedWallet("w-2", "sw-2", `{"name":"Card","currency":"USD","balance":"200"}`))
	repo.seed(storedTxn("t-1", "st-1", "sw-1", "40", false))

	svc := newTestTransactionService(t, repo, &recordingPublisher{})

	_, err := svc.Update(context.Background(), testUserID, "st-1", txnDoc("sw-2", "25", false))
	require.NoError(t, err)

	// The old wallet gets its 40 back; the new one absorbs the 25.
	assertBalance(t, repo, "sw-1", "100")
	assertBalance(t, repo, "sw-2", "175")
}

func TestTransactionService_Update_TombstoneIsNotFound(t *testing.T) {
	repo := newFakeRecordStore()
	repo.seed(storedWallet("w-1", "sw-1", `{"name":"Cash","currency":"USD","balance":"100"}`))
	gone := storedTxn("t-1", "st-1", "sw-1", "40", false)
	gone.Deleted = true
	repo.seed(gone)

	svc := newTestTransactionService(t, repo, &recordingPublisher{})

	_, err := svc.Update(context.Background(), testUserID, "st-1", txnDoc("sw-1", "55", false))
	require.ErrorIs(t, err, store.ErrRecordNotFound)
}

// ─────────────────────────────────────────────────────────────────────────────
// Delete
// ─────────────────────────────────────────────────────────────────────────────

func TestTransactionService_Delete_RestoresWalletBalance(t *testing.T) {
	repo := newFakeRecordStore()
	repo.seed(storedWallet("w-1", "sw-1", `{"name":"Cash","currency":"USD","balance":"60"}`))
	repo.seed(storedTxn("t-1", "st-1", "sw-1", "40", false))

	events := &recordingPublisher{}
	svc := newTestTransactionService(t, repo, events)

	require.NoError(t, svc.Delete(context.Background(), testUserID, "st-1"))

	assertBalance(t, repo, "sw-1", "100")

	row, err := repo.GetByServerID(context.Background(), testUserID, "st-1")
	require.NoError(t, err)
	assert.True(t, row.Deleted)

	require.Len(t, events.events, 2)
	assert.True(t, events.events[0].Deleted, "transaction tombstone event")
	assert.Equal(t, models.KindWallet, events.events[1].Kind)
}

// ─────────────────────────────────────────────────────────────────────────────
// List / BulkCreate
// ─────────────────────────────────────────────────────────────────────────────

func TestTransactionService_List_AppliesFilter(t *testing.T) {
	repo := newFakeRecordStore()
	repo.seed(storedWallet("w-1", "sw-1", `{"name":"Cash","currency":"USD","balance":"0"}`))
	repo.seed(storedWallet("w-2", "sw-2", `{"name":"Card","currency":"USD","balance":"0"}`))
	repo.seed(storedTxn("t-1", "st-1", "sw-1", "40", false))
	repo.seed(storedTxn("t-2", "st-2", "sw-2", "15", false))

	svc := newTestTransactionService(t, repo, &recordingPublisher{})

	walletID := "sw-1"
	entities, err := svc.List(context.Background(), testUserID, models.TransactionFilter{WalletID: &walletID})
	require.NoError(t, err)
	require.Len(t, entities, 1)
	assert.Equal(t, "st-1", entities[0].ServerID)
}

func TestTransactionService_BulkCreate_PartialFailure(t *testing.T) {
	repo := newFakeRecordStore()
	repo.seed(storedWallet("w-1", "sw-1", `{"name":"Cash","currency":"USD","balance":"100"}`))

	svc := newTestTransactionService(t, repo, &recordingPublisher{})

	// Index 1 carries an invalid amount, index 2 a dangling wallet.
	payloads := [][]byte{
		txnDoc("sw-1", "10", false),
		txnDoc("sw-1", "0", false),
		txnDoc("sw-missing", "10", false),
		txnDoc("sw-1", "5", true),
	}

	response, err := svc.BulkCreate(context.Background(), testUserID, payloads)
	require.NoError(t, err)

	assert.Equal(t, 2, response.Created)
	assert.Equal(t, 2, response.Failed)
	require.Len(t, response.Items, 4)

	assert.NotEmpty(t, response.Items[0].ServerID)
	assert.NotEmpty(t, response.Items[1].Error)
	assert.NotEmpty(t, response.Items[2].Error)
	assert.NotEmpty(t, response.Items[3].ServerID)

	// 100 - 10 + 5.
	assertBalance(t, repo, "sw-1", "95")
}
