// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-accountant/internal/adapter"
	"github.com/MKhiriev/go-accountant/internal/logger"
	"github.com/MKhiriev/go-accountant/internal/store"
	"github.com/MKhiriev/go-accountant/internal/utils"
	"github.com/MKhiriev/go-accountant/internal/validators"
	"github.com/MKhiriev/go-accountant/models"
	"github.com/shopspring/decimal"
)

// transactionService implements TransactionService. On top of the plain
// envelope CRUD it keeps the owning wallet's balance in step: creating a
// transaction moves the wallet by the signed amount, updating moves it by
// the difference, deleting moves it back.
//
// The transaction row and the wallet row are separate records, each
// changed atomically on its own; cross-record consistency is best-effort
// with a compensating write when the second step fails.
type transactionService struct {
	records   store.RecordRepository
	retrier   Retrier
	validator validators.Validator
	events    adapter.RecordEventPublisher
	ids       *utils.UUIDGenerator
	now       func() time.Time
	logger    *logger.Logger
}

// NewTransactionService constructs the transaction CRUD service.
func NewTransactionService(records store.RecordRepository, retrier Retrier, validator validators.Validator, events adapter.RecordEventPublisher, logger *logger.Logger) TransactionService {
	return &transactionService{
		records:   records,
		retrier:   retrier,
		validator: validator,
		events:    events,
		ids:       utils.NewUUIDGenerator(),
		now:       time.Now,
		logger:    logger,
	}
}

// List implements TransactionService.
func (s *transactionService) List(ctx context.Context, userID int64, filter models.TransactionFilter) ([]models.SyncEntity, error) {
	records, err := s.records.ListTransactions(ctx, userID, filter)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*transactionService.List").
			Int64("user_id", userID).
			Msg("failed to list transactions")
		return nil, err
	}

	entities := make([]models.SyncEntity, 0, len(records))
	for _, record := range records {
		entities = append(entities, record.ToSyncEntity())
	}

	return entities, nil
}

// Create implements TransactionService.
func (s *transactionService) Create(ctx context.Context, userID int64, payload []byte) (models.SyncEntity, error) {
	log := logger.FromContext(ctx)

	document, txn, err := s.prepare(ctx, payload)
	if err != nil {
		return models.SyncEntity{}, err
	}

	wallet, err := s.findWallet(ctx, userID, txn.WalletID)
	if err != nil {
		return models.SyncEntity{}, err
	}

	id := s.ids.Generate()
	now := s.now().UTC()

	record := models.Record{
		UserID:          userID,
		Kind:            models.KindTransaction,
		ClientID:        id,
		ServerID:        id,
		Payload:         document,
		PayloadHash:     utils.PayloadHash(document),
		ClientUpdatedAt: now,
	}

	written, err := s.change(ctx, userID, record.Key(), func(stored *models.Record) (models.Record, bool, error) {
		if stored != nil {
			return models.Record{}, false, store.ErrRecordExists
		}
		return record, true, nil
	})
	if err != nil {
		log.Err(err).
			Str("func", "*transactionService.Create").
			Int64("user_id", userID).
			Msg("failed to create transaction")
		return models.SyncEntity{}, err
	}
	s.publishChange(ctx, written)

	if err := s.adjustWallet(ctx, userID, wallet.Key(), txn.SignedAmount()); err != nil {
		// Compensate: retire the transaction we just created rather than
		// leave one the wallet never absorbed.
		s.compensateDelete(ctx, userID, written.Key())
		return models.SyncEntity{}, err
	}

	return written.ToSyncEntity(), nil
}

// Update implements TransactionService. The wallet moves by the delta
// between the old and the new signed amount; when the transaction moved
// to another wallet, the old wallet gets the old amount back and the new
// one absorbs the new amount.
func (s *transactionService) Update(ctx context.Context, userID int64, serverID string, payload []byte) (models.SyncEntity, error) {
	log := logger.FromContext(ctx)

	document, txn, err := s.prepare(ctx, payload)
	if err != nil {
		return models.SyncEntity{}, err
	}

	current, err := s.findTransaction(ctx, userID, serverID)
	if err != nil {
		return models.SyncEntity{}, err
	}

	var before models.TransactionPayload
	if err := current.UnmarshalPayload(&before); err != nil {
		log.Err(err).
			Str("func", "*transactionService.Update").
			Int64("user_id", userID).
			Str("server_id", serverID).
			Msg("stored transaction payload does not parse")
		return models.SyncEntity{}, fmt.Errorf("stored transaction is unreadable: %w", err)
	}

	newWallet, err := s.findWallet(ctx, userID, txn.WalletID)
	if err != nil {
		return models.SyncEntity{}, err
	}

	now := s.now().UTC()

	written, err := s.change(ctx, userID, current.Key(), func(stored *models.Record) (models.Record, bool, error) {
		if stored == nil || stored.Deleted {
			return models.Record{}, false, store.ErrRecordNotFound
		}

		out := *stored
		out.Payload = document
		out.PayloadHash = utils.PayloadHash(document)
		out.ClientUpdatedAt = now

		return out, true, nil
	})
	if err != nil {
		log.Err(err).
			Str("func", "*transactionService.Update").
			Int64("user_id", userID).
			Str("server_id", serverID).
			Msg("failed to update transaction")
		return models.SyncEntity{}, err
	}
	s.publishChange(ctx, written)

	if before.WalletID == txn.WalletID {
		delta := txn.SignedAmount().Sub(before.SignedAmount())
		if err := s.adjustWallet(ctx, userID, newWallet.Key(), delta); err != nil {
			return models.SyncEntity{}, err
		}
		return written.ToSyncEntity(), nil
	}

	// Moved between wallets: two independent adjustments.
	if oldWallet, findErr := s.findWallet(ctx, userID, before.WalletID); findErr == nil {
		if err := s.adjustWallet(ctx, userID, oldWallet.Key(), before.SignedAmount().Neg()); err != nil {
			return models.SyncEntity{}, err
		}
	}
	if err := s.adjustWallet(ctx, userID, newWallet.Key(), txn.SignedAmount()); err != nil {
		return models.SyncEntity{}, err
	}

	return written.ToSyncEntity(), nil
}

// Delete implements TransactionService.
func (s *transactionService) Delete(ctx context.Context, userID int64, serverID string) error {
	log := logger.FromContext(ctx)

	current, err := s.findTransaction(ctx, userID, serverID)
	if err != nil {
		return err
	}

	var txn models.TransactionPayload
	parseable := current.UnmarshalPayload(&txn) == nil

	now := s.now().UTC()

	written, err := s.change(ctx, userID, current.Key(), func(stored *models.Record) (models.Record, bool, error) {
		if stored == nil {
			return models.Record{}, false, store.ErrRecordNotFound
		}
		if stored.Deleted {
			return models.Record{}, false, nil
		}

		out := *stored
		out.Deleted = true
		out.ClientUpdatedAt = now

		return out, true, nil
	})
	if err != nil {
		log.Err(err).
			Str("func", "*transactionService.Delete").
			Int64("user_id", userID).
			Str("server_id", serverID).
			Msg("failed to delete transaction")
		return err
	}

	if !written.Deleted {
		return nil
	}
	s.publishChange(ctx, written)

	if parseable {
		if wallet, findErr := s.findWallet(ctx, userID, txn.WalletID); findErr == nil {
			if err := s.adjustWallet(ctx, userID, wallet.Key(), txn.SignedAmount().Neg()); err != nil {
				return err
			}
		}
	}

	return nil
}

// BulkCreate implements TransactionService. Items import independently;
// the response carries a per-item verdict in submission order.
func (s *transactionService) BulkCreate(ctx context.Context, userID int64, payloads [][]byte) (models.BulkCreateResponse, error) {
	response := models.BulkCreateResponse{
		Items: make([]models.BulkItemResult, 0, len(payloads)),
	}

	for i, payload := range payloads {
		item := models.BulkItemResult{Index: i}

		entity, err := s.Create(ctx, userID, payload)
		if err != nil {
			item.Error = err.Error()
			response.Failed++
		} else {
			item.ServerID = entity.ServerID
			response.Created++
		}

		response.Items = append(response.Items, item)
	}

	return response, nil
}

// prepare validates an incoming transaction document and returns it with
// its parsed form. An omitted type defaults to regular.
func (s *transactionService) prepare(ctx context.Context, payload []byte) ([]byte, models.TransactionPayload, error) {
	entity := models.SyncEntity{
		Kind:            models.KindTransaction,
		ClientID:        "pending",
		Payload:         payload,
		ClientUpdatedAt: s.now().UTC(),
	}
	if err := s.validator.Validate(ctx, entity); err != nil {
		return nil, models.TransactionPayload{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	var txn models.TransactionPayload
	if err := json.Unmarshal(payload, &txn); err != nil {
		return nil, models.TransactionPayload{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	if txn.Type == "" {
		txn.Type = models.TransactionRegular
		rewritten, err := models.SetDocumentField(payload, "type", string(models.TransactionRegular))
		if err != nil {
			return nil, models.TransactionPayload{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
		}
		payload = rewritten
	}

	return payload, txn, nil
}

// findTransaction loads a live transaction row by its public id.
func (s *transactionService) findTransaction(ctx context.Context, userID int64, serverID string) (models.Record, error) {
	record, err := s.records.GetByServerID(ctx, userID, serverID)
	if err != nil {
		return models.Record{}, err
	}
	if record.Kind != models.KindTransaction || record.Deleted {
		return models.Record{}, store.ErrRecordNotFound
	}

	return record, nil
}

// findWallet resolves a wallet reference from a transaction payload.
// A dangling reference is the caller's data error, not a lookup miss.
func (s *transactionService) findWallet(ctx context.Context, userID int64, walletServerID string) (models.Record, error) {
	record, err := s.records.GetByServerID(ctx, userID, walletServerID)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return models.Record{}, fmt.Errorf("%w: %s", ErrUnknownWallet, walletServerID)
		}
		return models.Record{}, err
	}
	if record.Kind != models.KindWallet || record.Deleted {
		return models.Record{}, fmt.Errorf("%w: %s", ErrUnknownWallet, walletServerID)
	}

	return record, nil
}

// adjustWallet moves the wallet's balance by delta through the same
// locked change path every other write uses.
func (s *transactionService) adjustWallet(ctx context.Context, userID int64, key models.ClientKey, delta decimal.Decimal) error {
	if delta.IsZero() {
		return nil
	}

	now := s.now().UTC()

	written, err := s.change(ctx, userID, key, func(stored *models.Record) (models.Record, bool, error) {
		if stored == nil || stored.Deleted {
			return models.Record{}, false, store.ErrRecordNotFound
		}

		adjusted, adjustErr := models.AdjustWalletBalance(stored.Payload, delta)
		if adjustErr != nil {
			return models.Record{}, false, fmt.Errorf("wallet document does not parse: %w", adjustErr)
		}

		out := *stored
		out.Payload = adjusted
		out.PayloadHash = utils.PayloadHash(adjusted)
		out.ClientUpdatedAt = now

		return out, true, nil
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*transactionService.adjustWallet").
			Int64("user_id", userID).
			Str("client_id", key.ClientID).
			Str("delta", delta.String()).
			Msg("failed to adjust wallet balance")
		return err
	}
	s.publishChange(ctx, written)

	return nil
}

// compensateDelete retires a record created moments ago after a follow-up
// step failed. Best effort: a failure here only logs.
func (s *transactionService) compensateDelete(ctx context.Context, userID int64, key models.ClientKey) {
	now := s.now().UTC()

	_, err := s.change(ctx, userID, key, func(stored *models.Record) (models.Record, bool, error) {
		if stored == nil || stored.Deleted {
			return models.Record{}, false, nil
		}

		out := *stored
		out.Deleted = true
		out.ClientUpdatedAt = now

		return out, true, nil
	})
	if err != nil {
		logger.FromContext(ctx).Warn().
			Err(err).
			Str("func", "*transactionService.compensateDelete").
			Int64("user_id", userID).
			Str("client_id", key.ClientID).
			Msg("compensating delete failed, transaction left without wallet adjustment")
	}
}

// change runs one ChangeRecord mutation under the retrier.
func (s *transactionService) change(ctx context.Context, userID int64, key models.ClientKey, apply store.RecordChangeFunc) (models.Record, error) {
	var written models.Record

	err := s.retrier.Do(ctx, func() error {
		var changeErr error
		written, changeErr = s.records.ChangeRecord(ctx, userID, key, apply)
		return changeErr
	})

	return written, err
}

// publishChange emits a record-change event; failures only warn.
func (s *transactionService) publishChange(ctx context.Context, record models.Record) {
	event := models.RecordEvent{
		UserID:   record.UserID,
		Kind:     record.Kind,
		ServerID: record.ServerID,
		Deleted:  record.Deleted,
		SyncedAt: record.ServerUpdatedAt,
	}

	if err := s.events.PublishRecordChange(ctx, event); err != nil {
		logger.FromContext(ctx).Warn().
			Err(err).
			Str("func", "*transactionService.publishChange").
			Str("kind", record.Kind.String()).
			Str("server_id", record.ServerID).
			Msg("record event publish failed")
	}
}
