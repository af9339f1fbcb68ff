// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/MKhiriev/go-accountant/internal/adapter"
	"github.com/MKhiriev/go-accountant/internal/logger"
	"github.com/MKhiriev/go-accountant/internal/metrics"
	"github.com/MKhiriev/go-accountant/internal/store"
	"github.com/MKhiriev/go-accountant/internal/utils"
	"github.com/MKhiriev/go-accountant/internal/validators"
	"github.com/MKhiriev/go-accountant/models"
	"github.com/oklog/ulid/v2"
)

// reasonAlreadyApplied marks the no-op outcome of an idempotent replay.
const reasonAlreadyApplied = "already applied"

// reasonTransientStorage marks entities dropped after retry exhaustion.
const reasonTransientStorage = "transient storage failure"

// emptyPayload is stored for tombstones submitted without a document.
var emptyPayload = json.RawMessage(`{}`)

// syncService is the concrete implementation of SyncService: the
// server-side reconciler of device batches.
//
// Conflicts resolve last-writer-wins on the client edit timestamp; ties
// favor the stored state. Every entity is processed independently inside
// its own row-locked transaction, so one bad entity never affects its
// siblings and concurrent submissions of the same record serialize.
type syncService struct {
	records store.RecordRepository

	// retrier re-runs an entity's change when it lost a row-level race;
	// the second pass observes the winning row and re-resolves against it.
	retrier Retrier

	validator validators.Validator
	events    adapter.RecordEventPublisher
	metrics   *metrics.Metrics

	ids *utils.UUIDGenerator

	// now is the reconciliation clock, swappable in tests.
	now func() time.Time

	logger *logger.Logger
}

// NewSyncService constructs the reconciler.
func NewSyncService(records store.RecordRepository, retrier Retrier, validator validators.Validator, events adapter.RecordEventPublisher, m *metrics.Metrics, logger *logger.Logger) SyncService {
	return &syncService{
		records:   records,
		retrier:   retrier,
		validator: validator,
		events:    events,
		metrics:   m,
		ids:       utils.NewUUIDGenerator(),
		now:       time.Now,
		logger:    logger,
	}
}

// Reconcile implements SyncService.
//
// Entities are applied in submission order. After the last entity the
// pull set is built: every record changed after the batch watermark,
// minus the records this batch itself applied, so a device never gets
// its own write echoed back.
func (s *syncService) Reconcile(ctx context.Context, userID int64, batch models.SyncBatch) (models.SyncResult, error) {
	// Every log line of this pass carries one batch id, so the entity
	// failures of a batch can be grepped together.
	log := logger.FromContext(ctx).With().Str("batch_id", ulid.Make().String()).Logger()
	ctx = log.WithContext(ctx)

	s.metrics.SyncBatches.Inc()

	outcomes := make([]models.EntityOutcome, 0, len(batch.Entities))
	applied := make(map[models.ClientKey]struct{}, len(batch.Entities))

	for _, entity := range batch.Entities {
		outcome := s.applyEntity(ctx, userID, batch.LastSyncedAt, entity)

		if outcome.Applied() {
			applied[models.ClientKey{Kind: outcome.Kind, ClientID: outcome.ClientID}] = struct{}{}
		}

		s.metrics.SyncEntities.WithLabelValues(string(outcome.Status)).Inc()
		outcomes = append(outcomes, outcome)
	}

	changed, err := s.records.ListChangedSince(ctx, userID, batch.LastSyncedAt)
	if err != nil {
		log.Err(err).
			Str("func", "*syncService.Reconcile").
			Int64("user_id", userID).
			Msg("failed to load the pull set")
		return models.SyncResult{}, fmt.Errorf("loading server changes failed: %w", err)
	}

	serverChanges := make([]models.SyncEntity, 0, len(changed))
	for _, record := range changed {
		if _, own := applied[record.Key()]; own {
			continue
		}
		serverChanges = append(serverChanges, record.ToSyncEntity())
	}

	log.Debug().
		Str("func", "*syncService.Reconcile").
		Int64("user_id", userID).
		Int("entities", len(batch.Entities)).
		Int("server_changes", len(serverChanges)).
		Msg("batch reconciled")

	return models.SyncResult{
		Outcomes:      outcomes,
		ServerChanges: serverChanges,
		SyncedAt:      s.now().UTC(),
	}, nil
}

// applyEntity validates and persists one submitted entity, never
// returning an error: every failure becomes a rejected outcome so the
// batch continues.
func (s *syncService) applyEntity(ctx context.Context, userID int64, lastSyncedAt time.Time, entity models.SyncEntity) models.EntityOutcome {
	log := logger.FromContext(ctx)

	outcome := models.EntityOutcome{
		Kind:     entity.Kind,
		ClientID: entity.ClientID,
		ServerID: entity.ServerID,
	}

	if err := s.validator.Validate(ctx, entity); err != nil {
		outcome.Status = models.OutcomeRejected
		outcome.Reason = err.Error()
		return outcome
	}

	key := models.ClientKey{Kind: entity.Kind, ClientID: entity.ClientID}

	var (
		result models.Record
		status models.OutcomeStatus
		reason string
		wrote  bool
	)

	err := s.retrier.Do(ctx, func() error {
		// A retry re-resolves against the row the winning writer left.
		status, reason, wrote = "", "", false

		var changeErr error
		result, changeErr = s.records.ChangeRecord(ctx, userID, key, func(stored *models.Record) (models.Record, bool, error) {
			out, write := s.resolve(userID, stored, entity, lastSyncedAt, &status, &reason)
			wrote = write
			return out, write, nil
		})

		return changeErr
	})
	if err != nil {
		log.Err(err).
			Str("func", "*syncService.applyEntity").
			Int64("user_id", userID).
			Str("kind", entity.Kind.String()).
			Str("client_id", entity.ClientID).
			Msg("entity change failed after retries")

		outcome.Status = models.OutcomeRejected
		outcome.Reason = reasonTransientStorage
		return outcome
	}

	outcome.Status = status
	outcome.Reason = reason
	if result.ServerID != "" {
		outcome.ServerID = result.ServerID
	}

	if wrote {
		s.publishChange(ctx, result)
	}

	return outcome
}

// resolve is the last-writer-wins decision for one entity against the
// stored row (nil when the server has never seen the record). It returns
// the row to write and whether to write it, reporting the outcome via
// status/reason.
func (s *syncService) resolve(userID int64, stored *models.Record, entity models.SyncEntity, lastSyncedAt time.Time, status *models.OutcomeStatus, reason *string) (models.Record, bool) {
	// Never seen → insert. A tombstone for an unknown record is stored
	// too: other devices may still hold a live copy to retire.
	if stored == nil {
		*status = models.OutcomeAccepted

		payload := entity.Payload
		if len(payload) == 0 {
			payload = emptyPayload
		}

		return models.Record{
			UserID:          userID,
			Kind:            entity.Kind,
			ClientID:        entity.ClientID,
			ServerID:        s.ids.Generate(),
			Payload:         payload,
			PayloadHash:     utils.PayloadHash(payload),
			ClientUpdatedAt: entity.ClientUpdatedAt,
			Deleted:         entity.Deleted,
		}, true
	}

	// Strictly newer client edit → overwrite.
	if entity.ClientUpdatedAt.After(stored.ClientUpdatedAt) {
		if stored.ServerUpdatedAt.After(lastSyncedAt) {
			// The record changed after the device last pulled, so a
			// concurrent edit existed; the newer client edit wins.
			*status = models.OutcomeClientWins
		} else {
			*status = models.OutcomeAccepted
		}

		out := *stored
		out.ClientUpdatedAt = entity.ClientUpdatedAt
		out.Deleted = entity.Deleted

		// Deletes may arrive without a payload; the tombstone keeps the
		// last known document so a later restore has something to show.
		if len(entity.Payload) > 0 {
			out.Payload = entity.Payload
			out.PayloadHash = utils.PayloadHash(entity.Payload)
		}

		return out, true
	}

	// Not newer. Identical resubmission → idempotent replay, no write.
	if entity.ClientUpdatedAt.Equal(stored.ClientUpdatedAt) && entity.Deleted == stored.Deleted && s.sameDocument(stored, entity) {
		*status = models.OutcomeAccepted
		*reason = reasonAlreadyApplied
		return models.Record{}, false
	}

	// Older or a genuine same-timestamp divergence: the server copy
	// stays authoritative.
	*status = models.OutcomeServerWins
	return models.Record{}, false
}

// sameDocument reports whether the submitted payload matches the stored
// one. A tombstone resubmitted without a payload counts as matching:
// deletes carry no document to compare.
func (s *syncService) sameDocument(stored *models.Record, entity models.SyncEntity) bool {
	if entity.Deleted && len(entity.Payload) == 0 {
		return true
	}

	return utils.PayloadHash(entity.Payload) == stored.PayloadHash
}

// publishChange emits a record-change event. Failures are logged and
// never fail the sync call.
func (s *syncService) publishChange(ctx context.Context, record models.Record) {
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
			Str("func", "*syncService.publishChange").
			Str("kind", record.Kind.String()).
			Str("server_id", record.ServerID).
			Msg("record event publish failed")
	}
}

// Status implements SyncService. Kinds without records report zero
// counts so the response shape is stable.
func (s *syncService) Status(ctx context.Context, userID int64) (models.SyncStatus, error) {
	log := logger.FromContext(ctx)

	counts, err := s.records.CountsByKind(ctx, userID)
	if err != nil {
		log.Err(err).
			Str("func", "*syncService.Status").
			Int64("user_id", userID).
			Msg("failed to load per-kind counts")
		return models.SyncStatus{}, fmt.Errorf("loading sync status failed: %w", err)
	}

	kinds := make(map[models.EntityKind]models.KindCounts, len(models.Kinds()))
	for _, kind := range models.Kinds() {
		kinds[kind] = counts[kind]
	}

	return models.SyncStatus{
		Kinds:    kinds,
		ServerAt: s.now().UTC(),
	}, nil
}
