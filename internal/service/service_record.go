package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-accountant/internal/adapter"
	"github.com/MKhiriev/go-accountant/internal/logger"
	"github.com/MKhiriev/go-accountant/internal/store"
	"github.com/MKhiriev/go-accountant/internal/utils"
	"github.com/MKhiriev/go-accountant/internal/validators"
	"github.com/MKhiriev/go-accountant/models"
)

// recordService implements RecordService: the REST CRUD surface over the
// envelope rows. Every mutation goes through the same ChangeRecord path
// the sync reconciler uses, so a REST write shows up in the next pull of
// the user's other devices like any synced change.
type recordService struct {
	records   store.RecordRepository
	retrier   Retrier
	validator validators.Validator
	events    adapter.RecordEventPublisher
	ids       *utils.UUIDGenerator
	now       func() time.Time
	logger    *logger.Logger
}

// NewRecordService constructs the CRUD service over the envelope rows.
func NewRecordService(records store.RecordRepository, retrier Retrier, validator validators.Validator, events adapter.RecordEventPublisher, logger *logger.Logger) RecordService {
	return &recordService{
		records:   records,
		retrier:   retrier,
		validator: validator,
		events:    events,
		ids:       utils.NewUUIDGenerator(),
		now:       time.Now,
		logger:    logger,
	}
}

// Create implements RecordService. The server originates the record, so
// one generated identifier serves as both client and server id. Omitted
// cosmetic fields are filled with the kind's defaults before storing.
func (s *recordService) Create(ctx context.Context, userID int64, kind models.EntityKind, payload []byte) (models.SyncEntity, error) {
	log := logger.FromContext(ctx)

	id := s.ids.Generate()
	now := s.now().UTC()

	entity := models.SyncEntity{
		Kind:            kind,
		ClientID:        id,
		Payload:         payload,
		ClientUpdatedAt: now,
	}
	if err := s.validator.Validate(ctx, entity); err != nil {
		return models.SyncEntity{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	document, err := models.ApplyPayloadDefaults(kind, payload)
	if err != nil {
		return models.SyncEntity{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	record := models.Record{
		UserID:          userID,
		Kind:            kind,
		ClientID:        id,
		ServerID:        id,
		Payload:         document,
		PayloadHash:     utils.PayloadHash(document),
		ClientUpdatedAt: now,
	}

	written, err := s.change(ctx, userID, record.Key(), func(stored *models.Record) (models.Record, bool, error) {
		if stored != nil {
			// A fresh id collided with an existing row; do not overwrite.
			return models.Record{}, false, store.ErrRecordExists
		}
		return record, true, nil
	})
	if err != nil {
		log.Err(err).
			Str("func", "*recordService.Create").
			Int64("user_id", userID).
			Str("kind", kind.String()).
			Msg("failed to create record")
		return models.SyncEntity{}, err
	}

	s.publishChange(ctx, written)

	return written.ToSyncEntity(), nil
}

// Get implements RecordService. A record of another kind or a tombstone
// reports not-found: collection URLs must not leak across kinds.
func (s *recordService) Get(ctx context.Context, userID int64, kind models.EntityKind, serverID string) (models.SyncEntity, error) {
	record, err := s.find(ctx, userID, kind, serverID)
	if err != nil {
		return models.SyncEntity{}, err
	}

	return record.ToSyncEntity(), nil
}

// List implements RecordService. Tombstones are excluded; deletion
// visibility is the sync pull set's job.
func (s *recordService) List(ctx context.Context, userID int64, kind models.EntityKind) ([]models.SyncEntity, error) {
	records, err := s.records.ListByKind(ctx, userID, kind)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*recordService.List").
			Int64("user_id", userID).
			Str("kind", kind.String()).
			Msg("failed to list records")
		return nil, err
	}

	entities := make([]models.SyncEntity, 0, len(records))
	for _, record := range records {
		entities = append(entities, record.ToSyncEntity())
	}

	return entities, nil
}

// Update implements RecordService. The document is replaced wholesale
// and the edit is stamped with the server clock, so it wins over any
// older offline edit a device later submits.
func (s *recordService) Update(ctx context.Context, userID int64, kind models.EntityKind, serverID string, payload []byte) (models.SyncEntity, error) {
	log := logger.FromContext(ctx)

	current, err := s.find(ctx, userID, kind, serverID)
	if err != nil {
		return models.SyncEntity{}, err
	}

	now := s.now().UTC()

	entity := models.SyncEntity{
		Kind:            kind,
		ClientID:        current.ClientID,
		Payload:         payload,
		ClientUpdatedAt: now,
	}
	if err := s.validator.Validate(ctx, entity); err != nil {
		return models.SyncEntity{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	written, err := s.change(ctx, userID, current.Key(), func(stored *models.Record) (models.Record, bool, error) {
		if stored == nil || stored.Deleted {
			return models.Record{}, false, store.ErrRecordNotFound
		}

		out := *stored
		out.Payload = payload
		out.PayloadHash = utils.PayloadHash(payload)
		out.ClientUpdatedAt = now

		return out, true, nil
	})
	if err != nil {
		log.Err(err).
			Str("func", "*recordService.Update").
			Int64("user_id", userID).
			Str("kind", kind.String()).
			Str("server_id", serverID).
			Msg("failed to update record")
		return models.SyncEntity{}, err
	}

	s.publishChange(ctx, written)

	return written.ToSyncEntity(), nil
}

// Delete implements RecordService. The row becomes a tombstone keeping
// its last document, so other devices observe the deletion on pull.
func (s *recordService) Delete(ctx context.Context, userID int64, kind models.EntityKind, serverID string) error {
	log := logger.FromContext(ctx)

	current, err := s.find(ctx, userID, kind, serverID)
	if err != nil {
		return err
	}

	now := s.now().UTC()

	written, err := s.change(ctx, userID, current.Key(), func(stored *models.Record) (models.Record, bool, error) {
		if stored == nil {
			return models.Record{}, false, store.ErrRecordNotFound
		}
		if stored.Deleted {
			// Already gone; deleting twice is not an error.
			return models.Record{}, false, nil
		}

		out := *stored
		out.Deleted = true
		out.ClientUpdatedAt = now

		return out, true, nil
	})
	if err != nil {
		log.Err(err).
			Str("func", "*recordService.Delete").
			Int64("user_id", userID).
			Str("kind", kind.String()).
			Str("server_id", serverID).
			Msg("failed to delete record")
		return err
	}

	if written.Deleted {
		s.publishChange(ctx, written)
	}

	return nil
}

// DefaultWallet implements RecordService.
func (s *recordService) DefaultWallet(ctx context.Context, userID int64) (models.SyncEntity, error) {
	wallets, err := s.records.ListByKind(ctx, userID, models.KindWallet)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*recordService.DefaultWallet").
			Int64("user_id", userID).
			Msg("failed to list wallets")
		return models.SyncEntity{}, err
	}

	if len(wallets) == 0 {
		return models.SyncEntity{}, store.ErrRecordNotFound
	}

	for _, wallet := range wallets {
		var payload models.WalletPayload
		if err := wallet.UnmarshalPayload(&payload); err != nil {
			continue
		}
		if payload.IsDefault {
			return wallet.ToSyncEntity(), nil
		}
	}

	return wallets[0].ToSyncEntity(), nil
}

// find loads a live record by its public id, verifying the kind matches
// the collection being addressed.
func (s *recordService) find(ctx context.Context, userID int64, kind models.EntityKind, serverID string) (models.Record, error) {
	record, err := s.records.GetByServerID(ctx, userID, serverID)
	if err != nil {
		return models.Record{}, err
	}

	if record.Kind != kind || record.Deleted {
		return models.Record{}, store.ErrRecordNotFound
	}

	return record, nil
}

// change runs one ChangeRecord mutation under the retrier.
func (s *recordService) change(ctx context.Context, userID int64, key models.ClientKey, apply store.RecordChangeFunc) (models.Record, error) {
	var written models.Record

	err := s.retrier.Do(ctx, func() error {
		var changeErr error
		written, changeErr = s.records.ChangeRecord(ctx, userID, key, apply)
		return changeErr
	})

	return written, err
}

// publishChange emits a record-change event; failures only warn.
func (s *recordService) publishChange(ctx context.Context, record models.Record) {
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
			Str("func", "*recordService.publishChange").
			Str("kind", record.Kind.String()).
			Str("server_id", record.ServerID).
			Msg("record event publish failed")
	}
}
