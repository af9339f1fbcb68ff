package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-accountant/internal/adapter"
	"github.com/MKhiriev/go-accountant/internal/config"
	"github.com/MKhiriev/go-accountant/internal/logger"
	"github.com/MKhiriev/go-accountant/internal/metrics"
	"github.com/MKhiriev/go-accountant/internal/store"
	"github.com/MKhiriev/go-accountant/internal/utils"
	"github.com/MKhiriev/go-accountant/models"
)

// defaultRecurringBatch bounds one worker scan when no size is configured.
const defaultRecurringBatch = 100

// recurringService implements RecurringService: it turns due recurring
// schedules into transaction records.
//
// Instances are plain envelope writes, so devices pull them like any
// other change. The schedule document is re-persisted after every
// generated instance; a crash mid-run therefore duplicates at most one
// instance instead of the whole backlog.
type recurringService struct {
	records store.RecordRepository
	retrier Retrier
	events  adapter.RecordEventPublisher
	metrics *metrics.Metrics
	ids     *utils.UUIDGenerator
	now     func() time.Time
	batch   int
	logger  *logger.Logger
}

// NewRecurringService constructs the materializer service.
func NewRecurringService(records store.RecordRepository, retrier Retrier, events adapter.RecordEventPublisher, m *metrics.Metrics, cfg config.Workers, logger *logger.Logger) RecurringService {
	batch := cfg.RecurringBatchSize
	if batch <= 0 {
		batch = defaultRecurringBatch
	}

	return &recurringService{
		records: records,
		retrier: retrier,
		events:  events,
		metrics: m,
		ids:     utils.NewUUIDGenerator(),
		now:     time.Now,
		batch:   batch,
		logger:  logger,
	}
}

// ProcessDue implements RecurringService. One broken schedule never
// stalls the rest of the batch.
func (s *recurringService) ProcessDue(ctx context.Context, now time.Time) (int, error) {
	log := logger.FromContext(ctx)

	due, err := s.records.ListDueRecurring(ctx, now, s.batch)
	if err != nil {
		log.Err(err).
			Str("func", "*recurringService.ProcessDue").
			Msg("failed to scan due schedules")
		return 0, err
	}

	created := 0
	for _, config := range due {
		n, err := s.processSchedule(ctx, config, now)
		created += n
		if err != nil {
			log.Warn().
				Err(err).
				Str("func", "*recurringService.ProcessDue").
				Int64("user_id", config.UserID).
				Str("server_id", config.ServerID).
				Msg("schedule processing failed, continuing with the rest")
		}
	}

	if len(due) > 0 {
		log.Info().
			Str("func", "*recurringService.ProcessDue").
			Int("schedules", len(due)).
			Int("created", created).
			Msg("materialized due recurring transactions")
	}

	return created, nil
}

// ProcessUser implements RecurringService: the manual trigger behind
// POST /recurring/process.
func (s *recurringService) ProcessUser(ctx context.Context, userID int64) (int, error) {
	log := logger.FromContext(ctx)

	configs, err := s.records.ListByKind(ctx, userID, models.KindRecurringTransaction)
	if err != nil {
		log.Err(err).
			Str("func", "*recurringService.ProcessUser").
			Int64("user_id", userID).
			Msg("failed to list recurring schedules")
		return 0, err
	}

	now := s.now().UTC()

	created := 0
	for _, config := range configs {
		n, err := s.processSchedule(ctx, config, now)
		created += n
		if err != nil {
			log.Warn().
				Err(err).
				Str("func", "*recurringService.ProcessUser").
				Int64("user_id", userID).
				Str("server_id", config.ServerID).
				Msg("schedule processing failed, continuing with the rest")
		}
	}

	return created, nil
}

// processSchedule materializes every instance one schedule owes up to
// now, advancing its next occurrence as it goes.
func (s *recurringService) processSchedule(ctx context.Context, config models.Record, now time.Time) (int, error) {
	var schedule models.RecurringTransactionPayload
	if err := config.UnmarshalPayload(&schedule); err != nil {
		return 0, fmt.Errorf("schedule document does not parse: %w", err)
	}

	if !schedule.IsActive || schedule.NextOccurrence.After(now) {
		return 0, nil
	}

	template, err := s.baseTemplate(ctx, config.UserID, schedule.BaseTransactionID)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			// The template is gone; the schedule can never fire again.
			schedule.IsActive = false
			return 0, s.persistSchedule(ctx, config, schedule, now)
		}
		return 0, err
	}

	created := 0
	for schedule.IsActive && !schedule.NextOccurrence.After(now) {
		if schedule.Expired(schedule.NextOccurrence) {
			schedule.IsActive = false
			break
		}

		if err := s.createInstance(ctx, config, template, schedule.NextOccurrence, now); err != nil {
			return created, err
		}
		created++
		s.metrics.RecurringInstancesCreated.Inc()

		schedule.NextOccurrence = schedule.Advance(schedule.NextOccurrence)
		if err := s.persistSchedule(ctx, config, schedule, now); err != nil {
			return created, err
		}
	}

	if !schedule.IsActive {
		if err := s.persistSchedule(ctx, config, schedule, now); err != nil {
			return created, err
		}
	}

	return created, nil
}

// baseTemplate loads the transaction the schedule clones. A missing,
// tombstoned or non-transaction row reports [store.ErrRecordNotFound].
func (s *recurringService) baseTemplate(ctx context.Context, userID int64, serverID string) (models.TransactionPayload, error) {
	base, err := s.records.GetByServerID(ctx, userID, serverID)
	if err != nil {
		return models.TransactionPayload{}, err
	}
	if base.Kind != models.KindTransaction || base.Deleted {
		return models.TransactionPayload{}, store.ErrRecordNotFound
	}

	var template models.TransactionPayload
	if err := base.UnmarshalPayload(&template); err != nil {
		return models.TransactionPayload{}, fmt.Errorf("base transaction does not parse: %w", err)
	}

	return template, nil
}

// createInstance writes one materialized transaction: the template with
// the occurrence date, marked as a recurring instance. Receipt and
// transfer references do not carry over.
func (s *recurringService) createInstance(ctx context.Context, config models.Record, template models.TransactionPayload, date, now time.Time) error {
	configID := config.ServerID

	instance := template
	instance.Date = date
	instance.Type = models.TransactionRecurringInstance
	instance.RecurringConfigID = &configID
	instance.PairedTransactionID = nil
	instance.ReceiptImageURL = nil

	payload, err := json.Marshal(instance)
	if err != nil {
		return err
	}

	id := s.ids.Generate()
	record := models.Record{
		UserID:          config.UserID,
		Kind:            models.KindTransaction,
		ClientID:        id,
		ServerID:        id,
		Payload:         payload,
		PayloadHash:     utils.PayloadHash(payload),
		ClientUpdatedAt: now,
	}

	written, err := s.change(ctx, config.UserID, record.Key(), func(stored *models.Record) (models.Record, bool, error) {
		if stored != nil {
			return models.Record{}, false, store.ErrRecordExists
		}
		return record, true, nil
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*recurringService.createInstance").
			Int64("user_id", config.UserID).
			Str("schedule_id", config.ServerID).
			Msg("failed to write transaction instance")
		return err
	}
	s.publishChange(ctx, written)

	return nil
}

// persistSchedule writes the advanced occurrence and the active flag
// back into the schedule document as currently stored, so client fields
// edited mid-run survive.
func (s *recurringService) persistSchedule(ctx context.Context, config models.Record, schedule models.RecurringTransactionPayload, now time.Time) error {
	written, err := s.change(ctx, config.UserID, config.Key(), func(stored *models.Record) (models.Record, bool, error) {
		if stored == nil || stored.Deleted {
			// The schedule was deleted mid-run; nothing left to advance.
			return models.Record{}, false, nil
		}

		doc, err := models.SetDocumentField(stored.Payload, "next_occurrence", schedule.NextOccurrence)
		if err != nil {
			return models.Record{}, false, err
		}
		doc, err = models.SetDocumentField(doc, "is_active", schedule.IsActive)
		if err != nil {
			return models.Record{}, false, err
		}

		out := *stored
		out.Payload = doc
		out.PayloadHash = utils.PayloadHash(doc)
		out.ClientUpdatedAt = now

		return out, true, nil
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*recurringService.persistSchedule").
			Int64("user_id", config.UserID).
			Str("server_id", config.ServerID).
			Msg("failed to persist schedule state")
		return err
	}

	if written.ServerID != "" {
		s.publishChange(ctx, written)
	}

	return nil
}

// change runs one ChangeRecord mutation under the retrier.
func (s *recurringService) change(ctx context.Context, userID int64, key models.ClientKey, apply store.RecordChangeFunc) (models.Record, error) {
	var written models.Record

	err := s.retrier.Do(ctx, func() error {
		var changeErr error
		written, changeErr = s.records.ChangeRecord(ctx, userID, key, apply)
		return changeErr
	})

	return written, err
}

// publishChange emits a record-change event; failures only warn.
func (s *recurringService) publishChange(ctx context.Context, record models.Record) {
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
			Str("func", "*recurringService.publishChange").
			Str("kind", record.Kind.String()).
			Str("server_id", record.ServerID).
			Msg("record event publish failed")
	}
}
