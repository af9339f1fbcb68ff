// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-accountant/internal/config"
	"github.com/MKhiriev/go-accountant/internal/logger"
	"github.com/MKhiriev/go-accountant/models"
	"github.com/rabbitmq/amqp091-go"
)

const (
	// defaultEventsExchange is the durable direct exchange record events
	// land on unless configured otherwise.
	defaultEventsExchange = "accountant.records"

	publishTimeout = 5 * time.Second
)

type amqpPublisher struct {
	conn     *amqp091.Connection
	channel  *amqp091.Channel
	exchange string

	logger *logger.Logger
}

// NewEventPublisher connects to the configured AMQP broker and declares the
// record-events exchange. An empty broker address yields a [NopPublisher]:
// events are an optional integration, not a deployment requirement.
func NewEventPublisher(cfg config.Events, logger *logger.Logger) (RecordEventPublisher, error) {
	if strings.TrimSpace(cfg.AMQPAddress) == "" {
		logger.Debug().Msg("no AMQP address configured, record events disabled")
		return NopPublisher{}, nil
	}

	conn, err := amqp091.Dial(cfg.AMQPAddress)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	exchange := cfg.Exchange
	if exchange == "" {
		exchange = defaultEventsExchange
	}

	// Durable direct exchange; consumers declare and bind their own
	// queues per entity kind.
	err = channel.ExchangeDeclare(exchange, "direct", true, false, false, false, nil)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	logger.Debug().
		Str("exchange", exchange).
		Msg("connected to AMQP broker")

	return &amqpPublisher{
		conn:     conn,
		channel:  channel,
		exchange: exchange,
		logger:   logger,
	}, nil
}

// PublishRecordChange implements [RecordEventPublisher]. The entity kind is
// the routing key, so consumers can bind to just the kinds they care about.
func (p *amqpPublisher) PublishRecordChange(ctx context.Context, event models.RecordEvent) error {
	log := logger.FromContext(ctx)

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: marshal event: %w", ErrPublishFailed, err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = p.channel.PublishWithContext(ctx,
		p.exchange,
		string(event.Kind),
		false,
		false,
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    event.SyncedAt,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPublishFailed, err)
	}

	log.Debug().
		Str("func", "*amqpPublisher.PublishRecordChange").
		Str("kind", string(event.Kind)).
		Str("server_id", event.ServerID).
		Bool("deleted", event.Deleted).
		Msg("published record event")

	return nil
}

// Close implements [RecordEventPublisher].
func (p *amqpPublisher) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// NopPublisher drops every event. Used when no broker is configured and in
// tests.
type NopPublisher struct{}

// PublishRecordChange implements [RecordEventPublisher].
func (NopPublisher) PublishRecordChange(context.Context, models.RecordEvent) error { return nil }

// Close implements [RecordEventPublisher].
func (NopPublisher) Close() error { return nil }
