// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-accountant/internal/config"
	"github.com/MKhiriev/go-accountant/internal/logger"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// Adapters bundles the outbound collaborators handed to the service layer.
type Adapters struct {
	Firebase  FirebaseTokenVerifier
	Rates     RateProvider
	Purchases PurchaseVerifier
	Events    RecordEventPublisher
}

// NewAdapters wires every outbound collaborator from config. Absent optional
// config (no Firebase project, no rate provider, no broker) degrades to
// disabled implementations that fail their own endpoint only; malformed
// config fails construction.
func NewAdapters(cfg *config.StructuredConfig, logger *logger.Logger) (*Adapters, error) {
	adapters := &Adapters{
		Purchases: NewStoreVerifier(cfg.IAP, logger),
	}

	if strings.TrimSpace(cfg.Firebase.ProjectID) != "" {
		firebase, err := NewFirebaseVerifier(cfg.Firebase, logger)
		if err != nil {
			return nil, fmt.Errorf("firebase verifier: %w", err)
		}
		adapters.Firebase = firebase
	} else {
		logger.Debug().Msg("no firebase project configured, firebase sign-in disabled")
		adapters.Firebase = disabledFirebaseVerifier{}
	}

	if strings.TrimSpace(cfg.Rates.ProviderURL) != "" {
		rates, err := NewRatesProvider(cfg.Rates, NewRedisCache(cfg.Storage.Redis), cfg.Storage.Redis.CacheTTL, logger)
		if err != nil {
			return nil, fmt.Errorf("rate provider: %w", err)
		}
		adapters.Rates = rates
	} else {
		logger.Debug().Msg("no rate provider configured, rate refresh disabled")
		adapters.Rates = disabledRateProvider{}
	}

	events, err := NewEventPublisher(cfg.Events, logger)
	if err != nil {
		return nil, fmt.Errorf("event publisher: %w", err)
	}
	adapters.Events = events

	return adapters, nil
}

// Close releases held connections. Safe on a partially constructed value.
func (a *Adapters) Close() error {
	if a == nil || a.Events == nil {
		return nil
	}
	return a.Events.Close()
}

// NewRedisCache builds the optional redis client backing the rate provider
// cache. Returns nil when no address is configured, which disables caching.
func NewRedisCache(cfg config.Redis) *redis.Client {
	if strings.TrimSpace(cfg.Addr) == "" {
		return nil
	}

	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

type disabledFirebaseVerifier struct{}

func (disabledFirebaseVerifier) VerifyIDToken(context.Context, string) (FirebaseIdentity, error) {
	return FirebaseIdentity{}, fmt.Errorf("%w: firebase auth is not configured", ErrTokenVerification)
}

type disabledRateProvider struct{}

func (disabledRateProvider) FetchRates(context.Context, string) (map[string]decimal.Decimal, error) {
	return nil, fmt.Errorf("%w: no rate provider configured", ErrProviderRequest)
}
