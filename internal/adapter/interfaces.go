// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter holds the outbound collaborators of the service layer:
// Firebase ID-token verification, the exchange-rate provider, app-store
// purchase verification and the record-change event publisher.
//
// Each collaborator is an interface so services stay testable without
// network access. HTTP implementations share the resty-based
// [utils.HTTPClient]; the rate provider additionally caches responses in
// redis and the event publisher speaks AMQP. Sentinel errors defined in
// errors.go are wrapped into every failure so callers can use [errors.Is]
// without knowing the transport.
package adapter

import (
	"context"
	"time"

	"github.com/MKhiriev/go-accountant/models"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// FirebaseIdentity is the subset of verified ID-token claims the auth flow
// consumes.
type FirebaseIdentity struct {
	// UID is the Firebase user id (the token subject). Never empty on a
	// successfully verified token.
	UID string

	Email         string
	EmailVerified bool
	Name          string
	Picture       string

	// SignInProvider is the upstream identity provider reported by
	// Firebase, e.g. "google.com" or "password".
	SignInProvider string

	// GoogleID is set for Google sign-ins only.
	GoogleID *string
}

// FirebaseTokenVerifier checks a client-supplied Firebase ID token against
// Google's published signing certificates.
type FirebaseTokenVerifier interface {
	// VerifyIDToken validates signature, issuer, audience and expiry of
	// idToken and returns the identity it asserts. Any failure wraps
	// [ErrTokenVerification].
	VerifyIDToken(ctx context.Context, idToken string) (FirebaseIdentity, error)
}

// RateProvider fetches current exchange rates from the configured provider,
// quoted against a single base currency.
type RateProvider interface {
	// FetchRates returns counter-currency → rate for the given base,
	// e.g. base "USD" → {"EUR": 0.92, "GBP": 0.79}. Implementations may
	// serve cached responses.
	FetchRates(ctx context.Context, base string) (map[string]decimal.Decimal, error)
}

// PurchaseVerification is what the store reported about a purchase token.
type PurchaseVerification struct {
	ProductID   string
	PurchasedAt time.Time
}

// PurchaseVerifier checks an in-app purchase token with the originating
// store (Google Play or the App Store).
type PurchaseVerifier interface {
	// VerifyPurchase confirms the token is a real, paid purchase.
	// productID may be empty on restores; the store's own product id is
	// returned either way. Rejections wrap [ErrPurchaseRejected].
	VerifyPurchase(ctx context.Context, platform models.Platform, productID, purchaseToken string) (PurchaseVerification, error)
}

// RecordEventPublisher broadcasts record changes to interested consumers.
// Publishing is best-effort: sync and CRUD paths log failures and move on.
type RecordEventPublisher interface {
	PublishRecordChange(ctx context.Context, event models.RecordEvent) error
	Close() error
}
