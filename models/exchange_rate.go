// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate holds one user-scoped currency pair. A pair carries both
// the provider-fetched rate and an optional user override; the effective
// rate depends on the UseCustomRate switch.
type ExchangeRate struct {
	ID     int64 `json:"id"`
	UserID int64 `json:"-"`

	// FromCurrency and ToCurrency are uppercase ISO-4217 codes.
	// The pair is unique per user.
	FromCurrency string `json:"from_currency"`
	ToCurrency   string `json:"to_currency"`

	// APIRate is the last rate fetched from the provider, nil before
	// the first refresh.
	APIRate *decimal.Decimal `json:"api_rate,omitempty"`

	// CustomRate is the user-entered override, nil when unset.
	CustomRate *decimal.Decimal `json:"custom_rate,omitempty"`

	UseCustomRate bool `json:"use_custom_rate"`

	APIRateFetchedAt *time.Time `json:"api_rate_fetched_at,omitempty"`

	// Version increments on every write so devices can detect stale
	// copies without comparing every field.
	Version int64 `json:"version"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the ExchangeRate model.
func (e ExchangeRate) TableName() string {
	return "exchange_rates"
}

// EffectiveRate returns the rate conversions should use: the custom
// override when enabled and set, the provider rate otherwise.
// ok is false when neither source has a value.
func (e ExchangeRate) EffectiveRate() (rate decimal.Decimal, ok bool) {
	if e.UseCustomRate && e.CustomRate != nil {
		return *e.CustomRate, true
	}

	if e.APIRate != nil {
		return *e.APIRate, true
	}

	return decimal.Decimal{}, false
}
