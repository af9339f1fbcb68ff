// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks the inputs that cross the API boundary: sync
// envelopes, the per-kind payload documents behind them, and the auth,
// exchange-rate, IAP and title request bodies.
//
// Services hold one [Validator] and call it before anything is persisted.
// Validation failures carry field-level messages that flow back to clients
// unchanged, either as a 400 body or as a per-entity rejection reason
// inside a sync result.
package validators

import "context"

// Validator validates one input value. The optional field names restrict
// the check to a subset of an input's rules; with none given, every rule
// for that input type runs.
type Validator interface {
	Validate(context.Context, any, ...string) error
}
