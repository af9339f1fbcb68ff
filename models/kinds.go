// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "fmt"

// EntityKind identifies which of the syncable financial entity types
// a record belongs to. The value selects the payload schema used for
// validation and determines how clients interpret the payload document.
type EntityKind string

const (
	// KindTransaction is a single income or expense operation in a wallet.
	KindTransaction EntityKind = "transaction"

	// KindWallet is a money container with its own currency and balance.
	KindWallet EntityKind = "wallet"

	// KindCategory classifies transactions; may be a subcategory of another.
	KindCategory EntityKind = "category"

	// KindBudget is a spending limit over a period, optionally scoped
	// to wallets and categories.
	KindBudget EntityKind = "budget"

	// KindObjective is a savings goal or a loan payoff target.
	KindObjective EntityKind = "objective"

	// KindRecurringTransaction is a template plus schedule from which
	// transaction instances are materialized.
	KindRecurringTransaction EntityKind = "recurring_transaction"

	// KindPaymentMethod is a named payment instrument (card, cash, ...).
	KindPaymentMethod EntityKind = "payment_method"
)

// Kinds lists every recognized [EntityKind] in a stable order.
// The order matters for clients that apply pulled changes sequentially:
// referenced entities (wallets, categories) come before referencing ones.
func Kinds() []EntityKind {
	return []EntityKind{
		KindCategory,
		KindWallet,
		KindPaymentMethod,
		KindTransaction,
		KindBudget,
		KindObjective,
		KindRecurringTransaction,
	}
}

// Valid reports whether k is one of the recognized entity kinds.
func (k EntityKind) Valid() bool {
	switch k {
	case KindTransaction, KindWallet, KindCategory, KindBudget,
		KindObjective, KindRecurringTransaction, KindPaymentMethod:
		return true
	}
	return false
}

// String implements [fmt.Stringer].
func (k EntityKind) String() string {
	return string(k)
}

// ParseEntityKind converts a wire string into an [EntityKind].
// Returns an error for values outside the recognized set.
func ParseEntityKind(s string) (EntityKind, error) {
	k := EntityKind(s)
	if !k.Valid() {
		return "", fmt.Errorf("unknown entity kind: %q", s)
	}

	return k, nil
}
