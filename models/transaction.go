package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType distinguishes how a transaction came to exist.
type TransactionType string

const (
	// TransactionRegular is a transaction entered by the user.
	TransactionRegular TransactionType = "regular"

	// TransactionTransfer is one leg of a wallet-to-wallet transfer;
	// PairedTransactionID points at the opposite leg.
	TransactionTransfer TransactionType = "transfer"

	// TransactionRecurringInstance was materialized from a recurring
	// transaction template by the background worker.
	TransactionRecurringInstance TransactionType = "recurring_instance"
)

// Valid reports whether t is a recognized transaction type.
func (t TransactionType) Valid() bool {
	switch t {
	case TransactionRegular, TransactionTransfer, TransactionRecurringInstance:
		return true
	}
	return false
}

// TransactionPayload is the kind-specific document of [KindTransaction].
type TransactionPayload struct {
	// WalletID references the owning wallet's ServerID.
	WalletID string `json:"wallet_id"`

	CategoryID      *string `json:"category_id,omitempty"`
	PaymentMethodID *string `json:"payment_method_id,omitempty"`

	Amount decimal.Decimal `json:"amount"`
	Title  string          `json:"title"`
	Notes  *string         `json:"notes,omitempty"`

	Date     time.Time `json:"date"`
	IsIncome bool      `json:"is_income"`

	Type TransactionType `json:"type,omitempty"`

	PairedTransactionID *string `json:"paired_transaction_id,omitempty"`
	RecurringConfigID   *string `json:"recurring_config_id,omitempty"`
	ReceiptImageURL     *string `json:"receipt_image_url,omitempty"`
}

// SignedAmount returns the amount with the sign implied by the income
// flag: positive for income, negative for expense.
func (p TransactionPayload) SignedAmount() decimal.Decimal {
	if p.IsIncome {
		return p.Amount
	}

	return p.Amount.Neg()
}

// TransactionFilter holds the optional criteria of the transaction list
// endpoint. Nil/zero fields are not applied.
type TransactionFilter struct {
	WalletID        *string          `json:"wallet_id,omitempty"`
	CategoryID      *string          `json:"category_id,omitempty"`
	PaymentMethodID *string          `json:"payment_method_id,omitempty"`
	IsIncome        *bool            `json:"is_income,omitempty"`
	Type            *TransactionType `json:"type,omitempty"`

	DateFrom *time.Time `json:"date_from,omitempty"`
	DateTo   *time.Time `json:"date_to,omitempty"`

	AmountMin *decimal.Decimal `json:"amount_min,omitempty"`
	AmountMax *decimal.Decimal `json:"amount_max,omitempty"`

	// Search matches title and notes case-insensitively.
	Search string `json:"search,omitempty"`

	Limit  uint64 `json:"limit,omitempty"`
	Offset uint64 `json:"offset,omitempty"`
}
