package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BudgetPeriod is the time window a budget limit applies to.
type BudgetPeriod string

const (
	BudgetWeekly  BudgetPeriod = "weekly"
	BudgetMonthly BudgetPeriod = "monthly"
	BudgetYearly  BudgetPeriod = "yearly"

	// BudgetCustom uses the payload's explicit start and end dates.
	BudgetCustom BudgetPeriod = "custom"
)

// Valid reports whether p is a recognized budget period.
func (p BudgetPeriod) Valid() bool {
	switch p {
	case BudgetWeekly, BudgetMonthly, BudgetYearly, BudgetCustom:
		return true
	}
	return false
}

// BudgetPayload is the kind-specific document of [KindBudget].
type BudgetPayload struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
	Period BudgetPeriod    `json:"period"`

	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"`

	// WalletIDs and CategoryIDs scope the budget; empty means all.
	WalletIDs   []string `json:"wallet_ids,omitempty"`
	CategoryIDs []string `json:"category_ids,omitempty"`

	IsIncome   bool `json:"is_income,omitempty"`
	IsPinned   bool `json:"is_pinned,omitempty"`
	IsArchived bool `json:"is_archived,omitempty"`
}
