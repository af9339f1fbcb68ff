package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ObjectiveType distinguishes saving up from paying off.
type ObjectiveType string

const (
	// ObjectiveGoal accumulates towards a target amount.
	ObjectiveGoal ObjectiveType = "goal"

	// ObjectiveLoan tracks repayment of a borrowed amount.
	ObjectiveLoan ObjectiveType = "loan"
)

// Valid reports whether t is a recognized objective type.
func (t ObjectiveType) Valid() bool {
	return t == ObjectiveGoal || t == ObjectiveLoan
}

// ObjectivePayload is the kind-specific document of [KindObjective].
type ObjectivePayload struct {
	Name     string `json:"name"`
	IconName string `json:"icon_name,omitempty"`
	Color    string `json:"color,omitempty"`

	TargetAmount decimal.Decimal `json:"target_amount"`
	Type         ObjectiveType   `json:"type"`

	// WalletID optionally ties progress to a dedicated wallet.
	WalletID *string `json:"wallet_id,omitempty"`

	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"`

	IsPinned   bool `json:"is_pinned,omitempty"`
	IsArchived bool `json:"is_archived,omitempty"`
}
