// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Reoccurrence is the calendar unit of a recurring transaction schedule.
type Reoccurrence string

const (
	ReoccurrenceDaily   Reoccurrence = "daily"
	ReoccurrenceWeekly  Reoccurrence = "weekly"
	ReoccurrenceMonthly Reoccurrence = "monthly"
	ReoccurrenceYearly  Reoccurrence = "yearly"
)

// Valid reports whether r is a recognized reoccurrence unit.
func (r Reoccurrence) Valid() bool {
	switch r {
	case ReoccurrenceDaily, ReoccurrenceWeekly, ReoccurrenceMonthly, ReoccurrenceYearly:
		return true
	}
	return false
}

// RecurringTransactionPayload is the kind-specific document of
// [KindRecurringTransaction]: a reference to a template transaction plus
// the schedule on which instances of it are materialized.
type RecurringTransactionPayload struct {
	// BaseTransactionID references the ServerID of the transaction
	// used as the template for generated instances.
	BaseTransactionID string `json:"base_transaction_id"`

	// PeriodLength scales the reoccurrence unit: every N days/weeks/...
	PeriodLength int32        `json:"period_length"`
	Reoccurrence Reoccurrence `json:"reoccurrence"`

	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"`

	// NextOccurrence is the due date of the next instance.
	// Advanced by the materializer after each generated instance.
	NextOccurrence time.Time `json:"next_occurrence"`

	IsActive bool `json:"is_active"`
}

// Advance returns the occurrence following t according to the schedule.
// Monthly and yearly steps follow time.AddDate normalization rules.
func (p RecurringTransactionPayload) Advance(t time.Time) time.Time {
	n := int(p.PeriodLength)
	if n < 1 {
		n = 1
	}

	switch p.Reoccurrence {
	case ReoccurrenceDaily:
		return t.AddDate(0, 0, n)
	case ReoccurrenceWeekly:
		return t.AddDate(0, 0, 7*n)
	case ReoccurrenceMonthly:
		return t.AddDate(0, n, 0)
	case ReoccurrenceYearly:
		return t.AddDate(n, 0, 0)
	default:
		return t.AddDate(0, 0, n)
	}
}

// Expired reports whether the schedule has run past its end date at due.
func (p RecurringTransactionPayload) Expired(due time.Time) bool {
	return p.EndDate != nil && due.After(*p.EndDate)
}
