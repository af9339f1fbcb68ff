// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAdvance(t *testing.T) {
	base := time.Date(2026, time.January, 31, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		payload RecurringTransactionPayload
		want    time.Time
	}{
		{
			name:    "daily",
			payload: RecurringTransactionPayload{Reoccurrence: ReoccurrenceDaily, PeriodLength: 1},
			want:    time.Date(2026, time.February, 1, 9, 0, 0, 0, time.UTC),
		},
		{
			name:    "every three days",
			payload: RecurringTransactionPayload{Reoccurrence: ReoccurrenceDaily, PeriodLength: 3},
			want:    time.Date(2026, time.February, 3, 9, 0, 0, 0, time.UTC),
		},
		{
			name:    "weekly",
			payload: RecurringTransactionPayload{Reoccurrence: ReoccurrenceWeekly, PeriodLength: 1},
			want:    time.Date(2026, time.February, 7, 9, 0, 0, 0, time.UTC),
		},
		{
			name: "monthly from Jan 31 normalizes into March",
			// AddDate(0, 1, 0) from Jan 31 lands on Mar 3 (no Feb 31).
			payload: RecurringTransactionPayload{Reoccurrence: ReoccurrenceMonthly, PeriodLength: 1},
			want:    time.Date(2026, time.March, 3, 9, 0, 0, 0, time.UTC),
		},
		{
			name:    "yearly",
			payload: RecurringTransactionPayload{Reoccurrence: ReoccurrenceYearly, PeriodLength: 1},
			want:    time.Date(2027, time.January, 31, 9, 0, 0, 0, time.UTC),
		},
		{
			name:    "zero period length treated as one",
			payload: RecurringTransactionPayload{Reoccurrence: ReoccurrenceDaily, PeriodLength: 0},
			want:    time.Date(2026, time.February, 1, 9, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.payload.Advance(base))
		})
	}
}

func TestExpired(t *testing.T) {
	end := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	p := RecurringTransactionPayload{EndDate: &end}

	assert.False(t, p.Expired(end))
	assert.False(t, p.Expired(end.Add(-time.Hour)))
	assert.True(t, p.Expired(end.Add(time.Hour)))

	open := RecurringTransactionPayload{}
	assert.False(t, open.Expired(end.AddDate(10, 0, 0)))
}
