package models

import "time"

// RecordEvent is the message broadcast after a record write: enough for a
// downstream consumer to decide whether to pull, without carrying payload
// data over the broker.
type RecordEvent struct {
	UserID   int64      `json:"user_id"`
	Kind     EntityKind `json:"kind"`
	ServerID string     `json:"server_id"`
	Deleted  bool       `json:"deleted"`
	SyncedAt time.Time  `json:"synced_at"`
}
