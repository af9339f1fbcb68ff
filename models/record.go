package models

import (
	"encoding/json"
	"time"
)

// Record is the authoritative server-side copy of one synced entity.
// One row exists per (UserID, Kind, ClientID) for the record's whole
// lifetime; deletions keep the row as a tombstone.
type Record struct {
	// ID is the internal surrogate key. Never exposed to clients.
	ID int64 `json:"-"`

	// UserID is the owner. Every query against records is scoped by it.
	UserID int64 `json:"-"`

	Kind     EntityKind `json:"kind"`
	ClientID string     `json:"client_id"`

	// ServerID is the public identifier of the record, assigned once
	// on first acceptance and immutable afterwards.
	ServerID string `json:"server_id"`

	Payload json.RawMessage `json:"payload"`

	// PayloadHash is the SHA-256 of the compacted payload document.
	// Used to detect idempotent replays without comparing documents.
	PayloadHash string `json:"-"`

	// ClientUpdatedAt is the last accepted client edit timestamp,
	// the last-writer-wins comparison key.
	ClientUpdatedAt time.Time `json:"client_updated_at"`

	// ServerUpdatedAt is the arrival-clock change stamp, strictly
	// increasing per record. Pull sets select on it.
	ServerUpdatedAt time.Time `json:"server_updated_at"`

	Deleted   bool      `json:"deleted"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the Record model.
func (r Record) TableName() string {
	return "records"
}

// ClientKey identifies one logical record within a user's data set.
type ClientKey struct {
	Kind     EntityKind
	ClientID string
}

// Key returns the record's [ClientKey].
func (r Record) Key() ClientKey {
	return ClientKey{Kind: r.Kind, ClientID: r.ClientID}
}

// UnmarshalPayload parses the payload document into the kind's typed
// payload struct.
func (r Record) UnmarshalPayload(v any) error {
	return json.Unmarshal(r.Payload, v)
}

// ToSyncEntity converts the stored record into its wire envelope form
// for pull sets and CRUD responses.
func (r Record) ToSyncEntity() SyncEntity {
	sua := r.ServerUpdatedAt

	return SyncEntity{
		Kind:            r.Kind,
		ClientID:        r.ClientID,
		ServerID:        r.ServerID,
		Payload:         r.Payload,
		ClientUpdatedAt: r.ClientUpdatedAt,
		ServerUpdatedAt: &sua,
		Deleted:         r.Deleted,
	}
}
