// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"time"
)

// SyncEntity is the generic envelope for one financial record travelling
// between a device and the server. The payload is a kind-specific JSON
// document; the envelope fields drive reconciliation.
type SyncEntity struct {
	// Kind selects the payload schema. Unrecognized kinds are rejected
	// per entity without affecting the rest of the batch.
	Kind EntityKind `json:"kind"`

	// ClientID is the client-generated identifier of the record,
	// stable for the record's whole lifetime and unique per user+kind.
	ClientID string `json:"client_id"`

	// ServerID is assigned by the server on first acceptance and is
	// immutable afterwards. Empty for records the server has not seen.
	ServerID string `json:"server_id,omitempty"`

	// Payload carries the kind-specific financial fields.
	Payload json.RawMessage `json:"payload,omitempty"`

	// ClientUpdatedAt is the client-supplied timestamp of the last
	// local modification. It is the last-writer-wins comparison key.
	ClientUpdatedAt time.Time `json:"client_updated_at"`

	// ServerUpdatedAt is the server-assigned timestamp of the last
	// persisted modification. Read-only for clients.
	ServerUpdatedAt *time.Time `json:"server_updated_at,omitempty"`

	// Deleted marks the record as a tombstone. Tombstoned records are
	// retained server-side so other devices can observe the deletion.
	Deleted bool `json:"deleted,omitempty"`
}

// SyncBatch is the request unit of one synchronization call: an ordered
// sequence of locally-modified entities plus the watermark of the last
// successful sync the submitting device is aware of.
type SyncBatch struct {
	// LastSyncedAt is the watermark: the server returns every record
	// changed after this point that the batch itself did not write.
	// Zero means "everything" (first sync of a device).
	LastSyncedAt time.Time `json:"last_synced_at"`

	// Entities are the device's pending changes, processed in order.
	Entities []SyncEntity `json:"entities"`
}

// OutcomeStatus is the per-entity result of reconciliation.
type OutcomeStatus string

const (
	// OutcomeAccepted: the entity was persisted as submitted
	// (new record, winning overwrite, or idempotent replay).
	OutcomeAccepted OutcomeStatus = "accepted"

	// OutcomeServerWins: the stored state was newer or equal;
	// the submission was discarded and the server copy is authoritative.
	OutcomeServerWins OutcomeStatus = "conflict-resolved-server-wins"

	// OutcomeClientWins: the stored state had changed since the device
	// last synced, but the submission carried the newer edit and won.
	OutcomeClientWins OutcomeStatus = "conflict-resolved-client-wins"

	// OutcomeRejected: the entity could not be processed (unknown kind,
	// malformed payload, or a transient storage failure).
	OutcomeRejected OutcomeStatus = "rejected"
)

// EntityOutcome reports what happened to one submitted entity.
type EntityOutcome struct {
	Kind     EntityKind    `json:"kind"`
	ClientID string        `json:"client_id"`
	ServerID string        `json:"server_id,omitempty"`
	Status   OutcomeStatus `json:"status"`

	// Reason explains rejections and no-op replays. Empty otherwise.
	Reason string `json:"reason,omitempty"`
}

// Applied reports whether the submitted entity ended up persisted as sent,
// i.e. the client's copy is now the authoritative one.
func (o EntityOutcome) Applied() bool {
	return o.Status == OutcomeAccepted || o.Status == OutcomeClientWins
}

// SyncResult is the response unit of one synchronization call.
type SyncResult struct {
	// Outcomes has one entry per submitted entity, in submission order.
	Outcomes []EntityOutcome `json:"outcomes"`

	// ServerChanges is the pull set: every record of the user changed
	// after the batch watermark, excluding records this very batch
	// wrote, so a device never receives its own write back.
	ServerChanges []SyncEntity `json:"server_changes"`

	// SyncedAt is the new watermark the device must persist and send
	// as LastSyncedAt on its next call.
	SyncedAt time.Time `json:"synced_at"`
}

// SyncStatus is the per-kind summary returned by the status endpoint.
type SyncStatus struct {
	Kinds    map[EntityKind]KindCounts `json:"kinds"`
	ServerAt time.Time                 `json:"server_at"`
}

// KindCounts holds record statistics for one kind.
type KindCounts struct {
	// Total counts live and tombstoned records.
	Total int64 `json:"total"`

	// Deleted counts tombstones only.
	Deleted int64 `json:"deleted"`

	// LastChangedAt is the newest server_updated_at for the kind,
	// nil when the user has no records of it.
	LastChangedAt *time.Time `json:"last_changed_at,omitempty"`
}
