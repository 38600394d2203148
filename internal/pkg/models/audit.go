package models

import (
	"encoding/json"
	"time"
)

// Audit event types
const (
	AuditEventTransition    = "state_transition"
	AuditEventBackendRetry  = "backend_retry"
	AuditEventSecurityAlert = "security_alert"
)

// AuditEntry is one append-only row of the per-transaction audit chain.
// Hash = SHA-256(canonical payload || PrevHash); the first entry of a
// transaction links to a fixed genesis hash derived from the transaction id.
type AuditEntry struct {
	TransactionID string          `json:"transaction_id" db:"tx_id"`
	Seq           int             `json:"seq" db:"seq"`
	EventType     string          `json:"event_type" db:"event_type"`
	Actor         string          `json:"actor" db:"actor"`
	Context       json.RawMessage `json:"context,omitempty" db:"context"`
	At            time.Time       `json:"at" db:"created_at"`
	PrevHash      string          `json:"prev_hash" db:"prev_hash"`
	Hash          string          `json:"hash" db:"hash"`
}
