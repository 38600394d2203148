package audit

import (
	"context"

	"github.com/adiprasetyo/txcore/internal/pkg/models"
)

// Service is the audit log contract used by the workflow engine. Record is
// durable-before-acknowledge: when it returns nil the entry is persisted and
// hash-chained; mirroring to the compliance sink happens after durability.
type Service interface {
	// Record assigns the entry's sequence number and chain hashes, durably
	// appends it, then mirrors it to the compliance sink at least once.
	Record(ctx context.Context, entry *models.AuditEntry) error

	// ReadChain returns the ordered audit chain for a transaction id
	ReadChain(ctx context.Context, txID string) ([]models.AuditEntry, error)

	// VerifyChain recomputes the hash links of an ordered chain and returns
	// the sequence number of the first tampered entry, or 0 when intact.
	VerifyChain(txID string, entries []models.AuditEntry) int
}

// CompliancePublisher mirrors audit entries to the downstream compliance
// feed with at-least-once delivery.
type CompliancePublisher interface {
	PublishAuditEntry(ctx context.Context, entry models.AuditEntry) error
}
