package audit

import (
	"context"

	"github.com/adiprasetyo/txcore/internal/pkg/models"
)

// AuditRepo defines durable storage for the append-only audit chain.
// Entries are never updated or deleted.
type AuditRepo interface {
	// Append durably stores one entry. Returns an error on any failure;
	// the caller treats the corresponding state change as not committed.
	Append(ctx context.Context, entry models.AuditEntry) error

	// Last returns the newest entry for a transaction id, or nil when the
	// chain is empty.
	Last(ctx context.Context, txID string) (*models.AuditEntry, error)

	// Chain returns all entries for a transaction id in sequence order
	Chain(ctx context.Context, txID string) ([]models.AuditEntry, error)
}
