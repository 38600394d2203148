package transaction

import (
	"context"
	"time"

	"github.com/adiprasetyo/txcore/internal/pkg/models"
)

// TransactionRepo defines the interface for transaction record storage.
// The workflow engine is the sole writer; UpdateState uses optimistic
// versioning so a lost update surfaces as a conflict instead of silent
// corruption.
type TransactionRepo interface {
	// Create inserts a new record and registers its idempotency key.
	// Returns models.ErrInvalidStateTransition wrapped conflict when the
	// idempotency key is already bound to another transaction.
	Create(ctx context.Context, rec *models.TransactionRecord) error

	// Get returns the record with its ordered transitions
	Get(ctx context.Context, txID string) (*models.TransactionRecord, error)

	// FindByIdempotencyKey resolves the idempotency-key index.
	// Returns models.ErrTransactionNotFound when the key is unknown.
	FindByIdempotencyKey(ctx context.Context, key string) (*models.TransactionRecord, error)

	// UpdateState persists a state transition: appends the transition event,
	// updates the record fields and bumps Version. The update is conditional
	// on the record's current Version.
	UpdateState(ctx context.Context, rec *models.TransactionRecord, transition models.StateTransition) error

	// RecentByRequester returns records submitted by the requester since the
	// given time, newest first. Used as fraud-scoring history.
	RecentByRequester(ctx context.Context, requesterID string, since time.Time) ([]models.TransactionRecord, error)
}

// DailyLimiter is the per-account serialization point for the daily
// cumulative cap. Reserve atomically checks committed+reserved+amount
// against the cap; reservations are keyed by transaction id so every
// operation is idempotent under replay.
type DailyLimiter interface {
	// Reserve holds amount against the account's daily cap.
	// Returns models.ErrLimitExceeded when the cap would be breached.
	Reserve(ctx context.Context, account string, day time.Time, txID string, amount int64) error

	// Commit converts a reservation into committed spend
	Commit(ctx context.Context, account string, day time.Time, txID string) error

	// Release frees a reservation that will not commit. No-op when nothing
	// is reserved for txID.
	Release(ctx context.Context, account string, day time.Time, txID string) error
}
