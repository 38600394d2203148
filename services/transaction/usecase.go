package transaction

import (
	"context"

	"github.com/adiprasetyo/txcore/internal/pkg/models"
)

// TransactionUC defines the workflow engine's business interface.
// go:generate mockgen -destination=mocks/mock_usecase.go -package=mocks github.com/adiprasetyo/txcore/services/transaction TransactionUC
type TransactionUC interface {
	// Submit drives a transaction request through the workflow. Replaying an
	// idempotency key returns the existing record: terminal records are
	// returned as-is, non-terminal ones resume from their persisted state.
	Submit(ctx context.Context, req models.TransactionRequest) (*models.TransactionRecord, error)

	// Get returns the current record for a transaction id
	Get(ctx context.Context, txID string) (*models.TransactionRecord, error)

	// ResolveReview applies an external clear/deny decision to a transaction
	// suspended in UnderReview and resumes the workflow.
	ResolveReview(ctx context.Context, txID string, decision models.ReviewDecision, authorizer string) (*models.TransactionRecord, error)

	// Cancel aborts a transaction that has not yet had any backend-visible
	// effect (Created or Validating only).
	Cancel(ctx context.Context, txID, actor string) (*models.TransactionRecord, error)

	// Reverse compensates a committed transaction: the original moves
	// Reversing -> Reversed and a linked follow-on record is created.
	Reverse(ctx context.Context, txID, actor, reason string) (*models.TransactionRecord, error)
}
