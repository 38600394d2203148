package transaction

import (
	"context"

	"github.com/adiprasetyo/txcore/internal/pkg/models"
)

// BankingBackend is the client contract for the system of record that moves
// funds. Execute is idempotent keyed by idempotencyKey: replaying a key
// after a success returns the original result without moving funds again.
// Reverse is idempotent keyed by the execution reference.
type BankingBackend interface {
	Execute(ctx context.Context, txID, idempotencyKey, debitAccount, creditAccount string, amountMinor int64, currency string) (models.ExecutionResult, error)
	Reverse(ctx context.Context, executionRef string) (models.ReversalResult, error)
}
