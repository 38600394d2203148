package transaction

import (
	"context"

	"github.com/adiprasetyo/txcore/internal/pkg/models"
)

// FraudScorer produces a risk verdict for a request given the requester's
// recent transaction history. Implementations are interchangeable; the
// engine depends only on this contract and treats a scorer error or timeout
// as fail-closed (verdict review), never fail-open.
type FraudScorer interface {
	Score(ctx context.Context, req models.TransactionRequest, history []models.TransactionRecord) (models.FraudVerdict, error)
}
