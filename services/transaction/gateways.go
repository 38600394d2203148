package transaction

import (
	"context"

	"github.com/adiprasetyo/txcore/internal/pkg/models"
)

// TransactionGW defines outbound event publishing for the workflow engine
type TransactionGW interface {
	// PublishReviewRequested notifies the authorization collaborator that a
	// transaction is suspended pending a clear/deny decision.
	PublishReviewRequested(ctx context.Context, event models.ReviewRequestedEvent) error
}
