package gateway

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/adiprasetyo/txcore/internal/pkg/models"
	natspkg "github.com/adiprasetyo/txcore/internal/pkg/nats"
	"github.com/adiprasetyo/txcore/services/transaction"
)

// NATS subjects for the review collaboration
const (
	SubjectReviewRequested = "transactions.review.requested"
	SubjectReviewDecision  = "transactions.review.decision"
)

// NATSGateway publishes workflow events to the authorization collaborator
type NATSGateway struct {
	client *natspkg.Client
}

func NewNATSGateway(client *natspkg.Client) *NATSGateway {
	return &NATSGateway{client: client}
}

var _ transaction.TransactionGW = (*NATSGateway)(nil)

func (g *NATSGateway) PublishReviewRequested(ctx context.Context, event models.ReviewRequestedEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal review request: %w", err)
	}
	if err := g.client.Publish(SubjectReviewRequested, data); err != nil {
		return fmt.Errorf("failed to publish review request: %w", err)
	}
	return nil
}
