package handler

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"

	"github.com/adiprasetyo/txcore/internal/pkg/logger"
	"github.com/adiprasetyo/txcore/internal/pkg/models"
	"github.com/adiprasetyo/txcore/services/transaction/gateway"
)

// InitNATSConsumers subscribes the review decision consumer
func (h *TransactionHandler) InitNATSConsumers() error {
	if h.natsClient == nil {
		return nil
	}

	_, err := h.natsClient.Subscribe(gateway.SubjectReviewDecision, h.handleReviewDecision)
	if err != nil {
		return fmt.Errorf("failed to subscribe to review decisions: %w", err)
	}
	return nil
}

// handleReviewDecision resumes a suspended transaction from an external
// clear/deny event
func (h *TransactionHandler) handleReviewDecision(msg *nats.Msg) {
	var event models.ReviewDecisionEvent
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		logger.Error("Failed to unmarshal review decision event", logger.Err(err))
		return
	}

	rec, err := h.txUC.ResolveReview(context.Background(), event.TransactionID, event.Decision, event.Authorizer)
	if err != nil {
		logger.Error("Failed to apply review decision",
			logger.String("transaction_id", event.TransactionID),
			logger.String("decision", string(event.Decision)),
			logger.Err(err))
		return
	}

	logger.Info("Review decision applied",
		logger.String("transaction_id", rec.ID),
		logger.String("decision", string(event.Decision)),
		logger.String("state", string(rec.State)))
}
