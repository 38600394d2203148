// Package scorer provides the reference rule-based fraud scorer. The engine
// only depends on the transaction.FraudScorer contract, so a model-based
// scorer can replace this one without engine changes.
package scorer

import (
	"context"

	"github.com/adiprasetyo/txcore/internal/pkg/models"
)

// Signal weights. A transaction tripping both signals lands at 0.7, above
// the default review threshold but below the default block threshold.
const (
	velocityWeight    = 0.4
	largeAmountWeight = 0.3
)

// Named contributing factors reported in the verdict
const (
	FactorHighVelocity = "high_transaction_velocity"
	FactorLargeAmount  = "large_transaction_amount"
)

// RuleScorer scores requests with deterministic rules over the requester's
// recent history and the request amount.
type RuleScorer struct {
	cfg models.FraudConfig
}

// NewRuleScorer creates a rule-based scorer
func NewRuleScorer(cfg models.FraudConfig) *RuleScorer {
	return &RuleScorer{cfg: cfg}
}

// Score implements transaction.FraudScorer. The history slice is expected to
// cover the configured recent-history window; the scorer itself does no I/O.
func (s *RuleScorer) Score(ctx context.Context, req models.TransactionRequest, history []models.TransactionRecord) (models.FraudVerdict, error) {
	select {
	case <-ctx.Done():
		return models.FraudVerdict{}, ctx.Err()
	default:
	}

	score := 0.0
	var factors []string

	if s.cfg.VelocityLimit > 0 && len(history) >= s.cfg.VelocityLimit {
		score += velocityWeight
		factors = append(factors, FactorHighVelocity)
	}

	if s.cfg.AmountThreshold > 0 && req.AmountMinor > s.cfg.AmountThreshold {
		score += largeAmountWeight
		factors = append(factors, FactorLargeAmount)
	}

	return models.FraudVerdict{
		Score:   score,
		Verdict: s.verdictFor(score),
		Factors: factors,
	}, nil
}

func (s *RuleScorer) verdictFor(score float64) models.FraudOutcome {
	switch {
	case score >= s.cfg.BlockThreshold:
		return models.FraudBlock
	case score >= s.cfg.ReviewThreshold:
		return models.FraudReview
	default:
		return models.FraudAllow
	}
}

// VerdictFor maps an externally computed score onto the configured
// thresholds. Used by the engine to band scores from any scorer
// implementation consistently.
func VerdictFor(cfg models.FraudConfig, score float64) models.FraudOutcome {
	switch {
	case score >= cfg.BlockThreshold:
		return models.FraudBlock
	case score >= cfg.ReviewThreshold:
		return models.FraudReview
	default:
		return models.FraudAllow
	}
}
