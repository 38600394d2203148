package models

import (
	"time"
)

// TransactionType identifies the kind of money movement requested
type TransactionType string

const (
	TransactionTypeTransfer TransactionType = "transfer"
	TransactionTypePayment  TransactionType = "payment"
	TransactionTypeOther    TransactionType = "other"
)

// TransactionState is a state of the transaction workflow state machine
type TransactionState string

const (
	StateCreated       TransactionState = "created"
	StateValidating    TransactionState = "validating"
	StateValidated     TransactionState = "validated"
	StateFraudChecking TransactionState = "fraud_checking"
	StateAllowed       TransactionState = "allowed"
	StateUnderReview   TransactionState = "under_review"
	StateBlocked       TransactionState = "blocked"
	StateAuthorizing   TransactionState = "authorizing"
	StateExecuting     TransactionState = "executing"
	StateCommitted     TransactionState = "committed"
	StateRejected      TransactionState = "rejected"
	StateFailed        TransactionState = "failed"
	StateReversing     TransactionState = "reversing"
	StateReversed      TransactionState = "reversed"
)

// Terminal reports whether no further automatic transition happens from s.
// Committed still accepts an explicit reversal request; Reversed, Rejected
// and Failed accept nothing.
func (s TransactionState) Terminal() bool {
	switch s {
	case StateCommitted, StateRejected, StateFailed, StateReversed:
		return true
	}
	return false
}

// ReasonCode is the machine-readable reason attached to a terminal outcome
type ReasonCode string

const (
	ReasonFieldError         ReasonCode = "field_error"
	ReasonMalformedAccount   ReasonCode = "malformed_account"
	ReasonLimitExceeded      ReasonCode = "limit_exceeded"
	ReasonFraudBlocked       ReasonCode = "fraud_blocked"
	ReasonReviewDenied       ReasonCode = "review_denied"
	ReasonCancelled          ReasonCode = "cancelled"
	ReasonInsufficientFunds  ReasonCode = "insufficient_funds"
	ReasonBackendRejected    ReasonCode = "backend_rejected"
	ReasonBackendUnavailable ReasonCode = "backend_unavailable"
	ReasonReversedByRequest  ReasonCode = "reversed_by_request"
)

// TransactionRequest is the caller-submitted, immutable request.
// Amounts are integer minor units to avoid floating point error.
type TransactionRequest struct {
	RequesterID        string          `json:"requester_id" db:"requester_id"`
	SourceAccount      string          `json:"source_account" db:"source_account"`
	DestinationAccount string          `json:"destination_account" db:"destination_account"`
	AmountMinor        int64           `json:"amount_minor" db:"amount_minor"`
	Currency           string          `json:"currency" db:"currency"`
	Type               TransactionType `json:"type" db:"tx_type"`
	IdempotencyKey     string          `json:"idempotency_key" db:"idempotency_key"`
	SubmittedAt        time.Time       `json:"submitted_at" db:"submitted_at"`
}

// StateTransition is one recorded step of the state machine
type StateTransition struct {
	From   TransactionState `json:"from" db:"from_state"`
	To     TransactionState `json:"to" db:"to_state"`
	At     time.Time        `json:"at" db:"created_at"`
	Actor  string           `json:"actor" db:"actor"`
	Reason string           `json:"reason,omitempty" db:"reason"`
}

// TransactionRecord is the engine-owned record of one transaction.
// Only the workflow engine mutates it; Version guards against lost updates.
type TransactionRecord struct {
	ID          string             `json:"id" db:"id"`
	Request     TransactionRequest `json:"request"`
	State       TransactionState   `json:"state" db:"state"`
	Version     int64              `json:"version" db:"version"`
	Transitions []StateTransition  `json:"transitions,omitempty"`

	FraudScore   *float64     `json:"fraud_score,omitempty" db:"fraud_score"`
	FraudVerdict FraudOutcome `json:"fraud_verdict,omitempty" db:"fraud_verdict"`
	FraudFactors []string     `json:"fraud_factors,omitempty"`

	ExecutionRef string     `json:"execution_ref,omitempty" db:"execution_ref"`
	Outcome      ReasonCode `json:"outcome,omitempty" db:"outcome"`

	// ReversalOf links a compensating transaction to the committed
	// transaction it reverses.
	ReversalOf string `json:"reversal_of,omitempty" db:"reversal_of"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ExecutionStatus classifies a banking backend execute result
type ExecutionStatus string

const (
	ExecutionCommitted   ExecutionStatus = "committed"
	ExecutionRejected    ExecutionStatus = "rejected"
	ExecutionUnavailable ExecutionStatus = "unavailable"
)

// ExecutionResult is the outcome of one banking backend execute call
type ExecutionResult struct {
	Status    ExecutionStatus `json:"status"`
	Reference string          `json:"reference,omitempty"`
	Reason    ReasonCode      `json:"reason,omitempty"`
	Message   string          `json:"message,omitempty"`
}

// ReversalResult is the outcome of a banking backend reverse call
type ReversalResult struct {
	Reference string `json:"reference"`
}

// ReviewDecision is the asynchronous authorization decision for a
// transaction suspended in UnderReview
type ReviewDecision string

const (
	ReviewCleared ReviewDecision = "clear"
	ReviewDenied  ReviewDecision = "deny"
)

// ReviewRequestedEvent is published when a transaction enters UnderReview
type ReviewRequestedEvent struct {
	TransactionID string    `json:"transaction_id"`
	RequesterID   string    `json:"requester_id"`
	AmountMinor   int64     `json:"amount_minor"`
	Currency      string    `json:"currency"`
	FraudScore    float64   `json:"fraud_score"`
	FraudFactors  []string  `json:"fraud_factors"`
	RequestedAt   time.Time `json:"requested_at"`
}

// ReviewDecisionEvent carries an external clear/deny decision
type ReviewDecisionEvent struct {
	TransactionID string         `json:"transaction_id"`
	Decision      ReviewDecision `json:"decision"`
	Authorizer    string         `json:"authorizer"`
	DecidedAt     time.Time      `json:"decided_at"`
}
