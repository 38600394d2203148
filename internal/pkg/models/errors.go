package models

import (
	"errors"
	"fmt"
)

var (
	ErrTransactionNotFound     = errors.New("transaction not found")
	ErrIdempotencyKeyRequired  = errors.New("idempotency key is required")
	ErrInvalidStateTransition  = errors.New("invalid state transition")
	ErrLimitExceeded           = errors.New("daily cumulative limit exceeded")
	ErrBackendUnavailable      = errors.New("banking backend unavailable")
	ErrCancellationNotAllowed  = errors.New("transaction can no longer be cancelled")
	ErrReversalNotAllowed      = errors.New("only committed transactions can be reversed")
	ErrReviewDecisionNotNeeded = errors.New("transaction is not under review")
)

// ValidationError is a terminal business-rule rejection. It is an expected
// outcome, distinct from infrastructure faults.
type ValidationError struct {
	Field  string
	Reason ReasonCode
	Msg    string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Msg)
	}
	return fmt.Sprintf("validation failed: %s", e.Msg)
}

// BackendRejectedError is a permanent rejection by the banking backend,
// e.g. insufficient funds. Never retried.
type BackendRejectedError struct {
	Reason ReasonCode
	Msg    string
}

func (e *BackendRejectedError) Error() string {
	return fmt.Sprintf("backend rejected transaction: %s", e.Msg)
}

// InfrastructureError wraps a transient fault (store unreachable, scorer
// timeout) so callers can distinguish "reject" from "retry later".
type InfrastructureError struct {
	Op  string
	Err error
}

func (e *InfrastructureError) Error() string {
	return fmt.Sprintf("infrastructure failure during %s: %v", e.Op, e.Err)
}

func (e *InfrastructureError) Unwrap() error { return e.Err }

// AuditWriteError indicates a state transition could not be durably audited.
// The transition itself is treated as not committed.
type AuditWriteError struct {
	TransactionID string
	Err           error
}

func (e *AuditWriteError) Error() string {
	return fmt.Sprintf("audit write failed for transaction %s: %v", e.TransactionID, e.Err)
}

func (e *AuditWriteError) Unwrap() error { return e.Err }
