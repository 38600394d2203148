package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/adiprasetyo/txcore/internal/pkg/circuitbreaker"
	"github.com/adiprasetyo/txcore/internal/pkg/keylock"
	"github.com/adiprasetyo/txcore/internal/pkg/logger"
	"github.com/adiprasetyo/txcore/internal/pkg/models"
	"github.com/adiprasetyo/txcore/internal/pkg/retry"
	"github.com/adiprasetyo/txcore/services/audit"
	"github.com/adiprasetyo/txcore/services/transaction"
	"github.com/adiprasetyo/txcore/services/transaction/scorer"
)

const (
	actorEngine = "engine"
	actorSystem = "system"
)

// engineUC drives transaction records through the workflow state machine.
// All processing for one transaction id runs under a per-id lock, so a
// record is advanced by at most one goroutine at a time.
type engineUC struct {
	cfg       *models.Config
	repo      transaction.TransactionRepo
	limiter   transaction.DailyLimiter
	validator transaction.Validator
	scorer    transaction.FraudScorer
	backend   transaction.BankingBackend
	gateway   transaction.TransactionGW
	auditor   audit.Service
	breaker   *circuitbreaker.CircuitBreaker
	backoff   retry.Config
	retrier   *retry.Retrier
	locks     *keylock.KeyLock
	log       *logger.ZapLogger
	now       func() time.Time
}

// NewEngineUC creates the workflow engine
func NewEngineUC(
	cfg *models.Config,
	repo transaction.TransactionRepo,
	limiter transaction.DailyLimiter,
	validator transaction.Validator,
	fraudScorer transaction.FraudScorer,
	backend transaction.BankingBackend,
	gateway transaction.TransactionGW,
	auditor audit.Service,
	breaker *circuitbreaker.CircuitBreaker,
	log *logger.ZapLogger,
) transaction.TransactionUC {
	return &engineUC{
		cfg:       cfg,
		repo:      repo,
		limiter:   limiter,
		validator: validator,
		scorer:    fraudScorer,
		backend:   backend,
		gateway:   gateway,
		auditor:   auditor,
		breaker:   breaker,
		backoff: retry.Config{
			BaseDelay:  time.Duration(cfg.Backend.BaseDelayMs) * time.Millisecond,
			MaxDelay:   time.Duration(cfg.Backend.MaxDelayMs) * time.Millisecond,
			Multiplier: 2.0,
			Jitter:     true,
		},
		retrier: retry.New(retry.Config{
			MaxRetries:    2,
			BaseDelay:     time.Duration(cfg.Backend.BaseDelayMs) * time.Millisecond,
			MaxDelay:      time.Duration(cfg.Backend.MaxDelayMs) * time.Millisecond,
			Multiplier:    2.0,
			Jitter:        true,
			RetryableFunc: retry.TransientRetryableFunc(),
		}, log),
		locks: keylock.New(),
		log:   log,
		now:   time.Now,
	}
}

// Submit resolves the idempotency key to a record, creating one when the
// key is new, then advances the record until it parks or terminates.
func (e *engineUC) Submit(ctx context.Context, req models.TransactionRequest) (*models.TransactionRecord, error) {
	if req.IdempotencyKey == "" {
		return nil, models.ErrIdempotencyKeyRequired
	}
	if req.SubmittedAt.IsZero() {
		req.SubmittedAt = e.now().UTC()
	}

	rec, err := e.getOrCreate(ctx, req)
	if err != nil {
		return nil, err
	}
	if rec.State.Terminal() || rec.State == models.StateUnderReview {
		return rec, nil
	}

	e.locks.Lock(rec.ID)
	defer e.locks.Unlock(rec.ID)

	// Reload under the lock; a concurrent replay may have advanced it
	rec, err = e.repo.Get(ctx, rec.ID)
	if err != nil {
		return nil, err
	}
	return e.advance(ctx, rec)
}

func (e *engineUC) getOrCreate(ctx context.Context, req models.TransactionRequest) (*models.TransactionRecord, error) {
	rec, err := e.repo.FindByIdempotencyKey(ctx, req.IdempotencyKey)
	if err == nil {
		return rec, nil
	}
	if !errors.Is(err, models.ErrTransactionNotFound) {
		return nil, err
	}

	// Creation is serialized per key so two first submissions cannot both
	// insert.
	e.locks.Lock("idem:" + req.IdempotencyKey)
	defer e.locks.Unlock("idem:" + req.IdempotencyKey)

	rec, err = e.repo.FindByIdempotencyKey(ctx, req.IdempotencyKey)
	if err == nil {
		return rec, nil
	}
	if !errors.Is(err, models.ErrTransactionNotFound) {
		return nil, err
	}

	now := e.now().UTC()
	rec = &models.TransactionRecord{
		ID:        uuid.New().String(),
		Request:   req,
		State:     models.StateCreated,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := e.repo.Create(ctx, rec); err != nil {
		return nil, err
	}

	e.log.WithTransaction(rec.ID, req.IdempotencyKey).Info("Transaction created",
		logger.String("requester_id", req.RequesterID),
		logger.Int64("amount_minor", req.AmountMinor),
		logger.String("type", string(req.Type)))
	return rec, nil
}

// Get returns the current record
func (e *engineUC) Get(ctx context.Context, txID string) (*models.TransactionRecord, error) {
	return e.repo.Get(ctx, txID)
}

// advance runs the state machine from the record's persisted state until
// the record parks in UnderReview or reaches a terminal state. Caller holds
// the per-id lock.
func (e *engineUC) advance(ctx context.Context, rec *models.TransactionRecord) (*models.TransactionRecord, error) {
	for {
		var err error
		switch rec.State {
		case models.StateCreated:
			err = e.transition(ctx, rec, models.StateValidating, actorEngine, "")
		case models.StateValidating:
			err = e.validate(ctx, rec)
		case models.StateValidated:
			err = e.transition(ctx, rec, models.StateFraudChecking, actorEngine, "")
		case models.StateFraudChecking:
			err = e.score(ctx, rec)
		case models.StateAllowed:
			err = e.transition(ctx, rec, models.StateAuthorizing, actorEngine, "")
		case models.StateBlocked:
			err = e.rejectBlocked(ctx, rec)
		case models.StateAuthorizing:
			err = e.authorize(ctx, rec)
		case models.StateExecuting:
			err = e.execute(ctx, rec)
		case models.StateReversing:
			err = e.completeReversal(ctx, rec)
		case models.StateUnderReview:
			return rec, nil
		default:
			if rec.State.Terminal() {
				return rec, nil
			}
			return nil, fmt.Errorf("unexpected state %s on %s: %w",
				rec.State, rec.ID, models.ErrInvalidStateTransition)
		}
		if err != nil {
			return nil, err
		}
	}
}

func (e *engineUC) validate(ctx context.Context, rec *models.TransactionRecord) error {
	if verr := e.validator.Validate(rec.Request); verr != nil {
		return e.reject(ctx, rec, verr.Reason, fmt.Sprintf("%s: %s", verr.Field, verr.Msg))
	}

	err := e.limiter.Reserve(ctx, rec.Request.SourceAccount, rec.Request.SubmittedAt,
		rec.ID, rec.Request.AmountMinor)
	if errors.Is(err, models.ErrLimitExceeded) {
		return e.reject(ctx, rec, models.ReasonLimitExceeded, "daily cumulative cap exceeded")
	}
	if err != nil {
		return err
	}

	return e.transition(ctx, rec, models.StateValidated, actorEngine, "")
}

func (e *engineUC) score(ctx context.Context, rec *models.TransactionRecord) error {
	window := time.Duration(e.cfg.Fraud.HistoryWindowMin) * time.Minute
	history, err := e.repo.RecentByRequester(ctx, rec.Request.RequesterID, e.now().UTC().Add(-window))
	if err != nil {
		return err
	}
	// The record being scored is not part of its own history
	filtered := history[:0]
	for _, h := range history {
		if h.ID != rec.ID {
			filtered = append(filtered, h)
		}
	}

	scoreCtx, cancel := context.WithTimeout(ctx, time.Duration(e.cfg.Fraud.TimeoutSec)*time.Second)
	defer cancel()

	verdict, err := e.scorer.Score(scoreCtx, rec.Request, filtered)
	if err != nil {
		// Fail closed: an unscorable transaction goes to review, never through
		e.log.WithTransaction(rec.ID, rec.Request.IdempotencyKey).Warn("Fraud scoring failed, routing to review",
			logger.Err(err))
		verdict = models.FraudVerdict{
			Verdict: models.FraudReview,
			Factors: []string{"scoring_unavailable"},
		}
	} else {
		verdict.Verdict = scorer.VerdictFor(e.cfg.Fraud, verdict.Score)
	}

	score := verdict.Score
	rec.FraudScore = &score
	rec.FraudVerdict = verdict.Verdict
	rec.FraudFactors = verdict.Factors

	switch verdict.Verdict {
	case models.FraudBlock:
		return e.transition(ctx, rec, models.StateBlocked, actorEngine, "")
	case models.FraudReview:
		if err := e.transition(ctx, rec, models.StateUnderReview, actorEngine, ""); err != nil {
			return err
		}
		e.publishReviewRequested(ctx, rec)
		return nil
	default:
		return e.transition(ctx, rec, models.StateAllowed, actorEngine, "")
	}
}

func (e *engineUC) publishReviewRequested(ctx context.Context, rec *models.TransactionRecord) {
	if e.gateway == nil {
		return
	}
	var score float64
	if rec.FraudScore != nil {
		score = *rec.FraudScore
	}
	event := models.ReviewRequestedEvent{
		TransactionID: rec.ID,
		RequesterID:   rec.Request.RequesterID,
		AmountMinor:   rec.Request.AmountMinor,
		Currency:      rec.Request.Currency,
		FraudScore:    score,
		FraudFactors:  rec.FraudFactors,
		RequestedAt:   e.now().UTC(),
	}
	if err := e.gateway.PublishReviewRequested(ctx, event); err != nil {
		// The record is durably parked in UnderReview; the review console
		// can still find it by polling.
		e.log.WithTransaction(rec.ID, rec.Request.IdempotencyKey).Warn("Failed to publish review request",
			logger.Err(err))
	}
}

// rejectBlocked finalizes a blocked transaction and raises a security alert
// on the audit chain.
func (e *engineUC) rejectBlocked(ctx context.Context, rec *models.TransactionRecord) error {
	alert, _ := json.Marshal(map[string]interface{}{
		"fraud_score":   rec.FraudScore,
		"fraud_factors": rec.FraudFactors,
		"requester_id":  rec.Request.RequesterID,
	})
	if err := e.recordAudit(ctx, &models.AuditEntry{
		TransactionID: rec.ID,
		EventType:     models.AuditEventSecurityAlert,
		Actor:         actorEngine,
		Context:       alert,
		At:            e.now().UTC(),
	}); err != nil {
		return err
	}
	return e.reject(ctx, rec, models.ReasonFraudBlocked, "blocked by fraud scoring")
}

func (e *engineUC) authorize(ctx context.Context, rec *models.TransactionRecord) error {
	// Per-transaction caps and the daily reservation were checked during
	// validation and still hold; authorization confirms and moves on.
	return e.transition(ctx, rec, models.StateExecuting, actorEngine, "")
}

func (e *engineUC) execute(ctx context.Context, rec *models.TransactionRecord) error {
	result, err := e.callBackend(ctx, rec)
	if err != nil {
		return err
	}

	switch result.Status {
	case models.ExecutionCommitted:
		rec.ExecutionRef = result.Reference
		if err := e.transition(ctx, rec, models.StateCommitted, actorEngine, string(result.Reason)); err != nil {
			return err
		}
		if err := e.limiter.Commit(ctx, rec.Request.SourceAccount, rec.Request.SubmittedAt, rec.ID); err != nil {
			e.log.WithTransaction(rec.ID, rec.Request.IdempotencyKey).Error("Failed to commit daily limit reservation",
				logger.Err(err))
		}
		return nil
	case models.ExecutionRejected:
		reason := result.Reason
		if reason == "" {
			reason = models.ReasonBackendRejected
		}
		return e.reject(ctx, rec, reason, result.Message)
	default:
		return e.fail(ctx, rec, models.ReasonBackendUnavailable, "banking backend unavailable")
	}
}

// callBackend runs the execute call with bounded retries on transient
// unavailability. Each failed attempt is audited before the next one runs.
func (e *engineUC) callBackend(ctx context.Context, rec *models.TransactionRecord) (models.ExecutionResult, error) {
	var result models.ExecutionResult

	for attempt := 1; ; attempt++ {
		err := e.breaker.Execute(ctx, func(ctx context.Context) error {
			var callErr error
			result, callErr = e.backend.Execute(ctx, rec.ID, rec.Request.IdempotencyKey,
				rec.Request.SourceAccount, rec.Request.DestinationAccount,
				rec.Request.AmountMinor, rec.Request.Currency)
			if callErr != nil {
				return callErr
			}
			if result.Status == models.ExecutionUnavailable {
				return models.ErrBackendUnavailable
			}
			return nil
		})

		if err == nil {
			return result, nil
		}
		if !errors.Is(err, models.ErrBackendUnavailable) && !errors.Is(err, circuitbreaker.ErrOpenState) {
			return models.ExecutionResult{}, err
		}

		detail, _ := json.Marshal(map[string]interface{}{
			"attempt":      attempt,
			"max_attempts": e.cfg.Backend.MaxAttempts,
			"error":        err.Error(),
		})
		if auditErr := e.recordAudit(ctx, &models.AuditEntry{
			TransactionID: rec.ID,
			EventType:     models.AuditEventBackendRetry,
			Actor:         actorEngine,
			Context:       detail,
			At:            e.now().UTC(),
		}); auditErr != nil {
			return models.ExecutionResult{}, auditErr
		}

		if attempt >= e.cfg.Backend.MaxAttempts {
			return models.ExecutionResult{Status: models.ExecutionUnavailable}, nil
		}

		select {
		case <-ctx.Done():
			return models.ExecutionResult{}, ctx.Err()
		case <-time.After(e.backoff.DelayFor(attempt)):
		}
	}
}

// ResolveReview applies a clear or deny decision to a suspended record
func (e *engineUC) ResolveReview(ctx context.Context, txID string, decision models.ReviewDecision, authorizer string) (*models.TransactionRecord, error) {
	e.locks.Lock(txID)
	defer e.locks.Unlock(txID)

	rec, err := e.repo.Get(ctx, txID)
	if err != nil {
		return nil, err
	}
	if rec.State != models.StateUnderReview {
		return nil, models.ErrReviewDecisionNotNeeded
	}

	switch decision {
	case models.ReviewCleared:
		if err := e.transition(ctx, rec, models.StateAllowed, authorizer, "review cleared"); err != nil {
			return nil, err
		}
		return e.advance(ctx, rec)
	case models.ReviewDenied:
		if err := e.reject(ctx, rec, models.ReasonReviewDenied, "denied by "+authorizer); err != nil {
			return nil, err
		}
		return rec, nil
	default:
		return nil, fmt.Errorf("unknown review decision %q: %w", decision, models.ErrReviewDecisionNotNeeded)
	}
}

// Cancel aborts a transaction before it has any backend-visible effect
func (e *engineUC) Cancel(ctx context.Context, txID, actor string) (*models.TransactionRecord, error) {
	e.locks.Lock(txID)
	defer e.locks.Unlock(txID)

	rec, err := e.repo.Get(ctx, txID)
	if err != nil {
		return nil, err
	}
	if rec.State != models.StateCreated && rec.State != models.StateValidating {
		return nil, models.ErrCancellationNotAllowed
	}

	if err := e.reject(ctx, rec, models.ReasonCancelled, "cancelled by "+actor); err != nil {
		return nil, err
	}
	return rec, nil
}

// Reverse compensates a committed transaction
func (e *engineUC) Reverse(ctx context.Context, txID, actor, reason string) (*models.TransactionRecord, error) {
	e.locks.Lock(txID)
	defer e.locks.Unlock(txID)

	rec, err := e.repo.Get(ctx, txID)
	if err != nil {
		return nil, err
	}
	if rec.State != models.StateCommitted {
		return nil, models.ErrReversalNotAllowed
	}

	if err := e.transition(ctx, rec, models.StateReversing, actor, reason); err != nil {
		return nil, err
	}
	if err := e.completeReversal(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// completeReversal calls the backend reverse and finalizes both the
// original record and the linked compensating record. A transient failure
// leaves the record in Reversing; a replayed Submit or Reverse resumes it.
func (e *engineUC) completeReversal(ctx context.Context, rec *models.TransactionRecord) error {
	var reversal models.ReversalResult
	err := e.breaker.Execute(ctx, func(ctx context.Context) error {
		var callErr error
		reversal, callErr = e.backend.Reverse(ctx, rec.ExecutionRef)
		return callErr
	})
	if err != nil {
		return &models.InfrastructureError{Op: "backend.reverse", Err: err}
	}

	now := e.now().UTC()
	compensating := &models.TransactionRecord{
		ID: uuid.New().String(),
		Request: models.TransactionRequest{
			RequesterID:        rec.Request.RequesterID,
			SourceAccount:      rec.Request.DestinationAccount,
			DestinationAccount: rec.Request.SourceAccount,
			AmountMinor:        rec.Request.AmountMinor,
			Currency:           rec.Request.Currency,
			Type:               rec.Request.Type,
			IdempotencyKey:     "reversal:" + rec.ID,
			SubmittedAt:        now,
		},
		State:        models.StateCommitted,
		Version:      1,
		ExecutionRef: reversal.Reference,
		Outcome:      models.ReasonReversedByRequest,
		ReversalOf:   rec.ID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := e.repo.Create(ctx, compensating); err != nil {
		if !errors.Is(err, models.ErrInvalidStateTransition) {
			return err
		}
		// Compensating record already exists from an earlier attempt
	}

	rec.Outcome = models.ReasonReversedByRequest
	return e.transition(ctx, rec, models.StateReversed, actorSystem, string(models.ReasonReversedByRequest))
}

// reject finalizes the record in Rejected and releases any reservation
func (e *engineUC) reject(ctx context.Context, rec *models.TransactionRecord, reason models.ReasonCode, detail string) error {
	rec.Outcome = reason
	if err := e.transition(ctx, rec, models.StateRejected, actorEngine, string(reason)+": "+detail); err != nil {
		return err
	}
	e.releaseReservation(ctx, rec)
	return nil
}

// fail finalizes the record in Failed and releases any reservation
func (e *engineUC) fail(ctx context.Context, rec *models.TransactionRecord, reason models.ReasonCode, detail string) error {
	rec.Outcome = reason
	if err := e.transition(ctx, rec, models.StateFailed, actorEngine, string(reason)+": "+detail); err != nil {
		return err
	}
	e.releaseReservation(ctx, rec)
	return nil
}

func (e *engineUC) releaseReservation(ctx context.Context, rec *models.TransactionRecord) {
	err := e.limiter.Release(ctx, rec.Request.SourceAccount, rec.Request.SubmittedAt, rec.ID)
	if err != nil {
		e.log.WithTransaction(rec.ID, rec.Request.IdempotencyKey).Error("Failed to release daily limit reservation",
			logger.Err(err))
	}
}

// recordAudit durably appends an audit entry, retrying transient failures.
// A persistent failure surfaces to the caller and blocks the transition.
func (e *engineUC) recordAudit(ctx context.Context, entry *models.AuditEntry) error {
	return e.retrier.Execute(ctx, func(ctx context.Context) error {
		return e.auditor.Record(ctx, entry)
	})
}

// transition appends the audit entry first, then persists the state change.
// An audit failure aborts the transition so no state change exists without
// its audit record.
func (e *engineUC) transition(ctx context.Context, rec *models.TransactionRecord, to models.TransactionState, actor, reason string) error {
	from := rec.State
	at := e.now().UTC()

	detail, _ := json.Marshal(map[string]interface{}{
		"from":   from,
		"to":     to,
		"reason": reason,
	})
	if err := e.recordAudit(ctx, &models.AuditEntry{
		TransactionID: rec.ID,
		EventType:     models.AuditEventTransition,
		Actor:         actor,
		Context:       detail,
		At:            at,
	}); err != nil {
		return err
	}

	rec.State = to
	t := models.StateTransition{From: from, To: to, At: at, Actor: actor, Reason: reason}
	if err := e.repo.UpdateState(ctx, rec, t); err != nil {
		return err
	}

	e.log.WithTransaction(rec.ID, rec.Request.IdempotencyKey).Info("State transition",
		logger.String("from", string(from)),
		logger.String("to", string(to)),
		logger.String("actor", actor))
	return nil
}
