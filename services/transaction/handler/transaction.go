package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/adiprasetyo/txcore/internal/pkg/models"
	"github.com/adiprasetyo/txcore/internal/utils"
)

// IdempotencyKeyHeader overrides the idempotency key in the request body
const IdempotencyKeyHeader = "Idempotency-Key"

// SubmitTransaction accepts a transaction request and drives it through the
// workflow. The response carries the record in whatever state it parked:
// 202 when suspended for review, 200 otherwise.
func (h *TransactionHandler) SubmitTransaction(c echo.Context) error {
	var req models.TransactionRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}
	if key := c.Request().Header.Get(IdempotencyKeyHeader); key != "" {
		req.IdempotencyKey = key
	}

	rec, err := h.txUC.Submit(c.Request().Context(), req)
	if err != nil {
		return h.mapError(c, err)
	}

	if rec.State == models.StateUnderReview {
		return utils.SuccessResponse(c, http.StatusAccepted, "Transaction suspended for review", rec)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Transaction processed", rec)
}

// GetTransaction returns the current record with its transition history
func (h *TransactionHandler) GetTransaction(c echo.Context) error {
	rec, err := h.txUC.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.mapError(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Transaction retrieved", rec)
}

// auditChainResponse pairs the chain with its verification result
type auditChainResponse struct {
	Entries     []models.AuditEntry `json:"entries"`
	Intact      bool                `json:"intact"`
	TamperedSeq int                 `json:"tampered_seq,omitempty"`
}

// GetAuditChain returns the transaction's audit chain with an integrity
// verification result
func (h *TransactionHandler) GetAuditChain(c echo.Context) error {
	txID := c.Param("id")
	if _, err := h.txUC.Get(c.Request().Context(), txID); err != nil {
		return h.mapError(c, err)
	}

	entries, err := h.auditSvc.ReadChain(c.Request().Context(), txID)
	if err != nil {
		return h.mapError(c, err)
	}

	tampered := h.auditSvc.VerifyChain(txID, entries)
	return utils.SuccessResponse(c, http.StatusOK, "Audit chain retrieved", auditChainResponse{
		Entries:     entries,
		Intact:      tampered == 0,
		TamperedSeq: tampered,
	})
}

type reviewDecisionRequest struct {
	Decision   models.ReviewDecision `json:"decision"`
	Authorizer string                `json:"authorizer"`
}

// ResolveReview applies a clear/deny decision to a suspended transaction
func (h *TransactionHandler) ResolveReview(c echo.Context) error {
	var req reviewDecisionRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}
	if req.Decision != models.ReviewCleared && req.Decision != models.ReviewDenied {
		return utils.BadRequestResponse(c, "Decision must be clear or deny")
	}
	if req.Authorizer == "" {
		return utils.BadRequestResponse(c, "Authorizer is required")
	}

	rec, err := h.txUC.ResolveReview(c.Request().Context(), c.Param("id"), req.Decision, req.Authorizer)
	if err != nil {
		return h.mapError(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Review decision applied", rec)
}

type actorRequest struct {
	Actor  string `json:"actor"`
	Reason string `json:"reason"`
}

// CancelTransaction aborts a transaction before execution
func (h *TransactionHandler) CancelTransaction(c echo.Context) error {
	var req actorRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}
	if req.Actor == "" {
		req.Actor = "ops-console"
	}

	rec, err := h.txUC.Cancel(c.Request().Context(), c.Param("id"), req.Actor)
	if err != nil {
		return h.mapError(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Transaction cancelled", rec)
}

// ReverseTransaction compensates a committed transaction
func (h *TransactionHandler) ReverseTransaction(c echo.Context) error {
	var req actorRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}
	if req.Actor == "" {
		req.Actor = "ops-console"
	}

	rec, err := h.txUC.Reverse(c.Request().Context(), c.Param("id"), req.Actor, req.Reason)
	if err != nil {
		return h.mapError(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Transaction reversed", rec)
}

func (h *TransactionHandler) mapError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, models.ErrTransactionNotFound):
		return utils.NotFoundResponse(c, "Transaction not found")
	case errors.Is(err, models.ErrIdempotencyKeyRequired):
		return utils.BadRequestResponse(c, "Idempotency key is required")
	case errors.Is(err, models.ErrCancellationNotAllowed):
		return utils.ConflictResponse(c, "Transaction can no longer be cancelled")
	case errors.Is(err, models.ErrReversalNotAllowed):
		return utils.ConflictResponse(c, "Only committed transactions can be reversed")
	case errors.Is(err, models.ErrReviewDecisionNotNeeded):
		return utils.ConflictResponse(c, "Transaction is not awaiting review")
	case errors.Is(err, models.ErrBackendUnavailable):
		return utils.ServiceUnavailableResponse(c, "Banking backend unavailable")
	default:
		var infraErr *models.InfrastructureError
		if errors.As(err, &infraErr) {
			return utils.ServiceUnavailableResponse(c, "Dependency unavailable")
		}
		return utils.InternalServerErrorResponse(c, "Internal server error")
	}
}
