// Package validator checks structural and business-rule correctness of
// transaction requests. All checks are pure; the daily cumulative cap is
// intentionally not handled here but by the engine's DailyLimiter, which
// owns the per-account serialization point.
package validator

import (
	"regexp"

	"github.com/adiprasetyo/txcore/internal/pkg/models"
)

var accountPattern = regexp.MustCompile(`^[0-9]+$`)

// Validator validates transaction requests against configured limits
type Validator struct {
	cfg models.LimitsConfig

	currencies map[string]struct{}
}

// New creates a validator from the limits configuration
func New(cfg models.LimitsConfig) *Validator {
	currencies := make(map[string]struct{}, len(cfg.Currencies))
	for _, c := range cfg.Currencies {
		currencies[c] = struct{}{}
	}
	return &Validator{cfg: cfg, currencies: currencies}
}

// Validate runs the check chain in order, short-circuiting on the first
// failure. A non-nil *models.ValidationError is an expected business
// rejection, never an infrastructure fault.
func (v *Validator) Validate(req models.TransactionRequest) *models.ValidationError {
	if err := v.checkStructure(req); err != nil {
		return err
	}
	if err := v.checkAccounts(req); err != nil {
		return err
	}
	return v.checkLimits(req)
}

func (v *Validator) checkStructure(req models.TransactionRequest) *models.ValidationError {
	if req.RequesterID == "" {
		return &models.ValidationError{Field: "requester_id", Reason: models.ReasonFieldError, Msg: "requester identity is required"}
	}
	if req.IdempotencyKey == "" {
		return &models.ValidationError{Field: "idempotency_key", Reason: models.ReasonFieldError, Msg: "idempotency key is required"}
	}
	if req.AmountMinor <= 0 {
		return &models.ValidationError{Field: "amount_minor", Reason: models.ReasonFieldError, Msg: "amount must be greater than zero"}
	}
	if _, ok := v.currencies[req.Currency]; !ok {
		return &models.ValidationError{Field: "currency", Reason: models.ReasonFieldError, Msg: "unsupported currency code"}
	}
	switch req.Type {
	case models.TransactionTypeTransfer, models.TransactionTypePayment, models.TransactionTypeOther:
	default:
		return &models.ValidationError{Field: "type", Reason: models.ReasonFieldError, Msg: "unknown transaction type"}
	}
	return nil
}

func (v *Validator) checkAccounts(req models.TransactionRequest) *models.ValidationError {
	if err := v.checkAccountFormat("source_account", req.SourceAccount); err != nil {
		return err
	}
	if err := v.checkAccountFormat("destination_account", req.DestinationAccount); err != nil {
		return err
	}
	if req.SourceAccount == req.DestinationAccount {
		return &models.ValidationError{Field: "destination_account", Reason: models.ReasonMalformedAccount, Msg: "source and destination accounts must differ"}
	}
	return nil
}

func (v *Validator) checkAccountFormat(field, account string) *models.ValidationError {
	if account == "" {
		return &models.ValidationError{Field: field, Reason: models.ReasonFieldError, Msg: "account is required"}
	}
	if len(account) < v.cfg.MinAccountLen || len(account) > v.cfg.MaxAccountLen {
		return &models.ValidationError{Field: field, Reason: models.ReasonMalformedAccount, Msg: "account number has invalid length"}
	}
	if !accountPattern.MatchString(account) {
		return &models.ValidationError{Field: field, Reason: models.ReasonMalformedAccount, Msg: "account number must be numeric"}
	}
	return nil
}

func (v *Validator) checkLimits(req models.TransactionRequest) *models.ValidationError {
	cap := v.perTransactionCap(req.Type)
	if cap > 0 && req.AmountMinor > cap {
		return &models.ValidationError{Field: "amount_minor", Reason: models.ReasonLimitExceeded, Msg: "amount exceeds per-transaction cap"}
	}
	return nil
}

func (v *Validator) perTransactionCap(t models.TransactionType) int64 {
	switch t {
	case models.TransactionTypeTransfer:
		return v.cfg.TransferCap
	case models.TransactionTypePayment:
		return v.cfg.PaymentCap
	default:
		return v.cfg.OtherCap
	}
}
