package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/adiprasetyo/txcore/internal/pkg/models"
)

const apiKeyHeader = "X-API-Key"

// HTTPBackend adapts a real core banking HTTP API to the BankingBackend
// contract. 2xx maps to Committed, 4xx to a permanent Rejected result and
// 5xx (or transport failure) to Unavailable so the engine's retry policy
// can distinguish them.
type HTTPBackend struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPBackend creates an HTTP banking backend client
func NewHTTPBackend(cfg models.BackendConfig) *HTTPBackend {
	timeout := time.Duration(cfg.AttemptTimeout) * time.Second
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	return &HTTPBackend{
		baseURL: cfg.URL,
		apiKey:  cfg.APIKey,
		client:  &http.Client{Timeout: timeout},
	}
}

type executePayload struct {
	TransactionID  string `json:"transaction_id"`
	IdempotencyKey string `json:"idempotency_key"`
	DebitAccount   string `json:"debit_account"`
	CreditAccount  string `json:"credit_account"`
	AmountMinor    int64  `json:"amount_minor"`
	Currency       string `json:"currency"`
}

type executeResponse struct {
	Reference string `json:"reference"`
	Reason    string `json:"reason"`
	Message   string `json:"message"`
}

// Execute posts the movement to the core banking API
func (b *HTTPBackend) Execute(ctx context.Context, txID, idempotencyKey, debitAccount, creditAccount string, amountMinor int64, currency string) (models.ExecutionResult, error) {
	payload := executePayload{
		TransactionID:  txID,
		IdempotencyKey: idempotencyKey,
		DebitAccount:   debitAccount,
		CreditAccount:  creditAccount,
		AmountMinor:    amountMinor,
		Currency:       currency,
	}

	var resp executeResponse
	status, err := b.post(ctx, "/api/v1/executions", payload, &resp)
	if err != nil {
		// Transport failure is indistinguishable from an outage
		return models.ExecutionResult{
			Status:  models.ExecutionUnavailable,
			Reason:  models.ReasonBackendUnavailable,
			Message: err.Error(),
		}, nil
	}

	switch {
	case status >= 200 && status < 300:
		return models.ExecutionResult{
			Status:    models.ExecutionCommitted,
			Reference: resp.Reference,
		}, nil
	case status >= 400 && status < 500:
		reason := models.ReasonBackendRejected
		if resp.Reason == string(models.ReasonInsufficientFunds) {
			reason = models.ReasonInsufficientFunds
		}
		return models.ExecutionResult{
			Status:  models.ExecutionRejected,
			Reason:  reason,
			Message: resp.Message,
		}, nil
	default:
		return models.ExecutionResult{
			Status:  models.ExecutionUnavailable,
			Reason:  models.ReasonBackendUnavailable,
			Message: fmt.Sprintf("backend returned status %d", status),
		}, nil
	}
}

type reversePayload struct {
	ExecutionRef string `json:"execution_ref"`
}

type reverseResponse struct {
	Reference string `json:"reference"`
}

// Reverse posts a compensation for a prior execution
func (b *HTTPBackend) Reverse(ctx context.Context, executionRef string) (models.ReversalResult, error) {
	payload := reversePayload{ExecutionRef: executionRef}

	var resp reverseResponse
	status, err := b.post(ctx, "/api/v1/reversals", payload, &resp)
	if err != nil {
		return models.ReversalResult{}, models.ErrBackendUnavailable
	}
	if status >= 500 {
		return models.ReversalResult{}, models.ErrBackendUnavailable
	}
	if status >= 400 {
		return models.ReversalResult{}, fmt.Errorf("backend refused reversal of %s: status %d", executionRef, status)
	}

	return models.ReversalResult{Reference: resp.Reference}, nil
}

func (b *HTTPBackend) post(ctx context.Context, path string, payload interface{}, out interface{}) (int, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if b.apiKey != "" {
		req.Header.Set(apiKeyHeader, b.apiKey)
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("backend request failed: %w", err)
	}
	defer resp.Body.Close()

	if out != nil {
		// Tolerate empty or malformed bodies on error statuses
		_ = json.NewDecoder(resp.Body).Decode(out)
	}

	return resp.StatusCode, nil
}
