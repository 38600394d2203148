package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adiprasetyo/txcore/internal/pkg/models"
)

func newHTTPBackend(url string) *HTTPBackend {
	return NewHTTPBackend(models.BackendConfig{URL: url, APIKey: "secret", AttemptTimeout: 2})
}

func TestHTTPExecute_Committed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/executions", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("X-API-Key"))

		var payload executePayload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "key-1", payload.IdempotencyKey)
		assert.Equal(t, int64(10000), payload.AmountMinor)

		json.NewEncoder(w).Encode(executeResponse{Reference: "TXN20250101000000abcd"})
	}))
	defer srv.Close()

	result, err := newHTTPBackend(srv.URL).Execute(context.Background(), "tx-1", "key-1", "1234567890", "0987654321", 10000, "SGD")
	require.NoError(t, err)

	assert.Equal(t, models.ExecutionCommitted, result.Status)
	assert.Equal(t, "TXN20250101000000abcd", result.Reference)
}

func TestHTTPExecute_RejectedInsufficientFunds(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(executeResponse{Reason: "insufficient_funds", Message: "balance too low"})
	}))
	defer srv.Close()

	result, err := newHTTPBackend(srv.URL).Execute(context.Background(), "tx-1", "key-1", "1234567890", "0987654321", 10000, "SGD")
	require.NoError(t, err)

	assert.Equal(t, models.ExecutionRejected, result.Status)
	assert.Equal(t, models.ReasonInsufficientFunds, result.Reason)
}

func TestHTTPExecute_ServerErrorIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	result, err := newHTTPBackend(srv.URL).Execute(context.Background(), "tx-1", "key-1", "1234567890", "0987654321", 10000, "SGD")
	require.NoError(t, err)

	assert.Equal(t, models.ExecutionUnavailable, result.Status)
}

func TestHTTPExecute_TransportFailureIsUnavailable(t *testing.T) {
	result, err := newHTTPBackend("http://127.0.0.1:1").Execute(context.Background(), "tx-1", "key-1", "1234567890", "0987654321", 10000, "SGD")
	require.NoError(t, err)

	assert.Equal(t, models.ExecutionUnavailable, result.Status)
}

func TestHTTPReverse_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/reversals", r.URL.Path)
		json.NewEncoder(w).Encode(reverseResponse{Reference: "TXN20250101000001dcba"})
	}))
	defer srv.Close()

	result, err := newHTTPBackend(srv.URL).Reverse(context.Background(), "TXN20250101000000abcd")
	require.NoError(t, err)
	assert.Equal(t, "TXN20250101000001dcba", result.Reference)
}

func TestHTTPReverse_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := newHTTPBackend(srv.URL).Reverse(context.Background(), "TXN20250101000000abcd")
	assert.ErrorIs(t, err, models.ErrBackendUnavailable)
}
