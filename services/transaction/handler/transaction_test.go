package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adiprasetyo/txcore/internal/pkg/models"
	auditmocks "github.com/adiprasetyo/txcore/services/audit/mocks"
	"github.com/adiprasetyo/txcore/services/transaction/mocks"
)

func newHandlerFixture(t *testing.T, ctrl *gomock.Controller) (*TransactionHandler, *mocks.MockTransactionUC, *auditmocks.MockService) {
	t.Helper()
	mockUC := mocks.NewMockTransactionUC(ctrl)
	mockAudit := auditmocks.NewMockService(ctrl)
	h := NewTransactionHandler(&models.Config{}, mockUC, mockAudit, nil)
	return h, mockUC, mockAudit
}

func TestSubmitTransaction_Committed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, mockUC, _ := newHandlerFixture(t, ctrl)

	e := echo.New()
	body := `{
		"requester_id": "req-001",
		"source_account": "1234567890",
		"destination_account": "0987654321",
		"amount_minor": 100,
		"currency": "SGD",
		"type": "transfer",
		"idempotency_key": "key-1"
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mockUC.EXPECT().
		Submit(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ interface{}, r models.TransactionRequest) (*models.TransactionRecord, error) {
			assert.Equal(t, "key-1", r.IdempotencyKey)
			assert.Equal(t, int64(100), r.AmountMinor)
			return &models.TransactionRecord{
				ID:      "tx-1",
				Request: r,
				State:   models.StateCommitted,
			}, nil
		})

	require.NoError(t, h.SubmitTransaction(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, true, response["success"])
	data := response["data"].(map[string]interface{})
	assert.Equal(t, "committed", data["state"])
}

func TestSubmitTransaction_HeaderOverridesIdempotencyKey(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, mockUC, _ := newHandlerFixture(t, ctrl)

	e := echo.New()
	body := `{"requester_id": "req-001", "idempotency_key": "body-key"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(IdempotencyKeyHeader, "header-key")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mockUC.EXPECT().
		Submit(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ interface{}, r models.TransactionRequest) (*models.TransactionRecord, error) {
			assert.Equal(t, "header-key", r.IdempotencyKey)
			return &models.TransactionRecord{ID: "tx-1", Request: r, State: models.StateCommitted}, nil
		})

	require.NoError(t, h.SubmitTransaction(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSubmitTransaction_SuspendedReturnsAccepted(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, mockUC, _ := newHandlerFixture(t, ctrl)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions",
		strings.NewReader(`{"idempotency_key": "key-review"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mockUC.EXPECT().
		Submit(gomock.Any(), gomock.Any()).
		Return(&models.TransactionRecord{ID: "tx-2", State: models.StateUnderReview}, nil)

	require.NoError(t, h.SubmitTransaction(c))
	assert.Equal(t, http.StatusAccepted, rec.Code)
}

func TestSubmitTransaction_MissingIdempotencyKey(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, mockUC, _ := newHandlerFixture(t, ctrl)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mockUC.EXPECT().
		Submit(gomock.Any(), gomock.Any()).
		Return(nil, models.ErrIdempotencyKeyRequired)

	require.NoError(t, h.SubmitTransaction(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetTransaction_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, mockUC, _ := newHandlerFixture(t, ctrl)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions/tx-missing", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("tx-missing")

	mockUC.EXPECT().Get(gomock.Any(), "tx-missing").Return(nil, models.ErrTransactionNotFound)

	require.NoError(t, h.GetTransaction(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetAuditChain_ReportsTampering(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, mockUC, mockAudit := newHandlerFixture(t, ctrl)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions/tx-3/audit", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("tx-3")

	entries := []models.AuditEntry{{TransactionID: "tx-3", Seq: 1}, {TransactionID: "tx-3", Seq: 2}}
	mockUC.EXPECT().Get(gomock.Any(), "tx-3").Return(&models.TransactionRecord{ID: "tx-3"}, nil)
	mockAudit.EXPECT().ReadChain(gomock.Any(), "tx-3").Return(entries, nil)
	mockAudit.EXPECT().VerifyChain("tx-3", entries).Return(2)

	require.NoError(t, h.GetAuditChain(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	assert.Equal(t, false, data["intact"])
	assert.Equal(t, float64(2), data["tampered_seq"])
}

func TestResolveReview_InvalidDecision(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _, _ := newHandlerFixture(t, ctrl)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions/tx-4/decision",
		strings.NewReader(`{"decision": "maybe", "authorizer": "analyst-1"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("tx-4")

	require.NoError(t, h.ResolveReview(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestResolveReview_Conflict(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, mockUC, _ := newHandlerFixture(t, ctrl)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions/tx-5/decision",
		strings.NewReader(`{"decision": "clear", "authorizer": "analyst-1"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("tx-5")

	mockUC.EXPECT().
		ResolveReview(gomock.Any(), "tx-5", models.ReviewCleared, "analyst-1").
		Return(nil, models.ErrReviewDecisionNotNeeded)

	require.NoError(t, h.ResolveReview(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCancelTransaction_Conflict(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, mockUC, _ := newHandlerFixture(t, ctrl)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions/tx-6/cancel",
		strings.NewReader(`{"actor": "ops-console"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("tx-6")

	mockUC.EXPECT().
		Cancel(gomock.Any(), "tx-6", "ops-console").
		Return(nil, models.ErrCancellationNotAllowed)

	require.NoError(t, h.CancelTransaction(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestReverseTransaction_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, mockUC, _ := newHandlerFixture(t, ctrl)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions/tx-7/reverse",
		strings.NewReader(`{"actor": "ops-console", "reason": "customer dispute"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("tx-7")

	mockUC.EXPECT().
		Reverse(gomock.Any(), "tx-7", "ops-console", "customer dispute").
		Return(&models.TransactionRecord{ID: "tx-7", State: models.StateReversed}, nil)

	require.NoError(t, h.ReverseTransaction(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}
