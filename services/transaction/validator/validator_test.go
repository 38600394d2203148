package validator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adiprasetyo/txcore/internal/pkg/models"
)

func testLimits() models.LimitsConfig {
	return models.LimitsConfig{
		Currencies:    []string{"SGD"},
		TransferCap:   5000000,
		PaymentCap:    2000000,
		OtherCap:      1000000,
		DailyCap:      5000000,
		MinAccountLen: 10,
		MaxAccountLen: 16,
	}
}

func validRequest() models.TransactionRequest {
	return models.TransactionRequest{
		RequesterID:        "user_001",
		SourceAccount:      "1234567890",
		DestinationAccount: "0987654321",
		AmountMinor:        10000,
		Currency:           "SGD",
		Type:               models.TransactionTypeTransfer,
		IdempotencyKey:     "key-1",
		SubmittedAt:        time.Now(),
	}
}

func TestValidate_Success(t *testing.T) {
	v := New(testLimits())
	assert.Nil(t, v.Validate(validRequest()))
}

func TestValidate_NegativeAmount(t *testing.T) {
	v := New(testLimits())

	req := validRequest()
	req.AmountMinor = -5

	verr := v.Validate(req)
	require.NotNil(t, verr)
	assert.Equal(t, models.ReasonFieldError, verr.Reason)
	assert.Equal(t, "amount_minor", verr.Field)
}

func TestValidate_ZeroAmount(t *testing.T) {
	v := New(testLimits())

	req := validRequest()
	req.AmountMinor = 0

	verr := v.Validate(req)
	require.NotNil(t, verr)
	assert.Equal(t, models.ReasonFieldError, verr.Reason)
}

func TestValidate_UnsupportedCurrency(t *testing.T) {
	v := New(testLimits())

	req := validRequest()
	req.Currency = "XYZ"

	verr := v.Validate(req)
	require.NotNil(t, verr)
	assert.Equal(t, models.ReasonFieldError, verr.Reason)
	assert.Equal(t, "currency", verr.Field)
}

func TestValidate_MissingRequester(t *testing.T) {
	v := New(testLimits())

	req := validRequest()
	req.RequesterID = ""

	verr := v.Validate(req)
	require.NotNil(t, verr)
	assert.Equal(t, models.ReasonFieldError, verr.Reason)
}

func TestValidate_MalformedAccounts(t *testing.T) {
	v := New(testLimits())

	tests := []struct {
		name    string
		account string
	}{
		{"too short", "12345"},
		{"too long", "12345678901234567890"},
		{"non numeric", "12345abc90"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			req.SourceAccount = tt.account

			verr := v.Validate(req)
			require.NotNil(t, verr)
			assert.Equal(t, models.ReasonMalformedAccount, verr.Reason)
		})
	}
}

func TestValidate_SameAccounts(t *testing.T) {
	v := New(testLimits())

	req := validRequest()
	req.DestinationAccount = req.SourceAccount

	verr := v.Validate(req)
	require.NotNil(t, verr)
	assert.Equal(t, models.ReasonMalformedAccount, verr.Reason)
}

func TestValidate_PerTransactionCaps(t *testing.T) {
	v := New(testLimits())

	tests := []struct {
		txType models.TransactionType
		amount int64
		ok     bool
	}{
		{models.TransactionTypeTransfer, 5000000, true},
		{models.TransactionTypeTransfer, 5000001, false},
		{models.TransactionTypePayment, 2000000, true},
		{models.TransactionTypePayment, 2000001, false},
		{models.TransactionTypeOther, 1000001, false},
	}

	for _, tt := range tests {
		req := validRequest()
		req.Type = tt.txType
		req.AmountMinor = tt.amount

		verr := v.Validate(req)
		if tt.ok {
			assert.Nil(t, verr, "type %s amount %d", tt.txType, tt.amount)
		} else {
			require.NotNil(t, verr, "type %s amount %d", tt.txType, tt.amount)
			assert.Equal(t, models.ReasonLimitExceeded, verr.Reason)
		}
	}
}

func TestValidate_ShortCircuitOrder(t *testing.T) {
	v := New(testLimits())

	// Structural failure must win over the later account format failure
	req := validRequest()
	req.AmountMinor = -1
	req.SourceAccount = "bad"

	verr := v.Validate(req)
	require.NotNil(t, verr)
	assert.Equal(t, "amount_minor", verr.Field)
}
