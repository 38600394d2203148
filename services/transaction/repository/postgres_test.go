package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adiprasetyo/txcore/internal/pkg/models"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "pgx"), mock
}

var txColumns = []string{
	"id", "requester_id", "source_account", "destination_account", "amount_minor",
	"currency", "tx_type", "idempotency_key", "submitted_at", "state", "version",
	"fraud_score", "fraud_verdict", "fraud_factors", "execution_ref", "outcome",
	"reversal_of", "created_at", "updated_at",
}

func sampleRecord() *models.TransactionRecord {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	return &models.TransactionRecord{
		ID: "tx-1",
		Request: models.TransactionRequest{
			RequesterID:        "req-001",
			SourceAccount:      "1234567890",
			DestinationAccount: "0987654321",
			AmountMinor:        100,
			Currency:           "SGD",
			Type:               models.TransactionTypeTransfer,
			IdempotencyKey:     "key-1",
			SubmittedAt:        now,
		},
		State:     models.StateCreated,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestPostgresTransactionRepoCreate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresTransactionRepo(db)
	rec := sampleRecord()

	mock.ExpectExec(`INSERT INTO transactions`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(context.Background(), rec))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresTransactionRepoGet(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresTransactionRepo(db)
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows(txColumns).AddRow(
		"tx-1", "req-001", "1234567890", "0987654321", int64(100),
		"SGD", "transfer", "key-1", now, "committed", int64(8),
		0.1, "allow", []byte(`["large_transaction_amount"]`), "TXN-REF", nil,
		nil, now, now,
	)
	mock.ExpectQuery(`FROM transactions WHERE id`).
		WithArgs("tx-1").
		WillReturnRows(rows)
	mock.ExpectQuery(`FROM transaction_transitions`).
		WithArgs("tx-1").
		WillReturnRows(sqlmock.NewRows([]string{"from_state", "to_state", "actor", "reason", "created_at"}).
			AddRow("created", "validating", "engine", "", now))

	rec, err := repo.Get(context.Background(), "tx-1")
	require.NoError(t, err)

	assert.Equal(t, models.StateCommitted, rec.State)
	assert.Equal(t, int64(8), rec.Version)
	assert.Equal(t, "TXN-REF", rec.ExecutionRef)
	require.NotNil(t, rec.FraudScore)
	assert.Equal(t, 0.1, *rec.FraudScore)
	assert.Equal(t, []string{"large_transaction_amount"}, rec.FraudFactors)
	require.Len(t, rec.Transitions, 1)
	assert.Equal(t, models.StateValidating, rec.Transitions[0].To)
}

func TestPostgresTransactionRepoGetNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresTransactionRepo(db)

	mock.ExpectQuery(`FROM transactions WHERE id`).
		WithArgs("tx-missing").
		WillReturnRows(sqlmock.NewRows(txColumns))

	_, err := repo.Get(context.Background(), "tx-missing")
	assert.ErrorIs(t, err, models.ErrTransactionNotFound)
}

func TestPostgresTransactionRepoUpdateState(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresTransactionRepo(db)
	rec := sampleRecord()
	rec.State = models.StateValidating
	transition := models.StateTransition{
		From:  models.StateCreated,
		To:    models.StateValidating,
		At:    time.Date(2025, 3, 1, 10, 0, 1, 0, time.UTC),
		Actor: "engine",
	}

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE transactions SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO transaction_transitions`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.UpdateState(context.Background(), rec, transition))
	assert.Equal(t, int64(2), rec.Version)
	require.Len(t, rec.Transitions, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresTransactionRepoUpdateStateVersionConflict(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresTransactionRepo(db)
	rec := sampleRecord()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE transactions SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.UpdateState(context.Background(), rec, models.StateTransition{
		From: models.StateCreated, To: models.StateValidating, At: time.Now(), Actor: "engine",
	})
	assert.ErrorIs(t, err, models.ErrInvalidStateTransition)
	assert.Equal(t, int64(1), rec.Version)
}

func TestPostgresTransactionRepoRecentByRequester(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresTransactionRepo(db)
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows(txColumns).
		AddRow("tx-2", "req-001", "1234567890", "0987654321", int64(200),
			"SGD", "transfer", "key-2", now, "committed", int64(8),
			nil, nil, nil, "TXN-2", nil, nil, now, now).
		AddRow("tx-1", "req-001", "1234567890", "0987654321", int64(100),
			"SGD", "transfer", "key-1", now.Add(-time.Minute), "committed", int64(8),
			nil, nil, nil, "TXN-1", nil, nil, now, now)

	mock.ExpectQuery(`FROM transactions`).
		WithArgs("req-001", now.Add(-time.Hour)).
		WillReturnRows(rows)

	recs, err := repo.RecentByRequester(context.Background(), "req-001", now.Add(-time.Hour))
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "tx-2", recs[0].ID)
	assert.Nil(t, recs[0].FraudScore)
}
