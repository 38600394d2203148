package repository

import (
	"context"
	"encoding/json"
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

func TestPostgresAuditRepoAppend(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresAuditRepo(db)

	at := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	entry := models.AuditEntry{
		TransactionID: "tx-1",
		Seq:           1,
		EventType:     models.AuditEventTransition,
		Actor:         "engine",
		Context:       json.RawMessage(`{"from":"created","to":"validating"}`),
		At:            at,
		PrevHash:      "prev",
		Hash:          "hash",
	}

	mock.ExpectExec(`INSERT INTO audit_entries`).
		WithArgs("tx-1", 1, models.AuditEventTransition, "engine", []byte(entry.Context), at, "prev", "hash").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Append(context.Background(), entry)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresAuditRepoLast(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresAuditRepo(db)

	at := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"tx_id", "seq", "event_type", "actor", "context", "created_at", "prev_hash", "hash"}).
		AddRow("tx-1", 2, models.AuditEventTransition, "engine", []byte(`{}`), at, "prev", "hash")

	mock.ExpectQuery(`FROM audit_entries`).
		WithArgs("tx-1").
		WillReturnRows(rows)

	entry, err := repo.Last(context.Background(), "tx-1")
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, 2, entry.Seq)
	assert.Equal(t, "hash", entry.Hash)
}

func TestPostgresAuditRepoLastEmpty(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresAuditRepo(db)

	mock.ExpectQuery(`FROM audit_entries`).
		WithArgs("tx-missing").
		WillReturnRows(sqlmock.NewRows([]string{"tx_id", "seq", "event_type", "actor", "context", "created_at", "prev_hash", "hash"}))

	entry, err := repo.Last(context.Background(), "tx-missing")
	require.NoError(t, err)
	assert.Nil(t, entry)
}

func TestPostgresAuditRepoChain(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresAuditRepo(db)

	at := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"tx_id", "seq", "event_type", "actor", "context", "created_at", "prev_hash", "hash"}).
		AddRow("tx-1", 1, models.AuditEventTransition, "engine", []byte(`{}`), at, "genesis", "h1").
		AddRow("tx-1", 2, models.AuditEventTransition, "engine", []byte(`{}`), at, "h1", "h2")

	mock.ExpectQuery(`FROM audit_entries`).
		WithArgs("tx-1").
		WillReturnRows(rows)

	chain, err := repo.Chain(context.Background(), "tx-1")
	require.NoError(t, err)
	require.Len(t, chain, 2)
	assert.Equal(t, "h1", chain[1].PrevHash)
}
