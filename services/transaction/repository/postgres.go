package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/adiprasetyo/txcore/internal/pkg/models"
	"github.com/adiprasetyo/txcore/services/transaction"
)

// PostgresTransactionRepo persists transaction records in the transactions
// and transaction_transitions tables. The idempotency key has a unique
// index; UpdateState is conditional on the stored version.
type PostgresTransactionRepo struct {
	db *sqlx.DB
}

func NewPostgresTransactionRepo(db *sqlx.DB) *PostgresTransactionRepo {
	return &PostgresTransactionRepo{db: db}
}

var _ transaction.TransactionRepo = (*PostgresTransactionRepo)(nil)

// txRow is the flat scan target for the transactions table
type txRow struct {
	ID                 string                  `db:"id"`
	RequesterID        string                  `db:"requester_id"`
	SourceAccount      string                  `db:"source_account"`
	DestinationAccount string                  `db:"destination_account"`
	AmountMinor        int64                   `db:"amount_minor"`
	Currency           string                  `db:"currency"`
	Type               models.TransactionType  `db:"tx_type"`
	IdempotencyKey     string                  `db:"idempotency_key"`
	SubmittedAt        time.Time               `db:"submitted_at"`
	State              models.TransactionState `db:"state"`
	Version            int64                   `db:"version"`
	FraudScore         sql.NullFloat64         `db:"fraud_score"`
	FraudVerdict       sql.NullString          `db:"fraud_verdict"`
	FraudFactors       []byte                  `db:"fraud_factors"`
	ExecutionRef       sql.NullString          `db:"execution_ref"`
	Outcome            sql.NullString          `db:"outcome"`
	ReversalOf         sql.NullString          `db:"reversal_of"`
	CreatedAt          time.Time               `db:"created_at"`
	UpdatedAt          time.Time               `db:"updated_at"`
}

func (row txRow) toRecord() (*models.TransactionRecord, error) {
	rec := &models.TransactionRecord{
		ID: row.ID,
		Request: models.TransactionRequest{
			RequesterID:        row.RequesterID,
			SourceAccount:      row.SourceAccount,
			DestinationAccount: row.DestinationAccount,
			AmountMinor:        row.AmountMinor,
			Currency:           row.Currency,
			Type:               row.Type,
			IdempotencyKey:     row.IdempotencyKey,
			SubmittedAt:        row.SubmittedAt,
		},
		State:        row.State,
		Version:      row.Version,
		ExecutionRef: row.ExecutionRef.String,
		ReversalOf:   row.ReversalOf.String,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
	if row.FraudScore.Valid {
		score := row.FraudScore.Float64
		rec.FraudScore = &score
	}
	if row.FraudVerdict.Valid {
		rec.FraudVerdict = models.FraudOutcome(row.FraudVerdict.String)
	}
	if row.Outcome.Valid {
		rec.Outcome = models.ReasonCode(row.Outcome.String)
	}
	if len(row.FraudFactors) > 0 {
		if err := json.Unmarshal(row.FraudFactors, &rec.FraudFactors); err != nil {
			return nil, fmt.Errorf("failed to decode fraud factors: %w", err)
		}
	}
	return rec, nil
}

const selectColumns = `
	id, requester_id, source_account, destination_account, amount_minor,
	currency, tx_type, idempotency_key, submitted_at, state, version,
	fraud_score, fraud_verdict, fraud_factors, execution_ref, outcome,
	reversal_of, created_at, updated_at`

func (r *PostgresTransactionRepo) Create(ctx context.Context, rec *models.TransactionRecord) error {
	query := `
		INSERT INTO transactions (
			id, requester_id, source_account, destination_account, amount_minor,
			currency, tx_type, idempotency_key, submitted_at, state, version,
			reversal_of, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err := r.db.ExecContext(ctx, query,
		rec.ID,
		rec.Request.RequesterID,
		rec.Request.SourceAccount,
		rec.Request.DestinationAccount,
		rec.Request.AmountMinor,
		rec.Request.Currency,
		rec.Request.Type,
		rec.Request.IdempotencyKey,
		rec.Request.SubmittedAt,
		rec.State,
		rec.Version,
		nullString(rec.ReversalOf),
		rec.CreatedAt,
		rec.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

func (r *PostgresTransactionRepo) Get(ctx context.Context, txID string) (*models.TransactionRecord, error) {
	var row txRow
	err := r.db.GetContext(ctx, &row,
		`SELECT`+selectColumns+` FROM transactions WHERE id = $1`, txID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrTransactionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	rec, err := row.toRecord()
	if err != nil {
		return nil, err
	}
	if rec.Transitions, err = r.transitions(ctx, txID); err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *PostgresTransactionRepo) FindByIdempotencyKey(ctx context.Context, key string) (*models.TransactionRecord, error) {
	var row txRow
	err := r.db.GetContext(ctx, &row,
		`SELECT`+selectColumns+` FROM transactions WHERE idempotency_key = $1`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrTransactionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve idempotency key: %w", err)
	}

	rec, err := row.toRecord()
	if err != nil {
		return nil, err
	}
	if rec.Transitions, err = r.transitions(ctx, rec.ID); err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *PostgresTransactionRepo) UpdateState(ctx context.Context, rec *models.TransactionRecord, transition models.StateTransition) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	factors, err := json.Marshal(rec.FraudFactors)
	if err != nil {
		return fmt.Errorf("failed to encode fraud factors: %w", err)
	}

	update := `
		UPDATE transactions SET
			state = $1, version = version + 1, fraud_score = $2,
			fraud_verdict = $3, fraud_factors = $4, execution_ref = $5,
			outcome = $6, updated_at = $7
		WHERE id = $8 AND version = $9`

	res, err := tx.ExecContext(ctx, update,
		rec.State,
		nullFloat(rec.FraudScore),
		nullString(string(rec.FraudVerdict)),
		factors,
		nullString(rec.ExecutionRef),
		nullString(string(rec.Outcome)),
		transition.At,
		rec.ID,
		rec.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction state: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("version conflict on %s at version %d: %w",
			rec.ID, rec.Version, models.ErrInvalidStateTransition)
	}

	insert := `
		INSERT INTO transaction_transitions (
			tx_id, from_state, to_state, actor, reason, created_at
		) VALUES ($1, $2, $3, $4, $5, $6)`

	_, err = tx.ExecContext(ctx, insert,
		rec.ID, transition.From, transition.To, transition.Actor, transition.Reason, transition.At)
	if err != nil {
		return fmt.Errorf("failed to append transition: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit state update: %w", err)
	}

	rec.Version++
	rec.UpdatedAt = transition.At
	rec.Transitions = append(rec.Transitions, transition)
	return nil
}

func (r *PostgresTransactionRepo) RecentByRequester(ctx context.Context, requesterID string, since time.Time) ([]models.TransactionRecord, error) {
	var rows []txRow
	query := `SELECT` + selectColumns + `
		FROM transactions
		WHERE requester_id = $1 AND submitted_at >= $2
		ORDER BY submitted_at DESC`

	if err := r.db.SelectContext(ctx, &rows, query, requesterID, since); err != nil {
		return nil, fmt.Errorf("failed to list recent transactions: %w", err)
	}

	out := make([]models.TransactionRecord, 0, len(rows))
	for _, row := range rows {
		rec, err := row.toRecord()
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, nil
}

func (r *PostgresTransactionRepo) transitions(ctx context.Context, txID string) ([]models.StateTransition, error) {
	var out []models.StateTransition
	query := `
		SELECT from_state, to_state, actor, reason, created_at
		FROM transaction_transitions
		WHERE tx_id = $1
		ORDER BY created_at ASC, id ASC`

	if err := r.db.SelectContext(ctx, &out, query, txID); err != nil {
		return nil, fmt.Errorf("failed to list transitions: %w", err)
	}
	return out, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}
