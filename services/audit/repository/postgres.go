package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/adiprasetyo/txcore/internal/pkg/models"
	"github.com/adiprasetyo/txcore/services/audit"
)

// PostgresAuditRepo persists audit chains in the audit_entries table.
// (tx_id, seq) is the primary key so a duplicate sequence insert fails
// instead of forking the chain.
type PostgresAuditRepo struct {
	db *sqlx.DB
}

func NewPostgresAuditRepo(db *sqlx.DB) *PostgresAuditRepo {
	return &PostgresAuditRepo{db: db}
}

var _ audit.AuditRepo = (*PostgresAuditRepo)(nil)

func (r *PostgresAuditRepo) Append(ctx context.Context, entry models.AuditEntry) error {
	query := `
		INSERT INTO audit_entries (
			tx_id, seq, event_type, actor, context, created_at, prev_hash, hash
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, query,
		entry.TransactionID,
		entry.Seq,
		entry.EventType,
		entry.Actor,
		[]byte(entry.Context),
		entry.At,
		entry.PrevHash,
		entry.Hash,
	)
	if err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}
	return nil
}

func (r *PostgresAuditRepo) Last(ctx context.Context, txID string) (*models.AuditEntry, error) {
	query := `
		SELECT tx_id, seq, event_type, actor, context, created_at, prev_hash, hash
		FROM audit_entries
		WHERE tx_id = $1
		ORDER BY seq DESC
		LIMIT 1`

	var entry models.AuditEntry
	err := r.db.GetContext(ctx, &entry, query, txID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read last audit entry: %w", err)
	}
	return &entry, nil
}

func (r *PostgresAuditRepo) Chain(ctx context.Context, txID string) ([]models.AuditEntry, error) {
	query := `
		SELECT tx_id, seq, event_type, actor, context, created_at, prev_hash, hash
		FROM audit_entries
		WHERE tx_id = $1
		ORDER BY seq ASC`

	var entries []models.AuditEntry
	if err := r.db.SelectContext(ctx, &entries, query, txID); err != nil {
		return nil, fmt.Errorf("failed to read audit chain: %w", err)
	}
	return entries, nil
}
