package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/adiprasetyo/txcore/internal/pkg/models"
	"github.com/adiprasetyo/txcore/services/transaction"
)

// PostgresDailyLimiter enforces the daily cumulative cap using a per
// (account, day) advisory transaction lock. The lock serializes concurrent
// reservations so the check-and-reserve step is atomic.
type PostgresDailyLimiter struct {
	db  *sqlx.DB
	cap int64
}

func NewPostgresDailyLimiter(db *sqlx.DB, dailyCap int64) *PostgresDailyLimiter {
	return &PostgresDailyLimiter{db: db, cap: dailyCap}
}

var _ transaction.DailyLimiter = (*PostgresDailyLimiter)(nil)

func dayString(day time.Time) string {
	return day.UTC().Format("2006-01-02")
}

func lockBucket(ctx context.Context, tx *sqlx.Tx, account, day string) error {
	_, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, account+":"+day)
	if err != nil {
		return fmt.Errorf("failed to lock daily bucket: %w", err)
	}
	return nil
}

func (l *PostgresDailyLimiter) Reserve(ctx context.Context, account string, day time.Time, txID string, amount int64) error {
	tx, err := l.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin reservation: %w", err)
	}
	defer tx.Rollback()

	d := dayString(day)
	if err := lockBucket(ctx, tx, account, d); err != nil {
		return err
	}

	var existing int
	err = tx.GetContext(ctx, &existing,
		`SELECT COUNT(*) FROM limit_reservations WHERE account = $1 AND day = $2 AND tx_id = $3`,
		account, d, txID)
	if err != nil {
		return fmt.Errorf("failed to check reservation: %w", err)
	}
	if existing > 0 {
		return tx.Commit()
	}

	var total int64
	query := `
		SELECT COALESCE((SELECT committed_minor FROM daily_limits WHERE account = $1 AND day = $2), 0)
		     + COALESCE((SELECT SUM(amount_minor) FROM limit_reservations WHERE account = $1 AND day = $2), 0)`
	if err := tx.GetContext(ctx, &total, query, account, d); err != nil {
		return fmt.Errorf("failed to read daily total: %w", err)
	}
	if total+amount > l.cap {
		return models.ErrLimitExceeded
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO limit_reservations (account, day, tx_id, amount_minor) VALUES ($1, $2, $3, $4)`,
		account, d, txID, amount)
	if err != nil {
		return fmt.Errorf("failed to insert reservation: %w", err)
	}
	return tx.Commit()
}

func (l *PostgresDailyLimiter) Commit(ctx context.Context, account string, day time.Time, txID string) error {
	tx, err := l.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin limit commit: %w", err)
	}
	defer tx.Rollback()

	d := dayString(day)
	if err := lockBucket(ctx, tx, account, d); err != nil {
		return err
	}

	var amount int64
	err = tx.GetContext(ctx, &amount,
		`DELETE FROM limit_reservations WHERE account = $1 AND day = $2 AND tx_id = $3 RETURNING amount_minor`,
		account, d, txID)
	if errors.Is(err, sql.ErrNoRows) {
		// No reservation row means the commit already happened
		return tx.Commit()
	}
	if err != nil {
		return fmt.Errorf("failed to claim reservation: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO daily_limits (account, day, committed_minor) VALUES ($1, $2, $3)
		ON CONFLICT (account, day) DO UPDATE SET committed_minor = daily_limits.committed_minor + $3`,
		account, d, amount)
	if err != nil {
		return fmt.Errorf("failed to commit reservation: %w", err)
	}
	return tx.Commit()
}

func (l *PostgresDailyLimiter) Release(ctx context.Context, account string, day time.Time, txID string) error {
	_, err := l.db.ExecContext(ctx,
		`DELETE FROM limit_reservations WHERE account = $1 AND day = $2 AND tx_id = $3`,
		account, dayString(day), txID)
	if err != nil {
		return fmt.Errorf("failed to release reservation: %w", err)
	}
	return nil
}
