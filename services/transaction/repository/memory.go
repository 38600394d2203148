package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/adiprasetyo/txcore/internal/pkg/models"
	"github.com/adiprasetyo/txcore/services/transaction"
)

// MemoryTransactionRepo keeps records in process memory. Used for tests and
// for running without a database.
type MemoryTransactionRepo struct {
	mu      sync.RWMutex
	records map[string]*models.TransactionRecord
	byKey   map[string]string
}

func NewMemoryTransactionRepo() *MemoryTransactionRepo {
	return &MemoryTransactionRepo{
		records: make(map[string]*models.TransactionRecord),
		byKey:   make(map[string]string),
	}
}

var _ transaction.TransactionRepo = (*MemoryTransactionRepo)(nil)

func (r *MemoryTransactionRepo) Create(ctx context.Context, rec *models.TransactionRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.byKey[rec.Request.IdempotencyKey]; ok && existing != rec.ID {
		return fmt.Errorf("idempotency key already bound to %s: %w", existing, models.ErrInvalidStateTransition)
	}
	if _, ok := r.records[rec.ID]; ok {
		return fmt.Errorf("transaction %s already exists: %w", rec.ID, models.ErrInvalidStateTransition)
	}

	clone := cloneRecord(rec)
	r.records[rec.ID] = clone
	r.byKey[rec.Request.IdempotencyKey] = rec.ID
	return nil
}

func (r *MemoryTransactionRepo) Get(ctx context.Context, txID string) (*models.TransactionRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[txID]
	if !ok {
		return nil, models.ErrTransactionNotFound
	}
	return cloneRecord(rec), nil
}

func (r *MemoryTransactionRepo) FindByIdempotencyKey(ctx context.Context, key string) (*models.TransactionRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	txID, ok := r.byKey[key]
	if !ok {
		return nil, models.ErrTransactionNotFound
	}
	return cloneRecord(r.records[txID]), nil
}

func (r *MemoryTransactionRepo) UpdateState(ctx context.Context, rec *models.TransactionRecord, transition models.StateTransition) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.records[rec.ID]
	if !ok {
		return models.ErrTransactionNotFound
	}
	if stored.Version != rec.Version {
		return fmt.Errorf("version conflict on %s: have %d, want %d: %w",
			rec.ID, stored.Version, rec.Version, models.ErrInvalidStateTransition)
	}

	rec.Version++
	rec.UpdatedAt = transition.At
	rec.Transitions = append(rec.Transitions, transition)
	r.records[rec.ID] = cloneRecord(rec)
	return nil
}

func (r *MemoryTransactionRepo) RecentByRequester(ctx context.Context, requesterID string, since time.Time) ([]models.TransactionRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.TransactionRecord
	for _, rec := range r.records {
		if rec.Request.RequesterID == requesterID && !rec.Request.SubmittedAt.Before(since) {
			out = append(out, *cloneRecord(rec))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Request.SubmittedAt.After(out[j].Request.SubmittedAt)
	})
	return out, nil
}

func cloneRecord(rec *models.TransactionRecord) *models.TransactionRecord {
	clone := *rec
	clone.Transitions = append([]models.StateTransition(nil), rec.Transitions...)
	clone.FraudFactors = append([]string(nil), rec.FraudFactors...)
	if rec.FraudScore != nil {
		score := *rec.FraudScore
		clone.FraudScore = &score
	}
	return &clone
}
