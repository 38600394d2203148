package repository

import (
	"context"
	"sync"

	"github.com/adiprasetyo/txcore/internal/pkg/models"
	"github.com/adiprasetyo/txcore/services/audit"
)

// MemoryAuditRepo keeps chains in process memory. Used for tests and for
// running without a database.
type MemoryAuditRepo struct {
	mu     sync.RWMutex
	chains map[string][]models.AuditEntry
}

func NewMemoryAuditRepo() *MemoryAuditRepo {
	return &MemoryAuditRepo{
		chains: make(map[string][]models.AuditEntry),
	}
}

var _ audit.AuditRepo = (*MemoryAuditRepo)(nil)

func (r *MemoryAuditRepo) Append(ctx context.Context, entry models.AuditEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.chains[entry.TransactionID] = append(r.chains[entry.TransactionID], entry)
	return nil
}

func (r *MemoryAuditRepo) Last(ctx context.Context, txID string) (*models.AuditEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	chain := r.chains[txID]
	if len(chain) == 0 {
		return nil, nil
	}
	last := chain[len(chain)-1]
	return &last, nil
}

func (r *MemoryAuditRepo) Chain(ctx context.Context, txID string) ([]models.AuditEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	chain := r.chains[txID]
	out := make([]models.AuditEntry, len(chain))
	copy(out, chain)
	return out, nil
}
