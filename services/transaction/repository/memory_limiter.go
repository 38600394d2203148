package repository

import (
	"context"
	"sync"
	"time"

	"github.com/adiprasetyo/txcore/internal/pkg/models"
	"github.com/adiprasetyo/txcore/services/transaction"
)

// MemoryDailyLimiter tracks per-account daily spend in process memory.
// A single mutex serializes all reservations, which is the linearization
// point the cap check relies on.
type MemoryDailyLimiter struct {
	mu      sync.Mutex
	cap     int64
	buckets map[string]*dailyBucket
}

type dailyBucket struct {
	committed int64
	reserved  map[string]int64
}

func NewMemoryDailyLimiter(dailyCap int64) *MemoryDailyLimiter {
	return &MemoryDailyLimiter{
		cap:     dailyCap,
		buckets: make(map[string]*dailyBucket),
	}
}

var _ transaction.DailyLimiter = (*MemoryDailyLimiter)(nil)

func bucketKey(account string, day time.Time) string {
	return account + ":" + day.UTC().Format("2006-01-02")
}

func (l *MemoryDailyLimiter) Reserve(ctx context.Context, account string, day time.Time, txID string, amount int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	b := l.bucket(account, day)
	if _, ok := b.reserved[txID]; ok {
		return nil
	}

	total := b.committed + amount
	for _, r := range b.reserved {
		total += r
	}
	if total > l.cap {
		return models.ErrLimitExceeded
	}

	b.reserved[txID] = amount
	return nil
}

func (l *MemoryDailyLimiter) Commit(ctx context.Context, account string, day time.Time, txID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	b := l.bucket(account, day)
	amount, ok := b.reserved[txID]
	if !ok {
		return nil
	}
	delete(b.reserved, txID)
	b.committed += amount
	return nil
}

func (l *MemoryDailyLimiter) Release(ctx context.Context, account string, day time.Time, txID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	b := l.bucket(account, day)
	delete(b.reserved, txID)
	return nil
}

// CommittedTotal reports the committed spend for an account day. Test hook.
func (l *MemoryDailyLimiter) CommittedTotal(account string, day time.Time) int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.bucket(account, day).committed
}

func (l *MemoryDailyLimiter) bucket(account string, day time.Time) *dailyBucket {
	key := bucketKey(account, day)
	b, ok := l.buckets[key]
	if !ok {
		b = &dailyBucket{reserved: make(map[string]int64)}
		l.buckets[key] = b
	}
	return b
}
