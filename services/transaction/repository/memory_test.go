package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adiprasetyo/txcore/internal/pkg/models"
)

func TestMemoryRepoCreateRejectsDuplicateKey(t *testing.T) {
	repo := NewMemoryTransactionRepo()
	rec := sampleRecord()
	require.NoError(t, repo.Create(context.Background(), rec))

	dup := sampleRecord()
	dup.ID = "tx-other"
	err := repo.Create(context.Background(), dup)
	assert.ErrorIs(t, err, models.ErrInvalidStateTransition)
}

func TestMemoryRepoUpdateStateDetectsStaleVersion(t *testing.T) {
	repo := NewMemoryTransactionRepo()
	rec := sampleRecord()
	require.NoError(t, repo.Create(context.Background(), rec))

	fresh, err := repo.Get(context.Background(), rec.ID)
	require.NoError(t, err)
	stale, err := repo.Get(context.Background(), rec.ID)
	require.NoError(t, err)

	fresh.State = models.StateValidating
	require.NoError(t, repo.UpdateState(context.Background(), fresh, models.StateTransition{
		From: models.StateCreated, To: models.StateValidating, At: time.Now(), Actor: "engine",
	}))

	stale.State = models.StateValidating
	err = repo.UpdateState(context.Background(), stale, models.StateTransition{
		From: models.StateCreated, To: models.StateValidating, At: time.Now(), Actor: "engine",
	})
	assert.ErrorIs(t, err, models.ErrInvalidStateTransition)
}

func TestMemoryRepoGetReturnsCopy(t *testing.T) {
	repo := NewMemoryTransactionRepo()
	rec := sampleRecord()
	require.NoError(t, repo.Create(context.Background(), rec))

	a, err := repo.Get(context.Background(), rec.ID)
	require.NoError(t, err)
	a.State = models.StateFailed

	b, err := repo.Get(context.Background(), rec.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StateCreated, b.State)
}

func TestMemoryRepoRecentByRequesterWindow(t *testing.T) {
	repo := NewMemoryTransactionRepo()
	now := time.Now().UTC()

	for i, age := range []time.Duration{5 * time.Minute, 30 * time.Minute, 2 * time.Hour} {
		rec := sampleRecord()
		rec.ID = fmt.Sprintf("tx-%d", i)
		rec.Request.IdempotencyKey = fmt.Sprintf("key-%d", i)
		rec.Request.SubmittedAt = now.Add(-age)
		require.NoError(t, repo.Create(context.Background(), rec))
	}

	recent, err := repo.RecentByRequester(context.Background(), "req-001", now.Add(-time.Hour))
	require.NoError(t, err)
	require.Len(t, recent, 2)
	// Newest first
	assert.Equal(t, "tx-0", recent[0].ID)
	assert.Equal(t, "tx-1", recent[1].ID)
}

func TestMemoryLimiterEnforcesCap(t *testing.T) {
	limiter := NewMemoryDailyLimiter(500)
	day := time.Now().UTC()
	ctx := context.Background()

	require.NoError(t, limiter.Reserve(ctx, "acct", day, "tx-1", 300))
	require.NoError(t, limiter.Reserve(ctx, "acct", day, "tx-2", 200))
	assert.ErrorIs(t, limiter.Reserve(ctx, "acct", day, "tx-3", 1), models.ErrLimitExceeded)

	// Releasing one reservation frees headroom
	require.NoError(t, limiter.Release(ctx, "acct", day, "tx-2"))
	require.NoError(t, limiter.Reserve(ctx, "acct", day, "tx-3", 200))
}

func TestMemoryLimiterReserveIsIdempotent(t *testing.T) {
	limiter := NewMemoryDailyLimiter(500)
	day := time.Now().UTC()
	ctx := context.Background()

	require.NoError(t, limiter.Reserve(ctx, "acct", day, "tx-1", 400))
	// Replay of the same transaction does not double-count
	require.NoError(t, limiter.Reserve(ctx, "acct", day, "tx-1", 400))
	require.NoError(t, limiter.Reserve(ctx, "acct", day, "tx-2", 100))
}

func TestMemoryLimiterCommitMovesReservation(t *testing.T) {
	limiter := NewMemoryDailyLimiter(500)
	day := time.Now().UTC()
	ctx := context.Background()

	require.NoError(t, limiter.Reserve(ctx, "acct", day, "tx-1", 300))
	require.NoError(t, limiter.Commit(ctx, "acct", day, "tx-1"))
	assert.Equal(t, int64(300), limiter.CommittedTotal("acct", day))

	// Replayed commit is a no-op
	require.NoError(t, limiter.Commit(ctx, "acct", day, "tx-1"))
	assert.Equal(t, int64(300), limiter.CommittedTotal("acct", day))

	// Committed spend still counts against the cap
	assert.ErrorIs(t, limiter.Reserve(ctx, "acct", day, "tx-2", 201), models.ErrLimitExceeded)
}

func TestMemoryLimiterBucketsByDayAndAccount(t *testing.T) {
	limiter := NewMemoryDailyLimiter(500)
	day := time.Date(2025, 3, 1, 23, 59, 0, 0, time.UTC)
	nextDay := time.Date(2025, 3, 2, 0, 1, 0, 0, time.UTC)
	ctx := context.Background()

	require.NoError(t, limiter.Reserve(ctx, "acct", day, "tx-1", 500))
	require.NoError(t, limiter.Reserve(ctx, "acct", nextDay, "tx-2", 500))
	require.NoError(t, limiter.Reserve(ctx, "other", day, "tx-3", 500))
}

func TestMemoryLimiterConcurrentReservations(t *testing.T) {
	limiter := NewMemoryDailyLimiter(500)
	day := time.Now().UTC()

	const workers = 50
	var wg sync.WaitGroup
	granted := make([]bool, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := limiter.Reserve(context.Background(), "acct", day, fmt.Sprintf("tx-%d", i), 100)
			granted[i] = err == nil
		}(i)
	}
	wg.Wait()

	var count int
	for _, ok := range granted {
		if ok {
			count++
		}
	}
	assert.Equal(t, 5, count)
}
