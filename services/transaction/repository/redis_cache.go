package repository

import (
	"context"
	"time"

	"github.com/adiprasetyo/txcore/internal/pkg/database"
	"github.com/adiprasetyo/txcore/internal/pkg/logger"
	"github.com/adiprasetyo/txcore/internal/pkg/models"
	"github.com/adiprasetyo/txcore/services/transaction"
)

const (
	idemKeyPrefix = "txcore:idem:"
	idemKeyTTL    = 24 * time.Hour
)

// CachedTransactionRepo fronts a TransactionRepo with a redis read-through
// cache on the idempotency-key index. The key to id binding is immutable so
// the cache never needs invalidation; cache failures fall back to the
// underlying repo.
type CachedTransactionRepo struct {
	transaction.TransactionRepo
	cache *database.RedisClient
	log   *logger.ZapLogger
}

func NewCachedTransactionRepo(repo transaction.TransactionRepo, cache *database.RedisClient, log *logger.ZapLogger) *CachedTransactionRepo {
	return &CachedTransactionRepo{
		TransactionRepo: repo,
		cache:           cache,
		log:             log,
	}
}

func (r *CachedTransactionRepo) Create(ctx context.Context, rec *models.TransactionRecord) error {
	if err := r.TransactionRepo.Create(ctx, rec); err != nil {
		return err
	}
	if err := r.cache.Set(ctx, idemKeyPrefix+rec.Request.IdempotencyKey, rec.ID, idemKeyTTL); err != nil {
		r.log.Warn("Failed to cache idempotency key",
			logger.String("transaction_id", rec.ID),
			logger.Err(err))
	}
	return nil
}

func (r *CachedTransactionRepo) FindByIdempotencyKey(ctx context.Context, key string) (*models.TransactionRecord, error) {
	txID, err := r.cache.Get(ctx, idemKeyPrefix+key)
	if err == nil && txID != "" {
		rec, err := r.TransactionRepo.Get(ctx, txID)
		if err == nil {
			return rec, nil
		}
	}

	rec, err := r.TransactionRepo.FindByIdempotencyKey(ctx, key)
	if err != nil {
		return nil, err
	}

	if err := r.cache.Set(ctx, idemKeyPrefix+key, rec.ID, idemKeyTTL); err != nil {
		r.log.Warn("Failed to cache idempotency key",
			logger.String("transaction_id", rec.ID),
			logger.Err(err))
	}
	return rec, nil
}
