package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adiprasetyo/txcore/internal/pkg/logger"
	"github.com/adiprasetyo/txcore/internal/pkg/models"
	"github.com/adiprasetyo/txcore/services/audit/repository"
)

func testLogger(t *testing.T) *logger.ZapLogger {
	t.Helper()
	log, err := logger.NewZapLogger(models.LoggerConfig{Level: "error"}, nil)
	require.NoError(t, err)
	return log
}

type capturePublisher struct {
	entries []models.AuditEntry
	err     error
}

func (p *capturePublisher) PublishAuditEntry(ctx context.Context, entry models.AuditEntry) error {
	if p.err != nil {
		return p.err
	}
	p.entries = append(p.entries, entry)
	return nil
}

func recordEntries(t *testing.T, uc *AuditUC, txID string, eventTypes ...string) {
	t.Helper()
	for _, et := range eventTypes {
		entry := &models.AuditEntry{
			TransactionID: txID,
			EventType:     et,
			Actor:         "engine",
			Context:       json.RawMessage(`{"from":"created","to":"validating"}`),
		}
		require.NoError(t, uc.Record(context.Background(), entry))
	}
}

func TestRecordBuildsChain(t *testing.T) {
	repo := repository.NewMemoryAuditRepo()
	uc := NewAuditUC(repo, nil, nil, testLogger(t)).(*AuditUC)

	recordEntries(t, uc, "tx-1", models.AuditEventTransition, models.AuditEventTransition, models.AuditEventBackendRetry)

	chain, err := uc.ReadChain(context.Background(), "tx-1")
	require.NoError(t, err)
	require.Len(t, chain, 3)

	assert.Equal(t, 1, chain[0].Seq)
	assert.Equal(t, GenesisHash("tx-1"), chain[0].PrevHash)
	assert.Equal(t, chain[0].Hash, chain[1].PrevHash)
	assert.Equal(t, chain[1].Hash, chain[2].PrevHash)
	assert.Equal(t, 0, uc.VerifyChain("tx-1", chain))
}

func TestRecordMirrorsAfterDurability(t *testing.T) {
	repo := repository.NewMemoryAuditRepo()
	pub := &capturePublisher{}
	uc := NewAuditUC(repo, pub, nil, testLogger(t)).(*AuditUC)

	recordEntries(t, uc, "tx-2", models.AuditEventTransition)

	require.Len(t, pub.entries, 1)
	assert.Equal(t, "tx-2", pub.entries[0].TransactionID)
	assert.NotEmpty(t, pub.entries[0].Hash)
}

func TestRecordSucceedsWhenMirrorFails(t *testing.T) {
	repo := repository.NewMemoryAuditRepo()
	pub := &capturePublisher{err: errors.New("nsqd down")}
	uc := NewAuditUC(repo, pub, nil, testLogger(t)).(*AuditUC)

	entry := &models.AuditEntry{
		TransactionID: "tx-3",
		EventType:     models.AuditEventTransition,
		Actor:         "engine",
	}
	require.NoError(t, uc.Record(context.Background(), entry))

	chain, err := uc.ReadChain(context.Background(), "tx-3")
	require.NoError(t, err)
	assert.Len(t, chain, 1)
}

func TestRecordRequiresTransactionID(t *testing.T) {
	uc := NewAuditUC(repository.NewMemoryAuditRepo(), nil, nil, testLogger(t)).(*AuditUC)

	err := uc.Record(context.Background(), &models.AuditEntry{EventType: models.AuditEventTransition})
	assert.Error(t, err)
}

func TestVerifyChainDetectsTamperedPayload(t *testing.T) {
	repo := repository.NewMemoryAuditRepo()
	uc := NewAuditUC(repo, nil, nil, testLogger(t)).(*AuditUC)

	recordEntries(t, uc, "tx-4", models.AuditEventTransition, models.AuditEventTransition, models.AuditEventTransition)

	chain, err := uc.ReadChain(context.Background(), "tx-4")
	require.NoError(t, err)

	chain[1].Actor = "intruder"
	assert.Equal(t, 2, uc.VerifyChain("tx-4", chain))
}

func TestVerifyChainDetectsBrokenLink(t *testing.T) {
	repo := repository.NewMemoryAuditRepo()
	uc := NewAuditUC(repo, nil, nil, testLogger(t)).(*AuditUC)

	recordEntries(t, uc, "tx-5", models.AuditEventTransition, models.AuditEventTransition)

	chain, err := uc.ReadChain(context.Background(), "tx-5")
	require.NoError(t, err)

	chain[1].PrevHash = GenesisHash("tx-5")
	assert.Equal(t, 2, uc.VerifyChain("tx-5", chain))
}

func TestVerifyChainDetectsSingleEntryTamper(t *testing.T) {
	repo := repository.NewMemoryAuditRepo()
	uc := NewAuditUC(repo, nil, nil, testLogger(t)).(*AuditUC)

	recordEntries(t, uc, "tx-6", models.AuditEventTransition)

	chain, err := uc.ReadChain(context.Background(), "tx-6")
	require.NoError(t, err)
	require.Len(t, chain, 1)

	chain[0].Context = json.RawMessage(`{"from":"created","to":"committed"}`)
	assert.Equal(t, 1, uc.VerifyChain("tx-6", chain))
}

func TestVerifyChainEmptyIsIntact(t *testing.T) {
	uc := NewAuditUC(repository.NewMemoryAuditRepo(), nil, nil, testLogger(t)).(*AuditUC)
	assert.Equal(t, 0, uc.VerifyChain("tx-7", nil))
}

func TestEntryHashIsDeterministic(t *testing.T) {
	entry := models.AuditEntry{
		TransactionID: "tx-8",
		Seq:           1,
		EventType:     models.AuditEventTransition,
		Actor:         "engine",
		At:            time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
		PrevHash:      GenesisHash("tx-8"),
	}

	first, err := EntryHash(entry)
	require.NoError(t, err)
	second, err := EntryHash(entry)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, first, 64)
}
