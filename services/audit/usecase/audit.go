package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/adiprasetyo/txcore/internal/pkg/logger"
	"github.com/adiprasetyo/txcore/internal/pkg/models"
	"github.com/adiprasetyo/txcore/internal/pkg/retry"
	"github.com/adiprasetyo/txcore/services/audit"
)

// AuditUC implements the audit.Service interface with SHA-256 hash chaining
// per transaction id.
type AuditUC struct {
	repo      audit.AuditRepo
	publisher audit.CompliancePublisher
	retrier   *retry.Retrier
	log       *logger.ZapLogger
}

// NewAuditUC creates a new audit service. publisher may be nil when no
// compliance sink is configured.
func NewAuditUC(repo audit.AuditRepo, publisher audit.CompliancePublisher, retrier *retry.Retrier, log *logger.ZapLogger) audit.Service {
	return &AuditUC{
		repo:      repo,
		publisher: publisher,
		retrier:   retrier,
		log:       log,
	}
}

// hashPayload is the canonical byte representation that gets chained.
// Hash and PrevHash are deliberately excluded.
type hashPayload struct {
	TransactionID string          `json:"transaction_id"`
	Seq           int             `json:"seq"`
	EventType     string          `json:"event_type"`
	Actor         string          `json:"actor"`
	Context       json.RawMessage `json:"context,omitempty"`
	At            string          `json:"at"`
}

// Record chains, durably appends and then mirrors one audit entry
func (uc *AuditUC) Record(ctx context.Context, entry *models.AuditEntry) error {
	if entry.TransactionID == "" {
		return fmt.Errorf("audit entry requires a transaction id")
	}
	if entry.At.IsZero() {
		entry.At = time.Now().UTC()
	}

	last, err := uc.repo.Last(ctx, entry.TransactionID)
	if err != nil {
		return &models.AuditWriteError{TransactionID: entry.TransactionID, Err: err}
	}

	if last == nil {
		entry.Seq = 1
		entry.PrevHash = GenesisHash(entry.TransactionID)
	} else {
		entry.Seq = last.Seq + 1
		entry.PrevHash = last.Hash
	}

	entry.Hash, err = EntryHash(*entry)
	if err != nil {
		return &models.AuditWriteError{TransactionID: entry.TransactionID, Err: err}
	}

	if err := uc.repo.Append(ctx, *entry); err != nil {
		return &models.AuditWriteError{TransactionID: entry.TransactionID, Err: err}
	}

	uc.mirror(ctx, *entry)
	return nil
}

// mirror forwards the entry to the compliance sink. The entry is already
// durable, so a persistent publish failure is logged for redelivery rather
// than failing the transition.
func (uc *AuditUC) mirror(ctx context.Context, entry models.AuditEntry) {
	if uc.publisher == nil {
		return
	}

	publish := func(ctx context.Context) error {
		return uc.publisher.PublishAuditEntry(ctx, entry)
	}

	var err error
	if uc.retrier != nil {
		err = uc.retrier.Execute(ctx, publish)
	} else {
		err = publish(ctx)
	}
	if err != nil {
		uc.log.Error("Failed to mirror audit entry to compliance sink",
			logger.String("transaction_id", entry.TransactionID),
			logger.Int("seq", entry.Seq),
			logger.Err(err))
	}
}

// ReadChain returns the ordered chain for a transaction id
func (uc *AuditUC) ReadChain(ctx context.Context, txID string) ([]models.AuditEntry, error) {
	return uc.repo.Chain(ctx, txID)
}

// VerifyChain recomputes every hash link. Returns the sequence number of
// the first entry that fails verification, or 0 when the chain is intact.
func (uc *AuditUC) VerifyChain(txID string, entries []models.AuditEntry) int {
	prev := GenesisHash(txID)

	for i, entry := range entries {
		if entry.Seq != i+1 || entry.PrevHash != prev {
			return entry.Seq
		}
		computed, err := EntryHash(entry)
		if err != nil || computed != entry.Hash {
			return entry.Seq
		}
		prev = entry.Hash
	}

	return 0
}

// GenesisHash is the fixed chain anchor for a transaction id
func GenesisHash(txID string) string {
	sum := sha256.Sum256([]byte("genesis:" + txID))
	return hex.EncodeToString(sum[:])
}

// EntryHash computes hash(canonical payload || prev hash)
func EntryHash(entry models.AuditEntry) (string, error) {
	payload := hashPayload{
		TransactionID: entry.TransactionID,
		Seq:           entry.Seq,
		EventType:     entry.EventType,
		Actor:         entry.Actor,
		Context:       entry.Context,
		At:            entry.At.UTC().Format(time.RFC3339Nano),
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal audit payload: %w", err)
	}

	h := sha256.New()
	h.Write(data)
	h.Write([]byte(entry.PrevHash))
	return hex.EncodeToString(h.Sum(nil)), nil
}
