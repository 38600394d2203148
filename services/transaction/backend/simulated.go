// Package backend contains banking backend client implementations: a
// simulated in-memory system of record and an HTTP adapter for a real one.
package backend

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/adiprasetyo/txcore/internal/pkg/models"
)

// SimulatedBackend is an in-memory system of record. Execute and Reverse are
// idempotent: replaying an idempotency key or execution reference returns
// the recorded result without moving funds again.
type SimulatedBackend struct {
	mu sync.Mutex

	balances  map[string]int64             // account -> balance in minor units
	executed  map[string]execution         // idempotency key -> recorded execution
	reversals map[string]models.ReversalResult // execution ref -> recorded reversal
	byRef     map[string]execution         // execution ref -> recorded execution

	// remaining injected Unavailable results before normal processing resumes
	failures int
}

type execution struct {
	result models.ExecutionResult
	debit  string
	credit string
	amount int64
}

// NewSimulatedBackend creates a backend seeded with the given account
// balances (minor units).
func NewSimulatedBackend(balances map[string]int64) *SimulatedBackend {
	seeded := make(map[string]int64, len(balances))
	for acc, bal := range balances {
		seeded[acc] = bal
	}
	return &SimulatedBackend{
		balances:  seeded,
		executed:  make(map[string]execution),
		reversals: make(map[string]models.ReversalResult),
		byRef:     make(map[string]execution),
	}
}

// DefaultBalances returns the demo account seed used when no explicit seed
// is configured.
func DefaultBalances() map[string]int64 {
	return map[string]int64{
		"1234567890": 1542050,
		"0987654321": 825000,
		"1111222233": 10000000,
		"4444555566": 10000000,
	}
}

// FailNext makes the next n Execute calls return Unavailable. Used to
// exercise the engine's retry path.
func (b *SimulatedBackend) FailNext(n int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures = n
}

// Balance returns the current balance of an account
func (b *SimulatedBackend) Balance(account string) int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.balances[account]
}

// Execute moves funds between two accounts, keyed by idempotencyKey
func (b *SimulatedBackend) Execute(ctx context.Context, txID, idempotencyKey, debitAccount, creditAccount string, amountMinor int64, currency string) (models.ExecutionResult, error) {
	if err := ctx.Err(); err != nil {
		return models.ExecutionResult{}, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	// Replay of a completed execution returns the recorded result
	if prior, ok := b.executed[idempotencyKey]; ok {
		return prior.result, nil
	}

	if b.failures > 0 {
		b.failures--
		return models.ExecutionResult{
			Status:  models.ExecutionUnavailable,
			Reason:  models.ReasonBackendUnavailable,
			Message: "core banking temporarily unavailable",
		}, nil
	}

	balance, ok := b.balances[debitAccount]
	if !ok {
		result := models.ExecutionResult{
			Status:  models.ExecutionRejected,
			Reason:  models.ReasonBackendRejected,
			Message: fmt.Sprintf("unknown debit account %s", debitAccount),
		}
		b.executed[idempotencyKey] = execution{result: result}
		return result, nil
	}
	if _, ok := b.balances[creditAccount]; !ok {
		result := models.ExecutionResult{
			Status:  models.ExecutionRejected,
			Reason:  models.ReasonBackendRejected,
			Message: fmt.Sprintf("unknown credit account %s", creditAccount),
		}
		b.executed[idempotencyKey] = execution{result: result}
		return result, nil
	}
	if balance < amountMinor {
		result := models.ExecutionResult{
			Status:  models.ExecutionRejected,
			Reason:  models.ReasonInsufficientFunds,
			Message: "insufficient funds",
		}
		b.executed[idempotencyKey] = execution{result: result}
		return result, nil
	}

	b.balances[debitAccount] -= amountMinor
	b.balances[creditAccount] += amountMinor

	ref := newReference()
	result := models.ExecutionResult{
		Status:    models.ExecutionCommitted,
		Reference: ref,
	}
	exec := execution{result: result, debit: debitAccount, credit: creditAccount, amount: amountMinor}
	b.executed[idempotencyKey] = exec
	b.byRef[ref] = exec

	return result, nil
}

// Reverse undoes a committed execution, keyed by its execution reference
func (b *SimulatedBackend) Reverse(ctx context.Context, executionRef string) (models.ReversalResult, error) {
	if err := ctx.Err(); err != nil {
		return models.ReversalResult{}, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if prior, ok := b.reversals[executionRef]; ok {
		return prior, nil
	}

	exec, ok := b.byRef[executionRef]
	if !ok {
		return models.ReversalResult{}, fmt.Errorf("unknown execution reference %s", executionRef)
	}

	b.balances[exec.debit] += exec.amount
	b.balances[exec.credit] -= exec.amount

	result := models.ReversalResult{Reference: newReference()}
	b.reversals[executionRef] = result

	return result, nil
}

func newReference() string {
	suffix := strings.Split(uuid.New().String(), "-")[0]
	return fmt.Sprintf("TXN%s%s", time.Now().UTC().Format("20060102150405"), suffix)
}
