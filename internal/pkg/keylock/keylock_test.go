package keylock

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLockSerializesSameKey(t *testing.T) {
	kl := New()

	var order []int
	var mu sync.Mutex
	var wg sync.WaitGroup

	kl.Lock("tx-1")

	wg.Add(1)
	go func() {
		defer wg.Done()
		kl.Lock("tx-1")
		defer kl.Unlock("tx-1")
		mu.Lock()
		order = append(order, 2)
		mu.Unlock()
	}()

	time.Sleep(20 * time.Millisecond)
	mu.Lock()
	order = append(order, 1)
	mu.Unlock()
	kl.Unlock("tx-1")

	wg.Wait()
	assert.Equal(t, []int{1, 2}, order)
}

func TestDifferentKeysDoNotBlock(t *testing.T) {
	kl := New()

	kl.Lock("tx-1")
	defer kl.Unlock("tx-1")

	done := make(chan struct{})
	go func() {
		kl.Lock("tx-2")
		kl.Unlock("tx-2")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock on a different key blocked")
	}
}

func TestLockMapDoesNotLeak(t *testing.T) {
	kl := New()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				kl.Lock("shared")
				kl.Unlock("shared")
			}
		}()
	}
	wg.Wait()

	kl.mu.Lock()
	defer kl.mu.Unlock()
	assert.Empty(t, kl.locks)
}
