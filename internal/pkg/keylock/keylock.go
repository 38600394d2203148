package keylock

import (
	"sync"
)

// KeyLock provides an exclusive lock per string key. Locks are created on
// first use and reclaimed once no goroutine holds or waits on them, so the
// map does not grow with the number of keys ever seen.
type KeyLock struct {
	mu    sync.Mutex
	locks map[string]*entry
}

type entry struct {
	mu   sync.Mutex
	refs int
}

// New creates an empty KeyLock
func New() *KeyLock {
	return &KeyLock{locks: make(map[string]*entry)}
}

// Lock acquires the exclusive lock for key, blocking until it is available
func (kl *KeyLock) Lock(key string) {
	kl.mu.Lock()
	e, ok := kl.locks[key]
	if !ok {
		e = &entry{}
		kl.locks[key] = e
	}
	e.refs++
	kl.mu.Unlock()

	e.mu.Lock()
}

// Unlock releases the lock for key. Must be called exactly once per Lock.
func (kl *KeyLock) Unlock(key string) {
	kl.mu.Lock()
	e, ok := kl.locks[key]
	if !ok {
		kl.mu.Unlock()
		panic("keylock: unlock of unlocked key " + key)
	}
	e.refs--
	if e.refs == 0 {
		delete(kl.locks, key)
	}
	kl.mu.Unlock()

	e.mu.Unlock()
}
