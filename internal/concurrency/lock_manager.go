package concurrency

import (
	"sync"

	"github.com/google/uuid"
)

// LockManager hands out one mutex per key, e.g. per listing
type LockManager struct {
	locks sync.Map
}

// NewLockManager creates a new LockManager
func NewLockManager() *LockManager {
	return &LockManager{}
}

// GetLock returns the mutex for the given key
func (lm *LockManager) GetLock(key uuid.UUID) *sync.Mutex {
	lock, _ := lm.locks.LoadOrStore(key, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// Lock acquires the key's mutex and returns its unlock function
func (lm *LockManager) Lock(key uuid.UUID) func() {
	mu := lm.GetLock(key)
	mu.Lock()
	return mu.Unlock
}

// Forget drops the mutex of a key that will not be locked again, such as a deleted listing
func (lm *LockManager) Forget(key uuid.UUID) {
	lm.locks.Delete(key)
}
