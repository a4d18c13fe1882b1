package syncs

import (
	"strconv"
	"sync"
)

// KeyLocker locks and unlocks string keys.
type KeyLocker interface {
	Lock(key string)
	Unlock(key string)
}

type keyEntry struct {
	mu   sync.Mutex
	refs int
}

// KeyLock serializes holders of equal keys while unrelated keys proceed
// concurrently. An entry only lives while some goroutine holds or waits on
// its key. The zero value is ready to use.
type KeyLock struct {
	entries map[string]*keyEntry
	mu      sync.Mutex
}

// NewKeyLock creates a new [KeyLock].
func NewKeyLock() *KeyLock {
	return &KeyLock{}
}

// Lock acquires key, blocking while another goroutine holds it.
func (kl *KeyLock) Lock(key string) {
	kl.mu.Lock()

	if kl.entries == nil {
		kl.entries = make(map[string]*keyEntry)
	}

	e, ok := kl.entries[key]
	if !ok {
		e = &keyEntry{}
		kl.entries[key] = e
	}

	e.refs++
	kl.mu.Unlock()

	e.mu.Lock()
}

// Unlock releases key. It panics if key is not locked.
func (kl *KeyLock) Unlock(key string) {
	kl.mu.Lock()

	e, ok := kl.entries[key]
	if !ok {
		kl.mu.Unlock()
		panic("syncs: unlock of unlocked key " + strconv.Quote(key))
	}

	e.refs--
	if e.refs == 0 {
		delete(kl.entries, key)
	}

	kl.mu.Unlock()

	e.mu.Unlock()
}

// Len returns the number of keys currently held or waited on.
func (kl *KeyLock) Len() int {
	kl.mu.Lock()
	defer kl.mu.Unlock()

	return len(kl.entries)
}
