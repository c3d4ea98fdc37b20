package bookings

import "sync"

// ownerLocks serializes check-then-insert per owner so two concurrent
// requests cannot both pass the conflict check for overlapping slots.
// Owners are independent; there is no cross-owner locking.
type ownerLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newOwnerLocks() *ownerLocks {
	return &ownerLocks{locks: make(map[string]*sync.Mutex)}
}

func (ol *ownerLocks) Lock(ownerID string) {
	ol.mu.Lock()
	l, ok := ol.locks[ownerID]
	if !ok {
		l = &sync.Mutex{}
		ol.locks[ownerID] = l
	}
	ol.mu.Unlock()
	l.Lock()
}

func (ol *ownerLocks) Unlock(ownerID string) {
	ol.mu.Lock()
	l := ol.locks[ownerID]
	ol.mu.Unlock()
	if l != nil {
		l.Unlock()
	}
}

var locks = newOwnerLocks()
