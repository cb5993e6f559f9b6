package session

import "sync"

// MemStore keeps the session in memory only. Used by tests and by
// callers that opt out of persistence.
type MemStore struct {
	mu      sync.Mutex
	current Session
	set     bool
}

// NewMemStore constructs an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{}
}

func (ms *MemStore) Current() (Session, bool) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	if !ms.set {
		return Session{}, false
	}
	return ms.current, true
}

func (ms *MemStore) Save(s Session) error {
	if !s.Valid() {
		return ErrPartialSession
	}
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.current = s
	ms.set = true
	return nil
}

func (ms *MemStore) Clear() error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.current = Session{}
	ms.set = false
	return nil
}
