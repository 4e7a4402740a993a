package state

import (
	"sync"

	"github.com/shopsight/backend/internal/domain"
)

// MemoryStore holds the current pipeline snapshot in process memory. A
// successful run swaps the whole snapshot pointer under the write lock, so
// readers always see the four artifacts of a single run together.
type MemoryStore struct {
	mutex   sync.RWMutex
	current *domain.Snapshot
}

// NewMemoryStore creates an empty store. Queries against it fail with
// domain.ErrStateNotReady until the first Replace.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Replace publishes a new snapshot, discarding the previous one.
func (s *MemoryStore) Replace(snapshot *domain.Snapshot) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.current = snapshot
}

// Current returns the latest published snapshot.
func (s *MemoryStore) Current() (*domain.Snapshot, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if s.current == nil {
		return nil, domain.ErrStateNotReady
	}
	return s.current, nil
}
