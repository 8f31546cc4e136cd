// Package apikeys implements the API-key set: an opaque set of UUID
// identifiers checked on every authenticated request, guarded by its
// own lock independent of the primary store — mirroring the
// independent-lock split the teacher's StringStore documents between
// its write path and its read-optimized in-memory state.
package apikeys

import (
	"sync"

	"github.com/google/uuid"
)

// Set is a concurrency-safe set of API keys.
type Set struct {
	mu   sync.RWMutex
	keys map[uuid.UUID]struct{}
}

// New returns an empty Set.
func New() *Set {
	return &Set{keys: make(map[uuid.UUID]struct{})}
}

// Exists reports whether id is a member of the set. O(1).
func (s *Set) Exists(id uuid.UUID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.keys[id]
	return ok
}

// Add inserts id into the set, idempotently.
func (s *Set) Add(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys[id] = struct{}{}
}

// Len reports the number of keys currently held.
func (s *Set) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.keys)
}

// List returns a snapshot copy of all keys, used by the persistence
// engine to serialize the set into the snapshot file.
func (s *Set) List() []uuid.UUID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]uuid.UUID, 0, len(s.keys))
	for k := range s.keys {
		out = append(out, k)
	}
	return out
}

// Restore replaces the set's contents wholesale, used only during
// startup restore from a snapshot.
func (s *Set) Restore(keys []uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys = make(map[uuid.UUID]struct{}, len(keys))
	for _, k := range keys {
		s.keys[k] = struct{}{}
	}
}

// Init creates and inserts exactly one fresh API key if the set is
// currently empty, returning it. If the set is already non-empty it
// returns nil, nil — initialization only ever happens once.
func (s *Set) Init() (*uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.keys) > 0 {
		return nil, nil
	}
	id, err := uuid.NewRandom()
	if err != nil {
		return nil, err
	}
	s.keys[id] = struct{}{}
	return &id, nil
}
