package notify

import (
	"context"
	"errors"
	"slices"
	"sync"
)

// ErrAlreadyInitialized is returned when a ReadState is initialized twice.
var ErrAlreadyInitialized = errors.New("read state already initialized")

// ReadState is the in-memory set of notification IDs the user has read,
// mirrored to a ReadIDStore on every change. IDs are only ever added.
type ReadState struct {
	mu          sync.RWMutex
	ids         map[string]struct{}
	storage     ReadIDStore
	initialized bool
}

// NewReadState returns an empty, uninitialized ReadState.
func NewReadState(storage ReadIDStore) *ReadState {
	return &ReadState{
		ids:     make(map[string]struct{}),
		storage: storage,
	}
}

// Initialize hydrates the set from storage. It may be called once.
func (s *ReadState) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return ErrAlreadyInitialized
	}
	s.load(ctx)
	return nil
}

// load must be called with mu held.
func (s *ReadState) load(ctx context.Context) {
	for _, id := range s.storage.Load(ctx) {
		s.ids[id] = struct{}{}
	}
	s.initialized = true
}

// MarkAsRead adds id to the set and persists the result. IDs that are not
// in any catalog are accepted. A state that was never initialized is
// hydrated first so stored IDs are not overwritten.
func (s *ReadState) MarkAsRead(ctx context.Context, id string) {
	s.MarkAll(ctx, []string{id})
}

// MarkAll adds every id to the set and persists once.
func (s *ReadState) MarkAll(ctx context.Context, ids []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		s.load(ctx)
	}
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
	s.storage.Save(ctx, s.sortedIDs())
}

// Reload merges IDs that reached storage since the last load, for example
// from another process sharing the backend. Local IDs are kept, so the set
// never shrinks. It returns the number of IDs added.
func (s *ReadState) Reload(ctx context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := len(s.ids)
	s.load(ctx)
	return len(s.ids) - before
}

// ReadSet is an immutable copy of the read IDs.
type ReadSet map[string]struct{}

// Has reports whether id is in the set.
func (r ReadSet) Has(id string) bool {
	_, ok := r[id]
	return ok
}

// Set copies the read IDs under a single lock.
func (s *ReadState) Set() ReadSet {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(ReadSet, len(s.ids))
	for id := range s.ids {
		out[id] = struct{}{}
	}
	return out
}

// Has reports whether id has been read.
func (s *ReadState) Has(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.ids[id]
	return ok
}

// IDs returns the read IDs in sorted order.
func (s *ReadState) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.sortedIDs()
}

// Len returns the number of read IDs.
func (s *ReadState) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.ids)
}

func (s *ReadState) sortedIDs() []string {
	ids := make([]string, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
