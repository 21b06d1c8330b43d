package repositories

import (
	"context"
	"fmt"
	"hospital-locator-service/internal/domain"
	"hospital-locator-service/internal/ports"
	"sync"
)

// MemorySessionStore holds session state in process memory. Sessions are
// in-session only: nothing is persisted and everything is discarded on
// shutdown. Apply reduces under the lock so overlapping requests for the
// same session serialize their state transitions; staleness across requests
// is handled by the event tickets, not by locking.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]domain.State
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]domain.State),
	}
}

func (s *MemorySessionStore) Create(ctx context.Context, id string, initial domain.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; ok {
		return fmt.Errorf("create session %q: already exists", id)
	}

	s.sessions[id] = initial
	return nil
}

func (s *MemorySessionStore) Get(ctx context.Context, id string) (domain.State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.sessions[id]
	if !ok {
		return domain.State{}, fmt.Errorf("get session %q: %w", id, ports.ErrSessionNotFound)
	}

	return st, nil
}

func (s *MemorySessionStore) Apply(ctx context.Context, id string, ev domain.Event) (domain.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.sessions[id]
	if !ok {
		return domain.State{}, fmt.Errorf("apply to session %q: %w", id, ports.ErrSessionNotFound)
	}

	next := domain.Reduce(st, ev)
	s.sessions[id] = next
	return next, nil
}

// Delete is idempotent: removing an unknown session is not an error, so a
// late unmount after expiry cannot fail.
func (s *MemorySessionStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
	return nil
}
