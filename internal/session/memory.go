package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore implements Store with an in-memory map. Expiry is lazy on
// access; Sweep exists for a scheduled pass so idle sessions do not linger
// until their next (never-arriving) read.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Progress
	ttl      time.Duration
	now      func() time.Time
}

// NewMemoryStore returns a memory store with the given idle TTL
// (DefaultTTL when zero).
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{
		sessions: make(map[string]*Progress),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create implements Store.
func (s *MemoryStore) Create(ctx context.Context, p *Progress) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	p.CreatedAt = now
	p.UpdatedAt = now
	p.Version = 1

	clone := *p
	s.sessions[p.SessionID] = &clone
	return nil
}

// Get implements Store. Expired sessions are evicted and reported missing.
func (s *MemoryStore) Get(ctx context.Context, sessionID string) (*Progress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrNotFound
	}
	if s.now().Sub(stored.UpdatedAt) > s.ttl {
		delete(s.sessions, sessionID)
		return nil, ErrNotFound
	}
	clone := *stored
	return &clone, nil
}

// Update implements Store with optimistic locking: the caller's Version must
// match the stored one, keeping read-decide-write atomic per session.
func (s *MemoryStore) Update(ctx context.Context, p *Progress) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.sessions[p.SessionID]
	if !ok {
		return ErrNotFound
	}
	if stored.Version != p.Version {
		return ErrVersionConflict
	}

	p.Version++
	p.UpdatedAt = s.now()
	clone := *p
	s.sessions[p.SessionID] = &clone
	return nil
}

// Delete implements Store.
func (s *MemoryStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}

// Close implements Store.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions = nil
	return nil
}

// Sweep evicts every session idle beyond the TTL and returns how many were
// removed.
func (s *MemoryStore) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, stored := range s.sessions {
		if now.Sub(stored.UpdatedAt) > s.ttl {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}
