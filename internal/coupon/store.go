package coupon

import "sync"

// Store holds the currently-applied coupon per session key. One coupon per
// session: a second Put overwrites the first, and the first coupon's
// used_count is not decremented. Entries never expire server-side; the
// session lifetime governs them.
type Store struct {
	mu      sync.RWMutex
	applied map[string]Applied
}

func NewStore() *Store {
	return &Store{
		applied: make(map[string]Applied),
	}
}

func (s *Store) Put(sessionKey string, applied Applied) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applied[sessionKey] = applied
}

func (s *Store) Get(sessionKey string) (Applied, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	applied, ok := s.applied[sessionKey]
	return applied, ok
}

func (s *Store) Clear(sessionKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.applied, sessionKey)
}
