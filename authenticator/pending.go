package authenticator

import (
	"sync"
	"time"
)

// PendingAuthTTL bounds how long an unredeemed login attempt stays in the
// registry. Providers expire authorization codes well inside this window.
const PendingAuthTTL = 10 * time.Minute

// PendingAuth is one in-flight login attempt, created when the authorization
// URL is generated and consumed exactly once by the callback handler.
type PendingAuth struct {
	State     string
	Verifier  string
	Platform  Platform
	CreatedAt time.Time
}

// PendingAuthStore correlates provider callbacks with the login attempts that
// initiated them. The flow round-trips through an external redirect and may
// land on a different session than the one that started it, so the store is
// shared process-wide rather than kept in any session.
type PendingAuthStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]*PendingAuth
	now     func() time.Time
}

// NewPendingAuthStore creates an empty store. A ttl of zero disables expiry.
func NewPendingAuthStore(ttl time.Duration) *PendingAuthStore {
	return &PendingAuthStore{
		ttl:     ttl,
		entries: make(map[string]*PendingAuth),
		now:     time.Now,
	}
}

// Put registers a new pending attempt, pruning attempts that were abandoned.
// State collisions are not defended against; states carry enough entropy that
// a collision is treated as impossible.
func (s *PendingAuthStore) Put(p *PendingAuth) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = s.now()
	}
	s.prune()
	s.entries[p.State] = p
}

// Take atomically removes and returns the entry for state. A state is valid
// for exactly one lookup; unknown, replayed, and expired states all report
// ok=false rather than an error.
func (s *PendingAuthStore) Take(state string) (*PendingAuth, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.entries[state]
	if !ok {
		return nil, false
	}
	delete(s.entries, state)
	if s.ttl > 0 && s.now().Sub(p.CreatedAt) > s.ttl {
		return nil, false
	}
	return p, true
}

// Len reports how many attempts are currently pending.
func (s *PendingAuthStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// prune drops expired entries. Caller must hold the lock.
func (s *PendingAuthStore) prune() {
	if s.ttl <= 0 {
		return
	}
	cutoff := s.now().Add(-s.ttl)
	for state, p := range s.entries {
		if p.CreatedAt.Before(cutoff) {
			delete(s.entries, state)
		}
	}
}
