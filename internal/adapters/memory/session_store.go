package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/samirrijal/tripmap/internal/core/domain"
	"github.com/samirrijal/tripmap/internal/core/mapview"
)

type sessionEntry struct {
	state   *mapview.State
	expires time.Time
}

// SessionStore keeps map sessions in process memory. Entries expire ttl
// after their last save.
type SessionStore struct {
	mu   sync.RWMutex
	data map[string]sessionEntry
	ttl  time.Duration
	now  func() time.Time
}

// NewSessionStore creates a store. A zero ttl keeps sessions forever.
func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{data: make(map[string]sessionEntry), ttl: ttl, now: time.Now}
}

func (s *SessionStore) Load(ctx context.Context, id string) (*mapview.State, error) {
	s.mu.RLock()
	e, ok := s.data[id]
	s.mu.RUnlock()
	if !ok || s.expired(e) {
		return nil, fmt.Errorf("session %s: %w", id, domain.ErrNotFound)
	}
	return e.state.Clone(), nil
}

func (s *SessionStore) Save(ctx context.Context, id string, st *mapview.State) error {
	e := sessionEntry{state: st.Clone()}
	if s.ttl > 0 {
		e.expires = s.now().Add(s.ttl)
	}
	s.mu.Lock()
	s.data[id] = e
	s.mu.Unlock()
	return nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.data[id]
	if !ok || s.expired(e) {
		delete(s.data, id)
		return fmt.Errorf("session %s: %w", id, domain.ErrNotFound)
	}
	delete(s.data, id)
	return nil
}

// Sweep drops expired sessions and returns how many were removed.
func (s *SessionStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, e := range s.data {
		if s.expired(e) {
			delete(s.data, id)
			n++
		}
	}
	return n
}

// RunSweeper calls Sweep every interval until ctx is done.
func (s *SessionStore) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

func (s *SessionStore) expired(e sessionEntry) bool {
	return !e.expires.IsZero() && !s.now().Before(e.expires)
}
