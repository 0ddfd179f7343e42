package valkey

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/samirrijal/tripmap/internal/core/domain"
	"github.com/samirrijal/tripmap/internal/core/mapview"
)

const sessionKeyPrefix = "tripmap:session:"

// SessionStore implements ports.SessionStore with one JSON value per
// session. Every save refreshes the TTL.
type SessionStore struct {
	client valkey.Client
	ttl    time.Duration
}

// NewSessionStore shares the Cache's client.
func NewSessionStore(c *Cache, ttl time.Duration) *SessionStore {
	return &SessionStore{client: c.client, ttl: ttl}
}

func sessionKey(id string) string { return sessionKeyPrefix + id }

// Load reads a session.
func (s *SessionStore) Load(ctx context.Context, id string) (*mapview.State, error) {
	b, err := s.client.Do(ctx, s.client.B().Get().Key(sessionKey(id)).Build()).AsBytes()
	if valkey.IsValkeyNil(err) {
		return nil, fmt.Errorf("session %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	var st mapview.State
	if err := json.Unmarshal(b, &st); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}
	return &st, nil
}

// Save replaces a session.
func (s *SessionStore) Save(ctx context.Context, id string, st *mapview.State) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	cmd := s.client.Do(ctx,
		s.client.B().Set().Key(sessionKey(id)).Value(valkey.BinaryString(data)).Ex(s.ttl).Build(),
	)
	return cmd.Error()
}

// Delete removes a session.
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	n, err := s.client.Do(ctx, s.client.B().Del().Key(sessionKey(id)).Build()).AsInt64()
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("session %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
