package natsadapter

import (
	"fmt"
	"strings"
	"sync"

	"github.com/nats-io/nats.go"
)

// SessionMessage is one relayed event. Kind is "commands" or "state".
type SessionMessage struct {
	SessionID string
	Kind      string
	Data      []byte
}

// Subscriber fans session subjects out to live WebSocket connections.
type Subscriber struct {
	conn *nats.Conn

	mu   sync.Mutex
	subs map[*nats.Subscription]struct{}
}

// NewSubscriber wraps an existing connection.
func NewSubscriber(conn *nats.Conn) *Subscriber {
	return &Subscriber{conn: conn, subs: make(map[*nats.Subscription]struct{})}
}

// Connected reports whether the underlying connection is usable.
func (s *Subscriber) Connected() bool {
	return s != nil && s.conn != nil && s.conn.IsConnected()
}

// Session subscribes to every event of one session. The returned func
// unsubscribes and is safe to call more than once.
func (s *Subscriber) Session(sessionID string, handler func(SessionMessage)) (func(), error) {
	if s == nil || s.conn == nil {
		return nil, fmt.Errorf("nats: no connection")
	}
	sub, err := s.conn.Subscribe(SessionWildcard(sessionID), func(msg *nats.Msg) {
		handler(SessionMessage{
			SessionID: sessionID,
			Kind:      subjectKind(msg.Subject),
			Data:      msg.Data,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("subscribe session %s: %w", sessionID, err)
	}

	s.mu.Lock()
	s.subs[sub] = struct{}{}
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, sub)
			s.mu.Unlock()
			_ = sub.Unsubscribe()
		})
	}, nil
}

// Active returns the number of live subscriptions.
func (s *Subscriber) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

// Close unsubscribes and drains.
func (s *Subscriber) Close() {
	s.mu.Lock()
	for sub := range s.subs {
		_ = sub.Unsubscribe()
	}
	s.subs = make(map[*nats.Subscription]struct{})
	s.mu.Unlock()
	_ = s.conn.Drain()
}

func subjectKind(subject string) string {
	if i := strings.LastIndexByte(subject, '.'); i >= 0 {
		return subject[i+1:]
	}
	return subject
}
