package natsadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/samirrijal/tripmap/internal/core/domain"
)

const (
	// SessionStream captures every per-session subject.
	SessionStream   = "TRIPMAP_SESSIONS"
	sessionSubjects = "tripmap.session.>"
)

// CommandsSubject carries the client commands emitted by one transition.
func CommandsSubject(sessionID string) string {
	return "tripmap.session." + sessionID + ".commands"
}

// StateSubject carries the recomputed view after a transition.
func StateSubject(sessionID string) string {
	return "tripmap.session." + sessionID + ".state"
}

// SessionWildcard matches both subjects of one session.
func SessionWildcard(sessionID string) string {
	return "tripmap.session." + sessionID + ".*"
}

// Publisher implements ports.EventPublisher using NATS JetStream.
type Publisher struct {
	conn *nats.Conn
	js   nats.JetStreamContext
}

// NewPublisher connects to NATS and enables JetStream.
func NewPublisher(url string) (*Publisher, error) {
	conn, err := RawConn(url)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	js, err := conn.JetStream()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("jetstream: %w", err)
	}

	// a late subscriber only needs the recent history of its session
	cfg := nats.StreamConfig{
		Name:              SessionStream,
		Subjects:          []string{sessionSubjects},
		Retention:         nats.LimitsPolicy,
		MaxMsgsPerSubject: 32,
		MaxAge:            time.Hour,
		Storage:           nats.MemoryStorage,
	}
	if _, err := js.AddStream(&cfg); err != nil {
		if _, err := js.UpdateStream(&cfg); err != nil {
			conn.Close()
			return nil, fmt.Errorf("ensure stream %s: %w", cfg.Name, err)
		}
	}

	return &Publisher{conn: conn, js: js}, nil
}

// PublishCommands sends a batch of commands for one session.
func (p *Publisher) PublishCommands(ctx context.Context, sessionID string, cmds []domain.Command) error {
	data, err := json.Marshal(cmds)
	if err != nil {
		return err
	}
	_, err = p.js.Publish(CommandsSubject(sessionID), data, nats.Context(ctx))
	return err
}

// PublishState sends an encoded view snapshot for one session.
func (p *Publisher) PublishState(ctx context.Context, sessionID string, data []byte) error {
	_, err := p.js.Publish(StateSubject(sessionID), data, nats.Context(ctx))
	return err
}

// Close drains and closes the connection.
func (p *Publisher) Close() {
	_ = p.conn.Drain()
}

// RawConn creates a plain NATS connection for subscribing (e.g. WebSocket relay).
func RawConn(url string) (*nats.Conn, error) {
	return nats.Connect(url,
		nats.Name("tripmap"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
}
