package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	natsadapter "github.com/samirrijal/tripmap/internal/adapters/nats"
	"github.com/samirrijal/tripmap/internal/pkg/metrics"
)

const wsPingInterval = 30 * time.Second

// wsEvent is one frame pushed to a session's stream.
type wsEvent struct {
	Kind      string          `json:"kind"` // "commands" | "state" | "error"
	SessionID string          `json:"session_id"`
	Data      json.RawMessage `json:"data,omitempty"`
	Error     string          `json:"error,omitempty"`
}

// WebSocketUpgrade rejects non-upgrade requests and requests without a
// session id before the handshake.
func WebSocketUpgrade() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		if c.Query("session") == "" {
			return errBadRequest(c, "session query parameter is required")
		}
		return c.Next()
	}
}

// WebSocketHandler streams one map session: the current view on connect,
// then every command batch and view published for it.
func WebSocketHandler(deps *Dependencies) func(*websocket.Conn) {
	return func(c *websocket.Conn) {
		defer c.Close()

		sessionID := c.Query("session")
		log := slog.Default().With("session_id", sessionID, "remote", c.RemoteAddr().String())
		log.Info("ws client connected")

		metrics.ActiveWebSockets.Inc()
		defer metrics.ActiveWebSockets.Dec()

		var mu sync.Mutex
		write := func(ev wsEvent) error {
			data, err := json.Marshal(ev)
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			return c.WriteMessage(websocket.TextMessage, data)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		sv, err := deps.Sessions.Get(ctx, sessionID)
		cancel()
		if err != nil {
			_ = write(wsEvent{Kind: "error", SessionID: sessionID, Error: err.Error()})
			return
		}
		if snapshot, err := json.Marshal(sv.View); err == nil {
			_ = write(wsEvent{Kind: "state", SessionID: sessionID, Data: snapshot})
		}

		if deps.Events != nil {
			unsubscribe, err := deps.Events.Session(sessionID, func(m natsadapter.SessionMessage) {
				_ = write(wsEvent{Kind: m.Kind, SessionID: m.SessionID, Data: m.Data})
			})
			if err != nil {
				log.Warn("ws subscribe failed", "error", err)
				_ = write(wsEvent{Kind: "error", SessionID: sessionID, Error: "live updates unavailable"})
			} else {
				defer unsubscribe()
			}
		}

		done := make(chan struct{})
		defer close(done)
		go func() {
			ticker := time.NewTicker(wsPingInterval)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					mu.Lock()
					err := c.WriteMessage(websocket.PingMessage, nil)
					mu.Unlock()
					if err != nil {
						return
					}
				case <-done:
					return
				}
			}
		}()

		// Inbound frames are ignored; reading keeps control frames flowing
		// and detects the close.
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
		log.Info("ws client disconnected")
	}
}
