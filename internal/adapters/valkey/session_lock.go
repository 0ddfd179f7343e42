package valkey

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/valkey-io/valkey-go"
)

const (
	sessionLockPrefix = "tripmap:lock:session:"
	lockRetryWait     = 10 * time.Millisecond
)

// releaseScript deletes the lock only if this holder still owns it, so an
// expired lock taken over by another replica is never released early.
var releaseScript = valkey.NewLuaScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

// SessionLock implements ports.SessionLocker across API replicas that share
// a Valkey session store. The lease bounds how long a crashed holder can
// block a session.
type SessionLock struct {
	client valkey.Client
	lease  time.Duration
}

// NewSessionLock shares the Cache's client.
func NewSessionLock(c *Cache, lease time.Duration) *SessionLock {
	return &SessionLock{client: c.client, lease: lease}
}

func sessionLockKey(id string) string { return sessionLockPrefix + id }

// Lock waits until the session's lock is free or ctx ends.
func (l *SessionLock) Lock(ctx context.Context, id string) (func(), error) {
	key := sessionLockKey(id)
	token := uuid.NewString()
	for {
		acquire := l.client.B().Set().Key(key).Value(token).Nx().PxMilliseconds(l.lease.Milliseconds()).Build()
		err := l.client.Do(ctx, acquire).Error()
		if err == nil {
			break
		}
		if !valkey.IsValkeyNil(err) {
			return nil, fmt.Errorf("acquire %s: %w", key, err)
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("acquire %s: %w", key, ctx.Err())
		case <-time.After(lockRetryWait):
		}
	}

	return func() {
		// release even when the request context is already done
		rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), time.Second)
		defer cancel()
		if err := releaseScript.Exec(rctx, l.client, []string{key}, []string{token}).Error(); err != nil {
			slog.WarnContext(rctx, "session lock release failed", "session_id", id, "error", err)
		}
	}, nil
}
