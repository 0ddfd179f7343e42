package ports

import (
	"context"

	"github.com/samirrijal/tripmap/internal/core/domain"
)

// EventPublisher publishes map session events to a message broker.
type EventPublisher interface {
	PublishCommands(ctx context.Context, sessionID string, cmds []domain.Command) error
	PublishState(ctx context.Context, sessionID string, data []byte) error
}

// CacheService provides read-through caching.
type CacheService interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttlSeconds int) error
	Delete(ctx context.Context, key string) error
}

// KeyValueStore is an opaque durable key-value store.
// Get returns domain.ErrNotFound for a missing key.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// SessionLocker serializes events for one map session. The returned unlock
// releases the lock; Lock fails when ctx ends before the lock is free.
type SessionLocker interface {
	Lock(ctx context.Context, sessionID string) (unlock func(), err error)
}
