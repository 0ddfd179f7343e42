package valkey

import (
	"context"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/samirrijal/tripmap/internal/core/domain"
)

// Cache is the shared Valkey client. It serves the highlights cache
// (ports.CacheService) and the search history store (ports.KeyValueStore);
// SessionStore reuses its connection.
type Cache struct {
	client valkey.Client
}

// New connects to addr.
func New(addr string) (*Cache, error) {
	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress:  []string{addr},
		ClientName:   "tripmap",
		DisableCache: true,
	})
	if err != nil {
		return nil, fmt.Errorf("valkey connect %s: %w", addr, err)
	}
	return &Cache{client: client}, nil
}

// Get returns the value under key, or domain.ErrNotFound.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := c.client.Do(ctx, c.client.B().Get().Key(key).Build()).AsBytes()
	switch {
	case valkey.IsValkeyNil(err):
		return nil, domain.ErrNotFound
	case err != nil:
		return nil, fmt.Errorf("valkey get %s: %w", key, err)
	}
	return b, nil
}

// Set stores value under key for ttlSeconds. A non-positive TTL keeps the
// key until it is overwritten or deleted.
func (c *Cache) Set(ctx context.Context, key string, value []byte, ttlSeconds int) error {
	return c.set(ctx, key, value, time.Duration(ttlSeconds)*time.Second)
}

// Put stores value under key without expiry.
func (c *Cache) Put(ctx context.Context, key string, value []byte) error {
	return c.set(ctx, key, value, 0)
}

func (c *Cache) set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	cmd := c.client.B().Set().Key(key).Value(valkey.BinaryString(value))
	var err error
	if ttl > 0 {
		err = c.client.Do(ctx, cmd.Ex(ttl).Build()).Error()
	} else {
		err = c.client.Do(ctx, cmd.Build()).Error()
	}
	if err != nil {
		return fmt.Errorf("valkey set %s: %w", key, err)
	}
	return nil
}

// Delete removes key. Missing keys are not an error.
func (c *Cache) Delete(ctx context.Context, key string) error {
	if err := c.client.Do(ctx, c.client.B().Del().Key(key).Build()).Error(); err != nil {
		return fmt.Errorf("valkey del %s: %w", key, err)
	}
	return nil
}

// Ping checks connectivity for readiness probes.
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Do(ctx, c.client.B().Ping().Build()).Error()
}

// Close releases the client.
func (c *Cache) Close() {
	c.client.Close()
}
