//go:build integration
// +build integration

package valkey_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/samirrijal/tripmap/internal/adapters/valkey"
)

func setupCache(t *testing.T) *valkey.Cache {
	addr := os.Getenv("TRIPMAP_VALKEY_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	c, err := valkey.New(addr)
	if err != nil {
		t.Skipf("valkey not available: %v", err)
	}
	t.Cleanup(c.Close)
	return c
}

func TestSessionLock_ExcludesSecondHolder(t *testing.T) {
	cache := setupCache(t)
	a := valkey.NewSessionLock(cache, 5*time.Second)
	b := valkey.NewSessionLock(cache, 5*time.Second)
	id := uuid.NewString()

	unlock, err := a.Lock(context.Background(), id)
	if err != nil {
		t.Fatalf("lock: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	if _, err := b.Lock(ctx, id); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("second holder should time out, got %v", err)
	}

	unlock()
	unlock2, err := b.Lock(context.Background(), id)
	if err != nil {
		t.Fatalf("lock after release: %v", err)
	}
	unlock2()
}

func TestSessionLock_ExpiredLeaseIsNotReleasedByOldHolder(t *testing.T) {
	cache := setupCache(t)
	short := valkey.NewSessionLock(cache, 50*time.Millisecond)
	other := valkey.NewSessionLock(cache, 5*time.Second)
	id := uuid.NewString()

	staleUnlock, err := short.Lock(context.Background(), id)
	if err != nil {
		t.Fatalf("lock: %v", err)
	}
	time.Sleep(100 * time.Millisecond)

	unlock, err := other.Lock(context.Background(), id)
	if err != nil {
		t.Fatalf("lock after lease expiry: %v", err)
	}
	defer unlock()

	staleUnlock()
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	if _, err := short.Lock(ctx, id); err == nil {
		t.Fatal("stale holder released a lock it no longer owned")
	}
}
