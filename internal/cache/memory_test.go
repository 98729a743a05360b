package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemoryStore_SetGet(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	store.Set(ctx, "k", "v", time.Minute)

	got, ok := store.Get(ctx, "k")
	if !ok {
		t.Fatalf("expected hit")
	}
	if got != "v" {
		t.Fatalf("expected %q, got %q", "v", got)
	}
}

func TestMemoryStore_MissingKey(t *testing.T) {
	store := NewMemoryStore()

	if _, ok := store.Get(context.Background(), "nope"); ok {
		t.Fatalf("expected miss")
	}
}

func TestMemoryStore_Expiry(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	now := time.Now()
	store.now = func() time.Time { return now }

	store.Set(ctx, "k", "v", time.Hour)

	now = now.Add(2 * time.Hour)

	if _, ok := store.Get(ctx, "k"); ok {
		t.Fatalf("expected expired entry to miss")
	}
}

func TestMemoryStore_Delete(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	store.Set(ctx, "k", "v", time.Minute)
	store.Delete(ctx, "k")

	if _, ok := store.Get(ctx, "k"); ok {
		t.Fatalf("expected miss after delete")
	}
}

func TestMemoryStore_OverwriteWins(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	store.Set(ctx, "k", "first", time.Minute)
	store.Set(ctx, "k", "second", time.Minute)

	got, _ := store.Get(ctx, "k")
	if got != "second" {
		t.Fatalf("expected last writer to win, got %q", got)
	}
}

func TestMemoryStore_IncrCountsWithinWindow(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	for want := int64(1); want <= 3; want++ {
		if got := store.Incr(ctx, "counter", time.Minute); got != want {
			t.Fatalf("expected %d, got %d", want, got)
		}
	}
}

func TestMemoryStore_IncrResetsAfterWindow(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	now := time.Now()
	store.now = func() time.Time { return now }

	store.Incr(ctx, "counter", time.Minute)
	store.Incr(ctx, "counter", time.Minute)

	now = now.Add(2 * time.Minute)

	if got := store.Incr(ctx, "counter", time.Minute); got != 1 {
		t.Fatalf("expected window reset to 1, got %d", got)
	}
}

func TestMemoryStore_ConcurrentIncr(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	done := make(chan struct{})
	for i := 0; i < 10; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 100; j++ {
				store.Incr(ctx, "counter", time.Minute)
			}
		}()
	}
	for i := 0; i < 10; i++ {
		<-done
	}

	if got := store.Incr(ctx, "counter", time.Minute); got != 1001 {
		t.Fatalf("expected 1001, got %d", got)
	}
}

func TestRedisStore_DisabledWhenUnreachable(t *testing.T) {
	// Nothing listens on this port; the store must start disabled and
	// degrade to misses instead of erroring.
	store := NewRedisStore("redis://127.0.0.1:1", testLogger())

	if store.Enabled() {
		t.Fatalf("expected disabled store")
	}

	ctx := context.Background()
	store.Set(ctx, "k", "v", time.Minute)
	if _, ok := store.Get(ctx, "k"); ok {
		t.Fatalf("expected miss from disabled store")
	}
	if n := store.Incr(ctx, "k", time.Minute); n != 0 {
		t.Fatalf("expected 0 from disabled store, got %d", n)
	}
}

func TestRedisStore_DisabledOnBadURL(t *testing.T) {
	store := NewRedisStore("://not-a-url", testLogger())

	if store.Enabled() {
		t.Fatalf("expected disabled store")
	}
}
