package session

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(0)

	p := &Progress{SessionID: "s1", CharacterID: "akari"}
	if err := store.Create(ctx, p); err != nil {
		t.Fatal(err)
	}

	got, err := store.Get(ctx, "s1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Version != 1 || got.CharacterID != "akari" {
		t.Fatalf("unexpected progress: %+v", got)
	}

	MarkGreeted(got)
	if err := store.Update(ctx, got); err != nil {
		t.Fatal(err)
	}

	again, err := store.Get(ctx, "s1")
	if err != nil {
		t.Fatal(err)
	}
	if !again.HasGreeted || again.Version != 2 {
		t.Fatalf("update not persisted: %+v", again)
	}

	if err := store.Delete(ctx, "s1"); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Get(ctx, "s1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestMemoryStoreVersionConflict(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(0)
	if err := store.Create(ctx, &Progress{SessionID: "s1"}); err != nil {
		t.Fatal(err)
	}

	a, _ := store.Get(ctx, "s1")
	b, _ := store.Get(ctx, "s1")

	if err := store.Update(ctx, a); err != nil {
		t.Fatal(err)
	}
	if err := store.Update(ctx, b); !errors.Is(err, ErrVersionConflict) {
		t.Fatalf("expected ErrVersionConflict, got %v", err)
	}
}

func TestMemoryStoreLazyExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(30 * time.Minute)

	current := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return current }

	if err := store.Create(ctx, &Progress{SessionID: "s1"}); err != nil {
		t.Fatal(err)
	}

	current = current.Add(29 * time.Minute)
	if _, err := store.Get(ctx, "s1"); err != nil {
		t.Fatalf("session expired early: %v", err)
	}

	// Get refreshed nothing; idle time counts from the last write.
	current = current.Add(32 * time.Minute)
	if _, err := store.Get(ctx, "s1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected expiry after idle timeout, got %v", err)
	}
}

func TestMemoryStoreSweep(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(30 * time.Minute)

	current := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return current }

	for _, id := range []string{"old1", "old2"} {
		if err := store.Create(ctx, &Progress{SessionID: id}); err != nil {
			t.Fatal(err)
		}
	}
	current = current.Add(20 * time.Minute)
	if err := store.Create(ctx, &Progress{SessionID: "fresh"}); err != nil {
		t.Fatal(err)
	}

	current = current.Add(15 * time.Minute)
	if removed := store.Sweep(current); removed != 2 {
		t.Fatalf("sweep removed %d, want 2", removed)
	}
	if _, err := store.Get(ctx, "fresh"); err != nil {
		t.Fatalf("fresh session swept: %v", err)
	}
}

func TestMemoryStoreIsolatesCallers(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(0)
	if err := store.Create(ctx, &Progress{SessionID: "s1"}); err != nil {
		t.Fatal(err)
	}

	got, _ := store.Get(ctx, "s1")
	got.HasGreeted = true // mutate the returned copy only

	fresh, _ := store.Get(ctx, "s1")
	if fresh.HasGreeted {
		t.Fatal("store leaked internal state to callers")
	}
}
