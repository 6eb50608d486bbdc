package kvstore

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if _, err := store.GetItem(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("get missing: err = %v, want ErrNotFound", err)
	}

	if err := store.SetItem(ctx, "a", "1"); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := store.GetItem(ctx, "a")
	if err != nil || got != "1" {
		t.Fatalf("get = %q, %v", got, err)
	}

	if err := store.RemoveItem(ctx, "a"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := store.GetItem(ctx, "a"); !errors.Is(err, ErrNotFound) {
		t.Errorf("get after remove: err = %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreClear(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	store.SetItem(ctx, "a", "1")
	store.SetItem(ctx, "b", "2")

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if store.Len() != 0 {
		t.Errorf("len after clear = %d", store.Len())
	}
}

func TestNamespacedIsolation(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	alice := Namespaced(store, "user:alice")
	bob := Namespaced(store, "user:bob")

	alice.SetItem(ctx, "@active_layout_id", "a1")
	bob.SetItem(ctx, "@active_layout_id", "b1")

	got, err := alice.GetItem(ctx, "@active_layout_id")
	if err != nil || got != "a1" {
		t.Fatalf("alice get = %q, %v", got, err)
	}
	got, err = bob.GetItem(ctx, "@active_layout_id")
	if err != nil || got != "b1" {
		t.Fatalf("bob get = %q, %v", got, err)
	}
}

func TestNamespacedClearOnlyRemovesOwnKeys(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	alice := Namespaced(store, "user:alice")
	bob := Namespaced(store, "user:bob")
	alice.SetItem(ctx, "k", "a")
	bob.SetItem(ctx, "k", "b")

	if err := alice.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}

	if _, err := alice.GetItem(ctx, "k"); !errors.Is(err, ErrNotFound) {
		t.Error("alice key survived clear")
	}
	if got, err := bob.GetItem(ctx, "k"); err != nil || got != "b" {
		t.Errorf("bob key lost: %q, %v", got, err)
	}
}
