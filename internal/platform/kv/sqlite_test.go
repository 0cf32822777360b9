package kv_test

import (
	"context"
	"path/filepath"
	"testing"

	"taskdeck/internal/platform/kv"
)

func TestSQLiteStoreRoundTrip(t *testing.T) {
	t.Parallel()
	dbPath := filepath.Join(t.TempDir(), "state.db")
	store, err := kv.NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()
	ctx := context.Background()

	if _, found, err := store.Get(ctx, "auth-state"); err != nil || found {
		t.Fatalf("empty store must miss, found=%t err=%v", found, err)
	}

	if err := store.Put(ctx, "auth-state", `{"token":"tok"}`); err != nil {
		t.Fatalf("put: %v", err)
	}
	value, found, err := store.Get(ctx, "auth-state")
	if err != nil || !found || value != `{"token":"tok"}` {
		t.Fatalf("get after put mismatch: %q found=%t err=%v", value, found, err)
	}

	// Put on an existing key overwrites.
	if err := store.Put(ctx, "auth-state", `{"token":"tok2"}`); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	value, _, _ = store.Get(ctx, "auth-state")
	if value != `{"token":"tok2"}` {
		t.Fatalf("overwrite must win, got %q", value)
	}

	if err := store.Delete(ctx, "auth-state"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, found, _ := store.Get(ctx, "auth-state"); found {
		t.Fatalf("deleted key must miss")
	}
	// Deleting a missing key is not an error.
	if err := store.Delete(ctx, "auth-state"); err != nil {
		t.Fatalf("delete of missing key: %v", err)
	}
}

func TestSQLiteStoreSurvivesReopen(t *testing.T) {
	t.Parallel()
	dbPath := filepath.Join(t.TempDir(), "state.db")
	ctx := context.Background()

	store, err := kv.NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := store.Put(ctx, "chat-conversation-id", "c9"); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := kv.NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer reopened.Close()
	value, found, err := reopened.Get(ctx, "chat-conversation-id")
	if err != nil || !found || value != "c9" {
		t.Fatalf("value must survive reopen, got %q found=%t err=%v", value, found, err)
	}
}
