package session

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/phillip-england/dayflow/internal/models"
)

func TestSQLiteStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := OpenSQLiteStore(filepath.Join(t.TempDir(), "nested", "sessions.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer store.Close()

	if _, err := store.Load(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	want := Session{AccessToken: "a", RefreshToken: "r", Role: models.RoleAdmin, DisplayName: "Ada"}
	if err := store.Save(ctx, "sid", want); err != nil {
		t.Fatalf("save: %v", err)
	}
	want.AccessToken = "a2"
	if err := store.Save(ctx, "sid", want); err != nil {
		t.Fatalf("save again: %v", err)
	}
	got, err := store.Load(ctx, "sid")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}

	if err := store.Delete(ctx, "sid"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Load(ctx, "sid"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestSQLiteStoreDeleteStale(t *testing.T) {
	ctx := context.Background()
	store, err := OpenSQLiteStore(filepath.Join(t.TempDir(), "sessions.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer store.Close()

	if err := store.Save(ctx, "sid", Session{AccessToken: "a", Role: models.RoleEmployee}); err != nil {
		t.Fatalf("save: %v", err)
	}

	n, err := store.DeleteStale(ctx, time.Now().Add(-time.Hour))
	if err != nil || n != 0 {
		t.Fatalf("fresh session must survive the sweep, removed %d (%v)", n, err)
	}
	if _, err := store.Load(ctx, "sid"); err != nil {
		t.Fatalf("load after sweep: %v", err)
	}

	n, err = store.DeleteStale(ctx, time.Now().Add(time.Hour))
	if err != nil || n != 1 {
		t.Fatalf("expected one stale session removed, got %d (%v)", n, err)
	}
	if _, err := store.Load(ctx, "sid"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after sweep, got %v", err)
	}
}
