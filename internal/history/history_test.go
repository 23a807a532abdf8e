package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

func TestRecordAndRecent(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	entries := []Entry{
		{Capacity: 10, ItemCount: 4, Status: "ok", OptimalValue: 13, SelectedCount: 3, DurationMs: 1},
		{Capacity: -1, ItemCount: 1, Status: "invalid_capacity"},
		{Capacity: 9, ItemCount: 4, Status: "ok", OptimalValue: 17, SelectedCount: 2, DurationMs: 2},
	}
	for _, entry := range entries {
		if err := store.Record(ctx, entry); err != nil {
			t.Fatalf("Record returned error: %v", err)
		}
	}

	got, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent returned error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(got))
	}

	// Newest first.
	if got[0].OptimalValue != 17 || got[0].Status != "ok" {
		t.Fatalf("unexpected newest entry: %+v", got[0])
	}
	if got[1].Status != "invalid_capacity" {
		t.Fatalf("unexpected middle entry: %+v", got[1])
	}
	if got[0].CreatedAt.IsZero() {
		t.Fatalf("expected created_at to round-trip")
	}
}

func TestRecentHonoursLimit(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		entry := Entry{Capacity: i, ItemCount: 1, Status: "ok", CreatedAt: time.Now().UTC()}
		if err := store.Record(ctx, entry); err != nil {
			t.Fatalf("Record returned error: %v", err)
		}
	}

	got, err := store.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent returned error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got[0].Capacity != 4 || got[1].Capacity != 3 {
		t.Fatalf("expected newest-first ordering, got %+v", got)
	}
}

func TestRecentDefaultsLimit(t *testing.T) {
	store := openTestStore(t)

	got, err := store.Recent(context.Background(), 0)
	if err != nil {
		t.Fatalf("Recent returned error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty history, got %d entries", len(got))
	}
}
