package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRecordAndRecent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	runs := []*Run{
		{RunID: "r1", Pipeline: "financial-advisor", Kind: "financial", Success: true, ReportPath: "/out/a.md", Duration: 42 * time.Second, StartedAt: base},
		{RunID: "r2", Pipeline: "web-researcher", Kind: "research", Success: false, Error: "model call failed", Duration: 3 * time.Second, StartedAt: base.Add(time.Minute)},
		{RunID: "r3", Pipeline: "financial-advisor", Kind: "financial", Success: true, Duration: 40 * time.Second, StartedAt: base.Add(2 * time.Minute)},
	}
	for _, run := range runs {
		if err := store.Record(ctx, run); err != nil {
			t.Fatalf("Record(%s): %v", run.RunID, err)
		}
		if run.ID == 0 {
			t.Errorf("Record(%s): ID not assigned", run.RunID)
		}
	}

	recent, err := store.Recent(ctx, "", 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("Recent returned %d runs, want 3", len(recent))
	}
	if recent[0].RunID != "r3" || recent[2].RunID != "r1" {
		t.Errorf("Recent order wrong: got %s..%s, want r3..r1", recent[0].RunID, recent[2].RunID)
	}
	if recent[1].Error != "model call failed" {
		t.Errorf("error message not preserved: %q", recent[1].Error)
	}
	if recent[2].Duration != 42*time.Second {
		t.Errorf("duration round-trip: got %v, want 42s", recent[2].Duration)
	}
}

func TestRecentFiltersByKind(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	now := time.Now().UTC()
	for i, kind := range []string{"financial", "research", "financial"} {
		run := &Run{RunID: string(rune('a' + i)), Pipeline: "p", Kind: kind, Success: true, StartedAt: now.Add(time.Duration(i) * time.Second)}
		if err := store.Record(ctx, run); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	financial, err := store.Recent(ctx, "financial", 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(financial) != 2 {
		t.Errorf("Recent(financial) returned %d runs, want 2", len(financial))
	}
	for _, run := range financial {
		if run.Kind != "financial" {
			t.Errorf("filter leaked kind %q", run.Kind)
		}
	}
}

func TestRecentLimit(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	now := time.Now().UTC()
	for i := 0; i < 5; i++ {
		run := &Run{RunID: "x", Pipeline: "p", Kind: "financial", Success: true, StartedAt: now.Add(time.Duration(i) * time.Second)}
		if err := store.Record(ctx, run); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	recent, err := store.Recent(ctx, "", 2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recent) != 2 {
		t.Errorf("limit ignored: got %d runs", len(recent))
	}
}

func TestPrune(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	old := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	recent := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	for _, started := range []time.Time{old, old.Add(time.Hour), recent} {
		run := &Run{RunID: "x", Pipeline: "p", Kind: "financial", Success: true, StartedAt: started}
		if err := store.Record(ctx, run); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	removed, err := store.Prune(ctx, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if removed != 2 {
		t.Errorf("Prune removed %d runs, want 2", removed)
	}

	remaining, err := store.Recent(ctx, "", 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(remaining) != 1 {
		t.Errorf("%d runs remain, want 1", len(remaining))
	}
}
