package annotate

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func fixedClock(t *testing.T) {
	t.Helper()
	original := now
	now = func() time.Time { return time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC) }
	t.Cleanup(func() { now = original })
}

func TestStoreAddThenRemoveLastRestores(t *testing.T) {
	fixedClock(t)
	s := NewStore()
	s.Add(10, 20, "first")
	s.Add(30, 40, "second")
	before := s.Annotations()

	s.Add(50, 60, "third")
	s.RemoveLast()

	if diff := cmp.Diff(before, s.Annotations()); diff != "" {
		t.Fatalf("list changed after add+undo (-want +got):\n%s", diff)
	}
}

func TestStoreUndoKeepsPrefix(t *testing.T) {
	fixedClock(t)
	s := NewStore()
	s.Add(1, 1, "a")
	s.Add(2, 2, "b")
	s.Add(3, 3, "c")
	s.RemoveLast()
	got := s.Annotations()
	if len(got) != 2 {
		t.Fatalf("expected 2 annotations after undo, got %d", len(got))
	}
	if got[0].Label != "a" || got[1].Label != "b" {
		t.Fatalf("unexpected labels %q, %q", got[0].Label, got[1].Label)
	}
}

func TestStoreRemoveLastEmptyIsNoop(t *testing.T) {
	s := NewStore()
	s.RemoveLast()
	if s.Len() != 0 {
		t.Fatalf("expected empty store, got %d", s.Len())
	}
}

func TestStoreClear(t *testing.T) {
	s := NewStore()
	for i := 0; i < 5; i++ {
		s.Add(float64(i), float64(i), "pt")
	}
	s.Clear()
	if s.Len() != 0 {
		t.Fatalf("expected empty store after clear, got %d", s.Len())
	}
	// Clearing an already-empty store stays a no-op.
	s.Clear()
	if s.Len() != 0 {
		t.Fatalf("expected empty store after second clear, got %d", s.Len())
	}
}

func TestStoreEmptyLabelIgnored(t *testing.T) {
	s := NewStore()
	if s.Add(5, 5, "") {
		t.Fatal("Add with empty label reported success")
	}
	if s.Len() != 0 {
		t.Fatalf("empty label was stored, len = %d", s.Len())
	}
}

func TestStorePendingLifecycle(t *testing.T) {
	s := NewStore()
	if _, ok := s.Pending(); ok {
		t.Fatal("new store has a pending point")
	}
	s.SetPending(12.5, 7.25)
	pt, ok := s.Pending()
	if !ok || pt.X != 12.5 || pt.Y != 7.25 {
		t.Fatalf("Pending = %+v, %v", pt, ok)
	}

	// Empty label keeps the pending point so the user can retry.
	if s.Commit("") {
		t.Fatal("Commit with empty label reported success")
	}
	if _, ok := s.Pending(); !ok {
		t.Fatal("pending point dropped by failed commit")
	}

	if !s.Commit("corner") {
		t.Fatal("Commit failed")
	}
	if _, ok := s.Pending(); ok {
		t.Fatal("pending point survived commit")
	}
	got := s.Annotations()
	if len(got) != 1 || got[0].X != 12.5 || got[0].Y != 7.25 || got[0].Label != "corner" {
		t.Fatalf("unexpected annotation %+v", got)
	}

	s.SetPending(1, 2)
	s.ClearPending()
	if _, ok := s.Pending(); ok {
		t.Fatal("ClearPending left a pending point")
	}
	if s.Commit("late") {
		t.Fatal("Commit without pending point reported success")
	}
}

func TestStoreTimestampFormat(t *testing.T) {
	fixedClock(t)
	s := NewStore()
	s.Add(0, 0, "origin")
	got := s.Annotations()[0].Timestamp
	if got != "2025-03-14 09:26:53" {
		t.Fatalf("timestamp = %q", got)
	}
}
