package model

import (
	"testing"
	"time"

	"github.com/theirongolddev/moneytree/internal/stage"
)

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t.Fatalf("parse time %q: %v", s, err)
	}
	return ts
}

func TestGoalProgress(t *testing.T) {
	g := Goal{GoalAmount: 1000, CurrentAmount: 300}
	if got := g.Percent(); got != 30 {
		t.Errorf("Percent = %v, want 30", got)
	}
	if got := g.Stage().Stage; got != stage.Small {
		t.Errorf("Stage = %s, want small", got)
	}
	if got := g.Remaining(); got != 700 {
		t.Errorf("Remaining = %v, want 700", got)
	}

	over := Goal{GoalAmount: 100, CurrentAmount: 150}
	if got := over.Remaining(); got != 0 {
		t.Errorf("Remaining (overfunded) = %v, want 0", got)
	}
	if got := over.Stage().Stage; got != stage.Fruiting {
		t.Errorf("Stage (overfunded) = %s, want fruiting", got)
	}
}

func TestRecord_DoesNotAliasPriorGoal(t *testing.T) {
	at := mustTime(t, "2025-03-01T09:00:00Z")
	g := Goal{ID: "g1", History: make([]HistoryEntry, 0, 4)}
	g1 := g.Record(NewEntry("e1", at, 10, 10, ""))
	g2 := g1.Record(NewEntry("e2", at, 30, 20, "coins"))
	g1b := g1.Record(NewEntry("e3", at, 5, -5, ""))

	if len(g.History) != 0 {
		t.Fatalf("original history len = %d, want 0", len(g.History))
	}
	if len(g1.History) != 1 {
		t.Fatalf("g1 history len = %d, want 1", len(g1.History))
	}
	if g2.History[1].ID != "e2" || g1b.History[1].ID != "e3" {
		t.Fatalf("sibling snapshots share storage: g2=%s g1b=%s", g2.History[1].ID, g1b.History[1].ID)
	}
}

func TestSortedHistory_NewestFirst(t *testing.T) {
	h := []HistoryEntry{
		NewEntry("a", mustTime(t, "2025-01-01T00:00:00Z"), 1, 1, ""),
		NewEntry("b", mustTime(t, "2025-03-01T00:00:00Z"), 2, 1, ""),
		NewEntry("c", mustTime(t, "2025-02-01T00:00:00Z"), 3, 1, ""),
		NewEntry("d", mustTime(t, "2025-03-01T00:00:00Z"), 4, 1, ""),
	}
	got := SortedHistory(h)
	want := []string{"d", "b", "c", "a"}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("SortedHistory order = %v, want %v", ids(got), want)
		}
	}
	if h[0].ID != "a" {
		t.Fatal("SortedHistory modified its input")
	}
}

func ids(h []HistoryEntry) []string {
	out := make([]string, len(h))
	for i, e := range h {
		out[i] = e.ID
	}
	return out
}

func TestEntryChange(t *testing.T) {
	e := HistoryEntry{ID: "legacy", Amount: 100}
	if e.Change() != 0 {
		t.Errorf("Change() with no delta = %v, want 0", e.Change())
	}
	e = NewEntry("x", time.Time{}, 0, -150, "")
	if e.Change() != -150 {
		t.Errorf("Change() = %v, want -150", e.Change())
	}
}

func TestStateCloneIsDeep(t *testing.T) {
	at := mustTime(t, "2025-03-01T09:00:00Z")
	s := AppState{
		Trees:        []Goal{{ID: "g1", Name: "Trip", GoalAmount: 10, History: []HistoryEntry{NewEntry("e1", at, 1, 1, "")}}},
		ActiveTreeID: "g1",
	}
	c := s.Clone()
	if !c.Equal(s) {
		t.Fatal("clone not equal to original")
	}
	*c.Trees[0].History[0].Delta = 99
	c.Trees[0].Name = "Changed"
	if s.Trees[0].Name != "Trip" || s.Trees[0].History[0].Change() != 1 {
		t.Fatal("mutating clone changed the original")
	}
	if c.Equal(s) {
		t.Fatal("Equal did not detect the difference")
	}
}

func TestActive(t *testing.T) {
	s := AppState{Trees: []Goal{{ID: "a"}, {ID: "b"}}, ActiveTreeID: "b"}
	if g, ok := s.Active(); !ok || g.ID != "b" {
		t.Fatalf("Active() = %q, %v; want b, true", g.ID, ok)
	}
	s.ActiveTreeID = "gone"
	if _, ok := s.Active(); ok {
		t.Fatal("Active() resolved a dangling id")
	}
	if _, ok := EmptyState().Active(); ok {
		t.Fatal("Active() resolved on empty state")
	}
}

func TestNewIDUnique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		id := NewID()
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id %s after %d ids", id, i)
		}
		seen[id] = struct{}{}
	}
}
