package goals

import (
	"errors"
	"testing"

	"github.com/theirongolddev/moneytree/internal/model"
	"github.com/theirongolddev/moneytree/internal/stage"
)

func sampleState() model.AppState {
	return model.AppState{
		Trees: []model.Goal{
			{ID: "0190a1b2-0001", Name: "Retirement", GoalAmount: 1000, CurrentAmount: 600},
			{ID: "0190a1b2-0002", Name: "Trip", GoalAmount: 200, CurrentAmount: 250},
			{ID: "0190ffff-0003", Name: "trip", GoalAmount: 100, CurrentAmount: 0},
		},
		ActiveTreeID: "0190a1b2-0002",
	}
}

func TestSummarize(t *testing.T) {
	sum := Summarize(sampleState())
	if sum.Goals != 3 || sum.Completed != 1 {
		t.Fatalf("Goals=%d Completed=%d, want 3 and 1", sum.Goals, sum.Completed)
	}
	if sum.TotalSaved != 850 || sum.TotalTarget != 1300 {
		t.Fatalf("TotalSaved=%v TotalTarget=%v", sum.TotalSaved, sum.TotalTarget)
	}
	if sum.ByStage[stage.Medium] != 1 || sum.ByStage[stage.Fruiting] != 1 || sum.ByStage[stage.Seed] != 1 {
		t.Fatalf("ByStage = %v", sum.ByStage)
	}

	empty := Summarize(model.EmptyState())
	if empty.Goals != 0 || empty.Percent != 0 {
		t.Fatalf("empty summary = %+v", empty)
	}
}

func TestResolve(t *testing.T) {
	st := sampleState()

	tests := []struct {
		ref     string
		wantID  string
		wantErr error
	}{
		{"", "0190a1b2-0002", nil},
		{"0190ffff-0003", "0190ffff-0003", nil},
		{"0190ff", "0190ffff-0003", nil},
		{"0190a1", "", ErrAmbiguous},
		{"retirement", "0190a1b2-0001", nil},
		{"TRIP", "", ErrAmbiguous},
		{"house", "", ErrNotFound},
	}
	for _, tt := range tests {
		g, err := Resolve(st, tt.ref)
		if tt.wantErr != nil {
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Resolve(%q) err = %v, want %v", tt.ref, err, tt.wantErr)
			}
			continue
		}
		if err != nil {
			t.Errorf("Resolve(%q) unexpected error: %v", tt.ref, err)
			continue
		}
		if g.ID != tt.wantID {
			t.Errorf("Resolve(%q) = %s, want %s", tt.ref, g.ID, tt.wantID)
		}
	}

	// Browser ids share long numeric prefixes; a name still resolves.
	imported := model.AppState{Trees: []model.Goal{
		{ID: "1712345678901-abc1234", Name: "Car"},
		{ID: "1712345678902-def5678", Name: "17"},
	}}
	if g, err := Resolve(imported, "17"); err != nil || g.ID != "1712345678902-def5678" {
		t.Errorf("Resolve(\"17\") = %s, %v; want the tree named 17", g.ID, err)
	}
	if _, err := Resolve(imported, "1712"); !errors.Is(err, ErrAmbiguous) {
		t.Errorf("Resolve(\"1712\") err = %v, want ErrAmbiguous", err)
	}

	st.ActiveTreeID = ""
	if _, err := Resolve(st, ""); !errors.Is(err, ErrNotFound) {
		t.Errorf("Resolve(\"\") with no active tree err = %v, want ErrNotFound", err)
	}
}
