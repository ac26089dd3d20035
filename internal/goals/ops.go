package goals

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/theirongolddev/moneytree/internal/model"
)

// env carries the clock reading and id source for one transition.
type env struct {
	now   time.Time
	newID model.IDFunc
}

// mutation derives the next snapshot from st. changed is false for a no-op
// (unknown id); st is then returned as is. st itself is never modified.
type mutation func(st model.AppState, e env) (next model.AppState, changed bool, err error)

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", invalid("name", "must not be empty")
	}
	return name, nil
}

func validateGoalAmount(amount float64) error {
	if !finite(amount) || amount <= 0 {
		return invalid("goal amount", "must be greater than zero")
	}
	return nil
}

// withGoal replaces the tree at index i in a copy of st.
func withGoal(st model.AppState, i int, g model.Goal) model.AppState {
	trees := slices.Clone(st.Trees)
	trees[i] = g
	return model.AppState{Trees: trees, ActiveTreeID: st.ActiveTreeID}
}

// updateGoal applies fn to the goal with id. Unknown ids are a no-op.
func updateGoal(id string, fn func(g model.Goal, e env) (model.Goal, error)) mutation {
	return func(st model.AppState, e env) (model.AppState, bool, error) {
		g, i, ok := st.Find(id)
		if !ok {
			return st, false, nil
		}
		next, err := fn(g, e)
		if err != nil {
			return st, false, err
		}
		next.UpdatedAt = e.now
		return withGoal(st, i, next), true, nil
	}
}

func createGoal(name string, goalAmount float64, created *string) mutation {
	return func(st model.AppState, e env) (model.AppState, bool, error) {
		name, err := validateName(name)
		if err != nil {
			return st, false, err
		}
		if err := validateGoalAmount(goalAmount); err != nil {
			return st, false, err
		}
		g := model.Goal{
			ID:         e.newID(),
			Name:       name,
			GoalAmount: goalAmount,
			CreatedAt:  e.now,
			UpdatedAt:  e.now,
			History:    []model.HistoryEntry{},
		}
		*created = g.ID
		trees := make([]model.Goal, len(st.Trees), len(st.Trees)+1)
		copy(trees, st.Trees)
		return model.AppState{Trees: append(trees, g), ActiveTreeID: g.ID}, true, nil
	}
}

func selectGoal(id string) mutation {
	return func(st model.AppState, _ env) (model.AppState, bool, error) {
		if st.ActiveTreeID == id {
			return st, false, nil
		}
		return model.AppState{Trees: st.Trees, ActiveTreeID: id}, true, nil
	}
}

// applyDelta floors the balance at zero but records the requested delta,
// so a ledger entry's delta can exceed the effective change.
func applyDelta(id string, delta float64, memo string) mutation {
	return updateGoal(id, func(g model.Goal, e env) (model.Goal, error) {
		if !finite(delta) {
			return g, invalid("amount", "must be a finite number")
		}
		amount := math.Max(0, g.CurrentAmount+delta)
		g.CurrentAmount = amount
		return g.Record(model.NewEntry(e.newID(), e.now, amount, delta, strings.TrimSpace(memo))), nil
	})
}

// setAmount overwrites the balance and records the difference from the
// previous balance as the entry's delta.
func setAmount(id string, amount float64, memo string) mutation {
	return updateGoal(id, func(g model.Goal, e env) (model.Goal, error) {
		if !finite(amount) || amount < 0 {
			return g, invalid("amount", "must not be negative")
		}
		delta := amount - g.CurrentAmount
		g.CurrentAmount = amount
		return g.Record(model.NewEntry(e.newID(), e.now, amount, delta, strings.TrimSpace(memo))), nil
	})
}

func updateGoalAmount(id string, goalAmount float64) mutation {
	return updateGoal(id, func(g model.Goal, _ env) (model.Goal, error) {
		if err := validateGoalAmount(goalAmount); err != nil {
			return g, err
		}
		g.GoalAmount = goalAmount
		return g, nil
	})
}

func renameGoal(id, name string) mutation {
	return updateGoal(id, func(g model.Goal, _ env) (model.Goal, error) {
		name, err := validateName(name)
		if err != nil {
			return g, err
		}
		g.Name = name
		return g, nil
	})
}

func resetGoal(id string) mutation {
	return updateGoal(id, func(g model.Goal, _ env) (model.Goal, error) {
		g.CurrentAmount = 0
		g.History = []model.HistoryEntry{}
		return g, nil
	})
}

// deleteGoal removes a tree. When it was active, the first remaining tree
// takes over, or nothing when none remain.
func deleteGoal(id string) mutation {
	return func(st model.AppState, _ env) (model.AppState, bool, error) {
		_, i, ok := st.Find(id)
		if !ok {
			return st, false, nil
		}
		trees := slices.Delete(slices.Clone(st.Trees), i, i+1)
		active := st.ActiveTreeID
		if active == id {
			active = ""
			if len(trees) > 0 {
				active = trees[0].ID
			}
		}
		return model.AppState{Trees: trees, ActiveTreeID: active}, true, nil
	}
}

// validateState applies the per-tree rules of the mutations to a whole
// snapshot. The active id is not checked.
func validateState(st model.AppState) error {
	seen := make(map[string]struct{}, len(st.Trees))
	for _, g := range st.Trees {
		if g.ID == "" {
			return invalid("tree id", "must not be empty")
		}
		if _, dup := seen[g.ID]; dup {
			return invalid("tree id", fmt.Sprintf("%q appears twice", g.ID))
		}
		seen[g.ID] = struct{}{}
		if strings.TrimSpace(g.Name) == "" {
			return invalid("name", fmt.Sprintf("tree %q has an empty name", g.ID))
		}
		if err := validateGoalAmount(g.GoalAmount); err != nil {
			return err
		}
		if !finite(g.CurrentAmount) || g.CurrentAmount < 0 {
			return invalid("amount", fmt.Sprintf("tree %q has a negative balance", g.ID))
		}
		for _, e := range g.History {
			if !finite(e.Amount) || e.Amount < 0 {
				return invalid("history amount", fmt.Sprintf("tree %q has a negative entry", g.ID))
			}
		}
	}
	return nil
}

func replaceState(next model.AppState) mutation {
	return func(st model.AppState, _ env) (model.AppState, bool, error) {
		if err := validateState(next); err != nil {
			return st, false, err
		}
		if next.Trees == nil {
			next.Trees = []model.Goal{}
		}
		return next.Clone(), true, nil
	}
}
