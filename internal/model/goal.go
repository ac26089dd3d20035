// Package model defines the core data types for money trees.
package model

import (
	"math"
	"time"

	"github.com/theirongolddev/moneytree/internal/stage"
)

// Goal is one savings target, displayed as a tree.
type Goal struct {
	ID            string
	Name          string
	GoalAmount    float64
	CurrentAmount float64
	CreatedAt     time.Time
	UpdatedAt     time.Time
	History       []HistoryEntry
}

// Percent returns progress toward the goal. It may exceed 100.
func (g Goal) Percent() float64 {
	return stage.Percent(g.CurrentAmount, g.GoalAmount)
}

// Stage classifies the goal's current progress.
func (g Goal) Stage() stage.Info {
	return stage.Classify(g.Percent())
}

// Remaining returns the amount still needed, never negative.
func (g Goal) Remaining() float64 {
	return math.Max(0, g.GoalAmount-g.CurrentAmount)
}

// Clone returns a copy that shares no memory with g.
func (g Goal) Clone() Goal {
	c := g
	if g.History != nil {
		c.History = make([]HistoryEntry, len(g.History))
		for i, e := range g.History {
			c.History[i] = e.clone()
		}
	}
	return c
}

// Equal reports whether two goals hold the same values.
func (g Goal) Equal(o Goal) bool {
	if g.ID != o.ID || g.Name != o.Name ||
		g.GoalAmount != o.GoalAmount || g.CurrentAmount != o.CurrentAmount ||
		!g.CreatedAt.Equal(o.CreatedAt) || !g.UpdatedAt.Equal(o.UpdatedAt) ||
		len(g.History) != len(o.History) {
		return false
	}
	for i := range g.History {
		if !g.History[i].Equal(o.History[i]) {
			return false
		}
	}
	return true
}

// AppState is one snapshot of every tree plus the active selection.
// ActiveTreeID is empty when no tree is active.
type AppState struct {
	Trees        []Goal
	ActiveTreeID string
}

// EmptyState is the state of a fresh installation.
func EmptyState() AppState {
	return AppState{Trees: []Goal{}}
}

// Find returns the goal with id and its position in Trees.
func (s AppState) Find(id string) (Goal, int, bool) {
	for i, g := range s.Trees {
		if g.ID == id {
			return g, i, true
		}
	}
	return Goal{}, -1, false
}

// Active resolves ActiveTreeID. It reports false when nothing is selected
// or the selection points at a tree that no longer exists.
func (s AppState) Active() (Goal, bool) {
	if s.ActiveTreeID == "" {
		return Goal{}, false
	}
	g, _, ok := s.Find(s.ActiveTreeID)
	return g, ok
}

// Clone returns a deep copy of s.
func (s AppState) Clone() AppState {
	c := AppState{ActiveTreeID: s.ActiveTreeID, Trees: make([]Goal, len(s.Trees))}
	for i, g := range s.Trees {
		c.Trees[i] = g.Clone()
	}
	return c
}

// Equal reports whether two snapshots hold the same goals, history and selection.
func (s AppState) Equal(o AppState) bool {
	if s.ActiveTreeID != o.ActiveTreeID || len(s.Trees) != len(o.Trees) {
		return false
	}
	for i := range s.Trees {
		if !s.Trees[i].Equal(o.Trees[i]) {
			return false
		}
	}
	return true
}
