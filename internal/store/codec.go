package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/theirongolddev/moneytree/internal/model"
)

// ErrCorrupt matches every decode failure.
var ErrCorrupt = errors.New("corrupt snapshot")

// timeLayout matches JavaScript's Date.toISOString.
const timeLayout = "2006-01-02T15:04:05.000Z07:00"

// The document has no version field. Adding or renaming fields is a
// breaking change for existing installations.
type snapshotDoc struct {
	Trees        []treeDoc `json:"trees"`
	ActiveTreeID *string   `json:"activeTreeId"`
}

type treeDoc struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	GoalAmount    float64    `json:"goalAmount"`
	CurrentAmount float64    `json:"currentAmount"`
	CreatedAt     string     `json:"createdAt"`
	UpdatedAt     string     `json:"updatedAt"`
	History       []entryDoc `json:"history"`
}

type entryDoc struct {
	ID     string   `json:"id"`
	Date   string   `json:"date"`
	Amount float64  `json:"amount"`
	Change *float64 `json:"change,omitempty"`
	Memo   string   `json:"memo,omitempty"`
}

// Encode serializes a snapshot to the persisted JSON document.
func Encode(st model.AppState) ([]byte, error) {
	doc := snapshotDoc{Trees: make([]treeDoc, 0, len(st.Trees))}
	if st.ActiveTreeID != "" {
		id := st.ActiveTreeID
		doc.ActiveTreeID = &id
	}
	for _, g := range st.Trees {
		td := treeDoc{
			ID:            g.ID,
			Name:          g.Name,
			GoalAmount:    g.GoalAmount,
			CurrentAmount: g.CurrentAmount,
			CreatedAt:     formatTime(g.CreatedAt),
			UpdatedAt:     formatTime(g.UpdatedAt),
			History:       make([]entryDoc, 0, len(g.History)),
		}
		for _, e := range g.History {
			td.History = append(td.History, entryDoc{
				ID:     e.ID,
				Date:   formatTime(e.Timestamp),
				Amount: e.Amount,
				Change: e.Delta,
				Memo:   e.Memo,
			})
		}
		doc.Trees = append(doc.Trees, td)
	}
	return json.Marshal(doc)
}

// Decode parses and validates a persisted document. Any mismatch with the
// schema yields an error wrapping ErrCorrupt.
func Decode(data []byte) (model.AppState, error) {
	var doc snapshotDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return model.AppState{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if doc.Trees == nil {
		return model.AppState{}, fmt.Errorf("%w: missing trees", ErrCorrupt)
	}

	st := model.AppState{Trees: make([]model.Goal, 0, len(doc.Trees))}
	if doc.ActiveTreeID != nil {
		st.ActiveTreeID = *doc.ActiveTreeID
	}

	seen := make(map[string]struct{}, len(doc.Trees))
	for i, td := range doc.Trees {
		g, err := decodeTree(td)
		if err != nil {
			return model.AppState{}, fmt.Errorf("%w: tree %d: %v", ErrCorrupt, i, err)
		}
		if _, dup := seen[g.ID]; dup {
			return model.AppState{}, fmt.Errorf("%w: duplicate tree id %q", ErrCorrupt, g.ID)
		}
		seen[g.ID] = struct{}{}
		st.Trees = append(st.Trees, g)
	}
	return st, nil
}

func decodeTree(td treeDoc) (model.Goal, error) {
	if td.ID == "" {
		return model.Goal{}, errors.New("missing id")
	}
	if strings.TrimSpace(td.Name) == "" {
		return model.Goal{}, errors.New("empty name")
	}
	if !finite(td.GoalAmount) || td.GoalAmount <= 0 {
		return model.Goal{}, fmt.Errorf("goalAmount %v is not positive", td.GoalAmount)
	}
	if !finite(td.CurrentAmount) || td.CurrentAmount < 0 {
		return model.Goal{}, fmt.Errorf("currentAmount %v is negative", td.CurrentAmount)
	}
	created, err := parseTime(td.CreatedAt)
	if err != nil {
		return model.Goal{}, fmt.Errorf("createdAt: %w", err)
	}
	updated, err := parseTime(td.UpdatedAt)
	if err != nil {
		return model.Goal{}, fmt.Errorf("updatedAt: %w", err)
	}

	g := model.Goal{
		ID:            td.ID,
		Name:          td.Name,
		GoalAmount:    td.GoalAmount,
		CurrentAmount: td.CurrentAmount,
		CreatedAt:     created,
		UpdatedAt:     updated,
		History:       make([]model.HistoryEntry, 0, len(td.History)),
	}
	for j, ed := range td.History {
		if ed.ID == "" {
			return model.Goal{}, fmt.Errorf("history %d: missing id", j)
		}
		at, err := parseTime(ed.Date)
		if err != nil {
			return model.Goal{}, fmt.Errorf("history %d: date: %w", j, err)
		}
		if !finite(ed.Amount) || ed.Amount < 0 {
			return model.Goal{}, fmt.Errorf("history %d: amount %v is negative", j, ed.Amount)
		}
		g.History = append(g.History, model.HistoryEntry{
			ID:        ed.ID,
			Timestamp: at,
			Amount:    ed.Amount,
			Delta:     ed.Change,
			Memo:      ed.Memo,
		})
	}
	return g, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// parseTime accepts any RFC 3339 timestamp and truncates it to the
// millisecond precision that formatTime writes.
func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC().Truncate(time.Millisecond), nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
