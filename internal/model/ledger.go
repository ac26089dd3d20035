package model

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// HistoryEntry records one balance-changing event. Entries are immutable;
// a ledger only ever grows, or is cleared as a whole by a reset.
type HistoryEntry struct {
	ID        string
	Timestamp time.Time
	Amount    float64  // balance after the event
	Delta     *float64 // requested signed change; nil when not recorded
	Memo      string
}

// Change returns the recorded delta, or 0 when none was recorded.
func (e HistoryEntry) Change() float64 {
	if e.Delta == nil {
		return 0
	}
	return *e.Delta
}

// Equal reports whether two entries hold the same values.
func (e HistoryEntry) Equal(o HistoryEntry) bool {
	if e.ID != o.ID || !e.Timestamp.Equal(o.Timestamp) || e.Amount != o.Amount || e.Memo != o.Memo {
		return false
	}
	if (e.Delta == nil) != (o.Delta == nil) {
		return false
	}
	return e.Delta == nil || *e.Delta == *o.Delta
}

func (e HistoryEntry) clone() HistoryEntry {
	if e.Delta != nil {
		d := *e.Delta
		e.Delta = &d
	}
	return e
}

// NewEntry builds a ledger entry. The caller supplies the already computed
// resulting balance and the signed delta.
func NewEntry(id string, at time.Time, amount, delta float64, memo string) HistoryEntry {
	return HistoryEntry{
		ID:        id,
		Timestamp: at,
		Amount:    amount,
		Delta:     &delta,
		Memo:      memo,
	}
}

// Record returns a copy of g with e appended to its ledger.
func (g Goal) Record(e HistoryEntry) Goal {
	history := make([]HistoryEntry, len(g.History), len(g.History)+1)
	copy(history, g.History)
	g.History = append(history, e)
	return g
}

// SortedHistory returns the ledger newest first. Entries sharing a timestamp
// keep reverse insertion order. The input is not modified.
func SortedHistory(history []HistoryEntry) []HistoryEntry {
	out := slices.Clone(history)
	slices.Reverse(out)
	slices.SortStableFunc(out, func(a, b HistoryEntry) int {
		return b.Timestamp.Compare(a.Timestamp)
	})
	return out
}

// IDFunc produces unique identifiers for goals and ledger entries.
type IDFunc func() string

// NewID returns a time-ordered UUIDv7, falling back to a random UUIDv4 if the
// clock source fails.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
