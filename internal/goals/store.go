// Package goals implements the money tree state engine: an explicit store
// owning one immutable snapshot of every goal, with persistence injected.
package goals

import (
	"fmt"
	"sync"
	"time"

	"github.com/theirongolddev/moneytree/internal/model"
)

// Persister is the durable side of the store. Save is called after every
// successful mutation and must be synchronous.
type Persister interface {
	Load() (model.AppState, error)
	Save(model.AppState) error
}

// Config controls store construction.
type Config struct {
	Persister    Persister        // nil keeps state in memory only
	Now          func() time.Time // defaults to time.Now
	NewID        model.IDFunc     // defaults to model.NewID
	EventsBuffer int              // per-subscriber channel size
}

// Event is published to subscribers after each applied mutation.
type Event struct {
	Seq     int64
	Op      string
	At      time.Time
	State   model.AppState
	SaveErr error
}

// Store holds the current snapshot. Mutations are serialized; each one
// replaces the snapshot as a whole, then persists it, then notifies.
type Store struct {
	cfg Config

	mu      sync.Mutex
	state   model.AppState
	seq     int64
	lastErr error

	subMu     sync.Mutex
	nextSubID int
	subs      map[int]chan Event
}

// New returns a store seeded with initial.
func New(initial model.AppState, cfg Config) *Store {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.NewID == nil {
		cfg.NewID = model.NewID
	}
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 16
	}
	if initial.Trees == nil {
		initial.Trees = []model.Goal{}
	}
	return &Store{
		cfg:   cfg,
		state: initial.Clone(),
		subs:  make(map[int]chan Event),
	}
}

// Open loads the persisted snapshot and returns a store over it. A load
// error leaves the store empty; the error is still returned so the caller
// can report it.
func Open(cfg Config) (*Store, error) {
	initial := model.EmptyState()
	var loadErr error
	if cfg.Persister != nil {
		st, err := cfg.Persister.Load()
		if err != nil {
			loadErr = fmt.Errorf("loading snapshot: %w", err)
		} else {
			initial = st
		}
	}
	return New(initial, cfg), loadErr
}

// now truncates to milliseconds, the precision of the persisted timestamps.
func (s *Store) now() time.Time {
	return s.cfg.Now().UTC().Truncate(time.Millisecond)
}

// State returns a copy of the current snapshot.
func (s *Store) State() model.AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Active returns the active goal, if one resolves.
func (s *Store) Active() (model.Goal, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.state.Active()
	return g.Clone(), ok
}

// Goal returns the goal with id.
func (s *Store) Goal(id string) (model.Goal, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, _, ok := s.state.Find(id)
	return g.Clone(), ok
}

// LastSaveError returns the error from the most recent save, or nil.
func (s *Store) LastSaveError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *Store) apply(op string, m mutation) (model.AppState, error) {
	s.mu.Lock()
	next, changed, err := m(s.state, env{now: s.now(), newID: s.cfg.NewID})
	if err != nil || !changed {
		cur := s.state.Clone()
		s.mu.Unlock()
		return cur, err
	}

	s.state = next
	var saveErr error
	if s.cfg.Persister != nil {
		if err := s.cfg.Persister.Save(next); err != nil {
			saveErr = fmt.Errorf("%s: %w", op, err)
		}
	}
	s.lastErr = saveErr
	s.seq++
	// Publishing under mu keeps delivery in Seq order. Sends never block.
	s.publish(Event{Seq: s.seq, Op: op, At: s.now(), State: next.Clone(), SaveErr: saveErr})
	out := next.Clone()
	s.mu.Unlock()
	return out, saveErr
}

// CreateGoal adds a tree and makes it active. It returns the new id.
func (s *Store) CreateGoal(name string, goalAmount float64) (string, error) {
	var id string
	_, err := s.apply("create", createGoal(name, goalAmount, &id))
	if id == "" {
		return "", err
	}
	return id, err
}

// SelectGoal makes id the active tree. The id is not checked.
func (s *Store) SelectGoal(id string) (model.AppState, error) {
	return s.apply("select", selectGoal(id))
}

// ApplyDelta deposits (positive) or withdraws (negative) from a tree.
func (s *Store) ApplyDelta(id string, delta float64, memo string) (model.AppState, error) {
	return s.apply("apply-delta", applyDelta(id, delta, memo))
}

// SetAmount overwrites a tree's balance.
func (s *Store) SetAmount(id string, amount float64, memo string) (model.AppState, error) {
	return s.apply("set-amount", setAmount(id, amount, memo))
}

// UpdateGoalAmount changes a tree's target.
func (s *Store) UpdateGoalAmount(id string, goalAmount float64) (model.AppState, error) {
	return s.apply("update-goal", updateGoalAmount(id, goalAmount))
}

// RenameGoal changes a tree's name.
func (s *Store) RenameGoal(id, name string) (model.AppState, error) {
	return s.apply("rename", renameGoal(id, name))
}

// DeleteGoal removes a tree permanently.
func (s *Store) DeleteGoal(id string) (model.AppState, error) {
	return s.apply("delete", deleteGoal(id))
}

// ResetGoal clears a tree's balance and history, keeping name and target.
func (s *Store) ResetGoal(id string) (model.AppState, error) {
	return s.apply("reset", resetGoal(id))
}

// Replace swaps in a whole snapshot, as done by an import. A snapshot that
// breaks the per-tree rules returns a ValidationError and is not applied.
func (s *Store) Replace(st model.AppState) (model.AppState, error) {
	return s.apply("replace", replaceState(st))
}

// Subscribe returns a channel receiving an Event per applied mutation and a
// function that cancels the subscription and closes the channel. Delivery is
// non-blocking: when the buffer is full the event is dropped for that
// subscriber. Every event carries the full snapshot.
func (s *Store) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, s.cfg.EventsBuffer)

	s.subMu.Lock()
	s.nextSubID++
	id := s.nextSubID
	s.subs[id] = ch
	s.subMu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subs, id)
			close(ch)
			s.subMu.Unlock()
		})
	}
}

func (s *Store) publish(ev Event) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
