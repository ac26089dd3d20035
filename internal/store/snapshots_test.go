package store

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/theirongolddev/moneytree/internal/goals"
	"github.com/theirongolddev/moneytree/internal/model"
)

var _ goals.Persister = (*Snapshots)(nil)

type failingKV struct{ err error }

func (f failingKV) Get(string) ([]byte, bool, error) { return nil, false, f.err }
func (f failingKV) Put(string, []byte) error         { return f.err }

func openTestDB(t *testing.T, path string) *DB {
	t.Helper()
	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open(%s): %v", path, err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestSnapshots_MissingIsEmpty(t *testing.T) {
	snaps := NewSnapshots(NewMemory(), "")
	if snaps.Key() != DefaultKey {
		t.Fatalf("Key() = %q, want %q", snaps.Key(), DefaultKey)
	}
	st, err := snaps.Load()
	if err != nil {
		t.Fatalf("Load on empty KV: %v", err)
	}
	if len(st.Trees) != 0 || st.ActiveTreeID != "" {
		t.Fatalf("state = %+v, want empty", st)
	}
}

func TestSnapshots_CorruptFallsBackAndPreserves(t *testing.T) {
	kv := NewMemory()
	raw := []byte(`{"trees": [ {"id": 1} ]`)
	if err := kv.Put(DefaultKey, raw); err != nil {
		t.Fatal(err)
	}
	snaps := NewSnapshots(kv, "")

	st, err := snaps.Load()
	var perr *PersistenceError
	if !errors.As(err, &perr) || perr.Op != "load" {
		t.Fatalf("Load err = %v, want *PersistenceError{Op: load}", err)
	}
	if !errors.Is(err, ErrCorrupt) {
		t.Fatalf("Load err = %v, want ErrCorrupt in chain", err)
	}
	if len(st.Trees) != 0 {
		t.Fatalf("state = %+v, want empty", st)
	}

	backup, ok, err := kv.Get(snaps.CorruptKey())
	if err != nil || !ok || string(backup) != string(raw) {
		t.Fatalf("corrupt blob not preserved: ok=%v err=%v data=%s", ok, err, backup)
	}
}

func TestSnapshots_KVFailure(t *testing.T) {
	boom := errors.New("io failure")
	snaps := NewSnapshots(failingKV{err: boom}, "custom")

	st, err := snaps.Load()
	if !errors.Is(err, boom) || len(st.Trees) != 0 {
		t.Fatalf("Load = %+v, %v", st, err)
	}

	err = snaps.Save(model.EmptyState())
	var perr *PersistenceError
	if !errors.As(err, &perr) || perr.Op != "save" || perr.Key != "custom" {
		t.Fatalf("Save err = %v, want *PersistenceError{save custom}", err)
	}
}

// Simulates a restart: the second DB handle must see what the first saved.
func TestSnapshots_SQLiteSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "moneytree.db")
	st := sampleState(t)

	db := openTestDB(t, path)
	if err := NewSnapshots(db, "").Save(st); err != nil {
		t.Fatal(err)
	}
	if _, ok, err := db.UpdatedAt(DefaultKey); err != nil || !ok {
		t.Fatalf("UpdatedAt = %v, %v", ok, err)
	}
	if err := db.Close(); err != nil {
		t.Fatal(err)
	}

	reopened := openTestDB(t, path)
	got, err := NewSnapshots(reopened, "").Load()
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(st) {
		t.Fatalf("reloaded state differs\nwant %+v\ngot  %+v", st, got)
	}
}

func TestDB_GetPutDelete(t *testing.T) {
	db := openTestDB(t, filepath.Join(t.TempDir(), "kv.db"))

	if _, ok, err := db.Get("k"); err != nil || ok {
		t.Fatalf("Get missing = %v, %v", ok, err)
	}
	if _, ok, err := db.UpdatedAt("k"); err != nil || ok {
		t.Fatalf("UpdatedAt missing = %v, %v", ok, err)
	}
	if err := db.Put("k", []byte("one")); err != nil {
		t.Fatal(err)
	}
	if err := db.Put("k", []byte("two")); err != nil {
		t.Fatal(err)
	}
	v, ok, err := db.Get("k")
	if err != nil || !ok || string(v) != "two" {
		t.Fatalf("Get = %q, %v, %v; want two", v, ok, err)
	}
	if err := db.Delete("k"); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := db.Get("k"); ok {
		t.Fatal("key still present after Delete")
	}
}

// End to end: every store mutation lands in SQLite before the call returns.
func TestGoalStoreOverSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "moneytree.db")
	db := openTestDB(t, path)

	s, err := goals.Open(goals.Config{Persister: NewSnapshots(db, "")})
	if err != nil {
		t.Fatal(err)
	}
	id, err := s.CreateGoal("Retirement", 10_000_000)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.ApplyDelta(id, 50000, "salary"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.ApplyDelta(id, -70000, ""); err != nil {
		t.Fatal(err)
	}

	second := openTestDB(t, path)
	again, err := goals.Open(goals.Config{Persister: NewSnapshots(second, "")})
	if err != nil {
		t.Fatal(err)
	}
	if !again.State().Equal(s.State()) {
		t.Fatalf("second process view differs\nwant %+v\ngot  %+v", s.State(), again.State())
	}
	g, ok := again.Active()
	if !ok || g.CurrentAmount != 0 || len(g.History) != 2 || g.History[1].Change() != -70000 {
		t.Fatalf("active goal = %+v", g)
	}
}
