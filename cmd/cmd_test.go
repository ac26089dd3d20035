package cmd

import (
	"path/filepath"
	"testing"

	"github.com/theirongolddev/moneytree/internal/model"
	"github.com/theirongolddev/moneytree/internal/store"
)

// runCLI executes the root command with a fresh set of flag values.
func runCLI(t *testing.T, dataFile string, args ...string) error {
	t.Helper()
	flagTree, flagMemo, flagYes, flagLimit, flagAll = "", "", false, 0, false
	rootCmd.SetArgs(append([]string{"--quiet", "--data-file", dataFile}, args...))
	return rootCmd.Execute()
}

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("MONEYTREE_DATA_FILE", "")
	return filepath.Join(dir, "moneytree.db")
}

func loadState(t *testing.T, dataFile string) model.AppState {
	t.Helper()
	db, err := store.Open(dataFile)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	st, err := store.NewSnapshots(db, "").Load()
	if err != nil {
		t.Fatal(err)
	}
	return st
}

func TestRetirementFlow(t *testing.T) {
	path := isolate(t)

	steps := [][]string{
		{"new", "Retirement", "¥10,000,000"},
		{"add", "50,000", "-m", "salary"},
		{"withdraw", "70000"},
	}
	for _, args := range steps {
		if err := runCLI(t, path, args...); err != nil {
			t.Fatalf("%v: %v", args, err)
		}
	}

	st := loadState(t, path)
	g, ok := st.Active()
	if !ok || g.Name != "Retirement" || g.CurrentAmount != 0 || len(g.History) != 2 {
		t.Fatalf("active = %+v, %v", g, ok)
	}
	if g.History[0].Memo != "salary" || g.History[1].Change() != -70000 || g.History[1].Amount != 0 {
		t.Fatalf("history = %+v", g.History)
	}
}

func TestTreeCommands(t *testing.T) {
	path := isolate(t)

	for _, args := range [][]string{
		{"new", "Trip", "300000"},
		{"new", "House", "5,000,000"},
		{"use", "trip"},
		{"set", "120,000"},
		{"target", "400000", "-g", "Trip"},
		{"rename", "Family trip"},
		{"add", "1000", "-g", "House"},
		{"reset", "House", "--yes"},
		{"list"},
		{"history", "-n", "1"},
		{"show", "House"},
	} {
		if err := runCLI(t, path, args...); err != nil {
			t.Fatalf("%v: %v", args, err)
		}
	}

	st := loadState(t, path)
	if len(st.Trees) != 2 {
		t.Fatalf("trees = %d", len(st.Trees))
	}
	trip, house := st.Trees[0], st.Trees[1]
	if st.ActiveTreeID != trip.ID {
		t.Errorf("active = %q, want trip", st.ActiveTreeID)
	}
	if trip.Name != "Family trip" || trip.CurrentAmount != 120000 || trip.GoalAmount != 400000 {
		t.Errorf("trip = %+v", trip)
	}
	if house.CurrentAmount != 0 || len(house.History) != 0 {
		t.Errorf("house after reset = %+v", house)
	}

	if err := runCLI(t, path, "delete", "--yes"); err != nil {
		t.Fatal(err)
	}
	st = loadState(t, path)
	if len(st.Trees) != 1 || st.ActiveTreeID != house.ID {
		t.Fatalf("after delete = %+v", st)
	}
}

func TestCommandErrors(t *testing.T) {
	path := isolate(t)

	if err := runCLI(t, path, "add", "100"); err == nil {
		t.Error("add with no trees should fail")
	}
	if err := runCLI(t, path, "new", "  ", "100"); err == nil {
		t.Error("blank name should fail")
	}
	if err := runCLI(t, path, "new", "Fund", "0"); err == nil {
		t.Error("zero goal should fail")
	}
	if err := runCLI(t, path, "new", "Fund", "lots"); err == nil {
		t.Error("non-numeric goal should fail")
	}
	if err := runCLI(t, path, "new", "Fund", "100"); err != nil {
		t.Fatal(err)
	}
	if err := runCLI(t, path, "add", "--", "-5"); err == nil {
		t.Error("negative add should fail")
	}
	if err := runCLI(t, path, "add", "0"); err == nil {
		t.Error("zero add should fail")
	}
	if err := runCLI(t, path, "withdraw", "0"); err == nil {
		t.Error("zero withdraw should fail")
	}
	if h := loadState(t, path).Trees[0].History; len(h) != 0 {
		t.Errorf("zero amounts wrote %d ledger entries", len(h))
	}
	if err := runCLI(t, path, "use", "nope"); err == nil {
		t.Error("unknown tree should fail")
	}
	if len(loadState(t, path).Trees) != 1 {
		t.Error("failed commands changed state")
	}
}

func TestExportImport(t *testing.T) {
	path := isolate(t)
	for _, args := range [][]string{
		{"new", "Fund", "100"},
		{"add", "40", "-m", "first"},
	} {
		if err := runCLI(t, path, args...); err != nil {
			t.Fatal(err)
		}
	}
	want := loadState(t, path)

	export := filepath.Join(t.TempDir(), "export.json")
	if err := runCLI(t, path, "export", export); err != nil {
		t.Fatal(err)
	}

	other := filepath.Join(t.TempDir(), "other.db")
	if err := runCLI(t, other, "new", "Scratch", "1"); err != nil {
		t.Fatal(err)
	}
	if err := runCLI(t, other, "import", export, "--yes"); err != nil {
		t.Fatal(err)
	}
	if got := loadState(t, other); !got.Equal(want) {
		t.Fatalf("imported state differs\nwant %+v\ngot  %+v", want, got)
	}
}

func TestUniquePrefixLen(t *testing.T) {
	ids := []string{
		"0190a1b2-c3d4-7e5f-8000-000000000001",
		"0190a1b2-c3d4-7e5f-8000-000000000002",
	}
	if n := uniquePrefixLen(ids, 8); n != len(ids[0]) {
		t.Errorf("uniquePrefixLen = %d, want %d", n, len(ids[0]))
	}
	if n := uniquePrefixLen([]string{"abcdefgh1", "zbcdefgh2"}, 8); n != 8 {
		t.Errorf("uniquePrefixLen = %d, want 8", n)
	}
	if n := uniquePrefixLen([]string{"abc"}, 8); n != 3 {
		t.Errorf("short id: got %d", n)
	}
}
