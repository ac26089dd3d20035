package cmd

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/theirongolddev/moneytree/internal/cli"
	"github.com/theirongolddev/moneytree/internal/config"
	"github.com/theirongolddev/moneytree/internal/goals"
	"github.com/theirongolddev/moneytree/internal/model"
	"github.com/theirongolddev/moneytree/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagDataFile string
	flagQuiet    bool
)

var nowFunc = time.Now

var rootCmd = &cobra.Command{
	Use:           "moneytree",
	Short:         "Grow savings goals into money trees",
	Long:          "Track savings goals as trees that grow from seed to fruit as you save.",
	Args:          cobra.NoArgs,
	RunE:          runShowActive,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "  Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	log.SetFlags(0)
	rootCmd.PersistentFlags().StringVar(&flagDataFile, "data-file", "", "SQLite data file (default from config)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress warnings and progress output")
}

// session is the shared state every data command opens.
type session struct {
	cfg   config.Config
	path  string
	db    *store.DB
	snaps *store.Snapshots
	goals *goals.Store
	money cli.Currency

	// loadErr is set when a corrupt snapshot was set aside at startup.
	loadErr error
}

// openSession loads config, opens the data file and the goal store.
// A corrupt snapshot is preserved and the store starts empty; any other
// load failure aborts so existing data is never overwritten.
func openSession() (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		warnf("%v; using defaults", err)
		cfg = config.DefaultConfig()
	}

	path := flagDataFile
	if path == "" {
		path = config.DataFile(cfg)
	}

	db, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	snaps := store.NewSnapshots(db, "")
	gs, err := goals.Open(goals.Config{Persister: snaps})
	if err != nil && !errors.Is(err, store.ErrCorrupt) {
		_ = db.Close()
		return nil, err
	}
	if err != nil {
		log.Printf("moneytree: %v", err)
		warnf("saved data could not be read; starting empty (original kept under %q)", snaps.CorruptKey())
	}

	return &session{
		cfg:     cfg,
		path:    path,
		db:      db,
		snaps:   snaps,
		goals:   gs,
		money:   cli.Currency{Symbol: cfg.Display.Currency, Decimals: cfg.Display.Decimals},
		loadErr: err,
	}, nil
}

func (s *session) Close() {
	if err := s.db.Close(); err != nil {
		log.Printf("moneytree: closing %s: %v", s.path, err)
	}
}

// resolve finds the goal named by ref, or the active goal when ref is empty.
func (s *session) resolve(ref string) (model.Goal, error) {
	g, err := goals.Resolve(s.goals.State(), ref)
	if err == nil {
		return g, nil
	}
	if ref == "" && errors.Is(err, goals.ErrNotFound) {
		return model.Goal{}, errors.New("no active tree; plant one with `moneytree new NAME TARGET`")
	}
	return model.Goal{}, err
}

// withSession opens a session around fn.
func withSession(fn func(s *session, args []string) error) func(*cobra.Command, []string) error {
	return func(_ *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()
		return fn(s, args)
	}
}

// saved converts a mutation error into a CLI error. The store keeps the
// change in memory, but the process is about to exit, so it is lost.
func saved(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, goals.ErrInvalid) {
		return err
	}
	return fmt.Errorf("change was not saved: %w", err)
}

func warnf(format string, args ...any) {
	if flagQuiet {
		return
	}
	fmt.Fprintln(os.Stderr, cli.RenderWarning(fmt.Sprintf(format, args...)))
}

func infof(format string, args ...any) {
	if flagQuiet {
		return
	}
	fmt.Fprintf(os.Stderr, "  "+format+"\n", args...)
}
