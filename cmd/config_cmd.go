// Package cmd implements the moneytree CLI commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/theirongolddev/moneytree/internal/config"
	"github.com/theirongolddev/moneytree/internal/store"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	dataFile := flagDataFile
	if dataFile == "" {
		dataFile = config.DataFile(cfg)
	}

	fmt.Println("  [General]")
	fmt.Printf("    Data file:     %s\n", dataFile)
	fmt.Printf("    History limit: %d\n", cfg.General.HistoryLimit)
	fmt.Println()

	fmt.Println("  [Display]")
	fmt.Printf("    Currency:      %q\n", cfg.Display.Currency)
	fmt.Printf("    Decimals:      %d\n", cfg.Display.Decimals)
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme:         %s\n", cfg.Appearance.Theme)
	fmt.Println()

	if _, err := os.Stat(dataFile); err != nil {
		fmt.Println("  Data: nothing saved yet")
		return nil
	}
	db, err := store.Open(dataFile)
	if err != nil {
		fmt.Printf("  Data: unavailable (%v)\n", err)
		return nil
	}
	defer db.Close()

	snaps := store.NewSnapshots(db, "")
	if at, ok, err := db.UpdatedAt(snaps.Key()); err == nil && ok {
		fmt.Printf("  Data: last saved %s\n", at.Local().Format("2006-01-02 15:04:05"))
	} else {
		fmt.Println("  Data: nothing saved yet")
	}
	if _, ok, err := db.Get(snaps.CorruptKey()); err == nil && ok {
		fmt.Printf("  Data: an unreadable snapshot is kept under %q\n", snaps.CorruptKey())
	}
	return nil
}
