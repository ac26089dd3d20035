package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/theirongolddev/moneytree/internal/config"
	"github.com/theirongolddev/moneytree/internal/tui/theme"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Configure currency, theme and data file",
	Args:  cobra.NoArgs,
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

var currencyOptions = []string{"¥", "$", "€", "£", "₩", "₹"}

func runSetup(_ *cobra.Command, _ []string) error {
	// Load existing config or defaults
	cfg, _ := config.Load()

	decimals := strconv.Itoa(cfg.Display.Decimals)
	limit := strconv.Itoa(cfg.General.HistoryLimit)

	currencies := make([]huh.Option[string], 0, len(currencyOptions)+1)
	for _, c := range currencyOptions {
		currencies = append(currencies, huh.NewOption(c, c))
	}
	currencies = append(currencies, huh.NewOption("(none)", ""))

	themes := make([]huh.Option[string], 0, len(theme.All))
	for _, name := range theme.Names() {
		themes = append(themes, huh.NewOption(name, name))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to moneytree").
				Description("Grow your savings goals from seed to fruit."),
			huh.NewSelect[string]().
				Title("Currency symbol").
				Options(currencies...).
				Value(&cfg.Display.Currency),
			huh.NewInput().
				Title("Decimal places").
				Validate(intBetween(0, 4)).
				Value(&decimals),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themes...).
				Value(&cfg.Appearance.Theme),
			huh.NewInput().
				Title("History rows").
				Validate(intBetween(1, 500)).
				Value(&limit),
			huh.NewInput().
				Title("Data file").
				Description("Leave blank for "+config.DefaultDataFile()).
				Value(&cfg.General.DataFile),
		),
	)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			infof("Setup cancelled, nothing saved")
			return nil
		}
		return fmt.Errorf("setup form: %w", err)
	}

	cfg.Display.Decimals, _ = strconv.Atoi(decimals)
	cfg.General.HistoryLimit, _ = strconv.Atoi(limit)

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.ConfigPath())
	fmt.Println("  Run `moneytree setup` anytime to reconfigure.")
	fmt.Println()

	return nil
}

func intBetween(lo, hi int) func(string) error {
	return func(s string) error {
		n, err := strconv.Atoi(s)
		if err != nil || n < lo || n > hi {
			return fmt.Errorf("enter a number from %d to %d", lo, hi)
		}
		return nil
	}
}
