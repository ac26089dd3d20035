package cmd

import (
	"fmt"

	"github.com/theirongolddev/moneytree/internal/tui"
	"github.com/theirongolddev/moneytree/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive TUI dashboard",
	Args:  cobra.NoArgs,
	RunE:  withSession(runTUI),
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(s *session, _ []string) error {
	theme.SetActive(s.cfg.Appearance.Theme)

	// Force TrueColor profile so all background styling produces ANSI codes
	// Without this, lipgloss may default to Ascii profile (no colors)
	lipgloss.SetColorProfile(termenv.TrueColor)

	app := tui.NewApp(s.goals, tui.Options{
		Currency:     s.money,
		HistoryLimit: s.cfg.General.HistoryLimit,
		LoadErr:      s.loadErr,
	})
	defer app.Close()

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	if err := s.goals.LastSaveError(); err != nil {
		return fmt.Errorf("last change was not saved: %w", err)
	}
	return nil
}
