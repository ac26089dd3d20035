package components

import (
	"strings"

	"github.com/theirongolddev/moneytree/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar. A non-empty warn replaces
// the key hints and is shown in the warning color.
func RenderStatusBar(width int, warn, right string) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface).
		Width(width)

	warnStyle := lipgloss.NewStyle().
		Foreground(t.Orange).
		Background(t.Surface).
		Bold(true)

	left := " [?]help  [n]ew  [a]dd  [w]ithdraw  [q]uit"
	leftW := lipgloss.Width(left)
	if warn != "" {
		left = warnStyle.Render(" ! " + warn)
		leftW = lipgloss.Width(left)
	}
	if right != "" {
		right += " "
	}

	// Pad middle
	padding := width - leftW - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}

	return style.Render(left + strings.Repeat(" ", padding) + right)
}
