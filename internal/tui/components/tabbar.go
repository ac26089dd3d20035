package components

import (
	"strings"

	"github.com/theirongolddev/moneytree/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Tab represents a single pane selector in the tab bar.
type Tab struct {
	Name string
}

// Tabs defines the panes, in tab-cycle order.
var Tabs = []Tab{
	{Name: "Trees"},
	{Name: "History"},
}

const tabSeparator = " "

// TabVisualWidth returns the rendered width of a tab label.
func TabVisualWidth(tab Tab, active bool) int {
	return lipgloss.Width(renderTab(tab, active))
}

func renderTab(tab Tab, active bool) string {
	t := theme.Active
	style := lipgloss.NewStyle().Padding(0, 1)
	if active {
		return style.
			Foreground(t.Accent).
			Background(t.SurfaceHover).
			Bold(true).
			Render(tab.Name)
	}
	return style.
		Foreground(t.TextMuted).
		Background(t.Surface).
		Render(tab.Name)
}

// RenderTabBar renders the tab bar with the given active index, followed by
// a right-aligned title.
func RenderTabBar(activeIdx int, width int, title string) string {
	t := theme.Active

	parts := make([]string, len(Tabs))
	for i, tab := range Tabs {
		parts[i] = renderTab(tab, i == activeIdx)
	}
	sep := lipgloss.NewStyle().Background(t.Surface).Render(tabSeparator)
	left := strings.Join(parts, sep)

	titleStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)
	right := titleStyle.Render(title + " ")

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	fill := lipgloss.NewStyle().Background(t.Surface).Render(strings.Repeat(" ", gap))
	return left + fill + right
}

// TabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes are derived from the same width rules used by RenderTabBar.
func TabAtX(x, activeIdx int) int {
	pos := 0
	for i, tab := range Tabs {
		w := TabVisualWidth(tab, i == activeIdx)
		if x >= pos && x < pos+w {
			return i
		}
		pos += w + lipgloss.Width(tabSeparator)
	}
	return -1
}
