package components

import (
	"strings"

	"github.com/theirongolddev/moneytree/internal/cli"
	"github.com/theirongolddev/moneytree/internal/stage"
	"github.com/theirongolddev/moneytree/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// ColorForPct returns the growth color for a 0-100 progress value.
func ColorForPct(pct float64) lipgloss.Color {
	t := theme.Active
	switch p := stage.Clamp(pct); {
	case p >= 95:
		return t.GreenBright
	case p >= 75:
		return t.Magenta
	case p >= 30:
		return t.Green
	case p >= 5:
		return t.Accent
	default:
		return t.Yellow
	}
}

// ProgressBar renders a goal progress bar. pct is 0-100 and may exceed 100;
// the bar caps at full while the label keeps the raw value.
func ProgressBar(pct float64, width int) string {
	t := theme.Active
	color := ColorForPct(pct)

	barW := width - 8 // room for " 100.0%"
	if barW < 4 {
		barW = 4
	}

	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(barW),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	pctStyle := lipgloss.NewStyle().Foreground(color).Bold(true)

	return bar.ViewAs(stage.Clamp(pct)/100) + " " + pctStyle.Render(cli.FormatPercent(pct))
}

// StageDots renders the numbered stage indicators; reached stages are lit.
func StageDots(pct float64) string {
	t := theme.Active
	lit := lipgloss.NewStyle().Foreground(ColorForPct(pct)).Bold(true)
	dim := lipgloss.NewStyle().Foreground(t.TextDim)

	all := stage.All()
	parts := make([]string, len(all))
	for i, info := range all {
		if info.Reached(pct) {
			parts[i] = lit.Render("●")
		} else {
			parts[i] = dim.Render("○")
		}
	}
	return strings.Join(parts, " ")
}

// TreeArt renders the ASCII tree for a progress value in its growth color.
func TreeArt(pct float64) string {
	style := lipgloss.NewStyle().Foreground(ColorForPct(pct))
	lines := strings.Split(cli.StageArt(stage.Classify(pct).Stage), "\n")
	for i, l := range lines {
		lines[i] = style.Render(l)
	}
	return strings.Join(lines, "\n")
}
