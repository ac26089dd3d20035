package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/moneytree/internal/cli"
	"github.com/theirongolddev/moneytree/internal/goals"
	"github.com/theirongolddev/moneytree/internal/model"
	"github.com/theirongolddev/moneytree/internal/stage"
	"github.com/theirongolddev/moneytree/internal/tui/components"
	"github.com/theirongolddev/moneytree/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	if a.form != nil {
		return a.viewForm()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}

	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  moneytree needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)

	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewForm() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 2)

	hint := lipgloss.NewStyle().Foreground(t.TextDim).Render("esc to cancel")
	card := cardStyle.Render(a.form.View() + "\n" + hint)

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	sectionStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface).
		Bold(true)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Cyan).
		Background(t.Surface).
		Bold(true)

	descStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	dimStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")

	sections := []struct {
		title    string
		bindings []struct{ key, desc string }
	}{
		{"Navigation", []struct{ key, desc string }{
			{"j k", "Select tree / scroll history"},
			{"tab", "Switch pane"},
		}},
		{"Trees", []struct{ key, desc string }{
			{"n", "Plant a new tree"},
			{"a w", "Add / Withdraw"},
			{"e", "Set saved amount"},
			{"g", "Change goal"},
			{"r", "Rename"},
			{"x", "Reset (clears history)"},
			{"d", "Delete"},
		}},
		{"General", []struct{ key, desc string }{
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}
	for i, sec := range sections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(sectionStyle.Render(sec.title))
		b.WriteString("\n")
		for _, bind := range sec.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-6s", bind.key)),
				descStyle.Render(bind.desc))
		}
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	card := cardStyle.Render(b.String())

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := components.RenderTabBar(a.pane, w, "◈ moneytree")

	right := a.status
	if sum := goals.Summarize(a.state); sum.Goals > 0 {
		if right != "" {
			right += "  ·  "
		}
		right += cli.FormatCount(sum.Goals, "tree", "trees")
	}
	statusBar := components.RenderStatusBar(w, a.warn, right)

	headerH := lipgloss.Height(header)
	statusH := lipgloss.Height(statusBar)
	contentH := h - headerH - statusH
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	var content string
	if active, ok := a.state.Active(); ok {
		content = a.renderDashboard(active, cw, contentH)
	} else if len(a.state.Trees) > 0 {
		content = a.renderNoSelection(cw)
	} else {
		content = a.renderWelcome(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	return lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
}

func (a App) renderWelcome(cw int) string {
	t := theme.Active
	title := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)
	muted := lipgloss.NewStyle().Foreground(t.TextMuted)
	accent := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)

	body := components.TreeArt(0) + "\n\n" +
		title.Render("Grow your savings into a tree") + "\n" +
		muted.Render("Set a goal and watch it grow from seed to fruit.") + "\n\n" +
		accent.Render("Press n to plant your first tree")

	width := cw / 2
	if width < 50 {
		width = 50
	}
	return "\n" + components.ContentCard("", body, width)
}

func (a App) renderNoSelection(cw int) string {
	return a.renderTreeList(cw/3) + "\n" +
		lipgloss.NewStyle().Foreground(theme.Active.TextMuted).Render("  Select a tree with j/k")
}

func (a App) renderDashboard(g model.Goal, cw, contentH int) string {
	leftW := cw / 3
	if leftW < 24 {
		leftW = 24
	}
	rightW := cw - leftW

	left := a.renderTreeList(leftW)
	treeCard := a.renderTreeCard(g, rightW)

	histH := contentH - lipgloss.Height(treeCard)
	right := treeCard
	if histH >= 4 {
		right = lipgloss.JoinVertical(lipgloss.Left, treeCard, a.renderHistory(g, rightW, histH))
	}
	return components.CardRow([]string{left, right})
}

func (a App) renderTreeList(outerW int) string {
	t := theme.Active
	inner := components.CardInnerWidth(outerW)

	selected := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)
	normal := lipgloss.NewStyle().Foreground(t.TextPrimary)
	muted := lipgloss.NewStyle().Foreground(t.TextMuted)

	var b strings.Builder
	for i, g := range a.state.Trees {
		if i > 0 {
			b.WriteString("\n")
		}
		pct := cli.FormatPercent(g.Percent())
		nameW := inner - lipgloss.Width(pct) - 3
		name := truncStr(g.Name, nameW)
		pad := inner - 2 - lipgloss.Width(name) - lipgloss.Width(pct)
		if pad < 1 {
			pad = 1
		}
		if g.ID == a.state.ActiveTreeID {
			b.WriteString(selected.Render("▸ " + name))
		} else {
			b.WriteString(normal.Render("  " + name))
		}
		b.WriteString(strings.Repeat(" ", pad))
		b.WriteString(lipgloss.NewStyle().Foreground(components.ColorForPct(g.Percent())).Render(pct))
	}

	sum := goals.Summarize(a.state)
	b.WriteString("\n\n")
	b.WriteString(muted.Render(fmt.Sprintf("%s of %s", a.currency.Format(sum.TotalSaved), a.currency.Format(sum.TotalTarget))))
	if sum.Completed > 0 {
		b.WriteString("\n")
		b.WriteString(muted.Render(cli.FormatCount(sum.Completed, "goal", "goals") + " reached"))
	}

	title := "Trees"
	if a.pane == paneTrees {
		return components.FocusedCard(title, b.String(), outerW)
	}
	return components.ContentCard(title, b.String(), outerW)
}

func (a App) renderTreeCard(g model.Goal, outerW int) string {
	t := theme.Active
	inner := components.CardInnerWidth(outerW)
	pct := g.Percent()
	info := g.Stage()

	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Bold(true)
	stageStyle := lipgloss.NewStyle().Foreground(components.ColorForPct(pct)).Bold(true)
	muted := lipgloss.NewStyle().Foreground(t.TextMuted)

	var side strings.Builder
	side.WriteString(nameStyle.Render(g.Name))
	side.WriteString("\n")
	side.WriteString(stageStyle.Render(fmt.Sprintf("%d. %s", info.Index+1, info.Name)))
	side.WriteString("  ")
	side.WriteString(components.StageDots(pct))
	side.WriteString("\n")
	if next, ok := stage.Next(info); ok {
		side.WriteString(muted.Render(fmt.Sprintf("%.1f%% to %s", stage.ToNext(pct), next.Name)))
	} else {
		side.WriteString(muted.Render("Fully grown"))
	}
	side.WriteString("\n\n")
	barW := inner - 16
	if barW < 10 {
		barW = 10
	}
	side.WriteString(components.ProgressBar(pct, barW))

	art := components.TreeArt(pct)
	top := lipgloss.JoinHorizontal(lipgloss.Top, art, "   ", side.String())

	metrics := components.MetricCardRow([]components.Metric{
		{Label: "Saved", Value: a.currency.Format(g.CurrentAmount)},
		{Label: "Goal", Value: a.currency.Format(g.GoalAmount)},
		{Label: "Remaining", Value: a.currency.Format(g.Remaining()), Note: cli.FormatPercent(pct) + " reached"},
	}, inner)

	return components.ContentCard("", top+"\n"+metrics, outerW)
}

func (a App) renderHistory(g model.Goal, outerW, outerH int) string {
	t := theme.Active
	inner := components.CardInnerWidth(outerW)

	muted := lipgloss.NewStyle().Foreground(t.TextMuted)
	dim := lipgloss.NewStyle().Foreground(t.TextDim)
	value := lipgloss.NewStyle().Foreground(t.TextPrimary)
	plus := lipgloss.NewStyle().Foreground(t.Green)
	minus := lipgloss.NewStyle().Foreground(t.Red)

	var b strings.Builder
	if len(g.History) == 0 {
		b.WriteString(muted.Render("No history yet"))
		b.WriteString("\n")
		b.WriteString(dim.Render("Add an amount and it will be recorded here"))
	} else {
		b.WriteString(components.Sparkline(components.BalanceSeries(g.History, inner), components.ColorForPct(g.Percent())))
		b.WriteString("\n")

		rows := outerH - 5 // border, title, sparkline, footer
		if rows > a.historyLimit {
			rows = a.historyLimit
		}
		if rows < 1 {
			rows = 1
		}

		sorted := model.SortedHistory(g.History)
		start := a.historyScroll
		if start > len(sorted)-1 {
			start = len(sorted) - 1
		}
		end := start + rows
		if end > len(sorted) {
			end = len(sorted)
		}
		for i, e := range sorted[start:end] {
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString(dim.Render(cli.FormatTime(e.Timestamp)))
			b.WriteString("  ")
			b.WriteString(value.Render(fmt.Sprintf("%14s", a.currency.Format(e.Amount))))
			if d := e.Change(); d != 0 {
				style := plus
				if d < 0 {
					style = minus
				}
				b.WriteString("  ")
				b.WriteString(style.Render(fmt.Sprintf("%12s", a.currency.Signed(d))))
			} else {
				b.WriteString(strings.Repeat(" ", 14))
			}
			if e.Memo != "" {
				used := 16 + 2 + 14 + 14 + 2
				b.WriteString("  ")
				b.WriteString(muted.Render(truncStr(e.Memo, inner-used)))
			}
		}
		if len(sorted) > end || start > 0 {
			b.WriteString("\n")
			b.WriteString(dim.Render(fmt.Sprintf("%d-%d of %d", start+1, end, len(sorted))))
		}
	}

	title := "History"
	if a.pane == paneHistory {
		return components.FocusedCard(title, b.String(), outerW)
	}
	return components.ContentCard(title, b.String(), outerW)
}

// ─── Helpers ────────────────────────────────────────────────────

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	padding := strings.Repeat("\n", h-len(lines))
	return s + padding
}
