// Package tui provides the interactive Bubble Tea dashboard for moneytree.
package tui

import (
	"errors"

	"github.com/theirongolddev/moneytree/internal/cli"
	"github.com/theirongolddev/moneytree/internal/goals"
	"github.com/theirongolddev/moneytree/internal/model"
	"github.com/theirongolddev/moneytree/internal/tui/components"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// StateMsg carries a store event into the Bubble Tea loop.
type StateMsg struct {
	Event goals.Event
}

// opResultMsg reports the outcome of a store call made from a command.
type opResultMsg struct {
	status string
	err    error
}

// Options configures the dashboard.
type Options struct {
	Currency     cli.Currency
	HistoryLimit int
	// LoadErr is shown once in the status bar when the snapshot could not
	// be loaded at startup.
	LoadErr error
}

const (
	paneTrees = iota
	paneHistory
)

// App is the root Bubble Tea model.
type App struct {
	store  *goals.Store
	events <-chan goals.Event
	cancel func()

	state model.AppState
	seq   int64 // Seq of the last applied event

	// UI state
	width         int
	height        int
	pane          int
	showHelp      bool
	historyScroll int
	status        string
	warn          string

	// Active huh form, if any
	form       *huh.Form
	formKind   formKind
	formVals   *formValues
	formTarget string

	currency     cli.Currency
	historyLimit int
}

const (
	minTerminalWidth = 70
	maxContentWidth  = 160
	minContentHeight = 5
)

// NewApp creates a dashboard over s and subscribes to its events. Call
// Close when the program exits.
func NewApp(s *goals.Store, opts Options) App {
	events, cancel := s.Subscribe()
	if opts.HistoryLimit <= 0 {
		opts.HistoryLimit = 20
	}

	a := App{
		store:        s,
		events:       events,
		cancel:       cancel,
		state:        s.State(),
		currency:     opts.Currency,
		historyLimit: opts.HistoryLimit,
	}
	if opts.LoadErr != nil {
		a.warn = "starting empty: " + opts.LoadErr.Error()
	}
	return a
}

// Close releases the store subscription.
func (a App) Close() {
	if a.cancel != nil {
		a.cancel()
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		waitForEvent(a.events),
	)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.form != nil {
			a.form = a.form.WithWidth(a.formWidth())
		}
		return a, nil

	case StateMsg:
		if msg.Event.Seq <= a.seq {
			return a, waitForEvent(a.events)
		}
		a.seq = msg.Event.Seq
		a.state = msg.Event.State
		if msg.Event.SaveErr != nil {
			a.warn = "not saved: " + msg.Event.SaveErr.Error()
		}
		a.clampScroll()
		return a, waitForEvent(a.events)

	case opResultMsg:
		switch {
		case msg.err == nil:
			a.status = msg.status
			a.warn = ""
		case errors.Is(msg.err, goals.ErrInvalid):
			a.warn = msg.err.Error()
		default:
			// The state change is kept in memory; only persistence failed.
			a.status = msg.status
			a.warn = msg.err.Error()
		}
		return a, nil

	case tea.MouseMsg:
		if a.form != nil || a.showHelp {
			return a, nil
		}
		return a.updateMouse(msg)

	case tea.KeyMsg:
		return a.updateKey(msg)
	}

	// Forward unhandled messages to the form (cursor blinks, etc.)
	if a.form != nil {
		return a.updateForm(msg)
	}
	return a, nil
}

func (a App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// Global: quit
	if key == "ctrl+c" {
		return a, tea.Quit
	}

	// Forms intercept all keys
	if a.form != nil {
		if key == "esc" {
			a.closeForm()
			a.status = "Cancelled"
			return a, nil
		}
		return a.updateForm(msg)
	}

	// Help toggle
	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}

	// Dismiss help
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	switch key {
	case "q":
		return a, tea.Quit
	case "tab":
		a.pane = (a.pane + 1) % len(components.Tabs)
		return a, nil
	case "shift+tab":
		a.pane = (a.pane - 1 + len(components.Tabs)) % len(components.Tabs)
		return a, nil
	case "n":
		return a.withForm(formNew)
	}

	if _, ok := a.state.Active(); !ok {
		return a, nil
	}

	switch key {
	case "j", "down":
		if a.pane == paneHistory {
			a.historyScroll++
			a.clampScroll()
			return a, nil
		}
		return a, a.selectOffset(1)
	case "k", "up":
		if a.pane == paneHistory {
			if a.historyScroll > 0 {
				a.historyScroll--
			}
			return a, nil
		}
		return a, a.selectOffset(-1)
	case "a":
		return a.withForm(formAdd)
	case "w":
		return a.withForm(formWithdraw)
	case "e":
		return a.withForm(formSet)
	case "g":
		return a.withForm(formGoal)
	case "r":
		return a.withForm(formRename)
	case "d":
		return a.withForm(formDelete)
	case "x":
		return a.withForm(formReset)
	}
	return a, nil
}

func (a App) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if a.historyScroll > 0 {
			a.historyScroll--
		}
	case tea.MouseButtonWheelDown:
		a.historyScroll++
		a.clampScroll()
	case tea.MouseButtonLeft:
		// Tab bar is the first line
		if msg.Y == 0 && msg.Action == tea.MouseActionPress {
			if p := components.TabAtX(msg.X, a.pane); p >= 0 {
				a.pane = p
			}
		}
	}
	return a, nil
}

func (a App) withForm(kind formKind) (tea.Model, tea.Cmd) {
	cmd := a.openForm(kind)
	return a, cmd
}

// selectOffset selects the tree delta positions away from the active one.
func (a App) selectOffset(delta int) tea.Cmd {
	_, idx, ok := a.state.Find(a.state.ActiveTreeID)
	if !ok {
		return nil
	}
	next := idx + delta
	if next < 0 || next >= len(a.state.Trees) {
		return nil
	}
	g := a.state.Trees[next]
	return a.run("Selected "+g.Name, func() error {
		_, err := a.store.SelectGoal(g.ID)
		return err
	})
}

// run calls fn off the update loop and reports its outcome.
func (a App) run(status string, fn func() error) tea.Cmd {
	return func() tea.Msg {
		return opResultMsg{status: status, err: fn()}
	}
}

func (a *App) clampScroll() {
	g, ok := a.state.Active()
	maxScroll := 0
	if ok {
		maxScroll = len(g.History) - 1
	}
	if maxScroll < 0 {
		maxScroll = 0
	}
	if a.historyScroll > maxScroll {
		a.historyScroll = maxScroll
	}
	if a.historyScroll < 0 {
		a.historyScroll = 0
	}
}

// waitForEvent blocks until the store publishes the next event. A closed
// subscription yields no message.
func waitForEvent(events <-chan goals.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return StateMsg{Event: ev}
	}
}
