package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/theirongolddev/moneytree/internal/cli"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

type formKind int

const (
	formNone formKind = iota
	formNew
	formAdd
	formWithdraw
	formSet
	formGoal
	formRename
	formDelete
	formReset
)

// formValues is heap-allocated so huh keeps valid pointers while App is
// copied through Update.
type formValues struct {
	name    string
	amount  string
	memo    string
	confirm bool
}

func (a App) formWidth() int {
	w := a.width - 10
	if w > 60 {
		w = 60
	}
	if w < 30 {
		w = 30
	}
	return w
}

// amountValidator checks that s parses and satisfies ok.
func amountValidator(c cli.Currency, ok func(float64) bool, msg string) func(string) error {
	return func(s string) error {
		v, err := c.ParseAmount(s)
		if err != nil {
			return errors.New("enter a number")
		}
		if !ok(v) {
			return errors.New(msg)
		}
		return nil
	}
}

func nonEmpty(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("name cannot be empty")
	}
	return nil
}

func positive(v float64) bool    { return v > 0 }
func nonNegative(v float64) bool { return v >= 0 }

// openForm builds the form for kind against the active tree.
func (a *App) openForm(kind formKind) tea.Cmd {
	g, hasActive := a.state.Active()
	if kind != formNew && !hasActive {
		return nil
	}

	vals := &formValues{}
	c := a.currency
	memo := huh.NewInput().Title("Memo").Placeholder("optional").CharLimit(80).Value(&vals.memo)

	var group *huh.Group
	switch kind {
	case formNew:
		group = huh.NewGroup(
			huh.NewNote().Title("Plant a new money tree"),
			huh.NewInput().Title("Name").Placeholder("Retirement").CharLimit(60).
				Validate(nonEmpty).Value(&vals.name),
			huh.NewInput().Title("Goal amount").Placeholder("1,000,000").
				Validate(amountValidator(c, positive, "goal must be greater than 0")).Value(&vals.amount),
		)
	case formAdd:
		group = huh.NewGroup(
			huh.NewInput().Title("Add to "+g.Name).Placeholder("10,000").
				Validate(amountValidator(c, positive, "amount must be greater than 0")).Value(&vals.amount),
			memo,
		)
	case formWithdraw:
		group = huh.NewGroup(
			huh.NewInput().Title("Withdraw from "+g.Name).Placeholder("10,000").
				Validate(amountValidator(c, positive, "amount must be greater than 0")).Value(&vals.amount),
			memo,
		)
	case formSet:
		vals.amount = c.Format(g.CurrentAmount)
		group = huh.NewGroup(
			huh.NewInput().Title("Set saved amount of "+g.Name).
				Validate(amountValidator(c, nonNegative, "amount cannot be negative")).Value(&vals.amount),
			memo,
		)
	case formGoal:
		vals.amount = c.Format(g.GoalAmount)
		group = huh.NewGroup(
			huh.NewInput().Title("Goal amount for "+g.Name).
				Validate(amountValidator(c, positive, "goal must be greater than 0")).Value(&vals.amount),
		)
	case formRename:
		vals.name = g.Name
		group = huh.NewGroup(
			huh.NewInput().Title("Rename tree").CharLimit(60).Validate(nonEmpty).Value(&vals.name),
		)
	case formDelete:
		group = huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete %q?", g.Name)).
				Description("The tree and its history are removed.").
				Affirmative("Delete").
				Negative("Keep").
				Value(&vals.confirm),
		)
	case formReset:
		group = huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Reset %q?", g.Name)).
				Description("The saved amount returns to 0 and history is cleared.").
				Affirmative("Reset").
				Negative("Keep").
				Value(&vals.confirm),
		)
	default:
		return nil
	}

	a.form = huh.NewForm(group).WithShowHelp(true).WithWidth(a.formWidth())
	a.formKind = kind
	a.formVals = vals
	a.formTarget = g.ID
	return a.form.Init()
}

func (a *App) closeForm() {
	a.form = nil
	a.formKind = formNone
	a.formVals = nil
	a.formTarget = ""
}

func (a App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form = f
	}

	switch a.form.State {
	case huh.StateCompleted:
		submit := a.submitForm()
		a.closeForm()
		return a, submit
	case huh.StateAborted:
		a.closeForm()
		a.status = "Cancelled"
		return a, nil
	}
	return a, cmd
}

// submitForm turns the completed form into a store call.
func (a App) submitForm() tea.Cmd {
	v, id, c := a.formVals, a.formTarget, a.currency
	if v == nil {
		return nil
	}

	parse := func() (float64, bool) {
		amt, err := c.ParseAmount(v.amount)
		return amt, err == nil
	}

	switch a.formKind {
	case formNew:
		goal, ok := parse()
		if !ok {
			return nil
		}
		name := strings.TrimSpace(v.name)
		return a.run("Planted "+name, func() error {
			_, err := a.store.CreateGoal(name, goal)
			return err
		})
	case formAdd, formWithdraw:
		amt, ok := parse()
		if !ok {
			return nil
		}
		delta, verb := amt, "Added "
		if a.formKind == formWithdraw {
			delta, verb = -amt, "Withdrew "
		}
		memo := strings.TrimSpace(v.memo)
		return a.run(verb+c.Format(amt), func() error {
			_, err := a.store.ApplyDelta(id, delta, memo)
			return err
		})
	case formSet:
		amt, ok := parse()
		if !ok {
			return nil
		}
		memo := strings.TrimSpace(v.memo)
		return a.run("Set to "+c.Format(amt), func() error {
			_, err := a.store.SetAmount(id, amt, memo)
			return err
		})
	case formGoal:
		amt, ok := parse()
		if !ok {
			return nil
		}
		return a.run("Goal set to "+c.Format(amt), func() error {
			_, err := a.store.UpdateGoalAmount(id, amt)
			return err
		})
	case formRename:
		name := strings.TrimSpace(v.name)
		return a.run("Renamed to "+name, func() error {
			_, err := a.store.RenameGoal(id, name)
			return err
		})
	case formDelete:
		if !v.confirm {
			return nil
		}
		return a.run("Deleted", func() error {
			_, err := a.store.DeleteGoal(id)
			return err
		})
	case formReset:
		if !v.confirm {
			return nil
		}
		return a.run("Reset", func() error {
			_, err := a.store.ResetGoal(id)
			return err
		})
	}
	return nil
}
