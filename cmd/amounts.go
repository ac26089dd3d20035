package cmd

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/moneytree/internal/cli"
	"github.com/theirongolddev/moneytree/internal/model"
	"github.com/theirongolddev/moneytree/internal/stage"

	"github.com/spf13/cobra"
)

var flagMemo string

var addCmd = &cobra.Command{
	Use:   "add AMOUNT",
	Short: "Add savings to a tree",
	Args:  cobra.ExactArgs(1),
	RunE: withSession(func(s *session, args []string) error {
		return changeBy(s, args[0], 1)
	}),
}

var withdrawCmd = &cobra.Command{
	Use:   "withdraw AMOUNT",
	Short: "Take savings out of a tree (never below 0)",
	Args:  cobra.ExactArgs(1),
	RunE: withSession(func(s *session, args []string) error {
		return changeBy(s, args[0], -1)
	}),
}

var setCmd = &cobra.Command{
	Use:   "set AMOUNT",
	Short: "Overwrite a tree's saved amount",
	Args:  cobra.ExactArgs(1),
	RunE: withSession(func(s *session, args []string) error {
		g, err := s.resolve(flagTree)
		if err != nil {
			return err
		}
		amount, err := s.money.ParseAmount(args[0])
		if err != nil {
			return err
		}
		if _, err := s.goals.SetAmount(g.ID, amount, flagMemo); saved(err) != nil {
			return saved(err)
		}
		after, _ := s.goals.Goal(g.ID)
		reportChange(s, g, after)
		return nil
	}),
}

func init() {
	for _, c := range []*cobra.Command{addCmd, withdrawCmd, setCmd} {
		c.Flags().StringVarP(&flagMemo, "memo", "m", "", "Note recorded with the entry")
		c.Flags().StringVarP(&flagTree, "tree", "g", "", "Tree id or name (default: active tree)")
	}
	rootCmd.AddCommand(addCmd, withdrawCmd, setCmd)
}

// changeBy applies sign*|AMOUNT| to the selected tree.
func changeBy(s *session, raw string, sign float64) error {
	g, err := s.resolve(flagTree)
	if err != nil {
		return err
	}
	amount, err := s.money.ParseAmount(raw)
	if err != nil {
		return err
	}
	if amount == 0 {
		return errors.New("amount must be greater than zero")
	}
	if amount < 0 {
		other := "add"
		if sign > 0 {
			other = "withdraw"
		}
		return fmt.Errorf("amount must be positive; use `moneytree %s` instead", other)
	}
	if _, err := s.goals.ApplyDelta(g.ID, sign*amount, flagMemo); saved(err) != nil {
		return saved(err)
	}
	after, _ := s.goals.Goal(g.ID)
	if sign < 0 && amount > g.CurrentAmount {
		warnf("only %s was available; balance floored at 0", s.money.Format(g.CurrentAmount))
	}
	reportChange(s, g, after)
	return nil
}

func reportChange(s *session, before, after model.Goal) {
	pct := after.Percent()
	fmt.Printf("  %s  %s → %s  %s\n",
		after.Name,
		s.money.Format(before.CurrentAmount),
		s.money.Format(after.CurrentAmount),
		cli.RenderDelta(s.money, after.CurrentAmount-before.CurrentAmount))
	fmt.Println("  " + cli.RenderProgressBar(pct, 30))

	was, now := before.Stage(), after.Stage()
	switch {
	case now.Index > was.Index:
		fmt.Printf("  Your tree grew: %s → %s\n", was.Name, now.Name)
	case now.Index < was.Index:
		fmt.Printf("  Your tree shrank: %s → %s\n", was.Name, now.Name)
	}
	if now.Stage == stage.Fruiting && was.Stage != stage.Fruiting {
		fmt.Println("  Goal nearly reached. The tree is bearing fruit!")
	}
}
