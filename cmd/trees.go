package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/theirongolddev/moneytree/internal/cli"
	"github.com/theirongolddev/moneytree/internal/goals"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var (
	flagTree string
	flagYes  bool
)

var newCmd = &cobra.Command{
	Use:   "new NAME TARGET",
	Short: "Plant a new tree and make it active",
	Args:  cobra.ExactArgs(2),
	RunE: withSession(func(s *session, args []string) error {
		target, err := s.money.ParseAmount(args[1])
		if err != nil {
			return err
		}
		id, err := s.goals.CreateGoal(args[0], target)
		if err := saved(err); err != nil {
			return err
		}
		g, _ := s.goals.Goal(id)
		fmt.Printf("  Planted %s with a goal of %s\n", g.Name, s.money.Format(g.GoalAmount))
		return nil
	}),
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all trees",
	Args:    cobra.NoArgs,
	RunE: withSession(func(s *session, _ []string) error {
		st := s.goals.State()
		if len(st.Trees) == 0 {
			fmt.Println("\n  No trees yet. Plant one with `moneytree new NAME TARGET`.")
			return nil
		}

		ids := make([]string, len(st.Trees))
		for i, g := range st.Trees {
			ids[i] = g.ID
		}
		n := uniquePrefixLen(ids, 8)

		rows := make([][]string, 0, len(st.Trees)+2)
		for _, g := range st.Trees {
			marker := "  "
			if g.ID == st.ActiveTreeID {
				marker = "▸ "
			}
			rows = append(rows, []string{
				marker + g.Name,
				g.Stage().Name,
				cli.FormatPercent(g.Percent()),
				s.money.Format(g.CurrentAmount),
				s.money.Format(g.GoalAmount),
				prefix(g.ID, n),
			})
		}

		sum := goals.Summarize(st)
		rows = append(rows,
			[]string{"---"},
			[]string{
				cli.FormatCount(sum.Goals, "tree", "trees"),
				fmt.Sprintf("%d reached", sum.Completed),
				cli.FormatPercent(sum.Percent),
				s.money.Format(sum.TotalSaved),
				s.money.Format(sum.TotalTarget),
				"",
			},
		)

		fmt.Println()
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Money Trees",
			Headers: []string{"Tree", "Stage", "Progress", "Saved", "Goal", "ID"},
			Rows:    rows,
		}))
		fmt.Println()
		return nil
	}),
}

var useCmd = &cobra.Command{
	Use:   "use TREE",
	Short: "Make a tree the active one",
	Args:  cobra.ExactArgs(1),
	RunE: withSession(func(s *session, args []string) error {
		g, err := s.resolve(args[0])
		if err != nil {
			return err
		}
		if _, err := s.goals.SelectGoal(g.ID); saved(err) != nil {
			return saved(err)
		}
		fmt.Printf("  Now growing %s\n", g.Name)
		return nil
	}),
}

var renameCmd = &cobra.Command{
	Use:   "rename NAME",
	Short: "Rename a tree",
	Args:  cobra.ExactArgs(1),
	RunE: withSession(func(s *session, args []string) error {
		g, err := s.resolve(flagTree)
		if err != nil {
			return err
		}
		if _, err := s.goals.RenameGoal(g.ID, args[0]); saved(err) != nil {
			return saved(err)
		}
		fmt.Printf("  Renamed %s to %s\n", g.Name, strings.TrimSpace(args[0]))
		return nil
	}),
}

var targetCmd = &cobra.Command{
	Use:   "target AMOUNT",
	Short: "Change a tree's goal amount",
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
		if _, err := s.goals.UpdateGoalAmount(g.ID, amount); saved(err) != nil {
			return saved(err)
		}
		updated, _ := s.goals.Goal(g.ID)
		fmt.Printf("  %s goal is now %s (%s, %s)\n",
			updated.Name, s.money.Format(updated.GoalAmount),
			cli.FormatPercent(updated.Percent()), updated.Stage().Name)
		return nil
	}),
}

var deleteCmd = &cobra.Command{
	Use:     "delete [TREE]",
	Aliases: []string{"rm"},
	Short:   "Delete a tree and its history",
	Args:    cobra.MaximumNArgs(1),
	RunE: withSession(func(s *session, args []string) error {
		g, err := s.resolve(firstArg(args))
		if err != nil {
			return err
		}
		ok, err := confirm(fmt.Sprintf("Delete %q and its %d entries?", g.Name, len(g.History)), "Delete")
		if err != nil || !ok {
			return err
		}
		if _, err := s.goals.DeleteGoal(g.ID); saved(err) != nil {
			return saved(err)
		}
		fmt.Printf("  Deleted %s\n", g.Name)
		if next, ok := s.goals.Active(); ok {
			fmt.Printf("  Active tree: %s\n", next.Name)
		}
		return nil
	}),
}

var resetCmd = &cobra.Command{
	Use:   "reset [TREE]",
	Short: "Set a tree back to 0 and clear its history",
	Args:  cobra.MaximumNArgs(1),
	RunE: withSession(func(s *session, args []string) error {
		g, err := s.resolve(firstArg(args))
		if err != nil {
			return err
		}
		ok, err := confirm(fmt.Sprintf("Reset %q? %s saved and %d entries will be cleared.",
			g.Name, s.money.Format(g.CurrentAmount), len(g.History)), "Reset")
		if err != nil || !ok {
			return err
		}
		if _, err := s.goals.ResetGoal(g.ID); saved(err) != nil {
			return saved(err)
		}
		fmt.Printf("  %s is a seed again\n", g.Name)
		return nil
	}),
}

func init() {
	for _, c := range []*cobra.Command{renameCmd, targetCmd} {
		c.Flags().StringVarP(&flagTree, "tree", "g", "", "Tree id or name (default: active tree)")
	}
	for _, c := range []*cobra.Command{deleteCmd, resetCmd} {
		c.Flags().BoolVarP(&flagYes, "yes", "y", false, "Skip confirmation")
	}
	rootCmd.AddCommand(newCmd, listCmd, useCmd, renameCmd, targetCmd, deleteCmd, resetCmd)
}

// confirm asks a yes/no question unless --yes was given.
func confirm(title, affirmative string) (bool, error) {
	if flagYes {
		return true, nil
	}
	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Affirmative(affirmative).
		Negative("Cancel").
		Value(&ok).
		Run()
	if errors.Is(err, huh.ErrUserAborted) {
		ok, err = false, nil
	}
	if err != nil {
		return false, fmt.Errorf("confirmation: %w", err)
	}
	if !ok {
		infof("Cancelled")
	}
	return ok, nil
}

// uniquePrefixLen returns the shortest length, at least minLen, at which
// every id's prefix is distinct.
func uniquePrefixLen(ids []string, minLen int) int {
	longest := 0
	for _, id := range ids {
		longest = max(longest, len(id))
	}
	for n := minLen; n < longest; n++ {
		seen := make(map[string]struct{}, len(ids))
		unique := true
		for _, id := range ids {
			p := prefix(id, n)
			if _, dup := seen[p]; dup {
				unique = false
				break
			}
			seen[p] = struct{}{}
		}
		if unique {
			return n
		}
	}
	return longest
}

func prefix(id string, n int) string {
	if len(id) > n {
		return id[:n]
	}
	return id
}
