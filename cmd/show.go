package cmd

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/moneytree/internal/cli"
	"github.com/theirongolddev/moneytree/internal/model"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show [TREE]",
	Short: "Show a tree's progress (default: active tree)",
	Args:  cobra.MaximumNArgs(1),
	RunE: withSession(func(s *session, args []string) error {
		g, err := s.resolve(firstArg(args))
		if err != nil {
			return err
		}
		printGoal(s, g)
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShowActive(_ *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	g, ok := s.goals.Active()
	if !ok {
		fmt.Println()
		fmt.Println(cli.RenderTitle("MONEY TREE"))
		fmt.Println()
		fmt.Println(cli.StageArt("seed"))
		fmt.Println()
		if n := len(s.goals.State().Trees); n > 0 {
			fmt.Printf("  No tree selected (%s planted). Pick one:\n", cli.FormatCount(n, "tree", "trees"))
			fmt.Println("    moneytree use NAME")
		} else {
			fmt.Println("  No trees yet. Plant one to start growing:")
			fmt.Println("    moneytree new \"Retirement\" 10,000,000")
		}
		fmt.Println()
		return nil
	}
	printGoal(s, g)
	return nil
}

func printGoal(s *session, g model.Goal) {
	pct := g.Percent()

	fmt.Println()
	fmt.Println(cli.RenderTitle(strings.ToUpper(g.Name)))
	fmt.Println()
	for _, line := range strings.Split(cli.StageArt(g.Stage().Stage), "\n") {
		fmt.Println("    " + line)
	}
	fmt.Println()
	fmt.Println("  " + cli.RenderStageLine(pct))
	fmt.Println("  " + cli.RenderProgressBar(pct, 40))
	fmt.Println()

	rows := [][]string{
		{"Saved", s.money.Format(g.CurrentAmount)},
		{"Goal", s.money.Format(g.GoalAmount)},
		{"Remaining", s.money.Format(g.Remaining())},
		{"---"},
		{"Entries", fmt.Sprintf("%d", len(g.History))},
		{"Planted", cli.FormatTime(g.CreatedAt)},
		{"Updated", cli.FormatTime(g.UpdatedAt)},
	}
	fmt.Print(cli.RenderTable(cli.Table{Rows: rows}))

	if recent := model.SortedHistory(g.History); len(recent) > 0 {
		last := recent[0]
		fmt.Println()
		fmt.Printf("  Last change %s: %s → %s\n",
			cli.RenderMuted(cli.FormatAgo(last.Timestamp, nowFunc())),
			cli.RenderDelta(s.money, last.Change()),
			s.money.Format(last.Amount))
	}
	fmt.Println()
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
