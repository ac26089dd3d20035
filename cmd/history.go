package cmd

import (
	"fmt"

	"github.com/theirongolddev/moneytree/internal/cli"
	"github.com/theirongolddev/moneytree/internal/model"

	"github.com/spf13/cobra"
)

var (
	flagLimit int
	flagAll   bool
)

var historyCmd = &cobra.Command{
	Use:   "history [TREE]",
	Short: "Show a tree's ledger, newest first",
	Args:  cobra.MaximumNArgs(1),
	RunE: withSession(func(s *session, args []string) error {
		g, err := s.resolve(firstArg(args))
		if err != nil {
			return err
		}

		entries := model.SortedHistory(g.History)
		if len(entries) == 0 {
			fmt.Printf("\n  %s has no history yet.\n", g.Name)
			return nil
		}

		limit := flagLimit
		if limit <= 0 {
			limit = s.cfg.General.HistoryLimit
		}
		shown := entries
		if !flagAll && len(shown) > limit {
			shown = shown[:limit]
		}

		rows := make([][]string, 0, len(shown))
		for _, e := range shown {
			change := ""
			if e.Delta != nil {
				change = s.money.Signed(*e.Delta)
			}
			rows = append(rows, []string{
				cli.FormatTime(e.Timestamp),
				s.money.Format(e.Amount),
				change,
				e.Memo,
			})
		}

		fmt.Println()
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   fmt.Sprintf("%s · %s", g.Name, cli.FormatCount(len(entries), "entry", "entries")),
			Headers: []string{"Date", "Balance", "Change", "Memo"},
			Rows:    rows,
		}))
		if len(shown) < len(entries) {
			fmt.Println(cli.RenderMuted(fmt.Sprintf("  %d older entries hidden; use --all", len(entries)-len(shown))))
		}
		fmt.Println()
		return nil
	}),
}

func init() {
	historyCmd.Flags().IntVarP(&flagLimit, "limit", "n", 0, "Entries to show (default from config)")
	historyCmd.Flags().BoolVar(&flagAll, "all", false, "Show every entry")
	rootCmd.AddCommand(historyCmd)
}
