package cmd

import (
	"fmt"
	"os"

	"github.com/theirongolddev/moneytree/internal/cli"
	"github.com/theirongolddev/moneytree/internal/store"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export [FILE]",
	Short: "Write all trees as JSON (stdout by default)",
	Args:  cobra.MaximumNArgs(1),
	RunE: withSession(func(s *session, args []string) error {
		data, err := store.Encode(s.goals.State())
		if err != nil {
			return fmt.Errorf("encoding: %w", err)
		}
		if len(args) == 0 || args[0] == "-" {
			_, err := fmt.Fprintln(os.Stdout, string(data))
			return err
		}
		if err := os.WriteFile(args[0], append(data, '\n'), 0o600); err != nil {
			return fmt.Errorf("writing export: %w", err)
		}
		infof("Exported %s to %s", cli.FormatCount(len(s.goals.State().Trees), "tree", "trees"), args[0])
		return nil
	}),
}

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Replace all trees with a JSON export",
	Long: "Replace all trees with a JSON export. Files exported from the browser " +
		"version of Money Tree (localStorage key money-tree-data) are accepted.",
	Args: cobra.ExactArgs(1),
	RunE: withSession(func(s *session, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading import: %w", err)
		}
		st, err := store.Decode(data)
		if err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}

		current := s.goals.State()
		if len(current.Trees) > 0 {
			ok, err := confirm(fmt.Sprintf("Replace %s with %s from %s?",
				cli.FormatCount(len(current.Trees), "tree", "trees"),
				cli.FormatCount(len(st.Trees), "tree", "trees"),
				args[0]), "Replace")
			if err != nil || !ok {
				return err
			}
		}

		if _, err := s.goals.Replace(st); saved(err) != nil {
			return saved(err)
		}
		fmt.Printf("  Imported %s\n", cli.FormatCount(len(st.Trees), "tree", "trees"))
		if _, ok := st.Active(); !ok && len(st.Trees) > 0 {
			warnf("the import has no valid active tree; pick one with `moneytree use`")
		}
		return nil
	}),
}

func init() {
	importCmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "Skip confirmation")
	rootCmd.AddCommand(exportCmd, importCmd)
}
