package commands

import (
	"fmt"

	"github.com/dyluth/fily/internal/report"
	"github.com/spf13/cobra"
)

var (
	searchOutputFormat string
	searchHTML         bool
)

var searchCmd = &cobra.Command{
	Use:   "search [TERM]",
	Short: "Search the available stock",
	Long: `Search the available stock for TERM.

A row matches when its product name contains TERM, ignoring case. Without
TERM every row is listed.

With --html the matches are also written to search_results.html in the
catalogue output directory.`,
	Example: `  fily search fleece
  fily search "air max" --html`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&searchOutputFormat, "output", "o", "default", "Output format (default or jsonl)")
	searchCmd.Flags().BoolVar(&searchHTML, "html", false, "Also write search_results.html")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	format, err := parseFormat(cmd, searchOutputFormat)
	if err != nil {
		return err
	}
	var term string
	if len(args) > 0 {
		term = args[0]
	}

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	matches, err := a.ledger.Search(cmd.Context(), term)
	if err != nil {
		return fmt.Errorf("failed to search stock: %w", err)
	}
	if err := report.FormatStock(cmd.OutOrStdout(), matches, format); err != nil {
		return err
	}

	if searchHTML {
		path, err := a.writeSearchPage(term, matches)
		if err != nil {
			return err
		}
		a.p.Success("Search results written to %s\n", path)
	}
	return nil
}
