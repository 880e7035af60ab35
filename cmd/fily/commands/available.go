package commands

import (
	"fmt"

	"github.com/dyluth/fily/internal/report"
	"github.com/spf13/cobra"
)

var (
	availableOutputFormat string
)

var availableCmd = &cobra.Command{
	Use:   "available",
	Short: "List the available stock",
	Long: `List every size still in stock, one row per product and size.

Rows are ordered by catalogue section (sneakers, jackets, hoodies,
t-shirts, other), then by product ID, then by size.

Output Formats:
  default  Human-readable table
  jsonl    One JSON object per line, for piping into jq`,
	Example: `  # Show the stock table
  fily available

  # Units in stock per product
  fily available -o jsonl | jq -s 'group_by(.id) | map({id: .[0].id, units: map(.count) | add})'`,
	Args: cobra.NoArgs,
	RunE: runAvailable,
}

func init() {
	availableCmd.Flags().StringVarP(&availableOutputFormat, "output", "o", "default", "Output format (default or jsonl)")
	rootCmd.AddCommand(availableCmd)
}

func runAvailable(cmd *cobra.Command, args []string) error {
	format, err := parseFormat(cmd, availableOutputFormat)
	if err != nil {
		return err
	}

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	stock, err := a.ledger.AvailableStock(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to read stock: %w", err)
	}
	return report.FormatStock(cmd.OutOrStdout(), stock, format)
}
