package commands

import (
	"fmt"

	"github.com/dyluth/fily/internal/report"
	"github.com/spf13/cobra"
)

var (
	salesOutputFormat string
)

var salesCmd = &cobra.Command{
	Use:   "sales",
	Short: "List the recorded sales",
	Long: `List every recorded sale in the order it was entered, with its profit.

Output Formats:
  default  Human-readable table with a total
  jsonl    One JSON object per line`,
	Args: cobra.NoArgs,
	RunE: runSales,
}

func init() {
	salesCmd.Flags().StringVarP(&salesOutputFormat, "output", "o", "default", "Output format (default or jsonl)")
	rootCmd.AddCommand(salesCmd)
}

func runSales(cmd *cobra.Command, args []string) error {
	format, err := parseFormat(cmd, salesOutputFormat)
	if err != nil {
		return err
	}

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	sales, err := a.ledger.Sales(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to read sales: %w", err)
	}
	return report.FormatSales(cmd.OutOrStdout(), sales, format)
}
