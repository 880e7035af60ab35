package commands

import (
	"fmt"
	"time"

	"github.com/dyluth/fily/internal/report"
	"github.com/dyluth/fily/internal/timespec"
	"github.com/spf13/cobra"
)

var (
	profitOutputFormat string
	profitFrom         string
	profitTo           string
)

// now is the clock used to resolve relative dates.
var now = time.Now

var profitCmd = &cobra.Command{
	Use:   "profit",
	Short: "Profit reports",
	Long: `Profit reports over the ledger.

  expected  Profit the catalog would make at the expected prices, per trip
  net       Profit actually made by the sales in a date range`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var expectedProfitCmd = &cobra.Command{
	Use:   "expected",
	Short: "Expected profit of the catalog per trip",
	Long: `Expected profit of the catalog.

For each trip, every catalog unit (the units entered when the product was
added, sold or not) contributes its expected price minus its cost. Trips are
listed in natural order, so T2 comes before T10.`,
	Args: cobra.NoArgs,
	RunE: runExpectedProfit,
}

var netProfitCmd = &cobra.Command{
	Use:   "net",
	Short: "Net profit of the sales in a date range",
	Long: `Net profit of the sales whose selling date falls in [--from, --to],
both ends inclusive.

Dates may be absolute (2024-11-01) or relative to today:
  today, yesterday, 7d (seven days ago)

--to defaults to today.`,
	Example: `  # November 2024
  fily profit net --from 2024-11-01 --to 2024-11-30

  # The last week
  fily profit net --from 7d`,
	Args: cobra.NoArgs,
	RunE: runNetProfit,
}

func init() {
	profitCmd.PersistentFlags().StringVarP(&profitOutputFormat, "output", "o", "default", "Output format (default or jsonl)")
	netProfitCmd.Flags().StringVar(&profitFrom, "from", "", "First selling date of the range (required)")
	netProfitCmd.Flags().StringVar(&profitTo, "to", "", "Last selling date of the range (default today)")
	_ = netProfitCmd.MarkFlagRequired("from")

	profitCmd.AddCommand(expectedProfitCmd)
	profitCmd.AddCommand(netProfitCmd)
	rootCmd.AddCommand(profitCmd)
}

func runExpectedProfit(cmd *cobra.Command, args []string) error {
	format, err := parseFormat(cmd, profitOutputFormat)
	if err != nil {
		return err
	}

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	summaries, err := a.ledger.ExpectedProfit(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to compute expected profit: %w", err)
	}
	return report.FormatTrips(cmd.OutOrStdout(), summaries, format)
}

func runNetProfit(cmd *cobra.Command, args []string) error {
	format, err := parseFormat(cmd, profitOutputFormat)
	if err != nil {
		return err
	}

	from, to, err := timespec.ParseRange(profitFrom, profitTo, now())
	if err != nil {
		return cmdPrinter(cmd).Error(
			"invalid date range",
			err.Error(),
			[]string{"Use YYYY-MM-DD, today, yesterday or Nd:\n  fily profit net --from 2024-11-01 --to 2024-11-30"},
		)
	}

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	result, err := a.ledger.NetProfitBetween(cmd.Context(), from, to)
	if err != nil {
		return a.ledgerError(err)
	}
	return report.FormatNetProfit(cmd.OutOrStdout(), result, format)
}
