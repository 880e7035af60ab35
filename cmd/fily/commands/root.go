package commands

import (
	"fmt"

	"github.com/dyluth/fily/internal/config"
	"github.com/spf13/cobra"
)

var (
	version string
	commit  string
	date    string

	configPath string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "fily",
	Short: "fily - inventory and sales ledger for an import business",
	Long: `fily keeps the product catalog, the available stock and the sales of a
small import business in three CSV tables (or Redis), and publishes an HTML
catalogue of what is in stock.

Run 'fily menu' for the interactive bookkeeping session, or use the
subcommands below for one-off reports.`,
	Version: version,
	// Unknown flags on the root command must not succeed silently
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
	FParseErrWhitelist: cobra.FParseErrWhitelist{},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	// Errors are printed in color by the printer package
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	return rootCmd.Execute()
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", v, c, d)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "f", config.DefaultPath, "Path to fily.yml")
}
