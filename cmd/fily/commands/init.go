package commands

import (
	"fmt"
	"path/filepath"

	"github.com/dyluth/fily/internal/scaffold"
	"github.com/spf13/cobra"
)

var (
	forceInit bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new fily project",
	Long: `Initialize a new fily project next to the configuration file.

Creates:
  • fily.yml - Project configuration file
  • products.csv, available.csv, sold.csv - Empty ledger tables
  • images/ - Product photos, one <ID>.jpg per product

Existing ledger tables are never overwritten.

Use --force to reinitialize an existing project (WARNING: replaces fily.yml).`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&forceInit, "force", false, "Force reinitialization (replaces an existing fily.yml)")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	p := cmdPrinter(cmd)
	dir := filepath.Dir(configPath)

	// Check for an existing project (unless --force)
	if !forceInit {
		if err := scaffold.CheckExisting(dir); err != nil {
			return p.Error(
				"project already initialized",
				err.Error(),
				[]string{"Reinitialize and replace the configuration:\n  fily init --force"},
			)
		}
	}

	created, err := scaffold.Initialize(p, dir, forceInit)
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	scaffold.PrintSuccess(p, dir, created)
	return nil
}
