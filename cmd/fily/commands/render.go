package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	renderOutDir string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Write the HTML catalogue without publishing it",
	Long: `Render the HTML catalogue of the available stock.

Writes two pages:
  index.html      Internal catalogue, without prices
  catalogue.html  Public catalogue, with USD and local currency prices

Pages go to catalogue.output_dir unless --out is given.`,
	Args: cobra.NoArgs,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVar(&renderOutDir, "out", "", "Directory to write the pages to (default catalogue.output_dir)")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	dir := renderOutDir
	if dir == "" {
		dir = a.cfg.Catalogue.OutputDir
	}

	stock, err := a.ledger.AvailableStock(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to read stock: %w", err)
	}
	written, err := a.renderCatalogue(stock, dir)
	if err != nil {
		return err
	}
	for _, path := range written {
		a.p.Success("Wrote %s\n", path)
	}
	return nil
}
