package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/dyluth/fily/internal/ledger"
	"github.com/dyluth/fily/internal/menu"
	"github.com/spf13/cobra"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the interactive bookkeeping menu",
	Long: `Start the interactive bookkeeping menu.

The menu offers every ledger operation: adding, modifying and deleting
products, recording and amending sales, profit reports, search and
publishing the HTML catalogue. Errors are reported and the menu is shown
again; choose Exit (or press Ctrl-D) to leave.`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func init() {
	rootCmd.AddCommand(menuCmd)
}

func runMenu(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	hooks := menu.Hooks{
		Render: func(stock []ledger.StockRow) ([]string, error) {
			return a.renderCatalogue(stock, a.cfg.Catalogue.OutputDir)
		},
		Publish: func(ctx context.Context, stock []ledger.StockRow) (string, error) {
			result, err := a.publish(ctx, stock)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Catalogue published to %s and %s (%d files, %d changed)",
				a.cfg.Publish.Public.Remote, a.cfg.Publish.Private.Remote, result.Files, result.Changed), nil
		},
		SearchPage: a.writeSearchPage,
	}

	a.logger.Info("menu session started")
	err = menu.New(a.ledger, cmd.InOrStdin(), cmd.OutOrStdout(), hooks, a.logger).Run(ctx)
	a.logger.Info("menu session ended")
	return err
}
