package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Render the catalogue and push it to the public and private remotes",
	Long: `Render the catalogue and publish it with git.

The pages are first written to catalogue.output_dir, as with 'fily render'.
The public remote receives the price-less catalogue as index.html with the
product images. The private remote receives the priced catalogue as
docs/index.html together with the ledger files.

Both remotes are force-pushed; configure them in fily.yml:

  publish:
    public:
      remote: git@github.com:me/catalogue.git
    private:
      remote: git@github.com:me/ledger.git`,
	Args: cobra.NoArgs,
	RunE: runPublish,
}

func init() {
	rootCmd.AddCommand(publishCmd)
}

func runPublish(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.cfg.Publish.Ready(); err != nil {
		return a.p.Error(
			"publishing is not configured",
			err.Error(),
			[]string{fmt.Sprintf("Set publish.public.remote and publish.private.remote in %s", configPath)},
		)
	}

	stock, err := a.ledger.AvailableStock(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to read stock: %w", err)
	}

	written, err := a.renderCatalogue(stock, a.cfg.Catalogue.OutputDir)
	if err != nil {
		return err
	}
	for _, path := range written {
		a.p.Success("Wrote %s\n", path)
	}

	a.p.Step("Publishing %d stock rows\n", len(stock))
	result, err := a.publish(cmd.Context(), stock)
	if err != nil {
		a.logger.Error("publish failed", zap.Error(err))
		return a.p.ErrorWithContext(
			"publish failed",
			err.Error(),
			map[string]string{"Public": a.cfg.Publish.Public.Dir, "Private": a.cfg.Publish.Private.Dir},
			[]string{"Check that git can push to both remotes, then run:\n  fily publish"},
		)
	}

	a.p.Success("Published %s (%d files)\n", a.cfg.Publish.Public.Remote, result.Files)
	a.p.Success("Published %s\n", a.cfg.Publish.Private.Remote)
	a.p.Info("Run ID: %s, %d paths changed\n", result.RunID, result.Changed)
	return nil
}
