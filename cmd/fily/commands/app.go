package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dyluth/fily/internal/config"
	"github.com/dyluth/fily/internal/ledger"
	"github.com/dyluth/fily/internal/logger"
	"github.com/dyluth/fily/internal/printer"
	"github.com/dyluth/fily/internal/publish"
	"github.com/dyluth/fily/internal/render"
	"github.com/dyluth/fily/internal/report"
	"github.com/dyluth/fily/internal/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// newPublisher is replaced in tests to avoid real git pushes.
var newPublisher = func(cfg *config.PublishConfig, logger *zap.Logger) *publish.Publisher {
	return publish.New(cfg, logger)
}

// app is the state shared by every command that touches the ledger.
type app struct {
	cfg    *config.FilyConfig
	logger *zap.Logger
	store  store.Backend
	ledger *ledger.Ledger
	p      *printer.Printer
}

// openApp loads the configuration named by --config, opens the log and the
// selected store. Callers must Close the returned app.
func openApp(cmd *cobra.Command) (*app, error) {
	p := cmdPrinter(cmd)

	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return nil, p.Error(
			"invalid configuration",
			err.Error(),
			[]string{
				fmt.Sprintf("Fix %s and try again", configPath),
				"Recreate the default configuration:\n  fily init --force",
			},
		)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	s, err := store.Open(cmd.Context(), cfg)
	if err != nil {
		_ = log.Sync()
		if cfg.Store.Backend == config.BackendRedis {
			return nil, p.ErrorWithContext(
				"Redis connection failed",
				err.Error(),
				map[string]string{"Address": cfg.Store.Redis.Addr, "Namespace": cfg.Store.Redis.Namespace},
				[]string{"Start Redis, or switch fily.yml to the csv backend:\n  store:\n    backend: csv"},
			)
		}
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	log.Debug("ledger opened", zap.String("backend", cfg.Store.Backend), zap.String("config", configPath))
	return &app{
		cfg:    cfg,
		logger: log,
		store:  s,
		ledger: ledger.New(s, log),
		p:      p,
	}, nil
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		a.logger.Warn("failed to close store", zap.Error(err))
	}
	_ = a.logger.Sync()
}

func (a *app) catalogueOptions() render.Options {
	c := a.cfg.Catalogue
	return render.Options{
		Title:         c.Title,
		Tagline:       c.Tagline,
		ExchangeRate:  c.ExchangeRate,
		LocalCurrency: c.LocalCurrency,
	}
}

// dataFiles lists the ledger files backed up with the private catalogue.
// Only the CSV backend keeps its tables in files.
func (a *app) dataFiles() []string {
	if csv, ok := a.store.(*store.CSV); ok {
		return csv.Files()
	}
	return nil
}

// renderCatalogue writes index.html and catalogue.html for stock into dir.
func (a *app) renderCatalogue(stock []ledger.StockRow, dir string) ([]string, error) {
	written, err := render.RenderAll(stock, a.catalogueOptions(), dir)
	if err != nil {
		return nil, err
	}
	a.logger.Info("catalogue rendered", zap.String("dir", dir), zap.Int("rows", len(stock)))
	return written, nil
}

// publish renders both catalogue pages from stock and pushes them.
func (a *app) publish(ctx context.Context, stock []ledger.StockRow) (publish.Result, error) {
	pages, err := render.RenderPages(stock, a.catalogueOptions())
	if err != nil {
		return publish.Result{}, fmt.Errorf("failed to render catalogue: %w", err)
	}
	return newPublisher(a.cfg.Publish, a.logger).Publish(ctx, publish.Documents{
		Pages:     pages,
		ImagesDir: a.cfg.Catalogue.ImagesDir,
		DataFiles: a.dataFiles(),
	})
}

// writeSearchPage writes the search results page into the output directory.
func (a *app) writeSearchPage(term string, matches []ledger.StockRow) (string, error) {
	dir := a.cfg.Catalogue.OutputDir
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	path := filepath.Join(dir, render.SearchFilename)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := render.WriteSearchResults(f, term, matches); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

// ledgerError presents a ledger failure the way the menu does.
func (a *app) ledgerError(err error) error {
	switch {
	case errors.Is(err, ledger.ErrNotFound):
		return a.p.Error("not found", err.Error(), []string{"List the products in stock:\n  fily available"})
	case errors.Is(err, ledger.ErrValidation):
		return a.p.Error("invalid input", err.Error(), nil)
	default:
		return err
	}
}

// cmdPrinter prints to the command's own streams.
func cmdPrinter(cmd *cobra.Command) *printer.Printer {
	return printer.New(cmd.OutOrStdout(), cmd.ErrOrStderr())
}

func parseFormat(cmd *cobra.Command, s string) (report.OutputFormat, error) {
	format, err := report.ParseOutputFormat(s)
	if err != nil {
		return "", cmdPrinter(cmd).Error(
			"invalid output format",
			fmt.Sprintf("Unknown format: %s", s),
			[]string{"Valid formats: default, jsonl"},
		)
	}
	return format, nil
}
