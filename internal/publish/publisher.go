// Package publish pushes the rendered catalogue to its two git remotes.
//
// The public remote receives the price-less page as index.html together with
// the product images. The private remote receives the priced page as
// docs/index.html plus the ledger data files, so the operator's full state is
// backed up with every publish. Publishing only reads the ledger files; a
// failed push leaves them untouched.
package publish

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dyluth/fily/internal/config"
	"github.com/dyluth/fily/internal/git"
	"github.com/dyluth/fily/internal/render"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Pusher force-pushes a working directory to a remote and reports the
// paths that changed since the previous push.
type Pusher interface {
	ForcePush(ctx context.Context, remote, branch, message string) ([]string, error)
}

// Documents is everything one publish run ships.
type Documents struct {
	Pages     render.Pages
	ImagesDir string   // copied as images/ when it exists
	DataFiles []string // ledger files backed up to the private remote
}

// Result describes a completed publish run.
type Result struct {
	RunID      string
	PublicDir  string
	PrivateDir string
	Files      int
	Changed    int // paths that differ from the previous publish, both targets
}

// Publisher stages documents into the configured directories and pushes them.
type Publisher struct {
	cfg      *config.PublishConfig
	pusher   func(dir string) Pusher
	logger   *zap.Logger
	newRunID func() string
}

// Option configures a Publisher.
type Option func(*Publisher)

// WithPusher replaces the git pusher, e.g. with a fake in tests.
func WithPusher(factory func(dir string) Pusher) Option {
	return func(p *Publisher) { p.pusher = factory }
}

// New creates a Publisher for cfg. A nil logger disables logging.
func New(cfg *config.PublishConfig, logger *zap.Logger, opts ...Option) *Publisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &Publisher{
		cfg:      cfg,
		logger:   logger,
		pusher:   func(dir string) Pusher { return git.NewRepo(dir, nil) },
		newRunID: func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Publish stages and pushes the public target, then the private target.
// The run stops at the first failure.
func (p *Publisher) Publish(ctx context.Context, docs Documents) (Result, error) {
	if err := p.cfg.Ready(); err != nil {
		return Result{}, err
	}

	result := Result{
		RunID:      p.newRunID(),
		PublicDir:  p.cfg.Public.Dir,
		PrivateDir: p.cfg.Private.Dir,
	}
	logger := p.logger.With(zap.String("run_id", result.RunID))
	logger.Info("publish started")

	n, err := p.stagePublic(docs)
	if err != nil {
		return Result{}, err
	}
	result.Files += n
	changes, err := p.push(ctx, p.cfg.Public, fmt.Sprintf("Update public index.html (%s)", result.RunID))
	if err != nil {
		logger.Error("public push failed", zap.Error(err))
		return Result{}, err
	}
	result.Changed += len(changes)
	logger.Info("public catalogue pushed", zap.String("remote", p.cfg.Public.Remote), zap.Int("files", n), zap.Strings("changes", changes))

	n, err = p.stagePrivate(docs)
	if err != nil {
		return Result{}, err
	}
	result.Files += n
	changes, err = p.push(ctx, p.cfg.Private, fmt.Sprintf("Update private docs and catalogue (%s)", result.RunID))
	if err != nil {
		logger.Error("private push failed", zap.Error(err))
		return Result{}, err
	}
	result.Changed += len(changes)
	logger.Info("private catalogue pushed", zap.String("remote", p.cfg.Private.Remote), zap.Int("files", n), zap.Strings("changes", changes))

	return result, nil
}

func (p *Publisher) push(ctx context.Context, target *config.TargetConfig, message string) ([]string, error) {
	return p.pusher(target.Dir).ForcePush(ctx, target.Remote, p.cfg.Branch, message)
}

func (p *Publisher) stagePublic(docs Documents) (int, error) {
	dir := p.cfg.Public.Dir
	if err := writeFile(filepath.Join(dir, render.Internal.Filename()), docs.Pages.Internal); err != nil {
		return 0, err
	}
	n, err := copyImages(docs.ImagesDir, dir)
	if err != nil {
		return 0, err
	}
	return n + 1, nil
}

func (p *Publisher) stagePrivate(docs Documents) (int, error) {
	dir := p.cfg.Private.Dir
	if err := writeFile(filepath.Join(dir, "docs", "index.html"), docs.Pages.Public); err != nil {
		return 0, err
	}
	if err := writeFile(filepath.Join(dir, render.Internal.Filename()), docs.Pages.Internal); err != nil {
		return 0, err
	}
	files := 2
	for _, src := range docs.DataFiles {
		if err := copyFile(src, filepath.Join(dir, filepath.Base(src))); err != nil {
			return 0, err
		}
		files++
	}
	n, err := copyImages(docs.ImagesDir, dir)
	if err != nil {
		return 0, err
	}
	return files + n, nil
}

// copyImages copies imagesDir into dst/images. A missing images directory
// copies nothing.
func copyImages(imagesDir, dst string) (int, error) {
	if imagesDir == "" {
		return 0, nil
	}
	if _, err := os.Stat(imagesDir); errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	return copyDir(imagesDir, filepath.Join(dst, "images"))
}

func writeFile(path string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
