// Package app implements the application layer for cxxgraph.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.trai.ch/cxxgraph/internal/core/domain"
	"go.trai.ch/cxxgraph/internal/core/ports"
	"go.trai.ch/cxxgraph/internal/engine/buildgraph"
	"go.trai.ch/cxxgraph/internal/engine/codescan"
	"go.trai.ch/cxxgraph/internal/engine/scanner"
	"go.trai.ch/cxxgraph/internal/ui/report"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	settings  ports.SettingsLoader
	store     ports.CacheStore
	fs        ports.FileSystem
	scanner   *scanner.Scanner
	codescan  *codescan.CodeScanner
	builder   *buildgraph.Builder
	watcher   ports.Watcher
	telemetry ports.Telemetry
	logger    ports.Logger
	out       io.Writer
}

// New creates a new App instance.
func New(
	settings ports.SettingsLoader,
	store ports.CacheStore,
	fsys ports.FileSystem,
	scan *scanner.Scanner,
	code *codescan.CodeScanner,
	builder *buildgraph.Builder,
	watcher ports.Watcher,
	telemetry ports.Telemetry,
	log ports.Logger,
) *App {
	return &App{
		settings:  settings,
		store:     store,
		fs:        fsys,
		scanner:   scan,
		codescan:  code,
		builder:   builder,
		watcher:   watcher,
		telemetry: telemetry,
		logger:    log,
		out:       os.Stdout,
	}
}

// WithOutput redirects the printed graph. It is primarily used for testing.
func (a *App) WithOutput(w io.Writer) *App {
	a.out = w
	return a
}

// Options configures a scan.
type Options struct {
	// ConfigPath is the settings override file. Empty selects cxxgraph.yaml in the root.
	ConfigPath string
	// CachePath is the persisted cache. Empty selects .cxxgraph/cache.yaml in the root.
	CachePath string
}

// Report is the outcome of one scan.
type Report struct {
	Root       string
	Scan       scanner.Result
	Unresolved int
	Warnings   []domain.Warning
	Cache      *domain.Cache
	Graph      *domain.TaskGraph
}

// Scan loads the settings and the cached state of root, scans the tree,
// classifies and resolves dependencies, builds the task graph and saves the
// cache. Failing to save is logged, not returned.
func (a *App) Scan(ctx context.Context, root string, opts Options) (*Report, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, zerr.With(errors.Join(domain.ErrScanRootNotFound, err), "root", root)
	}
	root = abs
	configPath := opts.ConfigPath
	if configPath == "" {
		configPath = domain.DefaultSettingsPath(root)
	}
	cachePath := opts.CachePath
	if cachePath == "" {
		cachePath = domain.DefaultCachePath(root)
	}

	cfg, err := a.settings.Load(configPath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load settings")
	}
	if cfg.Path != "" {
		a.logger.Debug("settings loaded from " + cfg.Path)
	}

	cache, err := a.loadCache(cachePath, cfg.Settings)
	if err != nil {
		return nil, err
	}
	if err := applyToolchains(cache, cfg); err != nil {
		return nil, zerr.Wrap(err, "failed to apply toolchains")
	}

	rep := &Report{Root: root, Cache: cache}

	if err := a.phase(ctx, "scan", func(v ports.Vertex) error {
		res, err := a.scanner.Scan(root, cache)
		if err != nil {
			return err
		}
		rep.Scan = res
		v.SetAttribute("files", res.Files)
		v.SetAttribute("tokenized", res.Tokenized)
		v.SetAttribute("skipped", res.Skipped)
		v.SetAttribute("removed", res.Removed)
		if res.Tokenized == 0 && res.Removed == 0 {
			v.Cached()
		}
		return nil
	}); err != nil {
		return nil, zerr.Wrap(err, "scan failed")
	}

	_ = a.phase(ctx, "classify", func(v ports.Vertex) error {
		a.codescan.Classify(cache)
		v.SetAttribute("modules", len(cache.Modules()))
		v.SetAttribute("warnings", len(cache.Warnings()))
		return nil
	})

	_ = a.phase(ctx, "resolve", func(v ports.Vertex) error {
		rep.Unresolved = a.codescan.Resolve(cache)
		v.SetAttribute("unresolved", rep.Unresolved)
		return nil
	})

	if err := a.phase(ctx, "graph", func(v ports.Vertex) error {
		g, err := a.builder.Build(cache)
		if err != nil {
			return err
		}
		rep.Graph = g
		v.SetAttribute("tasks", g.Len())
		return nil
	}); err != nil {
		return nil, zerr.Wrap(err, "failed to build task graph")
	}

	rep.Warnings = cache.Warnings()
	for _, w := range rep.Warnings {
		a.logger.Warn(w.String())
	}

	if err := a.store.Save(cachePath, cache); err != nil {
		a.logger.Warn("cache not saved: " + err.Error())
	}

	a.logger.Info(summary(rep))
	return rep, nil
}

// Graph scans root and prints its task graph in execution order.
func (a *App) Graph(ctx context.Context, root string, opts Options) error {
	rep, err := a.Scan(ctx, root, opts)
	if err != nil {
		return err
	}
	return report.NewPrinter(a.out, rep.Root).PrintGraph(rep.Graph)
}

// Watch scans root, then scans again after every batch of relevant changes
// until ctx is done. Failed rescans are logged and watching continues.
func (a *App) Watch(ctx context.Context, root string, opts Options) error {
	rep, err := a.Scan(ctx, root, opts)
	if err != nil {
		return err
	}
	settings := rep.Cache.Settings

	watchOpts := ports.WatchOptions{
		Prune: settings.IsIgnored,
		Relevant: func(path string) bool {
			name := filepath.Base(path)
			return settings.IsSource(name) || settings.IsHeader(name) || name == domain.SettingsFileName
		},
	}
	if err := a.watcher.Start(ctx, rep.Root, watchOpts); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to start watcher"), "root", rep.Root)
	}
	defer func() {
		_ = a.watcher.Stop()
	}()

	a.logger.Info("watching " + rep.Root + " for changes")
	for batch := range a.watcher.Events() {
		a.logger.Debug(describeChanges(batch))
		if _, err := a.Scan(ctx, rep.Root, opts); err != nil {
			a.logger.Error(err)
		}
	}
	return nil
}

// Clean removes the metadata directory of root.
func (a *App) Clean(_ context.Context, root string) error {
	abs, err := filepath.Abs(root)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to resolve root"), "root", root)
	}
	meta := domain.DefaultMetaPath(abs)

	a.logger.Info("removing " + meta + "...")
	if err := a.fs.RemoveAll(meta); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to remove metadata"), "path", meta)
	}
	a.logger.Info("removed " + meta)
	return nil
}

// loadCache reads the persisted cache. A document that cannot be parsed is
// discarded and the scan starts from an empty cache.
func (a *App) loadCache(path string, settings domain.Settings) (*domain.Cache, error) {
	cache, err := a.store.Load(path, settings)
	switch {
	case err == nil:
		cache.Settings = settings
		return cache, nil
	case errors.Is(err, domain.ErrCacheParseFailed):
		a.logger.Warn("discarding unreadable cache: " + err.Error())
		return domain.NewCache(settings), nil
	default:
		return nil, zerr.Wrap(err, "failed to load cache")
	}
}

// applyToolchains replaces the toolchains and configurations of cache with
// those declared in the settings file.
func applyToolchains(cache *domain.Cache, cfg *domain.Config) error {
	cache.ResetToolchains()
	for _, t := range cfg.Toolchains {
		cache.AddToolchain(t)
	}
	for _, ref := range cfg.Configurations {
		if _, err := cache.Configure(ref.Name, ref.Toolchain); err != nil {
			return err
		}
	}
	return nil
}

// phase runs fn inside a telemetry vertex.
func (a *App) phase(ctx context.Context, name string, fn func(v ports.Vertex) error) error {
	_, v := a.telemetry.Record(ctx, name)
	err := fn(v)
	v.Complete(err)
	return err
}

func summary(rep *Report) string {
	c := rep.Cache
	return fmt.Sprintf(
		"scanned %d files (%d tokenized, %d unchanged, %d removed): %d projects, %d modules, %d tasks",
		rep.Scan.Files, rep.Scan.Tokenized, rep.Scan.Skipped, rep.Scan.Removed,
		len(c.Projects()), len(c.Modules()), rep.Graph.Len(),
	)
}

func describeChanges(batch []ports.Change) string {
	if len(batch) == 1 {
		return fmt.Sprintf("%s %s, rescanning", batch[0].Path, batch[0].Op)
	}
	return fmt.Sprintf("%d changes, rescanning", len(batch))
}
