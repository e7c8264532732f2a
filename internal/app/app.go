// Package app implements the application layer for splitter.
package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/splitter/internal/core/domain"
	"go.trai.ch/splitter/internal/core/ports"
	"go.trai.ch/splitter/internal/engine/scheduler"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Output formats accepted by Resolve.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// App represents the main application logic.
type App struct {
	resolver  ports.ConfigResolver
	inputs    ports.InputResolver
	scheduler *scheduler.Scheduler
	driver    ports.Driver
	store     ports.BuildInfoStore
	watcher   ports.Watcher
	logger    ports.Logger
	debounce  time.Duration
}

// New creates a new App instance.
func New(
	resolver ports.ConfigResolver,
	inputs ports.InputResolver,
	sched *scheduler.Scheduler,
	driver ports.Driver,
	store ports.BuildInfoStore,
	watcher ports.Watcher,
	log ports.Logger,
) *App {
	return &App{
		resolver:  resolver,
		inputs:    inputs,
		scheduler: sched,
		driver:    driver,
		store:     store,
		watcher:   watcher,
		logger:    log,
		debounce:  defaultDebounce,
	}
}

// WithDebounce sets the window used to coalesce file events in watch mode.
func (a *App) WithDebounce(window time.Duration) *App {
	a.debounce = window
	return a
}

// BuildOptions configuration for the Build method.
type BuildOptions struct {
	NoCache bool
	Jobs    int
	// Driver replaces the default driver command line when non-empty.
	Driver []string
	Watch  bool
}

// ResolveConfigs resolves the declarations at paths. Relative paths are taken
// from cwd; with no paths, declarations are discovered from cwd.
func (a *App) ResolveConfigs(cwd string, paths []string) ([]*domain.BuildConfig, error) {
	if len(paths) == 0 {
		discovered, err := a.resolver.Discover(cwd)
		if err != nil {
			return nil, err
		}
		paths = discovered
	}

	configs := make([]*domain.BuildConfig, 0, len(paths))
	for _, p := range paths {
		if !filepath.IsAbs(p) {
			p = filepath.Join(cwd, p)
		}
		cfg, err := a.resolver.Resolve(p)
		if err != nil {
			return nil, err
		}
		configs = append(configs, cfg)
	}
	return configs, nil
}

// Resolve writes the resolved records to w in the requested format.
func (a *App) Resolve(cwd string, paths []string, format string, w io.Writer) error {
	configs, err := a.ResolveConfigs(cwd, paths)
	if err != nil {
		return err
	}

	switch format {
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(configs)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(configs); err != nil {
			return err
		}
		return enc.Close()
	default:
		return zerr.With(zerr.Wrap(domain.ErrUnsupportedFormat, format), "format", format)
	}
}

// Build resolves and builds the declarations at paths.
// In watch mode it keeps rebuilding until ctx is cancelled.
func (a *App) Build(ctx context.Context, cwd string, paths []string, opts BuildOptions) error {
	configs, err := a.ResolveConfigs(cwd, paths)
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	sched := a.scheduler
	if len(opts.Driver) > 0 {
		sched = sched.WithDriver(a.driver.WithCommand(opts.Driver))
	}

	runOpts := scheduler.RunOptions{NoCache: opts.NoCache, Parallelism: opts.Jobs}
	buildErr := sched.Run(ctx, configs, runOpts)

	if !opts.Watch {
		return buildErr
	}
	if buildErr != nil {
		a.logger.Error(buildErr)
	}
	return a.watch(ctx, sched, configs, runOpts)
}

// Clean removes the build state. With outputs set, it also removes the output
// directory of every resolved config.
func (a *App) Clean(cwd string, paths []string, outputs bool) error {
	if err := a.store.Clear(); err != nil {
		return err
	}
	a.logger.Info("build state cleared")

	if !outputs {
		return nil
	}

	configs, err := a.ResolveConfigs(cwd, paths)
	if err != nil {
		return err
	}

	var errs error
	for _, cfg := range configs {
		if err := os.RemoveAll(cfg.OutputDir); err != nil {
			errs = errors.Join(errs, zerr.With(zerr.Wrap(domain.ErrCleanFailed, err.Error()), "path", cfg.OutputDir))
			continue
		}
		a.logger.Info(fmt.Sprintf("removed %s", cfg.OutputDir))
	}
	return errs
}
