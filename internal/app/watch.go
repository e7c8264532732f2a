package app

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"go.trai.ch/splitter/internal/adapters/watcher" //nolint:depguard // Debouncer is a pure helper
	"go.trai.ch/splitter/internal/core/domain"
	"go.trai.ch/splitter/internal/engine/scheduler"
)

const defaultDebounce = watcher.DefaultDebounceWindow

// WatchTarget is a config together with the directories its build reads.
type WatchTarget struct {
	Config *domain.BuildConfig
	Roots  []string
}

// watchSession holds the state of one watch loop. Rebuilds are serialized by
// the debouncer, so targets and watched need no lock.
type watchSession struct {
	app     *App
	sched   *scheduler.Scheduler
	opts    scheduler.RunOptions
	targets []WatchTarget
	watched map[string]bool
}

// watch rebuilds configs whose inputs change until ctx is cancelled.
func (a *App) watch(
	ctx context.Context,
	sched *scheduler.Scheduler,
	configs []*domain.BuildConfig,
	opts scheduler.RunOptions,
) error {
	s := &watchSession{
		app:     a,
		sched:   sched,
		opts:    opts,
		targets: make([]WatchTarget, 0, len(configs)),
		watched: make(map[string]bool),
	}

	var roots []string
	ignore := make([]string, 0, len(configs))
	for _, cfg := range configs {
		target := a.watchTarget(cfg)
		s.targets = append(s.targets, target)
		ignore = append(ignore, cfg.OutputDir)
		for _, root := range target.Roots {
			if !s.watched[root] {
				s.watched[root] = true
				roots = append(roots, root)
			}
		}
	}

	if err := a.watcher.Start(ctx, roots, ignore); err != nil {
		return err
	}
	defer func() { _ = a.watcher.Stop() }()

	a.logger.Info(fmt.Sprintf("watching %d config(s) for changes", len(configs)))

	debouncer := watcher.NewDebouncer(a.debounce, func(paths []string) {
		s.rebuild(ctx, paths)
	})

	for event := range a.watcher.Events() {
		if ctx.Err() != nil {
			break
		}
		debouncer.Add(event.Path)
	}

	debouncer.Flush()
	debouncer.Wait()
	return nil
}

// watchTarget pairs cfg with its input roots. The config directory is the
// fallback when the roots cannot be derived.
func (a *App) watchTarget(cfg *domain.BuildConfig) WatchTarget {
	roots, err := a.inputs.InputRoots(cfg)
	if err != nil {
		a.logger.Error(err)
		roots = []string{cfg.ConfigDir}
	}
	return WatchTarget{Config: cfg, Roots: roots}
}

// rebuild re-resolves and builds every config affected by paths.
func (s *watchSession) rebuild(ctx context.Context, paths []string) {
	if ctx.Err() != nil {
		return
	}

	affected := Affected(s.targets, paths)
	if len(affected) == 0 {
		return
	}

	// Declarations and manifests may have changed too.
	fresh := make([]*domain.BuildConfig, 0, len(affected))
	for _, cfg := range affected {
		resolved, err := s.app.resolver.Resolve(cfg.ConfigPath)
		if err != nil {
			s.app.logger.Error(err)
			continue
		}
		fresh = append(fresh, resolved)
		s.refresh(resolved)
	}
	if len(fresh) == 0 {
		return
	}

	start := time.Now()
	if err := s.sched.Run(ctx, fresh, s.opts); err != nil {
		s.app.logger.Error(err)
		return
	}
	s.app.logger.Info(fmt.Sprintf("rebuilt %d config(s) in %s", len(fresh), time.Since(start).Round(time.Millisecond)))
}

// refresh replaces the target of cfg and starts watching any root it gained.
func (s *watchSession) refresh(cfg *domain.BuildConfig) {
	target := s.app.watchTarget(cfg)

	i := slices.IndexFunc(s.targets, func(t WatchTarget) bool { return t.Config.ConfigPath == cfg.ConfigPath })
	if i >= 0 {
		s.targets[i] = target
	}

	for _, root := range target.Roots {
		if s.watched[root] {
			continue
		}
		if err := s.app.watcher.Add(root); err != nil {
			s.app.logger.Error(err)
			continue
		}
		s.watched[root] = true
	}
}

// Affected returns the configs with an input root containing any of paths,
// skipping paths inside the config's own output directory. Order follows targets.
func Affected(targets []WatchTarget, paths []string) []*domain.BuildConfig {
	var out []*domain.BuildConfig
	for _, target := range targets {
		if slices.ContainsFunc(paths, target.covers) {
			out = append(out, target.Config)
		}
	}
	return out
}

func (t WatchTarget) covers(path string) bool {
	if within(t.Config.OutputDir, path) {
		return false
	}
	return slices.ContainsFunc(t.Roots, func(root string) bool { return within(root, path) })
}

func within(dir, path string) bool {
	dir = filepath.Clean(dir)
	path = filepath.Clean(path)
	return path == dir || strings.HasPrefix(path, dir+string(filepath.Separator))
}
