// Package scheduler runs the builds of resolved configs.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"go.trai.ch/splitter/internal/core/domain"
	"go.trai.ch/splitter/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// RunOptions controls a single Run.
type RunOptions struct {
	// NoCache forces every config to build even if its fingerprint is unchanged.
	NoCache bool
	// Parallelism bounds the number of concurrent builds. Zero means runtime.NumCPU().
	Parallelism int
}

// Scheduler builds configs independently of each other.
type Scheduler struct {
	driver    ports.Driver
	copier    ports.FixtureCopier
	hasher    ports.Hasher
	store     ports.BuildInfoStore
	telemetry ports.Telemetry

	mu     sync.RWMutex
	status map[string]domain.BuildStatus
}

// NewScheduler creates a new Scheduler.
func NewScheduler(
	driver ports.Driver,
	copier ports.FixtureCopier,
	hasher ports.Hasher,
	store ports.BuildInfoStore,
	telemetry ports.Telemetry,
) *Scheduler {
	return &Scheduler{
		driver:    driver,
		copier:    copier,
		hasher:    hasher,
		store:     store,
		telemetry: telemetry,
		status:    make(map[string]domain.BuildStatus),
	}
}

// WithDriver returns a Scheduler sharing every collaborator except the driver.
func (s *Scheduler) WithDriver(driver ports.Driver) *Scheduler {
	return NewScheduler(driver, s.copier, s.hasher, s.store, s.telemetry)
}

// Status returns the last known status of the config at configPath.
func (s *Scheduler) Status(configPath string) domain.BuildStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status[configPath]
}

func (s *Scheduler) updateStatus(configPath string, status domain.BuildStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status[configPath] = status
}

// Run builds every config. A failing config does not stop the others;
// all failures are joined under domain.ErrBuildExecutionFailed.
// Configs whose output directories are equal or nested build one after another,
// in the order given; other configs build in parallel.
func (s *Scheduler) Run(ctx context.Context, configs []*domain.BuildConfig, opts RunOptions) error {
	parallelism := opts.Parallelism
	if parallelism <= 0 {
		parallelism = runtime.NumCPU()
	}

	for _, cfg := range configs {
		s.updateStatus(cfg.ConfigPath, domain.BuildStatusPending)
	}

	errs := make([]error, len(configs))

	var g errgroup.Group
	g.SetLimit(parallelism)
	for _, group := range outputGroups(configs) {
		g.Go(func() error {
			for _, i := range group {
				cfg := configs[i]
				if err := s.build(ctx, cfg, opts); err != nil {
					s.updateStatus(cfg.ConfigPath, domain.BuildStatusFailed)
					errs[i] = zerr.With(zerr.Wrap(err, "build failed"), "config", cfg.ConfigPath)
				}
			}
			return nil
		})
	}
	_ = g.Wait()

	if err := errors.Join(errs...); err != nil {
		return errors.Join(domain.ErrBuildExecutionFailed, err)
	}
	return nil
}

// build compiles one config and fires its hook.
func (s *Scheduler) build(ctx context.Context, cfg *domain.BuildConfig, opts RunOptions) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.updateStatus(cfg.ConfigPath, domain.BuildStatusRunning)
	ctx, vertex := s.telemetry.Record(ctx, cfg.Name())
	defer func() { vertex.Complete(err) }()

	fingerprint, err := s.hasher.Fingerprint(cfg)
	if err != nil {
		return err
	}

	if !opts.NoCache && s.cacheHit(cfg, fingerprint) {
		s.updateStatus(cfg.ConfigPath, domain.BuildStatusCached)
		vertex.Cached()
		return nil
	}

	if err := s.driver.Compile(ctx, cfg, vertex.Stdout(), vertex.Stderr()); err != nil {
		return err
	}

	if cfg.OnCompiled != nil {
		n, err := s.copier.CopyFixtures(ctx, cfg.ConfigDir, cfg.OutputDir, *cfg.OnCompiled)
		if err != nil {
			return errors.Join(domain.ErrHookFailed, err)
		}
		vertex.Log(domain.LogLevelInfo, fmt.Sprintf("%s: %d file(s) copied", cfg.OnCompiled.Kind, n))
	}

	if err := s.store.Put(domain.BuildInfo{
		ConfigPath:  cfg.ConfigPath,
		Fingerprint: fingerprint,
		OutputDir:   cfg.OutputDir,
		Timestamp:   time.Now(),
	}); err != nil {
		return err
	}

	s.updateStatus(cfg.ConfigPath, domain.BuildStatusCompleted)
	return nil
}

// cacheHit reports whether the stored fingerprint matches and the output is still present.
func (s *Scheduler) cacheHit(cfg *domain.BuildConfig, fingerprint string) bool {
	info, err := s.store.Get(cfg.ConfigPath)
	if err != nil || info == nil || info.Fingerprint != fingerprint {
		return false
	}
	stat, err := os.Stat(cfg.OutputDir)
	return err == nil && stat.IsDir()
}

// outputGroups partitions the indexes of configs into groups connected by
// overlapping output directories. Groups and their members keep input order.
func outputGroups(configs []*domain.BuildConfig) [][]int {
	parent := make([]int, len(configs))
	for i := range parent {
		parent[i] = i
	}
	find := func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}
		return i
	}

	for i := range configs {
		for j := i + 1; j < len(configs); j++ {
			if overlaps(configs[i].OutputDir, configs[j].OutputDir) {
				ri, rj := find(i), find(j)
				if ri != rj {
					parent[max(ri, rj)] = min(ri, rj)
				}
			}
		}
	}

	var groups [][]int
	index := make(map[int]int)
	for i := range configs {
		root := find(i)
		g, ok := index[root]
		if !ok {
			g = len(groups)
			index[root] = g
			groups = append(groups, nil)
		}
		groups[g] = append(groups[g], i)
	}
	return groups
}

// overlaps reports whether one directory is the other or contains it.
func overlaps(a, b string) bool {
	a, b = filepath.Clean(a), filepath.Clean(b)
	if len(a) > len(b) {
		a, b = b, a
	}
	return a == b || strings.HasPrefix(b, strings.TrimSuffix(a, string(filepath.Separator))+string(filepath.Separator))
}
