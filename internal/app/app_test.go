package app_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"iter"
	"os"
	"path/filepath"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/splitter/internal/adapters/telemetry"
	"go.trai.ch/splitter/internal/app"
	"go.trai.ch/splitter/internal/core/domain"
	"go.trai.ch/splitter/internal/core/ports"
	"go.trai.ch/splitter/internal/core/ports/mocks"
	"go.trai.ch/splitter/internal/engine/scheduler"
	"go.uber.org/mock/gomock"
	"gopkg.in/yaml.v3"
)

type harness struct {
	resolver *mocks.MockConfigResolver
	inputs   *mocks.MockInputResolver
	driver   *mocks.MockDriver
	copier   *mocks.MockFixtureCopier
	hasher   *mocks.MockHasher
	store    *mocks.MockBuildInfoStore
	watcher  *mocks.MockWatcher
	logger   *mocks.MockLogger
	app      *app.App
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	ctrl := gomock.NewController(t)
	h := &harness{
		resolver: mocks.NewMockConfigResolver(ctrl),
		inputs:   mocks.NewMockInputResolver(ctrl),
		driver:   mocks.NewMockDriver(ctrl),
		copier:   mocks.NewMockFixtureCopier(ctrl),
		hasher:   mocks.NewMockHasher(ctrl),
		store:    mocks.NewMockBuildInfoStore(ctrl),
		watcher:  mocks.NewMockWatcher(ctrl),
		logger:   mocks.NewMockLogger(ctrl),
	}
	sched := scheduler.NewScheduler(h.driver, h.copier, h.hasher, h.store, telemetry.NewNoOp())
	h.app = app.New(h.resolver, h.inputs, sched, h.driver, h.store, h.watcher, h.logger).WithDebounce(time.Millisecond)
	return h
}

func config(root, name string) *domain.BuildConfig {
	dir := filepath.Join(root, name)
	return &domain.BuildConfig{
		ConfigPath:       filepath.Join(dir, domain.ConfigFileName),
		ConfigDir:        dir,
		EntryPath:        filepath.Join(dir, name+".fsproj"),
		OutputDir:        filepath.Join(root, "dist", name),
		TransformPlugins: []string{"plugin-a"},
	}
}

func TestApp_ResolveConfigs(t *testing.T) {
	t.Run("explicit relative paths are anchored at cwd", func(t *testing.T) {
		h := newHarness(t)
		cfg := config("/r", "p")
		h.resolver.EXPECT().Resolve("/r/p/splitter.config.yaml").Return(cfg, nil)

		got, err := h.app.ResolveConfigs("/r", []string{"p/splitter.config.yaml"})
		require.NoError(t, err)
		assert.Equal(t, []*domain.BuildConfig{cfg}, got)
	})

	t.Run("discovery without paths", func(t *testing.T) {
		h := newHarness(t)
		a, b := config("/r", "a"), config("/r", "b")
		h.resolver.EXPECT().Discover("/r").Return([]string{a.ConfigPath, b.ConfigPath}, nil)
		h.resolver.EXPECT().Resolve(a.ConfigPath).Return(a, nil)
		h.resolver.EXPECT().Resolve(b.ConfigPath).Return(b, nil)

		got, err := h.app.ResolveConfigs("/r", nil)
		require.NoError(t, err)
		assert.Equal(t, []*domain.BuildConfig{a, b}, got)
	})

	t.Run("discovery failure", func(t *testing.T) {
		h := newHarness(t)
		h.resolver.EXPECT().Discover("/r").Return(nil, domain.ErrConfigNotFound)

		_, err := h.app.ResolveConfigs("/r", nil)
		require.ErrorIs(t, err, domain.ErrConfigNotFound)
	})

	t.Run("resolution failure", func(t *testing.T) {
		h := newHarness(t)
		h.resolver.EXPECT().Resolve("/r/bad.yaml").Return(nil, domain.ErrConfigInvalid)

		_, err := h.app.ResolveConfigs("/r", []string{"/r/bad.yaml"})
		require.ErrorIs(t, err, domain.ErrConfigInvalid)
	})
}

func TestApp_Resolve_Formats(t *testing.T) {
	cfg := config("/r", "p")

	t.Run("json", func(t *testing.T) {
		h := newHarness(t)
		h.resolver.EXPECT().Resolve(cfg.ConfigPath).Return(cfg, nil)

		var out bytes.Buffer
		require.NoError(t, h.app.Resolve("/r", []string{cfg.ConfigPath}, app.FormatJSON, &out))

		var decoded []domain.BuildConfig
		require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
		require.Len(t, decoded, 1)
		assert.Equal(t, *cfg, decoded[0])
	})

	t.Run("yaml", func(t *testing.T) {
		h := newHarness(t)
		h.resolver.EXPECT().Resolve(cfg.ConfigPath).Return(cfg, nil)

		var out bytes.Buffer
		require.NoError(t, h.app.Resolve("/r", []string{cfg.ConfigPath}, app.FormatYAML, &out))

		var decoded []domain.BuildConfig
		require.NoError(t, yaml.Unmarshal(out.Bytes(), &decoded))
		require.Len(t, decoded, 1)
		assert.Equal(t, cfg.OutputDir, decoded[0].OutputDir)
	})

	t.Run("unsupported", func(t *testing.T) {
		h := newHarness(t)
		h.resolver.EXPECT().Resolve(cfg.ConfigPath).Return(cfg, nil)

		err := h.app.Resolve("/r", []string{cfg.ConfigPath}, "toml", &bytes.Buffer{})
		require.ErrorIs(t, err, domain.ErrUnsupportedFormat)
	})
}

func TestApp_Build(t *testing.T) {
	h := newHarness(t)
	cfg := config(t.TempDir(), "p")
	cfg.OnCompiled = &domain.Hook{Kind: domain.HookCopySnapshots}

	h.resolver.EXPECT().Resolve(cfg.ConfigPath).Return(cfg, nil)
	h.hasher.EXPECT().Fingerprint(cfg).Return("fp", nil)
	h.driver.EXPECT().Compile(gomock.Any(), cfg, gomock.Any(), gomock.Any()).Return(nil)
	h.copier.EXPECT().CopyFixtures(gomock.Any(), cfg.ConfigDir, cfg.OutputDir, *cfg.OnCompiled).Return(1, nil)
	h.store.EXPECT().Put(gomock.Any()).Return(nil)

	err := h.app.Build(context.Background(), "/", []string{cfg.ConfigPath}, app.BuildOptions{NoCache: true, Jobs: 1})
	require.NoError(t, err)
}

func TestApp_Build_CustomDriver(t *testing.T) {
	h := newHarness(t)
	cfg := config(t.TempDir(), "p")
	custom := mocks.NewMockDriver(gomock.NewController(t))

	h.resolver.EXPECT().Resolve(cfg.ConfigPath).Return(cfg, nil)
	h.driver.EXPECT().WithCommand([]string{"node", "driver.js"}).Return(custom)
	h.driver.EXPECT().Compile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	custom.EXPECT().Compile(gomock.Any(), cfg, gomock.Any(), gomock.Any()).Return(nil)
	h.hasher.EXPECT().Fingerprint(cfg).Return("fp", nil)
	h.store.EXPECT().Put(gomock.Any()).Return(nil)

	err := h.app.Build(context.Background(), "/", []string{cfg.ConfigPath}, app.BuildOptions{
		NoCache: true,
		Driver:  []string{"node", "driver.js"},
	})
	require.NoError(t, err)
}

func TestApp_Build_Failure(t *testing.T) {
	h := newHarness(t)
	cfg := config(t.TempDir(), "p")

	h.resolver.EXPECT().Resolve(cfg.ConfigPath).Return(cfg, nil)
	h.hasher.EXPECT().Fingerprint(cfg).Return("fp", nil)
	h.driver.EXPECT().Compile(gomock.Any(), cfg, gomock.Any(), gomock.Any()).Return(domain.ErrDriverFailed)

	err := h.app.Build(context.Background(), "/", []string{cfg.ConfigPath}, app.BuildOptions{NoCache: true})
	require.ErrorIs(t, err, domain.ErrBuildExecutionFailed)
	require.ErrorIs(t, err, domain.ErrDriverFailed)
}

func TestApp_Build_ConfigError(t *testing.T) {
	h := newHarness(t)
	h.resolver.EXPECT().Discover("/r").Return(nil, domain.ErrConfigNotFound)
	h.driver.EXPECT().Compile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	err := h.app.Build(context.Background(), "/r", nil, app.BuildOptions{})
	require.ErrorIs(t, err, domain.ErrConfigNotFound)
}

func seq(events ...ports.WatchEvent) iter.Seq[ports.WatchEvent] {
	return func(yield func(ports.WatchEvent) bool) {
		for _, e := range events {
			if !yield(e) {
				return
			}
		}
	}
}

func TestApp_Build_Watch(t *testing.T) {
	h := newHarness(t)
	root := t.TempDir()
	a, b := config(root, "a"), config(root, "b")

	h.resolver.EXPECT().Discover(root).Return([]string{a.ConfigPath, b.ConfigPath}, nil)
	h.resolver.EXPECT().Resolve(a.ConfigPath).Return(a, nil).Times(2)
	h.resolver.EXPECT().Resolve(b.ConfigPath).Return(b, nil).Times(1)

	// Initial build of both, then a rebuild of a only.
	h.hasher.EXPECT().Fingerprint(gomock.Any()).Return("fp", nil).Times(3)
	h.driver.EXPECT().Compile(gomock.Any(), a, gomock.Any(), gomock.Any()).Return(nil).Times(2)
	h.driver.EXPECT().Compile(gomock.Any(), b, gomock.Any(), gomock.Any()).Return(nil).Times(1)
	h.store.EXPECT().Put(gomock.Any()).Return(nil).Times(3)

	h.inputs.EXPECT().InputRoots(gomock.Any()).DoAndReturn(func(cfg *domain.BuildConfig) ([]string, error) {
		return []string{cfg.ConfigDir}, nil
	}).Times(3)

	h.watcher.EXPECT().Start(gomock.Any(), []string{a.ConfigDir, b.ConfigDir}, []string{a.OutputDir, b.OutputDir}).Return(nil)
	h.watcher.EXPECT().Events().Return(seq(
		ports.WatchEvent{Path: filepath.Join(a.ConfigDir, "src", "App.fs"), Operation: ports.OpWrite},
		ports.WatchEvent{Path: filepath.Join(b.OutputDir, "b.js"), Operation: ports.OpWrite},
	))
	h.watcher.EXPECT().Stop().Return(nil)
	h.logger.EXPECT().Info(gomock.Any()).AnyTimes()

	err := h.app.Build(context.Background(), root, nil, app.BuildOptions{NoCache: true, Watch: true})
	require.NoError(t, err)
}

func TestApp_Clean(t *testing.T) {
	t.Run("state only", func(t *testing.T) {
		h := newHarness(t)
		h.store.EXPECT().Clear().Return(nil)
		h.logger.EXPECT().Info("build state cleared")

		require.NoError(t, h.app.Clean("/r", nil, false))
	})

	t.Run("with outputs", func(t *testing.T) {
		h := newHarness(t)
		cfg := config(t.TempDir(), "p")
		require.NoError(t, os.MkdirAll(cfg.OutputDir, 0o750))
		require.NoError(t, os.WriteFile(filepath.Join(cfg.OutputDir, "p.js"), []byte("x"), 0o600))

		h.store.EXPECT().Clear().Return(nil)
		h.resolver.EXPECT().Resolve(cfg.ConfigPath).Return(cfg, nil)
		h.logger.EXPECT().Info(gomock.Any()).Times(2)

		require.NoError(t, h.app.Clean("/", []string{cfg.ConfigPath}, true))
		assert.NoDirExists(t, cfg.OutputDir)
	})

	t.Run("store failure", func(t *testing.T) {
		h := newHarness(t)
		h.store.EXPECT().Clear().Return(domain.ErrCleanFailed)

		require.ErrorIs(t, h.app.Clean("/r", nil, true), domain.ErrCleanFailed)
	})
}

// spaced yields events one debounce window apart so each one triggers its own rebuild.
func spaced(gap time.Duration, events ...ports.WatchEvent) iter.Seq[ports.WatchEvent] {
	return func(yield func(ports.WatchEvent) bool) {
		for _, e := range events {
			if !yield(e) {
				return
			}
			time.Sleep(gap)
		}
	}
}

func TestApp_Build_Watch_ReferencedLibrary(t *testing.T) {
	h := newHarness(t)
	root := t.TempDir()
	a, b := config(root, "a"), config(root, "b")
	lib := filepath.Join(root, "src", "Lib")

	h.resolver.EXPECT().Discover(root).Return([]string{a.ConfigPath, b.ConfigPath}, nil)
	h.resolver.EXPECT().Resolve(a.ConfigPath).Return(a, nil).Times(2)
	h.resolver.EXPECT().Resolve(b.ConfigPath).Return(b, nil).Times(1)
	h.inputs.EXPECT().InputRoots(a).Return([]string{a.ConfigDir, lib}, nil).Times(2)
	h.inputs.EXPECT().InputRoots(b).Return([]string{b.ConfigDir}, nil).Times(1)

	h.hasher.EXPECT().Fingerprint(gomock.Any()).Return("fp", nil).Times(3)
	h.driver.EXPECT().Compile(gomock.Any(), a, gomock.Any(), gomock.Any()).Return(nil).Times(2)
	h.driver.EXPECT().Compile(gomock.Any(), b, gomock.Any(), gomock.Any()).Return(nil).Times(1)
	h.store.EXPECT().Put(gomock.Any()).Return(nil).Times(3)

	h.watcher.EXPECT().Start(gomock.Any(), []string{a.ConfigDir, lib, b.ConfigDir}, gomock.Any()).Return(nil)
	h.watcher.EXPECT().Events().Return(seq(
		ports.WatchEvent{Path: filepath.Join(lib, "Lib.fs"), Operation: ports.OpWrite},
	))
	h.watcher.EXPECT().Stop().Return(nil)
	h.logger.EXPECT().Info(gomock.Any()).AnyTimes()

	err := h.app.Build(context.Background(), root, nil, app.BuildOptions{NoCache: true, Watch: true})
	require.NoError(t, err)
}

func TestApp_Build_Watch_NewRootIsWatched(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		h := newHarness(t)
		root := t.TempDir()
		a := config(root, "a")
		lib := filepath.Join(root, "src", "Lib")

		h.resolver.EXPECT().Resolve(a.ConfigPath).Return(a, nil).Times(3)
		gomock.InOrder(
			h.inputs.EXPECT().InputRoots(a).Return([]string{a.ConfigDir}, nil),
			// The manifest gained a project reference.
			h.inputs.EXPECT().InputRoots(a).Return([]string{a.ConfigDir, lib}, nil).Times(2),
		)
		h.watcher.EXPECT().Add(lib).Return(nil).Times(1)

		h.hasher.EXPECT().Fingerprint(gomock.Any()).Return("fp", nil).Times(3)
		h.driver.EXPECT().Compile(gomock.Any(), a, gomock.Any(), gomock.Any()).Return(nil).Times(3)
		h.store.EXPECT().Put(gomock.Any()).Return(nil).Times(3)

		h.watcher.EXPECT().Start(gomock.Any(), []string{a.ConfigDir}, []string{a.OutputDir}).Return(nil)
		h.watcher.EXPECT().Events().Return(spaced(time.Second,
			ports.WatchEvent{Path: filepath.Join(a.ConfigDir, "a.fsproj"), Operation: ports.OpWrite},
			ports.WatchEvent{Path: filepath.Join(lib, "Lib.fs"), Operation: ports.OpWrite},
		))
		h.watcher.EXPECT().Stop().Return(nil)
		h.logger.EXPECT().Info(gomock.Any()).AnyTimes()

		err := h.app.Build(context.Background(), "/", []string{a.ConfigPath}, app.BuildOptions{NoCache: true, Watch: true})
		require.NoError(t, err)
	})
}

func TestApp_Build_Watch_UnresolvableDeclarationIsSkipped(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		h := newHarness(t)
		root := t.TempDir()
		a := config(root, "a")
		event := ports.WatchEvent{Path: filepath.Join(a.ConfigDir, domain.ConfigFileName), Operation: ports.OpWrite}

		gomock.InOrder(
			h.resolver.EXPECT().Resolve(a.ConfigPath).Return(a, nil),
			h.resolver.EXPECT().Resolve(a.ConfigPath).Return(nil, domain.ErrConfigInvalid),
			h.resolver.EXPECT().Resolve(a.ConfigPath).Return(a, nil),
		)
		h.inputs.EXPECT().InputRoots(a).Return([]string{a.ConfigDir}, nil).Times(2)
		h.logger.EXPECT().Error(matchesErr(domain.ErrConfigInvalid)).Times(1)

		// Initial build and the build after the declaration is fixed; none in between.
		h.hasher.EXPECT().Fingerprint(gomock.Any()).Return("fp", nil).Times(2)
		h.driver.EXPECT().Compile(gomock.Any(), a, gomock.Any(), gomock.Any()).Return(nil).Times(2)
		h.store.EXPECT().Put(gomock.Any()).Return(nil).Times(2)

		h.watcher.EXPECT().Start(gomock.Any(), []string{a.ConfigDir}, []string{a.OutputDir}).Return(nil)
		h.watcher.EXPECT().Events().Return(spaced(time.Second, event, event))
		h.watcher.EXPECT().Stop().Return(nil)
		h.logger.EXPECT().Info(gomock.Any()).AnyTimes()

		err := h.app.Build(context.Background(), "/", []string{a.ConfigPath}, app.BuildOptions{NoCache: true, Watch: true})
		require.NoError(t, err)
	})
}

func TestApp_Build_Watch_FailedBuildKeepsWatching(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		h := newHarness(t)
		root := t.TempDir()
		a := config(root, "a")
		event := ports.WatchEvent{Path: filepath.Join(a.ConfigDir, "src", "App.fs"), Operation: ports.OpWrite}

		h.resolver.EXPECT().Resolve(a.ConfigPath).Return(a, nil).Times(3)
		h.inputs.EXPECT().InputRoots(a).Return([]string{a.ConfigDir}, nil).Times(3)
		h.hasher.EXPECT().Fingerprint(gomock.Any()).Return("fp", nil).Times(3)
		gomock.InOrder(
			h.driver.EXPECT().Compile(gomock.Any(), a, gomock.Any(), gomock.Any()).Return(nil),
			h.driver.EXPECT().Compile(gomock.Any(), a, gomock.Any(), gomock.Any()).Return(domain.ErrDriverFailed),
			h.driver.EXPECT().Compile(gomock.Any(), a, gomock.Any(), gomock.Any()).Return(nil),
		)
		h.store.EXPECT().Put(gomock.Any()).Return(nil).Times(2)
		h.logger.EXPECT().Error(matchesErr(domain.ErrDriverFailed)).Times(1)

		h.watcher.EXPECT().Start(gomock.Any(), []string{a.ConfigDir}, []string{a.OutputDir}).Return(nil)
		h.watcher.EXPECT().Events().Return(spaced(time.Second, event, event))
		h.watcher.EXPECT().Stop().Return(nil)
		h.logger.EXPECT().Info(gomock.Any()).AnyTimes()

		err := h.app.Build(context.Background(), "/", []string{a.ConfigPath}, app.BuildOptions{NoCache: true, Watch: true})
		require.NoError(t, err)
	})
}

// matchesErr matches errors wrapping target.
func matchesErr(target error) gomock.Matcher {
	return gomock.Cond(func(err error) bool { return errors.Is(err, target) })
}

func TestAffected(t *testing.T) {
	a := config("/r", "a")
	nested := config("/r/a", "nested")
	b := config("/r", "b")
	targets := []app.WatchTarget{
		{Config: a, Roots: []string{a.ConfigDir}},
		{Config: nested, Roots: []string{nested.ConfigDir}},
		{Config: b, Roots: []string{b.ConfigDir, "/r/src/Lib"}},
	}

	tests := []struct {
		name  string
		paths []string
		want  []*domain.BuildConfig
	}{
		{"single project", []string{"/r/b/src/B.fs"}, []*domain.BuildConfig{b}},
		{"nested project touches parent", []string{"/r/a/nested/N.fs"}, []*domain.BuildConfig{a, nested}},
		{"output changes ignored", []string{"/r/dist/b/b.js"}, nil},
		{"prefix is not containment", []string{"/r/bb/file"}, nil},
		{"multiple", []string{"/r/a/A.fs", "/r/b/B.fs"}, []*domain.BuildConfig{a, b}},
		{"referenced library", []string{"/r/src/Lib/Lib.fs"}, []*domain.BuildConfig{b}},
		{"outside every root", []string{"/r/docs/README.md"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, app.Affected(targets, tt.paths))
		})
	}
}
