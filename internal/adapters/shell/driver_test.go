package shell_test

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/splitter/internal/adapters/shell"
	"go.trai.ch/splitter/internal/core/domain"
	"go.trai.ch/splitter/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

// newConfig creates a project directory with an entry manifest.
func newConfig(t *testing.T) *domain.BuildConfig {
	t.Helper()
	dir := t.TempDir()
	entry := filepath.Join(dir, "App.fsproj")
	require.NoError(t, os.WriteFile(entry, []byte("<Project />"), 0o600))

	return &domain.BuildConfig{
		ConfigPath: filepath.Join(dir, domain.ConfigFileName),
		ConfigDir:  dir,
		EntryPath:  entry,
		OutputDir:  filepath.Join(dir, "dist"),
	}
}

// script builds a driver command whose body receives the derived arguments as "$@".
func script(body string) []string {
	return []string{"sh", "-c", body, "driver"}
}

func TestArguments(t *testing.T) {
	cfg := &domain.BuildConfig{
		EntryPath:        "/r/p/App.fsproj",
		OutputDir:        "/r/dist",
		AllFiles:         true,
		TransformPlugins: []string{"b", "a"},
		SourceMaps:       domain.SourceMapsInline,
	}

	assert.Equal(t, []string{
		"/r/p/App.fsproj", "--outDir", "/r/dist",
		"--allFiles",
		"--plugin", "b", "--plugin", "a",
		"--sourceMaps", "inline",
	}, shell.Arguments(cfg))

	minimal := &domain.BuildConfig{EntryPath: "/e", OutputDir: "/o"}
	assert.Equal(t, []string{"/e", "--outDir", "/o"}, shell.Arguments(minimal))
}

func TestNewDriver_DefaultCommand(t *testing.T) {
	ctrl := gomock.NewController(t)
	driver := shell.NewDriver(mocks.NewMockLogger(ctrl), nil)
	assert.Equal(t, []string{shell.DefaultCommand}, driver.Command())
}

func TestDriver_Compile_PassesArgumentsAndEnvironment(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := mocks.NewMockLogger(ctrl)
	// Logger shouldn't be used when writers are provided
	mockLogger.EXPECT().Info(gomock.Any()).Times(0)
	mockLogger.EXPECT().Warn(gomock.Any()).Times(0)

	cfg := newConfig(t)
	cfg.TransformPlugins = []string{"p1"}

	driver := shell.NewDriver(mockLogger, script(`echo "$@"; echo "$SPLITTER_OUT_DIR"; pwd; echo oops >&2`))

	var stdout, stderr bytes.Buffer
	err := driver.Compile(context.Background(), cfg, &stdout, &stderr)
	require.NoError(t, err)

	realDir, err := filepath.EvalSymlinks(cfg.ConfigDir)
	require.NoError(t, err)

	assert.Contains(t, stdout.String(), cfg.EntryPath+" --outDir "+cfg.OutputDir+" --plugin p1\n")
	assert.Contains(t, stdout.String(), cfg.OutputDir+"\n")
	assert.Contains(t, stdout.String(), realDir+"\n")
	assert.Equal(t, "oops\n", stderr.String())
}

func TestDriver_Compile_StreamsToLogger(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := mocks.NewMockLogger(ctrl)
	gomock.InOrder(
		mockLogger.EXPECT().Info("line1"),
		mockLogger.EXPECT().Info("part1part2"),
	)
	mockLogger.EXPECT().Warn("warning").Times(1)

	driver := shell.NewDriver(mockLogger, script("echo line1; printf part1; sleep 0.1; printf part2; echo warning >&2"))

	err := driver.Compile(context.Background(), newConfig(t), nil, nil)
	require.NoError(t, err)
}

func TestDriver_Compile_NonZeroExit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := newConfig(t)
	driver := shell.NewDriver(mocks.NewMockLogger(ctrl), script("exit 3"))

	err := driver.Compile(context.Background(), cfg, io.Discard, io.Discard)
	require.ErrorIs(t, err, domain.ErrDriverFailed)

	var zErr *zerr.Error
	require.ErrorAs(t, err, &zErr)
	meta := zErr.Metadata()
	assert.Equal(t, 3, meta["exit_code"])
	assert.Equal(t, cfg.ConfigPath, meta["config"])
}

func TestDriver_Compile_MissingEntry(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := newConfig(t)
	require.NoError(t, os.Remove(cfg.EntryPath))

	marker := filepath.Join(cfg.ConfigDir, "launched")
	driver := shell.NewDriver(mocks.NewMockLogger(ctrl), script("touch "+marker))

	err := driver.Compile(context.Background(), cfg, io.Discard, io.Discard)
	require.ErrorIs(t, err, domain.ErrPathResolutionFailure)
	assert.NoFileExists(t, marker, "driver must not launch without an entry")
}

func TestDriver_Compile_CommandNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	driver := shell.NewDriver(mocks.NewMockLogger(ctrl), []string{"splitter-nonexistent-driver-12345"})

	err := driver.Compile(context.Background(), newConfig(t), io.Discard, io.Discard)
	require.ErrorIs(t, err, domain.ErrDriverFailed)
}

func TestDriver_Compile_Cancelled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	driver := shell.NewDriver(mocks.NewMockLogger(ctrl), script("sleep 5"))
	err := driver.Compile(ctx, newConfig(t), io.Discard, io.Discard)
	require.ErrorIs(t, err, domain.ErrDriverFailed)
}

func TestDriver_WithCommand(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	base := shell.NewDriver(mocks.NewMockLogger(ctrl), nil)
	custom := base.WithCommand(script("echo custom"))

	var stdout bytes.Buffer
	require.NoError(t, custom.Compile(context.Background(), newConfig(t), &stdout, io.Discard))
	assert.Equal(t, "custom\n", stdout.String())
	assert.Equal(t, []string{shell.DefaultCommand}, base.Command())
}

func TestDriver_Compile_HermeticBinary(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	binDir := t.TempDir()
	cmdName := "my-splitter-driver"
	//nolint:gosec // Test requires executable file
	require.NoError(t, os.WriteFile(filepath.Join(binDir, cmdName), []byte("#!/bin/sh\necho success\n"), 0o700))
	t.Setenv("PATH", binDir+string(os.PathListSeparator)+os.Getenv("PATH"))

	var stdout bytes.Buffer
	driver := shell.NewDriver(mocks.NewMockLogger(ctrl), []string{cmdName})
	require.NoError(t, driver.Compile(context.Background(), newConfig(t), &stdout, io.Discard))
	assert.Equal(t, "success\n", stdout.String())
}
