// Package shell provides the driver adapter that launches the external transpiler.
package shell

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"slices"

	"go.trai.ch/splitter/internal/core/domain"
	"go.trai.ch/splitter/internal/core/ports"
	"go.trai.ch/zerr"
)

// DefaultCommand is the driver executable used when none is configured.
const DefaultCommand = "fable-splitter"

// Environment variables exported to the driver process.
const (
	EnvConfigDir = "SPLITTER_CONFIG_DIR"
	EnvEntry     = "SPLITTER_ENTRY"
	EnvOutDir    = "SPLITTER_OUT_DIR"
)

var _ ports.Driver = (*Driver)(nil)

// Driver implements ports.Driver using os/exec.
type Driver struct {
	logger  ports.Logger
	command []string
}

// NewDriver creates a Driver that runs command. An empty command selects DefaultCommand.
func NewDriver(logger ports.Logger, command []string) *Driver {
	if len(command) == 0 {
		command = []string{DefaultCommand}
	}
	return &Driver{
		logger:  logger,
		command: slices.Clone(command),
	}
}

// WithCommand returns a copy of the driver that runs command.
func (d *Driver) WithCommand(command []string) ports.Driver {
	return NewDriver(d.logger, command)
}

// Compile runs the driver for cfg inside cfg.ConfigDir.
// Output goes to stdout and stderr; a nil writer routes that stream to the logger instead.
func (d *Driver) Compile(ctx context.Context, cfg *domain.BuildConfig, stdout, stderr io.Writer) error {
	if _, err := os.Stat(cfg.EntryPath); err != nil {
		return zerr.With(zerr.With(zerr.Wrap(domain.ErrPathResolutionFailure, "entry not found"),
			"entry", cfg.EntryPath), "config", cfg.ConfigPath)
	}

	name := d.command[0]
	args := append(slices.Clone(d.command[1:]), Arguments(cfg)...)

	cmdEnv := resolveEnvironment(os.Environ(), map[string]string{
		EnvConfigDir: cfg.ConfigDir,
		EnvEntry:     cfg.EntryPath,
		EnvOutDir:    cfg.OutputDir,
	})

	executable := name
	if !filepath.IsAbs(name) {
		if lp, err := lookPath(name, cmdEnv); err == nil {
			executable = lp
		}
	}

	cmd := exec.CommandContext(ctx, executable, args...) //nolint:gosec // user provided command

	// exec.CommandContext sets Args[0] to the executable path; keep the name as invoked.
	if len(cmd.Args) > 0 {
		cmd.Args[0] = name
	}
	cmd.Dir = cfg.ConfigDir
	cmd.Env = cmdEnv

	stdoutLog := &logWriter{logger: d.logger, level: levelInfo}
	stderrLog := &logWriter{logger: d.logger, level: levelWarn}
	cmd.Stdout = pick(stdout, stdoutLog)
	cmd.Stderr = pick(stderr, stderrLog)

	err := cmd.Run()
	stdoutLog.Flush()
	stderrLog.Flush()

	if err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}

		return zerr.With(zerr.With(zerr.Wrap(domain.ErrDriverFailed, err.Error()),
			"exit_code", exitCode), "config", cfg.ConfigPath)
	}

	return nil
}

// Arguments derives the driver's command-line arguments from a resolved config.
// Plugin flags keep declaration order.
func Arguments(cfg *domain.BuildConfig) []string {
	args := []string{cfg.EntryPath, "--outDir", cfg.OutputDir}
	if cfg.AllFiles {
		args = append(args, "--allFiles")
	}
	for _, plugin := range cfg.TransformPlugins {
		args = append(args, "--plugin", plugin)
	}
	if cfg.SourceMaps != domain.SourceMapsNone {
		args = append(args, "--sourceMaps", string(cfg.SourceMaps))
	}
	return args
}

func pick(w io.Writer, fallback io.Writer) io.Writer {
	if w != nil {
		return w
	}
	return fallback
}
