// Package config resolves splitter config declarations into build configs.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/splitter/internal/core/domain"
	"go.trai.ch/splitter/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigResolver = (*Resolver)(nil)

// Resolver implements ports.ConfigResolver for YAML (and JSON) declarations.
type Resolver struct {
	Logger ports.Logger
	FS     FileSystem
}

// NewResolver creates a new Resolver reading from the local filesystem.
func NewResolver(logger ports.Logger) *Resolver {
	return &Resolver{Logger: logger, FS: NewOSFS()}
}

// discoveryMode represents how declarations were discovered.
type discoveryMode string

const (
	// modeWorkspace indicates that a workfile lists the project directories.
	modeWorkspace discoveryMode = "workspace"
	// modeStandalone indicates a single declaration found near the working directory.
	modeStandalone discoveryMode = "standalone"
)

// Resolve reads the declaration at path and returns the resolved build config.
func (r *Resolver) Resolve(path string) (*domain.BuildConfig, error) {
	configPath, err := filepath.Abs(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to resolve config path"), "config", path)
	}

	var decl Declaration
	if err := readAndDecodeYAML(r.FS, configPath, &decl); err != nil {
		return nil, zerr.With(err, "config", configPath)
	}

	return ResolveDeclaration(configPath, &decl)
}

// ResolveDeclaration converts an already-parsed declaration into a build config.
// configPath must be absolute; every relative path in decl is anchored at its directory.
func ResolveDeclaration(configPath string, decl *Declaration) (*domain.BuildConfig, error) {
	// Required fields are checked before any path is derived.
	if strings.TrimSpace(decl.Entry) == "" {
		return nil, invalidField(configPath, "entry", "is required")
	}
	if strings.TrimSpace(decl.OutDir) == "" {
		return nil, invalidField(configPath, "outDir", "is required")
	}

	sourceMaps := domain.SourceMaps(decl.Babel.SourceMaps)
	if !sourceMaps.IsValid() {
		err := invalidField(configPath, "babel.sourceMaps", "must be \"inline\" or absent")
		return nil, zerr.With(err, "value", decl.Babel.SourceMaps)
	}

	plugins := make([]string, 0, len(decl.Babel.Plugins))
	for i, plugin := range decl.Babel.Plugins {
		if strings.TrimSpace(plugin) == "" {
			return nil, zerr.With(invalidField(configPath, "babel.plugins", "must not contain blank entries"), "index", i)
		}
		plugins = append(plugins, plugin)
	}

	hook, err := resolveHook(configPath, decl.OnCompiled)
	if err != nil {
		return nil, err
	}

	configDir := filepath.Dir(configPath)

	var inputs []string
	for i, input := range decl.Inputs {
		if strings.TrimSpace(input) == "" {
			return nil, zerr.With(invalidField(configPath, "inputs", "must not contain blank entries"), "index", i)
		}
		inputs = append(inputs, anchor(configDir, input))
	}
	return &domain.BuildConfig{
		ConfigPath:       configPath,
		ConfigDir:        configDir,
		AllFiles:         decl.AllFiles,
		EntryPath:        anchor(configDir, decl.Entry),
		OutputDir:        anchor(configDir, decl.OutDir),
		TransformPlugins: plugins,
		SourceMaps:       sourceMaps,
		OnCompiled:       hook,
		Inputs:           inputs,
	}, nil
}

func resolveHook(configPath string, dto *HookDTO) (*domain.Hook, error) {
	if dto == nil {
		return nil, nil
	}
	if dto.CopySnapshots == nil {
		err := zerr.Wrap(domain.ErrUnknownHook, "onCompiled declares no hook")
		return nil, zerr.With(errors.Join(domain.ErrConfigInvalid, err), "config", configPath)
	}
	if !dto.CopySnapshots.Enabled {
		return nil, nil
	}

	hook := domain.Hook{
		Kind:    domain.HookCopySnapshots,
		Dir:     dto.CopySnapshots.Dir,
		Pattern: dto.CopySnapshots.Pattern,
	}.WithDefaults()

	if _, err := filepath.Match(hook.Pattern, ""); err != nil {
		err := invalidField(configPath, "onCompiled.copySnapshots.pattern", "is not a valid glob")
		return nil, zerr.With(err, "value", hook.Pattern)
	}
	if filepath.IsAbs(hook.Dir) || strings.ContainsRune(hook.Dir, filepath.Separator) {
		err := invalidField(configPath, "onCompiled.copySnapshots.dir", "must be a directory name")
		return nil, zerr.With(err, "value", hook.Dir)
	}

	return &hook, nil
}

// anchor resolves p against dir unless p is already absolute.
func anchor(dir, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Clean(filepath.Join(dir, p))
}

func invalidField(configPath, field, reason string) error {
	err := zerr.Wrap(domain.ErrConfigInvalid, field+" "+reason)
	err = zerr.With(err, "field", field)
	return zerr.With(err, "config", configPath)
}

// Discover finds the declarations that apply to cwd.
//
// The nearest workfile found walking up from cwd wins; otherwise the nearest declaration is used.
func (r *Resolver) Discover(cwd string) ([]string, error) {
	start, err := filepath.Abs(cwd)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to resolve working directory"), "cwd", cwd)
	}

	path, mode, err := r.findConfiguration(start)
	if err != nil {
		return nil, err
	}

	switch mode {
	case modeStandalone:
		return []string{path}, nil
	case modeWorkspace:
		return r.loadWorkfile(path)
	default:
		return nil, zerr.With(zerr.Wrap(domain.ErrConfigNotFound, "unknown discovery mode"), "mode", mode)
	}
}

func (r *Resolver) findConfiguration(start string) (string, discoveryMode, error) {
	currentDir := start
	var standaloneCandidate string

	for {
		workfilePath := filepath.Join(currentDir, domain.WorkFileName)
		if r.isFile(workfilePath) {
			return workfilePath, modeWorkspace, nil
		}

		if standaloneCandidate == "" {
			standaloneCandidate = r.declarationIn(currentDir)
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	if standaloneCandidate != "" {
		return standaloneCandidate, modeStandalone, nil
	}

	return "", "", zerr.With(zerr.Wrap(domain.ErrConfigNotFound, "discovery failed"), "cwd", start)
}

func (r *Resolver) loadWorkfile(workfilePath string) ([]string, error) {
	var workfile Workfile
	if err := readAndDecodeYAML(r.FS, workfilePath, &workfile); err != nil {
		return nil, zerr.With(err, "workfile", workfilePath)
	}

	workspaceRoot := filepath.Dir(workfilePath)
	projectDirs, err := r.resolveProjectPaths(workspaceRoot, workfile.Projects)
	if err != nil {
		return nil, err
	}

	configs := make([]string, 0, len(projectDirs))
	for _, dir := range projectDirs {
		configPath := r.declarationIn(dir)
		if configPath == "" {
			relPath, _ := filepath.Rel(workspaceRoot, dir)
			r.Logger.Warn(fmt.Sprintf("%s missing in project %s, skipping", domain.ConfigFileName, relPath))
			continue
		}
		configs = append(configs, configPath)
	}

	if len(configs) == 0 {
		return nil, zerr.With(zerr.Wrap(domain.ErrNoConfigs, "workspace has no projects"), "workfile", workfilePath)
	}
	return configs, nil
}

func (r *Resolver) resolveProjectPaths(workspaceRoot string, patterns []string) ([]string, error) {
	// Several globs may match the same directory.
	projectPaths := make(map[string]struct{})

	for _, pattern := range patterns {
		absPattern := anchor(workspaceRoot, pattern)

		matches, err := r.FS.Glob(absPattern)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "glob pattern failed"), "pattern", pattern)
		}

		for _, match := range matches {
			info, statErr := r.FS.Stat(match)
			if statErr != nil || !info.IsDir() {
				continue
			}
			projectPaths[match] = struct{}{}
		}
	}

	sorted := make([]string, 0, len(projectPaths))
	for p := range projectPaths {
		sorted = append(sorted, p)
	}
	slices.Sort(sorted)

	return sorted, nil
}

// declarationIn returns the path of the declaration in dir, or "" if there is none.
func (r *Resolver) declarationIn(dir string) string {
	for _, name := range domain.ConfigFileNames {
		candidate := filepath.Join(dir, name)
		if r.isFile(candidate) {
			return candidate
		}
	}
	return ""
}

func (r *Resolver) isFile(path string) bool {
	info, err := r.FS.Stat(path)
	return err == nil && !info.IsDir()
}

// readAndDecodeYAML reads a YAML file and strictly decodes it into target.
// Unknown keys are rejected so that misspelled fields do not pass silently.
func readAndDecodeYAML[T any](fsys FileSystem, path string, target *T) error {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return errors.Join(domain.ErrConfigReadFailed, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(target); err != nil && !errors.Is(err, io.EOF) {
		return errors.Join(domain.ErrConfigParseFailed, err)
	}

	return nil
}
