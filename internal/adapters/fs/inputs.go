package fs

import (
	"encoding/xml"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/splitter/internal/core/domain"
	"go.trai.ch/splitter/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.InputResolver = (*ManifestScanner)(nil)

// projectExtensions are the manifest kinds whose references are followed.
var projectExtensions = []string{".fsproj", ".csproj", ".vbproj", ".proj", ".props", ".targets"}

// projectManifest is the subset of an MSBuild project that points at other files.
type projectManifest struct {
	Imports    []manifestItem `xml:"Import"`
	ItemGroups []struct {
		ProjectReferences []manifestItem `xml:"ProjectReference"`
		Compile           []manifestItem `xml:"Compile"`
	} `xml:"ItemGroup"`
}

type manifestItem struct {
	Include string `xml:"Include,attr"`
	Project string `xml:"Project,attr"`
}

// ManifestScanner derives a build's input directories from its entry manifest.
//
// The config directory, the declared inputs and the entry manifest's directory
// are always roots. Project references and imports are followed recursively;
// each referenced project contributes its directory, and compile items outside
// it contribute their own directory.
type ManifestScanner struct{}

// NewManifestScanner creates a new ManifestScanner.
func NewManifestScanner() *ManifestScanner {
	return &ManifestScanner{}
}

// InputRoots implements ports.InputResolver.
func (s *ManifestScanner) InputRoots(cfg *domain.BuildConfig) ([]string, error) {
	roots := []string{cfg.ConfigDir, filepath.Dir(cfg.EntryPath)}
	roots = append(roots, cfg.Inputs...)

	visited := make(map[string]bool)
	queue := []string{cfg.EntryPath}
	for len(queue) > 0 {
		manifest := queue[0]
		queue = queue[1:]
		if visited[manifest] || !slices.Contains(projectExtensions, strings.ToLower(filepath.Ext(manifest))) {
			continue
		}
		visited[manifest] = true

		project, err := readManifest(manifest)
		if err != nil {
			return nil, zerr.With(err, "config", cfg.ConfigPath)
		}
		if project == nil {
			// Missing manifests are reported by the driver.
			continue
		}

		dir := filepath.Dir(manifest)
		roots = append(roots, dir)

		for _, item := range project.Imports {
			queue = append(queue, itemPaths(dir, item.Project)...)
		}
		for _, group := range project.ItemGroups {
			for _, ref := range group.ProjectReferences {
				queue = append(queue, itemPaths(dir, ref.Include)...)
			}
			for _, compile := range group.Compile {
				for _, p := range itemPaths(dir, compile.Include) {
					roots = append(roots, staticDir(p))
				}
			}
		}
	}

	return collapseRoots(roots), nil
}

// readManifest parses the manifest at path. A missing file yields nil.
func readManifest(path string) (*projectManifest, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Path comes from a resolved config or manifest
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to read project manifest"), "manifest", path)
	}

	var project projectManifest
	if err := xml.Unmarshal(data, &project); err != nil {
		return nil, zerr.With(errors.Join(domain.ErrManifestParseFailed, err), "manifest", path)
	}
	return &project, nil
}

// itemPaths splits an MSBuild item list and anchors each entry at dir.
// Entries using properties cannot be evaluated here and are dropped.
func itemPaths(dir, value string) []string {
	var paths []string
	for _, part := range strings.Split(value, ";") {
		part = strings.TrimSpace(part)
		if part == "" || strings.Contains(part, "$(") {
			continue
		}
		part = filepath.FromSlash(strings.ReplaceAll(part, `\`, "/"))
		if !filepath.IsAbs(part) {
			part = filepath.Join(dir, part)
		}
		paths = append(paths, filepath.Clean(part))
	}
	return paths
}

// staticDir returns the deepest directory of a file path or glob that contains no wildcard.
func staticDir(p string) string {
	dir := filepath.Dir(p)
	for strings.ContainsAny(dir, "*?[") {
		dir = filepath.Dir(dir)
	}
	return dir
}

// collapseRoots sorts roots and drops every root nested in another.
func collapseRoots(roots []string) []string {
	cleaned := make([]string, 0, len(roots))
	for _, r := range roots {
		cleaned = append(cleaned, filepath.Clean(r))
	}
	slices.Sort(cleaned)
	cleaned = slices.Compact(cleaned)

	var out []string
	for _, r := range cleaned {
		if slices.ContainsFunc(out, func(kept string) bool { return isWithin(kept, r) }) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// isWithin reports whether path is dir or lies below it.
func isWithin(dir, path string) bool {
	dir = filepath.Clean(dir)
	return path == dir || strings.HasPrefix(path, strings.TrimSuffix(dir, string(filepath.Separator))+string(filepath.Separator))
}
