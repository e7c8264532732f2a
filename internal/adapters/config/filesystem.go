package config

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileSystem is the read-only view of the disk the resolver needs.
// Every path it receives is absolute.
type FileSystem interface {
	Stat(path string) (fs.FileInfo, error)
	ReadFile(path string) ([]byte, error)
	Glob(pattern string) ([]string, error)
}

var _ FileSystem = (*MountedFS)(nil)

// MountedFS serves absolute paths from an fs.FS mounted at a root directory.
// Paths outside the mount point behave as missing files.
type MountedFS struct {
	fsys  fs.FS
	mount string
}

// NewOSFS mounts the host filesystem at "/".
func NewOSFS() *MountedFS {
	return NewMountedFS("/", os.DirFS("/"))
}

// NewMountedFS mounts fsys at mount, e.g. an fstest.MapFS at "/repo".
func NewMountedFS(mount string, fsys fs.FS) *MountedFS {
	return &MountedFS{fsys: fsys, mount: filepath.Clean(mount)}
}

// Stat returns file info for path.
func (m *MountedFS) Stat(path string) (fs.FileInfo, error) {
	name, ok := m.name(path)
	if !ok {
		return nil, &fs.PathError{Op: "stat", Path: path, Err: fs.ErrNotExist}
	}
	return fs.Stat(m.fsys, name)
}

// ReadFile reads the file at path.
func (m *MountedFS) ReadFile(path string) ([]byte, error) {
	name, ok := m.name(path)
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	return fs.ReadFile(m.fsys, name)
}

// Glob returns the absolute paths matching pattern.
func (m *MountedFS) Glob(pattern string) ([]string, error) {
	name, ok := m.name(pattern)
	if !ok {
		return nil, nil
	}
	matches, err := fs.Glob(m.fsys, name)
	if err != nil {
		return nil, err
	}
	for i, match := range matches {
		matches[i] = filepath.Join(m.mount, filepath.FromSlash(match))
	}
	return matches, nil
}

// name maps an absolute path to its fs.FS name under the mount point.
func (m *MountedFS) name(path string) (string, bool) {
	rel, err := filepath.Rel(m.mount, filepath.Clean(path))
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return filepath.ToSlash(rel), true
}
