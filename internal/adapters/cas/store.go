// Package cas implements the build-state store.
package cas

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/splitter/internal/core/domain"
	"go.trai.ch/splitter/internal/core/ports"
	"go.trai.ch/zerr"
)

// StateFileName is the name of the state file inside domain.StateDirName.
const StateFileName = "state.json"

var _ ports.BuildInfoStore = (*Store)(nil)

// Store implements ports.BuildInfoStore using a flat JSON file keyed by config path.
type Store struct {
	path  string
	mu    sync.RWMutex
	cache map[string]domain.BuildInfo
}

// DefaultPath returns the state file location below root.
func DefaultPath(root string) string {
	return filepath.Join(root, domain.StateDirName, StateFileName)
}

// NewStore creates a new BuildInfoStore backed by the file at the given path.
func NewStore(path string) (*Store, error) {
	s := &Store{
		path:  filepath.Clean(path),
		cache: make(map[string]domain.BuildInfo),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the file backing the store.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.With(zerr.Wrap(domain.ErrStoreReadFailed, err.Error()), "path", s.path)
	}

	if len(data) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, &s.cache); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrStoreUnmarshalFailed, err.Error()), "path", s.path)
	}

	return nil
}

// save must be called with s.mu held.
func (s *Store) save() error {
	data, err := json.MarshalIndent(s.cache, "", "  ")
	if err != nil {
		return zerr.Wrap(domain.ErrStoreMarshalFailed, err.Error())
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrStoreWriteFailed, err.Error()), "path", dir)
	}

	//nolint:gosec // Path is cleaned and provided by trusted caller
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrStoreWriteFailed, err.Error()), "path", s.path)
	}

	return nil
}

// Get retrieves the build info for a given config path.
func (s *Store) Get(configPath string) (*domain.BuildInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	info, ok := s.cache[configPath]
	if !ok {
		return nil, nil
	}
	return &info, nil
}

// Put stores the build info and persists the whole store.
func (s *Store) Put(info domain.BuildInfo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache[info.ConfigPath] = info
	return s.save()
}

// Clear forgets every entry and removes the state file.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache = make(map[string]domain.BuildInfo)
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return zerr.With(zerr.Wrap(domain.ErrCleanFailed, err.Error()), "path", s.path)
	}
	return nil
}
