// Package watcher implements file system watching for rebuild-on-change.
package watcher

import (
	"context"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/splitter/internal/core/domain"
	"go.trai.ch/splitter/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Watcher = (*Watcher)(nil)

// shouldSkipDirectories are directories that should not be watched.
var shouldSkipDirectories = map[string]bool{
	".git":              true,
	".jj":               true,
	"node_modules":      true,
	"bin":               true,
	"obj":               true,
	domain.StateDirName: true,
}

const eventChannelBuffer = 100

// Watcher implements file system watching using fsnotify.
type Watcher struct {
	logger    ports.Logger
	fsWatcher *fsnotify.Watcher
	events    chan ports.WatchEvent

	mu      sync.RWMutex
	ignored []string
}

// NewWatcher creates a new file system watcher.
func NewWatcher(logger ports.Logger) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, zerr.Wrap(domain.ErrWatchFailed, err.Error())
	}
	return &Watcher{
		logger:    logger,
		fsWatcher: watcher,
		events:    make(chan ports.WatchEvent, eventChannelBuffer),
	}, nil
}

// Start begins watching every root directory recursively. Entries in ignore
// are absolute paths whose subtrees produce no events.
func (w *Watcher) Start(ctx context.Context, roots []string, ignore []string) error {
	w.mu.Lock()
	w.ignored = make([]string, 0, len(ignore))
	for _, p := range ignore {
		w.ignored = append(w.ignored, filepath.Clean(p))
	}
	w.mu.Unlock()

	for _, root := range roots {
		if err := w.Add(root); err != nil {
			return err
		}
	}

	go w.processEvents(ctx)

	return nil
}

// Add watches root and every directory below it that is not skipped or ignored.
func (w *Watcher) Add(root string) error {
	for dir := range w.watchRecursively(root) {
		if err := w.fsWatcher.Add(dir); err != nil {
			return zerr.With(zerr.Wrap(domain.ErrWatchFailed, err.Error()), "path", dir)
		}
	}
	return nil
}

// Stop stops the watcher and releases all resources.
func (w *Watcher) Stop() error {
	return w.fsWatcher.Close()
}

// Events returns an iterator of file system events.
// The iterator ends once the watcher is stopped or its context is cancelled.
func (w *Watcher) Events() iter.Seq[ports.WatchEvent] {
	return func(yield func(ports.WatchEvent) bool) {
		for event := range w.events {
			if !yield(event) {
				return
			}
		}
	}
}

// watchRecursively walks the directory tree and yields all directories.
func (w *Watcher) watchRecursively(root string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil //nolint:nilerr // Skip directories that cannot be read
			}
			if d.IsDir() {
				if path != root && (w.shouldSkip(d.Name()) || w.isIgnored(path)) {
					return fs.SkipDir
				}
				if !yield(path) {
					return filepath.SkipAll
				}
			}
			return nil
		})
	}
}

// shouldSkip returns true if the directory should be skipped.
func (w *Watcher) shouldSkip(name string) bool {
	return shouldSkipDirectories[name]
}

// isIgnored reports whether path is one of the ignored paths or lies below one.
func (w *Watcher) isIgnored(path string) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()

	for _, p := range w.ignored {
		if path == p || strings.HasPrefix(path, p+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// processEvents converts raw fsnotify events to ports.WatchEvent.
//
//nolint:cyclop // This function is complex due to multiple event types and error handling
func (w *Watcher) processEvents(ctx context.Context) {
	defer close(w.events)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}

			if w.isIgnored(event.Name) {
				continue
			}

			watchEvent := convertEvent(event)
			if watchEvent == nil {
				continue
			}

			select {
			case w.events <- *watchEvent:
			case <-ctx.Done():
				return
			}

			// New directories are watched as they appear.
			if watchEvent.Operation == ports.OpCreate {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() && !w.shouldSkip(info.Name()) {
					for dir := range w.watchRecursively(event.Name) {
						_ = w.fsWatcher.Add(dir)
					}
				}
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Error(zerr.Wrap(domain.ErrWatchFailed, err.Error()))
		}
	}
}

// convertEvent converts an fsnotify event to a ports.WatchEvent.
func convertEvent(event fsnotify.Event) *ports.WatchEvent {
	var op ports.WatchOp
	switch {
	case event.Has(fsnotify.Write):
		op = ports.OpWrite
	case event.Has(fsnotify.Create):
		op = ports.OpCreate
	case event.Has(fsnotify.Remove):
		op = ports.OpRemove
	case event.Has(fsnotify.Rename):
		op = ports.OpRename
	default:
		return nil
	}
	return &ports.WatchEvent{Path: event.Name, Operation: op}
}
