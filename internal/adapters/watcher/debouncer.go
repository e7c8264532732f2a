package watcher

import (
	"slices"
	"sync"
	"time"
	"unique"
)

// DefaultDebounceWindow is the default time window for debouncing file events.
const DefaultDebounceWindow = 200 * time.Millisecond

// Debouncer coalesces rapid file system events into batched rebuilds.
// Callbacks never overlap: a batch that becomes ready while the previous
// callback is still running waits for it to return.
type Debouncer struct {
	mu       sync.Mutex
	pending  map[unique.Handle[string]]struct{}
	timer    *time.Timer
	window   time.Duration
	callback func(paths []string)

	running sync.Mutex
	wg      sync.WaitGroup
}

// NewDebouncer creates a new debouncer with the given time window and callback.
func NewDebouncer(window time.Duration, callback func(paths []string)) *Debouncer {
	return &Debouncer{
		pending:  make(map[unique.Handle[string]]struct{}),
		window:   window,
		callback: callback,
	}
}

// Add adds a file path to the pending set and restarts the window.
func (d *Debouncer) Add(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending[unique.Make(path)] = struct{}{}

	// Each armed timer holds one count on wg until its batch is handled.
	if d.timer != nil && d.timer.Stop() {
		d.wg.Done()
	}
	d.wg.Add(1)
	d.timer = time.AfterFunc(d.window, d.fire)
}

// take drains the pending set. Callers must hold d.mu.
func (d *Debouncer) take() []string {
	paths := make([]string, 0, len(d.pending))
	for handle := range d.pending {
		paths = append(paths, handle.Value())
	}
	slices.Sort(paths)
	d.pending = make(map[unique.Handle[string]]struct{})
	return paths
}

func (d *Debouncer) fire() {
	defer d.wg.Done()

	d.mu.Lock()
	d.timer = nil
	paths := d.take()
	d.mu.Unlock()

	if len(paths) > 0 {
		d.run(paths)
	}
}

func (d *Debouncer) run(paths []string) {
	if d.callback == nil {
		return
	}
	d.running.Lock()
	defer d.running.Unlock()
	d.callback(paths)
}

// Flush immediately triggers the callback with all pending paths
// and blocks until it returns.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		if !d.timer.Stop() {
			// Timer already fired; its batch is on its way.
			d.mu.Unlock()
			return
		}
		d.timer = nil
		d.wg.Done()
	}
	paths := d.take()
	d.mu.Unlock()

	if len(paths) > 0 {
		d.run(paths)
	}
}

// Wait blocks until every armed timer has fired and its batch has been processed.
func (d *Debouncer) Wait() {
	d.wg.Wait()
}
