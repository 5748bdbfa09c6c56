// ABOUTME: Polling-based file watcher for config hot-reload
// ABOUTME: Monitors file mtimes at a fixed interval until its context ends

package config

import (
	"context"
	"os"
	"time"
)

// DefaultWatchInterval is the polling interval used when none is given.
const DefaultWatchInterval = 2 * time.Second

// Watcher reports changes to a set of files by polling their mtimes.
// Appearing, changing and disappearing files all count as changes. It is
// used from one goroutine.
type Watcher struct {
	paths    []string
	interval time.Duration
	mtimes   map[string]time.Time
}

// NewWatcher creates a watcher over paths and records their current
// state. A non-positive interval means DefaultWatchInterval.
func NewWatcher(paths []string, interval time.Duration) *Watcher {
	if interval <= 0 {
		interval = DefaultWatchInterval
	}
	w := &Watcher{
		paths:    append([]string(nil), paths...),
		interval: interval,
		mtimes:   make(map[string]time.Time),
	}
	w.snapshot()
	return w
}

// Run polls until ctx is done, calling onChange after each detected
// change. It always returns nil, so it fits an errgroup.
func (w *Watcher) Run(ctx context.Context, onChange func()) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if w.Check() {
				onChange()
			}
		}
	}
}

// Check polls once and reports whether anything changed since the last
// poll.
func (w *Watcher) Check() bool {
	changed := false
	for _, path := range w.paths {
		info, err := os.Stat(path)
		prev, existed := w.mtimes[path]
		switch {
		case err != nil:
			if existed {
				changed = true
			}
		case !existed || !info.ModTime().Equal(prev):
			changed = true
		}
	}
	if changed {
		w.snapshot()
	}
	return changed
}

func (w *Watcher) snapshot() {
	for _, path := range w.paths {
		info, err := os.Stat(path)
		if err != nil {
			delete(w.mtimes, path)
			continue
		}
		w.mtimes[path] = info.ModTime()
	}
}
