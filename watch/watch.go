// Package watch detects save-file changes by polling.
//
// ASA rewrites profile and tribe files in place on its save interval, so
// inotify-style watchers see a noisy stream of partial writes. Polling
// with content fingerprints is slower to react but only reports a change
// once the new bytes are actually on disk.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/BoldPhoenix/ark-asa-parser/errs"
	"github.com/BoldPhoenix/ark-asa-parser/internal/hash"
)

// Op is the kind of change observed on a file.
type Op int

const (
	OpCreated Op = iota
	OpModified
	OpRemoved
)

func (op Op) String() string {
	switch op {
	case OpCreated:
		return "created"
	case OpModified:
		return "modified"
	case OpRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// Event describes one observed file change.
type Event struct {
	Op   Op
	Path string
	// Time is when the change was observed, not the file mtime.
	Time time.Time
	// Fingerprint is the content hash of the file at observation time.
	// Zero for removals.
	Fingerprint uint64
}

// Callback receives watcher events. Callbacks run on the watcher
// goroutine; slow callbacks delay the next scan.
type Callback func(Event)

// watchPatterns are the file globs a scan considers.
var watchPatterns = []string{"*.arkprofile", "*.arktribe", "*.ark"}

// fileState is the remembered identity of one watched file.
type fileState struct {
	size        int64
	mtime       time.Time
	fingerprint uint64
}

// Watcher polls a save directory and reports file changes to registered
// callbacks. Register callbacks before calling Run; the zero interval
// defaults to five seconds.
type Watcher struct {
	dir      string
	interval time.Duration
	logger   *zap.Logger

	mu        sync.Mutex
	callbacks []Callback
	states    map[string]fileState
	running   bool
}

// New creates a watcher over a save directory.
func New(dir string, interval time.Duration, logger *zap.Logger) *Watcher {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Watcher{
		dir:      dir,
		interval: interval,
		logger:   logger,
		states:   make(map[string]fileState),
	}
}

// OnEvent registers a callback for future events.
func (w *Watcher) OnEvent(cb Callback) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.callbacks = append(w.callbacks, cb)
}

// Run polls until the context is canceled. Only one Run may be active at
// a time; a second concurrent call reports ErrWatcherActive.
func (w *Watcher) Run(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()

		return errs.ErrWatcherActive
	}
	w.running = true
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
	}()

	w.logger.Info("watcher started",
		zap.String("dir", w.dir),
		zap.Duration("interval", w.interval))

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		if err := w.Scan(); err != nil {
			w.logger.Warn("scan failed", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			w.logger.Info("watcher stopped")

			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Scan performs a single poll step, emitting events for every change
// since the previous scan. The first scan primes the state map and
// reports every existing file as created.
func (w *Watcher) Scan() error {
	w.mu.Lock()
	prev := w.states
	w.mu.Unlock()

	current, err := w.collect(prev)
	if err != nil {
		return err
	}

	now := time.Now()

	w.mu.Lock()
	w.states = current
	callbacks := make([]Callback, len(w.callbacks))
	copy(callbacks, w.callbacks)
	w.mu.Unlock()

	var events []Event
	for path, state := range current {
		old, known := prev[path]
		switch {
		case !known:
			events = append(events, Event{
				Op: OpCreated, Path: path, Time: now,
				Fingerprint: state.fingerprint,
			})
		case old.fingerprint != state.fingerprint:
			events = append(events, Event{
				Op: OpModified, Path: path, Time: now,
				Fingerprint: state.fingerprint,
			})
		}
	}
	for path := range prev {
		if _, ok := current[path]; !ok {
			events = append(events, Event{Op: OpRemoved, Path: path, Time: now})
		}
	}

	for _, ev := range events {
		w.logger.Debug("save file event",
			zap.Stringer("op", ev.Op),
			zap.String("path", ev.Path))
		for _, cb := range callbacks {
			cb(ev)
		}
	}

	return nil
}

// collect walks the watched tree and fingerprints every matching file.
// A file whose size and mtime match the previous scan keeps its old
// fingerprint without being reread. Files that vanish mid-walk are
// skipped; the next scan reports them.
func (w *Watcher) collect(prev map[string]fileState) (map[string]fileState, error) {
	states := make(map[string]fileState)

	err := filepath.WalkDir(w.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		if !matchesAny(d.Name()) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}
		if old, ok := prev[path]; ok &&
			old.size == info.Size() && old.mtime.Equal(info.ModTime()) {
			states[path] = old

			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil
		}

		states[path] = fileState{
			size:        info.Size(),
			mtime:       info.ModTime(),
			fingerprint: hash.Fingerprint(data),
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", w.dir, err)
	}

	return states, nil
}

func matchesAny(name string) bool {
	for _, pattern := range watchPatterns {
		if ok, _ := filepath.Match(pattern, name); ok {
			return true
		}
	}

	return false
}
