// Package watch re-runs a callback whenever an input file changes.
package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"
)

// DefaultInterval is the polling interval used when none is configured
const DefaultInterval = 500 * time.Millisecond

// Logger receives errors from callbacks and stat calls
type Logger interface {
	LogWarn(message string)
}

// state identifies a version of the watched file
type state struct {
	exists  bool
	size    int64
	modTime time.Time
}

func (s state) equal(o state) bool {
	return s.exists == o.exists && s.size == o.size && s.modTime.Equal(o.modTime)
}

// FileWatcher polls one file's size and modification time
type FileWatcher struct {
	path         string
	pollInterval time.Duration
	logger       Logger

	mu   sync.Mutex
	last state
}

// NewFileWatcher creates a watcher for path
func NewFileWatcher(path string, interval time.Duration, logger Logger) *FileWatcher {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &FileWatcher{
		path:         path,
		pollInterval: interval,
		logger:       logger,
	}
}

// Run calls fn once, then again after every change to the file.
// A failing fn is logged and watching continues.
// Blocks until ctx is cancelled and returns ctx.Err().
func (w *FileWatcher) Run(ctx context.Context, fn func(context.Context) error) error {
	initial, err := w.stat()
	if err != nil {
		return fmt.Errorf("watch %s: %w", w.path, err)
	}
	w.last = initial
	w.invoke(ctx, fn)

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			changed, err := w.poll()
			if err != nil {
				w.warn(fmt.Sprintf("watch %s: %v", w.path, err))
				continue
			}
			if changed {
				w.invoke(ctx, fn)
			}
		}
	}
}

// poll reports whether the file differs from the last observed state
func (w *FileWatcher) poll() (bool, error) {
	cur, err := w.stat()
	if err != nil {
		return false, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if cur.equal(w.last) {
		return false, nil
	}
	w.last = cur
	return true, nil
}

func (w *FileWatcher) stat() (state, error) {
	info, err := os.Stat(w.path)
	if errors.Is(err, os.ErrNotExist) {
		// Editors that save by rename briefly remove the file
		return state{}, nil
	}
	if err != nil {
		return state{}, err
	}
	return state{exists: true, size: info.Size(), modTime: info.ModTime()}, nil
}

func (w *FileWatcher) invoke(ctx context.Context, fn func(context.Context) error) {
	if err := fn(ctx); err != nil {
		w.warn(err.Error())
	}
}

func (w *FileWatcher) warn(msg string) {
	if w.logger != nil {
		w.logger.LogWarn(msg)
	}
}
