// Package watch re-runs work when a configuration file changes.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/whyql/pkg/log"
)

// DefaultDelay is how long the watcher waits for writes to settle.
const DefaultDelay = 100 * time.Millisecond

// Watcher monitors a single file via its parent directory, so editors that
// replace the file on save are still observed.
type Watcher struct {
	path   string
	delay  time.Duration
	logger log.Logger
}

// New creates a Watcher for path.
func New(path string, logger log.Logger) *Watcher {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Watcher{path: path, delay: DefaultDelay, logger: logger}
}

// Run blocks until ctx is done, calling onChange after each burst of writes
// to the file. onChange runs on the caller's goroutine, so calls never overlap.
func (w *Watcher) Run(ctx context.Context, onChange func(context.Context)) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	dir := filepath.Dir(w.path)
	if err := fw.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	w.logger.Debug("watching config", log.String("path", w.path))

	name := filepath.Base(w.path)
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			fire = time.After(w.delay)

		case <-fire:
			fire = nil
			w.logger.Info("config changed", log.String("path", w.path))
			onChange(ctx)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", log.Err(err))
		}
	}
}
