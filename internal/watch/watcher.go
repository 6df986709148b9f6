// Package watch notices when a repository's refs move (new commits, tags,
// checkouts) so the log can be parsed again.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits for ref updates to settle.
const DefaultDebounce = 300 * time.Millisecond

// RefWatcher watches HEAD, packed-refs and the refs tree of a git directory.
type RefWatcher struct {
	gitDir   string
	interval time.Duration
	logger   *slog.Logger
	watcher  *fsnotify.Watcher
}

// NewRefWatcher creates a watcher for gitDir, the repository's .git
// directory. A zero interval selects DefaultDebounce.
func NewRefWatcher(gitDir string, interval time.Duration, logger *slog.Logger) (*RefWatcher, error) {
	info, err := os.Stat(gitDir)
	if err != nil {
		return nil, fmt.Errorf("stat git dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", gitDir)
	}
	if interval <= 0 {
		interval = DefaultDebounce
	}
	if logger == nil {
		logger = slog.Default()
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &RefWatcher{
		gitDir:   gitDir,
		interval: interval,
		logger:   logger.With("component", "watch"),
		watcher:  w,
	}, nil
}

// Watch calls onChange after refs change and then stay quiet for the
// debounce interval. It blocks until ctx is cancelled and closes the
// underlying watcher before returning.
func (rw *RefWatcher) Watch(ctx context.Context, onChange func() error) error {
	defer rw.watcher.Close()

	if err := rw.addTree(rw.gitDir, false); err != nil {
		return err
	}
	refs := filepath.Join(rw.gitDir, "refs")
	if _, err := os.Stat(refs); err == nil {
		if err := rw.addTree(refs, true); err != nil {
			return err
		}
	}

	debounce := NewDebouncer(rw.interval)
	defer debounce.Stop()

	rw.logger.Info("ref watcher started", "git_dir", rw.gitDir, "debounce_ms", rw.interval.Milliseconds())

	for {
		select {
		case <-ctx.Done():
			rw.logger.Info("ref watcher stopped")
			return nil

		case event, ok := <-rw.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}

			// New ref namespaces such as refs/heads/feature/ show up as directories
			if event.Has(fsnotify.Create) && rw.underRefs(event.Name) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := rw.addTree(event.Name, true); err != nil {
						rw.logger.Warn("watch new ref directory", "path", event.Name, "error", err)
					}
				}
			}

			if !rw.isRefEvent(event) {
				continue
			}
			rw.logger.Debug("ref event", "path", event.Name, "op", event.Op.String())

			debounce.Trigger(func() {
				if err := onChange(); err != nil {
					rw.logger.Error("reload after ref change failed", "error", err)
				}
			})

		case err, ok := <-rw.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			rw.logger.Error("ref watcher error", "error", err)
		}
	}
}

// addTree watches dir, and its subdirectories when recursive is set.
func (rw *RefWatcher) addTree(dir string, recursive bool) error {
	if !recursive {
		if err := rw.watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %q: %w", dir, err)
		}
		return nil
	}
	return filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if err := rw.watcher.Add(path); err != nil {
				return fmt.Errorf("failed to watch %q: %w", path, err)
			}
		}
		return nil
	})
}

func (rw *RefWatcher) underRefs(path string) bool {
	rel, err := filepath.Rel(rw.gitDir, path)
	if err != nil {
		return false
	}
	return rel == "refs" || strings.HasPrefix(rel, "refs"+string(filepath.Separator))
}

// isRefEvent reports whether event touched HEAD, packed-refs or a ref file.
// Lock files and attribute changes are ignored.
func (rw *RefWatcher) isRefEvent(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	if strings.HasSuffix(event.Name, ".lock") {
		return false
	}
	if filepath.Dir(event.Name) == filepath.Clean(rw.gitDir) {
		switch filepath.Base(event.Name) {
		case "HEAD", "packed-refs":
			return true
		}
		return false
	}
	return rw.underRefs(event.Name)
}

// Debouncer collects rapid events and runs only the latest callback once
// the interval has passed without new events.
type Debouncer struct {
	interval time.Duration
	mu       sync.Mutex
	timer    *time.Timer
	callback func()
	stopped  bool
}

// NewDebouncer creates a new debouncer.
func NewDebouncer(interval time.Duration) *Debouncer {
	return &Debouncer{interval: interval}
}

// Trigger schedules callback, replacing any pending one.
func (d *Debouncer) Trigger(callback func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	d.callback = callback
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, func() {
		d.mu.Lock()
		cb := d.callback
		d.callback = nil
		stopped := d.stopped
		d.mu.Unlock()

		if cb != nil && !stopped {
			cb()
		}
	})
}

// Stop cancels any pending callback. Later triggers are ignored.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.callback = nil
}
