// Package watch re-runs a callback whenever watched files or directory
// trees change, coalescing bursts of filesystem events into one run.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"

	"git.home.luguber.info/inful/docnav/internal/logfields"
)

// DefaultDebounce is the quiet period after the last event before a run starts.
const DefaultDebounce = 500 * time.Millisecond

// Trigger describes why a run started.
type Trigger struct {
	RunID string
	// Paths are the changed paths, sorted and deduplicated.
	Paths []string
}

// RunFunc is invoked once per debounced burst with a context carrying the
// run ID. Errors are logged; they do not stop the watcher.
type RunFunc func(ctx context.Context, trigger Trigger) error

// Watcher monitors individual files and recursive directory trees.
type Watcher struct {
	run      RunFunc
	debounce time.Duration
	logger   *slog.Logger

	fsw   *fsnotify.Watcher
	files map[string]struct{}
	trees []string

	runMu sync.Mutex // serializes runs
	wg    sync.WaitGroup
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce overrides DefaultDebounce.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets the logger; slog.Default() is used otherwise.
func WithLogger(l *slog.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// New creates a Watcher calling run after each burst of changes.
func New(run RunFunc, opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	w := &Watcher{
		run:      run,
		debounce: DefaultDebounce,
		logger:   slog.Default(),
		fsw:      fsw,
		files:    make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// AddFile watches a single file. Its parent directory is watched so that
// editors replacing the file by rename are noticed.
func (w *Watcher) AddFile(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	if err := w.fsw.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch directory %s: %w", filepath.Dir(abs), err)
	}
	w.files[abs] = struct{}{}
	return nil
}

// AddTree watches root and every directory below it. Directories created
// later are added as their create events arrive.
func (w *Watcher) AddTree(root string) error {
	abs, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", root, err)
	}
	if err := w.addDirs(abs); err != nil {
		return err
	}
	w.trees = append(w.trees, abs)
	return nil
}

func (w *Watcher) addDirs(root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(p); err != nil {
			return fmt.Errorf("failed to watch directory %s: %w", p, err)
		}
		return nil
	})
}

// relevant reports whether an event path belongs to a watched file or tree.
func (w *Watcher) relevant(name string) bool {
	if _, ok := w.files[name]; ok {
		return true
	}
	for _, root := range w.trees {
		if name == root || strings.HasPrefix(name, root+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// Run processes events until ctx is cancelled, then waits for an in-flight
// run to finish and releases the underlying watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() {
		if err := w.fsw.Close(); err != nil {
			w.logger.Error("Error closing file watcher", logfields.Error(err))
		}
	}()

	var (
		timer   *time.Timer
		timerC  <-chan time.Time
		pending = make(map[string]struct{})
		errs    = w.fsw.Errors
	)
	stopTimer := func() {
		if timer != nil {
			timer.Stop()
		}
	}

	w.logger.Info("Watching for changes", logfields.Count(len(w.files)+len(w.trees)))
	for {
		select {
		case <-ctx.Done():
			stopTimer()
			w.wg.Wait()
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				stopTimer()
				w.wg.Wait()
				return nil
			}
			if event.Op == fsnotify.Chmod || !w.relevant(event.Name) {
				continue
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addDirs(event.Name); err != nil {
						w.logger.Warn("Failed to watch new directory", logfields.Path(event.Name), logfields.Error(err))
					}
				}
			}
			w.logger.Debug("Change detected", logfields.Path(event.Name), slog.String("op", event.Op.String()))
			pending[event.Name] = struct{}{}
			stopTimer()
			timer = time.NewTimer(w.debounce)
			timerC = timer.C

		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			w.logger.Error("File watcher error", logfields.Error(err))

		case <-timerC:
			timerC = nil
			paths := make([]string, 0, len(pending))
			for p := range pending {
				paths = append(paths, p)
			}
			sort.Strings(paths)
			clear(pending)
			w.dispatch(ctx, Trigger{RunID: uuid.NewString(), Paths: paths})
		}
	}
}

func (w *Watcher) dispatch(ctx context.Context, trigger Trigger) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.runMu.Lock()
		defer w.runMu.Unlock()
		if ctx.Err() != nil {
			return
		}

		logger := w.logger.With(logfields.RunID(trigger.RunID))
		logger.Info("Change run started", logfields.Count(len(trigger.Paths)))
		start := time.Now()
		err := w.run(WithRunID(ctx, trigger.RunID), trigger)
		elapsed := float64(time.Since(start).Microseconds()) / 1000
		if err != nil {
			logger.Error("Change run failed", logfields.DurationMS(elapsed), logfields.Error(err))
			return
		}
		logger.Info("Change run finished", logfields.DurationMS(elapsed))
	}()
}
