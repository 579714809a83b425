package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/mdinline/internal/logfields"
)

// DefaultDebounce is used when a FileWatcher is created with a zero debounce.
const DefaultDebounce = 250 * time.Millisecond

// FileWatcher monitors one file and calls onChange after the file has been
// quiet for the debounce interval.
type FileWatcher struct {
	path     string
	debounce time.Duration
	onChange func()
	logger   *slog.Logger

	watcher  *fsnotify.Watcher
	mu       sync.Mutex
	timer    *time.Timer
	stopChan chan struct{}
	done     chan struct{}
	started  bool
	stopped  bool
}

// NewFileWatcher creates a watcher for path. It does not start watching
// until Start is called.
func NewFileWatcher(path string, debounce time.Duration, onChange func(), logger *slog.Logger) (*FileWatcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve watched path: %w", err)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &FileWatcher{
		path:     absPath,
		debounce: debounce,
		onChange: onChange,
		logger:   logger,
		watcher:  watcher,
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}, nil
}

// Start begins monitoring. Editors often replace a file instead of writing
// it, so the containing directory is watched.
func (w *FileWatcher) Start(ctx context.Context) error {
	dir := filepath.Dir(w.path)
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch directory %s: %w", dir, err)
	}
	w.logger.Debug("Watching file", logfields.File(w.path), logfields.Duration(w.debounce))
	w.mu.Lock()
	w.started = true
	w.mu.Unlock()
	go w.loop(ctx)
	return nil
}

// Stop ends monitoring and cancels a pending callback. It is safe to call
// more than once.
func (w *FileWatcher) Stop() error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return nil
	}
	w.stopped = true
	if w.timer != nil {
		w.timer.Stop()
	}
	close(w.stopChan)
	started := w.started
	w.mu.Unlock()

	err := w.watcher.Close()
	if started {
		<-w.done
	}
	return err
}

func (w *FileWatcher) loop(ctx context.Context) {
	defer close(w.done)
	name := filepath.Base(w.path)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopChan:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			switch {
			case event.Has(fsnotify.Write), event.Has(fsnotify.Create), event.Has(fsnotify.Rename):
				w.logger.Debug("File change detected", logfields.File(event.Name), slog.String("op", event.Op.String()))
				w.trigger()
			case event.Has(fsnotify.Remove):
				w.logger.Warn("Watched file removed", logfields.File(event.Name))
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("File watcher error", logfields.Error(err))
		}
	}
}

// trigger restarts the debounce timer.
func (w *FileWatcher) trigger() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.onChange)
}
