// Package watch re-renders recipe files whenever they change on disk.
package watch

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// RenderFunc is called with the recipe path once its changes settle.
type RenderFunc func(path string)

// Watcher monitors recipe files and triggers re-renders. Rapid
// successive writes to the same file collapse into one render.
type Watcher struct {
	mu       sync.RWMutex
	watcher  *fsnotify.Watcher
	logger   *zap.Logger
	render   RenderFunc
	targets  map[string]bool // absolute recipe paths; empty means any yaml in the watched dirs
	debounce time.Duration
	pending  map[string]time.Time
	stopCh   chan struct{}
	doneCh   chan struct{}
	running  bool

	stats Stats
}

// Stats tracks watcher activity.
type Stats struct {
	Events        int
	Renders       int
	Errors        int
	LastEventPath string
	LastEventTime time.Time
}

// New creates a watcher over the given recipe paths. Each recipe's
// directory is watched; editors that replace files on save still
// produce events that way.
func New(paths []string, debounce time.Duration, render RenderFunc, logger *zap.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		watcher:  fw,
		logger:   logger,
		render:   render,
		targets:  make(map[string]bool),
		debounce: debounce,
		pending:  make(map[string]time.Time),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}

	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fw.Close()
			return nil, err
		}
		w.targets[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, err
		}
		logger.Debug("watching directory", zap.String("dir", dir))
	}

	return w, nil
}

// Start begins the event loop. Non-blocking.
func (w *Watcher) Start(ctx context.Context) {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return
	}
	w.running = true
	w.mu.Unlock()

	go w.run(ctx)
}

// Stop halts the watcher and waits for the event loop to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh

	if err := w.watcher.Close(); err != nil {
		w.logger.Error("error closing watcher", zap.Error(err))
	}
}

// GetStats returns a snapshot of watcher activity.
func (w *Watcher) GetStats() Stats {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.stats
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("watch error", zap.Error(err))
			w.mu.Lock()
			w.stats.Errors++
			w.mu.Unlock()

		case <-ticker.C:
			w.flushSettled()
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
		return
	}
	path, err := filepath.Abs(event.Name)
	if err != nil {
		return
	}
	if !w.wants(path) {
		return
	}

	w.logger.Debug("recipe changed", zap.String("path", path), zap.String("op", event.Op.String()))

	w.mu.Lock()
	w.stats.Events++
	w.stats.LastEventPath = path
	w.stats.LastEventTime = time.Now()
	w.pending[path] = time.Now()
	w.mu.Unlock()
}

func (w *Watcher) wants(path string) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if len(w.targets) == 0 {
		ext := strings.ToLower(filepath.Ext(path))
		return ext == ".yaml" || ext == ".yml"
	}
	return w.targets[path]
}

// flushSettled renders every pending recipe whose last event is older
// than the debounce window.
func (w *Watcher) flushSettled() {
	now := time.Now()

	w.mu.Lock()
	var ready []string
	for path, last := range w.pending {
		if now.Sub(last) >= w.debounce {
			ready = append(ready, path)
			delete(w.pending, path)
		}
	}
	w.stats.Renders += len(ready)
	w.mu.Unlock()

	for _, path := range ready {
		w.render(path)
	}
}
