package builder

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher re-runs the build when an input file changes. It watches the
// directories holding the inputs so editor rename-and-replace saves are
// still seen; events for other files are ignored.
type Watcher struct {
	mu          sync.Mutex
	watcher     *fsnotify.Watcher
	opts        Options
	log         *zap.Logger
	inputs      map[string]bool
	rebuild     func(context.Context)
	debounceMap map[string]time.Time
	debounceDur time.Duration
	stopCh      chan struct{}
	doneCh      chan struct{}
	running     bool
}

// NewWatcher prepares a watcher over the build inputs.
func NewWatcher(opts Options) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	w := &Watcher{
		watcher:     fsw,
		opts:        opts,
		log:         log,
		inputs:      make(map[string]bool),
		debounceMap: make(map[string]time.Time),
		debounceDur: 500 * time.Millisecond,
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}
	w.rebuild = func(ctx context.Context) {
		if _, err := Build(ctx, w.opts); err != nil {
			w.log.Error("rebuild failed", zap.Error(err))
		}
	}
	for _, p := range []string{opts.ExtractPath, opts.LexiquePath} {
		abs, err := filepath.Abs(p)
		if err != nil {
			fsw.Close()
			return nil, err
		}
		w.inputs[abs] = true
	}
	return w, nil
}

// Start begins watching. Non-blocking; the event loop runs until Stop
// or the context ends.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	dirs := make(map[string]bool)
	for input := range w.inputs {
		dirs[filepath.Dir(input)] = true
	}
	for dir := range dirs {
		if err := w.watcher.Add(dir); err != nil {
			w.mu.Lock()
			w.running = false
			w.mu.Unlock()
			return fmt.Errorf("watching %s: %w", dir, err)
		}
		w.log.Info("watching directory", zap.String("dir", dir))
	}

	go w.run(ctx)
	return nil
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
		w.log.Error("closing watcher", zap.Error(err))
	}
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(100 * time.Millisecond)
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
			w.log.Error("watch error", zap.Error(err))
		case <-ticker.C:
			w.processDebounced(ctx)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
		return
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil || !w.inputs[abs] {
		return
	}
	w.mu.Lock()
	w.debounceMap[abs] = time.Now()
	w.mu.Unlock()
	w.log.Debug("input changed", zap.String("path", abs))
}

// processDebounced rebuilds once after the changed inputs have been
// quiet for the debounce window.
func (w *Watcher) processDebounced(ctx context.Context) {
	w.mu.Lock()
	ready := false
	for path, seen := range w.debounceMap {
		if time.Since(seen) >= w.debounceDur {
			delete(w.debounceMap, path)
			ready = true
		}
	}
	w.mu.Unlock()
	if !ready {
		return
	}
	w.log.Info("inputs settled, rebuilding")
	w.rebuild(ctx)
}
