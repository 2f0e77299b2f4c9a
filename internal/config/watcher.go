package config

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// PipelineEvent represents a pipeline definition change event.
type PipelineEvent struct {
	Path     string
	Pipeline *Pipeline
	Error    error
}

// Watcher monitors a directory for pipeline definition changes. The check
// command's watch mode uses it to re-verify a repository whenever the
// definition is edited.
type Watcher struct {
	loader    *Loader
	watchDir  string
	watcher   *fsnotify.Watcher
	events    chan PipelineEvent
	debounce  time.Duration
	mu        sync.RWMutex
	pipelines map[string]*Pipeline
}

// NewWatcher creates a new pipeline file watcher.
func NewWatcher(loader *Loader, watchDir string) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &Watcher{
		loader:    loader,
		watchDir:  watchDir,
		watcher:   fsWatcher,
		events:    make(chan PipelineEvent, 10),
		debounce:  100 * time.Millisecond,
		pipelines: make(map[string]*Pipeline),
	}, nil
}

// Events returns the channel that receives pipeline change events.
func (w *Watcher) Events() <-chan PipelineEvent {
	return w.events
}

// Start begins watching the directory for pipeline changes.
func (w *Watcher) Start(ctx context.Context) error {
	// Load existing definitions first
	if err := w.loadExisting(); err != nil {
		return fmt.Errorf("failed to load existing pipelines: %w", err)
	}

	if err := w.watcher.Add(w.watchDir); err != nil {
		return fmt.Errorf("failed to watch directory %s: %w", w.watchDir, err)
	}

	go w.run(ctx)
	return nil
}

// Stop closes the watcher and cleans up resources.
func (w *Watcher) Stop() error {
	close(w.events)
	return w.watcher.Close()
}

// Get returns a loaded pipeline by name.
func (w *Watcher) Get(name string) (*Pipeline, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	p, ok := w.pipelines[name]
	return p, ok
}

func (w *Watcher) loadExisting() error {
	pipelines, err := w.loader.LoadDirectory(w.watchDir)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	for _, p := range pipelines {
		w.pipelines[p.Name] = p
	}

	return nil
}

func (w *Watcher) run(ctx context.Context) {
	// Debounce map to avoid multiple events for the same file
	pending := make(map[string]time.Time)
	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			if !isYAMLFile(event.Name) {
				continue
			}

			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				pending[event.Name] = time.Now()
			} else if event.Op&fsnotify.Remove != 0 {
				w.handleRemove(event.Name)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.events <- PipelineEvent{Error: err}

		case <-ticker.C:
			now := time.Now()
			for path, timestamp := range pending {
				if now.Sub(timestamp) >= w.debounce {
					w.handleUpdate(path)
					delete(pending, path)
				}
			}
		}
	}
}

func (w *Watcher) handleUpdate(path string) {
	p, err := w.loader.LoadFile(path)
	if err != nil {
		w.events <- PipelineEvent{
			Path:  path,
			Error: fmt.Errorf("failed to load pipeline %s: %w", path, err),
		}
		return
	}

	w.mu.Lock()
	w.pipelines[p.Name] = p
	w.mu.Unlock()

	w.events <- PipelineEvent{
		Path:     path,
		Pipeline: p,
	}
}

func (w *Watcher) handleRemove(path string) {
	name := strings.TrimSuffix(strings.TrimSuffix(filepath.Base(path), ".yaml"), ".yml")

	w.mu.Lock()
	delete(w.pipelines, name)
	w.mu.Unlock()

	w.events <- PipelineEvent{
		Path:  path,
		Error: fmt.Errorf("pipeline removed: %s", path),
	}
}
