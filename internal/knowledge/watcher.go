package knowledge

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"careercompass/internal/errors"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches the knowledge base directories for changes and triggers
// a debounced reload so bulk file updates cause a single reload.
type Watcher struct {
	mu sync.Mutex

	basePath      string
	debounceDelay time.Duration
	debounceTimer *time.Timer

	fsWatcher  *fsnotify.Watcher
	stopChan   chan struct{}
	reloadChan chan struct{}

	reloadCallback func()
	logger         *errors.Logger

	running bool
}

// NewWatcher creates a knowledge base directory watcher
func NewWatcher(basePath string, debounceDelay time.Duration, reloadCallback func(), logger *errors.Logger) *Watcher {
	if debounceDelay == 0 {
		debounceDelay = 2 * time.Second
	}

	return &Watcher{
		basePath:       basePath,
		debounceDelay:  debounceDelay,
		stopChan:       make(chan struct{}),
		reloadChan:     make(chan struct{}, 1), // Buffered to prevent blocking
		reloadCallback: reloadCallback,
		logger:         logger,
	}
}

// Start begins watching the knowledge base directories
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return fmt.Errorf("knowledge base watcher is already running")
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	w.fsWatcher = fsWatcher

	watched := w.addDirectories()

	w.running = true
	go w.watchLoop()

	w.logger.Info("Knowledge base watcher started",
		"directories", watched,
		"debounce_delay", w.debounceDelay)
	return nil
}

// addDirectories registers the base path and its known subdirectories
func (w *Watcher) addDirectories() []string {
	dirs := []string{
		w.basePath,
		filepath.Join(w.basePath, "sample_resumes"),
		filepath.Join(w.basePath, "job_templates"),
		filepath.Join(w.basePath, "best_practices"),
	}

	watched := make([]string, 0, len(dirs))
	for _, dir := range dirs {
		if err := w.fsWatcher.Add(dir); err != nil {
			w.logger.Warn("Failed to watch knowledge base directory",
				"directory", dir, "error", err)
			continue
		}
		watched = append(watched, dir)
	}
	return watched
}

// Stop stops the watcher
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return nil
	}

	close(w.stopChan)

	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}

	if err := w.fsWatcher.Close(); err != nil {
		w.logger.LogError(err, "Failed to close file system watcher")
		return err
	}

	w.running = false
	w.logger.Info("Knowledge base watcher stopped")
	return nil
}

// IsRunning returns whether the watcher is currently running
func (w *Watcher) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

// watchLoop is the main event loop for directory watching
func (w *Watcher) watchLoop() {
	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if w.shouldProcessEvent(event) {
				w.scheduleReload()
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.LogError(err, "File watcher error")

		case <-w.reloadChan:
			w.logger.Info("Knowledge base files changed, triggering reload")
			w.reloadCallback()

		case <-w.stopChan:
			return
		}
	}
}

// shouldProcessEvent filters events down to document mutations
func (w *Watcher) shouldProcessEvent(event fsnotify.Event) bool {
	name := filepath.Base(event.Name)
	if !strings.HasSuffix(name, ".txt") && !strings.HasSuffix(name, ".json") {
		return false
	}

	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0
}

// scheduleReload schedules a debounced reload
func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}

	w.debounceTimer = time.AfterFunc(w.debounceDelay, func() {
		select {
		case w.reloadChan <- struct{}{}:
			// Reload scheduled
		default:
			// Channel is full, reload already scheduled
		}
	})
}
