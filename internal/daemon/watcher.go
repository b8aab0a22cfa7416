// BYZRA ⸻ internal/daemon/watcher.go
// file system monitoring for the daemon

package daemon

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"mirage/internal/util"
)

// processes a detected file
type FileHandler func(path string) error

// configures the watcher behavior
type WatchOptions struct {
	// extensions to monitor, empty means any image
	Extensions []string

	// directory names to skip
	ExcludeDirs []string

	// quiet period after the last event before a file is handled
	Settle time.Duration

	// a handled file is ignored for this long, which swallows the
	// events caused by writing its metadata
	Cooldown time.Duration

	// watch subdirectories, including ones created later
	Recursive bool
}

func DefaultWatchOptions() WatchOptions {
	return WatchOptions{
		ExcludeDirs: []string{".git", "node_modules", ".venv"},
		Settle:      2 * time.Second,
		Cooldown:    time.Minute,
		Recursive:   true,
	}
}

// monitors directories for new images
type Watcher struct {
	watcher *fsnotify.Watcher
	dirs    []string
	options WatchOptions
	handler FileHandler
	logger  *util.Logger

	mu        sync.Mutex
	processed map[string]time.Time
	pending   map[string]*time.Timer
	running   bool
	done      chan struct{}
	wg        sync.WaitGroup
}

func NewWatcher(dirs []string, options WatchOptions, handler FileHandler, logger *util.Logger) (*Watcher, error) {
	var validDirs []string
	for _, dir := range dirs {
		info, err := os.Stat(dir)
		if err != nil {
			logger.Warning(fmt.Sprintf("Skipping invalid directory %s: %v", dir, err))
			continue
		}
		if !info.IsDir() {
			logger.Warning(fmt.Sprintf("Skipping non-directory path %s", dir))
			continue
		}
		validDirs = append(validDirs, dir)
	}

	if len(validDirs) == 0 {
		return nil, fmt.Errorf("no valid directories to watch")
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	return &Watcher{
		watcher:   fsWatcher,
		dirs:      validDirs,
		options:   options,
		handler:   handler,
		logger:    logger,
		processed: make(map[string]time.Time),
		pending:   make(map[string]*time.Timer),
		done:      make(chan struct{}),
	}, nil
}

// begins watching the configured directories
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return fmt.Errorf("watcher already running")
	}

	for _, dir := range w.dirs {
		if !w.options.Recursive {
			w.addDir(dir)
			continue
		}

		err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				w.logger.Warning(fmt.Sprintf("Error accessing path %s: %v", path, err))
				return nil
			}
			if !d.IsDir() {
				return nil
			}
			if path != dir && w.excluded(path) {
				return filepath.SkipDir
			}
			w.addDir(path)
			return nil
		})
		if err != nil {
			w.logger.Error(fmt.Sprintf("Error walking directory %s: %v", dir, err))
		}
	}

	w.wg.Add(2)
	go w.processEvents()
	go w.periodicCleanup()

	w.running = true
	w.logger.Info("File watcher started")

	return nil
}

// terminates the watcher, in-flight handlers finish first
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = false
	for path, t := range w.pending {
		t.Stop()
		delete(w.pending, path)
	}
	w.mu.Unlock()

	close(w.done)
	err := w.watcher.Close()
	w.wg.Wait()
	w.logger.Info("File watcher stopped")

	return err
}

func (w *Watcher) addDir(path string) {
	if err := w.watcher.Add(path); err != nil {
		w.logger.Warning(fmt.Sprintf("[!] Failed to watch directory %s: %v", path, err))
		return
	}
	w.logger.Debug(fmt.Sprintf("Watching directory: %s", path))
}

func (w *Watcher) excluded(path string) bool {
	return slices.Contains(w.options.ExcludeDirs, filepath.Base(path))
}

// extension filter, no locking
func (w *Watcher) matches(path string) bool {
	if len(w.options.Extensions) == 0 {
		return util.IsImage(path)
	}
	ext := strings.ToLower(filepath.Ext(path))
	for _, allowed := range w.options.Extensions {
		if ext == strings.ToLower(allowed) {
			return true
		}
	}
	return false
}

// claims path for handling unless it was handled within the cooldown
func (w *Watcher) claim(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if last, ok := w.processed[path]; ok && time.Since(last) < w.options.Cooldown {
		return false
	}
	w.processed[path] = time.Now()
	return true
}

func (w *Watcher) markProcessed(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.processed[path] = time.Now()
}

// (re)arms the settle timer of path
func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return
	}
	if t, ok := w.pending[path]; ok {
		t.Reset(w.options.Settle)
		return
	}
	w.pending[path] = time.AfterFunc(w.options.Settle, func() { w.fire(path) })
}

func (w *Watcher) fire(path string) {
	w.mu.Lock()
	delete(w.pending, path)
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.wg.Add(1)
	w.mu.Unlock()
	defer w.wg.Done()

	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return
	}
	if !w.claim(path) {
		w.logger.Debug(fmt.Sprintf("Skipping recently processed file: %s", path))
		return
	}

	w.logger.Debug(fmt.Sprintf("Processing file: %s", path))
	if err := w.handler(path); err != nil {
		w.logger.Error(fmt.Sprintf("[X] Failed to process file %s: %v", path, err))
	}

	w.markProcessed(path)
}

// file system events
func (w *Watcher) processEvents() {
	defer w.wg.Done()

	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Rename) {
				continue
			}

			path := event.Name
			if info, err := os.Stat(path); err == nil && info.IsDir() {
				if w.options.Recursive && event.Has(fsnotify.Create) && !w.excluded(path) {
					w.addDir(path)
				}
				continue
			}

			if w.matches(path) {
				w.schedule(path)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error(fmt.Sprintf("[X] Watcher error: %v", err))
		}
	}
}

// periodically cleans the processed files map
func (w *Watcher) periodicCleanup() {
	defer w.wg.Done()

	ticker := time.NewTicker(15 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-w.done:
			return
		case <-ticker.C:
			w.prune(time.Now())
			w.logger.Debug("Cleaned processed files cache")
		}
	}
}

// drops processed entries older than an hour, or the cooldown if longer
func (w *Watcher) prune(now time.Time) {
	w.mu.Lock()
	defer w.mu.Unlock()

	cutoff := now.Add(-max(time.Hour, w.options.Cooldown))
	for path, processed := range w.processed {
		if processed.Before(cutoff) {
			delete(w.processed, path)
		}
	}
}
