// BYZRA ⸻ internal/daemon/daemon.go
// background application of synthetic metadata to new images

package daemon

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"mirage/internal/apply"
	"mirage/internal/metadata"
	"mirage/internal/util"
)

// background service that monitors directories
type Daemon struct {
	dirs       []string
	options    WatchOptions
	planner    *apply.Planner
	coord      *apply.Coordinator
	directives metadata.Directives
	logger     *util.Logger

	mu      sync.Mutex
	watcher *Watcher
	ctx     context.Context
	cancel  context.CancelFunc
	started time.Time

	processed atomic.Int64
	failures  atomic.Int64
}

// current state of the daemon
type DaemonStatus struct {
	Running        bool
	WatchedDirs    []string
	FileTypes      []string
	ProcessedFiles int
	ErrorCount     int
	StartTime      time.Time
}

// Each new image under dirs gets its own planned record, built from
// directives, and is applied as a one-file batch through coord.
func NewDaemon(dirs []string, options WatchOptions, planner *apply.Planner, coord *apply.Coordinator,
	directives metadata.Directives, logger *util.Logger) *Daemon {
	return &Daemon{
		dirs:       dirs,
		options:    options,
		planner:    planner,
		coord:      coord,
		directives: directives,
		logger:     logger,
	}
}

func (d *Daemon) Start(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.watcher != nil {
		return fmt.Errorf("daemon already running")
	}

	d.logger.Info("Starting daemon")

	watcher, err := NewWatcher(d.dirs, d.options, d.handleFile, d.logger)
	if err != nil {
		d.logger.Error(fmt.Sprintf("[X] Failed to create watcher: %v", err))
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	d.ctx, d.cancel = context.WithCancel(ctx)
	if err := watcher.Start(); err != nil {
		d.cancel()
		d.logger.Error(fmt.Sprintf("[X] Failed to start watcher: %v", err))
		return fmt.Errorf("failed to start watcher: %w", err)
	}

	d.watcher = watcher
	d.started = time.Now()
	d.logger.Info("Daemon started successfully")

	return nil
}

// halts the daemon; an image being written is finished first
func (d *Daemon) Stop() error {
	d.mu.Lock()
	watcher := d.watcher
	d.watcher = nil
	d.mu.Unlock()

	if watcher == nil {
		return nil
	}

	d.logger.Info("Stopping daemon")
	err := watcher.Stop()
	d.cancel()
	if err != nil {
		d.logger.Warning(fmt.Sprintf("[!] Error stopping watcher: %v", err))
	}
	d.logger.Info(fmt.Sprintf("Daemon stopped after %d files, %d failures", d.processed.Load(), d.failures.Load()))

	return nil
}

func (d *Daemon) handleFile(path string) error {
	ctx := context.Background()
	d.mu.Lock()
	if d.ctx != nil {
		ctx = d.ctx
	}
	d.mu.Unlock()

	items, err := d.planner.Plan([]string{path}, d.directives)
	if err != nil {
		d.logger.Warning(fmt.Sprintf("[!] Directives rejected for %s: %v", filepath.Base(path), err))
	}

	report, err := d.coord.ApplyBatch(ctx, items, nil)
	if err != nil {
		d.failures.Add(1)
		return err
	}
	if report.Cancelled {
		return nil
	}

	d.processed.Add(1)
	if report.FailedCount() > 0 {
		d.failures.Add(1)
		return report.Outcomes[0].Err
	}
	return nil
}

// current daemon status
func (d *Daemon) Status() *DaemonStatus {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.watcher == nil {
		return &DaemonStatus{Running: false}
	}

	types := d.options.Extensions
	if len(types) == 0 {
		types = util.ImageExtensions
	}

	return &DaemonStatus{
		Running:        true,
		WatchedDirs:    d.watcher.dirs,
		FileTypes:      types,
		ProcessedFiles: int(d.processed.Load()),
		ErrorCount:     int(d.failures.Load()),
		StartTime:      d.started,
	}
}

func (d *Daemon) IsRunning() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.watcher != nil
}
