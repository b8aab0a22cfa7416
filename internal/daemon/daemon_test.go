package daemon

import (
	"bytes"
	"context"
	"errors"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"mirage/internal/apply"
	"mirage/internal/catalog"
	"mirage/internal/metadata"
	"mirage/internal/synth"
	"mirage/internal/util"
)

type recordingWriter struct {
	mu      sync.Mutex
	fail    bool
	written map[string]metadata.Record
}

func (w *recordingWriter) Write(file string, rec metadata.Record) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.fail {
		return metadata.ErrExternalProcess
	}
	w.written[file] = rec
	return nil
}

func (w *recordingWriter) Close() error { return nil }

func (w *recordingWriter) count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.written)
}

func testDaemon(t *testing.T, dirs []string, w *recordingWriter, directives metadata.Directives) (*Daemon, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	logger := util.NewWriterLogger(&syncWriter{buf: &logs}, util.LevelDebug)

	cat := catalog.Default()
	gen := synth.New(cat, synth.WithRand(rand.New(rand.NewPCG(3, 4))))
	planner := apply.NewPlanner(cat, gen, apply.PlanOptions{Perturb: true})
	coord := apply.NewCoordinator(func() (apply.Writer, error) { return w, nil }, apply.Options{Logger: logger})

	opts := DefaultWatchOptions()
	opts.Settle = 50 * time.Millisecond

	return NewDaemon(dirs, opts, planner, coord, directives, logger), &logs
}

type syncWriter struct {
	mu  sync.Mutex
	buf *bytes.Buffer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Write(p)
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestHandleFile(t *testing.T) {
	w := &recordingWriter{written: map[string]metadata.Record{}}
	d, _ := testDaemon(t, nil, w, metadata.Directives{metadata.Make: metadata.KeepValue()})

	if err := d.handleFile("/photos/a.jpg"); err != nil {
		t.Fatalf("handleFile: %v", err)
	}
	rec, ok := w.written["/photos/a.jpg"]
	if !ok {
		t.Fatalf("file was not written")
	}
	if !rec.Get(metadata.Make).IsOmitted() || !rec.Get(metadata.Model).IsSet() {
		t.Fatalf("directives not honoured: %v", rec.Strings())
	}

	w.fail = true
	if err := d.handleFile("/photos/b.jpg"); !errors.Is(err, metadata.ErrExternalProcess) {
		t.Fatalf("expected ErrExternalProcess, got %v", err)
	}
	if d.processed.Load() != 2 || d.failures.Load() != 1 {
		t.Fatalf("counters = %d/%d", d.processed.Load(), d.failures.Load())
	}
}

func TestDaemon_AppliesNewImages(t *testing.T) {
	dir := t.TempDir()
	w := &recordingWriter{written: map[string]metadata.Record{}}
	d, logs := testDaemon(t, []string{dir}, w, nil)

	if err := d.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer d.Stop()

	if err := d.Start(context.Background()); err == nil {
		t.Fatalf("second Start should fail")
	}

	img := filepath.Join(dir, "new.jpg")
	if err := os.WriteFile(img, []byte("jpeg"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	waitFor(t, "the image to be applied", func() bool { return w.count() == 1 })

	// a rewrite inside the cooldown is the daemon's own write
	if err := os.WriteFile(img, []byte("jpeg2"), 0644); err != nil {
		t.Fatal(err)
	}
	time.Sleep(300 * time.Millisecond)
	if w.count() != 1 {
		t.Fatalf("file applied %d times", w.count())
	}

	status := d.Status()
	if !status.Running || status.ProcessedFiles != 1 || status.WatchedDirs[0] != dir {
		t.Fatalf("status = %+v", status)
	}

	if err := d.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if d.IsRunning() || d.Status().Running {
		t.Fatalf("daemon still running after Stop")
	}

	var out string
	waitFor(t, "the stop log line", func() bool {
		out = logs.String()
		return strings.Contains(out, "Daemon stopped after 1 files")
	})
}

func TestNewWatcher_RejectsMissingDirs(t *testing.T) {
	logger := util.NewWriterLogger(&bytes.Buffer{}, util.LevelInfo)
	_, err := NewWatcher([]string{filepath.Join(t.TempDir(), "missing")}, DefaultWatchOptions(), nil, logger)
	if err == nil {
		t.Fatalf("expected an error without valid directories")
	}
}

func TestWatcher_Filters(t *testing.T) {
	w := &Watcher{
		options:   WatchOptions{Extensions: []string{".JPG"}, ExcludeDirs: []string{".git"}, Cooldown: time.Minute},
		processed: map[string]time.Time{},
	}

	if !w.matches("/x/a.jpg") || w.matches("/x/a.png") {
		t.Fatalf("extension filter is wrong")
	}
	if !w.excluded("/repo/.git") || w.excluded("/repo/src") {
		t.Fatalf("exclude filter is wrong")
	}

	if !w.claim("/x/a.jpg") {
		t.Fatalf("first claim should succeed")
	}
	if w.claim("/x/a.jpg") {
		t.Fatalf("claim inside the cooldown should fail")
	}

	w.options.Extensions = nil
	if !w.matches("/x/a.HEIC") || w.matches("/x/a.txt") {
		t.Fatalf("default filter should accept images only")
	}
}

func TestWatcher_PruneKeepsCooldown(t *testing.T) {
	now := time.Now()
	entries := func() map[string]time.Time {
		return map[string]time.Time{
			"recent.jpg": now.Add(-30 * time.Minute),
			"two.jpg":    now.Add(-2 * time.Hour),
			"four.jpg":   now.Add(-4 * time.Hour),
		}
	}

	cases := []struct {
		cooldown time.Duration
		want     []string
	}{
		{time.Minute, []string{"recent.jpg"}},
		{3 * time.Hour, []string{"recent.jpg", "two.jpg"}},
	}

	for _, tc := range cases {
		w := &Watcher{options: WatchOptions{Cooldown: tc.cooldown}, processed: entries()}
		w.prune(now)

		if len(w.processed) != len(tc.want) {
			t.Fatalf("cooldown %s: kept %v, want %v", tc.cooldown, w.processed, tc.want)
		}
		for _, path := range tc.want {
			if _, ok := w.processed[path]; !ok {
				t.Fatalf("cooldown %s: %s was pruned", tc.cooldown, path)
			}
		}
		if tc.cooldown > time.Hour && w.claim("two.jpg") {
			t.Fatalf("cooldown %s: pruning let two.jpg be claimed again", tc.cooldown)
		}
	}
}

func TestPIDFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run", "daemon.pid")

	if _, err := RunningPID(path); !errors.Is(err, ErrNotRunning) {
		t.Fatalf("expected ErrNotRunning, got %v", err)
	}

	if err := WritePID(path, os.Getpid()); err != nil {
		t.Fatalf("WritePID: %v", err)
	}
	if pid, err := RunningPID(path); err != nil || pid != os.Getpid() {
		t.Fatalf("RunningPID = %d, %v", pid, err)
	}

	// beyond any pid_max
	if err := WritePID(path, 1<<30); err != nil {
		t.Fatal(err)
	}
	if _, err := RunningPID(path); !errors.Is(err, ErrNotRunning) {
		t.Fatalf("stale pid should read as not running, got %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("stale pid file should be removed")
	}

	if err := os.WriteFile(path, []byte("garbage"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadPID(path); err == nil {
		t.Fatalf("malformed pid file should fail")
	}
}
