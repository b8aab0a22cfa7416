// BYZRA ⸻ internal/daemon/pidfile.go
// pid file tracking for daemon on|off|status

package daemon

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
)

var ErrNotRunning = errors.New("daemon is not running")

// ~/.mirage/daemon.pid
func DefaultPIDFile() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".mirage", "daemon.pid"), nil
}

func WritePID(path string, pid int) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("could not create daemon directory: %w", err)
	}
	return os.WriteFile(path, strconv.AppendInt(nil, int64(pid), 10), 0644)
}

func ReadPID(path string) (int, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return 0, ErrNotRunning
	}
	if err != nil {
		return 0, fmt.Errorf("could not read daemon PID: %w", err)
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return 0, fmt.Errorf("malformed PID file %s", path)
	}
	return pid, nil
}

// pid of the live daemon; a stale pid file is removed
func RunningPID(path string) (int, error) {
	pid, err := ReadPID(path)
	if err != nil {
		return 0, err
	}

	if !alive(pid) {
		os.Remove(path)
		return 0, ErrNotRunning
	}
	return pid, nil
}

// asks the daemon to shut down and drops its pid file
func StopProcess(path string) (int, error) {
	pid, err := RunningPID(path)
	if err != nil {
		return 0, err
	}

	proc, err := os.FindProcess(pid)
	if err != nil {
		return pid, err
	}
	if err := proc.Signal(syscall.SIGTERM); err != nil {
		return pid, fmt.Errorf("could not signal daemon: %w", err)
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return pid, fmt.Errorf("could not remove PID file: %w", err)
	}
	return pid, nil
}

func alive(pid int) bool {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return proc.Signal(syscall.Signal(0)) == nil
}
