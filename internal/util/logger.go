// BYZRA ⸻ internal/util/logger.go
// leveled logging for batch runs and the watch daemon

package util

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// severity of log entries
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarning
	LevelError
)

// Logger writes timestamped lines to a file or any writer.
//
// A nil *Logger discards everything, so library code can log
// unconditionally.
type Logger struct {
	mu    sync.Mutex
	out   io.Writer
	file  *os.File
	level LogLevel
	path  string
}

// file logger, appending to logPath
func NewLogger(logPath string, level LogLevel) (*Logger, error) {
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	logFile, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return &Logger{out: logFile, file: logFile, level: level, path: logPath}, nil
}

// logger over an arbitrary writer; Rotate is not available
func NewWriterLogger(w io.Writer, level LogLevel) *Logger {
	return &Logger{out: w, level: level}
}

func (l *Logger) Log(level LogLevel, message string) error {
	if l == nil {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.out == nil {
		return fmt.Errorf("logger closed")
	}
	if level < l.level {
		return nil
	}

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	_, err := fmt.Fprintf(l.out, "[%s] %s: %s\n", timestamp, level, message)
	return err
}

func (l *Logger) Debug(message string) error { return l.Log(LevelDebug, message) }

func (l *Logger) Info(message string) error { return l.Log(LevelInfo, message) }

func (l *Logger) Warning(message string) error { return l.Log(LevelWarning, message) }

func (l *Logger) Error(message string) error { return l.Log(LevelError, message) }

func (l *Logger) Close() error {
	if l == nil {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	return l.closeLocked()
}

func (l *Logger) closeLocked() error {
	l.out = nil
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// archives the current log file and starts a new one
func (l *Logger) Rotate() error {
	if l == nil {
		return nil
	}

	l.mu.Lock()
	if l.path == "" {
		l.mu.Unlock()
		return fmt.Errorf("logger has no file to rotate")
	}

	if err := l.closeLocked(); err != nil {
		l.mu.Unlock()
		return fmt.Errorf("failed to close log file: %w", err)
	}

	newPath := fmt.Sprintf("%s.%s", l.path, time.Now().Format("20060102-150405"))
	if err := os.Rename(l.path, newPath); err != nil {
		l.mu.Unlock()
		return fmt.Errorf("failed to rotate log file: %w", err)
	}

	logFile, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		l.mu.Unlock()
		return fmt.Errorf("failed to create new log file: %w", err)
	}
	l.file = logFile
	l.out = logFile
	l.mu.Unlock()

	return l.Info(fmt.Sprintf("Log rotated, previous log saved as %s", newPath))
}

// parses a level name from config
func ParseLogLevel(s string) (LogLevel, error) {
	switch s {
	case "debug", "DEBUG":
		return LevelDebug, nil
	case "", "info", "INFO":
		return LevelInfo, nil
	case "warning", "warn", "WARNING":
		return LevelWarning, nil
	case "error", "ERROR":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level: %s", s)
	}
}

func (level LogLevel) String() string {
	switch level {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarning:
		return "WARNING"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}
