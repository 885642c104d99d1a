// Package logger writes liftlog's diagnostic log to a file. The terminal
// belongs to the UI while liftlog runs, so nothing here ever writes to
// stdout or stderr after Init succeeds.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

var (
	slogLogger *slog.Logger
	levelVar   = new(slog.LevelVar)
	logFile    *os.File
	mu         sync.Mutex
	logPath    string
)

// DefaultLogPath returns the log file used when none is configured
func DefaultLogPath() string {
	return filepath.Join(os.TempDir(), "liftlog.log")
}

// SetDebug enables or disables debug level logging
func SetDebug(enabled bool) {
	if enabled {
		levelVar.Set(slog.LevelDebug)
	} else {
		levelVar.Set(slog.LevelInfo)
	}
}

// Init opens path for appending and routes all log calls to it. Calling
// Init again replaces the previous destination.
func Init(path string) error {
	mu.Lock()
	defer mu.Unlock()

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	if logFile != nil {
		logFile.Close()
	}
	logFile = f
	logPath = path
	slogLogger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: levelVar}))

	slogLogger.Info("Logger initialized", "path", path, "pid", os.Getpid())
	return nil
}

// InitWriter routes log output to w. Used by tests.
func InitWriter(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()

	slogLogger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: levelVar}))
}

// Path returns the current log file path, or "" when logging to a writer or disabled
func Path() string {
	mu.Lock()
	defer mu.Unlock()
	return logPath
}

// logWithLevel logs a message at the given level using printf-style formatting.
// Messages are dropped until Init has been called.
func logWithLevel(level slog.Level, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()

	if slogLogger == nil {
		return
	}
	if !slogLogger.Enabled(context.Background(), level) {
		return
	}
	slogLogger.Log(context.Background(), level, fmt.Sprintf(format, args...))
}

// Debug writes a debug message to the log file (only if debug is enabled)
func Debug(format string, args ...any) {
	logWithLevel(slog.LevelDebug, format, args...)
}

// Info writes an info message to the log file
func Info(format string, args ...any) {
	logWithLevel(slog.LevelInfo, format, args...)
}

// Warn writes a warning message to the log file
func Warn(format string, args ...any) {
	logWithLevel(slog.LevelWarn, format, args...)
}

// Error writes an error message to the log file
func Error(format string, args ...any) {
	logWithLevel(slog.LevelError, format, args...)
}

// Close closes the log file. Later log calls are dropped.
func Close() {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	slogLogger = nil
	logPath = ""
}
