// Package log is a small leveled logger used by the reader and the commands.
// Messages go to stderr unless redirected with SetOutput.
package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
)

// Level constants matching slog levels.
const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

var (
	level atomic.Int64

	mu  sync.Mutex
	out io.Writer = os.Stderr
)

func init() {
	level.Store(int64(LevelInfo))
}

// SetLevel sets the global log level.
func SetLevel(l slog.Level) {
	level.Store(int64(l))
}

// GetLevel returns the current log level.
func GetLevel() slog.Level {
	return slog.Level(level.Load())
}

// SetOutput redirects all messages to w and returns the previous writer.
func SetOutput(w io.Writer) io.Writer {
	mu.Lock()
	defer mu.Unlock()
	prev := out
	out = w
	return prev
}

// Enabled reports whether messages at level l are emitted.
func Enabled(l slog.Level) bool {
	return slog.Level(level.Load()) <= l
}

func emit(prefix, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintf(out, prefix+format+"\n", args...)
}

// Debug logs a debug message if the level allows it.
func Debug(format string, args ...any) {
	if !Enabled(LevelDebug) {
		return
	}
	emit("[DEBUG] ", format, args...)
}

// Info logs an info message if the level allows it.
func Info(format string, args ...any) {
	if !Enabled(LevelInfo) {
		return
	}
	emit("[INFO] ", format, args...)
}

// Warn logs a warning message if the level allows it.
func Warn(format string, args ...any) {
	if !Enabled(LevelWarn) {
		return
	}
	emit("[WARN] ", format, args...)
}

// Error logs an error message (always emitted).
func Error(format string, args ...any) {
	emit("[ERROR] ", format, args...)
}
