// ABOUTME: Leveled logging wrapper with slog level constants and a switchable sink
// ABOUTME: Defaults to stderr; point it at a file while a backend owns the terminal

package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// Level constants matching slog levels.
const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

var level atomic.Int64

var sink = struct {
	sync.Mutex
	w io.Writer
}{w: os.Stderr}

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

// ParseLevel maps "debug", "info", "warn"/"warning" and "error" to a level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "", "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// SetOutput redirects log lines to w and returns the previous writer.
// A nil w discards output.
func SetOutput(w io.Writer) io.Writer {
	if w == nil {
		w = io.Discard
	}
	sink.Lock()
	defer sink.Unlock()
	prev := sink.w
	sink.w = w
	return prev
}

// OpenFile appends log output to path. Close the returned file after
// restoring the previous output.
func OpenFile(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	SetOutput(f)
	return f, nil
}

// Debug logs a debug message if the level allows it.
func Debug(format string, args ...any) {
	logf(LevelDebug, "DEBUG", format, args...)
}

// Info logs an info message if the level allows it.
func Info(format string, args ...any) {
	logf(LevelInfo, "INFO", format, args...)
}

// Warn logs a warning message if the level allows it.
func Warn(format string, args ...any) {
	logf(LevelWarn, "WARN", format, args...)
}

// Error logs an error message (always emitted).
func Error(format string, args ...any) {
	logf(LevelError, "ERROR", format, args...)
}

func logf(l slog.Level, tag, format string, args ...any) {
	if l < LevelError && slog.Level(level.Load()) > l {
		return
	}
	line := fmt.Sprintf("%s [%s] "+format+"\n", append([]any{time.Now().Format("15:04:05.000"), tag}, args...)...)

	sink.Lock()
	defer sink.Unlock()
	_, _ = io.WriteString(sink.w, line)
}
