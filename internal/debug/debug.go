package debug

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Level orders log messages by verbosity.
type Level int

const (
	LevelError Level = iota
	LevelInfo
	LevelDebug
	LevelTrace
)

var levelNames = [...]string{"ERROR", "INFO ", "DEBUG", "TRACE"}

// String returns the padded tag written in front of each message.
func (l Level) String() string {
	if l < LevelError || l > LevelTrace {
		return "?????"
	}
	return levelNames[l]
}

// ParseLevel maps "error", "info", "debug" and "trace" to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error":
		return LevelError, nil
	case "", "info":
		return LevelInfo, nil
	case "debug":
		return LevelDebug, nil
	case "trace":
		return LevelTrace, nil
	}
	return LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// Logger writes timestamped, leveled messages. The zero value discards
// everything. Safe for concurrent use.
type Logger struct {
	mu    sync.Mutex
	w     io.Writer
	file  *os.File
	level Level
}

// New creates a logger writing messages at or below level to w.
func New(w io.Writer, level Level) *Logger {
	return &Logger{w: w, level: level}
}

// Discard returns a logger that drops all output.
func Discard() *Logger {
	return &Logger{}
}

// Open creates a logger appending to the file at path.
// If path is empty, uses "debug.log" in the current directory.
func Open(path string, level Level) (*Logger, error) {
	if path == "" {
		path = "debug.log"
	}

	// Ensure directory exists
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open debug log: %w", err)
	}
	return &Logger{w: f, file: f, level: level}, nil
}

// FromEnv opens the file named by WEBAPP_DEBUG, or returns a discarding
// logger when the variable is unset.
func FromEnv(level Level) (*Logger, error) {
	path := os.Getenv("WEBAPP_DEBUG")
	if path == "" {
		return Discard(), nil
	}
	return Open(path, level)
}

// Close closes the underlying file, if the logger owns one.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		l.w = nil
		return err
	}
	return nil
}

// SetLevel changes the maximum level that is written.
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	l.level = level
	l.mu.Unlock()
}

// Enabled reports whether messages at level would be written.
func (l *Logger) Enabled(level Level) bool {
	if l == nil {
		return false
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w != nil && level <= l.level
}

func (l *Logger) logf(level Level, format string, args ...any) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.w == nil || level > l.level {
		return
	}
	timestamp := time.Now().Format("15:04:05.000")
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(l.w, "[%s] [%s] %s\n", timestamp, level, msg)
	if l.file != nil {
		l.file.Sync()
	}
}

// Errorf logs at error level.
func (l *Logger) Errorf(format string, args ...any) { l.logf(LevelError, format, args...) }

// Infof logs at info level.
func (l *Logger) Infof(format string, args ...any) { l.logf(LevelInfo, format, args...) }

// Debugf logs at debug level.
func (l *Logger) Debugf(format string, args ...any) { l.logf(LevelDebug, format, args...) }

// Tracef logs at trace level.
func (l *Logger) Tracef(format string, args ...any) { l.logf(LevelTrace, format, args...) }

// Assert logs an assertion failure when cond is false and returns cond.
// Execution always continues.
func (l *Logger) Assert(cond bool, format string, args ...any) bool {
	if !cond {
		if format == "" {
			format = "assertion fail"
		}
		l.logf(LevelError, "assert: "+format, args...)
	}
	return cond
}
