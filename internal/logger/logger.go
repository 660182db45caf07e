// Package logger provides a simple leveled logger for the application.
// It supports three levels: off (no output), normal (info/warn/error),
// and verbose (includes debug). Loggers derived with Named share the
// parent's level and output, and are safe for concurrent use.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

// Level controls the verbosity of the logger.
type Level int

const (
	// LevelOff disables all log output.
	LevelOff Level = iota
	// LevelNormal enables info, warn, and error output.
	LevelNormal
	// LevelVerbose enables all output including debug.
	LevelVerbose
)

// String returns the config name of the level.
func (l Level) String() string {
	switch l {
	case LevelOff:
		return "off"
	case LevelNormal:
		return "normal"
	case LevelVerbose:
		return "verbose"
	default:
		return "unknown"
	}
}

// ParseLevel maps a config value to a Level. Accepts the names returned
// by Level.String plus the common aliases "quiet" and "debug".
func ParseLevel(name string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "off", "quiet", "none":
		return LevelOff, nil
	case "", "normal", "info":
		return LevelNormal, nil
	case "verbose", "debug":
		return LevelVerbose, nil
	default:
		return LevelNormal, fmt.Errorf("unknown log level %q", name)
	}
}

// sink is the state shared by a logger and every logger derived from it.
type sink struct {
	mu     sync.RWMutex
	level  Level
	debug  *log.Logger
	info   *log.Logger
	warn   *log.Logger
	errLog *log.Logger
}

// Logger is a leveled logger. All methods are safe for concurrent use.
type Logger struct {
	sink   *sink
	prefix string // "name: " for named loggers, empty for the root
}

// New creates a logger with the given level, writing to the given output.
// If out is nil, os.Stderr is used.
func New(level Level, out io.Writer) *Logger {
	if out == nil {
		out = os.Stderr
	}

	flags := log.Ltime

	return &Logger{sink: &sink{
		level:  level,
		debug:  log.New(out, "[DBG] ", flags),
		info:   log.New(out, "[INF] ", flags),
		warn:   log.New(out, "[WRN] ", flags),
		errLog: log.New(out, "[ERR] ", flags),
	}}
}

// Named returns a logger that prefixes every message with "name: ".
// Nested names are joined with dots ("audio.cache: ...").
func (l *Logger) Named(name string) *Logger {
	prefix := name
	if l.prefix != "" {
		prefix = strings.TrimSuffix(l.prefix, ": ") + "." + name
	}
	return &Logger{sink: l.sink, prefix: prefix + ": "}
}

// SetLevel changes the log level at runtime, for this logger and every
// logger sharing its output.
func (l *Logger) SetLevel(level Level) {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	l.sink.level = level
}

// GetLevel returns the current log level.
func (l *Logger) GetLevel() Level {
	l.sink.mu.RLock()
	defer l.sink.mu.RUnlock()
	return l.sink.level
}

// Debug logs a message at debug level (only visible in verbose mode).
func (l *Logger) Debug(format string, args ...any) {
	l.output(LevelVerbose, l.sink.debug, format, args)
}

// Info logs a message at info level.
func (l *Logger) Info(format string, args ...any) {
	l.output(LevelNormal, l.sink.info, format, args)
}

// Warn logs a message at warn level.
func (l *Logger) Warn(format string, args ...any) {
	l.output(LevelNormal, l.sink.warn, format, args)
}

// Error logs a message at error level.
func (l *Logger) Error(format string, args ...any) {
	l.output(LevelNormal, l.sink.errLog, format, args)
}

func (l *Logger) output(min Level, dst *log.Logger, format string, args []any) {
	l.sink.mu.RLock()
	defer l.sink.mu.RUnlock()
	if l.sink.level >= min {
		dst.Output(3, l.prefix+fmt.Sprintf(format, args...))
	}
}
