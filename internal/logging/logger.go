// Package logging provides unified logging for the auto toolkit.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Logger writes leveled messages to the unified log file.
type Logger interface {
	// Debug outputs debug information (only when AUTO_DEBUG=1)
	Debug(format string, args ...interface{})

	// Info writes an informational message to the log file
	Info(format string, args ...interface{})

	// Warn outputs a warning to stderr and the log file
	Warn(format string, args ...interface{})

	// Error outputs an error to stderr and the log file
	Error(format string, args ...interface{})

	// SetAction sets the current action name for log context
	SetAction(action string)

	// StartTimer starts a timer for measuring operation duration
	StartTimer(operation string) *Timer

	// Close closes the log file
	Close() error
}

// Timer measures the duration of an operation.
type Timer struct {
	operation string
	start     time.Time
	logger    *fileLogger
}

// Stop stops the timer and logs the elapsed time.
func (t *Timer) Stop() time.Duration {
	elapsed := time.Since(t.start)
	if t.logger != nil {
		t.logger.logWithLevel("INFO", "%s completed in %v", t.operation, elapsed)
	}
	return elapsed
}

type fileLogger struct {
	file   *os.File
	action string
	debug  bool
	mu     sync.Mutex
}

// New creates a Logger that appends to the given file, creating parent
// directories as needed.
func New(logPath string, debug bool) (Logger, error) {
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return &fileLogger{
		file:  file,
		debug: debug,
	}, nil
}

// NewStdout creates a logger that only writes to stdout/stderr.
func NewStdout(debug bool) Logger {
	return &fileLogger{
		debug: debug,
	}
}

func (l *fileLogger) SetAction(action string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.action = action
}

// logWithLevel writes a log entry with the specified level.
func (l *fileLogger) logWithLevel(level string, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return
	}

	msg := fmt.Sprintf(format, args...)
	timestamp := time.Now().Format("06-01-02 15:04:05.0")

	// Format: [timestamp] [level] [action] message
	line := fmt.Sprintf("[%s] [%-5s] [%s] %s\n", timestamp, level, l.action, msg)
	if _, err := l.file.WriteString(line); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write to log file: %v\n", err)
	}
}

func (l *fileLogger) Debug(format string, args ...interface{}) {
	if !l.debug {
		return
	}

	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(os.Stderr, "[DEBUG] %s\n", msg)

	l.logWithLevel("DEBUG", "%s", msg)
}

func (l *fileLogger) Info(format string, args ...interface{}) {
	l.logWithLevel("INFO", format, args...)
}

func (l *fileLogger) Warn(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(os.Stderr, "Warning: %s\n", msg)
	l.logWithLevel("WARN", "%s", msg)
}

func (l *fileLogger) Error(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(os.Stderr, "Error: %s\n", msg)
	l.logWithLevel("ERROR", "%s", msg)
}

func (l *fileLogger) StartTimer(operation string) *Timer {
	if l.file != nil {
		l.logWithLevel("INFO", "%s started", operation)
	}
	return &Timer{
		operation: operation,
		start:     time.Now(),
		logger:    l,
	}
}

func (l *fileLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

// Global logger instance
var globalLogger Logger = NewStdout(os.Getenv("AUTO_DEBUG") == "1")

// SetGlobal sets the global logger instance.
func SetGlobal(l Logger) {
	globalLogger = l
}

// Global returns the global logger instance.
func Global() Logger {
	return globalLogger
}

// Debug logs debug information using the global logger.
func Debug(format string, args ...interface{}) {
	globalLogger.Debug(format, args...)
}

// Info logs an informational message using the global logger.
func Info(format string, args ...interface{}) {
	globalLogger.Info(format, args...)
}

// Warn logs a warning using the global logger.
func Warn(format string, args ...interface{}) {
	globalLogger.Warn(format, args...)
}

// Error logs an error using the global logger.
func Error(format string, args ...interface{}) {
	globalLogger.Error(format, args...)
}

// StartTimer starts a timer using the global logger.
func StartTimer(operation string) *Timer {
	return globalLogger.StartTimer(operation)
}
