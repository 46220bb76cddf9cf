package search

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"
)

type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARNING
	ERROR
)

const (
	maxLogSize      = 10 * 1024 * 1024 // 10MB
	logBufferSize   = 32 * 1024        // 32KB
	maxLogRotations = 5
)

var levelNames = map[LogLevel]string{
	DEBUG:   "DEBUG",
	INFO:    "INFO",
	WARNING: "WARNING",
	ERROR:   "ERROR",
}

func (l LogLevel) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("LogLevel(%d)", int(l))
}

// ParseLogLevel parses debug, info, warning (or warn) and error
func ParseLogLevel(s string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return DEBUG, nil
	case "", "info":
		return INFO, nil
	case "warning", "warn":
		return WARNING, nil
	case "error":
		return ERROR, nil
	}
	return INFO, fmt.Errorf("unknown log level %q", s)
}

// Logger writes leveled lines to a rotating file. The file is shared between
// runs, so rotation and flushes happen under a lock file.
type Logger struct {
	mu     sync.Mutex
	writer *bufio.Writer
	file   *os.File
	lock   *flock.Flock
	level  LogLevel
	path   string
}

var (
	globalLogger *Logger
	loggerMu     sync.Mutex
)

// DefaultLogDir is where logs go when no directory is configured
func DefaultLogDir() string {
	return filepath.Join(os.TempDir(), "targetsearch-logs")
}

// NewLogger opens dir/search.log, rotating it first if it is too large
func NewLogger(dir string, level LogLevel) (*Logger, error) {
	if dir == "" {
		dir = DefaultLogDir()
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	logPath := filepath.Join(dir, "search.log")
	lock := flock.New(logPath + ".lock")
	if err := lock.Lock(); err != nil {
		return nil, fmt.Errorf("failed to acquire lock on %s: %w", logPath, err)
	}
	defer lock.Unlock()

	rotateLogFile(logPath)

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	writer := bufio.NewWriterSize(file, logBufferSize)
	fmt.Fprintf(writer, "\n=== Log started at %s ===\n", time.Now().Format("2006-01-02 15:04:05"))
	if err := writer.Flush(); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to write log file: %w", err)
	}

	return &Logger{
		writer: writer,
		file:   file,
		lock:   lock,
		level:  level,
		path:   logPath,
	}, nil
}

// rotateLogFile rotates log files if necessary
func rotateLogFile(logPath string) {
	fi, err := os.Stat(logPath)
	if err != nil || fi.Size() <= maxLogSize {
		return
	}
	for i := maxLogRotations - 1; i > 0; i-- {
		oldPath := fmt.Sprintf("%s.%d", logPath, i)
		newPath := fmt.Sprintf("%s.%d", logPath, i+1)
		os.Rename(oldPath, newPath)
	}
	os.Rename(logPath, logPath+".1")
}

// Path returns the log file location
func (l *Logger) Path() string {
	return l.path
}

func (l *Logger) logf(level LogLevel, format string, args ...interface{}) {
	if l == nil || level < l.level {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.writer == nil {
		return
	}
	ts := time.Now().Format("2006-01-02 15:04:05.000")
	fmt.Fprintf(l.writer, "%s [%s] "+format+"\n", append([]interface{}{ts, level}, args...)...)
	if level >= WARNING || l.writer.Buffered() > logBufferSize/2 {
		l.flushLocked()
	}
}

func (l *Logger) flushLocked() {
	if err := l.lock.Lock(); err != nil {
		return
	}
	defer l.lock.Unlock()
	l.writer.Flush()
}

// Close flushes pending lines and closes the log file
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.writer != nil {
		if err := l.lock.Lock(); err != nil {
			return fmt.Errorf("failed to acquire lock on %s: %w", l.path, err)
		}
		err := l.writer.Flush()
		l.lock.Unlock()
		if err != nil {
			return fmt.Errorf("failed to flush log buffer: %w", err)
		}
		l.writer = nil
	}

	if l.file != nil {
		if err := l.file.Sync(); err != nil {
			return fmt.Errorf("failed to sync log file: %w", err)
		}
		if err := l.file.Close(); err != nil {
			return fmt.Errorf("failed to close log file: %w", err)
		}
		l.file = nil
	}
	return nil
}

func getLogger() *Logger {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	return globalLogger
}

// InitLogger installs the package logger. Until it is called nothing is logged.
func InitLogger(dir string, level LogLevel) (*Logger, error) {
	l, err := NewLogger(dir, level)
	if err != nil {
		return nil, err
	}
	loggerMu.Lock()
	prev := globalLogger
	globalLogger = l
	loggerMu.Unlock()
	if prev != nil {
		prev.Close()
	}
	return l, nil
}

// CloseLogger flushes and removes the package logger
func CloseLogger() {
	loggerMu.Lock()
	l := globalLogger
	globalLogger = nil
	loggerMu.Unlock()
	if l != nil {
		if err := l.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to close logger: %v\n", err)
		}
	}
}

func logDebug(format string, args ...interface{}) {
	getLogger().logf(DEBUG, format, args...)
}

func logInfo(format string, args ...interface{}) {
	getLogger().logf(INFO, format, args...)
}

func logWarning(format string, args ...interface{}) {
	getLogger().logf(WARNING, format, args...)
}

func logError(format string, args ...interface{}) {
	getLogger().logf(ERROR, format, args...)
}

func LogInfo(format string, args ...interface{}) {
	logInfo(format, args...)
}

func LogError(format string, args ...interface{}) {
	logError(format, args...)
}
