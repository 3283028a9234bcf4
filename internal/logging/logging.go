// Package logging provides the process logger: timestamped lines to stderr
// plus an optional rotating file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger writes leveled, timestamped lines to the console and, when
// configured, to a size-rotated log file.
type Logger struct {
	mu      sync.Mutex
	console io.Writer
	file    *lumberjack.Logger
}

// New creates a logger. If logsDir is empty, output goes to stderr only;
// otherwise a rotating app.log (5 MB, 3 backups) is written there as well.
func New(logsDir string) *Logger {
	l := &Logger{console: os.Stderr}
	if logsDir != "" {
		l.file = &lumberjack.Logger{
			Filename:   filepath.Join(logsDir, "app.log"),
			MaxSize:    5, // megabytes
			MaxBackups: 3,
		}
	}
	return l
}

// Infof logs at INFO level.
func (l *Logger) Infof(format string, args ...interface{}) { l.logf("INFO", format, args...) }

// Warnf logs at WARN level.
func (l *Logger) Warnf(format string, args ...interface{}) { l.logf("WARN", format, args...) }

// Errorf logs at ERROR level.
func (l *Logger) Errorf(format string, args ...interface{}) { l.logf("ERROR", format, args...) }

func (l *Logger) logf(level, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "%s [%s] %s\n", now.Format("15:04:05"), level, msg)
	if l.file != nil {
		fmt.Fprintf(l.file, "%s [%s] %s\n", now.Format("2006-01-02 15:04:05"), level, msg)
	}
}

// Close flushes and closes the file sink, if any.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

// SetConsole redirects console output; tests use this to capture lines.
func (l *Logger) SetConsole(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.console = w
}
