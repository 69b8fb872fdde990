// Package logging provides the leveled console logger plus the two per-run
// file sinks: a general activity log and an error-only log. Both files are
// append-only and named after the run ID so concurrent or repeated runs
// never clobber each other.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/opusmill/opusmill/internal/config"
	"github.com/opusmill/opusmill/internal/term"
)

// Logger writes leveled, optionally colored lines to the console and mirrors
// them (uncolored) into the run's log files. Error-level lines additionally
// land in the error-only file.
type Logger struct {
	mu      sync.Mutex
	runID   string
	main    *os.File
	errOnly *os.File

	mainPath string
	errPath  string
}

// NewLogger configures colors from cfg and opens the per-run log files under
// cfg.LogDir (falling back to cfg.DestDir). The directory is created if
// missing. Call Close when done.
func NewLogger(cfg *config.Config) (*Logger, error) {
	term.Configure(cfg.ColorMode)

	dir := cfg.LogDir
	if dir == "" {
		dir = cfg.DestDir
	}

	l := &Logger{runID: shortRunID()}
	if dir == "" {
		// Check-only mode has no destination; console output only.
		return l, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	l.mainPath = filepath.Join(dir, "opusmill_"+l.runID+".log")
	l.errPath = filepath.Join(dir, "opusmill_"+l.runID+".errors.log")

	main, err := os.OpenFile(l.mainPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	errOnly, err := os.OpenFile(l.errPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		main.Close()
		return nil, err
	}
	l.main = main
	l.errOnly = errOnly
	return l, nil
}

// shortRunID returns the first UUID group, enough to keep per-run file
// names unique without making them unwieldy.
func shortRunID() string {
	id := uuid.NewString()
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}

// RunID returns this run's identifier.
func (l *Logger) RunID() string { return l.runID }

// MainLogPath returns the general activity log path ("" when file sinks are disabled).
func (l *Logger) MainLogPath() string { return l.mainPath }

// ErrorLogPath returns the error-only log path ("" when file sinks are disabled).
func (l *Logger) ErrorLogPath() string { return l.errPath }

// Close flushes and closes the file sinks.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	var first error
	if l.main != nil {
		first = l.main.Close()
		l.main = nil
	}
	if l.errOnly != nil {
		if err := l.errOnly.Close(); err != nil && first == nil {
			first = err
		}
		l.errOnly = nil
	}
	return first
}

func (l *Logger) line(level, color, text string) {
	ts := time.Now().Format("2006-01-02 15:04:05")
	l.mu.Lock()
	defer l.mu.Unlock()
	plain := ts + " [" + level + "] " + text + "\n"
	out := os.Stdout
	if level == "ERROR" {
		out = os.Stderr
	}
	if color != "" {
		_, _ = io.WriteString(out, ts+" "+color+"["+level+"]"+term.NC+" "+text+"\n")
	} else {
		_, _ = io.WriteString(out, plain)
	}
	if l.main != nil {
		_, _ = io.WriteString(l.main, plain)
	}
	if level == "ERROR" && l.errOnly != nil {
		_, _ = io.WriteString(l.errOnly, plain)
	}
}

// Info logs at INFO level (blue).
func (l *Logger) Info(format string, args ...interface{}) {
	l.line("INFO", term.Blue, fmt.Sprintf(format, args...))
}

// Success logs at SUCCESS level (green).
func (l *Logger) Success(format string, args ...interface{}) {
	l.line("SUCCESS", term.Green, fmt.Sprintf(format, args...))
}

// Warn logs at WARN level (yellow).
func (l *Logger) Warn(format string, args ...interface{}) {
	l.line("WARN", term.Yellow, fmt.Sprintf(format, args...))
}

// Error logs at ERROR level (red), also to stderr and the error-only file.
func (l *Logger) Error(format string, args ...interface{}) {
	l.line("ERROR", term.Red, fmt.Sprintf(format, args...))
}

// Debug logs at DEBUG level (cyan) only when verbose; no-op otherwise.
func (l *Logger) Debug(verbose bool, format string, args ...interface{}) {
	if !verbose {
		return
	}
	l.line("DEBUG", term.Cyan, fmt.Sprintf(format, args...))
}
