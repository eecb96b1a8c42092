package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

const defaultLogFile = "bootsetup.log"

var (
	mu           sync.Mutex
	traceEnabled bool
	logPath      = defaultLogFile
	session      string

	logger = log.NewWithOptions(appendWriter{}, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Level:           log.InfoLevel,
	})
	tracer = log.NewWithOptions(appendWriter{}, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339Nano,
		Level:           log.DebugLevel,
		Formatter:       log.JSONFormatter,
	})
)

// appendWriter reopens the log file for every record so the log can be
// moved or truncated while the form is open.
type appendWriter struct{}

func (appendWriter) Write(p []byte) (int, error) {
	mu.Lock()
	path := logPath
	mu.Unlock()

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging failed: %v\n", err)
		return 0, err
	}
	defer f.Close()
	return f.Write(p)
}

var _ io.Writer = appendWriter{}

// Error writes errors to the shared log file.
func Error(err error) {
	if err == nil {
		return
	}
	logger.Error(err.Error())
}

func Infof(format string, args ...interface{})  { logger.Infof(format, args...) }
func Warnf(format string, args ...interface{})  { logger.Warnf(format, args...) }
func Debugf(format string, args ...interface{}) { logger.Debugf(format, args...) }

// SetTraceEnabled toggles emission of structured trace entries. Tracing also
// lowers the text log to debug level.
func SetTraceEnabled(enabled bool) {
	mu.Lock()
	traceEnabled = enabled
	mu.Unlock()
	if enabled {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.InfoLevel)
	}
}

// SetSession tags every following trace entry with id.
func SetSession(id string) {
	mu.Lock()
	session = id
	mu.Unlock()
}

// Trace appends a structured JSON entry to the shared log when tracing is enabled.
func Trace(event string, payload interface{}) {
	mu.Lock()
	enabled := traceEnabled
	id := session
	mu.Unlock()
	if !enabled {
		return
	}
	keyvals := []interface{}{"event", event}
	if id != "" {
		keyvals = append(keyvals, "session", id)
	}
	if payload != nil {
		keyvals = append(keyvals, "payload", payload)
	}
	tracer.Debug("trace", keyvals...)
}

// Configure sets the log destination. Empty values fall back to the default
// path. Directories are created automatically when missing.
func Configure(path string) {
	mu.Lock()
	defer mu.Unlock()
	if strings.TrimSpace(path) == "" {
		logPath = defaultLogFile
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "unable to create log directory: %v\n", err)
		logPath = defaultLogFile
		return
	}
	logPath = path
}

// Path returns the current log destination.
func Path() string {
	mu.Lock()
	defer mu.Unlock()
	return logPath
}
