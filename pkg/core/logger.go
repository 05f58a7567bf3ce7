package core

import (
	"fmt"
	"log"
	"os"
	"sort"
	"strings"
)

// Logger provides leveled logging.
// This abstraction allows swapping logging implementations.
type Logger interface {
	// Error logs an error message
	Error(args ...interface{})

	// Errorf logs a formatted error message
	Errorf(format string, args ...interface{})

	// Warn logs a warning message
	Warn(args ...interface{})

	// Warnf logs a formatted warning message
	Warnf(format string, args ...interface{})

	// Info logs an informational message
	Info(args ...interface{})

	// Infof logs a formatted informational message
	Infof(format string, args ...interface{})

	// Debug logs a debug message
	Debug(args ...interface{})

	// Debugf logs a formatted debug message
	Debugf(format string, args ...interface{})

	// WithFields returns a logger that appends the given key=value pairs
	// to every message it emits.
	WithFields(fields map[string]interface{}) Logger
}

// defaultLogger implements Logger using Go's standard log package.
type defaultLogger struct {
	errorLogger *log.Logger
	warnLogger  *log.Logger
	infoLogger  *log.Logger
	debugLogger *log.Logger
	fields      string
}

// NewDefaultLogger creates a new default logger implementation.
func NewDefaultLogger() Logger {
	return &defaultLogger{
		errorLogger: log.New(os.Stderr, "[ERROR] ", log.LstdFlags),
		warnLogger:  log.New(os.Stderr, "[WARN] ", log.LstdFlags),
		infoLogger:  log.New(os.Stdout, "[INFO] ", log.LstdFlags),
		debugLogger: log.New(os.Stdout, "[DEBUG] ", log.LstdFlags),
	}
}

// WithFields returns a copy of the logger carrying the formatted fields.
func (l *defaultLogger) WithFields(fields map[string]interface{}) Logger {
	if len(fields) == 0 {
		return l
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(l.fields)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, fields[k])
	}

	clone := *l
	clone.fields = b.String()
	return &clone
}

func (l *defaultLogger) emit(dst *log.Logger, msg string) {
	dst.Output(3, msg+l.fields)
}

// Error logs an error message
func (l *defaultLogger) Error(args ...interface{}) {
	l.emit(l.errorLogger, fmt.Sprint(args...))
}

// Errorf logs a formatted error message
func (l *defaultLogger) Errorf(format string, args ...interface{}) {
	l.emit(l.errorLogger, fmt.Sprintf(format, args...))
}

// Warn logs a warning message
func (l *defaultLogger) Warn(args ...interface{}) {
	l.emit(l.warnLogger, fmt.Sprint(args...))
}

// Warnf logs a formatted warning message
func (l *defaultLogger) Warnf(format string, args ...interface{}) {
	l.emit(l.warnLogger, fmt.Sprintf(format, args...))
}

// Info logs an informational message
func (l *defaultLogger) Info(args ...interface{}) {
	l.emit(l.infoLogger, fmt.Sprint(args...))
}

// Infof logs a formatted informational message
func (l *defaultLogger) Infof(format string, args ...interface{}) {
	l.emit(l.infoLogger, fmt.Sprintf(format, args...))
}

// Debug logs a debug message
func (l *defaultLogger) Debug(args ...interface{}) {
	l.emit(l.debugLogger, fmt.Sprint(args...))
}

// Debugf logs a formatted debug message
func (l *defaultLogger) Debugf(format string, args ...interface{}) {
	l.emit(l.debugLogger, fmt.Sprintf(format, args...))
}
