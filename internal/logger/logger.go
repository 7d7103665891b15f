// Package logger provides levelled, prefixed logging for the immigration
// binaries. The simulation packages themselves never log.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
)

// Logger writes informational, warning and error lines through separate
// log.Loggers so each level carries its own prefix.
type Logger struct {
	infoLogger  *log.Logger
	warnLogger  *log.Logger
	errorLogger *log.Logger
}

// New creates a logger writing info and warnings to stdout and errors to stderr.
func New(component string) *Logger {
	return NewWithWriters(component, os.Stdout, os.Stderr)
}

// NewWithWriters creates a logger writing info and warnings to out and errors to errOut.
func NewWithWriters(component string, out, errOut io.Writer) *Logger {
	flags := log.Ldate | log.Ltime | log.Lmsgprefix
	return &Logger{
		infoLogger:  log.New(out, fmt.Sprintf("[%s] INFO  ", component), flags),
		warnLogger:  log.New(out, fmt.Sprintf("[%s] WARN  ", component), flags),
		errorLogger: log.New(errOut, fmt.Sprintf("[%s] ERROR ", component), flags),
	}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return NewWithWriters("", io.Discard, io.Discard)
}

// Info logs informational messages.
func (l *Logger) Info(msg string) { l.infoLogger.Println(msg) }

// Infof logs a formatted informational message.
func (l *Logger) Infof(format string, args ...any) { l.infoLogger.Printf(format, args...) }

// Warn logs warning messages.
func (l *Logger) Warn(msg string) { l.warnLogger.Println(msg) }

// Warnf logs a formatted warning.
func (l *Logger) Warnf(format string, args ...any) { l.warnLogger.Printf(format, args...) }

// Error logs error messages.
func (l *Logger) Error(msg string) { l.errorLogger.Println(msg) }

// Errorf logs a formatted error.
func (l *Logger) Errorf(format string, args ...any) { l.errorLogger.Printf(format, args...) }

// Event logs a named controller event such as a settings change.
func (l *Logger) Event(kind, details string) {
	l.infoLogger.Printf("[EVENT:%s] %s", kind, details)
}
