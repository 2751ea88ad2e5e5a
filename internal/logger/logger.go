// Package logger provides leveled logging for the matcher CLI.
// Game output goes to stdout; log lines go to the writer given to New (normally stderr).
package logger

import (
	"io"
	"log"

	"github.com/fatih/color"
)

// Logger writes prefixed log lines. A nil *Logger discards everything.
type Logger struct {
	infoLogger  *log.Logger
	warnLogger  *log.Logger
	errorLogger *log.Logger
	debugLogger *log.Logger
	verbose     bool
}

// New creates a logger writing to w. Debug lines are only written when verbose is set.
func New(w io.Writer, verbose bool) *Logger {
	flags := log.Ldate | log.Ltime
	return &Logger{
		infoLogger:  log.New(w, color.CyanString("[INFO] "), flags),
		warnLogger:  log.New(w, color.YellowString("[WARN] "), flags),
		errorLogger: log.New(w, color.RedString("[ERROR] "), flags),
		debugLogger: log.New(w, color.HiBlackString("[DEBUG] "), flags|log.Lshortfile),
		verbose:     verbose,
	}
}

// Discard returns a logger that writes nothing
func Discard() *Logger {
	return New(io.Discard, false)
}

// Info logs informational messages.
func (l *Logger) Info(msg string) {
	if l == nil {
		return
	}
	l.infoLogger.Println(msg)
}

// Warn logs warning messages.
func (l *Logger) Warn(msg string) {
	if l == nil {
		return
	}
	l.warnLogger.Println(msg)
}

// Error logs error messages.
func (l *Logger) Error(msg string) {
	if l == nil {
		return
	}
	l.errorLogger.Println(msg)
}

// Debug logs messages only shown with --verbose.
func (l *Logger) Debug(msg string) {
	if l == nil || !l.verbose {
		return
	}
	l.debugLogger.Output(2, msg)
}

// Event logs a game event for a session.
func (l *Logger) Event(eventType string, sessionID string, details string) {
	if l == nil {
		return
	}
	l.infoLogger.Printf("[EVENT:%s] Session:%s | %s", eventType, sessionID, details)
}
