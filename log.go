package stage

import (
	"fmt"
	"io"
	"os"
)

// Logger is the diagnostic channel for misuse warnings and recovered
// failures. None of its methods may panic.
type Logger interface {
	Debugf(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// defaultLogger writes to stderr and is used by actors that are not in a
// scene with its own logger.
var defaultLogger Logger = NewWriterLogger(os.Stderr, false)

// SetDefaultLogger replaces the package-level fallback logger. A nil logger
// discards all output.
func SetDefaultLogger(l Logger) {
	if l == nil {
		l = NopLogger{}
	}
	defaultLogger = l
}

// WriterLogger writes "[stage] level: message" lines to an io.Writer.
type WriterLogger struct {
	w     io.Writer
	debug bool
}

// NewWriterLogger returns a logger writing to w. Debug lines are only
// written when debug is true.
func NewWriterLogger(w io.Writer, debug bool) *WriterLogger {
	return &WriterLogger{w: w, debug: debug}
}

func (l *WriterLogger) Debugf(format string, args ...any) {
	if !l.debug {
		return
	}
	l.write("debug", format, args)
}

func (l *WriterLogger) Warnf(format string, args ...any) {
	l.write("warning", format, args)
}

func (l *WriterLogger) Errorf(format string, args ...any) {
	l.write("error", format, args)
}

func (l *WriterLogger) write(level, format string, args []any) {
	_, _ = fmt.Fprintf(l.w, "[stage] %s: %s\n", level, fmt.Sprintf(format, args...))
}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) Debugf(string, ...any) {}
func (NopLogger) Warnf(string, ...any)  {}
func (NopLogger) Errorf(string, ...any) {}
