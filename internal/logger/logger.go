package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// VerboseChecker reports whether debug and info output is enabled
type VerboseChecker interface {
	IsVerbose() bool
}

// Logger writes component tagged lines to stderr. Debug and Info are only
// emitted when the verbose checker says so; Warn and Error always are.
type Logger struct {
	component      string
	verboseChecker VerboseChecker
	out            *output
}

// output is shared by loggers derived through WithComponent
type output struct {
	mu sync.Mutex
	w  io.Writer
}

// Field is a key-value pair appended to a log line
type Field struct {
	Key   string
	Value interface{}
}

// New creates a logger for component
func New(component string, verboseChecker VerboseChecker) *Logger {
	return &Logger{
		component:      component,
		verboseChecker: verboseChecker,
		out:            &output{w: os.Stderr},
	}
}

// NewWithCallback creates a logger whose verbosity is decided by verboseCheck
func NewWithCallback(component string, verboseCheck func() bool) *Logger {
	return New(component, &callbackChecker{callback: verboseCheck})
}

// NewWithWriter creates a logger writing to w
func NewWithWriter(component string, w io.Writer, verbose bool) *Logger {
	l := NewWithCallback(component, func() bool { return verbose })
	l.out.w = w
	return l
}

// Discard returns a logger that drops everything
func Discard() *Logger {
	return NewWithWriter("", io.Discard, false)
}

// WithComponent derives a logger sharing the same output and verbosity
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		component:      component,
		verboseChecker: l.verboseChecker,
		out:            l.out,
	}
}

type callbackChecker struct {
	callback func() bool
}

func (c *callbackChecker) IsVerbose() bool {
	if c.callback == nil {
		return false
	}
	return c.callback()
}

func (l *Logger) verbose() bool {
	return l.verboseChecker != nil && l.verboseChecker.IsVerbose()
}

// Debug logs only in verbose mode
func (l *Logger) Debug(msg string, args ...interface{}) {
	if l.verbose() {
		l.write("DEBUG", msg, nil, args...)
	}
}

// Info logs only in verbose mode
func (l *Logger) Info(msg string, args ...interface{}) {
	if l.verbose() {
		l.write("INFO", msg, nil, args...)
	}
}

// Warn always logs
func (l *Logger) Warn(msg string, args ...interface{}) {
	l.write("WARN", msg, nil, args...)
}

// Error always logs
func (l *Logger) Error(msg string, args ...interface{}) {
	l.write("ERROR", msg, nil, args...)
}

// DebugWithFields logs msg with structured fields in verbose mode
func (l *Logger) DebugWithFields(msg string, fields []Field, args ...interface{}) {
	if l.verbose() {
		l.write("DEBUG", msg, fields, args...)
	}
}

// InfoWithFields logs msg with structured fields in verbose mode
func (l *Logger) InfoWithFields(msg string, fields []Field, args ...interface{}) {
	if l.verbose() {
		l.write("INFO", msg, fields, args...)
	}
}

// WarnWithFields always logs msg with structured fields
func (l *Logger) WarnWithFields(msg string, fields []Field, args ...interface{}) {
	l.write("WARN", msg, fields, args...)
}

// write renders "[15:04:05.000] LEVEL [component] message [k=v ...]"
func (l *Logger) write(level, msg string, fields []Field, args ...interface{}) {
	component := l.component
	if component == "" {
		component = "main"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s [%s] ", time.Now().Format("15:04:05.000"), level, component)
	if len(args) > 0 {
		fmt.Fprintf(&b, msg, args...)
	} else {
		b.WriteString(msg)
	}

	if len(fields) > 0 {
		parts := make([]string, 0, len(fields))
		for _, field := range fields {
			parts = append(parts, fmt.Sprintf("%s=%v", field.Key, field.Value))
		}
		fmt.Fprintf(&b, " [%s]", strings.Join(parts, " "))
	}
	b.WriteByte('\n')

	l.out.mu.Lock()
	defer l.out.mu.Unlock()
	// nothing sensible to do if the log sink itself fails
	_, _ = io.WriteString(l.out.w, b.String())
}

// F builds an arbitrary field
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

func Count(value int) Field {
	return Field{Key: "count", Value: value}
}

func Duration(d time.Duration) Field {
	return Field{Key: "duration", Value: d}
}

func Error(err error) Field {
	return Field{Key: "error", Value: err}
}

// Algorithm tags a line with the algorithm kind
func Algorithm(kind string) Field {
	return Field{Key: "algorithm", Value: kind}
}
