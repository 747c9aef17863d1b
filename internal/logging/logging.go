// Package logging defines the small structured logging surface shared by all
// framework components, plus a JSON-lines stdout implementation suitable for
// test runs and CI output.
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"
)

// Field is a simple key/value pair for structured logging fields.
type Field struct {
	Key   string
	Value any
}

// Logger is a deliberately small, framework-agnostic logging interface.
// Keep implementations swappable so callers can plug in any backend.
type Logger interface {
	// Debug logs a debug-level message.
	Debug(msg string, fields ...Field)

	// Info logs an informational message.
	Info(msg string, fields ...Field)

	// Warn logs a warning.
	Warn(msg string, fields ...Field)

	// Error logs an error.
	Error(msg string, fields ...Field)

	// With returns a child logger with persistent fields.
	With(fields ...Field) Logger
}

// StdoutLogger prints JSON lines to an io.Writer (stdout by default).
// It is safe for concurrent use as long as the underlying writer is.
type StdoutLogger struct {
	component string
	persist   []Field
	out       io.Writer
}

// NewStdoutLogger creates a StdoutLogger. component is optional and is
// carried on every entry and inherited by children created via With.
func NewStdoutLogger(component string) *StdoutLogger {
	return &StdoutLogger{component: component, out: os.Stdout}
}

// NewWriterLogger creates a StdoutLogger that writes to w instead of stdout.
func NewWriterLogger(component string, w io.Writer) *StdoutLogger {
	return &StdoutLogger{component: component, out: w}
}

func (s *StdoutLogger) log(level string, msg string, fields ...Field) {
	type outEntry struct {
		Level     string         `json:"level"`
		Msg       string         `json:"msg"`
		Component string         `json:"component,omitempty"`
		Time      string         `json:"time"`
		Fields    map[string]any `json:"fields,omitempty"`
	}
	m := make(map[string]any, len(s.persist)+len(fields))
	for _, f := range s.persist {
		m[f.Key] = f.Value
	}
	for _, f := range fields {
		m[f.Key] = f.Value
	}
	entry := outEntry{
		Level:     level,
		Msg:       msg,
		Component: s.component,
		Time:      time.Now().UTC().Format(time.RFC3339),
		Fields:    m,
	}
	enc, err := json.Marshal(entry)
	if err != nil {
		// Fallback plain formatting if a field value is unmarshalable.
		fmt.Fprintf(s.out, "%s %s %v\n", level, msg, m)
		return
	}
	fmt.Fprintln(s.out, string(enc))
}

func (s *StdoutLogger) Debug(msg string, fields ...Field) {
	s.log("debug", msg, fields...)
}

func (s *StdoutLogger) Info(msg string, fields ...Field) {
	s.log("info", msg, fields...)
}

func (s *StdoutLogger) Warn(msg string, fields ...Field) {
	s.log("warn", msg, fields...)
}

func (s *StdoutLogger) Error(msg string, fields ...Field) {
	s.log("error", msg, fields...)
}

// With returns a child logger carrying the given persistent fields in
// addition to those of the parent. A "component" field replaces the child's
// component name rather than being added as a regular field.
func (s *StdoutLogger) With(fields ...Field) Logger {
	child := &StdoutLogger{
		component: s.component,
		persist:   make([]Field, 0, len(s.persist)+len(fields)),
		out:       s.out,
	}
	child.persist = append(child.persist, s.persist...)
	for _, f := range fields {
		if f.Key == "component" {
			if str, ok := f.Value.(string); ok {
				child.component = str
				continue
			}
		}
		child.persist = append(child.persist, f)
	}
	return child
}
