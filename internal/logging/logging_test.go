package logging_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/atheor/gowebtest/internal/logging"
)

type entry struct {
	Level     string         `json:"level"`
	Msg       string         `json:"msg"`
	Component string         `json:"component"`
	Fields    map[string]any `json:"fields"`
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []entry {
	t.Helper()
	var out []entry
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var e entry
		if err := json.Unmarshal([]byte(line), &e); err != nil {
			t.Fatalf("invalid JSON log line %q: %v", line, err)
		}
		out = append(out, e)
	}
	return out
}

// TestStdoutLogger_Levels verifies each level is emitted with the right tag.
func TestStdoutLogger_Levels(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	l := logging.NewWriterLogger("test", &buf)

	l.Debug("d")
	l.Info("i")
	l.Warn("w")
	l.Error("e")

	entries := decodeLines(t, &buf)
	if len(entries) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(entries))
	}
	want := []string{"debug", "info", "warn", "error"}
	for i, e := range entries {
		if e.Level != want[i] {
			t.Errorf("entry %d: level = %q, want %q", i, e.Level, want[i])
		}
		if e.Component != "test" {
			t.Errorf("entry %d: component = %q, want %q", i, e.Component, "test")
		}
	}
}

// TestStdoutLogger_With verifies persistent fields survive on child loggers
// and that per-call fields override persistent ones with the same key.
func TestStdoutLogger_With(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	l := logging.NewWriterLogger("parent", &buf)

	child := l.With(logging.Field{Key: "session", Value: "s1"})
	child.Info("msg", logging.Field{Key: "url", Value: "http://x"})

	entries := decodeLines(t, &buf)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Fields["session"] != "s1" {
		t.Errorf("persistent field missing: %v", entries[0].Fields)
	}
	if entries[0].Fields["url"] != "http://x" {
		t.Errorf("per-call field missing: %v", entries[0].Fields)
	}
}

// TestStdoutLogger_WithComponent verifies the component field renames the
// child instead of appearing as a regular field.
func TestStdoutLogger_WithComponent(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	l := logging.NewWriterLogger("parent", &buf)

	child := l.With(logging.Field{Key: "component", Value: "child"})
	child.Info("msg")

	entries := decodeLines(t, &buf)
	if entries[0].Component != "child" {
		t.Errorf("component = %q, want %q", entries[0].Component, "child")
	}
	if _, ok := entries[0].Fields["component"]; ok {
		t.Error("component leaked into regular fields")
	}
}
