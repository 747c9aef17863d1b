// Package assert provides high-signal failure messages for workflow and
// page tests: string mismatches come back as a readable character-level
// diff instead of two walls of text.
package assert

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Diff renders a character-level diff between want and got, cleaned up for
// readability. Returns "" when the inputs are equal.
func Diff(want, got string) string {
	if want == got {
		return ""
	}
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(want, got, true)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var b strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			fmt.Fprintf(&b, "[+%s]", d.Text)
		case diffmatchpatch.DiffDelete:
			fmt.Fprintf(&b, "[-%s]", d.Text)
		case diffmatchpatch.DiffEqual:
			b.WriteString(d.Text)
		}
	}
	return b.String()
}

// TextEqual returns a descriptive error when got differs from want.
func TextEqual(want, got string) error {
	if want == got {
		return nil
	}
	return fmt.Errorf("text mismatch (want vs got):\n%s", Diff(want, got))
}

// TextContains returns a descriptive error when got does not contain want.
func TextContains(want, got string) error {
	if strings.Contains(got, want) {
		return nil
	}
	return fmt.Errorf("text %q not found in:\n%s", want, got)
}

// JSONEqual compares two JSON documents structurally, ignoring key order
// and whitespace; on mismatch the error carries a diff of the normalized
// forms.
func JSONEqual(want, got string) error {
	normWant, err := normalizeJSON(want)
	if err != nil {
		return fmt.Errorf("want is not valid JSON: %w", err)
	}
	normGot, err := normalizeJSON(got)
	if err != nil {
		return fmt.Errorf("got is not valid JSON: %w", err)
	}
	if normWant == normGot {
		return nil
	}
	return fmt.Errorf("JSON mismatch (want vs got):\n%s", Diff(normWant, normGot))
}

func normalizeJSON(s string) (string, error) {
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return "", err
	}
	out, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
