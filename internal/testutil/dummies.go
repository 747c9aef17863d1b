// Package testutil provides shared test doubles for use across package
// tests. All dummies implement the corresponding interfaces from the
// production code, allowing injection into components under test without
// real I/O or a real browser.
package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/atheor/gowebtest/internal/browser"
	"github.com/atheor/gowebtest/internal/logging"
)

// ─── Logger ────────────────────────────────────────────────────────────

// DummyLogger implements logging.Logger with in-memory recording.
type DummyLogger struct {
	mu     sync.Mutex
	Errors []string
	Infos  []string
	Debugs []string
	Warns  []string
}

func (l *DummyLogger) Debug(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Debugs = append(l.Debugs, msg)
}

func (l *DummyLogger) Info(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Infos = append(l.Infos, msg)
}

func (l *DummyLogger) Warn(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Warns = append(l.Warns, msg)
}

func (l *DummyLogger) Error(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Errors = append(l.Errors, msg)
}

func (l *DummyLogger) With(_ ...logging.Field) logging.Logger { return l }

// HasWarnContaining reports whether any recorded warn message contains s.
func (l *DummyLogger) HasWarnContaining(s string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, m := range l.Warns {
		if strings.Contains(m, s) {
			return true
		}
	}
	return false
}

// ─── Session ───────────────────────────────────────────────────────────

// FakeElement scripts the state of one element on a FakeSession page.
// The *After fields make a state hold only once that much time has passed
// since the session was created (or reset via ResetClock), which lets
// tests exercise the bounded-wait paths deterministically.
type FakeElement struct {
	Missing        bool          // element never exists
	PresentAfter   time.Duration // exists only after this elapses
	VisibleAfter   time.Duration
	ClickableAfter time.Duration
	InterceptFor   time.Duration // clicks intercepted until this elapses
	Hidden         bool          // never visible
	Disabled       bool          // never clickable

	Text     string
	TextAt   time.Duration // Text applies after this; before, InitText
	InitText string
	Attrs    map[string]string

	Value string // accumulated typed text
}

// FakeSession implements browser.Session with scripted element states.
// Elements are keyed by Locator.String().
type FakeSession struct {
	mu       sync.Mutex
	start    time.Time
	Elements map[string]*FakeElement

	PageTitle string
	URL       string

	Navigations  []string
	Clicks       []string
	ScriptClicks []string
	Shot         []byte
	Closed       bool

	backStack    []string
	forwardStack []string
}

// NewFakeSession creates an empty fake session with its clock started now.
func NewFakeSession() *FakeSession {
	return &FakeSession{
		start:    time.Now(),
		Elements: map[string]*FakeElement{},
	}
}

// Add scripts an element for loc and returns it for further tweaking.
func (f *FakeSession) Add(loc browser.Locator, el *FakeElement) *FakeElement {
	f.mu.Lock()
	defer f.mu.Unlock()
	if el == nil {
		el = &FakeElement{}
	}
	f.Elements[loc.String()] = el
	return el
}

// ResetClock restarts the elapsed-time base used by the *After fields.
func (f *FakeSession) ResetClock() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.start = time.Now()
}

func (f *FakeSession) elapsed() time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	return time.Since(f.start)
}

func (f *FakeSession) lookup(loc browser.Locator) *FakeElement {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Elements[loc.String()]
}

func (f *FakeSession) Navigate(_ context.Context, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Navigations = append(f.Navigations, url)
	if f.URL != "" {
		f.backStack = append(f.backStack, f.URL)
		f.forwardStack = nil
	}
	f.URL = url
	return nil
}

func (f *FakeSession) Back(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.backStack) == 0 {
		return browser.ErrNoHistory
	}
	f.forwardStack = append(f.forwardStack, f.URL)
	f.URL = f.backStack[len(f.backStack)-1]
	f.backStack = f.backStack[:len(f.backStack)-1]
	return nil
}

func (f *FakeSession) Forward(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.forwardStack) == 0 {
		return browser.ErrNoHistory
	}
	f.backStack = append(f.backStack, f.URL)
	f.URL = f.forwardStack[len(f.forwardStack)-1]
	f.forwardStack = f.forwardStack[:len(f.forwardStack)-1]
	return nil
}

func (f *FakeSession) Title(context.Context) (string, error) { return f.PageTitle, nil }

func (f *FakeSession) CurrentURL(context.Context) (string, error) { return f.URL, nil }

func (f *FakeSession) Reload(context.Context) error { return nil }

func (f *FakeSession) Exists(_ context.Context, loc browser.Locator) (bool, error) {
	el := f.lookup(loc)
	if el == nil || el.Missing {
		return false, nil
	}
	return f.elapsed() >= el.PresentAfter, nil
}

func (f *FakeSession) Visible(ctx context.Context, loc browser.Locator) (bool, error) {
	present, err := f.Exists(ctx, loc)
	if err != nil || !present {
		return false, err
	}
	el := f.lookup(loc)
	if el.Hidden {
		return false, nil
	}
	return f.elapsed() >= el.VisibleAfter, nil
}

func (f *FakeSession) Clickable(ctx context.Context, loc browser.Locator) (bool, error) {
	visible, err := f.Visible(ctx, loc)
	if err != nil || !visible {
		return false, err
	}
	el := f.lookup(loc)
	if el.Disabled {
		return false, nil
	}
	return f.elapsed() >= el.ClickableAfter, nil
}

func (f *FakeSession) Click(ctx context.Context, loc browser.Locator) error {
	el := f.lookup(loc)
	if el == nil || el.Missing {
		return fmt.Errorf("click %s: %w", loc, browser.ErrNoElement)
	}
	if f.elapsed() < el.InterceptFor {
		return fmt.Errorf("click %s: %w", loc, browser.ErrClickIntercepted)
	}
	f.mu.Lock()
	f.Clicks = append(f.Clicks, loc.String())
	f.mu.Unlock()
	return nil
}

func (f *FakeSession) ScriptClick(_ context.Context, loc browser.Locator) error {
	el := f.lookup(loc)
	if el == nil || el.Missing {
		return fmt.Errorf("script click %s: %w", loc, browser.ErrNoElement)
	}
	f.mu.Lock()
	f.ScriptClicks = append(f.ScriptClicks, loc.String())
	f.mu.Unlock()
	return nil
}

func (f *FakeSession) SetText(_ context.Context, loc browser.Locator, text string) error {
	el := f.lookup(loc)
	if el == nil {
		return fmt.Errorf("set text on %s: %w", loc, browser.ErrNoElement)
	}
	f.mu.Lock()
	el.Value = text
	f.mu.Unlock()
	return nil
}

func (f *FakeSession) SendText(_ context.Context, loc browser.Locator, text string) error {
	el := f.lookup(loc)
	if el == nil {
		return fmt.Errorf("send text to %s: %w", loc, browser.ErrNoElement)
	}
	f.mu.Lock()
	el.Value += text
	f.mu.Unlock()
	return nil
}

func (f *FakeSession) Clear(ctx context.Context, loc browser.Locator) error {
	return f.SetText(ctx, loc, "")
}

func (f *FakeSession) Text(_ context.Context, loc browser.Locator) (string, error) {
	el := f.lookup(loc)
	if el == nil || el.Missing {
		return "", fmt.Errorf("get text of %s: %w", loc, browser.ErrNoElement)
	}
	if f.elapsed() < el.TextAt {
		return el.InitText, nil
	}
	return el.Text, nil
}

func (f *FakeSession) Attribute(_ context.Context, loc browser.Locator, name string) (string, bool, error) {
	el := f.lookup(loc)
	if el == nil || el.Missing {
		return "", false, fmt.Errorf("get attribute %q of %s: %w", name, loc, browser.ErrNoElement)
	}
	v, ok := el.Attrs[name]
	return v, ok, nil
}

func (f *FakeSession) Evaluate(context.Context, string, any) error {
	return browser.ErrNotSupported
}

func (f *FakeSession) Screenshot(context.Context) ([]byte, error) {
	if f.Shot != nil {
		return f.Shot, nil
	}
	return []byte("fake-png"), nil
}

func (f *FakeSession) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Closed = true
	return nil
}
