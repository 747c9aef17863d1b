// Package element wraps a lazily-resolved element locator with bounded
// auto-waiting: every interaction first polls until the required condition
// (presence, visibility, clickability, text match) holds or its configured
// timeout elapses, then performs the action. Fixed sleeps in tests become
// unnecessary; a timeout is a hard, typed failure.
package element

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/atheor/gowebtest/internal/browser"
	"github.com/atheor/gowebtest/internal/config"
	"github.com/atheor/gowebtest/internal/logging"
)

// Waits carries the per-condition timeout and the shared polling interval.
// Each wait kind is tuned independently; zero values fall back to the
// package defaults when passed through Normalize.
type Waits struct {
	Presence     time.Duration
	Visible      time.Duration
	Clickable    time.Duration
	Text         time.Duration
	PollInterval time.Duration
}

// DefaultWaits returns the built-in wait settings: presence 10s, visible
// 20s, clickable 15s, text 20s, polling every 500ms.
func DefaultWaits() Waits {
	return Waits{
		Presence:     10 * time.Second,
		Visible:      20 * time.Second,
		Clickable:    15 * time.Second,
		Text:         20 * time.Second,
		PollInterval: 500 * time.Millisecond,
	}
}

// WaitsFromProvider reads the wait settings from configuration.
func WaitsFromProvider(p *config.Provider) Waits {
	return Waits{
		Presence:     p.PresenceTimeout(),
		Visible:      p.VisibleTimeout(),
		Clickable:    p.ClickableTimeout(),
		Text:         p.TextTimeout(),
		PollInterval: p.PollingInterval(),
	}
}

// Normalize replaces unset fields with the defaults.
func (w Waits) Normalize() Waits {
	d := DefaultWaits()
	if w.Presence <= 0 {
		w.Presence = d.Presence
	}
	if w.Visible <= 0 {
		w.Visible = d.Visible
	}
	if w.Clickable <= 0 {
		w.Clickable = d.Clickable
	}
	if w.Text <= 0 {
		w.Text = d.Text
	}
	if w.PollInterval <= 0 {
		w.PollInterval = d.PollInterval
	}
	return w
}

// Element is a bounded-wait accessor for one locator on one session.
// It never caches a resolved handle: the locator is re-resolved on every
// operation, so handles going stale between interactions cannot bite.
type Element struct {
	session browser.Session
	loc     browser.Locator
	name    string
	waits   Waits
	logger  logging.Logger
}

// New creates an accessor for loc on session. name is used in logs and
// error messages; empty means the locator's own string form.
func New(session browser.Session, loc browser.Locator, name string, waits Waits, logger logging.Logger) *Element {
	if name == "" {
		name = loc.String()
	}
	return &Element{
		session: session,
		loc:     loc,
		name:    name,
		waits:   waits.Normalize(),
		logger:  logger.With(logging.Field{Key: "element", Value: name}),
	}
}

// Name returns the element's human-readable name.
func (e *Element) Name() string { return e.name }

// Locator returns the element's locator.
func (e *Element) Locator() browser.Locator { return e.loc }

// WaitForPresence blocks until an element matching the locator exists in
// the document, failing with *NotFoundError on timeout.
func (e *Element) WaitForPresence(ctx context.Context) error {
	err := WaitFor(ctx, func(ctx context.Context) (bool, error) {
		return e.session.Exists(ctx, e.loc)
	}, e.waits.Presence, e.waits.PollInterval)
	if err != nil {
		return e.waitFailure(err, &NotFoundError{Name: e.name, Locator: e.loc, Timeout: e.waits.Presence})
	}
	e.logger.Debug("element present")
	return nil
}

// WaitForVisible blocks until the element is rendered with a non-zero
// bounding box, failing with *NotVisibleError on timeout.
func (e *Element) WaitForVisible(ctx context.Context) error {
	err := WaitFor(ctx, func(ctx context.Context) (bool, error) {
		return e.session.Visible(ctx, e.loc)
	}, e.waits.Visible, e.waits.PollInterval)
	if err != nil {
		return e.waitFailure(err, &NotVisibleError{Name: e.name, Locator: e.loc, Timeout: e.waits.Visible})
	}
	e.logger.Debug("element visible")
	return nil
}

// WaitForClickable blocks until the element is visible, enabled and not
// obscured, failing with *NotClickableError on timeout.
func (e *Element) WaitForClickable(ctx context.Context) error {
	err := WaitFor(ctx, func(ctx context.Context) (bool, error) {
		return e.session.Clickable(ctx, e.loc)
	}, e.waits.Clickable, e.waits.PollInterval)
	if err != nil {
		return e.waitFailure(err, &NotClickableError{Name: e.name, Locator: e.loc, Timeout: e.waits.Clickable})
	}
	e.logger.Debug("element clickable")
	return nil
}

// WaitForInvisible blocks until no visible element matches the locator,
// failing with *StillVisibleError on timeout.
func (e *Element) WaitForInvisible(ctx context.Context) error {
	err := WaitFor(ctx, func(ctx context.Context) (bool, error) {
		visible, err := e.session.Visible(ctx, e.loc)
		return !visible, err
	}, e.waits.Visible, e.waits.PollInterval)
	if err != nil {
		return e.waitFailure(err, &StillVisibleError{Name: e.name, Locator: e.loc, Timeout: e.waits.Visible})
	}
	e.logger.Debug("element invisible")
	return nil
}

// WaitForText blocks until the element's rendered text contains expected,
// failing with *TextTimeoutError on timeout.
func (e *Element) WaitForText(ctx context.Context, expected string) error {
	err := WaitFor(ctx, func(ctx context.Context) (bool, error) {
		text, err := e.session.Text(ctx, e.loc)
		if err != nil {
			return false, err
		}
		return strings.Contains(text, expected), nil
	}, e.waits.Text, e.waits.PollInterval)
	if err != nil {
		return e.waitFailure(err, &TextTimeoutError{Name: e.name, Locator: e.loc, Expected: expected, Timeout: e.waits.Text})
	}
	e.logger.Debug("expected text present", logging.Field{Key: "text", Value: expected})
	return nil
}

// WaitForAttributeContains blocks until the named attribute contains
// expected, failing with *AttributeTimeoutError on timeout.
func (e *Element) WaitForAttributeContains(ctx context.Context, attr, expected string) error {
	err := WaitFor(ctx, func(ctx context.Context) (bool, error) {
		v, ok, err := e.session.Attribute(ctx, e.loc, attr)
		if err != nil {
			return false, err
		}
		return ok && strings.Contains(v, expected), nil
	}, e.waits.Text, e.waits.PollInterval)
	if err != nil {
		return e.waitFailure(err, &AttributeTimeoutError{
			Name: e.name, Locator: e.loc, Attribute: attr, Expected: expected, Timeout: e.waits.Text,
		})
	}
	return nil
}

// waitFailure maps a WaitFor error to the operation's typed timeout error,
// passing interruption through untouched so callers can distinguish a
// cancelled run from a genuine timeout.
func (e *Element) waitFailure(err error, timeoutErr error) error {
	if errors.Is(err, ErrWaitTimeout) {
		e.logger.Error("wait timed out", logging.Field{Key: "error", Value: timeoutErr.Error()})
		return timeoutErr
	}
	e.logger.Error("wait interrupted", logging.Field{Key: "error", Value: err.Error()})
	return err
}

// Click waits for the element to be clickable, then dispatches a click.
// If the click is intercepted by an overlapping element that appeared
// after the clickability check, it falls back once to a direct
// script-level click. The fallback masks a live overlay, so it is surfaced
// at warn level rather than silently.
func (e *Element) Click(ctx context.Context) error {
	if err := e.WaitForClickable(ctx); err != nil {
		return err
	}
	err := e.session.Click(ctx, e.loc)
	if err == nil {
		e.logger.Info("clicked element")
		return nil
	}
	if !errors.Is(err, browser.ErrClickIntercepted) {
		return fmt.Errorf("click element %q: %w", e.name, err)
	}

	e.logger.Warn("click intercepted, falling back to script click")
	if err := e.session.ScriptClick(ctx, e.loc); err != nil {
		return fmt.Errorf("script click element %q: %w", e.name, err)
	}
	e.logger.Info("script clicked element")
	return nil
}

// ScriptClick clicks the element directly at the script level without
// waiting for clickability.
func (e *Element) ScriptClick(ctx context.Context) error {
	if err := e.session.ScriptClick(ctx, e.loc); err != nil {
		return fmt.Errorf("script click element %q: %w", e.name, err)
	}
	e.logger.Info("script clicked element")
	return nil
}

// Type waits for visibility, clears any existing content and inputs text.
func (e *Element) Type(ctx context.Context, text string) error {
	if err := e.WaitForVisible(ctx); err != nil {
		return err
	}
	if err := e.session.SetText(ctx, e.loc, text); err != nil {
		return fmt.Errorf("type into element %q: %w", e.name, err)
	}
	e.logger.Info("typed into element", logging.Field{Key: "length", Value: len(text)})
	return nil
}

// Append waits for visibility and inputs text without clearing.
func (e *Element) Append(ctx context.Context, text string) error {
	if err := e.WaitForVisible(ctx); err != nil {
		return err
	}
	if err := e.session.SendText(ctx, e.loc, text); err != nil {
		return fmt.Errorf("append to element %q: %w", e.name, err)
	}
	return nil
}

// Clear waits for visibility and empties the element's content.
func (e *Element) Clear(ctx context.Context) error {
	if err := e.WaitForVisible(ctx); err != nil {
		return err
	}
	if err := e.session.Clear(ctx, e.loc); err != nil {
		return fmt.Errorf("clear element %q: %w", e.name, err)
	}
	return nil
}

// Text waits for visibility and returns the rendered text content.
func (e *Element) Text(ctx context.Context) (string, error) {
	if err := e.WaitForVisible(ctx); err != nil {
		return "", err
	}
	text, err := e.session.Text(ctx, e.loc)
	if err != nil {
		return "", fmt.Errorf("get text of element %q: %w", e.name, err)
	}
	return text, nil
}

// Attribute waits for presence and returns the named attribute. ok is
// false when the attribute is absent.
func (e *Element) Attribute(ctx context.Context, name string) (string, bool, error) {
	if err := e.WaitForPresence(ctx); err != nil {
		return "", false, err
	}
	v, ok, err := e.session.Attribute(ctx, e.loc, name)
	if err != nil {
		return "", false, fmt.Errorf("get attribute %q of element %q: %w", name, e.name, err)
	}
	return v, ok, nil
}

// IsDisplayed reports the element's visibility right now, without waiting.
// A missing element reports false rather than an error.
func (e *Element) IsDisplayed(ctx context.Context) bool {
	visible, err := e.session.Visible(ctx, e.loc)
	if err != nil {
		return false
	}
	return visible
}

// IsEnabled reports whether the element exists and lacks the disabled
// attribute, without waiting.
func (e *Element) IsEnabled(ctx context.Context) bool {
	exists, err := e.session.Exists(ctx, e.loc)
	if err != nil || !exists {
		return false
	}
	_, disabled, err := e.session.Attribute(ctx, e.loc, "disabled")
	if err != nil {
		return false
	}
	return !disabled
}
