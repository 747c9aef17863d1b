// Package browser abstracts a single browsing session behind the Session
// interface, with two backends: a chromedp-driven headless Chrome and a
// static HTML backend for fast, browserless runs. Each test worker owns
// exactly one Session, handed out by Manager; sessions are never shared.
package browser

import (
	"context"
	"errors"
)

var (
	// ErrClickIntercepted is returned by Session.Click when another element
	// covers the target at the moment of the click.
	ErrClickIntercepted = errors.New("browser: click intercepted by overlapping element")

	// ErrNotSupported is returned for operations the backend cannot perform
	// (script evaluation or screenshots on the static backend, XPath
	// locators outside Chrome).
	ErrNotSupported = errors.New("browser: operation not supported by this backend")

	// ErrNoElement is returned by interactions when the locator currently
	// matches nothing. Callers that need waiting wrap the session in an
	// element accessor instead of retrying here.
	ErrNoElement = errors.New("browser: no element matches locator")

	// ErrNoHistory is returned by Back and Forward when the session has no
	// history entry in that direction.
	ErrNoHistory = errors.New("browser: no history entry in that direction")
)

// Session is one live browsing context. Every method performs a single,
// immediate check or action against the current page state: there is no
// waiting or polling at this layer. All methods take a context and honor
// its cancellation.
//
// Implementations need not be safe for concurrent use; the Manager hands
// each worker its own Session.
type Session interface {
	// Navigate loads the given URL and blocks until the page settles.
	Navigate(ctx context.Context, url string) error

	// Title returns the current document title.
	Title(ctx context.Context) (string, error)

	// CurrentURL returns the current location.
	CurrentURL(ctx context.Context) (string, error)

	// Reload re-fetches the current page.
	Reload(ctx context.Context) error

	// Back navigates one entry backward in the session history.
	// Returns ErrNoHistory when there is nothing to go back to.
	Back(ctx context.Context) error

	// Forward navigates one entry forward in the session history.
	// Returns ErrNoHistory when there is nothing to go forward to.
	Forward(ctx context.Context) error

	// Exists reports whether any element matches the locator.
	Exists(ctx context.Context, loc Locator) (bool, error)

	// Visible reports whether a matching element is rendered with a
	// non-zero bounding box.
	Visible(ctx context.Context, loc Locator) (bool, error)

	// Clickable reports whether a matching element is visible, enabled and
	// not obscured by another element.
	Clickable(ctx context.Context, loc Locator) (bool, error)

	// Click dispatches a click to the matching element. Returns
	// ErrClickIntercepted if another element would receive the click.
	Click(ctx context.Context, loc Locator) error

	// ScriptClick clicks the element directly at the script level,
	// bypassing hit-testing. Used as the interception fallback.
	ScriptClick(ctx context.Context, loc Locator) error

	// SetText clears the matching input and types text into it.
	SetText(ctx context.Context, loc Locator, text string) error

	// SendText appends text to the matching input without clearing.
	SendText(ctx context.Context, loc Locator, text string) error

	// Clear empties the matching input.
	Clear(ctx context.Context, loc Locator) error

	// Text returns the rendered text content of the matching element.
	Text(ctx context.Context, loc Locator) (string, error)

	// Attribute returns the named attribute of the matching element.
	// ok is false when the attribute is absent.
	Attribute(ctx context.Context, loc Locator, name string) (value string, ok bool, err error)

	// Evaluate runs a script expression in the page and unmarshals the
	// result into out (which may be nil to discard it).
	Evaluate(ctx context.Context, expr string, out any) error

	// Screenshot captures the current viewport as PNG bytes.
	Screenshot(ctx context.Context) ([]byte, error)

	// Close releases the session and its browser resources.
	Close() error
}
