// Package actions provides page-level browser operations that are not tied
// to a single element: navigation, history, scrolling, script execution.
package actions

import (
	"context"
	"fmt"

	"github.com/atheor/gowebtest/internal/browser"
	"github.com/atheor/gowebtest/internal/logging"
)

// Actions wraps a Session with logged high-level operations. It holds no
// state of its own and is as concurrency-safe as the underlying session.
type Actions struct {
	session browser.Session
	logger  logging.Logger
}

// New creates an Actions helper over session.
func New(session browser.Session, logger logging.Logger) *Actions {
	return &Actions{
		session: session,
		logger:  logger.With(logging.Field{Key: "component", Value: "actions"}),
	}
}

// NavigateTo loads the given URL.
func (a *Actions) NavigateTo(ctx context.Context, url string) error {
	if err := a.session.Navigate(ctx, url); err != nil {
		return fmt.Errorf("navigate to %s: %w", url, err)
	}
	a.logger.Info("navigated", logging.Field{Key: "url", Value: url})
	return nil
}

// Back navigates one entry backward in the session history.
func (a *Actions) Back(ctx context.Context) error {
	if err := a.session.Back(ctx); err != nil {
		return fmt.Errorf("go back: %w", err)
	}
	a.logger.Info("navigated back")
	return nil
}

// Forward navigates one entry forward in the session history.
func (a *Actions) Forward(ctx context.Context) error {
	if err := a.session.Forward(ctx); err != nil {
		return fmt.Errorf("go forward: %w", err)
	}
	a.logger.Info("navigated forward")
	return nil
}

// Refresh reloads the current page.
func (a *Actions) Refresh(ctx context.Context) error {
	if err := a.session.Reload(ctx); err != nil {
		return fmt.Errorf("refresh page: %w", err)
	}
	a.logger.Info("page refreshed")
	return nil
}

// Title returns the current page title.
func (a *Actions) Title(ctx context.Context) (string, error) {
	title, err := a.session.Title(ctx)
	if err != nil {
		return "", err
	}
	a.logger.Debug("page title", logging.Field{Key: "title", Value: title})
	return title, nil
}

// CurrentURL returns the current location.
func (a *Actions) CurrentURL(ctx context.Context) (string, error) {
	url, err := a.session.CurrentURL(ctx)
	if err != nil {
		return "", err
	}
	a.logger.Debug("current url", logging.Field{Key: "url", Value: url})
	return url, nil
}

// ExecuteScript runs a script expression in the page, unmarshalling the
// result into out (nil to discard).
func (a *Actions) ExecuteScript(ctx context.Context, expr string, out any) error {
	if err := a.session.Evaluate(ctx, expr, out); err != nil {
		return err
	}
	a.logger.Debug("executed script")
	return nil
}

// ScrollToTop scrolls the window to the document top.
func (a *Actions) ScrollToTop(ctx context.Context) error {
	return a.ExecuteScript(ctx, "window.scrollTo(0, 0)", nil)
}

// ScrollToBottom scrolls the window to the document bottom.
func (a *Actions) ScrollToBottom(ctx context.Context) error {
	return a.ExecuteScript(ctx, "window.scrollTo(0, document.body.scrollHeight)", nil)
}
