// Package pages models the demo application's screens. Concrete pages
// embed Page, a capability bundle, instead of inheriting from a base
// class: each page declares its locators and exposes intent-level methods
// built on the element and actions layers.
package pages

import (
	"context"
	"fmt"

	"github.com/atheor/gowebtest/internal/actions"
	"github.com/atheor/gowebtest/internal/browser"
	"github.com/atheor/gowebtest/internal/element"
	"github.com/atheor/gowebtest/internal/logging"
)

// Page bundles what every page object needs. Embed it by value.
type Page struct {
	Session browser.Session
	Actions *actions.Actions
	Waits   element.Waits
	BaseURL string
	Logger  logging.Logger
}

// NewPage builds the capability bundle shared by concrete pages.
func NewPage(session browser.Session, baseURL string, waits element.Waits, logger logging.Logger) Page {
	return Page{
		Session: session,
		Actions: actions.New(session, logger),
		Waits:   waits,
		BaseURL: baseURL,
		Logger:  logger,
	}
}

// El creates a bounded-wait element handle for loc.
func (p Page) El(loc browser.Locator, name string) *element.Element {
	return element.New(p.Session, loc, name, p.Waits, p.Logger)
}

// Open navigates to path relative to the page's base URL.
func (p Page) Open(ctx context.Context, path string) error {
	if err := p.Actions.NavigateTo(ctx, p.BaseURL+path); err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	return nil
}
