// Package workflows composes page objects into multi-step user journeys.
package workflows

import (
	"context"
	"fmt"

	"github.com/atheor/gowebtest/internal/assert"
	"github.com/atheor/gowebtest/internal/logging"
	"github.com/atheor/gowebtest/internal/pages"
)

// LoginWorkflow signs a user in and verifies they landed on the products
// page. Pages are composed, not inherited.
type LoginWorkflow struct {
	login    *pages.LoginPage
	products *pages.ProductsPage
	logger   logging.Logger
}

func NewLoginWorkflow(p pages.Page) *LoginWorkflow {
	return &LoginWorkflow{
		login:    pages.NewLoginPage(p),
		products: pages.NewProductsPage(p),
		logger:   p.Logger,
	}
}

// Run performs the full journey: open the form, submit credentials, wait
// for the products page, and check the welcome banner names the user.
func (w *LoginWorkflow) Run(ctx context.Context, username, password string) error {
	w.logger.Info("login workflow starting", logging.Field{Key: "username", Value: username})

	if err := w.login.Open(ctx); err != nil {
		return fmt.Errorf("login workflow: %w", err)
	}
	if err := w.login.Login(ctx, username, password); err != nil {
		return fmt.Errorf("login workflow: %w", err)
	}
	if err := w.products.WaitUntilLoaded(ctx); err != nil {
		return fmt.Errorf("login workflow: products page did not load: %w", err)
	}

	welcome, err := w.products.WelcomeText(ctx)
	if err != nil {
		return fmt.Errorf("login workflow: %w", err)
	}
	if err := assert.TextContains(username, welcome); err != nil {
		return fmt.Errorf("login workflow: welcome banner: %w", err)
	}

	w.logger.Info("login workflow finished", logging.Field{Key: "username", Value: username})
	return nil
}

// RunExpectingFailure submits bad credentials and returns the error banner
// text shown to the user.
func (w *LoginWorkflow) RunExpectingFailure(ctx context.Context, username, password string) (string, error) {
	if err := w.login.Open(ctx); err != nil {
		return "", fmt.Errorf("login workflow: %w", err)
	}
	if err := w.login.Login(ctx, username, password); err != nil {
		return "", fmt.Errorf("login workflow: %w", err)
	}
	msg, err := w.login.ErrorMessage(ctx)
	if err != nil {
		return "", fmt.Errorf("login workflow: error banner: %w", err)
	}
	return msg, nil
}
