package pages

import (
	"context"
	"fmt"

	"github.com/atheor/gowebtest/internal/browser"
)

// LoginPage drives the /login form.
type LoginPage struct {
	Page
}

var (
	usernameField = browser.ID("username")
	passwordField = browser.ID("password")
	loginButton   = browser.ID("login-button")
	loginError    = browser.ID("login-error")
)

func NewLoginPage(p Page) *LoginPage {
	return &LoginPage{Page: p}
}

// Open navigates to the login form and waits for it to be ready.
func (p *LoginPage) Open(ctx context.Context) error {
	if err := p.Page.Open(ctx, "/login"); err != nil {
		return err
	}
	return p.El(usernameField, "username field").WaitForVisible(ctx)
}

// Login fills in the credentials and submits the form.
func (p *LoginPage) Login(ctx context.Context, username, password string) error {
	if err := p.El(usernameField, "username field").Type(ctx, username); err != nil {
		return fmt.Errorf("entering username: %w", err)
	}
	if err := p.El(passwordField, "password field").Type(ctx, password); err != nil {
		return fmt.Errorf("entering password: %w", err)
	}
	if err := p.El(loginButton, "login button").Click(ctx); err != nil {
		return fmt.Errorf("submitting login form: %w", err)
	}
	return nil
}

// ErrorMessage returns the text of the login error banner, waiting for it
// to appear first.
func (p *LoginPage) ErrorMessage(ctx context.Context) (string, error) {
	return p.El(loginError, "login error banner").Text(ctx)
}
