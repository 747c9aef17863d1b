package pages

import (
	"context"

	"github.com/atheor/gowebtest/internal/browser"
)

// ProductsPage drives the post-login /products listing.
type ProductsPage struct {
	Page
}

var (
	welcomeBanner = browser.ID("welcome-banner")
	productList   = browser.ID("product-list")
	logoutLink    = browser.ID("logout-link")
)

func NewProductsPage(p Page) *ProductsPage {
	return &ProductsPage{Page: p}
}

// WaitUntilLoaded blocks until the product list is visible.
func (p *ProductsPage) WaitUntilLoaded(ctx context.Context) error {
	return p.El(productList, "product list").WaitForVisible(ctx)
}

// WelcomeText returns the welcome banner's text.
func (p *ProductsPage) WelcomeText(ctx context.Context) (string, error) {
	return p.El(welcomeBanner, "welcome banner").Text(ctx)
}

// ProductText returns the rendered text of one product row by its element id.
func (p *ProductsPage) ProductText(ctx context.Context, productID string) (string, error) {
	return p.El(browser.ID(productID), "product row "+productID).Text(ctx)
}

// Logout clicks the logout link.
func (p *ProductsPage) Logout(ctx context.Context) error {
	return p.El(logoutLink, "logout link").Click(ctx)
}
