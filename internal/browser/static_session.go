package browser

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/atheor/gowebtest/internal/logging"
)

// ErrNoPage is returned by static session operations before the first
// successful Navigate.
var ErrNoPage = errors.New("browser: no page loaded")

// StaticSession implements Session over plain HTTP and parsed HTML, with no
// JavaScript engine. It resolves locators against the fetched document,
// follows links and submits forms on Click, and keeps cookies across
// requests so login flows work. Pages whose behavior depends on scripts
// need the chromedp backend instead.
//
// Visibility and clickability are derived from markup alone: hidden
// attributes, inline display/visibility styles and the disabled attribute.
type StaticSession struct {
	client *http.Client
	logger logging.Logger

	doc *goquery.Document
	url *url.URL

	// Visited URLs behind and ahead of the current page. Navigations and
	// followed links push onto back and clear forward, like a browser.
	back    []string
	forward []string
}

// NewStaticSession constructs a browserless session. If cfg.HTTPClient is
// nil a default client with a fresh cookie jar is used.
func NewStaticSession(cfg Config, logger logging.Logger) (*StaticSession, error) {
	componentLogger := logger.With(logging.Field{Key: "backend", Value: BackendStatic})

	client := cfg.HTTPClient
	if client == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("create cookie jar: %w", err)
		}
		client = &http.Client{Jar: jar, Timeout: cfg.NavigationTimeout}
	}

	componentLogger.Info("created static session")

	return &StaticSession{
		client: client,
		logger: componentLogger,
	}, nil
}

func (s *StaticSession) fetch(ctx context.Context, method, target string, body io.Reader, contentType string) error {
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", target, err)
	}
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return fmt.Errorf("parse %s: %w", target, err)
	}

	finalURL := resp.Request.URL

	s.doc = doc
	s.url = finalURL

	s.logger.Debug("page loaded",
		logging.Field{Key: "url", Value: finalURL.String()},
		logging.Field{Key: "status", Value: resp.StatusCode})
	return nil
}

func (s *StaticSession) Navigate(ctx context.Context, target string) error {
	prev := s.url
	if err := s.fetch(ctx, http.MethodGet, target, nil, ""); err != nil {
		return err
	}
	if prev != nil {
		s.back = append(s.back, prev.String())
		s.forward = nil
	}
	return nil
}

func (s *StaticSession) Back(ctx context.Context) error {
	if len(s.back) == 0 {
		return fmt.Errorf("navigate back: %w", ErrNoHistory)
	}
	target := s.back[len(s.back)-1]
	cur := s.url
	if err := s.fetch(ctx, http.MethodGet, target, nil, ""); err != nil {
		return err
	}
	s.back = s.back[:len(s.back)-1]
	if cur != nil {
		s.forward = append(s.forward, cur.String())
	}
	return nil
}

func (s *StaticSession) Forward(ctx context.Context) error {
	if len(s.forward) == 0 {
		return fmt.Errorf("navigate forward: %w", ErrNoHistory)
	}
	target := s.forward[len(s.forward)-1]
	cur := s.url
	if err := s.fetch(ctx, http.MethodGet, target, nil, ""); err != nil {
		return err
	}
	s.forward = s.forward[:len(s.forward)-1]
	if cur != nil {
		s.back = append(s.back, cur.String())
	}
	return nil
}

func (s *StaticSession) Title(ctx context.Context) (string, error) {
	if s.doc == nil {
		return "", ErrNoPage
	}
	return strings.TrimSpace(s.doc.Find("title").First().Text()), nil
}

func (s *StaticSession) CurrentURL(ctx context.Context) (string, error) {
	if s.url == nil {
		return "", ErrNoPage
	}
	return s.url.String(), nil
}

func (s *StaticSession) Reload(ctx context.Context) error {
	if s.url == nil {
		return ErrNoPage
	}
	return s.Navigate(ctx, s.url.String())
}

// find resolves loc to a selection on the current document. XPath locators
// are rejected: there is no XPath engine outside Chrome.
func (s *StaticSession) find(loc Locator) (*goquery.Selection, error) {
	if s.doc == nil {
		return nil, ErrNoPage
	}
	sel, ok := loc.Selector()
	if !ok {
		return nil, fmt.Errorf("locator %s: %w", loc, ErrNotSupported)
	}
	return s.doc.Find(sel), nil
}

func (s *StaticSession) Exists(ctx context.Context, loc Locator) (bool, error) {
	sel, err := s.find(loc)
	if err != nil {
		return false, err
	}
	return sel.Length() > 0, nil
}

// hiddenByMarkup walks the node and its ancestors looking for markup that
// would prevent rendering.
func hiddenByMarkup(n *html.Node) bool {
	for ; n != nil; n = n.Parent {
		if n.Type != html.ElementNode {
			continue
		}
		for _, a := range n.Attr {
			switch a.Key {
			case "hidden":
				return true
			case "type":
				if n.Data == "input" && strings.EqualFold(a.Val, "hidden") {
					return true
				}
			case "style":
				style := strings.ReplaceAll(strings.ToLower(a.Val), " ", "")
				if strings.Contains(style, "display:none") || strings.Contains(style, "visibility:hidden") {
					return true
				}
			}
		}
	}
	return false
}

func (s *StaticSession) Visible(ctx context.Context, loc Locator) (bool, error) {
	sel, err := s.find(loc)
	if err != nil {
		return false, err
	}
	if sel.Length() == 0 {
		return false, nil
	}
	return !hiddenByMarkup(sel.Get(0)), nil
}

func (s *StaticSession) Clickable(ctx context.Context, loc Locator) (bool, error) {
	visible, err := s.Visible(ctx, loc)
	if err != nil || !visible {
		return false, err
	}
	sel, _ := s.find(loc)
	_, disabled := sel.First().Attr("disabled")
	return !disabled, nil
}

// Click follows anchor hrefs and submits forms for submit controls. Other
// elements have no observable click behavior without a script engine; the
// click is accepted and logged.
func (s *StaticSession) Click(ctx context.Context, loc Locator) error {
	clickable, err := s.Clickable(ctx, loc)
	if err != nil {
		return err
	}
	if !clickable {
		exists, err := s.Exists(ctx, loc)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("click %s: %w", loc, ErrNoElement)
		}
		return fmt.Errorf("click %s: %w", loc, ErrClickIntercepted)
	}
	return s.ScriptClick(ctx, loc)
}

func (s *StaticSession) ScriptClick(ctx context.Context, loc Locator) error {
	sel, err := s.find(loc)
	if err != nil {
		return err
	}
	first := sel.First()
	if first.Length() == 0 {
		return fmt.Errorf("click %s: %w", loc, ErrNoElement)
	}

	if href, ok := first.Attr("href"); ok && goquery.NodeName(first) == "a" {
		return s.Navigate(ctx, s.resolve(href))
	}

	if form := first.Closest("form"); form.Length() > 0 && isSubmitControl(first) {
		return s.submitForm(ctx, form)
	}

	s.logger.Debug("click with no static behavior", logging.Field{Key: "locator", Value: loc.String()})
	return nil
}

func isSubmitControl(sel *goquery.Selection) bool {
	switch goquery.NodeName(sel) {
	case "button":
		t, ok := sel.Attr("type")
		return !ok || strings.EqualFold(t, "submit")
	case "input":
		t, _ := sel.Attr("type")
		return strings.EqualFold(t, "submit")
	}
	return false
}

func (s *StaticSession) resolve(href string) string {
	ref, err := url.Parse(href)
	if err != nil || s.url == nil {
		return href
	}
	return s.url.ResolveReference(ref).String()
}

// submitForm serializes the form's named controls and performs the GET or
// POST the browser would.
func (s *StaticSession) submitForm(ctx context.Context, form *goquery.Selection) error {
	values := url.Values{}
	form.Find("input, textarea, select").Each(func(_ int, field *goquery.Selection) {
		name, ok := field.Attr("name")
		if !ok || name == "" {
			return
		}
		switch goquery.NodeName(field) {
		case "textarea":
			values.Set(name, field.Text())
		case "select":
			if opt := field.Find("option[selected]").First(); opt.Length() > 0 {
				v, _ := opt.Attr("value")
				values.Set(name, v)
			}
		default:
			t, _ := field.Attr("type")
			if strings.EqualFold(t, "checkbox") || strings.EqualFold(t, "radio") {
				if _, checked := field.Attr("checked"); !checked {
					return
				}
			}
			v, _ := field.Attr("value")
			values.Set(name, v)
		}
	})

	action, _ := form.Attr("action")
	target := s.resolve(action)
	if action == "" && s.url != nil {
		target = s.url.String()
	}

	method, _ := form.Attr("method")
	if strings.EqualFold(method, "post") {
		return s.fetch(ctx, http.MethodPost, target, strings.NewReader(values.Encode()), "application/x-www-form-urlencoded")
	}

	u, err := url.Parse(target)
	if err != nil {
		return fmt.Errorf("parse form action %q: %w", target, err)
	}
	u.RawQuery = values.Encode()
	return s.fetch(ctx, http.MethodGet, u.String(), nil, "")
}

func (s *StaticSession) SetText(ctx context.Context, loc Locator, text string) error {
	sel, err := s.find(loc)
	if err != nil {
		return err
	}
	first := sel.First()
	if first.Length() == 0 {
		return fmt.Errorf("set text on %s: %w", loc, ErrNoElement)
	}
	first.SetAttr("value", text)
	return nil
}

func (s *StaticSession) SendText(ctx context.Context, loc Locator, text string) error {
	sel, err := s.find(loc)
	if err != nil {
		return err
	}
	first := sel.First()
	if first.Length() == 0 {
		return fmt.Errorf("send text to %s: %w", loc, ErrNoElement)
	}
	existing, _ := first.Attr("value")
	first.SetAttr("value", existing+text)
	return nil
}

func (s *StaticSession) Clear(ctx context.Context, loc Locator) error {
	return s.SetText(ctx, loc, "")
}

func (s *StaticSession) Text(ctx context.Context, loc Locator) (string, error) {
	sel, err := s.find(loc)
	if err != nil {
		return "", err
	}
	first := sel.First()
	if first.Length() == 0 {
		return "", fmt.Errorf("get text of %s: %w", loc, ErrNoElement)
	}
	return strings.TrimSpace(first.Text()), nil
}

// Attribute reads attributes off the underlying html node, so boolean
// attributes with empty values still report present.
func (s *StaticSession) Attribute(ctx context.Context, loc Locator, name string) (string, bool, error) {
	sel, err := s.find(loc)
	if err != nil {
		return "", false, err
	}
	first := sel.First()
	if first.Length() == 0 {
		return "", false, fmt.Errorf("get attribute %q of %s: %w", name, loc, ErrNoElement)
	}
	for _, a := range first.Get(0).Attr {
		if a.Key == name {
			return a.Val, true, nil
		}
	}
	return "", false, nil
}

func (s *StaticSession) Evaluate(ctx context.Context, expr string, out any) error {
	return fmt.Errorf("evaluate script: %w", ErrNotSupported)
}

func (s *StaticSession) Screenshot(ctx context.Context) ([]byte, error) {
	return nil, fmt.Errorf("capture screenshot: %w", ErrNotSupported)
}

func (s *StaticSession) Close() error {
	s.logger.Info("closing static session")
	s.doc = nil
	s.url = nil
	s.back = nil
	s.forward = nil
	return nil
}
