package browser

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/atheor/gowebtest/internal/logging"
)

const staticFixtureHTML = `<!DOCTYPE html>
<html>
<head><title>Static Fixture</title></head>
<body>
    <h1 id="heading">Hello there</h1>
    <div id="invisible" style="display: none">secret</div>
    <input type="hidden" id="token" name="token" value="abc123">
    <button id="disabled-button" disabled>Nope</button>
    <a id="next-link" href="/second">next</a>
    <form id="search-form" method="GET" action="/search">
        <input type="text" id="query" name="q" value="">
        <button type="submit" id="search-button">Search</button>
    </form>
</body>
</html>`

func newStaticFixture(t *testing.T) (*StaticSession, *httptest.Server) {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(staticFixtureHTML))
	})
	mux.HandleFunc("/second", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><head><title>Second Page</title></head><body></body></html>`))
	})
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><head><title>Results</title></head><body><div id="echo">` +
			r.URL.Query().Get("q") + `</div></body></html>`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	s, err := NewStaticSession(Config{}, logging.NewStdoutLogger("test"))
	if err != nil {
		t.Fatalf("NewStaticSession: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	if err := s.Navigate(context.Background(), srv.URL); err != nil {
		t.Fatalf("Navigate: %v", err)
	}
	return s, srv
}

func TestStaticSession_NavigateAndTitle(t *testing.T) {
	t.Parallel()
	s, srv := newStaticFixture(t)
	ctx := context.Background()

	title, err := s.Title(ctx)
	if err != nil {
		t.Fatalf("Title: %v", err)
	}
	if title != "Static Fixture" {
		t.Errorf("title = %q", title)
	}

	cur, err := s.CurrentURL(ctx)
	if err != nil {
		t.Fatalf("CurrentURL: %v", err)
	}
	if cur != srv.URL+"/" && cur != srv.URL {
		t.Errorf("current URL = %q", cur)
	}
}

func TestStaticSession_ExistsAndVisible(t *testing.T) {
	t.Parallel()
	s, _ := newStaticFixture(t)
	ctx := context.Background()

	if ok, _ := s.Exists(ctx, ID("heading")); !ok {
		t.Error("heading should exist")
	}
	if ok, _ := s.Exists(ctx, ID("missing")); ok {
		t.Error("missing element should not exist")
	}
	if ok, _ := s.Visible(ctx, ID("heading")); !ok {
		t.Error("heading should be visible")
	}
	if ok, _ := s.Visible(ctx, ID("invisible")); ok {
		t.Error("display:none element should not be visible")
	}
	if ok, _ := s.Visible(ctx, ID("token")); ok {
		t.Error("hidden input should not be visible")
	}
}

func TestStaticSession_Clickable(t *testing.T) {
	t.Parallel()
	s, _ := newStaticFixture(t)
	ctx := context.Background()

	if ok, _ := s.Clickable(ctx, ID("next-link")); !ok {
		t.Error("link should be clickable")
	}
	if ok, _ := s.Clickable(ctx, ID("disabled-button")); ok {
		t.Error("disabled button should not be clickable")
	}

	err := s.Click(ctx, ID("disabled-button"))
	if !errors.Is(err, ErrClickIntercepted) {
		t.Errorf("clicking a disabled button: %v", err)
	}
	err = s.Click(ctx, ID("missing"))
	if !errors.Is(err, ErrNoElement) {
		t.Errorf("clicking a missing element: %v", err)
	}
}

func TestStaticSession_ClickFollowsLink(t *testing.T) {
	t.Parallel()
	s, _ := newStaticFixture(t)
	ctx := context.Background()

	if err := s.Click(ctx, ID("next-link")); err != nil {
		t.Fatalf("Click: %v", err)
	}
	title, _ := s.Title(ctx)
	if title != "Second Page" {
		t.Errorf("after following link, title = %q", title)
	}
}

func TestStaticSession_FormSubmit(t *testing.T) {
	t.Parallel()
	s, _ := newStaticFixture(t)
	ctx := context.Background()

	if err := s.SetText(ctx, ID("query"), "gophers"); err != nil {
		t.Fatalf("SetText: %v", err)
	}
	if err := s.Click(ctx, ID("search-button")); err != nil {
		t.Fatalf("Click: %v", err)
	}

	echo, err := s.Text(ctx, ID("echo"))
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	if echo != "gophers" {
		t.Errorf("submitted query = %q", echo)
	}
}

func TestStaticSession_BackAndForward(t *testing.T) {
	t.Parallel()
	s, srv := newStaticFixture(t)
	ctx := context.Background()

	if err := s.Navigate(ctx, srv.URL+"/second"); err != nil {
		t.Fatalf("Navigate: %v", err)
	}

	if err := s.Back(ctx); err != nil {
		t.Fatalf("Back: %v", err)
	}
	title, _ := s.Title(ctx)
	if title != "Static Fixture" {
		t.Errorf("after Back, title = %q", title)
	}

	if err := s.Forward(ctx); err != nil {
		t.Fatalf("Forward: %v", err)
	}
	title, _ = s.Title(ctx)
	if title != "Second Page" {
		t.Errorf("after Forward, title = %q", title)
	}

	// Nothing further ahead.
	if err := s.Forward(ctx); !errors.Is(err, ErrNoHistory) {
		t.Errorf("Forward past the newest entry: %v", err)
	}
}

func TestStaticSession_FollowedLinkJoinsHistory(t *testing.T) {
	t.Parallel()
	s, _ := newStaticFixture(t)
	ctx := context.Background()

	if err := s.Click(ctx, ID("next-link")); err != nil {
		t.Fatalf("Click: %v", err)
	}
	if err := s.Back(ctx); err != nil {
		t.Fatalf("Back: %v", err)
	}
	title, _ := s.Title(ctx)
	if title != "Static Fixture" {
		t.Errorf("after Back from followed link, title = %q", title)
	}
}

func TestStaticSession_BackWithoutHistory(t *testing.T) {
	t.Parallel()
	s, _ := newStaticFixture(t)

	if err := s.Back(context.Background()); !errors.Is(err, ErrNoHistory) {
		t.Errorf("Back on first page: %v", err)
	}
}

func TestStaticSession_NavigateClearsForward(t *testing.T) {
	t.Parallel()
	s, srv := newStaticFixture(t)
	ctx := context.Background()

	if err := s.Navigate(ctx, srv.URL+"/second"); err != nil {
		t.Fatalf("Navigate: %v", err)
	}
	if err := s.Back(ctx); err != nil {
		t.Fatalf("Back: %v", err)
	}
	if err := s.Navigate(ctx, srv.URL+"/search?q=x"); err != nil {
		t.Fatalf("Navigate: %v", err)
	}

	if err := s.Forward(ctx); !errors.Is(err, ErrNoHistory) {
		t.Errorf("Forward after a fresh navigation: %v", err)
	}
}

func TestStaticSession_TextAndAttribute(t *testing.T) {
	t.Parallel()
	s, _ := newStaticFixture(t)
	ctx := context.Background()

	text, err := s.Text(ctx, ID("heading"))
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	if text != "Hello there" {
		t.Errorf("text = %q", text)
	}

	val, ok, err := s.Attribute(ctx, ID("token"), "value")
	if err != nil || !ok || val != "abc123" {
		t.Errorf("Attribute = %q, %v, %v", val, ok, err)
	}

	// Boolean attribute with no value still reports present.
	_, ok, err = s.Attribute(ctx, ID("disabled-button"), "disabled")
	if err != nil || !ok {
		t.Errorf("disabled attribute: ok=%v err=%v", ok, err)
	}

	_, ok, err = s.Attribute(ctx, ID("heading"), "nope")
	if err != nil || ok {
		t.Errorf("absent attribute: ok=%v err=%v", ok, err)
	}
}

func TestStaticSession_SendTextAppends(t *testing.T) {
	t.Parallel()
	s, _ := newStaticFixture(t)
	ctx := context.Background()

	if err := s.SetText(ctx, ID("query"), "go"); err != nil {
		t.Fatalf("SetText: %v", err)
	}
	if err := s.SendText(ctx, ID("query"), "pher"); err != nil {
		t.Fatalf("SendText: %v", err)
	}
	val, _, _ := s.Attribute(ctx, ID("query"), "value")
	if val != "gopher" {
		t.Errorf("value = %q", val)
	}
}

func TestStaticSession_Unsupported(t *testing.T) {
	t.Parallel()
	s, _ := newStaticFixture(t)
	ctx := context.Background()

	if _, err := s.Exists(ctx, XPath("//h1")); !errors.Is(err, ErrNotSupported) {
		t.Errorf("XPath lookup: %v", err)
	}
	if err := s.Evaluate(ctx, "1+1", nil); !errors.Is(err, ErrNotSupported) {
		t.Errorf("Evaluate: %v", err)
	}
	if _, err := s.Screenshot(ctx); !errors.Is(err, ErrNotSupported) {
		t.Errorf("Screenshot: %v", err)
	}
}

func TestStaticSession_NoPage(t *testing.T) {
	t.Parallel()
	s, err := NewStaticSession(Config{}, logging.NewStdoutLogger("test"))
	if err != nil {
		t.Fatalf("NewStaticSession: %v", err)
	}
	defer s.Close()

	if _, err := s.Title(context.Background()); !errors.Is(err, ErrNoPage) {
		t.Errorf("Title without a page: %v", err)
	}
	if err := s.Reload(context.Background()); !errors.Is(err, ErrNoPage) {
		t.Errorf("Reload without a page: %v", err)
	}
}
