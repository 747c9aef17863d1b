package actions

import (
	"context"
	"errors"
	"testing"

	"github.com/atheor/gowebtest/internal/browser"
	"github.com/atheor/gowebtest/internal/testutil"
)

func TestNavigateAndReadBack(t *testing.T) {
	t.Parallel()
	session := testutil.NewFakeSession()
	session.PageTitle = "Fixture"
	a := New(session, &testutil.DummyLogger{})
	ctx := context.Background()

	if err := a.NavigateTo(ctx, "http://example.test/start"); err != nil {
		t.Fatalf("NavigateTo: %v", err)
	}
	if len(session.Navigations) != 1 || session.Navigations[0] != "http://example.test/start" {
		t.Errorf("navigations = %v", session.Navigations)
	}

	title, err := a.Title(ctx)
	if err != nil {
		t.Fatalf("Title: %v", err)
	}
	if title != "Fixture" {
		t.Errorf("title = %q", title)
	}

	cur, err := a.CurrentURL(ctx)
	if err != nil {
		t.Fatalf("CurrentURL: %v", err)
	}
	if cur != "http://example.test/start" {
		t.Errorf("current URL = %q", cur)
	}
}

func TestBackAndForward(t *testing.T) {
	t.Parallel()
	session := testutil.NewFakeSession()
	a := New(session, &testutil.DummyLogger{})
	ctx := context.Background()

	if err := a.Back(ctx); !errors.Is(err, browser.ErrNoHistory) {
		t.Errorf("Back with no history: %v", err)
	}

	if err := a.NavigateTo(ctx, "http://example.test/a"); err != nil {
		t.Fatalf("NavigateTo: %v", err)
	}
	if err := a.NavigateTo(ctx, "http://example.test/b"); err != nil {
		t.Fatalf("NavigateTo: %v", err)
	}

	if err := a.Back(ctx); err != nil {
		t.Fatalf("Back: %v", err)
	}
	if cur, _ := a.CurrentURL(ctx); cur != "http://example.test/a" {
		t.Errorf("after Back, URL = %q", cur)
	}

	if err := a.Forward(ctx); err != nil {
		t.Fatalf("Forward: %v", err)
	}
	if cur, _ := a.CurrentURL(ctx); cur != "http://example.test/b" {
		t.Errorf("after Forward, URL = %q", cur)
	}

	if err := a.Forward(ctx); !errors.Is(err, browser.ErrNoHistory) {
		t.Errorf("Forward past the newest entry: %v", err)
	}
}

func TestExecuteScript_Unsupported(t *testing.T) {
	t.Parallel()
	a := New(testutil.NewFakeSession(), &testutil.DummyLogger{})

	err := a.ExecuteScript(context.Background(), "1+1", nil)
	if !errors.Is(err, browser.ErrNotSupported) {
		t.Errorf("expected ErrNotSupported, got %v", err)
	}
}
