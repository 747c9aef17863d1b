package browser

import "testing"

func TestLocatorSelector(t *testing.T) {
	t.Parallel()
	cases := []struct {
		loc     Locator
		wantSel string
		wantOK  bool
	}{
		{ID("login-button"), "#login-button", true},
		{CSS("div.card > a"), "div.card > a", true},
		{ClassName("price"), ".price", true},
		{Name("username"), `[name="username"]`, true},
		{XPath("//button[@id='x']"), "", false},
	}

	for _, tc := range cases {
		sel, ok := tc.loc.Selector()
		if ok != tc.wantOK {
			t.Errorf("%v: ok = %v, want %v", tc.loc, ok, tc.wantOK)
		}
		if sel != tc.wantSel {
			t.Errorf("%v: selector = %q, want %q", tc.loc, sel, tc.wantSel)
		}
	}
}

func TestLocatorString(t *testing.T) {
	t.Parallel()
	if got := ID("x").String(); got != `id="x"` {
		t.Errorf("String() = %q", got)
	}
}

func TestLocatorIsZero(t *testing.T) {
	t.Parallel()
	if !(Locator{}).IsZero() {
		t.Error("empty locator should be zero")
	}
	if ID("x").IsZero() {
		t.Error("populated locator should not be zero")
	}
}
