package browser

import (
	"fmt"
	"strings"
)

// Strategy names how a Locator's value should be interpreted.
type Strategy string

const (
	ByID        Strategy = "id"
	ByCSS       Strategy = "css"
	ByXPath     Strategy = "xpath"
	ByClassName Strategy = "class"
	ByName      Strategy = "name"
)

// Locator is an immutable descriptor of how to find an element on a page.
// It never holds a resolved element handle: handles can go stale between
// interactions, so every operation re-resolves from the Locator.
type Locator struct {
	Strategy Strategy
	Value    string
}

// ID locates by element id attribute.
func ID(id string) Locator { return Locator{Strategy: ByID, Value: id} }

// CSS locates by CSS selector.
func CSS(sel string) Locator { return Locator{Strategy: ByCSS, Value: sel} }

// XPath locates by XPath expression.
func XPath(expr string) Locator { return Locator{Strategy: ByXPath, Value: expr} }

// ClassName locates by a single CSS class name.
func ClassName(name string) Locator { return Locator{Strategy: ByClassName, Value: name} }

// Name locates by element name attribute.
func Name(name string) Locator { return Locator{Strategy: ByName, Value: name} }

func (l Locator) String() string {
	return fmt.Sprintf("%s=%q", l.Strategy, l.Value)
}

// Selector converts the locator to a CSS selector. XPath locators have no
// CSS equivalent and report ok=false; backends that cannot evaluate XPath
// must reject them.
func (l Locator) Selector() (sel string, ok bool) {
	switch l.Strategy {
	case ByID:
		return "#" + l.Value, true
	case ByCSS:
		return l.Value, true
	case ByClassName:
		return "." + l.Value, true
	case ByName:
		return fmt.Sprintf("[name=%q]", l.Value), true
	case ByXPath:
		return "", false
	default:
		return l.Value, true
	}
}

// IsZero reports whether the locator is the empty value.
func (l Locator) IsZero() bool {
	return l.Strategy == "" && strings.TrimSpace(l.Value) == ""
}
