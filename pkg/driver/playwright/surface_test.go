package playwright

import (
	"errors"
	"testing"

	"github.com/entrhq/lookout/pkg/query"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		name string
		sel  query.Selector
		want string
	}{
		{"id", query.ID("submit"), `[id="submit"]`},
		{"name", query.Name("email"), `[name="email"]`},
		{"css passthrough", query.CSS(".btn.primary"), ".btn.primary"},
		{"xpath", query.XPath("//div[@id='x']"), "xpath=//div[@id='x']"},
		{"link text", query.LinkText("Sign in"), `a:text-is("Sign in")`},
		{"partial link text", query.PartialLinkText("Sign"), `a:has-text("Sign")`},
		{"tag", query.Tag("input"), "input"},
		{"class", query.Class("item"), ".item"},
		{"attribute", query.Attr("data-role", "menu"), `[data-role="menu"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := translate(tt.sel); got != tt.want {
				t.Errorf("translate(%s) = %q, want %q", tt.sel, got, tt.want)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	sel := query.ID("submit")

	tests := []struct {
		name string
		err  error
		want query.Kind
	}{
		{"detached handle", errors.New("element is not attached to the DOM"), query.KindStale},
		{"stale mention", errors.New("protocol error: Stale element"), query.KindStale},
		{"destroyed context", errors.New("execution context was destroyed"), query.KindStale},
		{"no node", errors.New("no node found for selector"), query.KindNotFound},
		{"find failure", errors.New("failed to find element matching selector"), query.KindNotFound},
		{"unrelated", errors.New("browser has been closed"), query.KindOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify(tt.err, sel)
			if query.KindOf(got) != tt.want {
				t.Errorf("classify(%v) kind = %v, want %v", tt.err, query.KindOf(got), tt.want)
			}
		})
	}

	if classify(nil, sel) != nil {
		t.Error("classify(nil) should be nil")
	}

	// The original message survives classification for triage.
	err := classify(errors.New("element is not attached to the DOM"), sel)
	var stale *query.StaleError
	if !errors.As(err, &stale) || stale.Reason == "" {
		t.Errorf("classified error lost its reason: %v", err)
	}
}
