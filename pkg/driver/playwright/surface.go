package playwright

import (
	"fmt"
	"strings"

	"github.com/playwright-community/playwright-go"

	"github.com/entrhq/lookout/pkg/query"
)

// translate renders a selector in Playwright's selector syntax.
func translate(sel query.Selector) string {
	switch sel.Strategy {
	case query.ByID:
		return fmt.Sprintf("[id=%q]", sel.Value)
	case query.ByName:
		return fmt.Sprintf("[name=%q]", sel.Value)
	case query.ByCSS:
		return sel.Value
	case query.ByXPath:
		return "xpath=" + sel.Value
	case query.ByLinkText:
		return fmt.Sprintf("a:text-is(%q)", sel.Value)
	case query.ByPartialLinkText:
		return fmt.Sprintf("a:has-text(%q)", sel.Value)
	case query.ByTag:
		return sel.Value
	case query.ByClass:
		return "." + sel.Value
	case query.ByAttribute:
		name, value := sel.AttrParts()
		return fmt.Sprintf("[%s=%q]", name, value)
	default:
		return sel.Value
	}
}

// classify maps a driver error onto the retry taxonomy. Playwright does
// not expose structured error kinds over its protocol, so this matches
// on the stable message fragments the library produces.
func classify(err error, sel query.Selector) error {
	if err == nil {
		return nil
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "not attached"),
		strings.Contains(msg, "stale"),
		strings.Contains(msg, "execution context was destroyed"):
		return &query.StaleError{Selector: sel, Reason: err.Error()}
	case strings.Contains(msg, "no node found"),
		strings.Contains(msg, "failed to find element"):
		return &query.NotFoundError{Selector: sel}
	default:
		return err
	}
}

// pageSurface is the driver-level root surface.
type pageSurface struct {
	page playwright.Page
}

func (p *pageSurface) FindOne(sel query.Selector) (query.Element, error) {
	if err := sel.Validate(); err != nil {
		return nil, err
	}
	handle, err := p.page.QuerySelector(translate(sel))
	if err != nil {
		return nil, classify(err, sel)
	}
	if handle == nil {
		return nil, &query.NotFoundError{Selector: sel}
	}
	return &elementHandle{handle: handle, sel: sel}, nil
}

func (p *pageSurface) FindMany(sel query.Selector) ([]query.Element, error) {
	if err := sel.Validate(); err != nil {
		return nil, err
	}
	handles, err := p.page.QuerySelectorAll(translate(sel))
	if err != nil {
		return nil, classify(err, sel)
	}
	out := make([]query.Element, len(handles))
	for i, h := range handles {
		out[i] = &elementHandle{handle: h, sel: sel}
	}
	return out, nil
}

// Eval implements the Scripter capability at page level.
func (p *pageSurface) Eval(script string, args ...any) (any, error) {
	if len(args) > 0 {
		return p.page.Evaluate(script, args[0])
	}
	return p.page.Evaluate(script)
}
