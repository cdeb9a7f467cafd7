package playwright

import (
	"github.com/playwright-community/playwright-go"

	"github.com/entrhq/lookout/pkg/query"
)

// elementHandle wraps a Playwright element handle. The selector it was
// resolved through is retained for error classification.
type elementHandle struct {
	handle playwright.ElementHandle
	sel    query.Selector
}

var (
	_ query.Element  = (*elementHandle)(nil)
	_ query.Scripter = (*elementHandle)(nil)
)

func (e *elementHandle) FindOne(sel query.Selector) (query.Element, error) {
	if err := sel.Validate(); err != nil {
		return nil, err
	}
	handle, err := e.handle.QuerySelector(translate(sel))
	if err != nil {
		return nil, classify(err, sel)
	}
	if handle == nil {
		return nil, &query.NotFoundError{Selector: sel}
	}
	return &elementHandle{handle: handle, sel: sel}, nil
}

func (e *elementHandle) FindMany(sel query.Selector) ([]query.Element, error) {
	if err := sel.Validate(); err != nil {
		return nil, err
	}
	handles, err := e.handle.QuerySelectorAll(translate(sel))
	if err != nil {
		return nil, classify(err, sel)
	}
	out := make([]query.Element, len(handles))
	for i, h := range handles {
		out[i] = &elementHandle{handle: h, sel: sel}
	}
	return out, nil
}

func (e *elementHandle) IsVisible() (bool, error) {
	v, err := e.handle.IsVisible()
	return v, classify(err, e.sel)
}

func (e *elementHandle) IsEnabled() (bool, error) {
	v, err := e.handle.IsEnabled()
	return v, classify(err, e.sel)
}

func (e *elementHandle) IsSelected() (bool, error) {
	v, err := e.handle.IsChecked()
	return v, classify(err, e.sel)
}

func (e *elementHandle) Attribute(name string) (string, error) {
	v, err := e.handle.GetAttribute(name)
	return v, classify(err, e.sel)
}

func (e *elementHandle) Text() (string, error) {
	v, err := e.handle.TextContent()
	return v, classify(err, e.sel)
}

func (e *elementHandle) TagName() (string, error) {
	v, err := e.handle.Evaluate("el => el.tagName.toLowerCase()")
	if err != nil {
		return "", classify(err, e.sel)
	}
	tag, _ := v.(string)
	return tag, nil
}

func (e *elementHandle) Click() error {
	return classify(e.handle.Click(), e.sel)
}

func (e *elementHandle) SendInput(text string) error {
	return classify(e.handle.Fill(text), e.sel)
}

func (e *elementHandle) Clear() error {
	return classify(e.handle.Fill(""), e.sel)
}

func (e *elementHandle) Submit() error {
	_, err := e.handle.Evaluate("el => (el.form || el).submit()")
	return classify(err, e.sel)
}

// Eval implements the Scripter capability against this element: the
// script receives the element as its argument, matching Playwright's
// handle evaluation.
func (e *elementHandle) Eval(script string, args ...any) (any, error) {
	var (
		v   any
		err error
	)
	if len(args) > 0 {
		v, err = e.handle.Evaluate(script, args[0])
	} else {
		v, err = e.handle.Evaluate(script)
	}
	return v, classify(err, e.sel)
}
