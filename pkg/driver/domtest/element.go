package domtest

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/entrhq/lookout/pkg/query"
)

// element is a handle into the parsed tree. It records the generation it
// was resolved under; once the surface re-parses, every read and
// interaction on the old handle fails with a stale-reference error.
type element struct {
	s    *Surface
	node *html.Node
	gen  int
}

var (
	_ query.Element  = (*element)(nil)
	_ query.Scripter = (*element)(nil)
)

func (e *element) live() error {
	if e.gen != e.s.generation() {
		return &query.StaleError{Reason: "document was replaced"}
	}
	return nil
}

func (e *element) describe() string {
	desc := "<" + e.node.Data
	if id, ok := attr(e.node, "id"); ok {
		desc += "#" + id
	}
	return desc + ">"
}

// FindOne implements nested queries over the element's subtree.
func (e *element) FindOne(sel query.Selector) (query.Element, error) {
	if err := e.live(); err != nil {
		return nil, err
	}
	return e.s.findOne(e.node, sel)
}

// FindMany implements nested queries over the element's subtree.
func (e *element) FindMany(sel query.Selector) ([]query.Element, error) {
	if err := e.live(); err != nil {
		return nil, err
	}
	return e.s.findMany(e.node, sel)
}

// IsVisible applies the usual heuristics: hidden attribute, hidden input
// type, or display:none / visibility:hidden inline style on the element
// or any ancestor.
func (e *element) IsVisible() (bool, error) {
	if err := e.live(); err != nil {
		return false, err
	}
	for n := e.node; n != nil; n = n.Parent {
		if n.Type != html.ElementNode {
			continue
		}
		if _, hidden := attr(n, "hidden"); hidden {
			return false, nil
		}
		if t, _ := attr(n, "type"); t == "hidden" && n == e.node {
			return false, nil
		}
		style, _ := attr(n, "style")
		style = strings.ReplaceAll(style, " ", "")
		if strings.Contains(style, "display:none") || strings.Contains(style, "visibility:hidden") {
			return false, nil
		}
	}
	return true, nil
}

func (e *element) IsEnabled() (bool, error) {
	if err := e.live(); err != nil {
		return false, err
	}
	_, disabled := attr(e.node, "disabled")
	return !disabled, nil
}

func (e *element) IsSelected() (bool, error) {
	if err := e.live(); err != nil {
		return false, err
	}
	if _, checked := attr(e.node, "checked"); checked {
		return true, nil
	}
	_, selected := attr(e.node, "selected")
	return selected, nil
}

func (e *element) Attribute(name string) (string, error) {
	if err := e.live(); err != nil {
		return "", err
	}
	v, _ := attr(e.node, name)
	return v, nil
}

func (e *element) Text() (string, error) {
	if err := e.live(); err != nil {
		return "", err
	}
	return innerText(e.node), nil
}

func (e *element) TagName() (string, error) {
	if err := e.live(); err != nil {
		return "", err
	}
	return e.node.Data, nil
}

func (e *element) Click() error {
	if err := e.live(); err != nil {
		return err
	}
	if t, _ := attr(e.node, "type"); t == "checkbox" {
		e.toggleAttr("checked")
	}
	e.s.recordInteraction("click " + e.describe())
	return nil
}

func (e *element) SendInput(text string) error {
	if err := e.live(); err != nil {
		return err
	}
	e.setAttr("value", text)
	e.s.recordInteraction(fmt.Sprintf("send-input %q %s", text, e.describe()))
	return nil
}

func (e *element) Clear() error {
	if err := e.live(); err != nil {
		return err
	}
	e.removeAttr("value")
	e.s.recordInteraction("clear " + e.describe())
	return nil
}

func (e *element) Submit() error {
	if err := e.live(); err != nil {
		return err
	}
	e.s.recordInteraction("submit " + e.describe())
	return nil
}

// Eval implements the optional Scripter capability by recording the
// script; decorators that mutate the page are observable through
// Surface.Evals.
func (e *element) Eval(script string, args ...any) (any, error) {
	if err := e.live(); err != nil {
		return nil, err
	}
	e.s.recordEval(script)
	return nil, nil
}

func (e *element) setAttr(name, value string) {
	e.s.mu.Lock()
	defer e.s.mu.Unlock()
	for i, a := range e.node.Attr {
		if a.Key == name {
			e.node.Attr[i].Val = value
			return
		}
	}
	e.node.Attr = append(e.node.Attr, html.Attribute{Key: name, Val: value})
}

func (e *element) removeAttr(name string) {
	e.s.mu.Lock()
	defer e.s.mu.Unlock()
	for i, a := range e.node.Attr {
		if a.Key == name {
			e.node.Attr = append(e.node.Attr[:i], e.node.Attr[i+1:]...)
			return
		}
	}
}

func (e *element) toggleAttr(name string) {
	e.s.mu.Lock()
	present := false
	for _, a := range e.node.Attr {
		if a.Key == name {
			present = true
			break
		}
	}
	e.s.mu.Unlock()
	if present {
		e.removeAttr(name)
	} else {
		e.setAttr(name, "")
	}
}
