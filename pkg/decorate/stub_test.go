package decorate

import (
	"fmt"
	"sync"

	"github.com/entrhq/lookout/pkg/query"
)

// stubSurface is an in-memory root surface serving canned elements keyed
// by the selector's diagnostic form.
type stubSurface struct {
	children map[string][]query.Element
}

func (s *stubSurface) FindOne(sel query.Selector) (query.Element, error) {
	els := s.children[sel.String()]
	if len(els) == 0 {
		return nil, &query.NotFoundError{Selector: sel}
	}
	return els[0], nil
}

func (s *stubSurface) FindMany(sel query.Selector) ([]query.Element, error) {
	return s.children[sel.String()], nil
}

// stubElement is a canned element recording interactions and state reads.
type stubElement struct {
	tag  string
	text string

	visible    bool
	visibleErr error
	enabled    bool
	selected   bool

	mu            sync.Mutex
	actions       []string
	visibleCalls  int
	enabledCalls  int
	selectedCalls int

	children map[string][]query.Element
}

func (e *stubElement) FindOne(sel query.Selector) (query.Element, error) {
	els := e.children[sel.String()]
	if len(els) == 0 {
		return nil, &query.NotFoundError{Selector: sel}
	}
	return els[0], nil
}

func (e *stubElement) FindMany(sel query.Selector) ([]query.Element, error) {
	return e.children[sel.String()], nil
}

func (e *stubElement) IsVisible() (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.visibleCalls++
	if e.visibleErr != nil {
		return false, e.visibleErr
	}
	return e.visible, nil
}

func (e *stubElement) IsEnabled() (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.enabledCalls++
	return e.enabled, nil
}

func (e *stubElement) IsSelected() (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.selectedCalls++
	return e.selected, nil
}

func (e *stubElement) Attribute(string) (string, error) { return "", nil }
func (e *stubElement) Text() (string, error)            { return e.text, nil }
func (e *stubElement) TagName() (string, error)         { return e.tag, nil }

func (e *stubElement) record(action string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.actions = append(e.actions, action)
	return nil
}

func (e *stubElement) Click() error           { return e.record("click") }
func (e *stubElement) SendInput(string) error { return e.record("send-input") }
func (e *stubElement) Clear() error           { return e.record("clear") }
func (e *stubElement) Submit() error          { return e.record("submit") }

func (e *stubElement) recordedActions() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]string, len(e.actions))
	copy(out, e.actions)
	return out
}

// scriptedElement adds the optional script capability, recording every
// evaluated script.
type scriptedElement struct {
	stubElement

	evals []string
}

func (e *scriptedElement) Eval(script string, _ ...any) (any, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.evals = append(e.evals, script)
	return nil, nil
}

var (
	_ query.Element  = (*stubElement)(nil)
	_ query.Scripter = (*scriptedElement)(nil)
)

// eventLog collects ordered call records from recorder decorators.
type eventLog struct {
	mu     sync.Mutex
	events []string
}

func (l *eventLog) add(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, fmt.Sprintf(format, args...))
}

func (l *eventLog) all() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.events))
	copy(out, l.events)
	return out
}

// recorder is a decorator that logs every surface query, element
// interaction, and listener dispatch it sees, tagged with its name.
type recorder struct {
	name   string
	log    *eventLog
	listen bool
}

func (r *recorder) Name() string { return r.name }

func (r *recorder) DecorateSurface(s query.Surface) query.Surface {
	return &recorderSurface{inner: s, r: r}
}

func (r *recorder) DecorateElement(e query.Element) query.Element {
	return &recorderElement{Element: e, r: r}
}

func (r *recorder) InteractionListener() Listener {
	if !r.listen {
		return nil
	}
	return ListenerFunc(func(_ query.Element, action Action) {
		r.log.add("%s:listener:%s", r.name, action)
	})
}

type recorderSurface struct {
	inner query.Surface
	r     *recorder
}

func (s *recorderSurface) FindOne(sel query.Selector) (query.Element, error) {
	s.r.log.add("%s:find-one:%s", s.r.name, sel)
	return s.inner.FindOne(sel)
}

func (s *recorderSurface) FindMany(sel query.Selector) ([]query.Element, error) {
	s.r.log.add("%s:find-many:%s", s.r.name, sel)
	return s.inner.FindMany(sel)
}

type recorderElement struct {
	query.Element
	r *recorder
}

func (e *recorderElement) Unwrap() query.Element { return e.Element }

func (e *recorderElement) Click() error {
	e.r.log.add("%s:element:click", e.r.name)
	return e.Element.Click()
}

func (e *recorderElement) SendInput(text string) error {
	e.r.log.add("%s:element:send-input", e.r.name)
	return e.Element.SendInput(text)
}
