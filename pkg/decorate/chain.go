package decorate

import (
	"sync"

	"github.com/entrhq/lookout/pkg/logging"
	"github.com/entrhq/lookout/pkg/query"
)

var (
	chainLogOnce sync.Once
	chainLog     *logging.Logger
)

func chainLogger() *logging.Logger {
	chainLogOnce.Do(func() {
		chainLog, _ = logging.New("decorate")
	})
	return chainLog
}

// Chain is an ordered sequence of decorators. Applying the same chain
// twice to the same base surface is deterministic; the chain itself
// carries no state.
type Chain struct {
	decs []Decorator
}

// NewChain builds a chain over the given decorators, in order.
func NewChain(decs ...Decorator) Chain {
	return Chain{decs: decs}
}

// Decorators returns the chain's decorators in order.
func (c Chain) Decorators() []Decorator {
	out := make([]Decorator, len(c.decs))
	copy(out, c.decs)
	return out
}

// Names returns the decorator names in chain order.
func (c Chain) Names() []string { return Names(c.decs) }

// Len returns the number of decorators in the chain.
func (c Chain) Len() int { return len(c.decs) }

// Apply composes the chain over base and returns the decorated surface.
// Elements found through the result, and elements found through those
// elements, remain decorated at every depth.
//
// When base is the driver-level root (not itself an element) and at
// least one decorator supplies an interaction listener, the root is
// wrapped once with a single multiplexing listener that fans out
// before-interact callbacks to every supplier in chain order.
func (c Chain) Apply(base query.Surface) query.Surface {
	if len(c.decs) == 0 {
		return base
	}
	var listener Listener
	if _, isElement := base.(query.Element); !isElement {
		listener = multiplex(c.decs)
	}
	return c.surface(base, listener)
}

// surface folds the decorators over base. The last decorator in the
// chain ends up innermost (closest to the driver), so decorators earlier
// in the list intercept calls first and can short-circuit the rest.
func (c Chain) surface(base query.Surface, listener Listener) query.Surface {
	s := base
	for i := len(c.decs) - 1; i >= 0; i-- {
		s = c.decs[i].DecorateSurface(s)
	}
	return &chainSurface{chain: c, inner: s, listener: listener}
}

// element wraps a freshly resolved element: the interaction listener
// innermost, then the element decorators in the same orientation as the
// surface fold, then the chain shell that keeps nested queries decorated.
func (c Chain) element(el query.Element, listener Listener) query.Element {
	if listener != nil {
		el = &listenerElement{Element: el, listener: listener}
	}
	for i := len(c.decs) - 1; i >= 0; i-- {
		el = c.decs[i].DecorateElement(el)
	}
	return &chainElement{Element: el, chain: c, listener: listener}
}

// chainSurface decorates the results of a folded surface.
type chainSurface struct {
	chain    Chain
	inner    query.Surface
	listener Listener
}

func (cs *chainSurface) FindOne(sel query.Selector) (query.Element, error) {
	el, err := cs.inner.FindOne(sel)
	if err != nil {
		return nil, err
	}
	return cs.chain.element(el, cs.listener), nil
}

func (cs *chainSurface) FindMany(sel query.Selector) ([]query.Element, error) {
	els, err := cs.inner.FindMany(sel)
	if err != nil {
		return nil, err
	}
	out := make([]query.Element, len(els))
	for i, el := range els {
		out[i] = cs.chain.element(el, cs.listener)
	}
	return out, nil
}

// chainElement keeps an element's nested queries inside the chain.
type chainElement struct {
	query.Element
	chain    Chain
	listener Listener
}

func (ce *chainElement) Unwrap() query.Element { return ce.Element }

func (ce *chainElement) FindOne(sel query.Selector) (query.Element, error) {
	return ce.chain.surface(ce.Element, ce.listener).FindOne(sel)
}

func (ce *chainElement) FindMany(sel query.Selector) ([]query.Element, error) {
	return ce.chain.surface(ce.Element, ce.listener).FindMany(sel)
}

// listenerElement dispatches before-interact callbacks ahead of every
// interaction. It sits innermost so the decorators observe the dispatch.
type listenerElement struct {
	query.Element
	listener Listener
}

func (le *listenerElement) Unwrap() query.Element { return le.Element }

func (le *listenerElement) Click() error {
	le.listener.BeforeInteract(le.Element, ActionClick)
	return le.Element.Click()
}

func (le *listenerElement) SendInput(text string) error {
	le.listener.BeforeInteract(le.Element, ActionSendInput)
	return le.Element.SendInput(text)
}

func (le *listenerElement) Clear() error {
	le.listener.BeforeInteract(le.Element, ActionClear)
	return le.Element.Clear()
}

func (le *listenerElement) Submit() error {
	le.listener.BeforeInteract(le.Element, ActionSubmit)
	return le.Element.Submit()
}

// multiplex collects the interaction listeners supplied by decs, in
// chain order. Returns nil when no decorator supplies one.
func multiplex(decs []Decorator) Listener {
	var listeners []Listener
	var names []string
	for _, d := range decs {
		if s, ok := d.(ListenerSupplier); ok {
			if l := s.InteractionListener(); l != nil {
				listeners = append(listeners, l)
				names = append(names, d.Name())
			}
		}
	}
	if len(listeners) == 0 {
		return nil
	}
	return &fanoutListener{listeners: listeners, names: names}
}

// fanoutListener dispatches to every listener in order, swallowing a
// panic from any single listener so one faulty decorator cannot break
// the others.
type fanoutListener struct {
	listeners []Listener
	names     []string
}

func (f *fanoutListener) BeforeInteract(el query.Element, action Action) {
	for i, l := range f.listeners {
		f.dispatch(i, l, el, action)
	}
}

func (f *fanoutListener) dispatch(i int, l Listener, el query.Element, action Action) {
	defer func() {
		if r := recover(); r != nil {
			chainLogger().Warnf("listener %q panicked during %s: %v", f.names[i], action, r)
		}
	}()
	l.BeforeInteract(el, action)
}
