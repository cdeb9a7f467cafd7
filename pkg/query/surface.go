package query

// Surface is anything capable of finding elements by a selector: the
// driver-level root, or any previously found element (nested lookups).
type Surface interface {
	// FindOne resolves a single element. A selector matching nothing
	// returns a NotFoundError; matching more than one element returns
	// the first in document order.
	FindOne(sel Selector) (Element, error)

	// FindMany resolves all matches in document order. An empty result
	// is valid and is not an error.
	FindMany(sel Selector) ([]Element, error)
}

// Element is a handle to one located element. Elements are surfaces
// themselves, so nested queries stay inside the decorated chain.
//
// Any method may return a StaleError once the underlying page has
// mutated and the handle no longer refers to a live element.
type Element interface {
	Surface

	IsVisible() (bool, error)
	IsEnabled() (bool, error)
	IsSelected() (bool, error)
	Attribute(name string) (string, error)
	Text() (string, error)
	TagName() (string, error)

	Click() error
	SendInput(text string) error
	Clear() error
	Submit() error
}

// Scripter is an optional capability for surfaces and elements that can
// evaluate script against the live page. Decorators that mutate the page
// (highlighting) probe for it with ScripterFor and degrade gracefully
// when the driver does not support it.
type Scripter interface {
	Eval(script string, args ...any) (any, error)
}

// Unwrapper is implemented by element wrappers so capability probes can
// reach the underlying driver handle.
type Unwrapper interface {
	Unwrap() Element
}

// ScripterFor walks the wrapper chain of e looking for script support.
func ScripterFor(e Element) (Scripter, bool) {
	for e != nil {
		if s, ok := e.(Scripter); ok {
			return s, true
		}
		u, ok := e.(Unwrapper)
		if !ok {
			return nil, false
		}
		e = u.Unwrap()
	}
	return nil, false
}
