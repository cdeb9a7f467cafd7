package decorate

import (
	"github.com/entrhq/lookout/pkg/query"
)

// Decorator is a named transformation applied to a query surface and to
// every element the surface yields. Implementations must be stateless
// with respect to the chain; any internal state (a highlight marker, a
// per-element cache) is decorator-private.
type Decorator interface {
	// Name identifies the decorator in diagnostics and configuration.
	Name() string

	// DecorateSurface wraps the surface's query operations. Return s
	// unchanged when the decorator has no query-side behavior.
	DecorateSurface(s query.Surface) query.Surface

	// DecorateElement wraps (or observes) a resolved element. Return e
	// unchanged when the decorator has no element-side behavior.
	DecorateElement(e query.Element) query.Element
}

// Action identifies the interaction about to happen when a
// before-interact callback fires.
type Action string

const (
	ActionClick     Action = "click"
	ActionSendInput Action = "send-input"
	ActionClear     Action = "clear"
	ActionSubmit    Action = "submit"
)

// Listener receives before-interact callbacks for elements resolved
// through a decorated root surface.
type Listener interface {
	BeforeInteract(el query.Element, action Action)
}

// ListenerSupplier is implemented by decorators that want before-interact
// callbacks in addition to their surface/element wrapping.
type ListenerSupplier interface {
	InteractionListener() Listener
}

// ListenerFunc adapts a function to the Listener interface.
type ListenerFunc func(el query.Element, action Action)

// BeforeInteract calls f.
func (f ListenerFunc) BeforeInteract(el query.Element, action Action) { f(el, action) }

// Names returns the decorator names in chain order, for diagnostics.
func Names(decs []Decorator) []string {
	names := make([]string, len(decs))
	for i, d := range decs {
		names[i] = d.Name()
	}
	return names
}
