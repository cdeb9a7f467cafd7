package decorate

import "sync"

// Registry holds the decorators currently active for one logical
// execution unit (one test, one session). Scopes installed with With
// replace the active list outright rather than appending to it, and are
// restored on every exit path.
//
// A Registry is never shared between execution units; each session owns
// its own. The mutex only guards against a misbehaving caller touching
// one session from two goroutines.
type Registry struct {
	mu     sync.Mutex
	active []Decorator
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Active returns a copy of the currently active decorators.
func (r *Registry) Active() []Decorator {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Decorator, len(r.active))
	copy(out, r.active)
	return out
}

// With installs decs as the active set for the duration of fn, restoring
// exactly the prior state afterwards, including when fn returns an
// error or panics. Nested calls replace, not merge.
func (r *Registry) With(decs []Decorator, fn func() error) error {
	r.mu.Lock()
	prev := r.active
	installed := make([]Decorator, len(decs))
	copy(installed, decs)
	r.active = installed
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		r.active = prev
		r.mu.Unlock()
	}()

	return fn()
}

// Effective resolves the decorator list for a resolution context: the
// active scoped decorators when any are installed, otherwise the ambient
// (session-level) ones. Active decorators replace ambient ones outright.
func (r *Registry) Effective(ambient []Decorator) []Decorator {
	if active := r.Active(); len(active) > 0 {
		return active
	}
	out := make([]Decorator, len(ambient))
	copy(out, ambient)
	return out
}
