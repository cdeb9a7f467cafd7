package session

import (
	"github.com/google/uuid"

	"github.com/entrhq/lookout/pkg/decorate"
	"github.com/entrhq/lookout/pkg/query"
	"github.com/entrhq/lookout/pkg/wait"
)

// Session is the binding of one logical execution unit to one query
// surface root and one site. At most one session is active per execution
// unit; sessions are never shared between units, which is what makes the
// engine lock-free outside the registry.
type Session struct {
	// ID identifies the session in logs and diagnostics.
	ID string

	// Root is the driver-level query surface all descriptors resolve
	// against.
	Root query.Surface

	// Site carries the ambient configuration.
	Site *Site

	// Registry holds the scoped (test-level) decorators.
	Registry *decorate.Registry
}

// New creates a session over the given root surface. A nil site gets
// library defaults.
func New(root query.Surface, site *Site) *Session {
	if site == nil {
		site = &Site{}
	}
	return &Session{
		ID:       uuid.New().String(),
		Root:     root,
		Site:     site,
		Registry: decorate.NewRegistry(),
	}
}

// DefaultPolicy returns the site's wait policy.
func (s *Session) DefaultPolicy() wait.Policy {
	return s.Site.Policy
}

// EffectiveDecorators resolves the decorator list for the next
// resolution: scoped decorators when any are installed, else the site's
// ambient set. Scoped decorators replace the ambient ones outright.
func (s *Session) EffectiveDecorators() []decorate.Decorator {
	return s.Registry.Effective(s.Site.Decorators)
}

// WithDecorators installs decs for the duration of fn, restoring the
// prior scoped state on every exit path:
//
//	err := sess.WithDecorators(logging, highlight)(func() error {
//	    return submitButton.Get() ... // resolved with the scoped chain
//	})
func (s *Session) WithDecorators(decs ...decorate.Decorator) func(fn func() error) error {
	return func(fn func() error) error {
		return s.Registry.With(decs, fn)
	}
}
