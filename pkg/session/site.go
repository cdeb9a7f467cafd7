package session

import (
	"github.com/entrhq/lookout/pkg/decorate"
	"github.com/entrhq/lookout/pkg/wait"
)

// Site is the ambient configuration shared by every descriptor bound to
// a session: where the application lives, how long lookups wait by
// default, and which decorators are active when no test-scoped ones are
// installed.
type Site struct {
	// BaseURL is the application under test. Informational for the
	// engine itself; the demo binary uses it to navigate.
	BaseURL string

	// Policy supplies wait defaults for descriptors that do not carry
	// their own. The zero value means library defaults (10s / 200ms).
	Policy wait.Policy

	// Decorators is the ambient decorator set, used whenever the
	// session's registry has no scoped decorators installed.
	Decorators []decorate.Decorator
}
