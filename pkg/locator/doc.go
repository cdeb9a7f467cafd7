// Package locator provides lazily evaluated, self-healing element
// accessors. A descriptor is declared once, with its selector, wait
// policy, readiness predicate, and cache policy; every Get() call then
// resolves it fresh: the session's decorator chain is applied to the
// root surface, the wait loop polls until the readiness predicate holds, and stale
// cached handles are transparently discarded and re-resolved.
//
//	submit, err := locator.New(sess, "submitButton", query.ID("submit"),
//	    locator.WithCache())
//	...
//	el, err := submit.Get() // waits, self-heals, honors active decorators
package locator
