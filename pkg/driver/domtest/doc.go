// Package domtest is an in-memory query surface over a parsed HTML
// document, built for exercising the resolution engine without a real
// browser. It supports every selector strategy (CSS limited to a simple
// tag/#id/.class/[attr] subset), records every query and interaction for
// assertions, and models page mutation: SetHTML replaces the document
// and invalidates all outstanding element handles, which then fail with
// stale-reference errors exactly like a live page that re-rendered.
package domtest
