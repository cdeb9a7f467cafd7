// Package session binds one logical test execution unit to one query
// surface root and one site configuration. All ambient state (the
// default wait policy, the ambient decorator set, the scoped decorator
// registry) hangs off the Session instance instead of globals, so
// parallel tests stay isolated by giving each its own session.
package session
