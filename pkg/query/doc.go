// Package query defines the query surface abstraction that the rest of the
// toolkit is built on: selectors with a lookup strategy, the Surface and
// Element capability interfaces implemented by drivers, and the failure
// taxonomy (not-found, stale-reference, timeout, configuration) that the
// wait and locator layers use to decide what is retryable.
//
// The package has no driver dependencies. Concrete implementations live
// under pkg/driver; test code typically uses the in-memory driver in
// pkg/driver/domtest.
package query
