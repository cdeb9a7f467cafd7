// Package decorate layers cross-cutting behaviors onto a query surface
// without the test code being aware of them. A Decorator wraps the
// surface's query operations and every element it yields; a Chain folds
// an ordered list of decorators into a single Surface transformation
// that survives nested lookups at any depth.
//
// Decorators earlier in the chain wrap later ones: with
// [statecache, logging] a positive state read served from the cache
// never reaches the logging decorator, so cache hits are not logged as
// fresh lookups.
//
// Decorators that also implement ListenerSupplier receive before-interact
// callbacks (click, send-input, clear, submit). When the chain is applied
// to the driver-level root, the callbacks from all supplying decorators
// are fanned out through a single multiplexing listener; a panic in one
// listener is swallowed so a faulty decorator cannot break the others.
//
// Built-ins: Logging (trace records per query and interaction),
// Highlight (at most one visually marked element at a time), SlowMotion
// (fixed delay to make automation watchable), and StateCache (memoizes
// positive visible/enabled/selected reads per element instance).
package decorate
