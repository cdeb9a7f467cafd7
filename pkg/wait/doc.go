// Package wait implements the bounded-retry loop at the heart of every
// lazy lookup: a declarative Policy (timeout, poll interval, diagnostic
// message, tolerated failure kinds) and a generic Poll function that
// re-evaluates an operation until its result is ready, the policy times
// out, or an intolerable failure occurs.
//
// Retry-on-failure is expressed with explicit Outcome values rather than
// by catching errors mid-flight: the readiness callback reports Ready,
// NotReady, Invalidated (a cached value was discarded and the next
// attempt must re-resolve), or Fatal.
package wait
