package query

import (
	"errors"
	"fmt"
	"time"
)

// Kind categorizes a failure for retry decisions. The wait loop tolerates
// KindNotFound and KindStale by default; everything else is fatal on
// first occurrence.
type Kind int

const (
	// KindOther is any failure the toolkit does not recognize. Never retried.
	KindOther Kind = iota
	// KindNotFound means the selector matched nothing yet.
	KindNotFound
	// KindStale means a previously resolved handle was invalidated by a
	// page mutation and must be re-resolved.
	KindStale
	// KindTimeout means readiness was never achieved within the wait policy.
	KindTimeout
	// KindConfiguration is a construction-time mistake (blank selector,
	// invalid decorator parameter). Never retried.
	KindConfiguration
)

// String returns the kind's diagnostic name.
func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not-found"
	case KindStale:
		return "stale-reference"
	case KindTimeout:
		return "timeout"
	case KindConfiguration:
		return "configuration"
	default:
		return "other"
	}
}

// NotFoundError reports that a selector matched no element.
type NotFoundError struct {
	Selector Selector
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no element found for %s", e.Selector)
}

// StaleError reports that an element handle no longer refers to a live
// element because the underlying page mutated.
type StaleError struct {
	Selector Selector
	Reason   string
}

func (e *StaleError) Error() string {
	msg := fmt.Sprintf("stale element reference for %s", e.Selector)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

// TimeoutError reports that a lookup never became ready within its wait
// policy. It carries enough context to triage flaky-vs-broken without a
// re-run: what was being looked up, how long the wait lasted, how many
// attempts were made, and the last tolerated failure as the cause.
type TimeoutError struct {
	Message  string
	Selector Selector
	Waited   time.Duration
	Attempts int
	Cause    error
}

func (e *TimeoutError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "condition was not met"
	}
	s := fmt.Sprintf("timed out after %v (%d attempts): %s", e.Waited, e.Attempts, msg)
	if e.Selector != (Selector{}) {
		s += fmt.Sprintf(" [%s]", e.Selector)
	}
	if e.Cause != nil {
		s += fmt.Sprintf(": last failure: %v", e.Cause)
	}
	return s
}

func (e *TimeoutError) Unwrap() error { return e.Cause }

// ConfigurationError reports a construction-time mistake.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "invalid configuration: " + e.Reason
}

// KindOf classifies an error into the retry taxonomy, looking through
// wrapped errors.
func KindOf(err error) Kind {
	var (
		nf  *NotFoundError
		st  *StaleError
		to  *TimeoutError
		cfg *ConfigurationError
	)
	// Timeout first: a timeout wraps its last tolerated failure as the
	// cause, and must not classify as that cause.
	switch {
	case err == nil:
		return KindOther
	case errors.As(err, &to):
		return KindTimeout
	case errors.As(err, &cfg):
		return KindConfiguration
	case errors.As(err, &st):
		return KindStale
	case errors.As(err, &nf):
		return KindNotFound
	default:
		return KindOther
	}
}

// IsNotFound reports whether err classifies as a not-found failure.
func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }

// IsStale reports whether err classifies as a stale-reference failure.
func IsStale(err error) bool { return KindOf(err) == KindStale }

// IsTimeout reports whether err classifies as a wait timeout.
func IsTimeout(err error) bool { return KindOf(err) == KindTimeout }
