package wait

import (
	"time"

	"github.com/entrhq/lookout/pkg/query"
)

// Defaults applied when a policy leaves the corresponding field unset.
const (
	DefaultTimeout  = 10 * time.Second
	DefaultInterval = 200 * time.Millisecond
)

// Policy is the declarative configuration for one wait loop. The zero
// value is usable and means: default timeout and interval, no custom
// message, tolerate not-found and stale-reference failures.
//
// Policies are values; option constructors return modified copies, so a
// policy never changes once handed to a descriptor.
type Policy struct {
	// Timeout bounds the whole wait. Zero means DefaultTimeout.
	Timeout time.Duration

	// Interval is the sleep between attempts. Zero means DefaultInterval.
	Interval time.Duration

	// Message is included in the timeout diagnostic. Empty means a
	// generic default.
	Message string

	// Tolerated lists the failure kinds that count as "not yet ready"
	// instead of aborting the wait. Nil means the default set
	// {not-found, stale-reference}.
	Tolerated []query.Kind
}

// Option mutates a policy copy during construction.
type Option func(*Policy)

// NewPolicy builds a policy from options on top of the zero value.
func NewPolicy(opts ...Option) Policy {
	var p Policy
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// WithTimeout sets the overall wait timeout.
func WithTimeout(d time.Duration) Option {
	return func(p *Policy) { p.Timeout = d }
}

// WithInterval sets the sleep between attempts.
func WithInterval(d time.Duration) Option {
	return func(p *Policy) { p.Interval = d }
}

// WithMessage sets the diagnostic message carried by a timeout failure.
func WithMessage(msg string) Option {
	return func(p *Policy) { p.Message = msg }
}

// Tolerating replaces the set of failure kinds treated as retryable.
func Tolerating(kinds ...query.Kind) Option {
	return func(p *Policy) { p.Tolerated = kinds }
}

// EffectiveTimeout returns the timeout with the default applied.
func (p Policy) EffectiveTimeout() time.Duration {
	if p.Timeout <= 0 {
		return DefaultTimeout
	}
	return p.Timeout
}

// EffectiveInterval returns the poll interval with the default applied.
func (p Policy) EffectiveInterval() time.Duration {
	if p.Interval <= 0 {
		return DefaultInterval
	}
	return p.Interval
}

// Tolerates reports whether a failure of kind k should be retried.
func (p Policy) Tolerates(k query.Kind) bool {
	if p.Tolerated == nil {
		return k == query.KindNotFound || k == query.KindStale
	}
	for _, t := range p.Tolerated {
		if t == k {
			return true
		}
	}
	return false
}
