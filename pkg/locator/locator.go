package locator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/entrhq/lookout/pkg/decorate"
	"github.com/entrhq/lookout/pkg/query"
	"github.com/entrhq/lookout/pkg/session"
	"github.com/entrhq/lookout/pkg/wait"
)

// Single is a lazily evaluated accessor for one element. Declare it once
// with New; every Get() resolves it against the current page state,
// waiting for readiness and healing stale cached handles on its own.
//
// The cached value is owned exclusively by the descriptor instance and
// must not be shared across execution units.
type Single struct {
	name   string
	sel    query.Selector
	sess   *session.Session
	parent query.Surface // overrides the session root when set

	cacheLookup bool
	policy      wait.Policy
	hasPolicy   bool
	ready       Readiness

	cached query.Element
}

// Option configures a descriptor at declaration time.
type Option func(*options)

type options struct {
	cacheLookup     bool
	policy          wait.Policy
	hasPolicy       bool
	ready           Readiness
	collectionReady CollectionReadiness
	parent          query.Surface
}

// WithCache enables per-descriptor result caching. The cached handle is
// reused until a stale reference is observed, at which point it is
// discarded and re-resolved transparently.
func WithCache() Option {
	return func(o *options) { o.cacheLookup = true }
}

// WithPolicy overrides the session's default wait policy.
func WithPolicy(p wait.Policy) Option {
	return func(o *options) {
		o.policy = p
		o.hasPolicy = true
	}
}

// WithReadiness overrides the default readiness predicate (Visible).
func WithReadiness(r Readiness) Option {
	return func(o *options) { o.ready = r }
}

// WithCollectionReadiness overrides the default collection readiness
// predicate (AllVisible). Only meaningful for NewCollection.
func WithCollectionReadiness(r CollectionReadiness) Option {
	return func(o *options) { o.collectionReady = r }
}

// Within resolves the descriptor against parent instead of the session
// root. The parent is typically an element obtained from another
// descriptor.
func Within(parent query.Surface) Option {
	return func(o *options) { o.parent = parent }
}

// New declares a single-element accessor. The name is used purely for
// diagnostics (timeout messages, String()); pick the identifier a test
// reader would search for. A blank selector is rejected here, never at
// Get() time.
func New(sess *session.Session, name string, sel query.Selector, opts ...Option) (*Single, error) {
	if sess == nil {
		return nil, &query.ConfigurationError{Reason: "locator requires a session"}
	}
	if err := sel.Validate(); err != nil {
		return nil, err
	}

	o := applyOptions(opts)
	l := &Single{
		name:        name,
		sel:         sel,
		sess:        sess,
		parent:      o.parent,
		cacheLookup: o.cacheLookup,
		policy:      o.policy,
		hasPolicy:   o.hasPolicy,
		ready:       o.ready,
	}
	if l.ready == nil {
		l.ready = Visible
	}
	return l, nil
}

func applyOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Get resolves the element. Each call rebuilds the decorated surface
// from the currently active decorators, then polls until the readiness
// predicate holds or the wait policy times out.
func (l *Single) Get() (query.Element, error) {
	surface := l.resolutionContext()
	policy := l.effectivePolicy()

	op := func() (query.Element, error) {
		if l.cacheLookup && l.cached != nil {
			return l.cached, nil
		}
		el, err := surface.FindOne(l.sel)
		if err != nil {
			if query.IsStale(err) {
				l.cached = nil
			}
			return nil, err
		}
		if l.cacheLookup {
			l.cached = el
		}
		return el, nil
	}

	ready := func(el query.Element) wait.Outcome {
		ok, err := l.ready(el)
		if err != nil {
			kind := query.KindOf(err)
			if kind == query.KindStale {
				// The handle died under us: drop the cache and let the
				// next attempt re-resolve.
				l.cached = nil
				return wait.Invalidated(err)
			}
			if policy.Tolerates(kind) {
				return wait.NotReady(err)
			}
			return wait.Fatal(err)
		}
		if !ok {
			return wait.NotReady(nil)
		}
		return wait.Ready()
	}

	el, err := wait.Poll(op, ready, policy)
	if err != nil {
		return nil, l.describeFailure(err)
	}
	return el, nil
}

// InvalidateCache drops the cached handle, forcing the next Get to
// perform a fresh query. Rarely needed; staleness is detected
// automatically.
func (l *Single) InvalidateCache() {
	l.cached = nil
}

// Selector returns the descriptor's selector.
func (l *Single) Selector() query.Selector { return l.sel }

// Name returns the diagnostic accessor name.
func (l *Single) Name() string { return l.name }

// String renders the full diagnostic representation: accessor name,
// selector and strategy, cache policy, resolved wait parameters, and the
// currently active decorator names.
func (l *Single) String() string {
	policy := l.effectivePolicy()
	decs := decorate.Names(l.sess.EffectiveDecorators())
	return fmt.Sprintf("%s[%s] cache=%t wait=%v/%v decorators=[%s]",
		l.name, l.sel, l.cacheLookup,
		policy.EffectiveTimeout(), policy.EffectiveInterval(),
		strings.Join(decs, " "))
}

// resolutionContext assembles the effective query surface for one Get:
// active decorators win over ambient ones, and the chain is applied
// fresh each call since decorator state may be test-scoped.
func (l *Single) resolutionContext() query.Surface {
	chain := decorate.NewChain(l.sess.EffectiveDecorators()...)
	root := l.parent
	if root == nil {
		root = l.sess.Root
	}
	return chain.Apply(root)
}

func (l *Single) effectivePolicy() wait.Policy {
	policy := l.sess.DefaultPolicy()
	if l.hasPolicy {
		policy = l.policy
	}
	if policy.Message == "" {
		policy.Message = fmt.Sprintf("element %q (%s) was not ready", l.name, l.sel)
	}
	return policy
}

// describeFailure attaches the selector and accessor context to a
// timeout so the failure message alone answers which lookup failed and
// for how long it waited.
func (l *Single) describeFailure(err error) error {
	var to *query.TimeoutError
	if errors.As(err, &to) {
		to.Selector = l.sel
		return to
	}
	return fmt.Errorf("resolving %s: %w", l.name, err)
}
