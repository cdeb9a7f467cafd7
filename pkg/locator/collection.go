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

// Collection is the multi-result twin of Single: a lazily evaluated
// accessor for an ordered list of matches. Order is the underlying query
// order, duplicates are preserved, and an empty result is a valid
// resolution (readiness decides whether it is acceptable).
//
// Staleness of any single member invalidates the entire cached slice;
// there is no per-member invalidation.
type Collection struct {
	name   string
	sel    query.Selector
	sess   *session.Session
	parent query.Surface

	cacheLookup bool
	policy      wait.Policy
	hasPolicy   bool
	ready       CollectionReadiness

	cached []query.Element
}

// NewCollection declares a multi-element accessor. Accepts the same
// options as New; use WithCollectionReadiness to override the default
// AllVisible predicate.
func NewCollection(sess *session.Session, name string, sel query.Selector, opts ...Option) (*Collection, error) {
	if sess == nil {
		return nil, &query.ConfigurationError{Reason: "locator requires a session"}
	}
	if err := sel.Validate(); err != nil {
		return nil, err
	}

	o := applyOptions(opts)
	l := &Collection{
		name:        name,
		sel:         sel,
		sess:        sess,
		parent:      o.parent,
		cacheLookup: o.cacheLookup,
		policy:      o.policy,
		hasPolicy:   o.hasPolicy,
		ready:       o.collectionReady,
	}
	if l.ready == nil {
		l.ready = AllVisible
	}
	return l, nil
}

// Get resolves the collection, polling until the readiness predicate
// accepts it. The default predicate never returns a partially ready
// collection: either every member is visible or the call keeps waiting.
func (l *Collection) Get() ([]query.Element, error) {
	surface := l.resolutionContext()
	policy := l.effectivePolicy()

	op := func() ([]query.Element, error) {
		if l.cacheLookup && l.cached != nil {
			return l.cached, nil
		}
		els, err := surface.FindMany(l.sel)
		if err != nil {
			if query.IsStale(err) {
				l.cached = nil
			}
			return nil, err
		}
		if l.cacheLookup {
			l.cached = els
		}
		return els, nil
	}

	ready := func(els []query.Element) wait.Outcome {
		ok, err := l.ready(els)
		if err != nil {
			kind := query.KindOf(err)
			if kind == query.KindStale {
				// One dead member poisons the whole cached slice.
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

	els, err := wait.Poll(op, ready, policy)
	if err != nil {
		return nil, l.describeFailure(err)
	}
	return els, nil
}

// InvalidateCache drops the cached slice, forcing a fresh query on the
// next Get.
func (l *Collection) InvalidateCache() {
	l.cached = nil
}

// Selector returns the descriptor's selector.
func (l *Collection) Selector() query.Selector { return l.sel }

// Name returns the diagnostic accessor name.
func (l *Collection) Name() string { return l.name }

// String renders the full diagnostic representation.
func (l *Collection) String() string {
	policy := l.effectivePolicy()
	decs := decorate.Names(l.sess.EffectiveDecorators())
	return fmt.Sprintf("%s[%s][] cache=%t wait=%v/%v decorators=[%s]",
		l.name, l.sel, l.cacheLookup,
		policy.EffectiveTimeout(), policy.EffectiveInterval(),
		strings.Join(decs, " "))
}

func (l *Collection) resolutionContext() query.Surface {
	chain := decorate.NewChain(l.sess.EffectiveDecorators()...)
	root := l.parent
	if root == nil {
		root = l.sess.Root
	}
	return chain.Apply(root)
}

func (l *Collection) effectivePolicy() wait.Policy {
	policy := l.sess.DefaultPolicy()
	if l.hasPolicy {
		policy = l.policy
	}
	if policy.Message == "" {
		policy.Message = fmt.Sprintf("collection %q (%s) was not ready", l.name, l.sel)
	}
	return policy
}

func (l *Collection) describeFailure(err error) error {
	var to *query.TimeoutError
	if errors.As(err, &to) {
		to.Selector = l.sel
		return to
	}
	return fmt.Errorf("resolving %s: %w", l.name, err)
}
