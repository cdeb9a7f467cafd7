package decorate

import (
	"sync"

	"github.com/entrhq/lookout/pkg/query"
)

// StateCache memoizes positive boolean state reads (visible, enabled,
// selected) per element instance. Negative reads are never cached: a
// false answer may flip to true a moment later, and masking that would
// defeat the wait loop. A true answer short-circuits repeated checks on
// the same handle.
type StateCache struct{}

// NewStateCache builds the state-caching decorator.
func NewStateCache() *StateCache { return &StateCache{} }

// Name implements Decorator.
func (d *StateCache) Name() string { return "state-cache" }

// DecorateSurface returns s unchanged; caching is per element.
func (d *StateCache) DecorateSurface(s query.Surface) query.Surface { return s }

// DecorateElement wraps e with a fresh positive-read cache. The cache
// lives and dies with the wrapper, so a re-resolved element starts cold.
func (d *StateCache) DecorateElement(e query.Element) query.Element {
	return &stateCacheElement{Element: e}
}

type stateCacheElement struct {
	query.Element

	mu       sync.Mutex
	visible  bool
	enabled  bool
	selected bool
}

func (e *stateCacheElement) Unwrap() query.Element { return e.Element }

func (e *stateCacheElement) IsVisible() (bool, error) {
	return e.cachedRead(&e.visible, e.Element.IsVisible)
}

func (e *stateCacheElement) IsEnabled() (bool, error) {
	return e.cachedRead(&e.enabled, e.Element.IsEnabled)
}

func (e *stateCacheElement) IsSelected() (bool, error) {
	return e.cachedRead(&e.selected, e.Element.IsSelected)
}

// cachedRead serves a previously observed true, otherwise reads through
// and records only a successful true result.
func (e *stateCacheElement) cachedRead(hit *bool, read func() (bool, error)) (bool, error) {
	e.mu.Lock()
	if *hit {
		e.mu.Unlock()
		return true, nil
	}
	e.mu.Unlock()

	v, err := read()
	if err == nil && v {
		e.mu.Lock()
		*hit = true
		e.mu.Unlock()
	}
	return v, err
}
