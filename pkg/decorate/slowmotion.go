package decorate

import (
	"fmt"
	"time"

	"github.com/entrhq/lookout/pkg/query"
)

// DefaultSlowMotionDelay is used when no delay is configured.
const DefaultSlowMotionDelay = 500 * time.Millisecond

// SlowMotion inserts a fixed delay after every query and before every
// interaction, making automation visually inspectable.
type SlowMotion struct {
	delay time.Duration
}

// NewSlowMotion builds the slow-motion decorator. A zero delay selects
// DefaultSlowMotionDelay; a negative delay is a configuration error.
func NewSlowMotion(delay time.Duration) (*SlowMotion, error) {
	if delay < 0 {
		return nil, &query.ConfigurationError{Reason: fmt.Sprintf("slow-motion delay must not be negative, got %v", delay)}
	}
	if delay == 0 {
		delay = DefaultSlowMotionDelay
	}
	return &SlowMotion{delay: delay}, nil
}

// Name implements Decorator.
func (d *SlowMotion) Name() string { return "slow-motion" }

// DecorateSurface wraps the query operations with a trailing delay.
func (d *SlowMotion) DecorateSurface(s query.Surface) query.Surface {
	return &slowSurface{inner: s, delay: d.delay}
}

// DecorateElement returns e unchanged; interaction delays come from the
// listener.
func (d *SlowMotion) DecorateElement(e query.Element) query.Element { return e }

// InteractionListener implements ListenerSupplier: delay before every
// interaction.
func (d *SlowMotion) InteractionListener() Listener {
	delay := d.delay
	return ListenerFunc(func(query.Element, Action) {
		time.Sleep(delay)
	})
}

type slowSurface struct {
	inner query.Surface
	delay time.Duration
}

func (ss *slowSurface) FindOne(sel query.Selector) (query.Element, error) {
	el, err := ss.inner.FindOne(sel)
	time.Sleep(ss.delay)
	return el, err
}

func (ss *slowSurface) FindMany(sel query.Selector) ([]query.Element, error) {
	els, err := ss.inner.FindMany(sel)
	time.Sleep(ss.delay)
	return els, err
}
