package decorate

import (
	"fmt"
	"sync"

	"github.com/entrhq/lookout/pkg/logging"
	"github.com/entrhq/lookout/pkg/query"
)

// Highlight defaults.
const (
	DefaultHighlightColor = "red"
	DefaultHighlightWidth = 2
)

// Highlight visually marks the element most recently resolved or
// interacted with, by setting an outline style through the driver's
// script capability. At most one element carries the marker at a time;
// the previous element is unmarked first.
//
// Drivers without script support (and stale elements) are skipped
// silently; highlighting is best-effort by nature.
type Highlight struct {
	color string
	width int

	mu   sync.Mutex
	prev query.Element

	log *logging.Logger
}

// HighlightOption configures a Highlight decorator.
type HighlightOption func(*Highlight) error

// HighlightWithColor sets the outline color.
func HighlightWithColor(color string) HighlightOption {
	return func(d *Highlight) error {
		if color == "" {
			return &query.ConfigurationError{Reason: "highlight color must not be blank"}
		}
		d.color = color
		return nil
	}
}

// HighlightWithWidth sets the outline width in pixels.
func HighlightWithWidth(px int) HighlightOption {
	return func(d *Highlight) error {
		if px <= 0 {
			return &query.ConfigurationError{Reason: fmt.Sprintf("highlight width must be positive, got %d", px)}
		}
		d.width = px
		return nil
	}
}

// NewHighlight builds the highlight decorator.
func NewHighlight(opts ...HighlightOption) (*Highlight, error) {
	d := &Highlight{
		color: DefaultHighlightColor,
		width: DefaultHighlightWidth,
	}
	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, err
		}
	}
	d.log, _ = logging.New("decorate.highlight")
	return d, nil
}

// Name implements Decorator.
func (d *Highlight) Name() string { return "highlight" }

// DecorateSurface returns s unchanged; highlighting happens per element.
func (d *Highlight) DecorateSurface(s query.Surface) query.Surface { return s }

// DecorateElement moves the highlight marker to the freshly resolved
// element and returns it unchanged.
func (d *Highlight) DecorateElement(e query.Element) query.Element {
	d.mark(e)
	return e
}

// InteractionListener implements ListenerSupplier: the marker follows
// interactions too.
func (d *Highlight) InteractionListener() Listener {
	return ListenerFunc(func(el query.Element, _ Action) {
		d.mark(el)
	})
}

// mark moves the single highlight marker to el.
func (d *Highlight) mark(el query.Element) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.prev != nil {
		d.eval(d.prev, "el => el.style.outline = ''")
	}
	d.prev = el
	d.eval(el, fmt.Sprintf("el => el.style.outline = '%dpx solid %s'", d.width, d.color))
}

// eval runs script against el through the optional Scripter capability.
// Failures (no capability, stale element) are logged and ignored.
func (d *Highlight) eval(el query.Element, script string) {
	s, ok := query.ScripterFor(el)
	if !ok {
		return
	}
	if _, err := s.Eval(script); err != nil {
		d.log.Debugf("highlight script failed: %v", err)
	}
}
