package decorate

import (
	"time"

	"github.com/gobwas/glob"

	"github.com/entrhq/lookout/pkg/logging"
	"github.com/entrhq/lookout/pkg/query"
)

// Logging emits trace-level records for every query going through the
// chain and for every before-interact callback. Reading diagnostic
// attributes off an element tolerates failures, so a stale element mid-log
// cannot abort the chain.
type Logging struct {
	log    *logging.Logger
	filter glob.Glob
}

// LoggingOption configures a Logging decorator.
type LoggingOption func(*Logging) error

// LoggingWithLogger directs trace records to the given logger. Tests use
// this with logging.NewWithWriter to capture output.
func LoggingWithLogger(l *logging.Logger) LoggingOption {
	return func(d *Logging) error {
		d.log = l
		return nil
	}
}

// LoggingWithSelectorFilter limits query records to selectors whose
// diagnostic form (e.g. "css=.btn") matches the glob pattern.
// Interaction records are not filtered.
func LoggingWithSelectorFilter(pattern string) LoggingOption {
	return func(d *Logging) error {
		g, err := glob.Compile(pattern)
		if err != nil {
			return &query.ConfigurationError{Reason: "invalid selector filter pattern " + pattern + ": " + err.Error()}
		}
		d.filter = g
		return nil
	}
}

// NewLogging builds the logging decorator.
func NewLogging(opts ...LoggingOption) (*Logging, error) {
	d := &Logging{}
	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, err
		}
	}
	if d.log == nil {
		d.log, _ = logging.New("decorate.logging")
	}
	return d, nil
}

// Name implements Decorator.
func (d *Logging) Name() string { return "logging" }

// DecorateSurface wraps the query operations with trace records.
func (d *Logging) DecorateSurface(s query.Surface) query.Surface {
	return &loggingSurface{inner: s, d: d}
}

// DecorateElement returns e unchanged; element activity is covered by
// the nested-query surface wrapping and the interaction listener.
func (d *Logging) DecorateElement(e query.Element) query.Element { return e }

// InteractionListener implements ListenerSupplier.
func (d *Logging) InteractionListener() Listener {
	return ListenerFunc(func(el query.Element, action Action) {
		d.log.Tracef("before %s on %s", action, describeElement(el))
	})
}

func (d *Logging) matches(sel query.Selector) bool {
	return d.filter == nil || d.filter.Match(sel.String())
}

type loggingSurface struct {
	inner query.Surface
	d     *Logging
}

func (ls *loggingSurface) FindOne(sel query.Selector) (query.Element, error) {
	start := time.Now()
	el, err := ls.inner.FindOne(sel)
	if ls.d.matches(sel) {
		if err != nil {
			ls.d.log.Tracef("find one %s failed in %v: %v", sel, time.Since(start), err)
		} else {
			ls.d.log.Tracef("find one %s resolved %s in %v", sel, describeElement(el), time.Since(start))
		}
	}
	return el, err
}

func (ls *loggingSurface) FindMany(sel query.Selector) ([]query.Element, error) {
	start := time.Now()
	els, err := ls.inner.FindMany(sel)
	if ls.d.matches(sel) {
		if err != nil {
			ls.d.log.Tracef("find many %s failed in %v: %v", sel, time.Since(start), err)
		} else {
			ls.d.log.Tracef("find many %s resolved %d elements in %v", sel, len(els), time.Since(start))
		}
	}
	return els, err
}

// describeElement renders a short diagnostic for an element, tolerating
// read failures: a stale handle describes itself instead of erroring.
func describeElement(el query.Element) (desc string) {
	defer func() {
		if recover() != nil {
			desc = "<element: unavailable>"
		}
	}()
	tag, err := el.TagName()
	if err != nil {
		return "<element: " + err.Error() + ">"
	}
	text, err := el.Text()
	if err != nil || text == "" {
		return "<" + tag + ">"
	}
	if len(text) > 40 {
		text = text[:40] + "..."
	}
	return "<" + tag + "> " + text
}
