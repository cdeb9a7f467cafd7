package wait

import (
	"sync"
	"time"

	"github.com/entrhq/lookout/pkg/logging"
	"github.com/entrhq/lookout/pkg/query"
)

var (
	pollLogOnce sync.Once
	pollLog     *logging.Logger
)

func pollLogger() *logging.Logger {
	pollLogOnce.Do(func() {
		pollLog, _ = logging.New("wait")
	})
	return pollLog
}

// Poll repeatedly invokes op and judges the result with ready until the
// result is usable, the policy's timeout elapses, or an intolerable
// failure occurs.
//
// A failure from op whose kind the policy tolerates counts as "not yet
// ready" and the loop sleeps for the poll interval before trying again.
// Any other failure from op propagates immediately. A VerdictFatal
// outcome from ready likewise propagates immediately.
//
// On timeout Poll returns a *query.TimeoutError carrying the policy
// message, the elapsed wait, the attempt count, and the last tolerated
// failure as the cause chain. Poll never returns a timeout before the
// policy's timeout has elapsed, and at most one interval after it.
func Poll[T any](op func() (T, error), ready func(T) Outcome, p Policy) (T, error) {
	var (
		zero     T
		lastErr  error
		attempts int
	)

	timeout := p.EffectiveTimeout()
	interval := p.EffectiveInterval()
	start := time.Now()
	log := pollLogger()

	for {
		attempts++

		value, err := op()
		if err != nil {
			kind := query.KindOf(err)
			if !p.Tolerates(kind) {
				log.Debugf("poll attempt %d failed fatally (%s): %v", attempts, kind, err)
				return zero, err
			}
			lastErr = err
			log.Tracef("poll attempt %d tolerated %s failure: %v", attempts, kind, err)
		} else {
			outcome := ready(value)
			switch outcome.Verdict {
			case VerdictReady:
				log.Tracef("poll ready after %d attempts in %v", attempts, time.Since(start))
				return value, nil
			case VerdictFatal:
				log.Debugf("poll attempt %d readiness fatal: %v", attempts, outcome.Cause)
				return zero, outcome.Cause
			case VerdictNotReady, VerdictInvalidated:
				if outcome.Cause != nil {
					lastErr = outcome.Cause
				}
				log.Tracef("poll attempt %d %s", attempts, outcome.Verdict)
			}
		}

		if time.Since(start) >= timeout {
			waited := time.Since(start)
			log.Debugf("poll timed out after %v (%d attempts)", waited, attempts)
			return zero, &query.TimeoutError{
				Message:  p.Message,
				Waited:   waited,
				Attempts: attempts,
				Cause:    lastErr,
			}
		}

		time.Sleep(interval)
	}
}
