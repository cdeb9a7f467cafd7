package wait

// Verdict is the readiness judgment for one poll attempt.
type Verdict int

const (
	// VerdictReady means the resolved value is usable; Poll returns it.
	VerdictReady Verdict = iota
	// VerdictNotReady means the value exists but does not satisfy the
	// readiness predicate yet; Poll sleeps and retries.
	VerdictNotReady
	// VerdictInvalidated means the value turned out to be stale and any
	// cache has been cleared; Poll retries so the next attempt
	// re-resolves from scratch.
	VerdictInvalidated
	// VerdictFatal aborts the wait; the outcome's Cause propagates.
	VerdictFatal
)

// String returns the verdict's diagnostic name.
func (v Verdict) String() string {
	switch v {
	case VerdictReady:
		return "ready"
	case VerdictNotReady:
		return "not-ready"
	case VerdictInvalidated:
		return "invalidated"
	case VerdictFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Outcome is the result of evaluating readiness against a resolved value.
type Outcome struct {
	Verdict Verdict

	// Cause optionally records the failure behind a non-ready verdict.
	// For VerdictFatal it is the error to propagate; for NotReady and
	// Invalidated it feeds the eventual timeout diagnostic.
	Cause error
}

// Ready reports the value as usable.
func Ready() Outcome { return Outcome{Verdict: VerdictReady} }

// NotReady reports the value as not yet usable. cause may be nil.
func NotReady(cause error) Outcome {
	return Outcome{Verdict: VerdictNotReady, Cause: cause}
}

// Invalidated reports that a cached value was discarded mid-check.
func Invalidated(cause error) Outcome {
	return Outcome{Verdict: VerdictInvalidated, Cause: cause}
}

// Fatal aborts the wait with err.
func Fatal(err error) Outcome {
	return Outcome{Verdict: VerdictFatal, Cause: err}
}
