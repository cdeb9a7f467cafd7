package locator

import "github.com/entrhq/lookout/pkg/query"

// Readiness is a pure predicate a resolved element must satisfy before
// a descriptor hands it to the caller.
type Readiness func(query.Element) (bool, error)

// CollectionReadiness is the multi-result counterpart.
type CollectionReadiness func([]query.Element) (bool, error)

// Visible is the default single-element readiness: the element is
// currently displayed.
func Visible(el query.Element) (bool, error) {
	return el.IsVisible()
}

// Clickable requires the element to be visible and enabled.
func Clickable(el query.Element) (bool, error) {
	visible, err := el.IsVisible()
	if err != nil || !visible {
		return false, err
	}
	return el.IsEnabled()
}

// Attached accepts any resolved element without further checks.
func Attached(query.Element) (bool, error) {
	return true, nil
}

// AllVisible is the default collection readiness: at least one match,
// and every match displayed.
func AllVisible(els []query.Element) (bool, error) {
	if len(els) == 0 {
		return false, nil
	}
	for _, el := range els {
		visible, err := el.IsVisible()
		if err != nil || !visible {
			return false, err
		}
	}
	return true, nil
}

// NonEmpty requires at least one match, visible or not.
func NonEmpty(els []query.Element) (bool, error) {
	return len(els) > 0, nil
}

// AtLeast requires a minimum number of matches.
func AtLeast(n int) CollectionReadiness {
	return func(els []query.Element) (bool, error) {
		return len(els) >= n, nil
	}
}
