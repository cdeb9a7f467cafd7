package query

import (
	"fmt"
	"strings"
)

// Strategy identifies the matching algorithm used to locate elements.
type Strategy string

const (
	ByID              Strategy = "id"
	ByName            Strategy = "name"
	ByCSS             Strategy = "css"
	ByXPath           Strategy = "xpath"
	ByLinkText        Strategy = "link-text"
	ByPartialLinkText Strategy = "partial-link-text"
	ByTag             Strategy = "tag"
	ByClass           Strategy = "class"
	ByAttribute       Strategy = "attribute"
)

// Selector is an opaque lookup value paired with the strategy used to
// match it. Build selectors through the constructor functions, which
// validate eagerly; a blank value is a configuration error.
type Selector struct {
	Strategy Strategy
	Value    string
}

// ID matches the element with the given id attribute.
func ID(id string) Selector { return Selector{Strategy: ByID, Value: id} }

// Name matches elements with the given name attribute.
func Name(name string) Selector { return Selector{Strategy: ByName, Value: name} }

// CSS matches elements by CSS selector.
func CSS(css string) Selector { return Selector{Strategy: ByCSS, Value: css} }

// XPath matches elements by XPath expression.
func XPath(xpath string) Selector { return Selector{Strategy: ByXPath, Value: xpath} }

// LinkText matches anchor elements whose text equals the given string.
func LinkText(text string) Selector { return Selector{Strategy: ByLinkText, Value: text} }

// PartialLinkText matches anchor elements whose text contains the given string.
func PartialLinkText(text string) Selector {
	return Selector{Strategy: ByPartialLinkText, Value: text}
}

// Tag matches elements by tag name.
func Tag(tag string) Selector { return Selector{Strategy: ByTag, Value: tag} }

// Class matches elements carrying the given CSS class.
func Class(class string) Selector { return Selector{Strategy: ByClass, Value: class} }

// Attr matches elements whose named attribute has exactly the given value.
// The name and value are stored as a single composite expression.
func Attr(name, value string) Selector {
	return Selector{Strategy: ByAttribute, Value: name + "=" + value}
}

// AttrParts splits a ByAttribute selector back into its name and value.
// Drivers use this when translating the composite form.
func (s Selector) AttrParts() (name, value string) {
	name, value, _ = strings.Cut(s.Value, "=")
	return name, value
}

// Validate reports whether the selector is usable. A blank value, an
// unknown strategy, or a ByAttribute selector with a blank attribute name
// is a ConfigurationError.
func (s Selector) Validate() error {
	if strings.TrimSpace(s.Value) == "" {
		return &ConfigurationError{Reason: fmt.Sprintf("selector value must not be blank (strategy %q)", s.Strategy)}
	}
	switch s.Strategy {
	case ByID, ByName, ByCSS, ByXPath, ByLinkText, ByPartialLinkText, ByTag, ByClass:
		return nil
	case ByAttribute:
		name, _ := s.AttrParts()
		if strings.TrimSpace(name) == "" {
			return &ConfigurationError{Reason: "attribute selector requires a non-blank attribute name"}
		}
		return nil
	default:
		return &ConfigurationError{Reason: fmt.Sprintf("unknown selector strategy %q", s.Strategy)}
	}
}

// String renders the selector for diagnostics, e.g. "css=.submit-btn".
func (s Selector) String() string {
	return string(s.Strategy) + "=" + s.Value
}
