package domtest

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/entrhq/lookout/pkg/query"
)

func attr(n *html.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

func hasClass(n *html.Node, class string) bool {
	classes, _ := attr(n, "class")
	for _, c := range strings.Fields(classes) {
		if c == class {
			return true
		}
	}
	return false
}

// innerText concatenates the text nodes under n, whitespace-collapsed.
func innerText(n *html.Node) string {
	var sb strings.Builder
	var visit func(*html.Node)
	visit = func(node *html.Node) {
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}

func matches(n *html.Node, sel query.Selector) bool {
	switch sel.Strategy {
	case query.ByID:
		id, ok := attr(n, "id")
		return ok && id == sel.Value
	case query.ByName:
		name, ok := attr(n, "name")
		return ok && name == sel.Value
	case query.ByTag:
		return n.Data == sel.Value
	case query.ByClass:
		return hasClass(n, sel.Value)
	case query.ByLinkText:
		return n.Data == "a" && innerText(n) == sel.Value
	case query.ByPartialLinkText:
		return n.Data == "a" && strings.Contains(innerText(n), sel.Value)
	case query.ByAttribute:
		name, want := sel.AttrParts()
		got, ok := attr(n, name)
		return ok && got == want
	case query.ByCSS:
		return matchesCSS(n, sel.Value)
	case query.ByXPath:
		return matchesXPath(n, sel.Value)
	default:
		return false
	}
}

// matchesCSS supports the subset the toolkit's tests need: compound
// simple selectors (tag, #id, .class, [attr=value], combined) with
// descendant combinators separated by whitespace.
func matchesCSS(n *html.Node, css string) bool {
	parts := strings.Fields(css)
	if len(parts) == 0 {
		return false
	}
	if !matchesSimple(n, parts[len(parts)-1]) {
		return false
	}
	// Remaining parts must match ancestors in order, innermost last.
	ancestor := n.Parent
	for i := len(parts) - 2; i >= 0; i-- {
		for {
			if ancestor == nil {
				return false
			}
			if ancestor.Type == html.ElementNode && matchesSimple(ancestor, parts[i]) {
				ancestor = ancestor.Parent
				break
			}
			ancestor = ancestor.Parent
		}
	}
	return true
}

// matchesSimple matches one compound simple selector like
// "input.wide[type=text]" or "#submit".
func matchesSimple(n *html.Node, simple string) bool {
	rest := simple
	tag := ""
	i := strings.IndexAny(rest, "#.[")
	if i == -1 {
		tag = rest
		rest = ""
	} else {
		tag = rest[:i]
		rest = rest[i:]
	}
	if tag != "" && tag != "*" && n.Data != tag {
		return false
	}

	for rest != "" {
		switch rest[0] {
		case '#':
			value, remaining := untilNext(rest[1:])
			id, ok := attr(n, "id")
			if !ok || id != value {
				return false
			}
			rest = remaining
		case '.':
			value, remaining := untilNext(rest[1:])
			if !hasClass(n, value) {
				return false
			}
			rest = remaining
		case '[':
			end := strings.IndexByte(rest, ']')
			if end == -1 {
				return false
			}
			expr := rest[1:end]
			rest = rest[end+1:]
			name, want, hasValue := strings.Cut(expr, "=")
			got, ok := attr(n, name)
			if !ok {
				return false
			}
			if hasValue && got != strings.Trim(want, `"'`) {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// untilNext splits a selector fragment at the next #, ., or [.
func untilNext(s string) (value, rest string) {
	i := strings.IndexAny(s, "#.[")
	if i == -1 {
		return s, ""
	}
	return s[:i], s[i:]
}

// matchesXPath supports //tag and //tag[@attr='value'].
func matchesXPath(n *html.Node, xpath string) bool {
	expr := strings.TrimPrefix(xpath, "//")
	tag, predicate, hasPredicate := strings.Cut(expr, "[")
	if tag != "*" && n.Data != tag {
		return false
	}
	if !hasPredicate {
		return true
	}
	predicate = strings.TrimSuffix(predicate, "]")
	predicate = strings.TrimPrefix(predicate, "@")
	name, want, hasValue := strings.Cut(predicate, "=")
	got, ok := attr(n, name)
	if !ok {
		return false
	}
	return !hasValue || got == strings.Trim(want, `"'`)
}
