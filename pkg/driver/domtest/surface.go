package domtest

import (
	"fmt"
	"strings"
	"sync"

	"golang.org/x/net/html"

	"github.com/entrhq/lookout/pkg/query"
)

// Surface is the in-memory driver root. Safe for use from a single test
// goroutine plus the engine; the mutex keeps the recorded logs coherent.
type Surface struct {
	mu           sync.Mutex
	doc          *html.Node
	gen          int
	queryCount   int
	queries      []query.Selector
	interactions []string
	evals        []string
	onQuery      func(n int)
}

// New parses src and returns a surface over it.
func New(src string) (*Surface, error) {
	doc, err := html.Parse(strings.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}
	return &Surface{doc: doc, gen: 1}, nil
}

// MustNew is New for test fixtures with known-good markup.
func MustNew(src string) *Surface {
	s, err := New(src)
	if err != nil {
		panic(err)
	}
	return s
}

// SetHTML replaces the document, simulating a page mutation. Every
// element handle resolved before the call becomes stale.
func (s *Surface) SetHTML(src string) error {
	doc, err := html.Parse(strings.NewReader(src))
	if err != nil {
		return fmt.Errorf("parsing document: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = doc
	s.gen++
	return nil
}

// OnQuery installs a hook invoked with the 1-based query count before
// each FindOne/FindMany runs. Tests use it to mutate the page at a
// precise point in a wait loop. The hook runs outside the surface lock,
// so it may call SetHTML.
func (s *Surface) OnQuery(fn func(n int)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onQuery = fn
}

// Queries returns every selector queried so far, in order.
func (s *Surface) Queries() []query.Selector {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]query.Selector, len(s.queries))
	copy(out, s.queries)
	return out
}

// QueryCount returns the number of queries run so far.
func (s *Surface) QueryCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queryCount
}

// Interactions returns the recorded interactions ("click <button>", ...).
func (s *Surface) Interactions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.interactions))
	copy(out, s.interactions)
	return out
}

// Evals returns the scripts recorded through the Scripter capability.
func (s *Surface) Evals() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.evals))
	copy(out, s.evals)
	return out
}

// FindOne implements query.Surface over the whole document.
func (s *Surface) FindOne(sel query.Selector) (query.Element, error) {
	return s.findOne(nil, sel)
}

// FindMany implements query.Surface over the whole document.
func (s *Surface) FindMany(sel query.Selector) ([]query.Element, error) {
	return s.findMany(nil, sel)
}

// findOne resolves within scope (nil means the document root).
func (s *Surface) findOne(scope *html.Node, sel query.Selector) (query.Element, error) {
	els, err := s.findMany(scope, sel)
	if err != nil {
		return nil, err
	}
	if len(els) == 0 {
		return nil, &query.NotFoundError{Selector: sel}
	}
	return els[0], nil
}

func (s *Surface) findMany(scope *html.Node, sel query.Selector) ([]query.Element, error) {
	if err := sel.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.queryCount++
	n := s.queryCount
	hook := s.onQuery
	s.mu.Unlock()
	if hook != nil {
		hook(n)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.queries = append(s.queries, sel)

	root := scope
	if root == nil {
		root = s.doc
	}

	var out []query.Element
	walk(root, root, func(node *html.Node) {
		if matches(node, sel) {
			out = append(out, &element{s: s, node: node, gen: s.gen})
		}
	})
	return out, nil
}

func (s *Surface) generation() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}

func (s *Surface) recordInteraction(desc string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.interactions = append(s.interactions, desc)
}

func (s *Surface) recordEval(script string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evals = append(s.evals, script)
}

// walk visits element nodes under root in document order, excluding the
// scope node itself so nested queries search descendants only.
func walk(root, scope *html.Node, visit func(*html.Node)) {
	if root.Type == html.ElementNode && root != scope {
		visit(root)
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		walk(c, scope, visit)
	}
}
