package locator

import (
	"strings"
	"testing"
	"time"

	"github.com/entrhq/lookout/pkg/query"
	"github.com/entrhq/lookout/pkg/wait"
)

const itemsPage = `<html><body>
	<ul id="list">
		<li class="item">one</li>
		<li class="item">two</li>
		<li class="item">three</li>
	</ul>
</body></html>`

func TestCollectionGetResolvesAllMatches(t *testing.T) {
	sess, _ := newTestSession(t, itemsPage)
	items, err := NewCollection(sess, "listItems", query.Class("item"))
	if err != nil {
		t.Fatalf("NewCollection() error = %v", err)
	}

	els, err := items.Get()
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if len(els) != 3 {
		t.Fatalf("len = %d, want 3", len(els))
	}

	// Document order is preserved.
	var texts []string
	for _, el := range els {
		text, err := el.Text()
		if err != nil {
			t.Fatal(err)
		}
		texts = append(texts, text)
	}
	if got := strings.Join(texts, ","); got != "one,two,three" {
		t.Errorf("texts = %q", got)
	}
}

func TestCollectionWaitsForExpectedCount(t *testing.T) {
	const twoItems = `<html><body>
		<li class="item">one</li>
		<li class="item">two</li>
	</body></html>`

	sess, surface := newTestSession(t, twoItems)
	surface.OnQuery(func(n int) {
		if n == 3 {
			if err := surface.SetHTML(itemsPage); err != nil {
				t.Errorf("SetHTML: %v", err)
			}
		}
	})

	items, err := NewCollection(sess, "listItems", query.Class("item"),
		WithCollectionReadiness(AtLeast(3)), WithPolicy(fastPolicy()))
	if err != nil {
		t.Fatal(err)
	}

	els, err := items.Get()
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if len(els) != 3 {
		t.Errorf("len = %d, want 3", len(els))
	}
	if got := surface.QueryCount(); got != 3 {
		t.Errorf("QueryCount() = %d, want exactly 3 underlying queries", got)
	}
}

func TestCollectionDefaultReadinessRejectsEmpty(t *testing.T) {
	sess, _ := newTestSession(t, `<html><body><p>nothing</p></body></html>`)
	items, err := NewCollection(sess, "listItems", query.Class("item"),
		WithPolicy(wait.NewPolicy(wait.WithTimeout(150*time.Millisecond), wait.WithInterval(40*time.Millisecond))))
	if err != nil {
		t.Fatal(err)
	}

	_, err = items.Get()
	if !query.IsTimeout(err) {
		t.Fatalf("Get() error = %v, want timeout (empty is not ready by default)", err)
	}
	if !strings.Contains(err.Error(), "listItems") {
		t.Errorf("failure %q does not name the accessor", err)
	}
}

func TestCollectionDefaultReadinessRequiresAllVisible(t *testing.T) {
	partiallyHidden := `<html><body>
		<li class="item">one</li>
		<li class="item" hidden>two</li>
	</body></html>`

	sess, surface := newTestSession(t, partiallyHidden)
	surface.OnQuery(func(n int) {
		if n == 2 {
			if err := surface.SetHTML(itemsPage); err != nil {
				t.Errorf("SetHTML: %v", err)
			}
		}
	})

	items, err := NewCollection(sess, "listItems", query.Class("item"), WithPolicy(fastPolicy()))
	if err != nil {
		t.Fatal(err)
	}

	els, err := items.Get()
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	// Never a partially ready collection: the hidden-member snapshot was
	// rejected and the call returned the fully visible one.
	if len(els) != 3 {
		t.Errorf("len = %d, want 3", len(els))
	}
}

func TestCollectionCacheReusesSlice(t *testing.T) {
	sess, surface := newTestSession(t, itemsPage)
	items, err := NewCollection(sess, "listItems", query.Class("item"), WithCache())
	if err != nil {
		t.Fatal(err)
	}

	if _, err := items.Get(); err != nil {
		t.Fatal(err)
	}
	if _, err := items.Get(); err != nil {
		t.Fatal(err)
	}

	if got := surface.QueryCount(); got != 1 {
		t.Errorf("QueryCount() = %d, want 1", got)
	}
}

func TestCollectionStaleMemberInvalidatesWholeSlice(t *testing.T) {
	sess, surface := newTestSession(t, itemsPage)
	items, err := NewCollection(sess, "listItems", query.Class("item"),
		WithCache(), WithPolicy(fastPolicy()))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := items.Get(); err != nil {
		t.Fatal(err)
	}
	if err := surface.SetHTML(itemsPage); err != nil {
		t.Fatal(err)
	}

	els, err := items.Get()
	if err != nil {
		t.Fatalf("healing Get() error = %v", err)
	}
	for _, el := range els {
		if _, err := el.Text(); err != nil {
			t.Errorf("member still stale after healing: %v", err)
		}
	}
	if got := surface.QueryCount(); got != 2 {
		t.Errorf("QueryCount() = %d, want 2 (fill, heal)", got)
	}
}

func TestCollectionStringHasSliceMarker(t *testing.T) {
	sess, _ := newTestSession(t, itemsPage)
	items, err := NewCollection(sess, "listItems", query.Class("item"))
	if err != nil {
		t.Fatal(err)
	}

	got := items.String()
	if !strings.Contains(got, "listItems[class=item][]") {
		t.Errorf("String() = %q, want the collection marker", got)
	}
}
