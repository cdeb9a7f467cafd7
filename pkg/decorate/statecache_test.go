package decorate

import (
	"errors"
	"testing"
)

func TestStateCacheMemoizesPositiveReads(t *testing.T) {
	el := &stubElement{tag: "button", visible: true, enabled: true, selected: true}
	cached := NewStateCache().DecorateElement(el)

	for i := 0; i < 3; i++ {
		if v, err := cached.IsVisible(); err != nil || !v {
			t.Fatalf("IsVisible() = %v, %v", v, err)
		}
		if v, err := cached.IsEnabled(); err != nil || !v {
			t.Fatalf("IsEnabled() = %v, %v", v, err)
		}
		if v, err := cached.IsSelected(); err != nil || !v {
			t.Fatalf("IsSelected() = %v, %v", v, err)
		}
	}

	if el.visibleCalls != 1 || el.enabledCalls != 1 || el.selectedCalls != 1 {
		t.Errorf("underlying reads = %d/%d/%d, want 1/1/1",
			el.visibleCalls, el.enabledCalls, el.selectedCalls)
	}
}

func TestStateCacheNeverCachesNegativeReads(t *testing.T) {
	el := &stubElement{tag: "button", visible: false}
	cached := NewStateCache().DecorateElement(el)

	for i := 0; i < 3; i++ {
		if v, err := cached.IsVisible(); err != nil || v {
			t.Fatalf("IsVisible() = %v, %v", v, err)
		}
	}
	if el.visibleCalls != 3 {
		t.Errorf("underlying reads = %d, want 3 (false must read through)", el.visibleCalls)
	}

	// A flip to true is observed on the next read, then cached.
	el.visible = true
	for i := 0; i < 2; i++ {
		if v, err := cached.IsVisible(); err != nil || !v {
			t.Fatalf("IsVisible() = %v, %v", v, err)
		}
	}
	if el.visibleCalls != 4 {
		t.Errorf("underlying reads = %d, want 4", el.visibleCalls)
	}
}

func TestStateCacheNeverCachesFailedReads(t *testing.T) {
	readErr := errors.New("element detached")
	el := &stubElement{tag: "button", visible: true, visibleErr: readErr}
	cached := NewStateCache().DecorateElement(el)

	for i := 0; i < 2; i++ {
		if _, err := cached.IsVisible(); !errors.Is(err, readErr) {
			t.Fatalf("IsVisible() error = %v, want read failure", err)
		}
	}
	if el.visibleCalls != 2 {
		t.Errorf("underlying reads = %d, want 2", el.visibleCalls)
	}
}

func TestStateCacheStartsColdPerDecoration(t *testing.T) {
	el := &stubElement{tag: "button", visible: true}
	d := NewStateCache()

	first := d.DecorateElement(el)
	if _, err := first.IsVisible(); err != nil {
		t.Fatal(err)
	}

	// Re-decoration models re-resolution; the new wrapper must read fresh.
	second := d.DecorateElement(el)
	if _, err := second.IsVisible(); err != nil {
		t.Fatal(err)
	}

	if el.visibleCalls != 2 {
		t.Errorf("underlying reads = %d, want one per wrapper", el.visibleCalls)
	}
}
