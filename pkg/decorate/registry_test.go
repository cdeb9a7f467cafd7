package decorate

import (
	"errors"
	"testing"
)

func TestRegistryStartsEmpty(t *testing.T) {
	r := NewRegistry()
	if got := r.Active(); len(got) != 0 {
		t.Errorf("Active() = %v, want empty", got)
	}
}

func TestRegistryWithInstallsAndRestores(t *testing.T) {
	r := NewRegistry()
	a := &recorder{name: "a"}

	err := r.With([]Decorator{a}, func() error {
		active := r.Active()
		if len(active) != 1 || active[0].Name() != "a" {
			t.Errorf("inside scope: Active() = %v", Names(active))
		}
		return nil
	})
	if err != nil {
		t.Fatalf("With() error = %v", err)
	}
	if got := r.Active(); len(got) != 0 {
		t.Errorf("after scope: Active() = %v, want empty", Names(got))
	}
}

func TestRegistryNestedScopesReplaceNotMerge(t *testing.T) {
	r := NewRegistry()
	a := &recorder{name: "a"}
	b := &recorder{name: "b"}

	_ = r.With([]Decorator{a}, func() error {
		_ = r.With([]Decorator{b}, func() error {
			active := r.Active()
			if len(active) != 1 || active[0].Name() != "b" {
				t.Errorf("nested scope: Active() = %v, want just b", Names(active))
			}
			return nil
		})
		active := r.Active()
		if len(active) != 1 || active[0].Name() != "a" {
			t.Errorf("outer scope restored to %v, want just a", Names(active))
		}
		return nil
	})
}

func TestRegistryRestoresOnError(t *testing.T) {
	r := NewRegistry()
	boom := errors.New("scoped work failed")

	err := r.With([]Decorator{&recorder{name: "a"}}, func() error {
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("With() error = %v, want the callback's error", err)
	}
	if got := r.Active(); len(got) != 0 {
		t.Errorf("after failing scope: Active() = %v, want empty", Names(got))
	}
}

func TestRegistryRestoresOnPanic(t *testing.T) {
	r := NewRegistry()

	func() {
		defer func() { _ = recover() }()
		_ = r.With([]Decorator{&recorder{name: "a"}}, func() error {
			panic("scoped work panicked")
		})
	}()

	if got := r.Active(); len(got) != 0 {
		t.Errorf("after panicking scope: Active() = %v, want empty", Names(got))
	}
}

func TestRegistryEffective(t *testing.T) {
	r := NewRegistry()
	ambient := []Decorator{&recorder{name: "ambient"}}

	if got := r.Effective(ambient); len(got) != 1 || got[0].Name() != "ambient" {
		t.Errorf("no scope: Effective() = %v, want ambient", Names(got))
	}

	_ = r.With([]Decorator{&recorder{name: "scoped"}}, func() error {
		got := r.Effective(ambient)
		if len(got) != 1 || got[0].Name() != "scoped" {
			t.Errorf("in scope: Effective() = %v, want scoped only", Names(got))
		}
		return nil
	})
}

func TestRegistryWithCopiesInput(t *testing.T) {
	r := NewRegistry()
	decs := []Decorator{&recorder{name: "a"}}

	_ = r.With(decs, func() error {
		decs[0] = &recorder{name: "mutated"}
		if got := r.Active(); got[0].Name() != "a" {
			t.Error("mutating the caller's slice leaked into the registry")
		}
		return nil
	})
}
