package domtest

import (
	"reflect"
	"testing"

	"github.com/entrhq/lookout/pkg/query"
)

func TestVisibilityHeuristics(t *testing.T) {
	s := MustNew(`<html><body>
		<button id="plain">plain</button>
		<button id="hidden-attr" hidden>hidden</button>
		<input id="hidden-type" type="hidden">
		<div id="display-none" style="display: none">gone</div>
		<div id="vis-hidden" style="visibility:hidden">gone</div>
		<div style="display:none"><span id="in-hidden-parent">gone</span></div>
	</body></html>`)

	tests := []struct {
		id   string
		want bool
	}{
		{"plain", true},
		{"hidden-attr", false},
		{"hidden-type", false},
		{"display-none", false},
		{"vis-hidden", false},
		{"in-hidden-parent", false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			el, err := s.FindOne(query.ID(tt.id))
			if err != nil {
				t.Fatal(err)
			}
			visible, err := el.IsVisible()
			if err != nil {
				t.Fatal(err)
			}
			if visible != tt.want {
				t.Errorf("IsVisible() = %t, want %t", visible, tt.want)
			}
		})
	}
}

func TestEnabledAndSelectedStates(t *testing.T) {
	s := MustNew(`<html><body>
		<button id="on">go</button>
		<button id="off" disabled>stop</button>
		<input id="box" type="checkbox" checked>
		<option id="opt" selected>choice</option>
	</body></html>`)

	on, _ := s.FindOne(query.ID("on"))
	if enabled, _ := on.IsEnabled(); !enabled {
		t.Error("button without disabled attribute should be enabled")
	}
	off, _ := s.FindOne(query.ID("off"))
	if enabled, _ := off.IsEnabled(); enabled {
		t.Error("disabled button should not be enabled")
	}
	box, _ := s.FindOne(query.ID("box"))
	if selected, _ := box.IsSelected(); !selected {
		t.Error("checked checkbox should be selected")
	}
	opt, _ := s.FindOne(query.ID("opt"))
	if selected, _ := opt.IsSelected(); !selected {
		t.Error("selected option should be selected")
	}
}

func TestInteractionsAreRecorded(t *testing.T) {
	s := MustNew(`<html><body>
		<input id="email" type="text">
		<button id="go">Go</button>
	</body></html>`)

	email, _ := s.FindOne(query.ID("email"))
	button, _ := s.FindOne(query.ID("go"))

	if err := email.SendInput("user@example.com"); err != nil {
		t.Fatal(err)
	}
	if v, _ := email.Attribute("value"); v != "user@example.com" {
		t.Errorf("value = %q after SendInput", v)
	}

	if err := email.Clear(); err != nil {
		t.Fatal(err)
	}
	if v, _ := email.Attribute("value"); v != "" {
		t.Errorf("value = %q after Clear", v)
	}

	if err := button.Click(); err != nil {
		t.Fatal(err)
	}
	if err := button.Submit(); err != nil {
		t.Fatal(err)
	}

	want := []string{
		`send-input "user@example.com" <input#email>`,
		"clear <input#email>",
		"click <button#go>",
		"submit <button#go>",
	}
	if got := s.Interactions(); !reflect.DeepEqual(got, want) {
		t.Errorf("Interactions() = %v, want %v", got, want)
	}
}

func TestClickTogglesCheckbox(t *testing.T) {
	s := MustNew(`<html><body><input id="box" type="checkbox"></body></html>`)
	box, _ := s.FindOne(query.ID("box"))

	if selected, _ := box.IsSelected(); selected {
		t.Fatal("checkbox should start unchecked")
	}
	if err := box.Click(); err != nil {
		t.Fatal(err)
	}
	if selected, _ := box.IsSelected(); !selected {
		t.Error("click should check the box")
	}
	if err := box.Click(); err != nil {
		t.Fatal(err)
	}
	if selected, _ := box.IsSelected(); selected {
		t.Error("second click should uncheck the box")
	}
}

func TestEvalRecordsScript(t *testing.T) {
	s := MustNew(`<html><body><button id="go">Go</button></body></html>`)
	el, _ := s.FindOne(query.ID("go"))

	scripter, ok := query.ScripterFor(el)
	if !ok {
		t.Fatal("driver elements should expose the script capability")
	}
	if _, err := scripter.Eval("el => el.style.outline = '2px solid red'"); err != nil {
		t.Fatal(err)
	}

	evals := s.Evals()
	if len(evals) != 1 || evals[0] != "el => el.style.outline = '2px solid red'" {
		t.Errorf("Evals() = %v", evals)
	}
}
