package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewSearchBar(t *testing.T) {
	bar := NewSearchBar("filter rows")

	if bar.Input.Placeholder != "filter rows" {
		t.Errorf("Placeholder = %v, want %v", bar.Input.Placeholder, "filter rows")
	}
	if bar.Focused() {
		t.Error("new search bar should not be focused")
	}
	if bar.Value() != "" {
		t.Errorf("Value() = %q, want empty", bar.Value())
	}
}

func TestSearchBar_ViewShowsIcon(t *testing.T) {
	bar := NewSearchBar("filter rows")

	if !strings.Contains(bar.View(), "⌕") {
		t.Errorf("View() = %q, want search icon", bar.View())
	}
}

func TestSearchBar_ControlledValue(t *testing.T) {
	bar := NewSearchBar("")

	changed := false
	bar.OnChange = func(string) { changed = true }

	bar.SetValue("battery")

	if bar.Value() != "battery" {
		t.Errorf("Value() = %q, want %q", bar.Value(), "battery")
	}
	if changed {
		t.Error("SetValue() must not fire OnChange")
	}
}

func TestSearchBar_FocusFiresOnPress(t *testing.T) {
	bar := NewSearchBar("")

	pressed := false
	bar.OnPress = func() { pressed = true }

	bar.Focus()

	if !bar.Focused() {
		t.Error("Focus() should focus the field")
	}
	if !pressed {
		t.Error("Focus() should fire OnPress")
	}
}

func TestSearchBar_UpdateFiresOnChange(t *testing.T) {
	bar := NewSearchBar("")
	bar.Focus()

	var got []string
	bar.OnChange = func(value string) { got = append(got, value) }

	bar, _ = bar.Update(keyRunes("a"))
	bar, _ = bar.Update(keyRunes("b"))

	if bar.Value() != "ab" {
		t.Errorf("Value() = %q, want %q", bar.Value(), "ab")
	}
	if len(got) != 2 || got[0] != "a" || got[1] != "ab" {
		t.Errorf("OnChange calls = %v, want [a ab]", got)
	}
}

func TestSearchBar_NonEditingKeyDoesNotFireOnChange(t *testing.T) {
	bar := NewSearchBar("")
	bar.Focus()
	bar.SetValue("abc")

	changed := false
	bar.OnChange = func(string) { changed = true }

	// Cursor movement leaves the value alone
	bar, _ = bar.Update(tea.KeyMsg{Type: tea.KeyLeft})

	if changed {
		t.Error("cursor movement must not fire OnChange")
	}
	if bar.Value() != "abc" {
		t.Errorf("Value() = %q, want %q", bar.Value(), "abc")
	}
}

func TestSearchBar_EnterFiresOnSubmit(t *testing.T) {
	bar := NewSearchBar("")
	bar.Focus()
	bar.SetValue("memory")

	var submitted string
	bar.OnSubmit = func(value string) { submitted = value }

	bar, _ = bar.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if submitted != "memory" {
		t.Errorf("OnSubmit value = %q, want %q", submitted, "memory")
	}
	if bar.Value() != "memory" {
		t.Errorf("Value() = %q, want unchanged %q", bar.Value(), "memory")
	}
}

func TestSearchBar_NilCallbacks(t *testing.T) {
	bar := NewSearchBar("")

	// None of these may panic with nil callbacks
	bar.Focus()
	bar, _ = bar.Update(keyRunes("x"))
	bar, _ = bar.Update(tea.KeyMsg{Type: tea.KeyEnter})
	bar.Blur()

	if bar.Value() != "x" {
		t.Errorf("Value() = %q, want %q", bar.Value(), "x")
	}
}

func TestSearchBar_Blur(t *testing.T) {
	bar := NewSearchBar("")
	bar.Focus()
	bar.Blur()

	if bar.Focused() {
		t.Error("Blur() should unfocus the field")
	}
}
