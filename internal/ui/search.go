package ui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// SearchBar is a controlled search field: the embedded textinput carries
// the text, the caller reads Value() and reacts through the optional
// callbacks. The bar itself holds no business state and does no
// validation.
type SearchBar struct {
	Input textinput.Model

	// OnChange is invoked after any edit that changes the value
	OnChange func(value string)

	// OnSubmit is invoked when enter is pressed
	OnSubmit func(value string)

	// OnPress is invoked when the field gains focus
	OnPress func()
}

// NewSearchBar creates a search bar with the card's standard styling
func NewSearchBar(placeholder string) SearchBar {
	input := textinput.New()
	input.Placeholder = placeholder
	input.Prompt = "⌕ "
	input.PromptStyle = SearchPromptStyle
	input.CharLimit = 64
	input.Width = 32

	return SearchBar{Input: input}
}

// Focus activates the field and fires OnPress
func (s *SearchBar) Focus() tea.Cmd {
	cmd := s.Input.Focus()
	if s.OnPress != nil {
		s.OnPress()
	}
	return cmd
}

// Blur deactivates the field
func (s *SearchBar) Blur() {
	s.Input.Blur()
}

// Focused reports whether the field has focus
func (s *SearchBar) Focused() bool {
	return s.Input.Focused()
}

// Value returns the current text
func (s *SearchBar) Value() string {
	return s.Input.Value()
}

// SetValue replaces the current text without firing callbacks
func (s *SearchBar) SetValue(value string) {
	s.Input.SetValue(value)
}

// Update forwards a message to the embedded field and fires callbacks.
// Enter fires OnSubmit and is not forwarded; everything else goes to the
// field, and OnChange fires when the edit changed the value.
func (s SearchBar) Update(msg tea.Msg) (SearchBar, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "enter" {
		if s.OnSubmit != nil {
			s.OnSubmit(s.Input.Value())
		}
		return s, nil
	}

	before := s.Input.Value()

	var cmd tea.Cmd
	s.Input, cmd = s.Input.Update(msg)

	if s.Input.Value() != before && s.OnChange != nil {
		s.OnChange(s.Input.Value())
	}

	return s, cmd
}

// View renders the field, icon included
func (s SearchBar) View() string {
	return s.Input.View()
}
