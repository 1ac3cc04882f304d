package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/gitquest/internal/ui/theme"
)

// SearchInput wraps bubbles/textinput as a one-line search box.
type SearchInput struct {
	Model     textinput.Model
	submitted bool
	found     bool
}

// NewSearchInput creates a focused search input.
func NewSearchInput(placeholder string, charLimit int) SearchInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "> "
	if charLimit > 0 {
		ti.CharLimit = charLimit
	}
	ti.Focus()
	return SearchInput{Model: ti}
}

// Init returns the initial command.
func (s SearchInput) Init() tea.Cmd {
	return s.Model.Focus()
}

// Update handles messages. Editing clears the last submit marker.
func (s SearchInput) Update(msg tea.Msg) (SearchInput, tea.Cmd) {
	before := s.Model.Value()
	var cmd tea.Cmd
	s.Model, cmd = s.Model.Update(msg)
	if s.Model.Value() != before {
		s.submitted = false
	}
	return s, cmd
}

// View renders the input with a hit or miss marker after a submit.
func (s SearchInput) View() string {
	view := s.Model.View()
	if s.submitted {
		if s.found {
			view += " " + lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
		} else {
			view += " " + lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
		}
	}
	return view
}

// Value returns the current input value.
func (s SearchInput) Value() string {
	return s.Model.Value()
}

// SetValue replaces the input value.
func (s *SearchInput) SetValue(v string) {
	s.Model.SetValue(v)
	s.submitted = false
}

// Submit marks the input as submitted with the lookup result.
func (s *SearchInput) Submit(found bool) {
	s.submitted = true
	s.found = found
}
