package search

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/gitquest/internal/badges"
	"github.com/abhisek/gitquest/internal/glossary"
	"github.com/abhisek/gitquest/internal/router"
	"github.com/abhisek/gitquest/internal/screen"
	"github.com/abhisek/gitquest/internal/ui/components"
	"github.com/abhisek/gitquest/internal/ui/layout"
	"github.com/abhisek/gitquest/internal/ui/theme"
)

// LookupFunc is called for every entry the learner opens. It returns the
// badges the lookup unlocked.
type LookupFunc func(glossary.Entry) []badges.Badge

// GlossaryScreen is a live search over the command glossary.
type GlossaryScreen struct {
	glossary *glossary.Glossary
	onLookup LookupFunc
	input    components.SearchInput
	results  []glossary.Entry
	selected int
	shown    *glossary.Entry
	unlocked []string
}

var _ screen.Screen = (*GlossaryScreen)(nil)
var _ screen.KeyHintProvider = (*GlossaryScreen)(nil)

// New creates a GlossaryScreen prefilled with query. onLookup may be nil.
func New(g *glossary.Glossary, query string, onLookup LookupFunc) *GlossaryScreen {
	s := &GlossaryScreen{
		glossary: g,
		onLookup: onLookup,
		input:    components.NewSearchInput("type a command, e.g. git commit", 40),
	}
	s.input.SetValue(query)
	s.refresh()
	return s
}

func (s *GlossaryScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *GlossaryScreen) Title() string {
	return "Glossary"
}

func (s *GlossaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Look up"},
		{Key: "↑↓", Description: "Select"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *GlossaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down":
			if s.selected < len(s.results)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			s.submit()
			return s, nil
		}
	}

	var cmd tea.Cmd
	before := s.input.Value()
	s.input, cmd = s.input.Update(msg)
	if s.input.Value() != before {
		s.refresh()
	}
	return s, cmd
}

func (s *GlossaryScreen) refresh() {
	s.results = s.glossary.Search(s.input.Value())
	s.selected = 0
}

// submit opens the exact match for the query, or else the selected result.
func (s *GlossaryScreen) submit() {
	e, ok := s.glossary.Lookup(s.input.Value())
	if !ok && len(s.results) > 0 {
		e, ok = s.results[s.selected], true
	}
	s.input.Submit(ok)
	if !ok {
		s.shown = nil
		return
	}
	s.shown = &e
	s.unlocked = nil
	if s.onLookup != nil {
		for _, b := range s.onLookup(e) {
			s.unlocked = append(s.unlocked, b.Name)
		}
	}
}

func (s *GlossaryScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n  ")
	b.WriteString(s.input.View())
	b.WriteString("\n\n")

	if len(s.results) == 0 {
		b.WriteString(theme.Hint.Render(fmt.Sprintf("  No entries match %q", s.input.Value())))
		b.WriteString("\n")
	}

	maxVisible := max(height-14, 3)
	start := max(s.selected-maxVisible+1, 0)
	end := min(start+maxVisible, len(s.results))
	for i := start; i < end; i++ {
		e := s.results[i]
		cmd := fmt.Sprintf("%-14s", e.Command)
		if i == s.selected {
			b.WriteString(theme.Selected.Render("▸ " + cmd))
		} else {
			b.WriteString("  " + theme.Unselected.Render(cmd))
		}
		b.WriteString(" " + theme.Hint.Render(e.Definition))
		b.WriteString("\n")
	}
	if end < len(s.results) {
		b.WriteString(theme.Hint.Render(fmt.Sprintf("  ... %d more", len(s.results)-end)))
		b.WriteString("\n")
	}

	if s.shown != nil {
		b.WriteString("\n")
		b.WriteString(s.renderEntry(*s.shown, width))
		b.WriteString("\n")
	}
	for _, name := range s.unlocked {
		b.WriteString(theme.Correct.Render(fmt.Sprintf("  Badge unlocked: %s!", name)))
		b.WriteString("\n")
	}
	return b.String()
}

func (s *GlossaryScreen) renderEntry(e glossary.Entry, width int) string {
	body := theme.Command.Bold(true).Render(e.Command) + "  " + theme.Hint.Render(e.Category) + "\n" +
		theme.Body.Render(e.Definition)
	if e.Example != "" {
		body += "\n" + theme.Hint.Render("Example: ") + theme.Command.Render(e.Example)
	}
	return lipgloss.NewStyle().MarginLeft(2).Render(
		theme.Card.Width(max(min(width-6, 70), 20)).Render(body))
}
