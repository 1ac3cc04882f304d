package search

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/gitquest/internal/badges"
	"github.com/abhisek/gitquest/internal/glossary"
	"github.com/abhisek/gitquest/internal/router"
)

func key(code rune) tea.KeyPressMsg { return tea.KeyPressMsg{Code: code} }

func TestEmptyQueryListsEverything(t *testing.T) {
	g := glossary.Default()
	s := New(g, "", nil)
	if len(s.results) != g.Len() {
		t.Errorf("results = %d, want %d", len(s.results), g.Len())
	}
}

func TestEnterOpensExactMatch(t *testing.T) {
	var looked []string
	s := New(glossary.Default(), "commit", func(e glossary.Entry) []badges.Badge {
		looked = append(looked, e.Command)
		return []badges.Badge{{Name: "Glossary Guru"}}
	})

	s.Update(key(tea.KeyEnter))
	if s.shown == nil || s.shown.Command != "git commit" {
		t.Fatalf("shown = %v, want git commit", s.shown)
	}
	if len(looked) != 1 || looked[0] != "git commit" {
		t.Errorf("lookups = %v, want [git commit]", looked)
	}

	view := s.View(100, 40)
	for _, want := range []string{"git commit", "Committing Changes", "Badge unlocked: Glossary Guru!"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestEnterFallsBackToSelectedResult(t *testing.T) {
	var looked []string
	s := New(glossary.Default(), "staging", func(e glossary.Entry) []badges.Badge {
		looked = append(looked, e.Command)
		return nil
	})
	if len(s.results) < 2 {
		t.Fatalf("expected several matches for staging, got %d", len(s.results))
	}

	s.Update(key(tea.KeyDown))
	s.Update(key(tea.KeyEnter))
	if s.shown == nil || s.shown.Command != s.results[1].Command {
		t.Fatalf("shown = %v, want %s", s.shown, s.results[1].Command)
	}
	if len(looked) != 1 {
		t.Errorf("lookups = %d, want 1", len(looked))
	}
}

func TestEnterWithoutMatch(t *testing.T) {
	called := false
	s := New(glossary.Default(), "frobnicate", func(glossary.Entry) []badges.Badge {
		called = true
		return nil
	})
	s.Update(key(tea.KeyEnter))
	if s.shown != nil || called {
		t.Error("a query without matches should not open an entry")
	}
	if !strings.Contains(s.View(100, 40), `No entries match "frobnicate"`) {
		t.Error("expected the no-match message")
	}
}

func TestSelectionBounds(t *testing.T) {
	s := New(glossary.Default(), "git", nil)
	s.Update(key(tea.KeyUp))
	if s.selected != 0 {
		t.Errorf("selected = %d after up at top, want 0", s.selected)
	}
	for range 100 {
		s.Update(key(tea.KeyDown))
	}
	if s.selected != len(s.results)-1 {
		t.Errorf("selected = %d, want %d", s.selected, len(s.results)-1)
	}
}

func TestEscPops(t *testing.T) {
	s := New(glossary.Default(), "", nil)
	_, cmd := s.Update(key(tea.KeyEscape))
	if cmd == nil {
		t.Fatal("expected a command on esc")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Errorf("expected PopScreenMsg, got %T", cmd())
	}
}
