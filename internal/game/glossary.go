package game

import (
	"context"
	"fmt"

	"github.com/abhisek/gitquest/internal/badges"
	"github.com/abhisek/gitquest/internal/glossary"
)

// glossaryLoop looks up commands until the learner goes back. Every exact
// hit counts toward the glossary badge; misses list close matches.
func (g *Game) glossaryLoop(ctx context.Context) error {
	g.console.Println()
	g.console.Println(g.style.Title("Glossary"))
	g.console.Println(g.style.Dim(fmt.Sprintf("%d commands in %d categories", g.glossary.Len(), len(g.glossary.Categories()))))

	for {
		in, err := g.prompt("\nLook up a command ('back' to return): ")
		if err != nil {
			return err
		}
		if in.back {
			return nil
		}
		g.lookup(ctx, in.text)
	}
}

// lookup prints the entry for term and reports whether it was found.
func (g *Game) lookup(ctx context.Context, term string) bool {
	if e, ok := g.glossary.Lookup(term); ok {
		g.printEntry(e)
		for _, b := range g.RecordLookup(ctx) {
			g.announce(b)
		}
		return true
	}

	matches := g.glossary.Search(term)
	if len(matches) == 0 {
		g.console.Println(g.style.Bad(fmt.Sprintf("No entry for %q.", term)))
		return false
	}
	g.console.Println(g.style.Dim("Did you mean:"))
	for _, m := range matches {
		g.console.Println("  " + g.style.Highlight(m.Command) + "  " + g.style.Dim(m.Definition))
	}
	return false
}

// Lookup prints the glossary entry for term outside the interactive loop,
// counting it like an in-game lookup.
func (g *Game) Lookup(ctx context.Context, term string) bool {
	return g.lookup(ctx, term)
}

// RecordLookup counts one glossary hit, saves, and returns the badges it
// unlocked without printing them.
func (g *Game) RecordLookup(ctx context.Context) []badges.Badge {
	g.session.RecordGlossaryLookup()
	awarded := g.awardMilestones(ctx)
	g.save()
	return awarded
}

func (g *Game) printEntry(e glossary.Entry) {
	g.console.Println(g.style.Highlight(e.Command) + g.style.Dim("  ["+e.Category+"]"))
	g.console.Println(e.Definition)
	if e.Example != "" {
		g.console.Println(g.style.Dim("Example: ") + e.Example)
	}
}
