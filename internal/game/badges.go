package game

import (
	"context"
	"fmt"

	"github.com/abhisek/gitquest/internal/badges"
	"github.com/abhisek/gitquest/internal/progress"
)

func (g *Game) showBadges() {
	g.console.Println()
	g.console.Println(g.style.Title("Badges"))
	for _, b := range g.badges.All() {
		status := g.style.Dim("locked")
		if b.Earned() {
			status = g.style.Good("earned " + b.DateEarned.Format(progress.DateLayout))
		}
		g.console.Println(fmt.Sprintf("%-14s %3d/%-3d %s", b.Name, b.PointsEarned, b.MaxPoints, status))
		g.console.Println(g.style.Dim("  " + b.Description))
	}
	g.console.Println(fmt.Sprintf("\nTotal points: %d", g.session.TotalPoints()))
}

// evaluateBadges awards the milestone badges the session now qualifies for
// and announces them.
func (g *Game) evaluateBadges(ctx context.Context) {
	for _, b := range g.awardMilestones(ctx) {
		g.announce(b)
	}
}

func (g *Game) awardMilestones(ctx context.Context) []badges.Badge {
	awarded := g.badges.Evaluate(ctx, len(g.session.CompletedQuests()), g.session.GlossaryLookups())
	for _, b := range awarded {
		g.session.Unlock(b.ID)
	}
	g.syncBadges()
	return awarded
}

func (g *Game) unlocked(id string) {
	g.session.Unlock(id)
	if b, ok := g.badges.Get(id); ok {
		g.announce(b)
	}
}

func (g *Game) announce(b badges.Badge) {
	g.console.Println(g.style.Good(fmt.Sprintf("Badge unlocked: %s!", b.Name)))
}

// syncBadges copies badge points and dates into the session.
func (g *Game) syncBadges() {
	for id, st := range g.badges.States() {
		g.session.SetBadgeState(id, fromBadgeState(st))
	}
}
