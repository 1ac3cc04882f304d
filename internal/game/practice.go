package game

import (
	"context"
	"fmt"

	"github.com/abhisek/gitquest/internal/questionbank"
	"github.com/abhisek/gitquest/internal/quiz"
)

// Practice asks up to rounds questions of level without touching points,
// badges or quest progress. Wrong answers are capped and then revealed.
func (g *Game) Practice(ctx context.Context, level questionbank.Level, rounds int) (ExitStatus, error) {
	questions := g.picker.Draw(level, rounds)
	if len(questions) == 0 {
		g.console.Println(g.style.Dim(fmt.Sprintf("No %s questions are available.", level.DisplayName())))
		return ExitOK, nil
	}

	g.console.Println(g.style.Title(fmt.Sprintf("Practice: %s (%d questions)", level.DisplayName(), len(questions))))
	correct := 0
	for i, q := range questions {
		if err := ctx.Err(); err != nil {
			return ExitError, err
		}
		g.console.Println()
		g.console.Println(g.style.Highlight(fmt.Sprintf("Question %d/%d", i+1, len(questions))))
		res, err := g.practice.AskQuestion(q)
		if err != nil {
			return g.exitFor(err)
		}
		if res.Correct {
			correct++
		}
		g.recordAnswer(ctx, quiz.ModePractice, "", q, res, 0)
	}

	g.console.Println()
	g.console.Println(g.style.Title(fmt.Sprintf("You got %d of %d right.", correct, len(questions))))
	return ExitOK, nil
}
