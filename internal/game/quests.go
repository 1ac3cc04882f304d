package game

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/abhisek/gitquest/internal/quest"
	"github.com/abhisek/gitquest/internal/quiz"
	"github.com/abhisek/gitquest/internal/store"
)

// questMenu lists the quests and runs the one the learner picks. A number
// or a quest id selects; back returns to the main menu.
func (g *Game) questMenu(ctx context.Context) error {
	quests := g.catalog.All()
	for {
		g.console.Println()
		g.console.Println(g.style.Title("Quests"))
		for i, q := range quests {
			line := fmt.Sprintf("%d. [%s] %-6s %s", i+1, quest.CompletionStatus(g.catalog.State(q.ID) == quest.StateCompleted), quest.Stars(q.DifficultyLevel), q.Name)
			if g.catalog.State(q.ID) == quest.StateActive {
				line += g.style.Highlight(fmt.Sprintf("  (in progress, %.0f%%)", g.catalog.Progress()))
			}
			g.console.Println(line)
		}

		in, err := g.prompt("\nPick a quest (number or id, 'back' to return): ")
		if err != nil {
			return err
		}
		if in.back {
			return nil
		}

		id, err := g.resolveQuest(in.text, quests)
		if err != nil {
			g.console.Println(g.style.Bad(err.Error()))
			continue
		}
		return g.runQuest(ctx, id)
	}
}

func (g *Game) resolveQuest(text string, quests []quest.Quest) (string, error) {
	if _, err := strconv.Atoi(text); err == nil {
		i, err := parseSelection(text, len(quests))
		if err != nil {
			return "", err
		}
		return quests[i].ID, nil
	}
	id := strings.ToLower(text)
	if _, ok := g.catalog.Get(id); !ok {
		return "", fmt.Errorf("%w: %q", quest.ErrUnknownQuest, text)
	}
	return id, nil
}

// runQuest asks one question per learning module of the quest, resuming
// at the saved step when the quest was already in progress.
func (g *Game) runQuest(ctx context.Context, id string) error {
	if q, ok := g.catalog.Get(id); ok && len(q.LearningModules) == 0 {
		g.console.Println(g.style.Dim(fmt.Sprintf("%s has no learning modules yet. Try another quest.", q.Name)))
		return nil
	}

	resume := g.session.CurrentQuest() == id
	if err := g.catalog.Start(id); err != nil {
		return err
	}
	q, _ := g.catalog.Active()
	step := 0
	if resume {
		step = min(max(g.session.CurrentStep(), 0), len(q.LearningModules))
	} else {
		g.session.SetCurrentQuest(id)
		g.session.SetCurrentStep(0)
		g.recordQuest(ctx, id, store.QuestStarted)
	}
	g.catalog.SetProgress(stepProgress(step, len(q.LearningModules)))

	questions := g.picker.Draw(q.Level(), len(q.LearningModules))
	if len(questions) == 0 {
		g.console.Println(g.style.Dim(fmt.Sprintf("No %s questions are available yet. Try another quest.", q.Level().DisplayName())))
		return nil
	}

	g.console.Println()
	g.console.Println(g.style.Title(fmt.Sprintf("%s %s", q.Name, quest.Stars(q.DifficultyLevel))))
	g.console.Println(g.style.Dim(q.Description))

	total := len(q.LearningModules)
	points := quiz.PointsForLevel(string(q.Level()))
	for i := step; i < total; i++ {
		module := q.LearningModules[i]
		g.console.Println()
		g.console.Println(g.style.Highlight(fmt.Sprintf("Module %d/%d: %s", i+1, total, module)))

		question := questions[i%len(questions)]
		res, err := g.quest.AskQuestion(question)
		if err != nil {
			return err
		}

		earned := 0
		if res.Correct {
			earned = points
			g.session.AddPoints(earned)
			g.console.Println(g.style.Good(fmt.Sprintf("+%d points", earned)))
			if q.BadgeID != "" && g.badges.AddPoints(ctx, q.BadgeID, earned) {
				g.unlocked(q.BadgeID)
			}
		}
		g.recordAnswer(ctx, quiz.ModeQuest, q.ID, question, res, earned)

		g.session.SetLastModule(module)
		g.session.SetModuleProgress(module, i+1)
		g.session.SetCurrentStep(i + 1)
		g.session.IncrementModulesCompleted()
		g.catalog.SetProgress(stepProgress(i+1, total))
		g.syncBadges()
		g.save()
	}

	return g.completeQuest(ctx, q)
}

// stepProgress is the percentage of modules done after step of total.
func stepProgress(step, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(step) * 100 / float64(total)
}

func (g *Game) completeQuest(ctx context.Context, q *quest.Quest) error {
	g.recordQuest(ctx, q.ID, store.QuestCompleted)
	if !g.catalog.Complete() {
		return errors.New("no active quest to complete")
	}
	g.session.MarkQuestCompleted(q.ID)
	g.session.SetCurrentQuest("")
	g.session.SetCurrentStep(0)

	g.console.Println()
	g.console.Println(g.style.Good(fmt.Sprintf("Quest complete: %s!", q.Name)))

	if q.BadgeID != "" && g.badges.Award(ctx, q.BadgeID) {
		g.unlocked(q.BadgeID)
	}
	g.evaluateBadges(ctx)
	g.save()
	return nil
}
