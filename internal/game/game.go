package game

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/abhisek/gitquest/internal/badges"
	"github.com/abhisek/gitquest/internal/glossary"
	"github.com/abhisek/gitquest/internal/progress"
	"github.com/abhisek/gitquest/internal/quest"
	"github.com/abhisek/gitquest/internal/questionbank"
	"github.com/abhisek/gitquest/internal/quiz"
	"github.com/abhisek/gitquest/internal/store"
)

// ExitStatus is how a game run ended.
type ExitStatus int

const (
	ExitOK          ExitStatus = iota // learner chose to exit
	ExitInputClosed                   // input reached EOF
	ExitError                         // unexpected failure
)

// String returns the status name.
func (s ExitStatus) String() string {
	switch s {
	case ExitOK:
		return "ok"
	case ExitInputClosed:
		return "input closed"
	case ExitError:
		return "error"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Code returns the process exit code for the status.
func (s ExitStatus) Code() int {
	if s == ExitError {
		return 1
	}
	return 0
}

// errExit unwinds nested prompts when the learner types the exit sentinel.
var errExit = errors.New("exit requested")

// Options wires a Game to its collaborators. Console, Bank and Saves are
// required; the rest default.
type Options struct {
	Console  quiz.Console
	Renderer quiz.Renderer
	Styler   Styler
	Bank     *questionbank.Bank
	Catalog  *quest.Catalog
	Badges   *badges.Engine
	Glossary *glossary.Glossary
	Saves    *progress.Manager
	Events   store.EventRepo
	RunID    string
	Rand     *rand.Rand
}

// Game is the interactive loop tying quests, quizzes, badges and the
// session save together.
type Game struct {
	console  quiz.Console
	style    Styler
	quest    *quiz.Engine
	practice *quiz.Engine
	picker   *quiz.Picker
	catalog  *quest.Catalog
	badges   *badges.Engine
	glossary *glossary.Glossary
	saves    *progress.Manager
	events   store.EventRepo
	runID    string

	session *progress.Session
	resumed bool
}

// New builds a Game and restores the saved session, or starts a fresh one
// when nothing usable is saved.
func New(opts Options) *Game {
	if opts.Renderer == nil {
		opts.Renderer = quiz.PlainRenderer{}
	}
	if opts.Styler == nil {
		opts.Styler = PlainStyler{}
	}
	if opts.Catalog == nil {
		opts.Catalog = quest.Default()
	}
	if opts.Glossary == nil {
		opts.Glossary = glossary.Default()
	}
	if opts.Badges == nil {
		opts.Badges = badges.NewEngine(nil, badges.WithEventRepo(opts.Events, opts.RunID))
	}

	g := &Game{
		console:  opts.Console,
		style:    opts.Styler,
		quest:    quiz.NewEngine(opts.Console, quiz.WithRenderer(opts.Renderer)),
		practice: quiz.NewEngine(opts.Console, quiz.WithRenderer(opts.Renderer), quiz.WithMode(quiz.ModePractice)),
		picker:   quiz.NewPicker(opts.Bank, opts.Rand),
		catalog:  opts.Catalog,
		badges:   opts.Badges,
		glossary: opts.Glossary,
		saves:    opts.Saves,
		events:   opts.Events,
		runID:    opts.RunID,
	}
	g.restore()
	return g
}

// Session returns the live session.
func (g *Game) Session() *progress.Session { return g.session }

func (g *Game) restore() {
	s, ok := g.saves.Load()
	if !ok {
		g.session = progress.NewSession()
		return
	}
	g.session = s
	g.resumed = true

	g.catalog.Restore(s.CompletedQuests())
	g.badges.Restore(s.UnlockedAchievements(), toBadgeStates(s.BadgeStates()))
	if id := s.CurrentQuest(); id != "" {
		if err := g.catalog.Start(id); err != nil {
			slog.Warn("saved quest no longer exists", "quest", id)
			s.SetCurrentQuest("")
			s.SetCurrentStep(0)
		} else if q, ok := g.catalog.Active(); ok {
			g.catalog.SetProgress(stepProgress(s.CurrentStep(), len(q.LearningModules)))
		}
	}
}

// Run shows the main menu until the learner exits or input ends. The
// session is saved on every way out, including a panic.
func (g *Game) Run(ctx context.Context) (status ExitStatus, err error) {
	defer func() {
		if r := recover(); r != nil {
			status, err = ExitError, fmt.Errorf("game panicked: %v", r)
		}
		if !g.saves.Save(g.session) {
			g.console.Println(g.style.Bad("Warning: your progress could not be saved."))
		}
	}()

	if err := g.greet(); err != nil {
		return g.exitFor(err)
	}

	for {
		if err := ctx.Err(); err != nil {
			return ExitError, err
		}
		g.printMenu()
		choice, err := g.promptMenu()
		if err != nil {
			return g.exitFor(err)
		}

		switch choice {
		case ChoiceQuest:
			err = g.questMenu(ctx)
		case ChoiceBadges:
			g.showBadges()
		case ChoiceGlossary:
			err = g.glossaryLoop(ctx)
		case ChoiceExit:
			for _, b := range g.badges.SessionAwards {
				g.console.Println(g.style.Good("Earned this session: " + b.Name))
			}
			g.console.Println(g.style.Title(fmt.Sprintf("Goodbye, %s! Total points: %d", g.session.UserName(), g.session.TotalPoints())))
			return ExitOK, nil
		}
		if err != nil {
			return g.exitFor(err)
		}
	}
}

func (g *Game) exitFor(err error) (ExitStatus, error) {
	switch {
	case errors.Is(err, errExit):
		g.console.Println(g.style.Title("Goodbye!"))
		return ExitOK, nil
	case errors.Is(err, io.EOF):
		return ExitInputClosed, nil
	default:
		return ExitError, err
	}
}

func (g *Game) greet() error {
	// A session saved by a lookup outside the game has no learner name yet.
	if g.resumed && g.session.UserName() != progress.DefaultUserName {
		g.console.Println(g.style.Title(fmt.Sprintf("Welcome back, %s!", g.session.UserName())))
		if g.session.LastSaveTimestamp() != "" {
			g.console.Println(g.style.Dim("Last saved " + g.session.LastSaveTimestamp()))
		}
		return nil
	}

	g.console.Println(g.style.Title("Welcome to GitQuest!"))
	g.console.Print("What should we call you? ")
	line, err := g.console.ReadLine()
	if err != nil {
		return fmt.Errorf("read name: %w", err)
	}
	g.session.SetUserName(line)
	g.console.Println(fmt.Sprintf("Hi %s, let's learn some Git.", g.session.UserName()))
	return nil
}

func (g *Game) printMenu() {
	g.console.Println()
	g.console.Println(g.style.Title("Main Menu"))
	for i, c := range menuChoices {
		g.console.Println(fmt.Sprintf("%d. %s", i+1, c.Label()))
	}
}

func (g *Game) promptMenu() (MenuChoice, error) {
	for {
		g.console.Print("\nChoose an option: ")
		line, err := g.console.ReadLine()
		if err != nil {
			return 0, fmt.Errorf("read menu choice: %w", err)
		}
		choice, err := ParseMenuChoice(line)
		if err == nil {
			return choice, nil
		}
		g.console.Println(g.style.Bad(err.Error()))
	}
}

// prompt reads one validated line. Validation errors are shown and the
// prompt repeats; the exit sentinel unwinds with errExit.
func (g *Game) prompt(text string) (input, error) {
	for {
		g.console.Print(text)
		line, err := g.console.ReadLine()
		if err != nil {
			return input{}, err
		}
		in, err := readInput(line)
		if err != nil {
			g.console.Println(g.style.Bad(err.Error()))
			continue
		}
		if in.exit {
			return input{}, errExit
		}
		return in, nil
	}
}

func (g *Game) save() {
	if !g.saves.Save(g.session) {
		g.console.Println(g.style.Bad("Warning: progress could not be saved; it will be retried later."))
	}
}

func (g *Game) recordAnswer(ctx context.Context, mode quiz.Mode, questID string, q questionbank.Question, res quiz.Result, points int) {
	if g.events == nil {
		return
	}
	err := g.events.AppendAnswerEvent(ctx, store.AnswerEventData{
		RunID:    g.runID,
		Mode:     mode.String(),
		QuestID:  questID,
		Level:    string(q.Level),
		Scenario: q.Scenario,
		Correct:  res.Correct,
		Attempts: res.Attempts,
		Points:   points,
	})
	if err != nil {
		slog.Warn("record answer", "error", err)
	}
}

func (g *Game) recordQuest(ctx context.Context, questID, action string) {
	if g.events == nil {
		return
	}
	err := g.events.AppendQuestEvent(ctx, store.QuestEventData{
		RunID:    g.runID,
		QuestID:  questID,
		Action:   action,
		Progress: g.catalog.Progress(),
	})
	if err != nil {
		slog.Warn("record quest", "quest", questID, "error", err)
	}
}

func toBadgeStates(saved map[string]progress.BadgeState) map[string]badges.State {
	out := make(map[string]badges.State, len(saved))
	for id, st := range saved {
		bs := badges.State{Points: st.Points}
		if st.DateEarned != "" {
			if d, err := time.ParseInLocation(progress.DateLayout, st.DateEarned, time.Local); err == nil {
				bs.DateEarned = &d
			}
		}
		out[id] = bs
	}
	return out
}

func fromBadgeState(st badges.State) progress.BadgeState {
	ps := progress.BadgeState{Points: st.Points}
	if st.DateEarned != nil {
		ps.DateEarned = st.DateEarned.Format(progress.DateLayout)
	}
	return ps
}
