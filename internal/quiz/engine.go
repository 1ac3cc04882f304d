package quiz

import (
	"fmt"
	"strings"

	"github.com/abhisek/gitquest/internal/questionbank"
)

// Mode selects the retry policy of an Engine.
type Mode int

const (
	// ModeQuest is the scored mode: a question is retried for as long as its
	// feedback allows it, with no attempt limit.
	ModeQuest Mode = iota
	// ModePractice drills a question regardless of its retry flag, up to
	// MaxPracticeAttempts, then reveals the answer.
	ModePractice
)

// MaxPracticeAttempts caps the number of answers in practice mode.
const MaxPracticeAttempts = 5

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeQuest:
		return "quest"
	case ModePractice:
		return "practice"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Result is the outcome of one question.
type Result struct {
	Correct  bool
	Attempts int
	Revealed bool // practice mode gave up and showed the answer
}

// Engine asks questions over a Console.
type Engine struct {
	console Console
	render  Renderer
	mode    Mode
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithRenderer sets the output renderer. Defaults to PlainRenderer.
func WithRenderer(r Renderer) EngineOption {
	return func(e *Engine) { e.render = r }
}

// WithMode sets the retry policy. Defaults to ModeQuest.
func WithMode(m Mode) EngineOption {
	return func(e *Engine) { e.mode = m }
}

// NewEngine creates an Engine reading answers from console.
func NewEngine(console Console, opts ...EngineOption) *Engine {
	e := &Engine{console: console, render: PlainRenderer{}, mode: ModeQuest}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Mode returns the engine's retry policy.
func (e *Engine) Mode() Mode { return e.mode }

// NormalizeAnswer trims surrounding whitespace and lower-cases s.
func NormalizeAnswer(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// IsCorrect reports whether answer selects the option id correct.
func IsCorrect(answer, correct string) bool {
	a := NormalizeAnswer(answer)
	return a != "" && a == NormalizeAnswer(correct)
}

// AskQuestion presents q and reads answers until the question is resolved.
// The question itself is shown once; retries only re-prompt. A read error
// ends the question unanswered and is returned.
func (e *Engine) AskQuestion(q questionbank.Question) (Result, error) {
	e.console.Println(e.render.Scenario(q.Scenario))
	e.console.Println()
	for _, o := range q.Options {
		e.console.Println(e.render.Option(o.ID, o.Command))
	}

	var res Result
	for {
		e.console.Print(e.render.Prompt())
		line, err := e.console.ReadLine()
		if err != nil {
			return res, fmt.Errorf("read answer: %w", err)
		}
		res.Attempts++

		if IsCorrect(line, q.Correct) {
			e.console.Println(e.render.Correct(q.Feedback.Correct))
			res.Correct = true
			return res, nil
		}

		e.console.Println(e.render.Incorrect())
		inc := q.Feedback.Incorrect
		if inc != nil {
			e.explain(inc)
		}

		if e.mode == ModePractice {
			if res.Attempts >= MaxPracticeAttempts {
				if opt, ok := q.CorrectOption(); ok {
					e.console.Println(e.render.Reveal(opt.Command))
				}
				res.Revealed = true
				return res, nil
			}
		} else if inc == nil || !inc.Retry {
			return res, nil
		}

		e.console.Println(e.render.RetryPrompt())
	}
}

func (e *Engine) explain(inc *questionbank.IncorrectFeedback) {
	if inc.Command != nil {
		e.console.Println(e.render.Command(*inc.Command))
	}
	e.console.Println(e.render.Definition(inc.Definition))
	if inc.Example != nil {
		e.console.Println(e.render.Example(*inc.Example))
	}
}
