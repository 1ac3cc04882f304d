package terminal

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/gitquest/internal/game"
	"github.com/abhisek/gitquest/internal/quiz"
	"github.com/abhisek/gitquest/internal/ui/theme"
)

// Renderer styles quiz and game output with the theme.
type Renderer struct{}

var (
	_ quiz.Renderer = Renderer{}
	_ game.Styler   = Renderer{}
)

var optionID = lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)

func (Renderer) Scenario(text string) string { return theme.Body.Bold(true).Render(text) }

func (Renderer) Option(id, command string) string {
	return fmt.Sprintf("%s %s", optionID.Render(id+")"), theme.Command.Render(command))
}

func (Renderer) Prompt() string { return "\n" + theme.Highlight.Render("Your answer: ") }

func (Renderer) Correct(message string) string { return theme.Correct.Render(message) }

func (Renderer) Incorrect() string { return theme.Incorrect.Render("Incorrect!") }

func (Renderer) Command(command string) string {
	return theme.Hint.Render("Correct command: ") + theme.Command.Render(command)
}

func (Renderer) Definition(definition string) string { return theme.Body.Render(definition) }

func (Renderer) Example(example string) string {
	return theme.Hint.Render("Example: ") + theme.Command.Render(example)
}

func (Renderer) RetryPrompt() string { return theme.Hint.Render("Try again!") }

func (Renderer) Reveal(command string) string {
	return theme.Hint.Render("The answer was: ") + theme.Command.Render(command)
}

func (Renderer) Title(s string) string     { return theme.Title.Render(s) }
func (Renderer) Dim(s string) string       { return theme.Hint.Render(s) }
func (Renderer) Good(s string) string      { return theme.Correct.Render(s) }
func (Renderer) Bad(s string) string       { return theme.Incorrect.Render(s) }
func (Renderer) Highlight(s string) string { return theme.Highlight.Render(s) }

// Styles returns the quiz renderer and game styler for the terminal,
// plain ones when color is off.
func Styles(noColor bool) (quiz.Renderer, game.Styler) {
	if noColor {
		return quiz.PlainRenderer{}, game.PlainStyler{}
	}
	return Renderer{}, Renderer{}
}
