package quiz

import "fmt"

// Console is the line-oriented input/output collaborator the engine talks to.
type Console interface {
	// ReadLine blocks until a full line of input is available.
	ReadLine() (string, error)
	Println(a ...any)
	Print(a ...any)
}

// Renderer formats engine output. The engine never emits terminal escape
// sequences itself; styled renderers live in the presentation layer.
type Renderer interface {
	Scenario(text string) string
	Option(id, command string) string
	Prompt() string
	Correct(message string) string
	Incorrect() string
	Command(command string) string
	Definition(definition string) string
	Example(example string) string
	RetryPrompt() string
	Reveal(command string) string
}

// PlainRenderer renders unstyled text.
type PlainRenderer struct{}

var _ Renderer = PlainRenderer{}

func (PlainRenderer) Scenario(text string) string { return text }
func (PlainRenderer) Option(id, command string) string { return fmt.Sprintf("%s) %s", id, command) }
func (PlainRenderer) Prompt() string { return "\nYour answer: " }
func (PlainRenderer) Correct(message string) string { return message }
func (PlainRenderer) Incorrect() string { return "Incorrect!" }
func (PlainRenderer) Command(command string) string { return "Correct command: " + command }
func (PlainRenderer) Definition(definition string) string { return definition }
func (PlainRenderer) Example(example string) string { return example }
func (PlainRenderer) RetryPrompt() string { return "Try again!" }
func (PlainRenderer) Reveal(command string) string { return "The answer was: " + command }
