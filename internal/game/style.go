package game

// Styler decorates the game's own text. The quiz output is styled
// separately through quiz.Renderer.
type Styler interface {
	Title(s string) string
	Dim(s string) string
	Good(s string) string
	Bad(s string) string
	Highlight(s string) string
}

// PlainStyler leaves text unchanged.
type PlainStyler struct{}

var _ Styler = PlainStyler{}

func (PlainStyler) Title(s string) string     { return s }
func (PlainStyler) Dim(s string) string       { return s }
func (PlainStyler) Good(s string) string      { return s }
func (PlainStyler) Bad(s string) string       { return s }
func (PlainStyler) Highlight(s string) string { return s }
