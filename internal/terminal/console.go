// Package terminal connects the line-oriented game to a real terminal.
package terminal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/abhisek/gitquest/internal/quiz"
)

// Console reads lines from r and writes to w.
type Console struct {
	r *bufio.Reader
	w io.Writer
}

var _ quiz.Console = (*Console)(nil)

// NewConsole creates a Console over r and w.
func NewConsole(r io.Reader, w io.Writer) *Console {
	return &Console{r: bufio.NewReader(r), w: w}
}

// ReadLine returns the next line without its line ending. A final line
// without a newline is returned before io.EOF.
func (c *Console) ReadLine() (string, error) {
	line, err := c.r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (c *Console) Println(a ...any) { fmt.Fprintln(c.w, a...) }

func (c *Console) Print(a ...any) { fmt.Fprint(c.w, a...) }
