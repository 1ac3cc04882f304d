package game

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Input validation errors. They are shown to the learner and the prompt
// is repeated.
var (
	ErrEmptyInput = errors.New("please enter a choice")
	ErrOutOfRange = errors.New("selection out of range")
)

// MenuChoice is an entry of the main menu.
type MenuChoice int

const (
	ChoiceQuest MenuChoice = iota + 1
	ChoiceBadges
	ChoiceGlossary
	ChoiceExit
)

// Label returns the menu text for the choice.
func (c MenuChoice) Label() string {
	switch c {
	case ChoiceQuest:
		return "Start or resume a quest"
	case ChoiceBadges:
		return "View badges"
	case ChoiceGlossary:
		return "View glossary"
	case ChoiceExit:
		return "Exit"
	default:
		return fmt.Sprintf("choice(%d)", int(c))
	}
}

var menuChoices = []MenuChoice{ChoiceQuest, ChoiceBadges, ChoiceGlossary, ChoiceExit}

// Sentinel commands accepted at any menu prompt.
const (
	sentinelBack = "back"
	sentinelExit = "exit"
)

// input classifies one line typed at a prompt.
type input struct {
	text string
	back bool
	exit bool
}

func readInput(line string) (input, error) {
	text := strings.TrimSpace(line)
	if text == "" {
		return input{}, ErrEmptyInput
	}
	switch strings.ToLower(text) {
	case sentinelBack:
		return input{back: true}, nil
	case sentinelExit:
		return input{exit: true}, nil
	}
	return input{text: text}, nil
}

// parseSelection turns a 1-based number into an index below n.
func parseSelection(text string, n int) (int, error) {
	i, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrOutOfRange, text)
	}
	if i < 1 || i > n {
		return 0, fmt.Errorf("%w: choose 1 to %d", ErrOutOfRange, n)
	}
	return i - 1, nil
}

// ParseMenuChoice interprets a main menu line. The exit sentinel selects
// ChoiceExit; back has nowhere to go and is reported as ErrOutOfRange.
func ParseMenuChoice(line string) (MenuChoice, error) {
	in, err := readInput(line)
	if err != nil {
		return 0, err
	}
	switch {
	case in.exit:
		return ChoiceExit, nil
	case in.back:
		return 0, fmt.Errorf("%w: already at the main menu", ErrOutOfRange)
	}
	i, err := parseSelection(in.text, len(menuChoices))
	if err != nil {
		return 0, err
	}
	return menuChoices[i], nil
}
