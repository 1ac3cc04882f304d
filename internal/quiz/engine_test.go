package quiz

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/abhisek/gitquest/internal/questionbank"
)

// scriptedConsole replays canned answers and records everything printed.
type scriptedConsole struct {
	answers []string
	reads   int
	out     strings.Builder
}

func (c *scriptedConsole) ReadLine() (string, error) {
	if c.reads >= len(c.answers) {
		return "", io.EOF
	}
	a := c.answers[c.reads]
	c.reads++
	return a, nil
}

func (c *scriptedConsole) Println(a ...any) {
	c.out.WriteString(fmt.Sprintln(a...))
}

func (c *scriptedConsole) Print(a ...any) {
	c.out.WriteString(fmt.Sprint(a...))
}

func strPtr(s string) *string { return &s }

func testQuestion(retry bool) questionbank.Question {
	return questionbank.Question{
		Level:    questionbank.LevelBeginner,
		Scenario: "Save staged changes to history.",
		Options: []questionbank.Option{
			{ID: "a", Command: "git push"},
			{ID: "b", Command: "git commit"},
		},
		Correct: "b",
		Feedback: questionbank.Feedback{
			Correct: "Great, you Git it!",
			Incorrect: &questionbank.IncorrectFeedback{
				Command:    strPtr("git commit -m"),
				Definition: "Records staged changes.",
				Example:    strPtr("Like sealing a folder."),
				Retry:      retry,
			},
		},
	}
}

func TestAskQuestion_CorrectFirstTry(t *testing.T) {
	c := &scriptedConsole{answers: []string{"  B  "}}
	res, err := NewEngine(c).AskQuestion(testQuestion(true))
	if err != nil {
		t.Fatalf("AskQuestion: %v", err)
	}
	if !res.Correct || res.Attempts != 1 {
		t.Errorf("result = %+v, want correct after 1 attempt", res)
	}
	out := c.out.String()
	if !strings.Contains(out, "Great, you Git it!") {
		t.Error("missing correct message")
	}
	if strings.Contains(out, "Incorrect!") {
		t.Error("unexpected incorrect indicator")
	}
}

func TestAskQuestion_RetryThenCorrect(t *testing.T) {
	c := &scriptedConsole{answers: []string{"a", "b"}}
	res, err := NewEngine(c).AskQuestion(testQuestion(true))
	if err != nil {
		t.Fatalf("AskQuestion: %v", err)
	}
	if !res.Correct || res.Attempts != 2 {
		t.Errorf("result = %+v, want correct after 2 attempts", res)
	}

	out := c.out.String()
	for _, want := range []string{
		"Incorrect!",
		"Correct command: git commit -m",
		"Records staged changes.",
		"Like sealing a folder.",
		"Try again!",
		"Great, you Git it!",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if n := strings.Count(out, "Save staged changes to history."); n != 1 {
		t.Errorf("scenario shown %d times, want 1", n)
	}
}

func TestAskQuestion_NoRetry(t *testing.T) {
	c := &scriptedConsole{answers: []string{"a", "b"}}
	res, err := NewEngine(c).AskQuestion(testQuestion(false))
	if err != nil {
		t.Fatalf("AskQuestion: %v", err)
	}
	if res.Correct || res.Attempts != 1 {
		t.Errorf("result = %+v, want incorrect after exactly 1 attempt", res)
	}
	if c.reads != 1 {
		t.Errorf("reads = %d, want 1", c.reads)
	}
	out := c.out.String()
	if !strings.Contains(out, "Records staged changes.") {
		t.Error("feedback definition not revealed")
	}
	if strings.Contains(out, "Try again!") {
		t.Error("should not prompt for retry")
	}
}

func TestAskQuestion_NoIncorrectFeedback(t *testing.T) {
	q := testQuestion(true)
	q.Feedback.Incorrect = nil
	c := &scriptedConsole{answers: []string{"a", "b"}}

	res, err := NewEngine(c).AskQuestion(q)
	if err != nil {
		t.Fatalf("AskQuestion: %v", err)
	}
	if res.Correct || res.Attempts != 1 {
		t.Errorf("result = %+v, want single failed attempt", res)
	}
}

func TestAskQuestion_OptionalFeedbackOmitted(t *testing.T) {
	q := testQuestion(false)
	q.Feedback.Incorrect.Command = nil
	q.Feedback.Incorrect.Example = nil
	c := &scriptedConsole{answers: []string{"a"}}

	if _, err := NewEngine(c).AskQuestion(q); err != nil {
		t.Fatalf("AskQuestion: %v", err)
	}
	out := c.out.String()
	if strings.Contains(out, "Correct command:") {
		t.Error("absent command should not be printed")
	}
	if !strings.Contains(out, "Records staged changes.") {
		t.Error("definition should always be printed")
	}
}

func TestAskQuestion_ReadErrorEndsQuestion(t *testing.T) {
	c := &scriptedConsole{answers: []string{"a"}}
	res, err := NewEngine(c).AskQuestion(testQuestion(true))
	if !errors.Is(err, io.EOF) {
		t.Fatalf("err = %v, want io.EOF", err)
	}
	if res.Correct || res.Attempts != 1 {
		t.Errorf("result = %+v, want one failed attempt", res)
	}
}

func TestAskQuestion_PracticeCap(t *testing.T) {
	// Practice drills even when the question itself disallows retries.
	c := &scriptedConsole{answers: []string{"a", "c", "a", "x", "a", "b"}}
	res, err := NewEngine(c, WithMode(ModePractice)).AskQuestion(testQuestion(false))
	if err != nil {
		t.Fatalf("AskQuestion: %v", err)
	}
	if res.Correct || !res.Revealed || res.Attempts != MaxPracticeAttempts {
		t.Errorf("result = %+v, want revealed after %d attempts", res, MaxPracticeAttempts)
	}
	if c.reads != MaxPracticeAttempts {
		t.Errorf("reads = %d, want %d", c.reads, MaxPracticeAttempts)
	}
	if !strings.Contains(c.out.String(), "The answer was: git commit") {
		t.Error("correct command not revealed")
	}
}

func TestAskQuestion_PracticeCorrectBeforeCap(t *testing.T) {
	c := &scriptedConsole{answers: []string{"a", "a", "B"}}
	res, err := NewEngine(c, WithMode(ModePractice)).AskQuestion(testQuestion(false))
	if err != nil {
		t.Fatalf("AskQuestion: %v", err)
	}
	if !res.Correct || res.Revealed || res.Attempts != 3 {
		t.Errorf("result = %+v, want correct on attempt 3", res)
	}
}

func TestIsCorrect(t *testing.T) {
	tests := []struct {
		answer, correct string
		want            bool
	}{
		{"b", "b", true},
		{" B\n", "b", true},
		{"b", "B", true},
		{"a", "b", false},
		{"", "b", false},
		{"   ", "", false},
	}
	for _, tt := range tests {
		if got := IsCorrect(tt.answer, tt.correct); got != tt.want {
			t.Errorf("IsCorrect(%q, %q) = %v, want %v", tt.answer, tt.correct, got, tt.want)
		}
	}
}
