package questionbank

// Option is one selectable answer of a question.
type Option struct {
	ID      string
	Command string
}

// IncorrectFeedback is shown after a wrong answer. Nil pointer fields were
// absent in the source, which is distinct from an explicitly empty string.
type IncorrectFeedback struct {
	Command    *string
	Definition string
	Analogy    *string
	Example    *string
	Retry      bool
}

// Feedback holds the messages for both outcomes of a question.
type Feedback struct {
	Correct   string
	Incorrect *IncorrectFeedback // nil when the source had no incorrect block
}

// Question is a single multiple-choice scenario. Questions are never mutated
// after loading; the Bank hands out deep copies.
type Question struct {
	Level    Level
	Scenario string
	Options  []Option
	Correct  string
	Feedback Feedback
}

// clone returns a deep copy so callers cannot reach the bank's storage.
func (q Question) clone() Question {
	c := q
	c.Options = append([]Option(nil), q.Options...)
	if q.Feedback.Incorrect != nil {
		inc := *q.Feedback.Incorrect
		inc.Command = cloneString(inc.Command)
		inc.Analogy = cloneString(inc.Analogy)
		inc.Example = cloneString(inc.Example)
		c.Feedback.Incorrect = &inc
	}
	return c
}

// CorrectOption returns the option whose id matches Correct.
func (q Question) CorrectOption() (Option, bool) {
	for _, o := range q.Options {
		if equalID(o.ID, q.Correct) {
			return o, true
		}
	}
	return Option{}, false
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
