package questionbank

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/mod/semver"
)

// SupportedMajor is the only bank format major version this loader understands.
const SupportedMajor = "v1"

//go:embed data/questions.json
var defaultBankJSON []byte

var (
	errDuplicateOption = errors.New("duplicate option id")
	errCorrectMissing  = errors.New("correct option id not among options")
)

// Warning describes a problem found while loading. Index is the position of
// the offending record, or -1 for problems with the resource as a whole.
type Warning struct {
	Index int
	Err   error
}

func (w Warning) Error() string {
	if w.Index < 0 {
		return w.Err.Error()
	}
	return fmt.Sprintf("question %d: %v", w.Index, w.Err)
}

func (w Warning) Unwrap() error { return w.Err }

// Bank is the immutable, in-memory list of loaded questions.
type Bank struct {
	version   string
	questions []Question
}

// NewBank builds a bank from already-constructed questions.
func NewBank(questions []Question) *Bank {
	b := &Bank{version: SupportedMajor + ".0.0"}
	for _, q := range questions {
		b.questions = append(b.questions, q.clone())
	}
	return b
}

// Version returns the declared format version of the resource.
func (b *Bank) Version() string { return b.version }

// Len returns the number of loaded questions.
func (b *Bank) Len() int { return len(b.questions) }

// All returns copies of every question in source order.
func (b *Bank) All() []Question {
	out := make([]Question, len(b.questions))
	for i, q := range b.questions {
		out[i] = q.clone()
	}
	return out
}

// ByLevel returns copies of the questions of the given level in source order.
func (b *Bank) ByLevel(level Level) []Question {
	var out []Question
	for _, q := range b.questions {
		if q.Level == level {
			out = append(out, q.clone())
		}
	}
	return out
}

// Default loads the question bank bundled with the binary.
func Default() (*Bank, []Warning) {
	return Load(bytes.NewReader(defaultBankJSON))
}

// LoadFile loads a bank from path. A missing or unreadable file yields an
// empty bank and one warning.
func LoadFile(path string) (*Bank, []Warning) {
	f, err := os.Open(path)
	if err != nil {
		w := Warning{Index: -1, Err: fmt.Errorf("open question bank: %w", err)}
		slog.Warn("question bank unavailable", "path", path, "error", err)
		return &Bank{}, []Warning{w}
	}
	defer f.Close()
	return Load(f)
}

// document is the top-level shape of the bank resource. Records stay raw so
// each one can be validated and skipped on its own.
type document struct {
	Version   string            `json:"version"`
	Questions []json.RawMessage `json:"questions"`
}

type rawOption struct {
	ID      string `json:"id"`
	Command string `json:"command"`
}

type rawIncorrect struct {
	Command    *string `json:"command"`
	Definition string  `json:"definition"`
	Analogy    *string `json:"analogy"`
	Example    *string `json:"example"`
	Retry      bool    `json:"retry"`
}

type rawFeedback struct {
	Correct   string        `json:"correct"`
	Incorrect *rawIncorrect `json:"incorrect"`
}

type rawQuestion struct {
	Level    string      `json:"level"`
	Scenario string      `json:"scenario"`
	Options  []rawOption `json:"options"`
	Correct  string      `json:"correct"`
	Feedback rawFeedback `json:"feedback"`
}

// Load parses a bank resource. Malformed records are skipped and reported as
// warnings; a resource that cannot be read or decoded at all yields an empty
// bank. Load never returns an error.
func Load(r io.Reader) (*Bank, []Warning) {
	data, err := io.ReadAll(r)
	if err != nil {
		slog.Warn("question bank unreadable", "error", err)
		return &Bank{}, []Warning{{Index: -1, Err: fmt.Errorf("read question bank: %w", err)}}
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		slog.Warn("question bank is not valid JSON", "error", err)
		return &Bank{}, []Warning{{Index: -1, Err: fmt.Errorf("decode question bank: %w", err)}}
	}

	var warnings []Warning
	bank := &Bank{version: doc.Version}
	if !semver.IsValid(doc.Version) || semver.Major(doc.Version) != SupportedMajor {
		w := Warning{Index: -1, Err: fmt.Errorf("unsupported bank version %q, reading as %s", doc.Version, SupportedMajor)}
		slog.Warn("question bank version", "version", doc.Version, "assumed", SupportedMajor)
		warnings = append(warnings, w)
	}

	for i, raw := range doc.Questions {
		q, err := parseRecord(raw)
		if err != nil {
			slog.Warn("skipping invalid question", "index", i, "error", err)
			warnings = append(warnings, Warning{Index: i, Err: err})
			continue
		}
		bank.questions = append(bank.questions, q)
	}

	slog.Debug("question bank loaded", "questions", len(bank.questions), "skipped", len(warnings))
	return bank, warnings
}

// parseRecord validates and converts one raw record.
func parseRecord(raw json.RawMessage) (Question, error) {
	if err := validateRecord(raw); err != nil {
		return Question{}, err
	}

	var rq rawQuestion
	if err := json.Unmarshal(raw, &rq); err != nil {
		return Question{}, fmt.Errorf("decode record: %w", err)
	}

	level, err := ParseLevel(rq.Level)
	if err != nil {
		return Question{}, err
	}

	seen := make(map[string]bool, len(rq.Options))
	options := make([]Option, 0, len(rq.Options))
	for _, o := range rq.Options {
		key := strings.ToLower(strings.TrimSpace(o.ID))
		if seen[key] {
			return Question{}, fmt.Errorf("%w: %q", errDuplicateOption, o.ID)
		}
		seen[key] = true
		options = append(options, Option{ID: o.ID, Command: o.Command})
	}
	if !seen[strings.ToLower(strings.TrimSpace(rq.Correct))] {
		return Question{}, fmt.Errorf("%w: %q", errCorrectMissing, rq.Correct)
	}

	q := Question{
		Level:    level,
		Scenario: rq.Scenario,
		Options:  options,
		Correct:  rq.Correct,
		Feedback: Feedback{Correct: rq.Feedback.Correct},
	}
	if inc := rq.Feedback.Incorrect; inc != nil {
		example := inc.Example
		if example == nil {
			example = inc.Analogy
		}
		q.Feedback.Incorrect = &IncorrectFeedback{
			Command:    inc.Command,
			Definition: inc.Definition,
			Analogy:    inc.Analogy,
			Example:    cloneString(example),
			Retry:      inc.Retry,
		}
	}
	return q, nil
}

// equalID compares option ids the way answers are compared.
func equalID(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
