package glossary

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed data/glossary.yaml
var defaultGlossary []byte

// Entry explains one git command.
type Entry struct {
	Command    string `yaml:"command"`
	Definition string `yaml:"definition"`
	Example    string `yaml:"example"`
	Category   string `yaml:"category"`
}

// Glossary is a read-only set of entries keyed by command.
type Glossary struct {
	entries []Entry
	index   map[string]int
}

// Load reads a YAML glossary. Entries without a command are skipped; a
// repeated command keeps its first definition.
func Load(r io.Reader) (*Glossary, error) {
	var doc struct {
		Entries []Entry `yaml:"entries"`
	}
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode glossary: %w", err)
	}

	g := &Glossary{index: make(map[string]int, len(doc.Entries))}
	for _, e := range doc.Entries {
		key := normalize(e.Command)
		if key == "" {
			continue
		}
		if _, dup := g.index[key]; dup {
			continue
		}
		e.Command = strings.TrimSpace(e.Command)
		g.index[key] = len(g.entries)
		g.entries = append(g.entries, e)
	}
	return g, nil
}

// Default returns the built-in glossary.
func Default() *Glossary {
	g, err := Load(bytes.NewReader(defaultGlossary))
	if err != nil {
		panic(fmt.Sprintf("glossary: embedded data: %v", err))
	}
	return g
}

// Len returns the number of entries.
func (g *Glossary) Len() int { return len(g.entries) }

// All returns every entry in file order.
func (g *Glossary) All() []Entry { return slices.Clone(g.entries) }

// Lookup finds the entry for command, ignoring case and surrounding space.
// The leading "git" may be omitted.
func (g *Glossary) Lookup(command string) (Entry, bool) {
	key := normalize(command)
	if i, ok := g.index[key]; ok {
		return g.entries[i], true
	}
	if i, ok := g.index["git "+key]; ok && key != "" {
		return g.entries[i], true
	}
	return Entry{}, false
}

// Search returns the entries whose command or definition contains keyword,
// case-insensitively. An empty keyword matches everything.
func (g *Glossary) Search(keyword string) []Entry {
	kw := strings.ToLower(strings.TrimSpace(keyword))
	var out []Entry
	for _, e := range g.entries {
		if strings.Contains(strings.ToLower(e.Command), kw) ||
			strings.Contains(strings.ToLower(e.Definition), kw) {
			out = append(out, e)
		}
	}
	return out
}

// Categories returns the distinct categories, sorted.
func (g *Glossary) Categories() []string {
	var cats []string
	for _, e := range g.entries {
		if e.Category != "" && !slices.Contains(cats, e.Category) {
			cats = append(cats, e.Category)
		}
	}
	slices.Sort(cats)
	return cats
}

// ByCategory returns the entries in category, ignoring case.
func (g *Glossary) ByCategory(category string) []Entry {
	var out []Entry
	for _, e := range g.entries {
		if strings.EqualFold(e.Category, strings.TrimSpace(category)) {
			out = append(out, e)
		}
	}
	return out
}

func normalize(command string) string {
	return strings.Join(strings.Fields(strings.ToLower(command)), " ")
}
