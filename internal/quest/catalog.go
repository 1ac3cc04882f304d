package quest

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed data/quests.yaml
var defaultQuests []byte

// ErrUnknownQuest is returned when a quest id is not in the catalog.
var ErrUnknownQuest = errors.New("unknown quest")

// Catalog holds all quests and tracks the single active one.
type Catalog struct {
	quests   []*Quest
	index    map[string]*Quest
	active   *Quest
	progress float64
}

// NewCatalog builds a catalog from quests. Later duplicates of an id are
// rejected.
func NewCatalog(quests []Quest) (*Catalog, error) {
	c := &Catalog{index: make(map[string]*Quest, len(quests))}
	for i := range quests {
		q := quests[i].clone()
		q.ID = strings.TrimSpace(q.ID)
		if q.ID == "" {
			return nil, fmt.Errorf("quest %d: missing id", i)
		}
		if _, dup := c.index[q.ID]; dup {
			return nil, fmt.Errorf("quest %d: duplicate id %q", i, q.ID)
		}
		c.quests = append(c.quests, &q)
		c.index[q.ID] = &q
	}
	return c, nil
}

type questFile struct {
	Quests []struct {
		ID          string   `yaml:"id"`
		Name        string   `yaml:"name"`
		Description string   `yaml:"description"`
		Difficulty  int      `yaml:"difficulty"`
		Badge       string   `yaml:"badge"`
		Modules     []string `yaml:"modules"`
	} `yaml:"quests"`
}

// LoadCatalog reads a YAML quest catalog.
func LoadCatalog(r io.Reader) (*Catalog, error) {
	var f questFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("decode quests: %w", err)
	}

	quests := make([]Quest, 0, len(f.Quests))
	for _, raw := range f.Quests {
		q := Quest{
			ID:              raw.ID,
			Name:            raw.Name,
			Description:     raw.Description,
			DifficultyLevel: raw.Difficulty,
			BadgeID:         raw.Badge,
		}
		for _, m := range raw.Modules {
			q.AddLearningModule(m)
		}
		quests = append(quests, q)
	}
	return NewCatalog(quests)
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := LoadCatalog(bytes.NewReader(defaultQuests))
	if err != nil {
		panic(fmt.Sprintf("quest: embedded catalog: %v", err))
	}
	return c
}

// Start makes the quest with id the active one, replacing any active quest
// without completing it. An unknown id leaves the catalog untouched.
func (c *Catalog) Start(id string) error {
	q, ok := c.index[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownQuest, id)
	}
	c.active = q
	return nil
}

// SetProgress records progress on the active quest. Any value is accepted;
// range checks are the caller's business. It reports false when no quest
// is active.
func (c *Catalog) SetProgress(v float64) bool {
	if c.active == nil {
		return false
	}
	c.progress = v
	return true
}

// Progress returns the active quest's progress, zero when idle.
func (c *Catalog) Progress() float64 { return c.progress }

// Active returns the active quest.
func (c *Catalog) Active() (*Quest, bool) {
	return c.active, c.active != nil
}

// Complete marks the active quest completed, clears the active reference
// and resets progress. It reports false when no quest is active.
func (c *Catalog) Complete() bool {
	if c.active == nil {
		return false
	}
	c.active.Completed = true
	c.active = nil
	c.progress = 0
	return true
}

// State returns the lifecycle state of the quest with id.
func (c *Catalog) State(id string) State {
	q, ok := c.index[id]
	switch {
	case !ok:
		return StateNotStarted
	case q == c.active:
		return StateActive
	case q.Completed:
		return StateCompleted
	default:
		return StateNotStarted
	}
}

// Get returns the catalog's quest with id. Structural edits through the
// returned pointer are visible to the catalog.
func (c *Catalog) Get(id string) (*Quest, bool) {
	q, ok := c.index[id]
	return q, ok
}

// All returns copies of every quest in catalog order.
func (c *Catalog) All() []Quest {
	return c.filter(func(*Quest) bool { return true })
}

// ByCompletion returns copies of the quests whose completion flag is done.
func (c *Catalog) ByCompletion(done bool) []Quest {
	return c.filter(func(q *Quest) bool { return q.Completed == done })
}

// ByDifficulty returns copies of the quests at difficulty.
func (c *Catalog) ByDifficulty(difficulty int) []Quest {
	return c.filter(func(q *Quest) bool { return q.DifficultyLevel == difficulty })
}

// Len returns the number of quests.
func (c *Catalog) Len() int { return len(c.quests) }

// Restore marks the listed quests completed and returns how many were
// found. Unknown ids are skipped.
func (c *Catalog) Restore(completedIDs []string) int {
	n := 0
	for _, id := range completedIDs {
		if q, ok := c.index[id]; ok {
			q.Completed = true
			n++
		}
	}
	return n
}

func (c *Catalog) filter(keep func(*Quest) bool) []Quest {
	out := make([]Quest, 0, len(c.quests))
	for _, q := range c.quests {
		if keep(q) {
			out = append(out, q.clone())
		}
	}
	return out
}
