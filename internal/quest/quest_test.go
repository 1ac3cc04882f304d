package quest

import (
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/gitquest/internal/questionbank"
)

func TestStars(t *testing.T) {
	tests := []struct {
		difficulty int
		want       string
	}{
		{1, "*"},
		{3, "***"},
		{5, "*****"},
		{7, "*"},
		{2, "*"},
		{0, "*"},
		{-3, "*"},
	}
	for _, tt := range tests {
		if got := Stars(tt.difficulty); got != tt.want {
			t.Errorf("Stars(%d) = %q, want %q", tt.difficulty, got, tt.want)
		}
	}
}

func TestCompletionStatus(t *testing.T) {
	if got := CompletionStatus(true); got != "Y" {
		t.Errorf("CompletionStatus(true) = %q, want %q", got, "Y")
	}
	if got := CompletionStatus(false); got != "N" {
		t.Errorf("CompletionStatus(false) = %q, want %q", got, "N")
	}
}

func TestLevelForDifficulty(t *testing.T) {
	tests := []struct {
		difficulty int
		want       questionbank.Level
	}{
		{1, questionbank.LevelBeginner},
		{3, questionbank.LevelIntermediate},
		{5, questionbank.LevelAdvanced},
		{4, questionbank.LevelBeginner},
		{0, questionbank.LevelBeginner},
	}
	for _, tt := range tests {
		if got := LevelForDifficulty(tt.difficulty); got != tt.want {
			t.Errorf("LevelForDifficulty(%d) = %q, want %q", tt.difficulty, got, tt.want)
		}
	}
}

func TestLearningModules(t *testing.T) {
	q := &Quest{ID: "q", LearningModules: []string{"init", "add"}}

	q.AddLearningModule("")
	q.AddLearningModule("   \t")
	if len(q.LearningModules) != 2 {
		t.Fatalf("blank module added: %v", q.LearningModules)
	}

	q.AddLearningModule("commit")
	if got := strings.Join(q.LearningModules, ","); got != "init,add,commit" {
		t.Errorf("modules = %q", got)
	}

	if q.RemoveLearningModule("push") {
		t.Error("removing missing module should report false")
	}
	if !q.RemoveLearningModule("add") {
		t.Error("removing present module should report true")
	}
	if got := strings.Join(q.LearningModules, ","); got != "init,commit" {
		t.Errorf("modules after remove = %q", got)
	}
}

func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := NewCatalog([]Quest{
		{ID: "basics", Name: "Basics", DifficultyLevel: 1},
		{ID: "branching", Name: "Branching", DifficultyLevel: 3, BadgeID: "branch-expert"},
		{ID: "remote", Name: "Remote", DifficultyLevel: 5},
	})
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	return c
}

func TestCatalog_StartUnknown(t *testing.T) {
	c := testCatalog(t)
	if err := c.Start("basics"); err != nil {
		t.Fatalf("Start: %v", err)
	}

	err := c.Start("unknown-id")
	if !errors.Is(err, ErrUnknownQuest) {
		t.Fatalf("err = %v, want ErrUnknownQuest", err)
	}
	active, ok := c.Active()
	if !ok || active.ID != "basics" {
		t.Errorf("active quest changed after failed start: %+v", active)
	}
}

func TestCatalog_StartReplacesActive(t *testing.T) {
	c := testCatalog(t)
	_ = c.Start("basics")
	_ = c.Start("remote")

	active, _ := c.Active()
	if active.ID != "remote" {
		t.Errorf("active = %q, want remote", active.ID)
	}
	basics, _ := c.Get("basics")
	if basics.Completed {
		t.Error("replaced quest must not be auto-completed")
	}
	if c.State("basics") != StateNotStarted {
		t.Errorf("State(basics) = %v", c.State("basics"))
	}
	if c.State("remote") != StateActive {
		t.Errorf("State(remote) = %v", c.State("remote"))
	}
}

func TestCatalog_CompleteResetsProgress(t *testing.T) {
	c := testCatalog(t)

	if c.SetProgress(10) {
		t.Error("SetProgress without an active quest should fail")
	}
	if c.Complete() {
		t.Error("Complete without an active quest should fail")
	}

	_ = c.Start("branching")
	if !c.SetProgress(150) {
		t.Fatal("SetProgress should accept out-of-range values")
	}
	if c.Progress() != 150 {
		t.Errorf("Progress = %v, want 150", c.Progress())
	}

	if !c.Complete() {
		t.Fatal("Complete failed")
	}
	if c.Progress() != 0 {
		t.Errorf("Progress after complete = %v, want 0", c.Progress())
	}
	if _, ok := c.Active(); ok {
		t.Error("active reference not cleared")
	}
	if c.SetProgress(50) {
		t.Error("SetProgress after complete should fail until a new start")
	}
	if c.State("branching") != StateCompleted {
		t.Errorf("State = %v, want completed", c.State("branching"))
	}
}

func TestCatalog_Queries(t *testing.T) {
	c := testCatalog(t)
	_ = c.Start("basics")
	c.Complete()

	if got := len(c.ByCompletion(true)); got != 1 {
		t.Errorf("completed = %d, want 1", got)
	}
	if got := len(c.ByCompletion(false)); got != 2 {
		t.Errorf("incomplete = %d, want 2", got)
	}
	if got := c.ByDifficulty(3); len(got) != 1 || got[0].ID != "branching" {
		t.Errorf("ByDifficulty(3) = %+v", got)
	}

	all := c.All()
	all[0].Name = "changed"
	if q, _ := c.Get(all[0].ID); q.Name == "changed" {
		t.Error("All must return copies")
	}
}

func TestCatalog_Restore(t *testing.T) {
	c := testCatalog(t)
	if n := c.Restore([]string{"remote", "nope"}); n != 1 {
		t.Errorf("Restore = %d, want 1", n)
	}
	if c.State("remote") != StateCompleted {
		t.Error("remote should be completed")
	}
}

func TestNewCatalog_Duplicates(t *testing.T) {
	_, err := NewCatalog([]Quest{{ID: "a"}, {ID: "a"}})
	if err == nil {
		t.Fatal("expected duplicate id error")
	}
	_, err = NewCatalog([]Quest{{ID: " "}})
	if err == nil {
		t.Fatal("expected missing id error")
	}
}

func TestLoadCatalog(t *testing.T) {
	src := `
quests:
  - id: one
    name: One
    difficulty: 3
    badge: b1
    modules: [first, "  ", second]
`
	c, err := LoadCatalog(strings.NewReader(src))
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	q, ok := c.Get("one")
	if !ok {
		t.Fatal("quest one missing")
	}
	if q.BadgeID != "b1" || q.DifficultyLevel != 3 {
		t.Errorf("quest = %+v", q)
	}
	if len(q.LearningModules) != 2 {
		t.Errorf("blank module not skipped: %v", q.LearningModules)
	}

	if _, err := LoadCatalog(strings.NewReader("quests: [")); err == nil {
		t.Error("expected decode error")
	}
}

func TestDefault(t *testing.T) {
	c := Default()
	if c.Len() == 0 {
		t.Fatal("default catalog is empty")
	}
	for _, q := range c.All() {
		if len(q.LearningModules) == 0 {
			t.Errorf("quest %q has no learning modules", q.ID)
		}
		if q.Name == "" {
			t.Errorf("quest %q has no name", q.ID)
		}
	}
	if _, ok := c.Get("git-basics"); !ok {
		t.Error("git-basics missing")
	}
}
