package badgevault

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/gitquest/internal/badges"
	"github.com/abhisek/gitquest/internal/router"
	"github.com/abhisek/gitquest/internal/store"
)

type stubRepo struct {
	records []store.BadgeEventRecord
	err     error
	opts    store.QueryOpts
}

func (r *stubRepo) AppendAnswerEvent(context.Context, store.AnswerEventData) error { return nil }
func (r *stubRepo) AppendQuestEvent(context.Context, store.QuestEventData) error   { return nil }
func (r *stubRepo) AppendBadgeEvent(context.Context, store.BadgeEventData) error   { return nil }
func (r *stubRepo) LevelStats(context.Context) ([]store.LevelStats, error)         { return nil, nil }
func (r *stubRepo) Summary(context.Context) (*store.Summary, error)                { return &store.Summary{}, nil }
func (r *stubRepo) QueryBadgeEvents(_ context.Context, opts store.QueryOpts) ([]store.BadgeEventRecord, error) {
	r.opts = opts
	return r.records, r.err
}

func key(code rune) tea.KeyPressMsg { return tea.KeyPressMsg{Code: code} }

func loaded(t *testing.T, s *BadgeVaultScreen) {
	t.Helper()
	cmd := s.Init()
	if cmd == nil {
		t.Fatal("expected a load command")
	}
	s.Update(cmd())
}

func TestBadgesTab(t *testing.T) {
	e := badges.NewEngine(nil)
	e.Award(context.Background(), badges.GitStarter)
	e.AddPoints(context.Background(), "branch-expert", 15)
	s := New(e, nil)
	if cmd := s.Init(); cmd != nil {
		t.Error("expected no load command without a repo")
	}

	view := s.View(100, 40)
	for _, want := range []string{"1 of 6 badges earned", "Git Starter", "earned", "Branch Expert", "15/30", "locked"} {
		if !strings.Contains(view, want) {
			t.Errorf("badges view missing %q", want)
		}
	}
}

func TestHistoryTab(t *testing.T) {
	repo := &stubRepo{records: []store.BadgeEventRecord{{
		BadgeEventData: store.BadgeEventData{BadgeID: "git-starter", BadgeName: "Git Starter", Points: 10, Reason: "completed 1 quest"},
		Sequence:       1,
		Timestamp:      time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC),
	}}}
	s := New(badges.NewEngine(nil), repo)
	loaded(t, s)
	if repo.opts.Limit != historyLimit {
		t.Errorf("query limit = %d, want %d", repo.opts.Limit, historyLimit)
	}

	s.Update(key(tea.KeyTab))
	if s.selectedTab != tabHistory {
		t.Fatalf("selectedTab = %v, want history", s.selectedTab)
	}
	view := s.View(100, 40)
	for _, want := range []string{"Mar 09, 2024", "Git Starter", "+10", "completed 1 quest"} {
		if !strings.Contains(view, want) {
			t.Errorf("history view missing %q", want)
		}
	}

	s.Update(key(tea.KeyTab))
	if s.selectedTab != tabBadges {
		t.Errorf("tab should wrap back to badges, got %v", s.selectedTab)
	}
}

func TestHistoryEmptyAndError(t *testing.T) {
	s := New(badges.NewEngine(nil), &stubRepo{})
	loaded(t, s)
	s.selectedTab = tabHistory
	if !strings.Contains(s.View(100, 40), "No badges awarded yet") {
		t.Error("expected empty history message")
	}

	s = New(badges.NewEngine(nil), &stubRepo{err: errors.New("disk gone")})
	loaded(t, s)
	s.selectedTab = tabHistory
	if !strings.Contains(s.View(100, 40), "disk gone") {
		t.Error("expected the load error in the history view")
	}
}

func TestScrollBounds(t *testing.T) {
	s := New(badges.NewEngine(nil), nil)
	s.Update(key(tea.KeyUp))
	if s.scrollOffset != 0 {
		t.Errorf("scrollOffset = %d after up at top, want 0", s.scrollOffset)
	}
	for range 20 {
		s.Update(key(tea.KeyDown))
	}
	if want := len(badges.DefaultBadges()) - 1; s.scrollOffset != want {
		t.Errorf("scrollOffset = %d, want %d", s.scrollOffset, want)
	}
}

func TestEscPops(t *testing.T) {
	s := New(badges.NewEngine(nil), nil)
	_, cmd := s.Update(key(tea.KeyEscape))
	if cmd == nil {
		t.Fatal("expected a command on esc")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Errorf("expected PopScreenMsg, got %T", cmd())
	}
}
