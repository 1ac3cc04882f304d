package badges

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/gitquest/internal/store"
)

// mockEventRepo implements store.EventRepo for badge tests.
type mockEventRepo struct {
	badgeEvents []store.BadgeEventData
	err         error
}

func (m *mockEventRepo) AppendAnswerEvent(_ context.Context, _ store.AnswerEventData) error {
	return nil
}
func (m *mockEventRepo) AppendQuestEvent(_ context.Context, _ store.QuestEventData) error {
	return nil
}
func (m *mockEventRepo) AppendBadgeEvent(_ context.Context, data store.BadgeEventData) error {
	if m.err != nil {
		return m.err
	}
	m.badgeEvents = append(m.badgeEvents, data)
	return nil
}
func (m *mockEventRepo) QueryBadgeEvents(_ context.Context, _ store.QueryOpts) ([]store.BadgeEventRecord, error) {
	return nil, nil
}
func (m *mockEventRepo) LevelStats(_ context.Context) ([]store.LevelStats, error) {
	return nil, nil
}
func (m *mockEventRepo) Summary(_ context.Context) (*store.Summary, error) {
	return &store.Summary{}, nil
}

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newTestEngine(opts ...Option) *Engine {
	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	return NewEngine(nil, opts...)
}

func TestAddPoints_ClampsAtMax(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()

	for _, delta := range []int{7, 7, 100, 3, 1} {
		e.AddPoints(ctx, "branch-expert", delta)
		b, _ := e.Get("branch-expert")
		assert.GreaterOrEqual(t, b.PointsEarned, 0)
		assert.LessOrEqual(t, b.PointsEarned, b.MaxPoints)
	}

	b, _ := e.Get("branch-expert")
	assert.Equal(t, 30, b.PointsEarned)
	assert.True(t, b.Earned())
}

func TestAddPoints_NoOps(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()
	before := e.All()

	assert.False(t, e.AddPoints(ctx, "git-starter", 0))
	assert.False(t, e.AddPoints(ctx, "git-starter", -5))
	assert.False(t, e.AddPoints(ctx, "no-such-badge", 10))

	assert.Equal(t, before, e.All())
}

func TestAddPoints_DateSetOnce(t *testing.T) {
	clock := fixedNow
	e := NewEngine(nil, WithClock(func() time.Time { return clock }))
	ctx := context.Background()

	assert.False(t, e.AddPoints(ctx, "git-starter", 5))
	b, _ := e.Get("git-starter")
	assert.Nil(t, b.DateEarned)

	assert.True(t, e.AddPoints(ctx, "git-starter", 5))
	b, _ = e.Get("git-starter")
	require.NotNil(t, b.DateEarned)
	assert.Equal(t, fixedNow, *b.DateEarned)

	clock = fixedNow.Add(48 * time.Hour)
	assert.False(t, e.AddPoints(ctx, "git-starter", 5))
	b, _ = e.Get("git-starter")
	assert.Equal(t, fixedNow, *b.DateEarned, "date must not move once earned")
	assert.Len(t, e.SessionAwards, 1)
}

func TestCheckEligibility(t *testing.T) {
	tests := []struct {
		name      string
		completed int
		lookups   int
		want      []string
	}{
		{"nothing", 0, 0, nil},
		{"first quest", 1, 0, []string{GitStarter}},
		{"three quests", 3, 9, []string{GitStarter, QuestMaster}},
		{"guru", 0, 10, []string{GlossaryGuru}},
		{"everything", 5, 12, []string{GitStarter, QuestMaster, GlossaryGuru}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine()
			assert.Equal(t, tt.want, ids(e.CheckEligibility(tt.completed, tt.lookups)))
		})
	}
}

func TestCheckEligibility_NeverReturnsEarned(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()

	awarded := e.Evaluate(ctx, 1, 0)
	assert.Equal(t, []string{GitStarter}, ids(awarded))

	for range 3 {
		for _, b := range e.CheckEligibility(3, 10) {
			assert.False(t, e.HasEarned(b.ID), "returned earned badge %s", b.ID)
		}
	}

	assert.Equal(t, []string{QuestMaster, GlossaryGuru}, ids(e.Evaluate(ctx, 3, 10)))
	assert.Empty(t, e.CheckEligibility(3, 10))
	assert.Empty(t, e.Evaluate(ctx, 3, 10))
}

func TestCustomThresholds(t *testing.T) {
	e := newTestEngine(WithThresholds(Thresholds{StarterQuests: 2, MasterQuests: 4, GuruLookups: 1}))
	assert.Equal(t, []string{GlossaryGuru}, ids(e.CheckEligibility(1, 1)))
}

func TestAward(t *testing.T) {
	repo := &mockEventRepo{}
	e := newTestEngine(WithEventRepo(repo, "run-1"))
	ctx := context.Background()

	assert.False(t, e.Award(ctx, "unknown"))
	assert.True(t, e.Award(ctx, "remote-pro"))
	assert.False(t, e.Award(ctx, "remote-pro"))

	b, _ := e.Get("remote-pro")
	assert.Equal(t, b.MaxPoints, b.PointsEarned)
	require.NotNil(t, b.DateEarned)

	require.Len(t, repo.badgeEvents, 1)
	assert.Equal(t, "remote-pro", repo.badgeEvents[0].BadgeID)
	assert.Equal(t, "run-1", repo.badgeEvents[0].RunID)
}

func TestAward_RepoFailureIsNotFatal(t *testing.T) {
	repo := &mockEventRepo{err: errors.New("disk full")}
	e := newTestEngine(WithEventRepo(repo, "run-1"))

	assert.True(t, e.Award(context.Background(), GitStarter))
	assert.True(t, e.HasEarned(GitStarter))
}

func TestForQuest(t *testing.T) {
	e := newTestEngine()
	assert.Equal(t, []string{"merge-master"}, ids(e.ForQuest("git-merging")))
	e.Award(context.Background(), "merge-master")
	assert.Empty(t, e.ForQuest("git-merging"))
	assert.Empty(t, e.ForQuest("git-basics"))
}

func TestStatesRestore(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine()
	e.AddPoints(ctx, "merge-master", 12)
	e.Award(ctx, GitStarter)

	states := e.States()
	require.Len(t, states, 2)
	assert.Equal(t, 12, states["merge-master"].Points)
	assert.Nil(t, states["merge-master"].DateEarned)

	restored := newTestEngine()
	restored.Restore([]string{GitStarter, GlossaryGuru, "bogus"}, states)

	assert.Equal(t, e.States()["merge-master"], restored.States()["merge-master"])
	assert.True(t, restored.HasEarned(GitStarter))
	assert.True(t, restored.HasEarned(GlossaryGuru), "unlocked id without state is earned")
	assert.False(t, restored.HasEarned("merge-master"))
}

func TestRestore_ClampsPoints(t *testing.T) {
	e := newTestEngine()
	e.Restore(nil, map[string]State{
		GitStarter:  {Points: 999},
		QuestMaster: {Points: -4},
	})
	b, _ := e.Get(GitStarter)
	assert.Equal(t, b.MaxPoints, b.PointsEarned)
	b, _ = e.Get(QuestMaster)
	assert.Equal(t, 0, b.PointsEarned)
}

func TestNewEngine_DropsDuplicates(t *testing.T) {
	e := NewEngine([]Badge{
		{ID: "a", MaxPoints: 5, PointsEarned: 9},
		{ID: "a", MaxPoints: 50},
	})
	all := e.All()
	require.Len(t, all, 1)
	assert.Equal(t, 5, all[0].PointsEarned)
}

func ids(bs []Badge) []string {
	var out []string
	for _, b := range bs {
		out = append(out, b.ID)
	}
	return out
}
