package badges

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/abhisek/gitquest/internal/store"
)

// Engine tracks badge points and decides which badges are earned.
type Engine struct {
	badges     []*Badge
	index      map[string]*Badge
	thresholds Thresholds
	eventRepo  store.EventRepo
	runID      string
	now        func() time.Time

	// SessionAwards accumulates badges earned during the current run.
	SessionAwards []Badge
}

// Option configures an Engine.
type Option func(*Engine)

// WithThresholds overrides the milestone thresholds.
func WithThresholds(t Thresholds) Option {
	return func(e *Engine) { e.thresholds = t }
}

// WithEventRepo records awards in repo, tagged with runID.
func WithEventRepo(repo store.EventRepo, runID string) Option {
	return func(e *Engine) {
		e.eventRepo = repo
		e.runID = runID
	}
}

// WithClock sets the time source used for award dates.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// NewEngine creates an Engine over catalog. A nil catalog uses DefaultBadges.
// Badges with a duplicate id are dropped.
func NewEngine(catalog []Badge, opts ...Option) *Engine {
	if catalog == nil {
		catalog = DefaultBadges()
	}
	e := &Engine{
		index:      make(map[string]*Badge, len(catalog)),
		thresholds: DefaultThresholds(),
		now:        time.Now,
	}
	for _, b := range catalog {
		if _, dup := e.index[b.ID]; dup {
			continue
		}
		b.PointsEarned = clamp(b.PointsEarned, b.MaxPoints)
		e.badges = append(e.badges, &b)
		e.index[b.ID] = &b
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Get returns a copy of the badge with id.
func (e *Engine) Get(id string) (Badge, bool) {
	b, ok := e.index[id]
	if !ok {
		return Badge{}, false
	}
	return *b, true
}

// All returns copies of every badge in catalog order.
func (e *Engine) All() []Badge {
	out := make([]Badge, len(e.badges))
	for i, b := range e.badges {
		out[i] = *b
	}
	return out
}

// Earned returns copies of the earned badges in catalog order.
func (e *Engine) Earned() []Badge {
	var out []Badge
	for _, b := range e.badges {
		if b.Earned() {
			out = append(out, *b)
		}
	}
	return out
}

// HasEarned reports whether the badge with id is earned.
func (e *Engine) HasEarned(id string) bool {
	b, ok := e.index[id]
	return ok && b.Earned()
}

// ForQuest returns the badges fed by questID that are not yet earned.
func (e *Engine) ForQuest(questID string) []Badge {
	var out []Badge
	for _, b := range e.badges {
		if b.QuestID == questID && !b.Earned() {
			out = append(out, *b)
		}
	}
	return out
}

// CheckEligibility returns the milestone badges newly qualifying for the
// given counts. Badges already earned are never returned.
func (e *Engine) CheckEligibility(completedQuests, glossaryLookups int) []Badge {
	rules := []struct {
		id string
		ok bool
	}{
		{GitStarter, completedQuests >= e.thresholds.StarterQuests},
		{QuestMaster, completedQuests >= e.thresholds.MasterQuests},
		{GlossaryGuru, glossaryLookups >= e.thresholds.GuruLookups},
	}

	var out []Badge
	for _, r := range rules {
		if !r.ok {
			continue
		}
		if b, ok := e.index[r.id]; ok && !b.Earned() {
			out = append(out, *b)
		}
	}
	return out
}

// AddPoints adds delta to the badge's points, clamped at its cap. Unknown
// ids and non-positive deltas are ignored. Reaching the cap for the first
// time earns the badge; the return value reports that transition.
func (e *Engine) AddPoints(ctx context.Context, id string, delta int) bool {
	b, ok := e.index[id]
	if !ok || delta <= 0 {
		return false
	}
	b.PointsEarned = clamp(b.PointsEarned+delta, b.MaxPoints)
	if b.PointsEarned < b.MaxPoints || b.Earned() {
		return false
	}
	e.earn(ctx, b, fmt.Sprintf("Collected %d points", b.MaxPoints))
	return true
}

// Award explicitly earns the badge with id, filling its points. It reports
// false for an unknown or already earned badge.
func (e *Engine) Award(ctx context.Context, id string) bool {
	b, ok := e.index[id]
	if !ok || b.Earned() {
		return false
	}
	b.PointsEarned = b.MaxPoints
	e.earn(ctx, b, b.Description)
	return true
}

// Evaluate awards every milestone badge the counts qualify for and returns
// the newly earned ones.
func (e *Engine) Evaluate(ctx context.Context, completedQuests, glossaryLookups int) []Badge {
	var awarded []Badge
	for _, b := range e.CheckEligibility(completedQuests, glossaryLookups) {
		if e.Award(ctx, b.ID) {
			awarded = append(awarded, *e.index[b.ID])
		}
	}
	return awarded
}

// Restore loads persisted badge state. Ids in unlocked that carry no date
// in states are marked earned now. Unknown ids are ignored.
func (e *Engine) Restore(unlocked []string, states map[string]State) {
	for id, st := range states {
		b, ok := e.index[id]
		if !ok {
			continue
		}
		b.PointsEarned = clamp(st.Points, b.MaxPoints)
		if st.DateEarned != nil {
			d := *st.DateEarned
			b.DateEarned = &d
		}
	}
	for _, id := range unlocked {
		b, ok := e.index[id]
		if !ok || b.Earned() {
			continue
		}
		now := e.now()
		b.DateEarned = &now
		b.PointsEarned = b.MaxPoints
	}
}

// States returns the persisted view of every badge that has points or is
// earned.
func (e *Engine) States() map[string]State {
	out := make(map[string]State)
	for _, b := range e.badges {
		if b.PointsEarned == 0 && !b.Earned() {
			continue
		}
		st := State{Points: b.PointsEarned}
		if b.DateEarned != nil {
			d := *b.DateEarned
			st.DateEarned = &d
		}
		out[b.ID] = st
	}
	return out
}

func (e *Engine) earn(ctx context.Context, b *Badge, reason string) {
	now := e.now()
	b.DateEarned = &now
	e.SessionAwards = append(e.SessionAwards, *b)
	e.persist(ctx, b, reason)
}

func (e *Engine) persist(ctx context.Context, b *Badge, reason string) {
	if e.eventRepo == nil {
		return
	}
	err := e.eventRepo.AppendBadgeEvent(ctx, store.BadgeEventData{
		RunID:     e.runID,
		BadgeID:   b.ID,
		BadgeName: b.Name,
		Points:    b.PointsEarned,
		Reason:    reason,
	})
	if err != nil {
		slog.Warn("record badge award", "badge", b.ID, "error", err)
	}
}

func clamp(points, limit int) int {
	return max(0, min(points, limit))
}
