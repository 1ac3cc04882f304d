package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// AnswerEventData captures one answered question.
type AnswerEventData struct {
	RunID    string
	Mode     string // "quest" or "practice"
	QuestID  string // empty in practice mode
	Level    string
	Scenario string
	Correct  bool
	Attempts int
	Points   int
}

// Quest event actions.
const (
	QuestStarted   = "start"
	QuestCompleted = "complete"
)

// QuestEventData captures a quest state transition.
type QuestEventData struct {
	RunID    string
	QuestID  string
	Action   string
	Progress float64
}

// BadgeEventData captures a badge award.
type BadgeEventData struct {
	RunID     string
	BadgeID   string
	BadgeName string
	Points    int
	Reason    string
}

// BadgeEventRecord is a persisted badge award.
type BadgeEventRecord struct {
	BadgeEventData
	Sequence  int64
	Timestamp time.Time
}

// LevelStats aggregates answers at one question level.
type LevelStats struct {
	Level    string
	Answered int
	Correct  int
	Points   int
}

// Accuracy returns the fraction of correct answers, 0 when none.
func (s LevelStats) Accuracy() float64 {
	if s.Answered == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Answered)
}

// Summary is the all-time view of the event log.
type Summary struct {
	Runs            int
	QuestsStarted   int
	QuestsCompleted int
	Badges          int
	Levels          []LevelStats
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendAnswerEvent records an answered question.
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error

	// AppendQuestEvent records a quest start or completion.
	AppendQuestEvent(ctx context.Context, data QuestEventData) error

	// AppendBadgeEvent records a badge award.
	AppendBadgeEvent(ctx context.Context, data BadgeEventData) error

	// QueryBadgeEvents returns badge awards, newest first.
	QueryBadgeEvents(ctx context.Context, opts QueryOpts) ([]BadgeEventRecord, error)

	// LevelStats returns answer aggregates per level, ordered by level name.
	LevelStats(ctx context.Context) ([]LevelStats, error)

	// Summary returns all-time counts across every event table.
	Summary(ctx context.Context) (*Summary, error)
}
