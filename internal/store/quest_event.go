package store

import (
	"context"
	"fmt"
)

func (r *eventRepo) AppendQuestEvent(ctx context.Context, data QuestEventData) error {
	if data.Action != QuestStarted && data.Action != QuestCompleted {
		return fmt.Errorf("unknown quest action %q", data.Action)
	}

	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO quest_events (sequence, timestamp, run_id, quest_id, action, progress)
		VALUES (?, ?, ?, ?, ?, ?)`,
		seqNum, nowMillis(), data.RunID, data.QuestID, data.Action, data.Progress,
	)
	if err != nil {
		return fmt.Errorf("save quest event: %w", err)
	}
	return nil
}

func (r *eventRepo) Summary(ctx context.Context) (*Summary, error) {
	var s Summary
	err := r.db.QueryRowContext(ctx,
		`SELECT
			(SELECT COUNT(DISTINCT run_id) FROM (
				SELECT run_id FROM answer_events
				UNION SELECT run_id FROM quest_events
				UNION SELECT run_id FROM badge_events)),
			(SELECT COUNT(*) FROM quest_events WHERE action = ?),
			(SELECT COUNT(*) FROM quest_events WHERE action = ?),
			(SELECT COUNT(*) FROM badge_events)`,
		QuestStarted, QuestCompleted,
	).Scan(&s.Runs, &s.QuestsStarted, &s.QuestsCompleted, &s.Badges)
	if err != nil {
		return nil, fmt.Errorf("query summary: %w", err)
	}

	s.Levels, err = r.LevelStats(ctx)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
