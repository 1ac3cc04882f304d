package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// eventRepo implements EventRepo with raw SQL.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO answer_events
			(sequence, timestamp, run_id, mode, quest_id, level, scenario, correct, attempts, points)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum, nowMillis(), data.RunID, data.Mode, data.QuestID, data.Level,
		data.Scenario, data.Correct, data.Attempts, data.Points,
	)
	if err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) LevelStats(ctx context.Context) ([]LevelStats, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT level, COUNT(*), COALESCE(SUM(correct), 0), COALESCE(SUM(points), 0)
		FROM answer_events
		GROUP BY level
		ORDER BY level`,
	)
	if err != nil {
		return nil, fmt.Errorf("query level stats: %w", err)
	}
	defer rows.Close()

	var stats []LevelStats
	for rows.Next() {
		var s LevelStats
		if err := rows.Scan(&s.Level, &s.Answered, &s.Correct, &s.Points); err != nil {
			return nil, fmt.Errorf("scan level stats: %w", err)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

func nowMillis() int64 {
	return time.Now().UnixMilli()
}
