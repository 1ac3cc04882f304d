package store

import (
	"context"
	"database/sql"
	"fmt"
)

// Every event table carries the shared columns: sequence, timestamp (unix
// milliseconds) and run_id, the id of the play run that produced it.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS answer_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence INTEGER NOT NULL UNIQUE,
		timestamp INTEGER NOT NULL,
		run_id TEXT NOT NULL,
		mode TEXT NOT NULL,
		quest_id TEXT NOT NULL DEFAULT '',
		level TEXT NOT NULL,
		scenario TEXT NOT NULL,
		correct INTEGER NOT NULL,
		attempts INTEGER NOT NULL,
		points INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS answer_events_level ON answer_events (level)`,
	`CREATE TABLE IF NOT EXISTS quest_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence INTEGER NOT NULL UNIQUE,
		timestamp INTEGER NOT NULL,
		run_id TEXT NOT NULL,
		quest_id TEXT NOT NULL,
		action TEXT NOT NULL,
		progress REAL NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS badge_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence INTEGER NOT NULL UNIQUE,
		timestamp INTEGER NOT NULL,
		run_id TEXT NOT NULL,
		badge_id TEXT NOT NULL,
		badge_name TEXT NOT NULL,
		points INTEGER NOT NULL,
		reason TEXT NOT NULL
	)`,
}

func migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range migrations {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("exec migration: %w", err)
		}
	}
	return nil
}
