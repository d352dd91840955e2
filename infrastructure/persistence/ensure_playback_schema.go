package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// EnsurePlaybackSchema creates the watch_progress table this engine owns.
// Safe to call at startup. The UNIQUE (viewer_id, episode_id) constraint is
// what makes the progress upsert a single atomic insert-or-update.
func EnsurePlaybackSchema(db *sql.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS watch_progress (
			id BIGSERIAL PRIMARY KEY,
			viewer_id TEXT NOT NULL,
			episode_id TEXT NOT NULL,
			progress_seconds INTEGER NOT NULL DEFAULT 0,
			completed BOOLEAN NOT NULL DEFAULT FALSE,
			last_watched_at TIMESTAMPTZ NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL,
			CONSTRAINT watch_progress_viewer_episode_key UNIQUE (viewer_id, episode_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_watch_progress_recent ON watch_progress (viewer_id, last_watched_at DESC)`,
	}

	for _, ddl := range stmts {
		if _, err := db.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("ensuring watch_progress schema failed: %w", err)
		}
	}
	return nil
}
