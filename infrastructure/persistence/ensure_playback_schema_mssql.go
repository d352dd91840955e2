package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// EnsurePlaybackSchemaMSSQL is the SQL Server counterpart of
// EnsurePlaybackSchema.
func EnsurePlaybackSchemaMSSQL(db *sql.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ddl := `IF NOT EXISTS (SELECT 1 FROM sys.tables WHERE name = 'watch_progress')
	CREATE TABLE dbo.[watch_progress] (
		id BIGINT IDENTITY(1,1) PRIMARY KEY,
		viewer_id NVARCHAR(64) NOT NULL,
		episode_id NVARCHAR(64) NOT NULL,
		progress_seconds INT NOT NULL DEFAULT 0,
		completed BIT NOT NULL DEFAULT 0,
		last_watched_at DATETIME2 NOT NULL,
		created_at DATETIME2 NOT NULL,
		updated_at DATETIME2 NOT NULL,
		CONSTRAINT watch_progress_viewer_episode_key UNIQUE (viewer_id, episode_id)
	)`
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("ensuring watch_progress schema failed: %w", err)
	}
	return nil
}
