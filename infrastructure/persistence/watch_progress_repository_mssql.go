package persistence

import (
	"context"
	"database/sql"
	"time"

	"streamhaven/domain/model"
	"streamhaven/domain/repository"
	"streamhaven/infrastructure/logger"
)

// WatchProgressRepositoryMSSQL is the SQL Server implementation of
// IWatchProgress. The upsert is a single MERGE with HOLDLOCK so concurrent
// pings for the same (viewer, episode) pair serialize instead of racing.
type WatchProgressRepositoryMSSQL struct{ db *sql.DB }

func NewWatchProgressRepositoryMSSQL(db *sql.DB) repository.IWatchProgress {
	return &WatchProgressRepositoryMSSQL{db}
}

func (r *WatchProgressRepositoryMSSQL) Upsert(ctx context.Context, viewerID, episodeID string, progressSeconds int, completed bool) (model.WatchProgressRecord, error) {
	now := time.Now().UTC()
	row := r.db.QueryRowContext(ctx, `MERGE dbo.[watch_progress] WITH (HOLDLOCK) AS target
	USING (SELECT @p1 AS viewer_id, @p2 AS episode_id) AS source
	ON target.viewer_id = source.viewer_id AND target.episode_id = source.episode_id
	WHEN MATCHED THEN UPDATE SET
		progress_seconds = @p3,
		completed        = @p4,
		last_watched_at  = @p5,
		updated_at       = @p5
	WHEN NOT MATCHED THEN INSERT (viewer_id, episode_id, progress_seconds, completed, last_watched_at, created_at, updated_at)
		VALUES (@p1, @p2, @p3, @p4, @p5, @p5, @p5)
	OUTPUT inserted.id, inserted.viewer_id, inserted.episode_id, inserted.progress_seconds, inserted.completed, inserted.last_watched_at, inserted.created_at, inserted.updated_at;`,
		viewerID, episodeID, progressSeconds, completed, now)

	var rec model.WatchProgressRecord
	if err := row.Scan(&rec.ID, &rec.ViewerID, &rec.EpisodeID, &rec.ProgressSeconds, &rec.Completed, &rec.LastWatchedAt, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		logger.GetLogger().WithField("error", err).Error("mssql: watch progress upsert failed")
		return rec, err
	}
	return rec, nil
}

func (r *WatchProgressRepositoryMSSQL) Get(ctx context.Context, viewerID, episodeID string) (*model.WatchProgressRecord, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, viewer_id, episode_id, progress_seconds, completed, last_watched_at, created_at, updated_at
	FROM dbo.[watch_progress]
	WHERE viewer_id = @p1 AND episode_id = @p2`, viewerID, episodeID)
	rec := &model.WatchProgressRecord{}
	if err := row.Scan(&rec.ID, &rec.ViewerID, &rec.EpisodeID, &rec.ProgressSeconds, &rec.Completed, &rec.LastWatchedAt, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.GetLogger().WithField("error", err).Error("mssql: watch progress lookup failed")
		return nil, err
	}
	return rec, nil
}

func (r *WatchProgressRepositoryMSSQL) ListRecent(ctx context.Context, viewerID string, limit int) ([]model.ContinueWatchingEntry, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT TOP (@p2) wp.episode_id, e.title, e.episode_order, e.series_id, s.title, wp.progress_seconds, wp.completed, wp.last_watched_at
	FROM dbo.[watch_progress] wp
	JOIN dbo.[episodes] e ON e.id = wp.episode_id
	JOIN dbo.[series] s ON s.id = e.series_id
	WHERE wp.viewer_id = @p1
	ORDER BY wp.last_watched_at DESC`, viewerID, limit)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("mssql: continue watching query failed")
		return nil, err
	}
	defer rows.Close()

	var entries []model.ContinueWatchingEntry
	for rows.Next() {
		var entry model.ContinueWatchingEntry
		if err := rows.Scan(&entry.EpisodeID, &entry.EpisodeTitle, &entry.EpisodeOrder, &entry.SeriesID, &entry.SeriesTitle, &entry.ProgressSeconds, &entry.Completed, &entry.LastWatchedAt); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
