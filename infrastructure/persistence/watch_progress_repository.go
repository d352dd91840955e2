package persistence

import (
	"context"
	"database/sql"
	"time"

	"streamhaven/domain/model"
	"streamhaven/domain/repository"
	"streamhaven/infrastructure/logger"
)

// WatchProgressRepository owns the watch_progress table. The upsert is a
// single statement keyed on the (viewer_id, episode_id) unique constraint, so
// two overlapping progress pings for the same pair cannot lose updates or
// create duplicate rows; last writer wins on last_watched_at.
type WatchProgressRepository struct {
	db *sql.DB
}

func NewWatchProgressRepository(db *sql.DB) repository.IWatchProgress {
	return &WatchProgressRepository{db: db}
}

func (r *WatchProgressRepository) Upsert(ctx context.Context, viewerID, episodeID string, progressSeconds int, completed bool) (model.WatchProgressRecord, error) {
	now := time.Now().UTC()
	row := r.db.QueryRowContext(ctx, `INSERT INTO watch_progress (viewer_id, episode_id, progress_seconds, completed, last_watched_at, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $5, $5)
	ON CONFLICT (viewer_id, episode_id) DO UPDATE SET
		progress_seconds = EXCLUDED.progress_seconds,
		completed        = EXCLUDED.completed,
		last_watched_at  = EXCLUDED.last_watched_at,
		updated_at       = EXCLUDED.updated_at
	RETURNING id, viewer_id, episode_id, progress_seconds, completed, last_watched_at, created_at, updated_at`,
		viewerID, episodeID, progressSeconds, completed, now)

	var rec model.WatchProgressRecord
	if err := row.Scan(&rec.ID, &rec.ViewerID, &rec.EpisodeID, &rec.ProgressSeconds, &rec.Completed, &rec.LastWatchedAt, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		logger.GetLogger().WithField("error", err).Error("watch progress upsert failed")
		return rec, err
	}
	return rec, nil
}

func (r *WatchProgressRepository) Get(ctx context.Context, viewerID, episodeID string) (*model.WatchProgressRecord, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, viewer_id, episode_id, progress_seconds, completed, last_watched_at, created_at, updated_at
	FROM watch_progress
	WHERE viewer_id = $1 AND episode_id = $2`, viewerID, episodeID)
	rec := &model.WatchProgressRecord{}
	if err := row.Scan(&rec.ID, &rec.ViewerID, &rec.EpisodeID, &rec.ProgressSeconds, &rec.Completed, &rec.LastWatchedAt, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.GetLogger().WithField("error", err).Error("watch progress lookup failed")
		return nil, err
	}
	return rec, nil
}

func (r *WatchProgressRepository) ListRecent(ctx context.Context, viewerID string, limit int) ([]model.ContinueWatchingEntry, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT wp.episode_id, e.title, e.episode_order, e.series_id, s.title, wp.progress_seconds, wp.completed, wp.last_watched_at
	FROM watch_progress wp
	JOIN episodes e ON e.id = wp.episode_id
	JOIN series s ON s.id = e.series_id
	WHERE wp.viewer_id = $1
	ORDER BY wp.last_watched_at DESC
	LIMIT $2`, viewerID, limit)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("continue watching query failed")
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
