package repository

import (
	"context"

	"streamhaven/domain/model"
)

// IWatchProgress persists per-viewer playback positions.
type IWatchProgress interface {
	// Upsert atomically inserts or overwrites the (viewer, episode) record in
	// a single statement keyed on the pair's unique constraint. Last writer
	// wins on last_watched_at.
	Upsert(ctx context.Context, viewerID, episodeID string, progressSeconds int, completed bool) (model.WatchProgressRecord, error)
	// Get returns the record for one (viewer, episode) pair or nil.
	Get(ctx context.Context, viewerID, episodeID string) (*model.WatchProgressRecord, error)
	// ListRecent returns records joined with episode/series metadata, ordered
	// by last_watched_at descending.
	ListRecent(ctx context.Context, viewerID string, limit int) ([]model.ContinueWatchingEntry, error)
}
