package model

import "time"

// WatchProgressRecord is the only persisted state this engine owns outright.
// Keyed uniquely by (viewer, episode); created on first report, overwritten on
// every subsequent one, never deleted.
type WatchProgressRecord struct {
	ID              int64     `json:"id"`
	ViewerID        string    `json:"viewer_id"`
	EpisodeID       string    `json:"episode_id"`
	ProgressSeconds int       `json:"progress_seconds"`
	Completed       bool      `json:"completed"`
	LastWatchedAt   time.Time `json:"last_watched_at"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ContinueWatchingEntry joins a progress record with catalog metadata for the
// "continue watching" rail. Presentational only; no entitlement re-check.
type ContinueWatchingEntry struct {
	EpisodeID       string    `json:"episode_id"`
	EpisodeTitle    string    `json:"episode_title"`
	EpisodeOrder    int       `json:"episode_order"`
	SeriesID        string    `json:"series_id"`
	SeriesTitle     string    `json:"series_title"`
	ProgressSeconds int       `json:"progress_seconds"`
	Completed       bool      `json:"completed"`
	LastWatchedAt   time.Time `json:"last_watched_at"`
}
