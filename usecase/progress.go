package usecase

import (
	"context"

	"streamhaven/domain/model"
	"streamhaven/domain/repository"
	"streamhaven/infrastructure/logger"
)

type IWatchProgressUsecase interface {
	// Record upserts the playback position for a (viewer, episode) pair.
	// Anonymous progress is not tracked; negative positions are rejected.
	Record(ctx context.Context, viewerID, episodeID string, progressSeconds int, completed bool) (model.WatchProgressRecord, error)
	// Get returns the stored position for resume, or nil when never watched.
	Get(ctx context.Context, viewerID, episodeID string) (*model.WatchProgressRecord, error)
	// ListRecent is the "continue watching" read path. Purely presentational:
	// entitlement is not re-checked here, a later playback attempt is.
	ListRecent(ctx context.Context, viewerID string, limit int) ([]model.ContinueWatchingEntry, error)
}

const defaultRecentLimit = 20

type watchProgressUsecase struct {
	progressRepo repository.IWatchProgress
	events       *PlaybackEvents
}

func NewWatchProgressUsecase(progressRepo repository.IWatchProgress, events *PlaybackEvents) IWatchProgressUsecase {
	return &watchProgressUsecase{progressRepo: progressRepo, events: events}
}

func (u *watchProgressUsecase) Record(ctx context.Context, viewerID, episodeID string, progressSeconds int, completed bool) (model.WatchProgressRecord, error) {
	var rec model.WatchProgressRecord
	if viewerID == "" {
		return rec, NewAuthzError(CodeUnauthenticated, "progress requires an authenticated viewer")
	}
	if episodeID == "" {
		return rec, NewAuthzError(CodeInvalidInput, "episodeId is required")
	}
	if progressSeconds < 0 {
		return rec, NewAuthzError(CodeInvalidInput, "progressSeconds must be >= 0")
	}

	rec, err := u.progressRepo.Upsert(ctx, viewerID, episodeID, progressSeconds, completed)
	if err != nil {
		logger.GetLogger().WithFields(map[string]interface{}{
			"viewer_id":  viewerID,
			"episode_id": episodeID,
			"error":      err,
		}).Error("watch progress upsert failed")
		return rec, Internal("watch progress upsert failed", err)
	}

	if completed {
		u.events.EpisodeCompleted(ctx, viewerID, episodeID, progressSeconds)
	}
	return rec, nil
}

func (u *watchProgressUsecase) Get(ctx context.Context, viewerID, episodeID string) (*model.WatchProgressRecord, error) {
	if viewerID == "" {
		return nil, NewAuthzError(CodeUnauthenticated, "progress requires an authenticated viewer")
	}
	rec, err := u.progressRepo.Get(ctx, viewerID, episodeID)
	if err != nil {
		return nil, Internal("watch progress lookup failed", err)
	}
	return rec, nil
}

func (u *watchProgressUsecase) ListRecent(ctx context.Context, viewerID string, limit int) ([]model.ContinueWatchingEntry, error) {
	if viewerID == "" {
		return nil, NewAuthzError(CodeUnauthenticated, "progress requires an authenticated viewer")
	}
	if limit <= 0 || limit > 100 {
		limit = defaultRecentLimit
	}
	entries, err := u.progressRepo.ListRecent(ctx, viewerID, limit)
	if err != nil {
		return nil, Internal("continue watching lookup failed", err)
	}
	return entries, nil
}
