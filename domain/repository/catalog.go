package repository

import (
	"context"

	"streamhaven/domain/model"
)

// ICatalog is the narrow read interface onto the content catalog collaborator.
// Episode/series CRUD, filtering and pagination live elsewhere.
type ICatalog interface {
	// GetEpisode returns the episode or nil when it does not exist.
	GetEpisode(ctx context.Context, episodeID string) (*model.Episode, error)
	// GetSeriesStatus returns the publish status of a series.
	GetSeriesStatus(ctx context.Context, seriesID string) (model.PublishStatus, error)
	// GetVideoAsset returns the backing asset or nil when missing.
	GetVideoAsset(ctx context.Context, assetID string) (*model.VideoAsset, error)
	// ListEpisodes returns a series' episodes ordered by episode order.
	ListEpisodes(ctx context.Context, seriesID string) ([]model.Episode, error)
}
