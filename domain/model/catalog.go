package model

import "time"

// PublishStatus is shared by series and episodes. Only published content is
// visible to non-privileged requests.
type PublishStatus string

const (
	StatusDraft     PublishStatus = "draft"
	StatusPending   PublishStatus = "pending"
	StatusPublished PublishStatus = "published"
	StatusArchived  PublishStatus = "archived"
)

type AssetStatus string

const (
	AssetProcessing AssetStatus = "processing"
	AssetReady      AssetStatus = "ready"
	AssetFailed     AssetStatus = "failed"
)

type Series struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	Status    PublishStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

type Episode struct {
	ID           string        `json:"id"`
	SeriesID     string        `json:"series_id"`
	Title        string        `json:"title"`
	Order        int           `json:"order"`
	Status       PublishStatus `json:"status"`
	VideoAssetID string        `json:"video_asset_id"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// VideoAsset is an opaque storage reference. An episode whose asset is
// missing or not ready is never playable regardless of entitlement.
type VideoAsset struct {
	ID         string      `json:"id"`
	StorageKey string      `json:"storage_key"`
	Status     AssetStatus `json:"status"`
}

func (a VideoAsset) IsStreamable() bool {
	return a.Status == AssetReady && a.StorageKey != ""
}

// PlaybackGrant is a time-boxed signed retrieval URL for a video asset.
type PlaybackGrant struct {
	URL              string `json:"url"`
	ExpiresInSeconds int    `json:"expiresInSeconds"`
}
