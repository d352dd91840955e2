package persistence

import (
	"context"
	"database/sql"

	"streamhaven/domain/model"
	"streamhaven/domain/repository"
	"streamhaven/infrastructure/logger"
)

// CatalogRepositoryMSSQL is the SQL Server implementation of ICatalog.
type CatalogRepositoryMSSQL struct{ db *sql.DB }

func NewCatalogRepositoryMSSQL(db *sql.DB) repository.ICatalog { return &CatalogRepositoryMSSQL{db} }

func (r *CatalogRepositoryMSSQL) GetEpisode(ctx context.Context, episodeID string) (*model.Episode, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, series_id, title, episode_order, status, video_asset_id, created_at, updated_at
	FROM dbo.[episodes] WHERE id = @p1`, episodeID)
	ep := &model.Episode{}
	if err := row.Scan(&ep.ID, &ep.SeriesID, &ep.Title, &ep.Order, &ep.Status, &ep.VideoAssetID, &ep.CreatedAt, &ep.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.GetLogger().WithField("error", err).Error("mssql: query episode by id failed")
		return nil, err
	}
	return ep, nil
}

func (r *CatalogRepositoryMSSQL) GetSeriesStatus(ctx context.Context, seriesID string) (model.PublishStatus, error) {
	var status model.PublishStatus
	row := r.db.QueryRowContext(ctx, `SELECT status FROM dbo.[series] WHERE id = @p1`, seriesID)
	if err := row.Scan(&status); err != nil {
		if err == sql.ErrNoRows {
			return model.StatusDraft, nil
		}
		logger.GetLogger().WithField("error", err).Error("mssql: query series status failed")
		return "", err
	}
	return status, nil
}

func (r *CatalogRepositoryMSSQL) GetVideoAsset(ctx context.Context, assetID string) (*model.VideoAsset, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, storage_key, status FROM dbo.[video_assets] WHERE id = @p1`, assetID)
	asset := &model.VideoAsset{}
	var storageKey sql.NullString
	if err := row.Scan(&asset.ID, &storageKey, &asset.Status); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.GetLogger().WithField("error", err).Error("mssql: query video asset failed")
		return nil, err
	}
	if storageKey.Valid {
		asset.StorageKey = storageKey.String
	}
	return asset, nil
}

func (r *CatalogRepositoryMSSQL) ListEpisodes(ctx context.Context, seriesID string) ([]model.Episode, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, series_id, title, episode_order, status, video_asset_id, created_at, updated_at
	FROM dbo.[episodes]
	WHERE series_id = @p1
	ORDER BY episode_order ASC`, seriesID)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("mssql: list episodes failed")
		return nil, err
	}
	defer rows.Close()

	var episodes []model.Episode
	for rows.Next() {
		var ep model.Episode
		if err := rows.Scan(&ep.ID, &ep.SeriesID, &ep.Title, &ep.Order, &ep.Status, &ep.VideoAssetID, &ep.CreatedAt, &ep.UpdatedAt); err != nil {
			return nil, err
		}
		episodes = append(episodes, ep)
	}
	return episodes, rows.Err()
}
