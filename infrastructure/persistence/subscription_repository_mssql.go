package persistence

import (
	"context"
	"database/sql"

	"streamhaven/domain/model"
	"streamhaven/domain/repository"
	"streamhaven/infrastructure/logger"
)

// SubscriptionRepositoryMSSQL is the SQL Server implementation of ISubscription.
type SubscriptionRepositoryMSSQL struct{ db *sql.DB }

func NewSubscriptionRepositoryMSSQL(db *sql.DB) repository.ISubscription {
	return &SubscriptionRepositoryMSSQL{db}
}

func (r *SubscriptionRepositoryMSSQL) GetCurrentByViewer(ctx context.Context, viewerID string) (*model.Subscription, error) {
	row := r.db.QueryRowContext(ctx, `SELECT TOP 1 id, viewer_id, plan, status, start_date, renews_at, created_at, updated_at
	FROM dbo.[subscriptions]
	WHERE viewer_id = @p1
	ORDER BY created_at DESC`, viewerID)
	sub := &model.Subscription{}
	if err := row.Scan(&sub.ID, &sub.ViewerID, &sub.Plan, &sub.Status, &sub.StartDate, &sub.RenewsAt, &sub.CreatedAt, &sub.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.GetLogger().WithField("error", err).Error("mssql: query subscription by viewer failed")
		return nil, err
	}
	return sub, nil
}
