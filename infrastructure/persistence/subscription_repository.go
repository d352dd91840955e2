package persistence

import (
	"context"
	"database/sql"

	"streamhaven/domain/model"
	"streamhaven/domain/repository"
	"streamhaven/infrastructure/logger"
)

// SubscriptionRepository reads billing records. Duplicate rows per viewer can
// exist historically; the most recent one is canonical.
type SubscriptionRepository struct {
	db *sql.DB
}

func NewSubscriptionRepository(db *sql.DB) repository.ISubscription {
	return &SubscriptionRepository{db: db}
}

func (r *SubscriptionRepository) GetCurrentByViewer(ctx context.Context, viewerID string) (*model.Subscription, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, viewer_id, plan, status, start_date, renews_at, created_at, updated_at
	FROM subscriptions
	WHERE viewer_id = $1
	ORDER BY created_at DESC
	LIMIT 1`, viewerID)
	sub := &model.Subscription{}
	if err := row.Scan(&sub.ID, &sub.ViewerID, &sub.Plan, &sub.Status, &sub.StartDate, &sub.RenewsAt, &sub.CreatedAt, &sub.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.GetLogger().WithField("error", err).Error("query subscription by viewer failed")
		return nil, err
	}
	return sub, nil
}
