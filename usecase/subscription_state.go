package usecase

import (
	"context"

	"streamhaven/domain/model"
	"streamhaven/domain/repository"
	"streamhaven/infrastructure/logger"
)

type ISubscriptionState interface {
	// Resolve normalizes a viewer's subscription into a SubscriptionState.
	// viewerID may be empty (anonymous). A lookup failure is returned as an
	// INTERNAL error, never as "not entitled": a database hiccup must not
	// strip access, and must not grant it either.
	Resolve(ctx context.Context, viewerID string) (model.SubscriptionState, error)
}

type subscriptionState struct {
	subscriptionRepo repository.ISubscription
}

func NewSubscriptionState(subscriptionRepo repository.ISubscription) ISubscriptionState {
	return &subscriptionState{subscriptionRepo: subscriptionRepo}
}

func (u *subscriptionState) Resolve(ctx context.Context, viewerID string) (model.SubscriptionState, error) {
	if viewerID == "" {
		return model.SubscriptionState{}, nil
	}
	sub, err := u.subscriptionRepo.GetCurrentByViewer(ctx, viewerID)
	if err != nil {
		logger.GetLogger().WithField("viewer_id", viewerID).WithField("error", err).Error("subscription lookup failed")
		return model.SubscriptionState{}, Internal("subscription lookup failed", err)
	}
	if sub == nil {
		return model.SubscriptionState{}, nil
	}
	// Recompute the renewal horizon from the start date; the stored value can
	// be stale relative to status transitions.
	renewsAt := model.RenewalHorizon(sub.Plan, sub.StartDate)
	return model.SubscriptionState{
		IsEntitled: sub.IsEntitling(),
		Plan:       sub.Plan,
		Status:     sub.Status,
		RenewsAt:   &renewsAt,
	}, nil
}
