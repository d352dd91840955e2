package usecase

import (
	"context"

	"streamhaven/domain/model"
	"streamhaven/domain/repository"
	"streamhaven/infrastructure/cache"
	"streamhaven/infrastructure/logger"
)

// AnnotatedEpisode is an episode plus the derived lock badge for the UI.
// Advisory only: playback authorization re-resolves entitlement and never
// trusts this flag.
type AnnotatedEpisode struct {
	model.Episode
	Locked bool              `json:"locked"`
	Reason EntitlementReason `json:"reason"`
}

type IListing interface {
	// AnnotateSeries returns the series' published episodes with a locked
	// flag derived from the same entitlement rule playback enforces.
	AnnotateSeries(ctx context.Context, viewerID, seriesID string) ([]AnnotatedEpisode, error)
}

type listingUsecase struct {
	catalogRepo       repository.ICatalog
	subscriptionState ISubscriptionState
	stateCache        cache.ISubscriptionStateCache
}

func NewListingUsecase(
	catalogRepo repository.ICatalog,
	subscriptionState ISubscriptionState,
	stateCache cache.ISubscriptionStateCache,
) IListing {
	return &listingUsecase{
		catalogRepo:       catalogRepo,
		subscriptionState: subscriptionState,
		stateCache:        stateCache,
	}
}

func (u *listingUsecase) AnnotateSeries(ctx context.Context, viewerID, seriesID string) ([]AnnotatedEpisode, error) {
	seriesStatus, err := u.catalogRepo.GetSeriesStatus(ctx, seriesID)
	if err != nil {
		return nil, Internal("series lookup failed", err)
	}
	if seriesStatus != model.StatusPublished {
		return nil, NewAuthzError(CodeNotFound, "series not found")
	}

	state, err := u.resolveState(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	episodes, err := u.catalogRepo.ListEpisodes(ctx, seriesID)
	if err != nil {
		return nil, Internal("episode listing failed", err)
	}

	annotated := make([]AnnotatedEpisode, 0, len(episodes))
	for _, ep := range episodes {
		if ep.Status != model.StatusPublished {
			continue
		}
		decision := Decide(ep, state)
		annotated = append(annotated, AnnotatedEpisode{
			Episode: ep,
			Locked:  !decision.Allowed,
			Reason:  decision.Reason,
		})
	}
	return annotated, nil
}

// resolveState serves listing renders from the short-TTL cache when possible.
// Cache failures fall through to the store; the badge must still be computed
// from a real state, never guessed.
func (u *listingUsecase) resolveState(ctx context.Context, viewerID string) (model.SubscriptionState, error) {
	if u.stateCache != nil && viewerID != "" {
		cached, err := u.stateCache.Get(ctx, viewerID)
		if err != nil {
			logger.GetLogger().WithField("viewer_id", viewerID).WithField("error", err).Warn("subscription state cache read failed")
		}
		if cached != nil {
			return *cached, nil
		}
	}
	state, err := u.subscriptionState.Resolve(ctx, viewerID)
	if err != nil {
		return model.SubscriptionState{}, err
	}
	if u.stateCache != nil && viewerID != "" {
		u.stateCache.Set(ctx, viewerID, state)
	}
	return state, nil
}
