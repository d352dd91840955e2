package usecase

import (
	"context"
	"time"

	"streamhaven/domain/model"
	"streamhaven/domain/repository"
	"streamhaven/infrastructure/logger"
	"streamhaven/infrastructure/signer"
)

type IPlayback interface {
	// Authorize runs the playback gates for a (viewer, episode) pair and
	// mints a signed retrieval URL when all of them pass. viewerID is empty
	// for anonymous requests. Errors are always *AuthzError.
	Authorize(ctx context.Context, viewerID, episodeID string) (model.PlaybackGrant, error)
}

type playbackUsecase struct {
	catalogRepo       repository.ICatalog
	subscriptionState ISubscriptionState
	urlSigner         signer.IURLSigner
	events            *PlaybackEvents
	now               func() time.Time
}

func NewPlaybackUsecase(
	catalogRepo repository.ICatalog,
	subscriptionState ISubscriptionState,
	urlSigner signer.IURLSigner,
	events *PlaybackEvents,
) IPlayback {
	return &playbackUsecase{
		catalogRepo:       catalogRepo,
		subscriptionState: subscriptionState,
		urlSigner:         urlSigner,
		events:            events,
		now:               time.Now,
	}
}

// Authorize never trusts a listing annotation; entitlement is re-resolved for
// every playback attempt. Grants are not cached or reused across episodes,
// and an issued grant stays valid for its full TTL even if the subscription
// changes afterwards.
func (u *playbackUsecase) Authorize(ctx context.Context, viewerID, episodeID string) (model.PlaybackGrant, error) {
	var grant model.PlaybackGrant

	// Gate 1: episode exists and both episode and series are published.
	// Unpublished is deliberately indistinguishable from absent so catalog
	// structure does not leak.
	episode, err := u.catalogRepo.GetEpisode(ctx, episodeID)
	if err != nil {
		return grant, Internal("episode lookup failed", err)
	}
	if episode == nil || episode.Status != model.StatusPublished {
		return grant, NewAuthzError(CodeNotFound, "episode not found")
	}
	seriesStatus, err := u.catalogRepo.GetSeriesStatus(ctx, episode.SeriesID)
	if err != nil {
		return grant, Internal("series lookup failed", err)
	}
	if seriesStatus != model.StatusPublished {
		return grant, NewAuthzError(CodeNotFound, "episode not found")
	}

	// Gate 2: a ready asset with a storage key.
	asset, err := u.catalogRepo.GetVideoAsset(ctx, episode.VideoAssetID)
	if err != nil {
		return grant, Internal("asset lookup failed", err)
	}
	if asset == nil || !asset.IsStreamable() {
		return grant, NewAuthzError(CodeAssetUnavailable, "video asset is not streamable")
	}

	// Gate 3: subscription state. Lookup failures propagate as INTERNAL.
	state, err := u.subscriptionState.Resolve(ctx, viewerID)
	if err != nil {
		return grant, err
	}

	// Gate 4: the entitlement rule. Anonymous viewers on gated episodes get
	// UNAUTHENTICATED so the client can route to sign-in instead of upsell.
	decision := Decide(*episode, state)
	if !decision.Allowed {
		if viewerID == "" {
			return grant, NewAuthzError(CodeUnauthenticated, "sign in to watch this episode")
		}
		return grant, NewAuthzError(CodeForbiddenNotSubscribed, "an active subscription is required")
	}

	// Gate 5: mint the grant.
	signedURL, expiresIn := u.urlSigner.Sign(asset.StorageKey, u.now())
	grant = model.PlaybackGrant{URL: signedURL, ExpiresInSeconds: expiresIn}

	logger.GetLogger().WithFields(map[string]interface{}{
		"viewer_id":  viewerID,
		"episode_id": episodeID,
		"reason":     decision.Reason,
		"expires_in": expiresIn,
	}).Info("playback grant issued")
	u.events.GrantIssued(ctx, viewerID, episodeID, decision.Reason)

	return grant, nil
}
