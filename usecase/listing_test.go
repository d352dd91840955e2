package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"streamhaven/domain/model"
	"streamhaven/usecase"
)

func seriesEpisodes() []model.Episode {
	episodes := make([]model.Episode, 0, 5)
	for i := 1; i <= 5; i++ {
		ep := episodeWithOrder(i)
		ep.ID = ep.Title
		episodes = append(episodes, ep)
	}
	return episodes
}

func TestListing_AnonymousViewerSeesGatedEpisodesLocked(t *testing.T) {
	mockCatalog := new(MockCatalogRepository)
	mockState := new(MockSubscriptionState)

	mockCatalog.On("GetSeriesStatus", mock.Anything, "series-1").Return(model.StatusPublished, nil).Once()
	mockCatalog.On("ListEpisodes", mock.Anything, "series-1").Return(seriesEpisodes(), nil).Once()
	mockState.On("Resolve", mock.Anything, "").Return(model.SubscriptionState{}, nil).Once()

	annotated, err := usecase.NewListingUsecase(mockCatalog, mockState, nil).AnnotateSeries(context.Background(), "", "series-1")

	assert.NoError(t, err)
	assert.Len(t, annotated, 5)
	for _, ep := range annotated {
		if ep.Order <= usecase.FreeEpisodeThreshold {
			assert.False(t, ep.Locked, "episode %d should be free", ep.Order)
			assert.Equal(t, usecase.ReasonFreeTier, ep.Reason)
		} else {
			assert.True(t, ep.Locked, "episode %d should be locked", ep.Order)
			assert.Equal(t, usecase.ReasonSubscriptionRequired, ep.Reason)
		}
	}
}

func TestListing_SubscriberSeesEverythingUnlocked(t *testing.T) {
	mockCatalog := new(MockCatalogRepository)
	mockState := new(MockSubscriptionState)

	mockCatalog.On("GetSeriesStatus", mock.Anything, "series-1").Return(model.StatusPublished, nil).Once()
	mockCatalog.On("ListEpisodes", mock.Anything, "series-1").Return(seriesEpisodes(), nil).Once()
	mockState.On("Resolve", mock.Anything, "viewer-1").
		Return(model.SubscriptionState{IsEntitled: true, Status: model.SubscriptionActive}, nil).Once()

	annotated, err := usecase.NewListingUsecase(mockCatalog, mockState, nil).AnnotateSeries(context.Background(), "viewer-1", "series-1")

	assert.NoError(t, err)
	for _, ep := range annotated {
		assert.False(t, ep.Locked)
	}
}

func TestListing_UnpublishedEpisodesAreSkipped(t *testing.T) {
	episodes := seriesEpisodes()
	episodes[2].Status = model.StatusDraft
	mockCatalog := new(MockCatalogRepository)
	mockState := new(MockSubscriptionState)

	mockCatalog.On("GetSeriesStatus", mock.Anything, "series-1").Return(model.StatusPublished, nil).Once()
	mockCatalog.On("ListEpisodes", mock.Anything, "series-1").Return(episodes, nil).Once()
	mockState.On("Resolve", mock.Anything, "").Return(model.SubscriptionState{}, nil).Once()

	annotated, err := usecase.NewListingUsecase(mockCatalog, mockState, nil).AnnotateSeries(context.Background(), "", "series-1")

	assert.NoError(t, err)
	assert.Len(t, annotated, 4)
	for _, ep := range annotated {
		assert.NotEqual(t, 3, ep.Order)
	}
}

func TestListing_UnpublishedSeriesIsNotFound(t *testing.T) {
	mockCatalog := new(MockCatalogRepository)
	mockState := new(MockSubscriptionState)
	mockCatalog.On("GetSeriesStatus", mock.Anything, "series-1").Return(model.StatusDraft, nil).Once()

	_, err := usecase.NewListingUsecase(mockCatalog, mockState, nil).AnnotateSeries(context.Background(), "viewer-1", "series-1")

	assert.Equal(t, usecase.CodeNotFound, usecase.AuthzCodeOf(err))
	mockCatalog.AssertNotCalled(t, "ListEpisodes", mock.Anything, mock.Anything)
}

func TestListing_CacheHitSkipsStore(t *testing.T) {
	mockCatalog := new(MockCatalogRepository)
	mockState := new(MockSubscriptionState)
	mockCache := new(MockStateCache)

	cached := &model.SubscriptionState{IsEntitled: true, Status: model.SubscriptionActive}
	mockCatalog.On("GetSeriesStatus", mock.Anything, "series-1").Return(model.StatusPublished, nil).Once()
	mockCatalog.On("ListEpisodes", mock.Anything, "series-1").Return(seriesEpisodes(), nil).Once()
	mockCache.On("Get", mock.Anything, "viewer-1").Return(cached, nil).Once()

	annotated, err := usecase.NewListingUsecase(mockCatalog, mockState, mockCache).AnnotateSeries(context.Background(), "viewer-1", "series-1")

	assert.NoError(t, err)
	for _, ep := range annotated {
		assert.False(t, ep.Locked)
	}
	mockState.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything)
	mockCache.AssertExpectations(t)
}

func TestListing_CacheMissResolvesAndBackfills(t *testing.T) {
	mockCatalog := new(MockCatalogRepository)
	mockState := new(MockSubscriptionState)
	mockCache := new(MockStateCache)

	state := model.SubscriptionState{IsEntitled: true, Status: model.SubscriptionTrial}
	mockCatalog.On("GetSeriesStatus", mock.Anything, "series-1").Return(model.StatusPublished, nil).Once()
	mockCatalog.On("ListEpisodes", mock.Anything, "series-1").Return(seriesEpisodes(), nil).Once()
	mockCache.On("Get", mock.Anything, "viewer-1").Return(nil, nil).Once()
	mockState.On("Resolve", mock.Anything, "viewer-1").Return(state, nil).Once()
	mockCache.On("Set", mock.Anything, "viewer-1", state).Once()

	_, err := usecase.NewListingUsecase(mockCatalog, mockState, mockCache).AnnotateSeries(context.Background(), "viewer-1", "series-1")

	assert.NoError(t, err)
	mockCache.AssertExpectations(t)
	mockState.AssertExpectations(t)
}

func TestListing_CacheFailureFallsThroughToStore(t *testing.T) {
	mockCatalog := new(MockCatalogRepository)
	mockState := new(MockSubscriptionState)
	mockCache := new(MockStateCache)

	mockCatalog.On("GetSeriesStatus", mock.Anything, "series-1").Return(model.StatusPublished, nil).Once()
	mockCatalog.On("ListEpisodes", mock.Anything, "series-1").Return(seriesEpisodes(), nil).Once()
	mockCache.On("Get", mock.Anything, "viewer-1").Return(nil, errors.New("redis down")).Once()
	mockState.On("Resolve", mock.Anything, "viewer-1").Return(model.SubscriptionState{}, nil).Once()
	mockCache.On("Set", mock.Anything, "viewer-1", model.SubscriptionState{}).Once()

	_, err := usecase.NewListingUsecase(mockCatalog, mockState, mockCache).AnnotateSeries(context.Background(), "viewer-1", "series-1")

	assert.NoError(t, err)
	mockState.AssertExpectations(t)
}

// The lock badge and the playback gate must agree for every combination of
// episode order and subscription state; a locked badge on a playable episode
// (or the reverse) means the two surfaces drifted apart.
func TestListing_AgreesWithPlaybackAuthorization(t *testing.T) {
	states := []struct {
		name     string
		viewerID string
		state    model.SubscriptionState
	}{
		{name: "anonymous", viewerID: "", state: model.SubscriptionState{}},
		{name: "canceled", viewerID: "viewer-1", state: model.SubscriptionState{IsEntitled: false, Status: model.SubscriptionCanceled}},
		{name: "active", viewerID: "viewer-1", state: model.SubscriptionState{IsEntitled: true, Status: model.SubscriptionActive}},
		{name: "trial", viewerID: "viewer-1", state: model.SubscriptionState{IsEntitled: true, Status: model.SubscriptionTrial}},
	}
	for _, tt := range states {
		t.Run(tt.name, func(t *testing.T) {
			episodes := seriesEpisodes()

			mockCatalog := new(MockCatalogRepository)
			mockState := new(MockSubscriptionState)
			mockSigner := new(MockURLSigner)

			mockCatalog.On("GetSeriesStatus", mock.Anything, "series-1").Return(model.StatusPublished, nil)
			mockCatalog.On("ListEpisodes", mock.Anything, "series-1").Return(episodes, nil)
			mockState.On("Resolve", mock.Anything, tt.viewerID).Return(tt.state, nil)
			mockSigner.On("Sign", mock.Anything, mock.Anything).Return("https://stream.streamhaven.tv/stream/key?exp=1&sig=abc", 300)

			annotated, err := usecase.NewListingUsecase(mockCatalog, mockState, nil).AnnotateSeries(context.Background(), tt.viewerID, "series-1")
			assert.NoError(t, err)

			playbackUsecase := usecase.NewPlaybackUsecase(mockCatalog, mockState, mockSigner, usecase.NewPlaybackEvents(nil, nil))
			for _, ep := range annotated {
				mockCatalog.On("GetEpisode", mock.Anything, ep.ID).Return(&ep.Episode, nil).Once()
				mockCatalog.On("GetVideoAsset", mock.Anything, ep.VideoAssetID).Return(readyAsset(), nil).Once()

				_, err := playbackUsecase.Authorize(context.Background(), tt.viewerID, ep.ID)
				if ep.Locked {
					assert.Error(t, err, "episode %d annotated locked but playback granted", ep.Order)
				} else {
					assert.NoError(t, err, "episode %d annotated unlocked but playback denied", ep.Order)
				}
			}
		})
	}
}
