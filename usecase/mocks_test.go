package usecase_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"streamhaven/domain/model"
)

// Mock implementations shared by the usecase tests.

type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) GetEpisode(ctx context.Context, episodeID string) (*model.Episode, error) {
	args := m.Called(ctx, episodeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Episode), args.Error(1)
}

func (m *MockCatalogRepository) GetSeriesStatus(ctx context.Context, seriesID string) (model.PublishStatus, error) {
	args := m.Called(ctx, seriesID)
	return args.Get(0).(model.PublishStatus), args.Error(1)
}

func (m *MockCatalogRepository) GetVideoAsset(ctx context.Context, assetID string) (*model.VideoAsset, error) {
	args := m.Called(ctx, assetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.VideoAsset), args.Error(1)
}

func (m *MockCatalogRepository) ListEpisodes(ctx context.Context, seriesID string) ([]model.Episode, error) {
	args := m.Called(ctx, seriesID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Episode), args.Error(1)
}

type MockSubscriptionRepository struct {
	mock.Mock
}

func (m *MockSubscriptionRepository) GetCurrentByViewer(ctx context.Context, viewerID string) (*model.Subscription, error) {
	args := m.Called(ctx, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Subscription), args.Error(1)
}

type MockSubscriptionState struct {
	mock.Mock
}

func (m *MockSubscriptionState) Resolve(ctx context.Context, viewerID string) (model.SubscriptionState, error) {
	args := m.Called(ctx, viewerID)
	return args.Get(0).(model.SubscriptionState), args.Error(1)
}

type MockURLSigner struct {
	mock.Mock
}

func (m *MockURLSigner) Sign(storageKey string, now time.Time) (string, int) {
	args := m.Called(storageKey, now)
	return args.String(0), args.Int(1)
}

func (m *MockURLSigner) Verify(storageKey, expUnix, sig string, now time.Time) error {
	args := m.Called(storageKey, expUnix, sig, now)
	return args.Error(0)
}

type MockWatchProgressRepository struct {
	mock.Mock
}

func (m *MockWatchProgressRepository) Upsert(ctx context.Context, viewerID, episodeID string, progressSeconds int, completed bool) (model.WatchProgressRecord, error) {
	args := m.Called(ctx, viewerID, episodeID, progressSeconds, completed)
	return args.Get(0).(model.WatchProgressRecord), args.Error(1)
}

func (m *MockWatchProgressRepository) Get(ctx context.Context, viewerID, episodeID string) (*model.WatchProgressRecord, error) {
	args := m.Called(ctx, viewerID, episodeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.WatchProgressRecord), args.Error(1)
}

func (m *MockWatchProgressRepository) ListRecent(ctx context.Context, viewerID string, limit int) ([]model.ContinueWatchingEntry, error) {
	args := m.Called(ctx, viewerID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ContinueWatchingEntry), args.Error(1)
}

type MockStateCache struct {
	mock.Mock
}

func (m *MockStateCache) Get(ctx context.Context, viewerID string) (*model.SubscriptionState, error) {
	args := m.Called(ctx, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SubscriptionState), args.Error(1)
}

func (m *MockStateCache) Set(ctx context.Context, viewerID string, state model.SubscriptionState) {
	m.Called(ctx, viewerID, state)
}

type MockPlaybackPubSub struct {
	mock.Mock
}

func (m *MockPlaybackPubSub) Publish(ctx context.Context, topic string, payload []byte) (string, error) {
	args := m.Called(ctx, topic, payload)
	return args.String(0), args.Error(1)
}

type MockPlaybackServiceBus struct {
	mock.Mock
}

func (m *MockPlaybackServiceBus) SendMessage(ctx context.Context, queue string, message []byte) error {
	args := m.Called(ctx, queue, message)
	return args.Error(0)
}
