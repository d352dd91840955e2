package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"streamhaven/domain/model"
	"streamhaven/usecase"
)

func newProgressUnderTest(repo *MockWatchProgressRepository) usecase.IWatchProgressUsecase {
	return usecase.NewWatchProgressUsecase(repo, usecase.NewPlaybackEvents(nil, nil))
}

func TestWatchProgress_Record(t *testing.T) {
	mockRepo := new(MockWatchProgressRepository)
	now := time.Now().UTC()
	mockRepo.On("Upsert", mock.Anything, "viewer-1", "ep-1", 754, false).Return(model.WatchProgressRecord{
		ID:              1,
		ViewerID:        "viewer-1",
		EpisodeID:       "ep-1",
		ProgressSeconds: 754,
		LastWatchedAt:   now,
	}, nil).Once()

	rec, err := newProgressUnderTest(mockRepo).Record(context.Background(), "viewer-1", "ep-1", 754, false)

	assert.NoError(t, err)
	assert.Equal(t, 754, rec.ProgressSeconds)
	assert.False(t, rec.Completed)
	mockRepo.AssertExpectations(t)
}

func TestWatchProgress_RecordRejectsAnonymous(t *testing.T) {
	mockRepo := new(MockWatchProgressRepository)

	_, err := newProgressUnderTest(mockRepo).Record(context.Background(), "", "ep-1", 10, false)

	assert.Equal(t, usecase.CodeUnauthenticated, usecase.AuthzCodeOf(err))
	mockRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestWatchProgress_RecordRejectsBadInput(t *testing.T) {
	tests := []struct {
		name      string
		episodeID string
		seconds   int
	}{
		{name: "missing episode id", episodeID: "", seconds: 10},
		{name: "negative progress", episodeID: "ep-1", seconds: -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockWatchProgressRepository)

			_, err := newProgressUnderTest(mockRepo).Record(context.Background(), "viewer-1", tt.episodeID, tt.seconds, false)

			// Rejected before any write happens.
			assert.Equal(t, usecase.CodeInvalidInput, usecase.AuthzCodeOf(err))
			mockRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestWatchProgress_RecordZeroSecondsIsValid(t *testing.T) {
	mockRepo := new(MockWatchProgressRepository)
	mockRepo.On("Upsert", mock.Anything, "viewer-1", "ep-1", 0, false).
		Return(model.WatchProgressRecord{ViewerID: "viewer-1", EpisodeID: "ep-1"}, nil).Once()

	_, err := newProgressUnderTest(mockRepo).Record(context.Background(), "viewer-1", "ep-1", 0, false)

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestWatchProgress_RecordUpsertFailure(t *testing.T) {
	mockRepo := new(MockWatchProgressRepository)
	mockRepo.On("Upsert", mock.Anything, "viewer-1", "ep-1", 10, false).
		Return(model.WatchProgressRecord{}, errors.New("deadlock")).Once()

	_, err := newProgressUnderTest(mockRepo).Record(context.Background(), "viewer-1", "ep-1", 10, false)

	assert.Equal(t, usecase.CodeInternal, usecase.AuthzCodeOf(err))
}

func TestWatchProgress_CompletionEmitsEvent(t *testing.T) {
	mockRepo := new(MockWatchProgressRepository)
	mockServiceBus := new(MockPlaybackServiceBus)
	mockRepo.On("Upsert", mock.Anything, "viewer-1", "ep-1", 1440, true).
		Return(model.WatchProgressRecord{ViewerID: "viewer-1", EpisodeID: "ep-1", ProgressSeconds: 1440, Completed: true}, nil).Once()
	mockServiceBus.On("SendMessage", mock.Anything, "playback-events", mock.Anything).Return(nil).Once()

	progressUsecase := usecase.NewWatchProgressUsecase(mockRepo, usecase.NewPlaybackEvents(nil, mockServiceBus))
	rec, err := progressUsecase.Record(context.Background(), "viewer-1", "ep-1", 1440, true)

	assert.NoError(t, err)
	assert.True(t, rec.Completed)
	mockServiceBus.AssertExpectations(t)
}

func TestWatchProgress_Get(t *testing.T) {
	mockRepo := new(MockWatchProgressRepository)
	mockRepo.On("Get", mock.Anything, "viewer-1", "ep-1").
		Return(&model.WatchProgressRecord{ViewerID: "viewer-1", EpisodeID: "ep-1", ProgressSeconds: 300}, nil).Once()

	rec, err := newProgressUnderTest(mockRepo).Get(context.Background(), "viewer-1", "ep-1")

	assert.NoError(t, err)
	if assert.NotNil(t, rec) {
		assert.Equal(t, 300, rec.ProgressSeconds)
	}
}

func TestWatchProgress_GetNeverWatched(t *testing.T) {
	mockRepo := new(MockWatchProgressRepository)
	mockRepo.On("Get", mock.Anything, "viewer-1", "ep-9").Return(nil, nil).Once()

	rec, err := newProgressUnderTest(mockRepo).Get(context.Background(), "viewer-1", "ep-9")

	assert.NoError(t, err)
	assert.Nil(t, rec)
}

func TestWatchProgress_ListRecentClampsLimit(t *testing.T) {
	tests := []struct {
		name      string
		requested int
		effective int
	}{
		{name: "zero falls back to default", requested: 0, effective: 20},
		{name: "negative falls back to default", requested: -5, effective: 20},
		{name: "oversized falls back to default", requested: 500, effective: 20},
		{name: "in range passes through", requested: 5, effective: 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockWatchProgressRepository)
			mockRepo.On("ListRecent", mock.Anything, "viewer-1", tt.effective).
				Return([]model.ContinueWatchingEntry{}, nil).Once()

			_, err := newProgressUnderTest(mockRepo).ListRecent(context.Background(), "viewer-1", tt.requested)

			assert.NoError(t, err)
			mockRepo.AssertExpectations(t)
		})
	}
}

// lastWriteProgressStore applies each upsert as one indivisible overwrite,
// the same contract the SQL stores honor with their single-statement upserts.
type lastWriteProgressStore struct {
	mu  sync.Mutex
	rec model.WatchProgressRecord
}

func (s *lastWriteProgressStore) Upsert(ctx context.Context, viewerID, episodeID string, progressSeconds int, completed bool) (model.WatchProgressRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rec = model.WatchProgressRecord{
		ID:              1,
		ViewerID:        viewerID,
		EpisodeID:       episodeID,
		ProgressSeconds: progressSeconds,
		Completed:       completed,
		LastWatchedAt:   time.Now().UTC(),
	}
	return s.rec, nil
}

func (s *lastWriteProgressStore) Get(ctx context.Context, viewerID, episodeID string) (*model.WatchProgressRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := s.rec
	return &rec, nil
}

func (s *lastWriteProgressStore) ListRecent(ctx context.Context, viewerID string, limit int) ([]model.ContinueWatchingEntry, error) {
	return nil, nil
}

// Overlapping reports for the same (viewer, episode) pair converge to one
// call's values wholesale; seconds from one call never pair with the
// completed flag of the other.
func TestWatchProgress_ConcurrentRecordsConverge(t *testing.T) {
	store := &lastWriteProgressStore{}
	progressUsecase := usecase.NewWatchProgressUsecase(store, usecase.NewPlaybackEvents(nil, nil))

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, err := progressUsecase.Record(context.Background(), "viewer-1", "ep-1", 100, false)
		assert.NoError(t, err)
	}()
	go func() {
		defer wg.Done()
		_, err := progressUsecase.Record(context.Background(), "viewer-1", "ep-1", 2000, true)
		assert.NoError(t, err)
	}()
	wg.Wait()

	rec, err := progressUsecase.Get(context.Background(), "viewer-1", "ep-1")
	assert.NoError(t, err)
	intact := (rec.ProgressSeconds == 100 && !rec.Completed) ||
		(rec.ProgressSeconds == 2000 && rec.Completed)
	assert.True(t, intact, "got mixed write: seconds=%d completed=%v", rec.ProgressSeconds, rec.Completed)

	// A subsequent report wins outright.
	_, err = progressUsecase.Record(context.Background(), "viewer-1", "ep-1", 500, false)
	assert.NoError(t, err)
	rec, err = progressUsecase.Get(context.Background(), "viewer-1", "ep-1")
	assert.NoError(t, err)
	assert.Equal(t, 500, rec.ProgressSeconds)
	assert.False(t, rec.Completed)
}

func TestWatchProgress_ListRecentRequiresViewer(t *testing.T) {
	mockRepo := new(MockWatchProgressRepository)

	_, err := newProgressUnderTest(mockRepo).ListRecent(context.Background(), "", 10)

	assert.Equal(t, usecase.CodeUnauthenticated, usecase.AuthzCodeOf(err))
}
