package usecase

import (
	"context"
	"encoding/json"
	"time"

	"streamhaven/infrastructure/logger"
	"streamhaven/infrastructure/pubsub"
	"streamhaven/infrastructure/servicebus"
	"streamhaven/infrastructure/utils"
)

const (
	playbackEventsTopic = "playback-events"
	playbackEventsQueue = "playback-events"
)

type playbackEvent struct {
	Type            string    `json:"type"`
	ViewerID        string    `json:"viewer_id,omitempty"`
	EpisodeID       string    `json:"episode_id"`
	Reason          string    `json:"reason,omitempty"`
	ProgressSeconds int       `json:"progress_seconds,omitempty"`
	OccurredAt      time.Time `json:"occurred_at"`
}

// PlaybackEvents fans playback facts out to the analytics collaborator over
// whichever brokers are configured. Both publishers are optional; publishing
// is best-effort and never fails the request.
type PlaybackEvents struct {
	pubSub     pubsub.IPlaybackPubSub
	serviceBus servicebus.IPlaybackServiceBus
}

func NewPlaybackEvents(pubSub pubsub.IPlaybackPubSub, serviceBus servicebus.IPlaybackServiceBus) *PlaybackEvents {
	return &PlaybackEvents{pubSub: pubSub, serviceBus: serviceBus}
}

func (e *PlaybackEvents) GrantIssued(ctx context.Context, viewerID, episodeID string, reason EntitlementReason) {
	e.publish(ctx, playbackEvent{
		Type:       "grant_issued",
		ViewerID:   viewerID,
		EpisodeID:  episodeID,
		Reason:     string(reason),
		OccurredAt: utils.GetCurrentTime(),
	})
}

func (e *PlaybackEvents) EpisodeCompleted(ctx context.Context, viewerID, episodeID string, progressSeconds int) {
	e.publish(ctx, playbackEvent{
		Type:            "episode_completed",
		ViewerID:        viewerID,
		EpisodeID:       episodeID,
		ProgressSeconds: progressSeconds,
		OccurredAt:      utils.GetCurrentTime(),
	})
}

func (e *PlaybackEvents) publish(ctx context.Context, evt playbackEvent) {
	if e == nil {
		return
	}
	payload, err := json.Marshal(evt)
	if err != nil {
		return
	}
	if e.pubSub != nil {
		if _, err := e.pubSub.Publish(ctx, playbackEventsTopic, payload); err != nil {
			logger.GetLogger().WithField("event", evt.Type).WithField("error", err).Warn("pubsub publish failed")
		}
	}
	if e.serviceBus != nil {
		if err := e.serviceBus.SendMessage(ctx, playbackEventsQueue, payload); err != nil {
			logger.GetLogger().WithField("event", evt.Type).WithField("error", err).Warn("service bus publish failed")
		}
	}
}
