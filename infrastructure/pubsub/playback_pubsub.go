package pubsub

import (
	"context"
	"log"

	"cloud.google.com/go/pubsub"
	"streamhaven/infrastructure/logger"
)

// IPlaybackPubSub publishes playback engine events for the analytics
// collaborator.
type IPlaybackPubSub interface {
	Publish(ctx context.Context, topic string, payload []byte) (string, error)
}

type PlaybackPubSub struct {
	PubSubClient *pubsub.Client
}

func NewPubSub(ctx context.Context, projectID string) (*pubsub.Client, error) {
	return pubsub.NewClient(ctx, projectID)
}

func NewPlaybackPubSub(pubSubClient *pubsub.Client) IPlaybackPubSub {
	return &PlaybackPubSub{
		PubSubClient: pubSubClient,
	}
}

func (p *PlaybackPubSub) Publish(
	ctx context.Context,
	topicName string,
	payload []byte,
) (string, error) {
	msg := &pubsub.Message{
		Data: payload,
	}

	topic := p.PubSubClient.Topic(topicName)

	// Create the topic if it doesn't exist.
	exists, err := topic.Exists(ctx)
	if err != nil {
		return "", err
	}
	if !exists {
		log.Printf("Topic %v doesn't exist - creating it", topicName)
		_, err = p.PubSubClient.CreateTopic(ctx, topicName)
		if err != nil {
			return "", err
		}
	}

	serverId, err := topic.Publish(ctx, msg).Get(ctx)
	if err != nil {
		return "", err
	}

	logger.GetLogger().WithField("server ID", serverId).Info("Playback event published")
	return serverId, nil
}
