package servicebus

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/messaging/azservicebus"
	"streamhaven/infrastructure/logger"
)

// IPlaybackServiceBus mirrors IPlaybackPubSub for deployments wired to Azure
// Service Bus instead of GCP Pub/Sub.
type IPlaybackServiceBus interface {
	SendMessage(ctx context.Context, queue string, message []byte) error
}

type PlaybackServiceBus struct {
	AzservicebusClient *azservicebus.Client
}

func NewServiceBus(connectionString string) (*azservicebus.Client, error) {
	return azservicebus.NewClientFromConnectionString(connectionString, nil)
}

func NewPlaybackServiceBus(azServiceBusClient *azservicebus.Client) IPlaybackServiceBus {
	return &PlaybackServiceBus{AzservicebusClient: azServiceBusClient}
}

func (b *PlaybackServiceBus) SendMessage(ctx context.Context, queue string, message []byte) error {
	sender, err := b.AzservicebusClient.NewSender(queue, nil)
	if err != nil {
		logger.GetLogger().
			WithField("error", err).
			Error("Error while making new sender service bus.")
		return err
	}
	defer func(sender *azservicebus.Sender, ctx context.Context) {
		err := sender.Close(ctx)
		if err != nil {
			logger.GetLogger().
				WithField("error", err).
				Error("Error while closing sender.")
		}
	}(sender, ctx)

	sbMessage := &azservicebus.Message{
		Body: message,
	}
	err = sender.SendMessage(ctx, sbMessage, nil)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while sending message.")
		return err
	}

	return nil
}
