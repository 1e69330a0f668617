package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"fuelwatch/internal/domain/service"

	"cloud.google.com/go/pubsub/v2"
	pubsubpb "cloud.google.com/go/pubsub/v2/apiv1/pubsubpb"
	"github.com/pkg/errors"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// googlePublisher publishes alert events to a Cloud Pub/Sub topic.
// Messages are ordered per vehicle so consumers see one vehicle's alerts in run order.
type googlePublisher struct {
	client    *pubsub.Client
	publisher *pubsub.Publisher
	logger    *slog.Logger
}

// NewGooglePubSubPublisher connects to the topic and fails fast when it does not exist
func NewGooglePubSubPublisher(ctx context.Context, projectID, topicID string, logger *slog.Logger) (service.EventPublisher, error) {
	client, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create pubsub client")
	}

	topic := fmt.Sprintf("projects/%s/topics/%s", projectID, topicID)
	if _, err := client.TopicAdminClient.GetTopic(ctx, &pubsubpb.GetTopicRequest{Topic: topic}); err != nil {
		client.Close()
		if status.Code(err) == codes.NotFound {
			return nil, errors.Errorf("pubsub topic %s does not exist", topic)
		}

		return nil, errors.Wrapf(err, "failed to get topic %s", topic)
	}

	publisher := client.Publisher(topicID)
	publisher.EnableMessageOrdering = true

	logger.Info("[GooglePubSub] Publisher ready", slog.String("topic", topic))

	return &googlePublisher{
		client:    client,
		publisher: publisher,
		logger:    logger,
	}, nil
}

// PublishReminderAlert publishes the event keyed by vehicle and waits for the server ack
func (p *googlePublisher) PublishReminderAlert(ctx context.Context, event *service.ReminderAlertEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return errors.WithStack(err)
	}

	result := p.publisher.Publish(ctx, &pubsub.Message{
		Data:        data,
		Attributes:  alertAttributes(event),
		OrderingKey: event.VehicleID,
	})

	serverID, err := result.Get(ctx)
	if err != nil {
		// a failed ordered publish pauses the key until it is resumed
		p.publisher.ResumePublish(event.VehicleID)

		return errors.Wrapf(err, "failed to publish alert %s", event.EventID)
	}

	p.logger.Debug("[GooglePubSub] Reminder alert published",
		slog.String("event_id", event.EventID),
		slog.String("vehicle_id", event.VehicleID),
		slog.String("server_id", serverID),
	)

	return nil
}

// Close flushes pending messages and releases the client
func (p *googlePublisher) Close() error {
	p.publisher.Stop()

	return errors.WithStack(p.client.Close())
}
