package pubsub

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"fuelwatch/internal/domain/service"

	"github.com/pkg/errors"
)

// localHTTPPublisher delivers events as Pub/Sub style push requests to a local endpoint.
// Used in development in place of a real topic.
type localHTTPPublisher struct {
	endpoint     string
	subscription string
	httpClient   *http.Client
	logger       *slog.Logger
}

// PushMessage is the body Pub/Sub sends to push endpoints
type PushMessage struct {
	Message struct {
		Data        string            `json:"data"`
		Attributes  map[string]string `json:"attributes,omitempty"`
		MessageID   string            `json:"messageId"`
		PublishTime string            `json:"publishTime"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}

// NewPushMessage wraps a JSON payload the way Pub/Sub does for push subscriptions
func NewPushMessage(subscription, messageID string, payload []byte, attributes map[string]string, publishedAt time.Time) PushMessage {
	var msg PushMessage
	msg.Subscription = subscription
	msg.Message.Data = base64.StdEncoding.EncodeToString(payload)
	msg.Message.MessageID = messageID
	msg.Message.PublishTime = publishedAt.UTC().Format(time.RFC3339)
	msg.Message.Attributes = attributes

	return msg
}

// Decode returns the payload carried by the message
func (m *PushMessage) Decode() ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(m.Message.Data)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode message data")
	}

	return data, nil
}

// NewLocalHTTPPublisher creates a new local HTTP publisher for development
func NewLocalHTTPPublisher(endpoint string, logger *slog.Logger) service.EventPublisher {
	return &localHTTPPublisher{
		endpoint:     endpoint,
		subscription: "projects/local/subscriptions/reminder-alerts",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// PublishReminderAlert posts the event to the local endpoint
func (p *localHTTPPublisher) PublishReminderAlert(ctx context.Context, event *service.ReminderAlertEvent) error {
	eventData, err := json.Marshal(event)
	if err != nil {
		return errors.WithStack(err)
	}

	body, err := json.Marshal(NewPushMessage(p.subscription, event.EventID, eventData, alertAttributes(event), time.Now()))
	if err != nil {
		return errors.WithStack(err)
	}

	p.logger.Debug("[LocalPubSub] Publishing reminder alert",
		slog.String("endpoint", p.endpoint),
		slog.String("event_id", event.EventID),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.WithStack(err)
	}
	req.Header.Set("Content-Type", "application/json")

	if event.RequestID != "" {
		req.Header.Set("X-Request-Id", event.RequestID)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return errors.WithStack(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.Errorf("endpoint returned non-success status: %d", resp.StatusCode)
	}

	return nil
}

// Close releases resources (no-op for HTTP client)
func (p *localHTTPPublisher) Close() error {
	return nil
}

// alertAttributes are the message attributes used for filtering and tracing
func alertAttributes(event *service.ReminderAlertEvent) map[string]string {
	attributes := map[string]string{
		"event_id":    event.EventID,
		"vehicle_id":  event.VehicleID,
		"reminder_id": event.ReminderID,
	}
	if event.RequestID != "" {
		attributes["request_id"] = event.RequestID
	}

	return attributes
}
