package notification

import (
	"context"
	"log/slog"
	"net/url"
	"strings"

	"fuelwatch/internal/domain/entity"
	"fuelwatch/internal/domain/service"

	"firebase.google.com/go/v4/messaging"
	"github.com/pkg/errors"
)

// fcmHost is where Chrome based browsers point their push endpoints
const fcmHost = "fcm.googleapis.com"

// messagingClient is the part of messaging.Client the sender uses
type messagingClient interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

type fcmSender struct {
	client messagingClient
	logger *slog.Logger
}

// NewFCMSender creates a push sender that delivers through Firebase Cloud Messaging.
// Subscriptions must carry an FCM registration token, either as the endpoint itself
// or as the last path segment of an fcm.googleapis.com endpoint.
func NewFCMSender(client *messaging.Client, logger *slog.Logger) service.PushSender {
	return &fcmSender{client: client, logger: logger}
}

// Ready reports whether a messaging client is available
func (s *fcmSender) Ready() error {
	if s.client == nil {
		return errors.New("FCM messaging client not initialized")
	}

	return nil
}

// Send delivers one notification to the subscription's registration token
func (s *fcmSender) Send(ctx context.Context, sub *entity.PushSubscription, payload *entity.PushPayload) (service.SendOutcome, error) {
	token := RegistrationToken(sub.Endpoint)
	if token == "" {
		return service.SendGone, errors.Errorf("subscription %s has no FCM registration token", sub.ID)
	}

	message := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: payload.Title,
			Body:  payload.Body,
		},
		Webpush: &messaging.WebpushConfig{
			Notification: &messaging.WebpushNotification{
				Title: payload.Title,
				Body:  payload.Body,
				Icon:  payload.Icon,
			},
		},
	}

	if _, err := s.client.Send(ctx, message); err != nil {
		// Invalid and unregistered tokens never recover.
		if messaging.IsUnregistered(err) || messaging.IsInvalidArgument(err) || messaging.IsSenderIDMismatch(err) {
			return service.SendGone, errors.Wrap(err, "FCM token rejected")
		}

		return service.SendTransient, errors.Wrap(err, "failed to send FCM notification")
	}

	return service.SendDelivered, nil
}

// RegistrationToken extracts the FCM token from a subscription endpoint
func RegistrationToken(endpoint string) string {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return ""
	}

	u, err := url.Parse(endpoint)
	if err != nil || u.Scheme == "" {
		return endpoint
	}

	if u.Host != fcmHost {
		return ""
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")

	return segments[len(segments)-1]
}
