package notification

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"fuelwatch/config"
	"fuelwatch/internal/domain/entity"
	domainerrors "fuelwatch/internal/domain/errors"
	"fuelwatch/internal/domain/service"

	webpush "github.com/SherClockHolmes/webpush-go"
	"github.com/pkg/errors"
)

type webPushSender struct {
	publicKey  string
	privateKey string
	subscriber string
	ttl        int
	httpClient webpush.HTTPClient
	logger     *slog.Logger
}

// NewWebPushSender creates a VAPID web push sender. Missing keys are reported by Ready, not here,
// so the process can still serve the routes that do not push.
func NewWebPushSender(cfg config.PushConfig, logger *slog.Logger) service.PushSender {
	return &webPushSender{
		publicKey:  strings.TrimSpace(cfg.VAPIDPublicKey),
		privateKey: strings.TrimSpace(cfg.VAPIDPrivateKey),
		subscriber: cfg.Subscriber,
		ttl:        cfg.TTLSeconds,
		httpClient: http.DefaultClient,
		logger:     logger,
	}
}

// Ready reports whether VAPID credentials are configured
func (s *webPushSender) Ready() error {
	if s.publicKey == "" || s.privateKey == "" {
		return errors.WithStack(domainerrors.ErrPushNotConfigured)
	}

	return nil
}

// Send encrypts the payload for the subscription and posts it to the push service
func (s *webPushSender) Send(ctx context.Context, sub *entity.PushSubscription, payload *entity.PushPayload) (service.SendOutcome, error) {
	if err := s.Ready(); err != nil {
		return service.SendTransient, err
	}

	message, err := json.Marshal(payload)
	if err != nil {
		return service.SendTransient, errors.WithStack(err)
	}

	resp, err := webpush.SendNotificationWithContext(ctx, message, &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.Keys.P256dh,
			Auth:   sub.Keys.Auth,
		},
	}, &webpush.Options{
		HTTPClient:      s.httpClient,
		Subscriber:      s.subscriber,
		VAPIDPublicKey:  s.publicKey,
		VAPIDPrivateKey: s.privateKey,
		TTL:             s.ttl,
		Urgency:         webpush.UrgencyNormal,
	})
	if err != nil {
		return service.SendTransient, errors.Wrap(err, "failed to send web push")
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	return classifyStatus(resp.StatusCode)
}

// classifyStatus maps the push service response. 404 and 410 mean the endpoint is gone for good.
func classifyStatus(status int) (service.SendOutcome, error) {
	switch {
	case status >= 200 && status < 300:
		return service.SendDelivered, nil
	case status == http.StatusNotFound || status == http.StatusGone:
		return service.SendGone, errors.Errorf("push service returned %d", status)
	default:
		return service.SendTransient, errors.Errorf("push service returned %d", status)
	}
}
