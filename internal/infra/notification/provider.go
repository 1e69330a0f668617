package notification

import (
	"context"
	"log/slog"

	"fuelwatch/config"
	"fuelwatch/internal/domain/constants"
	"fuelwatch/internal/domain/service"
	firebaseapp "fuelwatch/internal/infra/firebase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// SenderParams holds dependencies for PushSender, injected by Fx
type SenderParams struct {
	fx.In

	Ctx      context.Context
	Config   *config.Config
	Logger   *slog.Logger
	Firebase *firebaseapp.AppProvider
}

// NewPushSender creates the push transport selected by push.provider
func NewPushSender(params SenderParams) (service.PushSender, error) {
	cfg := params.Config.Push

	switch cfg.Provider {
	case constants.PushProviderWebPush, "":
		sender := NewWebPushSender(cfg, params.Logger)
		if err := sender.Ready(); err != nil {
			params.Logger.Warn("[WebPush] VAPID keys not configured, reminder runs will fail until they are set")
		}

		return sender, nil

	case constants.PushProviderFCM:
		app, err := params.Firebase.App(params.Ctx)
		if err != nil {
			return nil, err
		}

		client, err := app.Messaging(params.Ctx)
		if err != nil {
			return nil, errors.Wrap(err, "failed to get messaging client")
		}

		return NewFCMSender(client, params.Logger), nil

	default:
		return nil, errors.Errorf("unknown push provider: %s", cfg.Provider)
	}
}
