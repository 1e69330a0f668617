package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "fuelwatch/internal/delivery/context"
	"fuelwatch/internal/domain/entity"
	domainerrors "fuelwatch/internal/domain/errors"
	"fuelwatch/internal/domain/repository"
	"fuelwatch/internal/domain/service"
	"fuelwatch/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type pushService struct {
	subscriptionRepo repository.SubscriptionRepository
	sender           service.PushSender
	fanout           *pushFanout
	settings         ReminderSettings
	logger           *slog.Logger
	now              func() time.Time
}

// PushServiceParams holds dependencies for PushService, injected by Fx.
type PushServiceParams struct {
	fx.In

	SubscriptionRepo repository.SubscriptionRepository
	Sender           service.PushSender
	Metrics          service.DispatchMetrics `optional:"true"`
	Settings         ReminderSettings
	Logger           *slog.Logger
}

// NewPushService creates the direct push service
func NewPushService(params PushServiceParams) usecase.PushUsecase {
	return &pushService{
		subscriptionRepo: params.SubscriptionRepo,
		sender:           params.Sender,
		fanout: &pushFanout{
			sender:      params.Sender,
			metrics:     params.Metrics,
			timeout:     params.Settings.SendTimeout,
			concurrency: params.Settings.SendConcurrency,
		},
		settings: params.Settings,
		logger:   params.Logger,
		now:      time.Now,
	}
}

// SendToUser delivers one payload to every subscription of the user and removes the gone ones
func (s *pushService) SendToUser(ctx context.Context, userID string, payload *entity.PushPayload) (*usecase.PushResult, error) {
	logger := deliverycontext.GetLoggerOrDefault(ctx, s.logger)

	if err := s.sender.Ready(); err != nil {
		return nil, errors.WithStack(err)
	}

	cache := newSubscriptionCache(s.subscriptionRepo, s.settings.SubscriptionCacheTTL, s.settings.StoreTimeout, s.now, s.logger)
	defer cache.Reset()

	subs, err := cache.ListForUser(ctx, userID)
	if err != nil {
		return nil, errors.WithStack(domainerrors.NewStoreExecuteError(err, "failed to load subscriptions"))
	}

	result := &usecase.PushResult{}
	if len(subs) == 0 {
		logger.Info("[Push] No subscriptions found for user", slog.String("user_id", userID))

		return result, nil
	}

	if payload.Icon == "" {
		payload.Icon = s.settings.DefaultIcon
	}

	// cleanup must finish even when the caller goes away
	detached := context.WithoutCancel(ctx)

	totals := partition(s.fanout.sendAll(detached, logger, broadcastJobs(0, subs, payload)))
	result.Sent = totals.sent
	result.Failed = totals.transient

	for _, sub := range totals.gone {
		deleted, err := cache.Remove(detached, sub.ID)
		if err != nil {
			logger.Error("[Push] Failed to remove expired subscription",
				slog.String("subscription_id", sub.ID),
				slog.Any("error", err),
			)

			continue
		}
		if deleted {
			result.Expired++
		}
	}

	if result.Expired > 0 {
		logger.Info("[Push] Cleaned up expired subscriptions", slog.Int("count", result.Expired))
	}

	return result, nil
}
