package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	deliverycontext "fuelwatch/internal/delivery/context"
	"fuelwatch/internal/domain/entity"
	domainerrors "fuelwatch/internal/domain/errors"
	"fuelwatch/internal/domain/repository"
	"fuelwatch/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type subscriptionService struct {
	subscriptionRepo repository.SubscriptionRepository
	storeTimeout     time.Duration
	logger           *slog.Logger
	now              func() time.Time
}

// SubscriptionServiceParams holds dependencies for SubscriptionService, injected by Fx.
type SubscriptionServiceParams struct {
	fx.In

	SubscriptionRepo repository.SubscriptionRepository
	Settings         ReminderSettings
	Logger           *slog.Logger
}

// NewSubscriptionService creates a new subscription service instance
func NewSubscriptionService(params SubscriptionServiceParams) usecase.SubscriptionUsecase {
	return &subscriptionService{
		subscriptionRepo: params.SubscriptionRepo,
		storeTimeout:     params.Settings.StoreTimeout,
		logger:           params.Logger,
		now:              time.Now,
	}
}

// Subscribe registers a browser endpoint for the user.
// The document ID derives from the endpoint, so registering it again overwrites the previous owner.
func (s *subscriptionService) Subscribe(ctx context.Context, userID string, input *usecase.SubscriptionInput) (*entity.PushSubscription, error) {
	if input == nil || strings.TrimSpace(input.Endpoint) == "" {
		return nil, errors.WithStack(domainerrors.ErrInvalidSubscription.WithDetails("endpoint is required"))
	}

	sub := &entity.PushSubscription{
		ID:        entity.SubscriptionIDFromEndpoint(input.Endpoint),
		UserID:    userID,
		Endpoint:  strings.TrimSpace(input.Endpoint),
		Keys:      input.Keys,
		CreatedAt: s.now().UTC(),
	}
	if !sub.IsComplete() {
		return nil, errors.WithStack(domainerrors.ErrInvalidSubscription.WithDetails("keys.p256dh and keys.auth are required"))
	}

	storeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	if err := s.subscriptionRepo.UpsertSubscription(storeCtx, sub); err != nil {
		return nil, errors.WithStack(domainerrors.NewStoreExecuteError(err, "failed to save subscription"))
	}

	deliverycontext.GetLoggerOrDefault(ctx, s.logger).Info("[Subscriptions] Subscription saved",
		slog.String("user_id", userID),
		slog.String("subscription_id", sub.ID),
	)

	return sub, nil
}

// Unsubscribe removes the user's registration of an endpoint
func (s *subscriptionService) Unsubscribe(ctx context.Context, userID, endpoint string) error {
	id := entity.SubscriptionIDFromEndpoint(endpoint)

	storeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	sub, err := s.subscriptionRepo.FindSubscriptionByID(storeCtx, id)
	if err != nil {
		if errors.Is(err, repository.ErrSubscriptionNotFound) {
			return errors.WithStack(domainerrors.ErrSubscriptionNotFound)
		}

		return errors.WithStack(domainerrors.NewStoreExecuteError(err, "failed to find subscription"))
	}

	if sub.UserID != userID {
		return errors.WithStack(domainerrors.ErrForbidden)
	}

	if err := s.subscriptionRepo.DeleteSubscription(storeCtx, id); err != nil && !errors.Is(err, repository.ErrSubscriptionNotFound) {
		return errors.WithStack(domainerrors.NewStoreExecuteError(err, "failed to delete subscription"))
	}

	return nil
}

// List retrieves the user's subscriptions
func (s *subscriptionService) List(ctx context.Context, userID string) ([]*entity.PushSubscription, error) {
	storeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	subs, err := s.subscriptionRepo.ListSubscriptionsByUser(storeCtx, userID)
	if err != nil {
		return nil, errors.WithStack(domainerrors.NewStoreExecuteError(err, "failed to list subscriptions"))
	}

	return subs, nil
}
