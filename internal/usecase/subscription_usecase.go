package usecase

import (
	"context"

	"fuelwatch/internal/domain/entity"
)

// SubscriptionInput is the browser subscription object posted by the client
type SubscriptionInput struct {
	Endpoint string                      `json:"endpoint" validate:"required,url"`
	Keys     entity.PushSubscriptionKeys `json:"keys"`
}

// SubscriptionUsecase defines push subscription management for a user
type SubscriptionUsecase interface {
	// Subscribe registers the endpoint for the user, overwriting a previous registration of the same endpoint
	Subscribe(ctx context.Context, userID string, input *SubscriptionInput) (*entity.PushSubscription, error)

	// Unsubscribe removes the user's registration of the endpoint
	Unsubscribe(ctx context.Context, userID, endpoint string) error

	// List retrieves the user's subscriptions
	List(ctx context.Context, userID string) ([]*entity.PushSubscription, error)
}
