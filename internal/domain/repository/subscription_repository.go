// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"fuelwatch/internal/domain/entity"

	"github.com/pkg/errors"
)

// ErrSubscriptionNotFound is returned when a push subscription is not found.
var ErrSubscriptionNotFound = errors.New("push subscription not found")

// SubscriptionRepository defines the interface for push subscription persistence.
// Documents that cannot be decoded are skipped by implementations, never returned as an error.
type SubscriptionRepository interface {
	// ListSubscriptions retrieves every registered subscription.
	ListSubscriptions(ctx context.Context) ([]*entity.PushSubscription, error)

	// ListSubscriptionsByUser retrieves the subscriptions registered by a user.
	ListSubscriptionsByUser(ctx context.Context, userID string) ([]*entity.PushSubscription, error)

	// FindSubscriptionByID retrieves a subscription by its document ID.
	FindSubscriptionByID(ctx context.Context, id string) (*entity.PushSubscription, error)

	// UpsertSubscription creates the subscription or merges it into the existing document.
	UpsertSubscription(ctx context.Context, sub *entity.PushSubscription) error

	// DeleteSubscription removes a subscription by its document ID.
	// Returns ErrSubscriptionNotFound when nothing was deleted and the backend can tell.
	DeleteSubscription(ctx context.Context, id string) error
}
