package firestore

import (
	"context"
	"log/slog"

	"fuelwatch/internal/domain/constants"
	"fuelwatch/internal/domain/entity"
	"fuelwatch/internal/domain/repository"
	"fuelwatch/internal/infra/persistence/document"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
)

// subscriptionRepository implements the repository.SubscriptionRepository interface.
type subscriptionRepository struct {
	client *firestore.Client
	logger *slog.Logger
}

// NewSubscriptionRepository is the constructor for subscriptionRepository.
func NewSubscriptionRepository(client *firestore.Client, logger *slog.Logger) repository.SubscriptionRepository {
	return &subscriptionRepository{client: client, logger: logger}
}

func (repo *subscriptionRepository) collection() *firestore.CollectionRef {
	return repo.client.Collection(constants.CollectionSubscriptions)
}

// ListSubscriptions retrieves every registered subscription.
func (repo *subscriptionRepository) ListSubscriptions(ctx context.Context) ([]*entity.PushSubscription, error) {
	subs, err := collect(repo.logger, repo.collection().Documents(ctx), document.PushSubscription)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list subscriptions")
	}

	return subs, nil
}

// ListSubscriptionsByUser retrieves the subscriptions registered by a user.
func (repo *subscriptionRepository) ListSubscriptionsByUser(ctx context.Context, userID string) ([]*entity.PushSubscription, error) {
	it := repo.collection().Where(constants.FieldUserID, "==", userID).Documents(ctx)

	subs, err := collect(repo.logger, it, document.PushSubscription)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list subscriptions by user")
	}

	return subs, nil
}

// FindSubscriptionByID retrieves a subscription by its document ID.
func (repo *subscriptionRepository) FindSubscriptionByID(ctx context.Context, id string) (*entity.PushSubscription, error) {
	snap, err := repo.collection().Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, repository.ErrSubscriptionNotFound
		}

		return nil, errors.Wrap(err, "failed to find subscription by ID")
	}

	return document.PushSubscription(snap.Ref.ID, snap.Data())
}

// UpsertSubscription merges the subscription into its document.
func (repo *subscriptionRepository) UpsertSubscription(ctx context.Context, sub *entity.PushSubscription) error {
	if _, err := repo.collection().Doc(sub.ID).Set(ctx, map[string]any(document.SubscriptionFields(sub)), firestore.MergeAll); err != nil {
		return errors.Wrap(err, "failed to upsert subscription")
	}

	return nil
}

// DeleteSubscription removes a subscription by its document ID.
func (repo *subscriptionRepository) DeleteSubscription(ctx context.Context, id string) error {
	if _, err := repo.collection().Doc(id).Delete(ctx, firestore.Exists); err != nil {
		if isNotFound(err) {
			return repository.ErrSubscriptionNotFound
		}

		return errors.Wrap(err, "failed to delete subscription")
	}

	return nil
}
