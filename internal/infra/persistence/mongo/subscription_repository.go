package mongo

import (
	"context"
	"log/slog"

	"fuelwatch/internal/domain/constants"
	"fuelwatch/internal/domain/entity"
	"fuelwatch/internal/domain/repository"
	"fuelwatch/internal/infra/persistence/document"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// subscriptionRepository implements the repository.SubscriptionRepository interface.
type subscriptionRepository struct {
	collection *mongo.Collection
	logger     *slog.Logger
}

// NewSubscriptionRepository is the constructor for subscriptionRepository.
func NewSubscriptionRepository(db *mongo.Database, logger *slog.Logger) repository.SubscriptionRepository {
	return &subscriptionRepository{collection: db.Collection(constants.CollectionSubscriptions), logger: logger}
}

// ListSubscriptions retrieves every registered subscription.
func (repo *subscriptionRepository) ListSubscriptions(ctx context.Context) ([]*entity.PushSubscription, error) {
	cursor, err := repo.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list subscriptions")
	}

	return collect(ctx, repo.logger, cursor, document.PushSubscription)
}

// ListSubscriptionsByUser retrieves the subscriptions registered by a user.
func (repo *subscriptionRepository) ListSubscriptionsByUser(ctx context.Context, userID string) ([]*entity.PushSubscription, error) {
	cursor, err := repo.collection.Find(ctx, bson.M{constants.FieldUserID: userID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list subscriptions by user")
	}

	return collect(ctx, repo.logger, cursor, document.PushSubscription)
}

// FindSubscriptionByID retrieves a subscription by its document ID.
func (repo *subscriptionRepository) FindSubscriptionByID(ctx context.Context, id string) (*entity.PushSubscription, error) {
	var raw bson.M
	if err := repo.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&raw); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrSubscriptionNotFound
		}

		return nil, errors.Wrap(err, "failed to find subscription by ID")
	}

	return document.PushSubscription(id, document.Fields(raw))
}

// UpsertSubscription creates the subscription or replaces its fields.
func (repo *subscriptionRepository) UpsertSubscription(ctx context.Context, sub *entity.PushSubscription) error {
	_, err := repo.collection.UpdateOne(ctx,
		bson.M{"_id": sub.ID},
		bson.M{"$set": bson.M(document.SubscriptionFields(sub))},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return errors.Wrap(err, "failed to upsert subscription")
	}

	return nil
}

// DeleteSubscription removes a subscription by its document ID.
func (repo *subscriptionRepository) DeleteSubscription(ctx context.Context, id string) error {
	res, err := repo.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(err, "failed to delete subscription")
	}
	if res.DeletedCount == 0 {
		return repository.ErrSubscriptionNotFound
	}

	return nil
}
