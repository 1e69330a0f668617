package impl

import (
	"context"
	"testing"

	"fuelwatch/internal/domain/entity"
	domainerrors "fuelwatch/internal/domain/errors"
	"fuelwatch/internal/domain/repository"
	"fuelwatch/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestSubscriptionService_Subscribe_MissingEndpoint(t *testing.T) {
	fx := createTestSubscriptionService(t)

	sub, err := fx.service.Subscribe(context.Background(), "u1", &usecase.SubscriptionInput{
		Keys: entity.PushSubscriptionKeys{P256dh: "p", Auth: "a"},
	})

	assert.Nil(t, sub)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidSubscription)
}

func TestSubscriptionService_Subscribe_MissingKeys(t *testing.T) {
	fx := createTestSubscriptionService(t)

	sub, err := fx.service.Subscribe(context.Background(), "u1", &usecase.SubscriptionInput{
		Endpoint: "https://push.example.com/device",
		Keys:     entity.PushSubscriptionKeys{P256dh: "p"},
	})

	assert.Nil(t, sub)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidSubscription)
	fx.subscriptionRepo.AssertNotCalled(t, "UpsertSubscription", mock.Anything, mock.Anything)
}

func TestSubscriptionService_Subscribe_StoreError(t *testing.T) {
	fx := createTestSubscriptionService(t)

	fx.subscriptionRepo.EXPECT().
		UpsertSubscription(mock.Anything, mock.Anything).
		Return(errors.New("unavailable"))

	_, err := fx.service.Subscribe(context.Background(), "u1", &usecase.SubscriptionInput{
		Endpoint: "https://push.example.com/device",
		Keys:     entity.PushSubscriptionKeys{P256dh: "p", Auth: "a"},
	})

	var storeErr *domainerrors.StoreExecuteError
	assert.ErrorAs(t, err, &storeErr)
}

func TestSubscriptionService_Unsubscribe_NotFound(t *testing.T) {
	fx := createTestSubscriptionService(t)

	fx.subscriptionRepo.EXPECT().
		FindSubscriptionByID(mock.Anything, mock.Anything).
		Return(nil, repository.ErrSubscriptionNotFound)

	err := fx.service.Unsubscribe(context.Background(), "u1", "https://push.example.com/device")

	assert.ErrorIs(t, err, domainerrors.ErrSubscriptionNotFound)
}

func TestSubscriptionService_Unsubscribe_OtherUsersEndpoint(t *testing.T) {
	fx := createTestSubscriptionService(t)
	sub := newTestSubscription("s1", "someone-else")

	fx.subscriptionRepo.EXPECT().FindSubscriptionByID(mock.Anything, mock.Anything).Return(sub, nil)

	err := fx.service.Unsubscribe(context.Background(), "u1", sub.Endpoint)

	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
	fx.subscriptionRepo.AssertNotCalled(t, "DeleteSubscription", mock.Anything, mock.Anything)
}

func TestSubscriptionService_List_StoreError(t *testing.T) {
	fx := createTestSubscriptionService(t)

	fx.subscriptionRepo.EXPECT().
		ListSubscriptionsByUser(mock.Anything, "u1").
		Return(nil, errors.New("unavailable"))

	subs, err := fx.service.List(context.Background(), "u1")

	assert.Nil(t, subs)
	assert.Error(t, err)
}
