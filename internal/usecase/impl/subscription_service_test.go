package impl

import (
	"context"
	"testing"

	"fuelwatch/internal/domain/entity"
	mockRepo "fuelwatch/internal/mocks/repository"
	"fuelwatch/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type subscriptionServiceFixtures struct {
	service          *subscriptionService
	subscriptionRepo *mockRepo.MockSubscriptionRepository
}

func createTestSubscriptionService(t *testing.T) subscriptionServiceFixtures {
	subscriptionRepo := mockRepo.NewMockSubscriptionRepository(t)

	return subscriptionServiceFixtures{
		service: &subscriptionService{
			subscriptionRepo: subscriptionRepo,
			storeTimeout:     newTestSettings().StoreTimeout,
			logger:           newDiscardLogger(),
			now:              newTestClock(testNow).Now,
		},
		subscriptionRepo: subscriptionRepo,
	}
}

func TestSubscriptionService_Subscribe(t *testing.T) {
	fx := createTestSubscriptionService(t)
	ctx := context.Background()
	endpoint := "https://fcm.googleapis.com/fcm/send/abc:123"

	fx.subscriptionRepo.EXPECT().
		UpsertSubscription(boundedCtx(), mock.MatchedBy(func(sub *entity.PushSubscription) bool {
			return sub.ID == entity.SubscriptionIDFromEndpoint(endpoint) && sub.UserID == "u1"
		})).
		Return(nil)

	sub, err := fx.service.Subscribe(ctx, "u1", &usecase.SubscriptionInput{
		Endpoint: "  " + endpoint + " ",
		Keys:     entity.PushSubscriptionKeys{P256dh: "p", Auth: "a"},
	})

	require.NoError(t, err)
	assert.Equal(t, endpoint, sub.Endpoint)
	assert.Equal(t, "u1", sub.UserID)
	assert.Equal(t, testNow, sub.CreatedAt)
	assert.NotContains(t, sub.ID, "/")
}

func TestSubscriptionService_Subscribe_SameEndpointOverwrites(t *testing.T) {
	fx := createTestSubscriptionService(t)
	ctx := context.Background()
	input := &usecase.SubscriptionInput{
		Endpoint: "https://push.example.com/device",
		Keys:     entity.PushSubscriptionKeys{P256dh: "p", Auth: "a"},
	}

	var ids []string
	fx.subscriptionRepo.EXPECT().
		UpsertSubscription(boundedCtx(), mock.Anything).
		Run(func(_ context.Context, sub *entity.PushSubscription) {
			ids = append(ids, sub.ID)
		}).
		Return(nil).
		Twice()

	_, err := fx.service.Subscribe(ctx, "u1", input)
	require.NoError(t, err)
	_, err = fx.service.Subscribe(ctx, "u2", input)
	require.NoError(t, err)

	require.Len(t, ids, 2)
	assert.Equal(t, ids[0], ids[1])
}

func TestSubscriptionService_Unsubscribe(t *testing.T) {
	fx := createTestSubscriptionService(t)
	ctx := context.Background()
	sub := newTestSubscription("ignored", "u1")
	id := entity.SubscriptionIDFromEndpoint(sub.Endpoint)

	fx.subscriptionRepo.EXPECT().FindSubscriptionByID(boundedCtx(), id).Return(sub, nil)
	fx.subscriptionRepo.EXPECT().DeleteSubscription(boundedCtx(), id).Return(nil)

	require.NoError(t, fx.service.Unsubscribe(ctx, "u1", sub.Endpoint))
}

func TestSubscriptionService_List(t *testing.T) {
	fx := createTestSubscriptionService(t)
	ctx := context.Background()

	fx.subscriptionRepo.EXPECT().
		ListSubscriptionsByUser(boundedCtx(), "u1").
		Return([]*entity.PushSubscription{newTestSubscription("s1", "u1")}, nil)

	subs, err := fx.service.List(ctx, "u1")

	require.NoError(t, err)
	assert.Len(t, subs, 1)
}
