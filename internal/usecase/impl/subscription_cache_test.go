package impl

import (
	"context"
	"testing"
	"time"

	"fuelwatch/internal/domain/entity"
	"fuelwatch/internal/domain/repository"
	mockRepo "fuelwatch/internal/mocks/repository"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type subscriptionCacheFixtures struct {
	cache            *subscriptionCache
	subscriptionRepo *mockRepo.MockSubscriptionRepository
	clock            *testClock
}

func createTestSubscriptionCache(t *testing.T) subscriptionCacheFixtures {
	subscriptionRepo := mockRepo.NewMockSubscriptionRepository(t)
	clock := newTestClock(testNow)

	return subscriptionCacheFixtures{
		cache:            newSubscriptionCache(subscriptionRepo, 10*time.Minute, time.Second, clock.Now, newDiscardLogger()),
		subscriptionRepo: subscriptionRepo,
		clock:            clock,
	}
}

func TestSubscriptionCache_ListAll_CachedWithinTTL(t *testing.T) {
	fx := createTestSubscriptionCache(t)
	subs := []*entity.PushSubscription{newTestSubscription("s1", "u1"), newTestSubscription("s2", "u2")}

	fx.subscriptionRepo.EXPECT().ListSubscriptions(mock.Anything).Return(subs, nil).Once()

	got, err := fx.cache.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 2)

	fx.clock.Advance(9 * time.Minute)
	got, err = fx.cache.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestSubscriptionCache_ListAll_RefreshesAfterTTL(t *testing.T) {
	fx := createTestSubscriptionCache(t)

	fx.subscriptionRepo.EXPECT().
		ListSubscriptions(mock.Anything).
		Return([]*entity.PushSubscription{newTestSubscription("s1", "u1")}, nil).
		Once()
	fx.subscriptionRepo.EXPECT().
		ListSubscriptions(mock.Anything).
		Return([]*entity.PushSubscription{newTestSubscription("s1", "u1"), newTestSubscription("s2", "u1")}, nil).
		Once()

	got, err := fx.cache.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 1)

	fx.clock.Advance(10 * time.Minute)
	got, err = fx.cache.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestSubscriptionCache_SkipsMalformedSubscriptions(t *testing.T) {
	fx := createTestSubscriptionCache(t)
	noKeys := &entity.PushSubscription{ID: "broken", UserID: "u1", Endpoint: "https://push.example.com/broken"}

	fx.subscriptionRepo.EXPECT().
		ListSubscriptionsByUser(mock.Anything, "u1").
		Return([]*entity.PushSubscription{noKeys, nil, newTestSubscription("s1", "u1")}, nil)

	got, err := fx.cache.ListForUser(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "s1", got[0].ID)
}

func TestSubscriptionCache_ListForUser_PerUserEntries(t *testing.T) {
	fx := createTestSubscriptionCache(t)

	fx.subscriptionRepo.EXPECT().
		ListSubscriptionsByUser(mock.Anything, "u1").
		Return([]*entity.PushSubscription{newTestSubscription("s1", "u1")}, nil).
		Once()
	fx.subscriptionRepo.EXPECT().
		ListSubscriptionsByUser(mock.Anything, "u2").
		Return([]*entity.PushSubscription{}, nil).
		Once()

	for range 2 {
		got, err := fx.cache.ListForUser(context.Background(), "u1")
		require.NoError(t, err)
		assert.Len(t, got, 1)

		got, err = fx.cache.ListForUser(context.Background(), "u2")
		require.NoError(t, err)
		assert.Empty(t, got)
	}
}

func TestSubscriptionCache_Remove_EvictsAndIsIdempotent(t *testing.T) {
	fx := createTestSubscriptionCache(t)

	fx.subscriptionRepo.EXPECT().
		ListSubscriptions(mock.Anything).
		Return([]*entity.PushSubscription{newTestSubscription("s1", "u1"), newTestSubscription("s2", "u1")}, nil).
		Once()
	fx.subscriptionRepo.EXPECT().DeleteSubscription(mock.Anything, "s1").Return(nil).Once()

	_, err := fx.cache.ListAll(context.Background())
	require.NoError(t, err)

	deleted, err := fx.cache.Remove(context.Background(), "s1")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = fx.cache.Remove(context.Background(), "s1")
	require.NoError(t, err)
	assert.False(t, deleted)

	got, err := fx.cache.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "s2", got[0].ID)
}

func TestSubscriptionCache_Remove_NotFoundIsSuccess(t *testing.T) {
	fx := createTestSubscriptionCache(t)

	fx.subscriptionRepo.EXPECT().
		DeleteSubscription(mock.Anything, "missing").
		Return(repository.ErrSubscriptionNotFound)

	deleted, err := fx.cache.Remove(context.Background(), "missing")
	assert.NoError(t, err)
	assert.False(t, deleted)
}

func TestSubscriptionCache_Remove_StoreError(t *testing.T) {
	fx := createTestSubscriptionCache(t)

	fx.subscriptionRepo.EXPECT().
		DeleteSubscription(mock.Anything, "s1").
		Return(errors.New("unavailable"))

	deleted, err := fx.cache.Remove(context.Background(), "s1")
	assert.Error(t, err)
	assert.False(t, deleted)
}

func TestSubscriptionCache_Reset(t *testing.T) {
	fx := createTestSubscriptionCache(t)

	fx.subscriptionRepo.EXPECT().
		ListSubscriptions(mock.Anything).
		Return([]*entity.PushSubscription{newTestSubscription("s1", "u1")}, nil).
		Twice()

	_, err := fx.cache.ListAll(context.Background())
	require.NoError(t, err)

	fx.cache.Reset()

	_, err = fx.cache.ListAll(context.Background())
	require.NoError(t, err)
}

func TestSubscriptionCache_ListError(t *testing.T) {
	fx := createTestSubscriptionCache(t)

	fx.subscriptionRepo.EXPECT().
		ListSubscriptions(mock.Anything).
		Return(nil, errors.New("unavailable"))

	_, err := fx.cache.ListAll(context.Background())
	assert.Error(t, err)
}
