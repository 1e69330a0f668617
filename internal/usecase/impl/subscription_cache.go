package impl

import (
	"context"
	"log/slog"
	"sync"
	"time"

	deliverycontext "fuelwatch/internal/delivery/context"
	"fuelwatch/internal/domain/entity"
	"fuelwatch/internal/domain/repository"

	"github.com/pkg/errors"
)

type cachedSubscriptions struct {
	subs      []*entity.PushSubscription
	fetchedAt time.Time
}

// subscriptionCache is a run-scoped, TTL-bounded view over the subscription store.
// Removed subscriptions disappear from cached lists immediately.
type subscriptionCache struct {
	subscriptionRepo repository.SubscriptionRepository
	ttl              time.Duration
	timeout          time.Duration
	now              func() time.Time
	logger           *slog.Logger

	mu      sync.Mutex
	all     *cachedSubscriptions
	byUser  map[string]*cachedSubscriptions
	removed map[string]struct{}
}

func newSubscriptionCache(
	subscriptionRepo repository.SubscriptionRepository,
	ttl, timeout time.Duration,
	now func() time.Time,
	logger *slog.Logger,
) *subscriptionCache {
	return &subscriptionCache{
		subscriptionRepo: subscriptionRepo,
		ttl:              ttl,
		timeout:          timeout,
		now:              now,
		logger:           logger,
		byUser:           make(map[string]*cachedSubscriptions),
		removed:          make(map[string]struct{}),
	}
}

// ListAll returns every deliverable subscription in the fleet
func (c *subscriptionCache) ListAll(ctx context.Context) ([]*entity.PushSubscription, error) {
	c.mu.Lock()
	if c.fresh(c.all) {
		subs := c.visible(c.all.subs)
		c.mu.Unlock()

		return subs, nil
	}
	c.mu.Unlock()

	storeCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	subs, err := c.subscriptionRepo.ListSubscriptions(storeCtx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list subscriptions")
	}

	subs = c.deliverable(ctx, subs)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.all = &cachedSubscriptions{subs: subs, fetchedAt: c.now()}

	return c.visible(subs), nil
}

// ListForUser returns the deliverable subscriptions registered by one user
func (c *subscriptionCache) ListForUser(ctx context.Context, userID string) ([]*entity.PushSubscription, error) {
	c.mu.Lock()
	if cached := c.byUser[userID]; c.fresh(cached) {
		subs := c.visible(cached.subs)
		c.mu.Unlock()

		return subs, nil
	}
	c.mu.Unlock()

	storeCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	subs, err := c.subscriptionRepo.ListSubscriptionsByUser(storeCtx, userID)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list subscriptions of user %s", userID)
	}

	subs = c.deliverable(ctx, subs)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.byUser[userID] = &cachedSubscriptions{subs: subs, fetchedAt: c.now()}

	return c.visible(subs), nil
}

// Remove deletes a subscription from the store and reports whether this call deleted it.
// An id already removed in this run, or unknown to the store, is not an error and returns false.
func (c *subscriptionCache) Remove(ctx context.Context, subscriptionID string) (bool, error) {
	c.mu.Lock()
	if _, claimed := c.removed[subscriptionID]; claimed {
		c.mu.Unlock()

		return false, nil
	}
	// claimed before the store call so concurrent vehicle workers delete it once
	c.removed[subscriptionID] = struct{}{}
	c.mu.Unlock()

	storeCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	err := c.subscriptionRepo.DeleteSubscription(storeCtx, subscriptionID)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, repository.ErrSubscriptionNotFound):
		return false, nil
	default:
		c.mu.Lock()
		delete(c.removed, subscriptionID)
		c.mu.Unlock()

		return false, errors.Wrapf(err, "failed to delete subscription %s", subscriptionID)
	}
}

// Reset drops everything cached. Called when the run ends.
func (c *subscriptionCache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.all = nil
	c.byUser = make(map[string]*cachedSubscriptions)
	c.removed = make(map[string]struct{})
}

func (c *subscriptionCache) fresh(cached *cachedSubscriptions) bool {
	return cached != nil && c.now().Sub(cached.fetchedAt) < c.ttl
}

// visible filters out subscriptions removed during this run. Caller holds mu.
func (c *subscriptionCache) visible(subs []*entity.PushSubscription) []*entity.PushSubscription {
	if len(c.removed) == 0 {
		return subs
	}

	out := make([]*entity.PushSubscription, 0, len(subs))
	for _, sub := range subs {
		if _, gone := c.removed[sub.ID]; !gone {
			out = append(out, sub)
		}
	}

	return out
}

// deliverable skips subscriptions that lack an endpoint or keys
func (c *subscriptionCache) deliverable(ctx context.Context, subs []*entity.PushSubscription) []*entity.PushSubscription {
	logger := deliverycontext.GetLoggerOrDefault(ctx, c.logger)

	out := make([]*entity.PushSubscription, 0, len(subs))
	for _, sub := range subs {
		if sub == nil || !sub.IsComplete() {
			id := ""
			if sub != nil {
				id = sub.ID
			}
			logger.Warn("[Subscriptions] Skipping malformed subscription", slog.String("subscription_id", id))

			continue
		}
		out = append(out, sub)
	}

	return out
}
