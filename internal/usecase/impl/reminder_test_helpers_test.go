package impl

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"fuelwatch/internal/domain/entity"
	"fuelwatch/internal/domain/reminder"

	"github.com/stretchr/testify/mock"
)

var testNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// boundedCtx matches a store call made under a deadline
func boundedCtx() any {
	return mock.MatchedBy(func(ctx context.Context) bool {
		_, ok := ctx.Deadline()

		return ok
	})
}

func newTestSettings() ReminderSettings {
	return ReminderSettings{
		Thresholds:           reminder.Thresholds{Distance: 1000, Days: 15},
		Cooldown:             48 * time.Hour,
		SubscriptionCacheTTL: 10 * time.Minute,
		SendTimeout:          time.Second,
		StoreTimeout:         time.Second,
		VehicleConcurrency:   1,
		SendConcurrency:      4,
		DefaultIcon:          "/icon-192x192.png",
		Audience:             AudienceFleet,
	}
}

// testClock is a settable clock shared by a service under test
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock(now time.Time) *testClock {
	return &testClock{now: now}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(d)
}

func newTestSubscription(id, userID string) *entity.PushSubscription {
	return &entity.PushSubscription{
		ID:       id,
		UserID:   userID,
		Endpoint: "https://push.example.com/" + id,
		Keys:     entity.PushSubscriptionKeys{P256dh: "p256dh-" + id, Auth: "auth-" + id},
	}
}

func daysFrom(t time.Time, days int) *time.Time {
	d := t.AddDate(0, 0, days)

	return &d
}

func int64Ptr(v int64) *int64 {
	return &v
}
