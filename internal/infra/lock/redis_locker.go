package lock

import (
	"context"
	"log/slog"
	"time"

	"fuelwatch/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "fuelwatch:lock:"

// releaseScript deletes the key only while it still holds our token
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// redisLocker holds a lock across replicas with SET NX PX. The TTL bounds how long a crashed
// holder blocks the next run.
type redisLocker struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewRedisLocker creates a Redis backed run locker
func NewRedisLocker(client *redis.Client, ttl time.Duration, logger *slog.Logger) service.RunLocker {
	return &redisLocker{client: client, ttl: ttl, logger: logger}
}

// TryAcquire takes the named lock without waiting
func (l *redisLocker) TryAcquire(ctx context.Context, name string) (service.ReleaseFunc, error) {
	key := keyPrefix + name
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to acquire lock %s", name)
	}
	if !ok {
		return nil, service.ErrLockNotAcquired
	}

	return func(ctx context.Context) error {
		released, err := releaseScript.Run(ctx, l.client, []string{key}, token).Int()
		if err != nil {
			return errors.Wrapf(err, "failed to release lock %s", name)
		}
		if released == 0 {
			l.logger.Warn("[Lock] Lock expired before release", slog.String("lock", name))
		}

		return nil
	}, nil
}
