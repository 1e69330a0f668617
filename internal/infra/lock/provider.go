package lock

import (
	"context"
	"log/slog"

	"fuelwatch/config"
	"fuelwatch/internal/domain/lifecycle"
	"fuelwatch/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

// LockerParams holds dependencies for RunLocker, injected by Fx
type LockerParams struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewRunLocker uses Redis when redis.addr is set, an in-process lock otherwise
func NewRunLocker(params LockerParams) (service.RunLocker, error) {
	locker, closeFn, err := Open(params.Ctx, params.Config.Redis, params.Logger)
	if err != nil {
		return nil, err
	}

	params.Lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return closeFn()
		},
	})

	return locker, nil
}

// Open creates the run locker for the given Redis configuration
func Open(ctx context.Context, cfg *config.RedisConfig, logger *slog.Logger) (service.RunLocker, func() error, error) {
	if cfg == nil || cfg.Addr == "" {
		logger.Info("Redis not configured, using in-process run lock")

		return NewLocalLocker(), func() error { return nil }, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()

		return nil, nil, errors.Wrap(err, "failed to connect to redis")
	}

	logger.Info("Using Redis run lock", slog.String("addr", cfg.Addr))

	closeFn := func() error {
		return errors.WithStack(client.Close())
	}

	return NewRedisLocker(client, cfg.LockTTL, logger), closeFn, nil
}
