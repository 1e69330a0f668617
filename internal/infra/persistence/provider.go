// Package persistence selects the document store that backs the repositories.
package persistence

import (
	"context"
	"log/slog"

	"fuelwatch/config"
	"fuelwatch/internal/domain/constants"
	"fuelwatch/internal/domain/repository"
	firebaseapp "fuelwatch/internal/infra/firebase"
	fsstore "fuelwatch/internal/infra/persistence/firestore"
	mongostore "fuelwatch/internal/infra/persistence/mongo"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Repositories is the set of repositories provided to the usecases
type Repositories struct {
	fx.Out

	Vehicles      repository.VehicleRepository
	FuelLogs      repository.FuelLogRepository
	Reminders     repository.ReminderRepository
	Subscriptions repository.SubscriptionRepository
}

// CloseFunc releases the store client
type CloseFunc func(ctx context.Context) error

// Params holds dependencies for the repositories, injected by Fx
type Params struct {
	fx.In

	Lc       fx.Lifecycle
	Ctx      context.Context
	Config   *config.Config
	Firebase *firebaseapp.AppProvider
	Logger   *slog.Logger
}

// NewRepositories opens the configured store and closes it on shutdown
func NewRepositories(params Params) (Repositories, error) {
	repos, closeFn, err := Open(params.Ctx, params.Config, params.Firebase, params.Logger)
	if err != nil {
		return Repositories{}, err
	}

	params.Lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return closeFn(ctx)
		},
	})

	return repos, nil
}

// Open connects to the store selected by store.provider
func Open(ctx context.Context, cfg *config.Config, apps *firebaseapp.AppProvider, logger *slog.Logger) (Repositories, CloseFunc, error) {
	switch cfg.Store.Provider {
	case constants.StoreProviderFirestore, "":
		client, err := fsstore.Open(ctx, apps)
		if err != nil {
			return Repositories{}, nil, err
		}

		logger.Info("Using Firestore document store")

		return Repositories{
				Vehicles:      fsstore.NewVehicleRepository(client, logger),
				FuelLogs:      fsstore.NewFuelLogRepository(client, logger),
				Reminders:     fsstore.NewReminderRepository(client, logger),
				Subscriptions: fsstore.NewSubscriptionRepository(client, logger),
			}, func(context.Context) error {
				return errors.WithStack(client.Close())
			}, nil

	case constants.StoreProviderMongo:
		client, db, err := mongostore.Open(ctx, cfg.Mongo)
		if err != nil {
			return Repositories{}, nil, err
		}

		logger.Info("Using MongoDB document store", slog.String("database", cfg.Mongo.Database))

		return Repositories{
				Vehicles:      mongostore.NewVehicleRepository(db, logger),
				FuelLogs:      mongostore.NewFuelLogRepository(db, logger),
				Reminders:     mongostore.NewReminderRepository(db, logger),
				Subscriptions: mongostore.NewSubscriptionRepository(db, logger),
			}, func(ctx context.Context) error {
				return errors.WithStack(client.Disconnect(ctx))
			}, nil

	default:
		return Repositories{}, nil, errors.Errorf("unsupported store provider: %s", cfg.Store.Provider)
	}
}
