package main

import (
	"context"
	"log/slog"
	"os"

	"fuelwatch/config"
	"fuelwatch/internal/delivery"
	"fuelwatch/internal/delivery/worker"
	"fuelwatch/internal/delivery/worker/handler"
	"fuelwatch/internal/domain/service"
	firebaseapp "fuelwatch/internal/infra/firebase"
	"fuelwatch/internal/infra/lock"
	logs "fuelwatch/internal/infra/log"
	"fuelwatch/internal/infra/metrics"
	"fuelwatch/internal/infra/notification"
	"fuelwatch/internal/infra/persistence"
	"fuelwatch/internal/infra/pubsub"
	"fuelwatch/internal/usecase/impl"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle
	fx.Shutdowner

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectHandler(),
		injectDelivery(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		firebaseapp.NewAppProvider,
		metrics.NewRegistry,
		func(reg *prometheus.Registry) service.DispatchMetrics {
			return metrics.NewDispatchMetrics(reg)
		},
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			persistence.NewRepositories,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			notification.NewPushSender,
			pubsub.NewEventPublisher,
			lock.NewRunLocker,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewReminderSettings,
			impl.NewDispatchService,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewTriggerHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				worker.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))

				// Trigger graceful shutdown to execute all OnStop hooks
				if shutdownErr := params.Shutdown(); shutdownErr != nil {
					slog.Error("Failed to shutdown gracefully", slog.Any("error", shutdownErr))
					os.Exit(1)
				}
			}
		}()
	}
}
