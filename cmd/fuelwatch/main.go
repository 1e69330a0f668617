package main

import (
	"context"
	"log/slog"
	"os"

	"fuelwatch/config"
	"fuelwatch/internal/delivery"
	"fuelwatch/internal/delivery/api"
	"fuelwatch/internal/delivery/api/middleware"
	"fuelwatch/internal/delivery/api/router/handler"
	"fuelwatch/internal/delivery/scheduler"
	"fuelwatch/internal/domain/service"
	"fuelwatch/internal/infra/auth"
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
		injectMiddleware(),
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
		newDispatchMetrics,
	)
}

// newDispatchMetrics registers the dispatch collectors on the shared registry
func newDispatchMetrics(reg *prometheus.Registry) service.DispatchMetrics {
	return metrics.NewDispatchMetrics(reg)
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
			auth.NewFirebaseVerifier,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewReminderSettings,
			impl.NewDispatchService,
			impl.NewObserverService,
			impl.NewPushService,
			impl.NewSubscriptionService,
			impl.NewConsumptionService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewCronHandler,
			handler.NewReminderHandler,
			handler.NewPushHandler,
			handler.NewSubscriptionHandler,
			handler.NewVehicleHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				api.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
			fx.Annotate(
				scheduler.NewScheduler,
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
