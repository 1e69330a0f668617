package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	domainerrors "fuelwatch/internal/domain/errors"
	firebaseapp "fuelwatch/internal/infra/firebase"
	"fuelwatch/internal/infra/lock"
	"fuelwatch/internal/infra/metrics"
	"fuelwatch/internal/infra/notification"
	"fuelwatch/internal/infra/persistence"
	"fuelwatch/internal/infra/pubsub"
	"fuelwatch/internal/usecase/impl"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var checkRemindersCmd = &cobra.Command{
	Use:   "check-reminders",
	Short: "Run one reminder check and print the run summary",
	RunE:  runCheckReminders,
}

func init() {
	rootCmd.AddCommand(checkRemindersCmd)
}

func runCheckReminders(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadRuntime()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	apps := firebaseapp.NewAppProvider(firebaseapp.AppProviderParams{Config: cfg, Logger: logger})

	repos, closeStore, err := persistence.Open(ctx, cfg, apps, logger)
	if err != nil {
		return err
	}
	defer func() { _ = closeStore(context.WithoutCancel(ctx)) }()

	locker, closeLock, err := lock.Open(ctx, cfg.Redis, logger)
	if err != nil {
		return err
	}
	defer func() { _ = closeLock() }()

	publisher, err := pubsub.Open(ctx, cfg.PubSub, logger)
	if err != nil {
		return err
	}
	defer func() { _ = publisher.Close() }()

	sender, err := notification.NewPushSender(notification.SenderParams{
		Ctx:      ctx,
		Config:   cfg,
		Logger:   logger,
		Firebase: apps,
	})
	if err != nil {
		return err
	}

	dispatcher := impl.NewDispatchService(impl.DispatchServiceParams{
		VehicleRepo:      repos.Vehicles,
		FuelLogRepo:      repos.FuelLogs,
		ReminderRepo:     repos.Reminders,
		SubscriptionRepo: repos.Subscriptions,
		Sender:           sender,
		Publisher:        publisher,
		Metrics:          metrics.NewDispatchMetrics(metrics.NewRegistry()),
		Locker:           locker,
		Settings:         impl.NewReminderSettings(cfg),
		Logger:           logger,
	})

	summary, err := dispatcher.Run(ctx)
	if err != nil {
		if errors.Is(err, domainerrors.ErrDispatchAlreadyRunning) {
			return errors.New("another reminder check is already running")
		}

		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")

	return enc.Encode(summary)
}
