// Package scheduler runs the reminder check on an in-process cron schedule.
package scheduler

import (
	"context"
	"log/slog"

	"fuelwatch/config"
	"fuelwatch/internal/delivery"
	deliverycontext "fuelwatch/internal/delivery/context"
	domainerrors "fuelwatch/internal/domain/errors"
	"fuelwatch/internal/domain/lifecycle"
	"fuelwatch/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"go.uber.org/fx"
)

// slogAdapter implements cron.Logger
type slogAdapter struct {
	logger *slog.Logger
}

func (a slogAdapter) Info(msg string, keysAndValues ...any) {
	a.logger.Debug("[Scheduler] "+msg, keysAndValues...)
}

func (a slogAdapter) Error(err error, msg string, keysAndValues ...any) {
	a.logger.Error("[Scheduler] "+msg, append(keysAndValues, slog.Any("error", err))...)
}

type cronScheduler struct {
	enabled    bool
	schedule   string
	dispatchUC usecase.DispatchUsecase
	logger     *slog.Logger

	cron *cron.Cron

	// base is cancelled on shutdown so a running check stops between vehicles
	base   context.Context
	cancel context.CancelFunc
}

// SchedulerParams holds dependencies for the scheduler, injected by Fx
type SchedulerParams struct {
	fx.In

	Lc         fx.Lifecycle
	Cfg        *config.Config
	Logger     *slog.Logger
	DispatchUC usecase.DispatchUsecase
}

// NewScheduler creates the cron delivery. It does nothing unless cron.enabled is set.
func NewScheduler(params SchedulerParams) (delivery.Delivery, error) {
	base, cancel := context.WithCancel(context.Background())
	s := &cronScheduler{
		dispatchUC: params.DispatchUC,
		logger:     params.Logger,
		base:       base,
		cancel:     cancel,
	}

	if cfg := params.Cfg.Cron; cfg != nil && cfg.Enabled {
		s.enabled = true
		s.schedule = cfg.Schedule

		adapter := slogAdapter{logger: params.Logger}
		s.cron = cron.New(cron.WithChain(
			cron.Recover(adapter),
			cron.SkipIfStillRunning(adapter),
		))

		if _, err := s.cron.AddFunc(s.schedule, s.runOnce); err != nil {
			return nil, errors.Wrapf(err, "invalid cron schedule %q", s.schedule)
		}
	}

	params.Lc.Append(fx.Hook{
		OnStop: s.stop,
	})

	return s, nil
}

// Serve starts the schedule and returns immediately
func (s *cronScheduler) Serve(context.Context) error {
	if !s.enabled {
		s.logger.Info("[Scheduler] Cron disabled, relying on the HTTP trigger")

		return nil
	}

	s.logger.Info("[Scheduler] Starting reminder schedule", slog.String("schedule", s.schedule))
	s.cron.Start()

	return nil
}

// runOnce is the scheduled job
func (s *cronScheduler) runOnce() {
	ctx, logger := deliverycontext.WithRequestScope(s.base, s.logger, "cron-"+uuid.NewString())

	summary, err := s.dispatchUC.Run(ctx)
	if err != nil {
		if errors.Is(err, domainerrors.ErrDispatchAlreadyRunning) {
			logger.Info("[Scheduler] Another replica is running the reminder check, skipping")

			return
		}

		logger.Error("[Scheduler] Reminder check failed", slog.Any("error", err))

		return
	}

	logger.Info("[Scheduler] Reminder check finished",
		slog.Int("alerted", summary.AlertedReminders),
		slog.Bool("aborted", summary.Aborted),
	)
}

// stop cancels the running job between vehicles and waits for it to return
func (s *cronScheduler) stop(ctx context.Context) error {
	s.cancel()
	if !s.enabled {
		return nil
	}

	s.logger.Info("[Scheduler] Stopping reminder schedule")

	stopCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
	defer cancel()

	select {
	case <-s.cron.Stop().Done():
		return nil
	case <-stopCtx.Done():
		return errors.WithStack(stopCtx.Err())
	}
}
