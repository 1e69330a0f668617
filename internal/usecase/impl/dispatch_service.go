package impl

import (
	"context"
	"log/slog"
	"sync"
	"time"

	deliverycontext "fuelwatch/internal/delivery/context"
	"fuelwatch/internal/domain/constants"
	"fuelwatch/internal/domain/entity"
	domainerrors "fuelwatch/internal/domain/errors"
	"fuelwatch/internal/domain/reminder"
	"fuelwatch/internal/domain/repository"
	"fuelwatch/internal/domain/service"
	"fuelwatch/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"golang.org/x/sync/errgroup"
)

// dispatchRun holds the state owned by a single run. Nothing in it outlives Run.
type dispatchRun struct {
	now       time.Time
	odometers *odometerResolver
	subs      *subscriptionCache
}

// vehicleResult is what processing one vehicle contributed to the summary
type vehicleResult struct {
	failed    bool
	skipped   bool
	evaluated int
	broadcastOutcome
}

type dispatchService struct {
	vehicleRepo      repository.VehicleRepository
	fuelLogRepo      repository.FuelLogRepository
	reminderRepo     repository.ReminderRepository
	subscriptionRepo repository.SubscriptionRepository
	sender           service.PushSender
	locker           service.RunLocker
	metrics          service.DispatchMetrics
	broadcaster      *alertBroadcaster
	settings         ReminderSettings
	logger           *slog.Logger
	now              func() time.Time
}

// DispatchServiceParams holds dependencies for DispatchService, injected by Fx.
type DispatchServiceParams struct {
	fx.In

	VehicleRepo      repository.VehicleRepository
	FuelLogRepo      repository.FuelLogRepository
	ReminderRepo     repository.ReminderRepository
	SubscriptionRepo repository.SubscriptionRepository
	Sender           service.PushSender
	Publisher        service.EventPublisher  `optional:"true"`
	Metrics          service.DispatchMetrics `optional:"true"`
	Locker           service.RunLocker       `optional:"true"`
	Settings         ReminderSettings
	Logger           *slog.Logger
}

// NewDispatchService creates the fleet-wide reminder dispatcher
func NewDispatchService(params DispatchServiceParams) usecase.DispatchUsecase {
	return newDispatchService(params, time.Now)
}

func newDispatchService(params DispatchServiceParams, now func() time.Time) *dispatchService {
	return &dispatchService{
		vehicleRepo:      params.VehicleRepo,
		fuelLogRepo:      params.FuelLogRepo,
		reminderRepo:     params.ReminderRepo,
		subscriptionRepo: params.SubscriptionRepo,
		sender:           params.Sender,
		locker:           params.Locker,
		metrics:          params.Metrics,
		broadcaster: newAlertBroadcaster(
			params.ReminderRepo, params.Sender, params.Publisher, params.Metrics, params.Settings, now,
		),
		settings: params.Settings,
		logger:   params.Logger,
		now:      now,
	}
}

// Run evaluates every vehicle and sends the alerts that pass the notification gate.
// Returns ErrDispatchAlreadyRunning when another run holds the lock.
func (s *dispatchService) Run(ctx context.Context) (*usecase.RunSummary, error) {
	if s.locker != nil {
		release, err := s.locker.TryAcquire(ctx, constants.LockCheckReminders)
		if err != nil {
			if errors.Is(err, service.ErrLockNotAcquired) {
				return nil, errors.WithStack(domainerrors.ErrDispatchAlreadyRunning)
			}

			return nil, errors.Wrap(err, "failed to acquire run lock")
		}
		defer func() {
			if err := release(context.WithoutCancel(ctx)); err != nil {
				deliverycontext.GetLoggerOrDefault(ctx, s.logger).Warn("[Dispatcher] Failed to release run lock",
					slog.Any("error", err),
				)
			}
		}()
	}

	started := s.now()
	summary := &usecase.RunSummary{RunID: uuid.NewString()}

	logger := deliverycontext.GetLoggerOrDefault(ctx, s.logger).With(slog.String("run_id", summary.RunID))
	ctx = deliverycontext.WithLogger(ctx, logger)

	machine := newDispatchMachine(logger)
	run := &dispatchRun{
		now:       started,
		odometers: newOdometerResolver(s.fuelLogRepo, s.settings.StoreTimeout),
		subs: newSubscriptionCache(
			s.subscriptionRepo, s.settings.SubscriptionCacheTTL, s.settings.StoreTimeout, s.now, s.logger,
		),
	}
	defer run.subs.Reset()

	// Missing push credentials abort the run before any vehicle is touched.
	if err := s.sender.Ready(); err != nil {
		machine.fail(ctx, err)

		return s.finish(logger, summary, started, machine)
	}

	if err := machine.advance(ctx, eventEnumerate); err != nil {
		machine.fail(ctx, err)

		return s.finish(logger, summary, started, machine)
	}

	vehicles, err := s.listVehicles(ctx)
	if err != nil {
		machine.fail(ctx, err)

		return s.finish(logger, summary, started, machine)
	}

	logger.Info("[Dispatcher] Checking reminders", slog.Int("vehicle_count", len(vehicles)))

	if err := machine.advance(ctx, eventProcess); err != nil {
		machine.fail(ctx, err)

		return s.finish(logger, summary, started, machine)
	}

	s.processAll(ctx, logger, run, vehicles, summary)

	if err := machine.advance(ctx, eventSummarize); err != nil {
		machine.fail(ctx, err)

		return s.finish(logger, summary, started, machine)
	}

	if err := machine.advance(ctx, eventComplete); err != nil {
		machine.fail(ctx, err)

		return s.finish(logger, summary, started, machine)
	}

	return s.finish(logger, summary, started, machine)
}

func (s *dispatchService) listVehicles(ctx context.Context) ([]*entity.Vehicle, error) {
	storeCtx, cancel := context.WithTimeout(ctx, s.settings.StoreTimeout)
	defer cancel()

	vehicles, err := s.vehicleRepo.ListVehicles(storeCtx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list vehicles")
	}

	return vehicles, nil
}

// processAll walks the vehicles with bounded parallelism. Cancellation is checked whenever a
// worker slot frees up; a vehicle already started runs to completion on a detached context.
func (s *dispatchService) processAll(
	ctx context.Context,
	logger *slog.Logger,
	run *dispatchRun,
	vehicles []*entity.Vehicle,
	summary *usecase.RunSummary,
) {
	var (
		mu    sync.Mutex
		g     errgroup.Group
		slots = make(chan struct{}, max(s.settings.VehicleConcurrency, 1))
	)

	detached := context.WithoutCancel(ctx)

	for _, vehicle := range vehicles {
		slots <- struct{}{}

		if ctx.Err() != nil {
			<-slots

			mu.Lock()
			summary.Aborted = true
			mu.Unlock()

			logger.Warn("[Dispatcher] Run cancelled, remaining vehicles are left for the next run",
				slog.Any("error", ctx.Err()),
			)

			break
		}

		g.Go(func() error {
			defer func() { <-slots }()

			res := s.processVehicle(detached, logger, run, vehicle)

			mu.Lock()
			mergeVehicleResult(summary, res)
			mu.Unlock()

			return nil
		})
	}

	_ = g.Wait()
}

// processVehicle runs the per-vehicle pipeline. Data errors skip the vehicle.
func (s *dispatchService) processVehicle(
	ctx context.Context,
	logger *slog.Logger,
	run *dispatchRun,
	vehicle *entity.Vehicle,
) vehicleResult {
	vlog := logger.With(slog.String("vehicle_id", vehicle.ID))

	odometer, err := run.odometers.LatestOdometer(ctx, vehicle.ID)
	if err != nil {
		vlog.Error("[Dispatcher] Failed to resolve odometer, skipping vehicle", slog.Any("error", err))

		return vehicleResult{failed: true}
	}
	if odometer == reminder.UnknownOdometer {
		vlog.Debug("[Dispatcher] No fuel records, distance based reminders are not evaluated")
	}

	reminders, err := s.loadPendingReminders(ctx, vehicle.ID)
	if err != nil {
		vlog.Error("[Dispatcher] Failed to load reminders, skipping vehicle", slog.Any("error", err))

		return vehicleResult{failed: true}
	}
	if len(reminders) == 0 {
		return vehicleResult{skipped: true}
	}

	evaluated := reminder.EvaluateAll(reminders, odometer, run.now, s.settings.Thresholds)
	alerts := reminder.Gated(evaluated, run.now, s.settings.Cooldown)

	res := vehicleResult{evaluated: len(evaluated)}
	if len(alerts) == 0 {
		return res
	}

	subs, err := s.audience(ctx, run, vehicle)
	if err != nil {
		vlog.Error("[Dispatcher] Failed to load subscriptions, skipping vehicle", slog.Any("error", err))
		res.failed = true

		return res
	}
	if len(subs) == 0 {
		vlog.Info("[Dispatcher] No subscriptions to notify", slog.Int("alert_count", len(alerts)))

		return res
	}

	res.broadcastOutcome = s.broadcaster.broadcast(ctx, vlog, vehicle, alerts, subs, run.subs)

	vlog.Info("[Dispatcher] Vehicle processed",
		slog.Int("alerts", res.alerted),
		slog.Int("sent", res.sent),
		slog.Int("transient", res.transient),
		slog.Int("gone", res.gone),
	)

	return res
}

func (s *dispatchService) loadPendingReminders(ctx context.Context, vehicleID string) ([]*entity.ServiceReminder, error) {
	storeCtx, cancel := context.WithTimeout(ctx, s.settings.StoreTimeout)
	defer cancel()

	reminders, err := s.reminderRepo.FindPendingReminders(storeCtx, vehicleID)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to find pending reminders of vehicle %s", vehicleID)
	}

	return reminder.Pending(reminders), nil
}

// audience returns the subscriptions an alert for the vehicle goes to
func (s *dispatchService) audience(ctx context.Context, run *dispatchRun, vehicle *entity.Vehicle) ([]*entity.PushSubscription, error) {
	if s.settings.Audience == AudienceOwner {
		return run.subs.ListForUser(ctx, vehicle.OwnerID)
	}

	return run.subs.ListAll(ctx)
}

func (s *dispatchService) finish(
	logger *slog.Logger,
	summary *usecase.RunSummary,
	started time.Time,
	machine *dispatchMachine,
) (*usecase.RunSummary, error) {
	summary.Duration = s.now().Sub(started)
	runErr := machine.Reason()

	result := constants.RunResultCompleted
	switch {
	case runErr != nil:
		result = constants.RunResultFailed
	case summary.Aborted:
		result = constants.RunResultAborted
	}

	if s.metrics != nil {
		s.metrics.ObserveRun(result, summary.Duration)
	}

	if runErr != nil {
		logger.Error("[Dispatcher] Run failed",
			slog.Any("error", runErr),
			slog.Duration("duration", summary.Duration),
		)

		return summary, runErr
	}

	logger.Info("[Dispatcher] Run finished",
		slog.String("result", result),
		slog.Int("alerted_reminders", summary.AlertedReminders),
		slog.Int("evaluated_reminders", summary.EvaluatedReminders),
		slog.Int("vehicles_processed", summary.VehiclesProcessed),
		slog.Int("vehicles_skipped", summary.VehiclesSkipped),
		slog.Int("failed_vehicles", summary.FailedVehicles),
		slog.Int("sent", summary.Sent),
		slog.Int("transient", summary.Transient),
		slog.Int("gone", summary.Gone),
		slog.Int("pruned", summary.Pruned),
		slog.Int("timestamp_write_failures", summary.TimestampWriteFailures),
		slog.Duration("duration", summary.Duration),
	)

	return summary, nil
}

func mergeVehicleResult(summary *usecase.RunSummary, res vehicleResult) {
	switch {
	case res.failed:
		summary.FailedVehicles++
	case res.skipped:
		summary.VehiclesSkipped++
	default:
		summary.VehiclesProcessed++
	}

	summary.EvaluatedReminders += res.evaluated
	summary.AlertedReminders += res.alerted
	summary.Sent += res.sent
	summary.Transient += res.transient
	summary.Gone += res.gone
	summary.Pruned += res.pruned
	summary.TimestampWriteFailures += res.timestampFailures
}
