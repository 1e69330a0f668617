package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "fuelwatch/internal/delivery/context"
	"fuelwatch/internal/domain/entity"
	domainerrors "fuelwatch/internal/domain/errors"
	"fuelwatch/internal/domain/reminder"
	"fuelwatch/internal/domain/repository"
	"fuelwatch/internal/domain/service"
	"fuelwatch/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type observerService struct {
	vehicleRepo      repository.VehicleRepository
	fuelLogRepo      repository.FuelLogRepository
	reminderRepo     repository.ReminderRepository
	subscriptionRepo repository.SubscriptionRepository
	sender           service.PushSender
	broadcaster      *alertBroadcaster
	settings         ReminderSettings
	logger           *slog.Logger
	now              func() time.Time
}

// ObserverServiceParams holds dependencies for ObserverService, injected by Fx.
type ObserverServiceParams struct {
	fx.In

	VehicleRepo      repository.VehicleRepository
	FuelLogRepo      repository.FuelLogRepository
	ReminderRepo     repository.ReminderRepository
	SubscriptionRepo repository.SubscriptionRepository
	Sender           service.PushSender
	Publisher        service.EventPublisher  `optional:"true"`
	Metrics          service.DispatchMetrics `optional:"true"`
	Settings         ReminderSettings
	Logger           *slog.Logger
}

// NewObserverService creates the per-vehicle reminder observer
func NewObserverService(params ObserverServiceParams) usecase.ObserverUsecase {
	return newObserverService(params, time.Now)
}

func newObserverService(params ObserverServiceParams, now func() time.Time) *observerService {
	return &observerService{
		vehicleRepo:      params.VehicleRepo,
		fuelLogRepo:      params.FuelLogRepo,
		reminderRepo:     params.ReminderRepo,
		subscriptionRepo: params.SubscriptionRepo,
		sender:           params.Sender,
		broadcaster: newAlertBroadcaster(
			params.ReminderRepo, params.Sender, params.Publisher, params.Metrics, params.Settings, now,
		),
		settings: params.Settings,
		logger:   params.Logger,
		now:      now,
	}
}

// CheckVehicle evaluates the pending reminders of one vehicle with the caller's thresholds
func (s *observerService) CheckVehicle(ctx context.Context, userID, vehicleID string, prefs usecase.ObserverPrefs) (*usecase.VehicleCheck, error) {
	logger := deliverycontext.GetLoggerOrDefault(ctx, s.logger)

	lookupCtx, cancelLookup := context.WithTimeout(ctx, s.settings.StoreTimeout)
	vehicle, err := findOwnedVehicle(lookupCtx, s.vehicleRepo, userID, vehicleID)
	cancelLookup()
	if err != nil {
		return nil, err
	}

	now := s.now()
	odometers := newOdometerResolver(s.fuelLogRepo, s.settings.StoreTimeout)
	odometer, err := odometers.LatestOdometer(ctx, vehicle.ID)
	if err != nil {
		return nil, errors.WithStack(domainerrors.NewStoreExecuteError(err, "failed to resolve odometer"))
	}

	storeCtx, cancel := context.WithTimeout(ctx, s.settings.StoreTimeout)
	reminders, err := s.reminderRepo.FindPendingReminders(storeCtx, vehicle.ID)
	cancel()
	if err != nil {
		return nil, errors.WithStack(domainerrors.NewStoreExecuteError(err, "failed to load reminders"))
	}

	evaluated := reminder.EvaluateAll(reminder.Pending(reminders), odometer, now, s.thresholds(prefs))
	check := &usecase.VehicleCheck{
		VehicleID:       vehicle.ID,
		CurrentOdometer: odometer,
		Reminders:       evaluated,
		Alerts:          reminder.Gated(evaluated, now, s.settings.Cooldown),
	}

	if !prefs.Notify || len(check.Alerts) == 0 {
		return check, nil
	}

	if err := s.sender.Ready(); err != nil {
		return nil, errors.WithStack(err)
	}

	cache := newSubscriptionCache(s.subscriptionRepo, s.settings.SubscriptionCacheTTL, s.settings.StoreTimeout, s.now, s.logger)
	defer cache.Reset()

	subs, err := cache.ListForUser(ctx, userID)
	if err != nil {
		return nil, errors.WithStack(domainerrors.NewStoreExecuteError(err, "failed to load subscriptions"))
	}

	// Sending must not be interrupted halfway once started.
	out := s.broadcaster.broadcast(context.WithoutCancel(ctx), logger, vehicle, check.Alerts, subs, cache)
	check.Notified = &usecase.PushResult{
		Sent:    out.sent,
		Expired: out.gone,
		Failed:  out.transient,
	}

	logger.Info("[Observer] Alerts sent",
		slog.String("vehicle_id", vehicle.ID),
		slog.Int("alerts", out.alerted),
		slog.Int("sent", out.sent),
		slog.Int("expired", out.gone),
	)

	return check, nil
}

func (s *observerService) thresholds(prefs usecase.ObserverPrefs) reminder.Thresholds {
	th := s.settings.Thresholds
	if prefs.ThresholdDistance != nil && *prefs.ThresholdDistance > 0 {
		th.Distance = *prefs.ThresholdDistance
	}
	if prefs.ThresholdDays != nil && *prefs.ThresholdDays > 0 {
		th.Days = *prefs.ThresholdDays
	}

	return th
}

// findOwnedVehicle loads a vehicle and checks that userID owns it
func findOwnedVehicle(ctx context.Context, vehicleRepo repository.VehicleRepository, userID, vehicleID string) (*entity.Vehicle, error) {
	vehicle, err := vehicleRepo.FindVehicleByID(ctx, vehicleID)
	if err != nil {
		if errors.Is(err, repository.ErrVehicleNotFound) {
			return nil, errors.WithStack(domainerrors.ErrVehicleNotFound)
		}

		return nil, errors.WithStack(domainerrors.NewStoreExecuteError(err, "failed to find vehicle"))
	}

	if vehicle.OwnerID != userID {
		return nil, errors.WithStack(domainerrors.ErrVehicleOwnershipViolation)
	}

	return vehicle, nil
}
