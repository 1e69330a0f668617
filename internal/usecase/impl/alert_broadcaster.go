package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "fuelwatch/internal/delivery/context"
	"fuelwatch/internal/domain/entity"
	"fuelwatch/internal/domain/reminder"
	"fuelwatch/internal/domain/repository"
	"fuelwatch/internal/domain/service"

	"github.com/google/uuid"
)

// broadcastOutcome counts what happened while alerting one vehicle
type broadcastOutcome struct {
	alerted           int
	sent              int
	transient         int
	gone              int
	pruned            int
	timestampFailures int
}

// alertBroadcaster sends gated alerts of one vehicle, records their timestamps and prunes gone endpoints.
// It is shared by the scheduled dispatcher and the interactive observer.
type alertBroadcaster struct {
	reminderRepo repository.ReminderRepository
	publisher    service.EventPublisher
	metrics      service.DispatchMetrics
	fanout       *pushFanout
	defaultIcon  string
	storeTimeout time.Duration
	now          func() time.Time
}

func newAlertBroadcaster(
	reminderRepo repository.ReminderRepository,
	sender service.PushSender,
	publisher service.EventPublisher,
	metrics service.DispatchMetrics,
	settings ReminderSettings,
	now func() time.Time,
) *alertBroadcaster {
	return &alertBroadcaster{
		reminderRepo: reminderRepo,
		publisher:    publisher,
		metrics:      metrics,
		fanout: &pushFanout{
			sender:      sender,
			metrics:     metrics,
			timeout:     settings.SendTimeout,
			concurrency: settings.SendConcurrency,
		},
		defaultIcon:  settings.DefaultIcon,
		storeTimeout: settings.StoreTimeout,
		now:          now,
	}
}

// broadcast sends every alert to every subscription in one concurrent batch.
// A reminder whose alert reached at least one send attempt gets its timestamp recorded,
// whatever the individual deliveries returned.
func (b *alertBroadcaster) broadcast(
	ctx context.Context,
	logger *slog.Logger,
	vehicle *entity.Vehicle,
	alerts []reminder.EvaluatedReminder,
	subs []*entity.PushSubscription,
	cache *subscriptionCache,
) broadcastOutcome {
	var out broadcastOutcome
	if len(alerts) == 0 || len(subs) == 0 {
		return out
	}

	jobs := make([]sendJob, 0, len(alerts)*len(subs))
	for i, alert := range alerts {
		payload := reminder.AlertPayload(vehicle, alert, b.defaultIcon)
		jobs = append(jobs, broadcastJobs(i, subs, payload)...)
	}

	results := b.fanout.sendAll(ctx, logger, jobs)

	perAlert := make([][]sendResult, len(alerts))
	for _, r := range results {
		perAlert[r.tag] = append(perAlert[r.tag], r)
	}

	goneIDs := make(map[string]struct{})
	for i, alert := range alerts {
		totals := partition(perAlert[i])
		out.sent += totals.sent
		out.transient += totals.transient
		out.gone += len(totals.gone)
		for _, sub := range totals.gone {
			goneIDs[sub.ID] = struct{}{}
		}

		if !totals.attempted() {
			continue
		}
		out.alerted++

		sentAt := b.now()
		if err := b.recordTimestamp(ctx, alert.Reminder, sentAt); err != nil {
			out.timestampFailures++
			logger.Error("[Alerts] Failed to record notification timestamp",
				slog.String("vehicle_id", vehicle.ID),
				slog.String("reminder_id", alert.Reminder.ID),
				slog.Any("error", err),
			)
		}

		b.publish(ctx, logger, vehicle, alert, totals, sentAt)
	}

	if b.metrics != nil {
		b.metrics.AddAlerted(out.alerted)
	}

	for id := range goneIDs {
		deleted, err := cache.Remove(ctx, id)
		if err != nil {
			logger.Error("[Alerts] Failed to prune subscription",
				slog.String("subscription_id", id),
				slog.Any("error", err),
			)

			continue
		}
		if deleted {
			out.pruned++
		}
	}

	if b.metrics != nil && out.pruned > 0 {
		b.metrics.AddPruned(out.pruned)
	}

	return out
}

func (b *alertBroadcaster) recordTimestamp(ctx context.Context, r *entity.ServiceReminder, sentAt time.Time) error {
	storeCtx, cancel := context.WithTimeout(ctx, b.storeTimeout)
	defer cancel()

	if err := b.reminderRepo.UpdateLastNotificationSent(storeCtx, r.VehicleID, r.ID, sentAt); err != nil {
		return err
	}
	r.LastNotificationSent = &sentAt

	return nil
}

// publish emits the alert event. Failures are logged only.
func (b *alertBroadcaster) publish(
	ctx context.Context,
	logger *slog.Logger,
	vehicle *entity.Vehicle,
	alert reminder.EvaluatedReminder,
	totals fanoutTotals,
	sentAt time.Time,
) {
	if b.publisher == nil {
		return
	}

	event := &service.ReminderAlertEvent{
		EventID:     uuid.NewString(),
		RequestID:   deliverycontext.GetRequestIDFromContext(ctx),
		VehicleID:   vehicle.ID,
		OwnerID:     vehicle.OwnerID,
		ReminderID:  alert.Reminder.ID,
		ServiceType: alert.Reminder.ServiceType,
		IsOverdue:   alert.IsOverdue,
		Sent:        totals.sent,
		Failed:      totals.transient + len(totals.gone),
		AlertedAt:   sentAt,
	}

	if err := b.publisher.PublishReminderAlert(ctx, event); err != nil {
		logger.Warn("[Alerts] Failed to publish alert event",
			slog.String("reminder_id", alert.Reminder.ID),
			slog.Any("error", err),
		)
	}
}
