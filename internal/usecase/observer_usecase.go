package usecase

import (
	"context"

	"fuelwatch/internal/domain/reminder"
)

// ObserverPrefs carries the caller's own evaluation preferences
type ObserverPrefs struct {
	ThresholdDistance *int64 // overrides the configured distance threshold
	ThresholdDays     *int   // overrides the configured day threshold
	Notify            bool   // send due alerts to the caller's own subscriptions
}

// VehicleCheck is the evaluated state of one vehicle's reminders
type VehicleCheck struct {
	VehicleID       string
	CurrentOdometer int64
	Reminders       []reminder.EvaluatedReminder
	Alerts          []reminder.EvaluatedReminder // subset that passes the notification gate now
	Notified        *PushResult                  // set when Notify was requested and alerts were sent
}

// ObserverUsecase evaluates reminders of a single vehicle on behalf of its owner
type ObserverUsecase interface {
	// CheckVehicle evaluates the pending reminders of a vehicle owned by userID
	CheckVehicle(ctx context.Context, userID, vehicleID string, prefs ObserverPrefs) (*VehicleCheck, error)
}
