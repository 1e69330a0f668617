// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"time"

	"fuelwatch/internal/domain/entity"

	"github.com/pkg/errors"
)

// Domain-specific errors for vehicle persistence.
var (
	// ErrVehicleNotFound is returned when a vehicle is not found.
	ErrVehicleNotFound = errors.New("vehicle not found")
	// ErrFuelLogNotFound is returned when a vehicle has no fuel records.
	ErrFuelLogNotFound = errors.New("fuel log not found")
	// ErrReminderNotFound is returned when a service reminder is not found.
	ErrReminderNotFound = errors.New("service reminder not found")
)

// VehicleRepository defines read access to vehicles.
type VehicleRepository interface {
	// ListVehicles retrieves every vehicle in the fleet.
	ListVehicles(ctx context.Context) ([]*entity.Vehicle, error)

	// FindVehicleByID retrieves a vehicle by its document ID.
	FindVehicleByID(ctx context.Context, id string) (*entity.Vehicle, error)
}

// FuelLogRepository defines read access to the fuel records nested under a vehicle.
type FuelLogRepository interface {
	// FindLatestFuelLog retrieves the record with the highest odometer.
	// Returns ErrFuelLogNotFound when the vehicle has no records.
	FindLatestFuelLog(ctx context.Context, vehicleID string) (*entity.FuelLogEntry, error)

	// ListFuelLogs retrieves all records of a vehicle in no particular order.
	ListFuelLogs(ctx context.Context, vehicleID string) ([]*entity.FuelLogEntry, error)
}

// ReminderRepository defines access to the service reminders nested under a vehicle.
type ReminderRepository interface {
	// FindPendingReminders retrieves reminders of a vehicle that are not completed.
	FindPendingReminders(ctx context.Context, vehicleID string) ([]*entity.ServiceReminder, error)

	// UpdateLastNotificationSent sets the reminder's last-notification field. Writing the same value twice is harmless.
	UpdateLastNotificationSent(ctx context.Context, vehicleID, reminderID string, sentAt time.Time) error
}
