package firestore

import (
	"context"
	"log/slog"
	"time"

	"fuelwatch/internal/domain/constants"
	"fuelwatch/internal/domain/entity"
	"fuelwatch/internal/domain/repository"
	"fuelwatch/internal/infra/persistence/document"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
)

// vehicleRepository implements repository.VehicleRepository
type vehicleRepository struct {
	client *firestore.Client
	logger *slog.Logger
}

// NewVehicleRepository is the constructor for vehicleRepository.
func NewVehicleRepository(client *firestore.Client, logger *slog.Logger) repository.VehicleRepository {
	return &vehicleRepository{client: client, logger: logger}
}

// ListVehicles retrieves every vehicle in the fleet.
func (repo *vehicleRepository) ListVehicles(ctx context.Context) ([]*entity.Vehicle, error) {
	it := repo.client.Collection(constants.CollectionVehicles).Documents(ctx)

	vehicles, err := collect(repo.logger, it, document.Vehicle)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list vehicles")
	}

	return vehicles, nil
}

// FindVehicleByID retrieves a vehicle by its document ID.
func (repo *vehicleRepository) FindVehicleByID(ctx context.Context, id string) (*entity.Vehicle, error) {
	snap, err := repo.client.Collection(constants.CollectionVehicles).Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, repository.ErrVehicleNotFound
		}

		return nil, errors.Wrap(err, "failed to find vehicle by ID")
	}

	return document.Vehicle(snap.Ref.ID, snap.Data())
}

// fuelLogRepository implements repository.FuelLogRepository
type fuelLogRepository struct {
	client *firestore.Client
	logger *slog.Logger
}

// NewFuelLogRepository is the constructor for fuelLogRepository.
func NewFuelLogRepository(client *firestore.Client, logger *slog.Logger) repository.FuelLogRepository {
	return &fuelLogRepository{client: client, logger: logger}
}

func (repo *fuelLogRepository) records(vehicleID string) *firestore.CollectionRef {
	return repo.client.Collection(constants.CollectionVehicles).Doc(vehicleID).Collection(constants.CollectionFuelRecords)
}

// FindLatestFuelLog retrieves the record with the highest odometer.
func (repo *fuelLogRepository) FindLatestFuelLog(ctx context.Context, vehicleID string) (*entity.FuelLogEntry, error) {
	it := repo.records(vehicleID).
		OrderBy(constants.FieldOdometer, firestore.Desc).
		Limit(1).
		Documents(ctx)

	logs, err := collect(repo.logger, it, fuelLogDecoder(vehicleID))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to find latest fuel record of vehicle %s", vehicleID)
	}
	if len(logs) == 0 {
		return nil, repository.ErrFuelLogNotFound
	}

	return logs[0], nil
}

// ListFuelLogs retrieves all records of a vehicle.
func (repo *fuelLogRepository) ListFuelLogs(ctx context.Context, vehicleID string) ([]*entity.FuelLogEntry, error) {
	logs, err := collect(repo.logger, repo.records(vehicleID).Documents(ctx), fuelLogDecoder(vehicleID))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list fuel records of vehicle %s", vehicleID)
	}

	return logs, nil
}

func fuelLogDecoder(vehicleID string) func(string, document.Fields) (*entity.FuelLogEntry, error) {
	return func(id string, f document.Fields) (*entity.FuelLogEntry, error) {
		return document.FuelLogEntry(id, vehicleID, f)
	}
}

// reminderRepository implements repository.ReminderRepository
type reminderRepository struct {
	client *firestore.Client
	logger *slog.Logger
}

// NewReminderRepository is the constructor for reminderRepository.
func NewReminderRepository(client *firestore.Client, logger *slog.Logger) repository.ReminderRepository {
	return &reminderRepository{client: client, logger: logger}
}

func (repo *reminderRepository) reminders(vehicleID string) *firestore.CollectionRef {
	return repo.client.Collection(constants.CollectionVehicles).Doc(vehicleID).Collection(constants.CollectionServiceReminders)
}

// FindPendingReminders retrieves reminders of a vehicle that are not completed.
func (repo *reminderRepository) FindPendingReminders(ctx context.Context, vehicleID string) ([]*entity.ServiceReminder, error) {
	it := repo.reminders(vehicleID).Where(constants.FieldIsCompleted, "==", false).Documents(ctx)

	reminders, err := collect(repo.logger, it, func(id string, f document.Fields) (*entity.ServiceReminder, error) {
		return document.ServiceReminder(id, vehicleID, f), nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to find pending reminders of vehicle %s", vehicleID)
	}

	return reminders, nil
}

// UpdateLastNotificationSent stores the timestamp as an ISO string, like the web client does.
func (repo *reminderRepository) UpdateLastNotificationSent(ctx context.Context, vehicleID, reminderID string, sentAt time.Time) error {
	_, err := repo.reminders(vehicleID).Doc(reminderID).Update(ctx, []firestore.Update{
		{Path: constants.FieldLastNotificationSent, Value: document.FormatTime(sentAt)},
	})
	if err != nil {
		if isNotFound(err) {
			return repository.ErrReminderNotFound
		}

		return errors.Wrapf(err, "failed to update reminder %s", reminderID)
	}

	return nil
}
