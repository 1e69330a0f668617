package mongo

import (
	"context"
	"log/slog"
	"time"

	"fuelwatch/internal/domain/constants"
	"fuelwatch/internal/domain/entity"
	"fuelwatch/internal/domain/repository"
	"fuelwatch/internal/infra/persistence/document"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// vehicleRepository implements repository.VehicleRepository
type vehicleRepository struct {
	collection *mongo.Collection
	logger     *slog.Logger
}

// NewVehicleRepository is the constructor for vehicleRepository.
func NewVehicleRepository(db *mongo.Database, logger *slog.Logger) repository.VehicleRepository {
	return &vehicleRepository{collection: db.Collection(constants.CollectionVehicles), logger: logger}
}

// ListVehicles retrieves every vehicle in the fleet.
func (repo *vehicleRepository) ListVehicles(ctx context.Context) ([]*entity.Vehicle, error) {
	cursor, err := repo.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list vehicles")
	}

	return collect(ctx, repo.logger, cursor, document.Vehicle)
}

// FindVehicleByID retrieves a vehicle by its document ID.
func (repo *vehicleRepository) FindVehicleByID(ctx context.Context, id string) (*entity.Vehicle, error) {
	var raw bson.M
	if err := repo.collection.FindOne(ctx, idFilter(id)).Decode(&raw); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrVehicleNotFound
		}

		return nil, errors.Wrap(err, "failed to find vehicle by ID")
	}

	return document.Vehicle(id, document.Fields(raw))
}

// fuelLogRepository implements repository.FuelLogRepository
type fuelLogRepository struct {
	collection *mongo.Collection
	logger     *slog.Logger
}

// NewFuelLogRepository is the constructor for fuelLogRepository.
func NewFuelLogRepository(db *mongo.Database, logger *slog.Logger) repository.FuelLogRepository {
	return &fuelLogRepository{collection: db.Collection(constants.CollectionFuelRecords), logger: logger}
}

// FindLatestFuelLog retrieves the record with the highest odometer.
func (repo *fuelLogRepository) FindLatestFuelLog(ctx context.Context, vehicleID string) (*entity.FuelLogEntry, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: constants.FieldOdometer, Value: -1}}).
		SetLimit(1)

	cursor, err := repo.collection.Find(ctx, bson.M{constants.FieldVehicleID: vehicleID}, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to find latest fuel record of vehicle %s", vehicleID)
	}

	logs, err := collect(ctx, repo.logger, cursor, fuelLogDecoder(vehicleID))
	if err != nil {
		return nil, err
	}
	if len(logs) == 0 {
		return nil, repository.ErrFuelLogNotFound
	}

	return logs[0], nil
}

// ListFuelLogs retrieves all records of a vehicle.
func (repo *fuelLogRepository) ListFuelLogs(ctx context.Context, vehicleID string) ([]*entity.FuelLogEntry, error) {
	cursor, err := repo.collection.Find(ctx, bson.M{constants.FieldVehicleID: vehicleID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list fuel records of vehicle %s", vehicleID)
	}

	return collect(ctx, repo.logger, cursor, fuelLogDecoder(vehicleID))
}

func fuelLogDecoder(vehicleID string) func(string, document.Fields) (*entity.FuelLogEntry, error) {
	return func(id string, f document.Fields) (*entity.FuelLogEntry, error) {
		return document.FuelLogEntry(id, vehicleID, f)
	}
}

// reminderRepository implements repository.ReminderRepository
type reminderRepository struct {
	collection *mongo.Collection
	logger     *slog.Logger
}

// NewReminderRepository is the constructor for reminderRepository.
func NewReminderRepository(db *mongo.Database, logger *slog.Logger) repository.ReminderRepository {
	return &reminderRepository{collection: db.Collection(constants.CollectionServiceReminders), logger: logger}
}

// FindPendingReminders retrieves reminders of a vehicle that are not completed.
// A missing isCompleted field counts as pending.
func (repo *reminderRepository) FindPendingReminders(ctx context.Context, vehicleID string) ([]*entity.ServiceReminder, error) {
	filter := bson.M{
		constants.FieldVehicleID:   vehicleID,
		constants.FieldIsCompleted: bson.M{"$ne": true},
	}

	cursor, err := repo.collection.Find(ctx, filter)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to find pending reminders of vehicle %s", vehicleID)
	}

	return collect(ctx, repo.logger, cursor, func(id string, f document.Fields) (*entity.ServiceReminder, error) {
		return document.ServiceReminder(id, vehicleID, f), nil
	})
}

// UpdateLastNotificationSent stores the timestamp as an ISO string, like the web client does.
func (repo *reminderRepository) UpdateLastNotificationSent(ctx context.Context, vehicleID, reminderID string, sentAt time.Time) error {
	filter := idFilter(reminderID)
	filter[constants.FieldVehicleID] = vehicleID

	res, err := repo.collection.UpdateOne(ctx, filter, bson.M{
		"$set": bson.M{constants.FieldLastNotificationSent: document.FormatTime(sentAt)},
	})
	if err != nil {
		return errors.Wrapf(err, "failed to update reminder %s", reminderID)
	}
	if res.MatchedCount == 0 {
		return repository.ErrReminderNotFound
	}

	return nil
}
