package impl

import (
	"context"

	"fuelwatch/internal/domain/consumption"
	domainerrors "fuelwatch/internal/domain/errors"
	"fuelwatch/internal/domain/repository"
	"fuelwatch/internal/usecase"

	"github.com/pkg/errors"
)

type consumptionService struct {
	vehicleRepo repository.VehicleRepository
	fuelLogRepo repository.FuelLogRepository
}

// NewConsumptionService creates a new consumption service instance
func NewConsumptionService(vehicleRepo repository.VehicleRepository, fuelLogRepo repository.FuelLogRepository) usecase.ConsumptionUsecase {
	return &consumptionService{
		vehicleRepo: vehicleRepo,
		fuelLogRepo: fuelLogRepo,
	}
}

// GetConsumption processes the fuel log of a vehicle owned by the user
func (s *consumptionService) GetConsumption(ctx context.Context, userID, vehicleID string) (*usecase.ConsumptionReport, error) {
	vehicle, err := findOwnedVehicle(ctx, s.vehicleRepo, userID, vehicleID)
	if err != nil {
		return nil, err
	}

	logs, err := s.fuelLogRepo.ListFuelLogs(ctx, vehicle.ID)
	if err != nil {
		return nil, errors.WithStack(domainerrors.NewStoreExecuteError(err, "failed to list fuel logs"))
	}

	entries := consumption.Process(logs)
	report := &usecase.ConsumptionReport{
		VehicleID: vehicle.ID,
		Entries:   entries,
	}

	if avg, ok := consumption.Average(entries); ok {
		report.AverageConsumption = &avg
	}

	for _, e := range entries {
		if e.OdometerRegression {
			report.Regressions++
		}
	}

	return report, nil
}
