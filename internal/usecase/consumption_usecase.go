package usecase

import (
	"context"

	"fuelwatch/internal/domain/consumption"
)

// ConsumptionReport is the processed fuel log of a vehicle
type ConsumptionReport struct {
	VehicleID          string                       `json:"vehicle_id"`
	Entries            []consumption.ProcessedEntry `json:"entries"`
	AverageConsumption *float64                     `json:"average_consumption,omitempty"`
	Regressions        int                          `json:"odometer_regressions"`
}

// ConsumptionUsecase defines fuel economy reporting
type ConsumptionUsecase interface {
	// GetConsumption processes the fuel log of a vehicle owned by userID
	GetConsumption(ctx context.Context, userID, vehicleID string) (*ConsumptionReport, error)
}
