package impl

import (
	"context"
	"testing"
	"time"

	"fuelwatch/internal/domain/entity"
	domainerrors "fuelwatch/internal/domain/errors"
	mockRepo "fuelwatch/internal/mocks/repository"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type consumptionServiceFixtures struct {
	service     *consumptionService
	vehicleRepo *mockRepo.MockVehicleRepository
	fuelLogRepo *mockRepo.MockFuelLogRepository
}

func createTestConsumptionService(t *testing.T) consumptionServiceFixtures {
	vehicleRepo := mockRepo.NewMockVehicleRepository(t)
	fuelLogRepo := mockRepo.NewMockFuelLogRepository(t)

	return consumptionServiceFixtures{
		service:     NewConsumptionService(vehicleRepo, fuelLogRepo).(*consumptionService),
		vehicleRepo: vehicleRepo,
		fuelLogRepo: fuelLogRepo,
	}
}

func TestConsumptionService_GetConsumption(t *testing.T) {
	fx := createTestConsumptionService(t)
	day := func(n int) time.Time { return testNow.AddDate(0, 0, n) }

	fx.vehicleRepo.EXPECT().FindVehicleByID(mock.Anything, "v1").Return(testVehicle("v1", "u1"), nil)
	fx.fuelLogRepo.EXPECT().ListFuelLogs(mock.Anything, "v1").Return([]*entity.FuelLogEntry{
		{ID: "f1", Odometer: 10000, Liters: 40, IsFillUp: true, Date: day(0)},
		{ID: "f2", Odometer: 10500, Liters: 35, IsFillUp: true, Date: day(7)},
		{ID: "f3", Odometer: 11000, Liters: 40, IsFillUp: true, Date: day(14)},
	}, nil)

	report, err := fx.service.GetConsumption(context.Background(), "u1", "v1")

	require.NoError(t, err)
	assert.Equal(t, "v1", report.VehicleID)
	require.Len(t, report.Entries, 3)
	require.NotNil(t, report.AverageConsumption)
	assert.Zero(t, report.Regressions)
}

func TestConsumptionService_GetConsumption_NotOwner(t *testing.T) {
	fx := createTestConsumptionService(t)

	fx.vehicleRepo.EXPECT().FindVehicleByID(mock.Anything, "v1").Return(testVehicle("v1", "u2"), nil)

	report, err := fx.service.GetConsumption(context.Background(), "u1", "v1")

	assert.Nil(t, report)
	assert.ErrorIs(t, err, domainerrors.ErrVehicleOwnershipViolation)
}

func TestConsumptionService_GetConsumption_NoLogs(t *testing.T) {
	fx := createTestConsumptionService(t)

	fx.vehicleRepo.EXPECT().FindVehicleByID(mock.Anything, "v1").Return(testVehicle("v1", "u1"), nil)
	fx.fuelLogRepo.EXPECT().ListFuelLogs(mock.Anything, "v1").Return(nil, nil)

	report, err := fx.service.GetConsumption(context.Background(), "u1", "v1")

	require.NoError(t, err)
	assert.Empty(t, report.Entries)
	assert.Nil(t, report.AverageConsumption)
}

func TestConsumptionService_GetConsumption_StoreError(t *testing.T) {
	fx := createTestConsumptionService(t)

	fx.vehicleRepo.EXPECT().FindVehicleByID(mock.Anything, "v1").Return(nil, errors.New("unavailable"))

	_, err := fx.service.GetConsumption(context.Background(), "u1", "v1")

	var storeErr *domainerrors.StoreExecuteError
	assert.ErrorAs(t, err, &storeErr)
}
