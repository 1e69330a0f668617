package impl

import (
	"context"
	"sync"
	"testing"
	"time"

	"fuelwatch/internal/domain/entity"
	"fuelwatch/internal/domain/reminder"
	"fuelwatch/internal/domain/repository"
	mockRepo "fuelwatch/internal/mocks/repository"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestOdometerResolver_MemoizesPerVehicle(t *testing.T) {
	fuelLogRepo := mockRepo.NewMockFuelLogRepository(t)
	resolver := newOdometerResolver(fuelLogRepo, time.Second)
	ctx := context.Background()

	fuelLogRepo.EXPECT().
		FindLatestFuelLog(mock.Anything, "v1").
		Return(&entity.FuelLogEntry{ID: "f1", VehicleID: "v1", Odometer: 19200}, nil).
		Once()

	for range 3 {
		odometer, err := resolver.LatestOdometer(ctx, "v1")
		require.NoError(t, err)
		assert.Equal(t, int64(19200), odometer)
	}
}

func TestOdometerResolver_NoFuelLogs(t *testing.T) {
	fuelLogRepo := mockRepo.NewMockFuelLogRepository(t)
	resolver := newOdometerResolver(fuelLogRepo, time.Second)

	fuelLogRepo.EXPECT().
		FindLatestFuelLog(mock.Anything, "v1").
		Return(nil, repository.ErrFuelLogNotFound).
		Once()

	odometer, err := resolver.LatestOdometer(context.Background(), "v1")
	require.NoError(t, err)
	assert.Equal(t, reminder.UnknownOdometer, odometer)

	odometer, err = resolver.LatestOdometer(context.Background(), "v1")
	require.NoError(t, err)
	assert.Equal(t, reminder.UnknownOdometer, odometer)
}

func TestOdometerResolver_ErrorsAreNotCached(t *testing.T) {
	fuelLogRepo := mockRepo.NewMockFuelLogRepository(t)
	resolver := newOdometerResolver(fuelLogRepo, time.Second)

	fuelLogRepo.EXPECT().
		FindLatestFuelLog(mock.Anything, "v1").
		Return(nil, errors.New("deadline exceeded")).
		Once()
	fuelLogRepo.EXPECT().
		FindLatestFuelLog(mock.Anything, "v1").
		Return(&entity.FuelLogEntry{Odometer: 500}, nil).
		Once()

	_, err := resolver.LatestOdometer(context.Background(), "v1")
	require.Error(t, err)

	odometer, err := resolver.LatestOdometer(context.Background(), "v1")
	require.NoError(t, err)
	assert.Equal(t, int64(500), odometer)
}

func TestOdometerResolver_FreshResolverQueriesAgain(t *testing.T) {
	fuelLogRepo := mockRepo.NewMockFuelLogRepository(t)

	fuelLogRepo.EXPECT().
		FindLatestFuelLog(mock.Anything, "v1").
		Return(&entity.FuelLogEntry{Odometer: 100}, nil).
		Twice()

	for range 2 {
		resolver := newOdometerResolver(fuelLogRepo, time.Second)
		_, err := resolver.LatestOdometer(context.Background(), "v1")
		require.NoError(t, err)
	}
}

func TestOdometerResolver_ConcurrentAccess(t *testing.T) {
	fuelLogRepo := mockRepo.NewMockFuelLogRepository(t)
	resolver := newOdometerResolver(fuelLogRepo, time.Second)

	fuelLogRepo.EXPECT().
		FindLatestFuelLog(mock.Anything, mock.AnythingOfType("string")).
		Return(&entity.FuelLogEntry{Odometer: 42}, nil)

	var wg sync.WaitGroup
	for _, id := range []string{"v1", "v2", "v3", "v1", "v2", "v3"} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			odometer, err := resolver.LatestOdometer(context.Background(), id)
			assert.NoError(t, err)
			assert.Equal(t, int64(42), odometer)
		}()
	}
	wg.Wait()
}
