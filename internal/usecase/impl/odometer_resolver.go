package impl

import (
	"context"
	"sync"
	"time"

	"fuelwatch/internal/domain/reminder"
	"fuelwatch/internal/domain/repository"

	"github.com/pkg/errors"
)

// odometerResolver memoizes the latest odometer per vehicle for the lifetime of one run.
// A new resolver is created for every run.
type odometerResolver struct {
	fuelLogRepo repository.FuelLogRepository
	timeout     time.Duration

	mu    sync.Mutex
	cache map[string]int64
}

func newOdometerResolver(fuelLogRepo repository.FuelLogRepository, timeout time.Duration) *odometerResolver {
	return &odometerResolver{
		fuelLogRepo: fuelLogRepo,
		timeout:     timeout,
		cache:       make(map[string]int64),
	}
}

// LatestOdometer returns the highest recorded odometer of the vehicle, or reminder.UnknownOdometer
// when it has no fuel records. Lookup errors are returned and not cached.
func (r *odometerResolver) LatestOdometer(ctx context.Context, vehicleID string) (int64, error) {
	r.mu.Lock()
	if v, ok := r.cache[vehicleID]; ok {
		r.mu.Unlock()

		return v, nil
	}
	r.mu.Unlock()

	storeCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	odometer := reminder.UnknownOdometer
	latest, err := r.fuelLogRepo.FindLatestFuelLog(storeCtx, vehicleID)
	switch {
	case errors.Is(err, repository.ErrFuelLogNotFound):
	case err != nil:
		return 0, errors.Wrapf(err, "failed to find latest fuel log of vehicle %s", vehicleID)
	default:
		odometer = latest.Odometer
	}

	r.mu.Lock()
	r.cache[vehicleID] = odometer
	r.mu.Unlock()

	return odometer, nil
}
