package scheduler

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"fuelwatch/config"
	deliverycontext "fuelwatch/internal/delivery/context"
	domainerrors "fuelwatch/internal/domain/errors"
	mockUsecase "fuelwatch/internal/mocks/usecase"
	"fuelwatch/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

func createTestScheduler(t *testing.T, cronCfg *config.CronConfig) (*cronScheduler, *mockUsecase.MockDispatchUsecase, *fxtest.Lifecycle) {
	dispatchUC := mockUsecase.NewMockDispatchUsecase(t)
	lc := fxtest.NewLifecycle(t)

	d, err := NewScheduler(SchedulerParams{
		Lc:         lc,
		Cfg:        &config.Config{Cron: cronCfg},
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		DispatchUC: dispatchUC,
	})
	require.NoError(t, err)

	return d.(*cronScheduler), dispatchUC, lc
}

func TestNewScheduler_InvalidSchedule(t *testing.T) {
	_, err := NewScheduler(SchedulerParams{
		Lc:         fxtest.NewLifecycle(t),
		Cfg:        &config.Config{Cron: &config.CronConfig{Enabled: true, Schedule: "every now and then"}},
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		DispatchUC: mockUsecase.NewMockDispatchUsecase(t),
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid cron schedule")
}

func TestScheduler_RunOnce_CarriesRequestScope(t *testing.T) {
	s, dispatchUC, _ := createTestScheduler(t, &config.CronConfig{Enabled: true, Schedule: "@daily"})

	dispatchUC.EXPECT().Run(mock.MatchedBy(func(ctx context.Context) bool {
		id := deliverycontext.GetRequestIDFromContext(ctx)

		return len(id) > len("cron-") && id[:5] == "cron-" && deliverycontext.GetLogger(ctx) != nil
	})).Return(&usecase.RunSummary{AlertedReminders: 1}, nil)

	s.runOnce()
}

func TestScheduler_RunOnce_ToleratesLockAndFailures(t *testing.T) {
	s, dispatchUC, _ := createTestScheduler(t, &config.CronConfig{Enabled: true, Schedule: "@daily"})

	dispatchUC.EXPECT().Run(mock.Anything).Return(nil, errors.WithStack(domainerrors.ErrDispatchAlreadyRunning)).Once()
	dispatchUC.EXPECT().Run(mock.Anything).Return(nil, errors.New("unavailable")).Once()

	s.runOnce()
	s.runOnce()
}

func TestScheduler_StopCancelsRunningCheck(t *testing.T) {
	s, _, lc := createTestScheduler(t, &config.CronConfig{Enabled: true, Schedule: "@daily"})

	lc.RequireStart()
	require.NoError(t, s.Serve(context.Background()))
	lc.RequireStop()

	assert.ErrorIs(t, s.base.Err(), context.Canceled)
}

func TestScheduler_Disabled(t *testing.T) {
	s, dispatchUC, lc := createTestScheduler(t, nil)

	lc.RequireStart()
	require.NoError(t, s.Serve(context.Background()))
	lc.RequireStop()

	assert.False(t, s.enabled)
	dispatchUC.AssertNotCalled(t, "Run", mock.Anything)
}
