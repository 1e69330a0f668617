package impl

import (
	"context"
	"testing"
	"time"

	"fuelwatch/internal/domain/entity"
	domainerrors "fuelwatch/internal/domain/errors"
	"fuelwatch/internal/domain/repository"
	"fuelwatch/internal/domain/service"
	mockRepo "fuelwatch/internal/mocks/repository"
	mockService "fuelwatch/internal/mocks/service"
	"fuelwatch/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type observerServiceFixtures struct {
	service          *observerService
	vehicleRepo      *mockRepo.MockVehicleRepository
	fuelLogRepo      *mockRepo.MockFuelLogRepository
	reminderRepo     *mockRepo.MockReminderRepository
	subscriptionRepo *mockRepo.MockSubscriptionRepository
	sender           *mockService.MockPushSender
}

func createTestObserverService(t *testing.T) observerServiceFixtures {
	vehicleRepo := mockRepo.NewMockVehicleRepository(t)
	fuelLogRepo := mockRepo.NewMockFuelLogRepository(t)
	reminderRepo := mockRepo.NewMockReminderRepository(t)
	subscriptionRepo := mockRepo.NewMockSubscriptionRepository(t)
	sender := mockService.NewMockPushSender(t)

	svc := newObserverService(ObserverServiceParams{
		VehicleRepo:      vehicleRepo,
		FuelLogRepo:      fuelLogRepo,
		ReminderRepo:     reminderRepo,
		SubscriptionRepo: subscriptionRepo,
		Sender:           sender,
		Settings:         newTestSettings(),
		Logger:           newDiscardLogger(),
	}, newTestClock(testNow).Now)

	return observerServiceFixtures{
		service:          svc,
		vehicleRepo:      vehicleRepo,
		fuelLogRepo:      fuelLogRepo,
		reminderRepo:     reminderRepo,
		subscriptionRepo: subscriptionRepo,
		sender:           sender,
	}
}

func (fx observerServiceFixtures) expectVehicleState(odometer int64, reminders ...*entity.ServiceReminder) {
	fx.vehicleRepo.EXPECT().FindVehicleByID(boundedCtx(), "v1").Return(testVehicle("v1", "u1"), nil)
	fx.fuelLogRepo.EXPECT().FindLatestFuelLog(mock.Anything, "v1").Return(&entity.FuelLogEntry{Odometer: odometer}, nil)
	fx.reminderRepo.EXPECT().FindPendingReminders(mock.Anything, "v1").Return(reminders, nil)
}

func TestObserverService_CheckVehicle_EvaluatesWithoutSending(t *testing.T) {
	fx := createTestObserverService(t)
	fx.expectVehicleState(19200,
		&entity.ServiceReminder{ID: "r1", VehicleID: "v1", ServiceType: "Oil change", DueOdometer: int64Ptr(20000)},
		&entity.ServiceReminder{ID: "r2", VehicleID: "v1", ServiceType: "Tyres", DueOdometer: int64Ptr(40000)},
		&entity.ServiceReminder{ID: "r3", VehicleID: "v1", ServiceType: "Done", DueOdometer: int64Ptr(100), IsCompleted: true},
	)

	check, err := fx.service.CheckVehicle(context.Background(), "u1", "v1", usecase.ObserverPrefs{})

	require.NoError(t, err)
	assert.Equal(t, int64(19200), check.CurrentOdometer)
	require.Len(t, check.Reminders, 2)
	require.Len(t, check.Alerts, 1)
	assert.Equal(t, "r1", check.Alerts[0].Reminder.ID)
	assert.True(t, check.Alerts[0].IsUrgent)
	assert.Equal(t, int64(800), *check.Alerts[0].DistanceRemaining)
	assert.Nil(t, check.Notified)
}

func TestObserverService_CheckVehicle_CallerThresholds(t *testing.T) {
	fx := createTestObserverService(t)
	fx.expectVehicleState(19200,
		&entity.ServiceReminder{ID: "r1", VehicleID: "v1", ServiceType: "Oil change", DueOdometer: int64Ptr(20000)},
	)

	check, err := fx.service.CheckVehicle(context.Background(), "u1", "v1", usecase.ObserverPrefs{
		ThresholdDistance: int64Ptr(500),
	})

	require.NoError(t, err)
	assert.Empty(t, check.Alerts)
	assert.False(t, check.Reminders[0].IsUrgent)
}

func TestObserverService_CheckVehicle_NotifiesOwnSubscriptions(t *testing.T) {
	fx := createTestObserverService(t)
	sub := newTestSubscription("s1", "u1")
	fx.expectVehicleState(21000,
		&entity.ServiceReminder{ID: "r1", VehicleID: "v1", ServiceType: "Oil change", DueOdometer: int64Ptr(20000)},
	)

	fx.sender.EXPECT().Ready().Return(nil)
	fx.subscriptionRepo.EXPECT().ListSubscriptionsByUser(mock.Anything, "u1").Return([]*entity.PushSubscription{sub}, nil)
	fx.sender.EXPECT().Send(mock.Anything, sub, mock.Anything).Return(service.SendDelivered, nil).Once()
	fx.reminderRepo.EXPECT().UpdateLastNotificationSent(mock.Anything, "v1", "r1", testNow).Return(nil)

	check, err := fx.service.CheckVehicle(context.Background(), "u1", "v1", usecase.ObserverPrefs{Notify: true})

	require.NoError(t, err)
	require.NotNil(t, check.Notified)
	assert.Equal(t, 1, check.Notified.Sent)
	assert.Equal(t, &testNow, check.Alerts[0].Reminder.LastNotificationSent)
}

func TestObserverService_CheckVehicle_NotifyRespectsCooldown(t *testing.T) {
	fx := createTestObserverService(t)
	recent := testNow.Add(-24 * time.Hour)
	fx.expectVehicleState(21000,
		&entity.ServiceReminder{
			ID: "r1", VehicleID: "v1", ServiceType: "Oil change",
			DueOdometer: int64Ptr(20000), LastNotificationSent: &recent,
		},
	)

	check, err := fx.service.CheckVehicle(context.Background(), "u1", "v1", usecase.ObserverPrefs{Notify: true})

	require.NoError(t, err)
	assert.True(t, check.Reminders[0].IsOverdue)
	assert.Empty(t, check.Alerts)
	assert.Nil(t, check.Notified)
}

func TestObserverService_CheckVehicle_NotOwner(t *testing.T) {
	fx := createTestObserverService(t)

	fx.vehicleRepo.EXPECT().FindVehicleByID(boundedCtx(), "v1").Return(testVehicle("v1", "someone-else"), nil)

	check, err := fx.service.CheckVehicle(context.Background(), "u1", "v1", usecase.ObserverPrefs{})

	assert.Nil(t, check)
	assert.ErrorIs(t, err, domainerrors.ErrVehicleOwnershipViolation)
}

func TestObserverService_CheckVehicle_VehicleNotFound(t *testing.T) {
	fx := createTestObserverService(t)

	fx.vehicleRepo.EXPECT().FindVehicleByID(boundedCtx(), "v1").Return(nil, repository.ErrVehicleNotFound)

	_, err := fx.service.CheckVehicle(context.Background(), "u1", "v1", usecase.ObserverPrefs{})

	assert.ErrorIs(t, err, domainerrors.ErrVehicleNotFound)
}

func TestObserverService_CheckVehicle_PushNotConfigured(t *testing.T) {
	fx := createTestObserverService(t)
	fx.expectVehicleState(21000,
		&entity.ServiceReminder{ID: "r1", VehicleID: "v1", ServiceType: "Oil change", DueOdometer: int64Ptr(20000)},
	)

	fx.sender.EXPECT().Ready().Return(domainerrors.ErrPushNotConfigured)

	_, err := fx.service.CheckVehicle(context.Background(), "u1", "v1", usecase.ObserverPrefs{Notify: true})

	assert.ErrorIs(t, err, domainerrors.ErrPushNotConfigured)
}

func TestObserverService_CheckVehicle_ReminderStoreError(t *testing.T) {
	fx := createTestObserverService(t)

	fx.vehicleRepo.EXPECT().FindVehicleByID(boundedCtx(), "v1").Return(testVehicle("v1", "u1"), nil)
	fx.fuelLogRepo.EXPECT().FindLatestFuelLog(mock.Anything, "v1").Return(nil, repository.ErrFuelLogNotFound)
	fx.reminderRepo.EXPECT().FindPendingReminders(mock.Anything, "v1").Return(nil, errors.New("unavailable"))

	_, err := fx.service.CheckVehicle(context.Background(), "u1", "v1", usecase.ObserverPrefs{})

	var storeErr *domainerrors.StoreExecuteError
	assert.ErrorAs(t, err, &storeErr)
}
