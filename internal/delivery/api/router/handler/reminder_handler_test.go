package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"fuelwatch/internal/delivery/api/response"
	"fuelwatch/internal/domain/entity"
	domainerrors "fuelwatch/internal/domain/errors"
	"fuelwatch/internal/domain/reminder"
	mockUsecase "fuelwatch/internal/mocks/usecase"
	"fuelwatch/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type reminderHandlerFixtures struct {
	echo       *echo.Echo
	observerUC *mockUsecase.MockObserverUsecase
}

func createTestReminderHandler(t *testing.T) reminderHandlerFixtures {
	observerUC := mockUsecase.NewMockObserverUsecase(t)
	h := NewReminderHandler(ReminderHandlerParams{ObserverUC: observerUC, Logger: newDiscardLogger()})

	e := newTestEcho()
	e.GET("/api/v1/vehicles/:id/reminders", h.GetVehicleReminders, asUser("u1"))

	return reminderHandlerFixtures{echo: e, observerUC: observerUC}
}

func TestReminderHandler_GetVehicleReminders(t *testing.T) {
	fx := createTestReminderHandler(t)

	due := int64(60000)
	remaining := int64(-500)
	evaluated := reminder.EvaluatedReminder{
		Reminder:          &entity.ServiceReminder{ID: "r1", VehicleID: "v1", ServiceType: "Oil change", DueOdometer: &due},
		DistanceRemaining: &remaining,
		IsOverdue:         true,
	}

	fx.observerUC.EXPECT().
		CheckVehicle(mock.Anything, "u1", "v1", mock.MatchedBy(func(p usecase.ObserverPrefs) bool {
			return p.Notify && p.ThresholdDistance != nil && *p.ThresholdDistance == 500 && p.ThresholdDays == nil
		})).
		Return(&usecase.VehicleCheck{
			VehicleID:       "v1",
			CurrentOdometer: 60500,
			Reminders:       []reminder.EvaluatedReminder{evaluated},
			Alerts:          []reminder.EvaluatedReminder{evaluated},
			Notified:        &usecase.PushResult{Sent: 2},
		}, nil)

	rec := serve(fx.echo, http.MethodGet, "/api/v1/vehicles/v1/reminders?notify=true&thresholdDistance=500", "")

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data VehicleRemindersResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(60500), body.Data.CurrentOdometer)
	require.Len(t, body.Data.Alerts, 1)
	assert.Equal(t, "Oil change: overdue by 500 km", body.Data.Alerts[0].Message)
	assert.True(t, body.Data.Alerts[0].IsOverdue)
	assert.Equal(t, 2, body.Data.Notified.Sent)
}

func TestReminderHandler_GetVehicleReminders_InvalidQuery(t *testing.T) {
	fx := createTestReminderHandler(t)

	rec := serve(fx.echo, http.MethodGet, "/api/v1/vehicles/v1/reminders?thresholdDays=-3", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	fx.observerUC.AssertNotCalled(t, "CheckVehicle", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReminderHandler_GetVehicleReminders_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", errors.WithStack(domainerrors.ErrVehicleNotFound), http.StatusNotFound, "VEHICLE_NOT_FOUND"},
		{"not owner", errors.WithStack(domainerrors.ErrVehicleOwnershipViolation), http.StatusForbidden, "VEHICLE_OWNERSHIP_VIOLATION"},
		{"store failure", domainerrors.NewStoreExecuteError(errors.New("unavailable"), "failed to load reminders"), http.StatusInternalServerError, "STORE_EXECUTE_FAILED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestReminderHandler(t)
			fx.observerUC.EXPECT().CheckVehicle(mock.Anything, "u1", "v1", mock.Anything).Return(nil, tt.err)

			rec := serve(fx.echo, http.MethodGet, "/api/v1/vehicles/v1/reminders", "")

			assert.Equal(t, tt.wantStatus, rec.Code)

			var body response.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.Error.Code)
		})
	}
}
