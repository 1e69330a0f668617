package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"fuelwatch/internal/delivery/api/response"
	deliverycontext "fuelwatch/internal/delivery/context"
	domainerrors "fuelwatch/internal/domain/errors"
	"fuelwatch/internal/domain/reminder"
	"fuelwatch/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// ReminderHandlerParams holds dependencies for ReminderHandler, injected by Fx.
type ReminderHandlerParams struct {
	fx.In

	ObserverUC usecase.ObserverUsecase
	Logger     *slog.Logger
}

// ReminderHandler serves the reminder status of a single vehicle
type ReminderHandler struct {
	observerUC usecase.ObserverUsecase
	logger     *slog.Logger
}

// NewReminderHandler is the constructor for ReminderHandler
func NewReminderHandler(params ReminderHandlerParams) *ReminderHandler {
	return &ReminderHandler{
		observerUC: params.ObserverUC,
		logger:     params.Logger,
	}
}

// ReminderStatus is the evaluated state of one reminder
type ReminderStatus struct {
	ID                   string     `json:"id"`
	ServiceType          string     `json:"service_type"`
	DueOdometer          *int64     `json:"due_odometer,omitempty"`
	DueDate              *time.Time `json:"due_date,omitempty"`
	DistanceRemaining    *int64     `json:"distance_remaining,omitempty"`
	TimeRemaining        *int       `json:"time_remaining,omitempty"`
	IsOverdue            bool       `json:"is_overdue"`
	IsUrgent             bool       `json:"is_urgent"`
	LastNotificationSent *time.Time `json:"last_notification_sent,omitempty"`
	Message              string     `json:"message"`
}

// VehicleRemindersResponse is the body of GET /api/v1/vehicles/:id/reminders
type VehicleRemindersResponse struct {
	VehicleID       string              `json:"vehicle_id"`
	CurrentOdometer int64               `json:"current_odometer"`
	Reminders       []ReminderStatus    `json:"reminders"`
	Alerts          []ReminderStatus    `json:"alerts"`
	Notified        *usecase.PushResult `json:"notified,omitempty"`
}

// GetVehicleReminders evaluates the vehicle's pending reminders for its owner.
// Query: notify=true sends due alerts to the caller's devices; thresholdDistance and thresholdDays
// override the configured thresholds.
func (h *ReminderHandler) GetVehicleReminders(c echo.Context) error {
	userID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrUnauthorized)
	}

	prefs, err := parseObserverPrefs(c)
	if err != nil {
		return response.BadRequest(c, "INVALID_QUERY", err.Error())
	}

	check, err := h.observerUC.CheckVehicle(c.Request().Context(), userID, c.Param("id"), prefs)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, VehicleRemindersResponse{
		VehicleID:       check.VehicleID,
		CurrentOdometer: check.CurrentOdometer,
		Reminders:       toReminderStatuses(check.Reminders),
		Alerts:          toReminderStatuses(check.Alerts),
		Notified:        check.Notified,
	})
}

func parseObserverPrefs(c echo.Context) (usecase.ObserverPrefs, error) {
	var prefs usecase.ObserverPrefs

	if v := c.QueryParam("notify"); v != "" {
		notify, err := strconv.ParseBool(v)
		if err != nil {
			return prefs, errInvalidQuery("notify")
		}
		prefs.Notify = notify
	}

	if v := c.QueryParam("thresholdDistance"); v != "" {
		d, err := strconv.ParseInt(v, 10, 64)
		if err != nil || d < 0 {
			return prefs, errInvalidQuery("thresholdDistance")
		}
		prefs.ThresholdDistance = &d
	}

	if v := c.QueryParam("thresholdDays"); v != "" {
		d, err := strconv.Atoi(v)
		if err != nil || d < 0 {
			return prefs, errInvalidQuery("thresholdDays")
		}
		prefs.ThresholdDays = &d
	}

	return prefs, nil
}

func toReminderStatuses(evaluated []reminder.EvaluatedReminder) []ReminderStatus {
	out := make([]ReminderStatus, 0, len(evaluated))
	for _, e := range evaluated {
		out = append(out, ReminderStatus{
			ID:                   e.Reminder.ID,
			ServiceType:          e.Reminder.ServiceType,
			DueOdometer:          e.Reminder.DueOdometer,
			DueDate:              e.Reminder.DueDate,
			DistanceRemaining:    e.DistanceRemaining,
			TimeRemaining:        e.TimeRemaining,
			IsOverdue:            e.IsOverdue,
			IsUrgent:             e.IsUrgent,
			LastNotificationSent: e.Reminder.LastNotificationSent,
			Message:              reminder.Describe(e),
		})
	}

	return out
}

func errInvalidQuery(param string) error {
	return errors.Errorf("invalid %s query parameter", param)
}
