package handler

import (
	"crypto/subtle"
	"fmt"
	"log/slog"
	"net/http"

	"fuelwatch/config"
	"fuelwatch/internal/delivery/api/response"
	deliverycontext "fuelwatch/internal/delivery/context"
	"fuelwatch/internal/domain/constants"
	domainerrors "fuelwatch/internal/domain/errors"
	"fuelwatch/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// CronHandlerParams holds dependencies for CronHandler, injected by Fx.
type CronHandlerParams struct {
	fx.In

	DispatchUC usecase.DispatchUsecase
	Config     *config.Config
	Logger     *slog.Logger
}

// CronHandler serves the externally scheduled reminder check
type CronHandler struct {
	dispatchUC usecase.DispatchUsecase
	secret     string
	logger     *slog.Logger
}

// NewCronHandler is the constructor for CronHandler
func NewCronHandler(params CronHandlerParams) *CronHandler {
	var secret string
	if params.Config.Cron != nil {
		secret = params.Config.Cron.Secret
	}

	return &CronHandler{
		dispatchUC: params.DispatchUC,
		secret:     secret,
		logger:     params.Logger,
	}
}

// CheckReminders runs one dispatch and reports how many reminders were alerted
func (h *CronHandler) CheckReminders(c echo.Context) error {
	if h.secret != "" {
		got := c.Request().Header.Get(constants.HeaderCronSecret)
		if subtle.ConstantTimeCompare([]byte(got), []byte(h.secret)) != 1 {
			return response.TriggerFailed(c, http.StatusUnauthorized, domainerrors.ErrCronSecretMismatch.Message(), "")
		}
	}

	ctx := c.Request().Context()
	logger := deliverycontext.GetLoggerOrDefault(ctx, h.logger)

	summary, err := h.dispatchUC.Run(ctx)
	if err != nil {
		var appErr domainerrors.AppError
		if errors.As(err, &appErr) {
			if appErr.HTTPCode() >= http.StatusInternalServerError {
				logger.Error("[Cron] Reminder check failed", slog.Any("error", err))
			}

			return response.TriggerFailed(c, appErr.HTTPCode(), appErr.Message(), appErr.Details())
		}

		logger.Error("[Cron] Reminder check failed", slog.Any("error", err))

		return response.TriggerFailed(c, http.StatusInternalServerError,
			domainerrors.ErrDispatchFailed.Message(), errors.Cause(err).Error())
	}

	message := fmt.Sprintf("Checked reminders, sent %d notifications", summary.AlertedReminders)
	if summary.Aborted {
		message += " (run aborted early)"
	}

	return response.TriggerOK(c, message, summary)
}
