package handler

import (
	"log/slog"
	"net/http"

	"fuelwatch/internal/delivery/api/response"
	deliverycontext "fuelwatch/internal/delivery/context"
	domainerrors "fuelwatch/internal/domain/errors"
	"fuelwatch/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// VehicleHandlerParams holds dependencies for VehicleHandler, injected by Fx.
type VehicleHandlerParams struct {
	fx.In

	ConsumptionUC usecase.ConsumptionUsecase
	Logger        *slog.Logger
}

// VehicleHandler serves vehicle analytics
type VehicleHandler struct {
	consumptionUC usecase.ConsumptionUsecase
	logger        *slog.Logger
}

// NewVehicleHandler is the constructor for VehicleHandler
func NewVehicleHandler(params VehicleHandlerParams) *VehicleHandler {
	return &VehicleHandler{
		consumptionUC: params.ConsumptionUC,
		logger:        params.Logger,
	}
}

// GetConsumption returns the processed fuel log of one of the caller's vehicles
func (h *VehicleHandler) GetConsumption(c echo.Context) error {
	userID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrUnauthorized)
	}

	report, err := h.consumptionUC.GetConsumption(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, report)
}
