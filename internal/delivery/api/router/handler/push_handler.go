package handler

import (
	"log/slog"
	"net/http"

	"fuelwatch/internal/delivery/api/response"
	deliverycontext "fuelwatch/internal/delivery/context"
	"fuelwatch/internal/domain/entity"
	domainerrors "fuelwatch/internal/domain/errors"
	"fuelwatch/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// PushHandlerParams holds dependencies for PushHandler, injected by Fx.
type PushHandlerParams struct {
	fx.In

	PushUC usecase.PushUsecase
	Logger *slog.Logger
}

// PushHandler serves direct pushes to a user's devices
type PushHandler struct {
	pushUC usecase.PushUsecase
	logger *slog.Logger
}

// NewPushHandler is the constructor for PushHandler
func NewPushHandler(params PushHandlerParams) *PushHandler {
	return &PushHandler{
		pushUC: params.PushUC,
		logger: params.Logger,
	}
}

// SendPushRequest is the body of POST /api/v1/push
type SendPushRequest struct {
	UserID  string             `json:"userId"`
	Payload entity.PushPayload `json:"payload"`
}

// SendPush delivers a payload to every device of the caller.
// userId may be omitted; when given it must be the caller's own ID.
func (h *PushHandler) SendPush(c echo.Context) error {
	callerID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrUnauthorized)
	}

	var req SendPushRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid push request")
	}

	if err := c.Validate(&req.Payload); err != nil {
		return response.HandleAppError(c, err)
	}

	if req.UserID != "" && req.UserID != callerID {
		return response.HandleAppError(c, domainerrors.ErrForbidden)
	}

	result, err := h.pushUC.SendToUser(c.Request().Context(), callerID, &req.Payload)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, result)
}
