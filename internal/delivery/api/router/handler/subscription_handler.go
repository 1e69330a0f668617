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

// SubscriptionHandlerParams holds dependencies for SubscriptionHandler, injected by Fx.
type SubscriptionHandlerParams struct {
	fx.In

	SubscriptionUC usecase.SubscriptionUsecase
	Logger         *slog.Logger
}

// SubscriptionHandler holds dependencies for push subscription handlers
type SubscriptionHandler struct {
	subscriptionUC usecase.SubscriptionUsecase
	logger         *slog.Logger
}

// NewSubscriptionHandler is the constructor for SubscriptionHandler
func NewSubscriptionHandler(params SubscriptionHandlerParams) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscriptionUC: params.SubscriptionUC,
		logger:         params.Logger,
	}
}

// SubscribeRequest wraps the browser PushSubscription object
type SubscribeRequest struct {
	Subscription usecase.SubscriptionInput `json:"subscription"`
}

// UnsubscribeRequest identifies the endpoint to remove
type UnsubscribeRequest struct {
	Endpoint string `json:"endpoint" validate:"required"`
}

// Subscribe registers the posted browser subscription for the caller
func (h *SubscriptionHandler) Subscribe(c echo.Context) error {
	userID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrUnauthorized)
	}

	var req SubscribeRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid subscription input")
	}

	if err := c.Validate(&req.Subscription); err != nil {
		return response.HandleAppError(c, err)
	}

	sub, err := h.subscriptionUC.Subscribe(c.Request().Context(), userID, &req.Subscription)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, sub)
}

// Unsubscribe removes one of the caller's endpoints
func (h *SubscriptionHandler) Unsubscribe(c echo.Context) error {
	userID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrUnauthorized)
	}

	var req UnsubscribeRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid unsubscribe input")
	}

	if err := c.Validate(&req); err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.subscriptionUC.Unsubscribe(c.Request().Context(), userID, req.Endpoint); err != nil {
		return response.HandleAppError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// ListSubscriptions returns the caller's registered endpoints
func (h *SubscriptionHandler) ListSubscriptions(c echo.Context) error {
	userID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrUnauthorized)
	}

	subs, err := h.subscriptionUC.List(c.Request().Context(), userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, subs)
}
