package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"fuelwatch/internal/delivery/api/response"
	"fuelwatch/internal/domain/entity"
	domainerrors "fuelwatch/internal/domain/errors"
	mockUsecase "fuelwatch/internal/mocks/usecase"
	"fuelwatch/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testEndpoint = "https://push.example.com/send/abc"

type subscriptionHandlerFixtures struct {
	echo           *echo.Echo
	subscriptionUC *mockUsecase.MockSubscriptionUsecase
}

func createTestSubscriptionHandler(t *testing.T) subscriptionHandlerFixtures {
	subscriptionUC := mockUsecase.NewMockSubscriptionUsecase(t)
	h := NewSubscriptionHandler(SubscriptionHandlerParams{SubscriptionUC: subscriptionUC, Logger: newDiscardLogger()})

	e := newTestEcho()
	g := e.Group("/api/v1/subscriptions", asUser("u1"))
	g.POST("", h.Subscribe)
	g.DELETE("", h.Unsubscribe)
	g.GET("", h.ListSubscriptions)

	return subscriptionHandlerFixtures{echo: e, subscriptionUC: subscriptionUC}
}

func TestSubscriptionHandler_Subscribe(t *testing.T) {
	fx := createTestSubscriptionHandler(t)

	fx.subscriptionUC.EXPECT().
		Subscribe(mock.Anything, "u1", mock.MatchedBy(func(in *usecase.SubscriptionInput) bool {
			return in.Endpoint == testEndpoint && in.Keys.P256dh == "pk" && in.Keys.Auth == "ak"
		})).
		Return(&entity.PushSubscription{
			ID:       entity.SubscriptionIDFromEndpoint(testEndpoint),
			UserID:   "u1",
			Endpoint: testEndpoint,
		}, nil)

	rec := serve(fx.echo, http.MethodPost, "/api/v1/subscriptions",
		`{"subscription":{"endpoint":"`+testEndpoint+`","keys":{"p256dh":"pk","auth":"ak"}}}`)

	require.Equal(t, http.StatusCreated, rec.Code)

	var body struct {
		Data entity.PushSubscription `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "u1", body.Data.UserID)
}

func TestSubscriptionHandler_Subscribe_InvalidEndpoint(t *testing.T) {
	fx := createTestSubscriptionHandler(t)

	rec := serve(fx.echo, http.MethodPost, "/api/v1/subscriptions",
		`{"subscription":{"endpoint":"not a url","keys":{"p256dh":"pk","auth":"ak"}}}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body response.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "VALIDATION_FAILED", body.Error.Code)
	fx.subscriptionUC.AssertNotCalled(t, "Subscribe", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubscriptionHandler_Unsubscribe(t *testing.T) {
	fx := createTestSubscriptionHandler(t)
	fx.subscriptionUC.EXPECT().Unsubscribe(mock.Anything, "u1", testEndpoint).Return(nil)

	rec := serve(fx.echo, http.MethodDelete, "/api/v1/subscriptions", `{"endpoint":"`+testEndpoint+`"}`)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestSubscriptionHandler_Unsubscribe_NotFound(t *testing.T) {
	fx := createTestSubscriptionHandler(t)
	fx.subscriptionUC.EXPECT().
		Unsubscribe(mock.Anything, "u1", testEndpoint).
		Return(errors.WithStack(domainerrors.ErrSubscriptionNotFound))

	rec := serve(fx.echo, http.MethodDelete, "/api/v1/subscriptions", `{"endpoint":"`+testEndpoint+`"}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSubscriptionHandler_ListSubscriptions(t *testing.T) {
	fx := createTestSubscriptionHandler(t)
	fx.subscriptionUC.EXPECT().List(mock.Anything, "u1").Return([]*entity.PushSubscription{
		{ID: "a", UserID: "u1", Endpoint: testEndpoint},
	}, nil)

	rec := serve(fx.echo, http.MethodGet, "/api/v1/subscriptions", "")

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data []entity.PushSubscription `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Data, 1)
}
