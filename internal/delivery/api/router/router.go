// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"fuelwatch/config"
	"fuelwatch/internal/delivery/api/middleware"
	"fuelwatch/internal/delivery/api/router/handler"
	"fuelwatch/internal/infra/metrics"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	CronHandler         *handler.CronHandler
	ReminderHandler     *handler.ReminderHandler
	PushHandler         *handler.PushHandler
	SubscriptionHandler *handler.SubscriptionHandler
	VehicleHandler      *handler.VehicleHandler
	AuthMiddleware      *middleware.AuthMiddleware
	Registry            *prometheus.Registry `optional:"true"`
	Config              *config.Config
}

// router holds all the handlers that need to be registered.
type router struct {
	cronHandler         *handler.CronHandler
	reminderHandler     *handler.ReminderHandler
	pushHandler         *handler.PushHandler
	subscriptionHandler *handler.SubscriptionHandler
	vehicleHandler      *handler.VehicleHandler
	authMiddleware      *middleware.AuthMiddleware
	registry            *prometheus.Registry
	config              *config.Config
}

// NewRouter is the constructor for the Router.
func NewRouter(params RouterParams) *router {
	return &router{
		cronHandler:         params.CronHandler,
		reminderHandler:     params.ReminderHandler,
		pushHandler:         params.PushHandler,
		subscriptionHandler: params.SubscriptionHandler,
		vehicleHandler:      params.VehicleHandler,
		authMiddleware:      params.AuthMiddleware,
		registry:            params.Registry,
		config:              params.Config,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	// Scheduled trigger, guarded by X-Cron-Secret instead of a user token
	e.GET("/api/cron/check-reminders", r.cronHandler.CheckReminders)

	apiV1 := e.Group("/api/v1")
	apiV1.Use(r.authMiddleware.Authenticate)

	vehiclesGroup := apiV1.Group("/vehicles")
	{
		vehiclesGroup.GET("/:id/reminders", r.reminderHandler.GetVehicleReminders)
		vehiclesGroup.GET("/:id/consumption", r.vehicleHandler.GetConsumption)
	}

	subscriptionsGroup := apiV1.Group("/subscriptions")
	{
		subscriptionsGroup.POST("", r.subscriptionHandler.Subscribe)
		subscriptionsGroup.DELETE("", r.subscriptionHandler.Unsubscribe)
		subscriptionsGroup.GET("", r.subscriptionHandler.ListSubscriptions)
	}

	apiV1.POST("/push", r.pushHandler.SendPush)
}

// RegisterMetricsRoute exposes the Prometheus registry when metrics are enabled
func (r *router) RegisterMetricsRoute(e *echo.Echo) {
	if r.registry == nil || r.config.Metrics == nil || !r.config.Metrics.Enabled {
		return
	}

	e.GET(r.config.Metrics.Path, echo.WrapHandler(metrics.Handler(r.registry)))
}
