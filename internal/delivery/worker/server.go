package worker

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"fuelwatch/config"
	"fuelwatch/internal/delivery"
	"fuelwatch/internal/delivery/middleware"
	"fuelwatch/internal/delivery/worker/handler"
	"fuelwatch/internal/domain/lifecycle"
	"fuelwatch/internal/infra/metrics"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

type workerServer struct {
	addr   string
	logger *slog.Logger
	server *echo.Echo
}

// ServerParams holds dependencies for the worker server
type ServerParams struct {
	fx.In

	Lc             fx.Lifecycle
	Cfg            *config.Config
	Logger         *slog.Logger
	TriggerHandler *handler.TriggerHandler
	Registry       *prometheus.Registry `optional:"true"`
}

// NewServer creates the HTTP server behind the Pub/Sub push subscription
func NewServer(params ServerParams) (delivery.Delivery, error) {
	e := newWorkerEcho(params.Cfg, params.Logger)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.POST("/push", params.TriggerHandler.HandlePush)

	if params.Registry != nil && params.Cfg.Metrics != nil && params.Cfg.Metrics.Enabled {
		e.GET(params.Cfg.Metrics.Path, echo.WrapHandler(metrics.Handler(params.Registry)))
	}

	srv := &workerServer{
		addr:   net.JoinHostPort("0.0.0.0", strconv.Itoa(params.Cfg.HTTP.Port)),
		logger: params.Logger,
		server: e,
	}

	params.Lc.Append(fx.Hook{
		OnStop: srv.stop,
	})

	return srv, nil
}

// newWorkerEcho keeps the worker chain small: Pub/Sub is the only caller
func newWorkerEcho(cfg *config.Config, logger *slog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadHeaderTimeout = cfg.HTTP.Timeouts.ReadHeaderTimeout
	e.Server.IdleTimeout = cfg.HTTP.Timeouts.IdleTimeout

	e.Use(echomiddleware.Recover())
	e.Use(middleware.NewRequestIDMiddleware(logger).Process)
	e.Use(middleware.NewLoggerMiddleware(logger, cfg).Handle)
	e.Use(echomiddleware.BodyLimit(cfg.HTTP.MaxRequestBodySize))

	return e
}

// Serve blocks until the server is shut down
func (s *workerServer) Serve(context.Context) error {
	s.logger.Info("[Worker] Listening for trigger messages", slog.String("host_port", s.addr))
	if err := s.server.Start(s.addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.WithStack(err)
	}

	return nil
}

func (s *workerServer) stop(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
	defer cancel()

	s.logger.Info("[Worker] Shutting down")

	return errors.WithStack(s.server.Shutdown(shutdownCtx))
}
