package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"fuelwatch/config"
	deliverycontext "fuelwatch/internal/delivery/context"
	"fuelwatch/internal/domain/constants"
	domainerrors "fuelwatch/internal/domain/errors"
	"fuelwatch/internal/infra/pubsub"
	"fuelwatch/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"google.golang.org/api/idtoken"
)

// CheckRemindersTrigger is the optional JSON payload of a trigger message
type CheckRemindersTrigger struct {
	RequestID string `json:"request_id,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

// retryableError wraps an error to indicate it should trigger a Pub/Sub retry
type retryableError struct {
	err error
}

func (e *retryableError) Error() string {
	return fmt.Sprintf("retryable: %v", e.err)
}

func (e *retryableError) Unwrap() error {
	return e.err
}

func newRetryableError(err error) error {
	return &retryableError{err: err}
}

func isRetryableError(err error) bool {
	var re *retryableError

	return errors.As(err, &re)
}

// TriggerHandler runs the reminder check for each Pub/Sub push message it receives
type TriggerHandler struct {
	verifyPushAuth bool
	dispatchUC     usecase.DispatchUsecase
	logger         *slog.Logger
}

// TriggerHandlerParams holds dependencies for the TriggerHandler
type TriggerHandlerParams struct {
	fx.In

	Config     *config.Config
	Logger     *slog.Logger
	DispatchUC usecase.DispatchUsecase
}

// NewTriggerHandler creates a new Pub/Sub trigger handler
func NewTriggerHandler(params TriggerHandlerParams) *TriggerHandler {
	verifyPushAuth := params.Config.PubSub != nil &&
		params.Config.PubSub.Provider == constants.PubSubProviderGoogle &&
		params.Config.Env.Env != constants.EnvDevelop

	return &TriggerHandler{
		verifyPushAuth: verifyPushAuth,
		dispatchUC:     params.DispatchUC,
		logger:         params.Logger,
	}
}

// HandlePush runs one reminder check.
// 503 asks Pub/Sub to redeliver; every other outcome is acknowledged with 200.
func (h *TriggerHandler) HandlePush(c echo.Context) error {
	ctx := c.Request().Context()

	if h.verifyPushAuth {
		if err := verifyPubSubToken(c.Request()); err != nil {
			h.logger.Warn("[Worker] Invalid Pub/Sub token", slog.Any("error", err))

			return c.NoContent(http.StatusUnauthorized)
		}
	}

	var pushMsg pubsub.PushMessage
	if err := c.Bind(&pushMsg); err != nil {
		h.logger.Error("[Worker] Failed to parse push message", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	data, err := pushMsg.Decode()
	if err != nil {
		h.logger.Error("[Worker] Failed to decode message data", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	var trigger CheckRemindersTrigger
	if len(data) > 0 {
		if err := json.Unmarshal(data, &trigger); err != nil {
			h.logger.Error("[Worker] Failed to parse trigger payload", slog.Any("error", err))

			return c.NoContent(http.StatusBadRequest)
		}
	}

	// Priority: message attributes > payload > X-Request-Id header > new ID
	requestID := h.extractRequestID(ctx, &pushMsg, &trigger)
	ctx, reqLogger := deliverycontext.WithRequestScope(ctx, h.logger, requestID)

	reqLogger.Info("[Worker] Processing reminder check trigger",
		slog.String("message_id", pushMsg.Message.MessageID),
		slog.String("reason", trigger.Reason),
	)

	summary, err := h.checkReminders(ctx)
	if err != nil {
		reqLogger.Error("[Worker] Reminder check failed",
			slog.String("message_id", pushMsg.Message.MessageID),
			slog.Any("error", err),
			slog.Bool("retryable", isRetryableError(err)),
		)
		if isRetryableError(err) {
			return c.NoContent(http.StatusServiceUnavailable)
		}

		return c.NoContent(http.StatusOK)
	}

	if summary == nil {
		return c.NoContent(http.StatusOK)
	}

	reqLogger.Info("[Worker] Reminder check completed",
		slog.String("message_id", pushMsg.Message.MessageID),
		slog.Int("alerted", summary.AlertedReminders),
		slog.Bool("aborted", summary.Aborted),
	)

	return c.NoContent(http.StatusOK)
}

func (h *TriggerHandler) extractRequestID(ctx context.Context, pushMsg *pubsub.PushMessage, trigger *CheckRemindersTrigger) string {
	if requestID, ok := pushMsg.Message.Attributes["request_id"]; ok && requestID != "" {
		return requestID
	}

	if trigger.RequestID != "" {
		return trigger.RequestID
	}

	if requestID := deliverycontext.GetRequestIDFromContext(ctx); requestID != "" {
		return requestID
	}

	return uuid.New().String()
}

// checkReminders runs the dispatch and decides whether a failure is worth a redelivery.
// A held lock returns a nil summary and no error: the other run covers this trigger.
func (h *TriggerHandler) checkReminders(ctx context.Context) (*usecase.RunSummary, error) {
	summary, err := h.dispatchUC.Run(ctx)
	switch {
	case err == nil:
		return summary, nil
	case errors.Is(err, domainerrors.ErrDispatchAlreadyRunning):
		deliverycontext.GetLoggerOrDefault(ctx, h.logger).Info("[Worker] Reminder check already running, acknowledging")

		return nil, nil
	case errors.Is(err, domainerrors.ErrPushNotConfigured):
		// Redelivery cannot fix missing credentials
		return nil, err
	default:
		return nil, newRetryableError(err)
	}
}

// verifyPubSubToken verifies the OIDC token Google attaches to authenticated push requests
func verifyPubSubToken(req *http.Request) error {
	authHeader := req.Header.Get("Authorization")
	if authHeader == "" {
		return errors.New("missing authorization header")
	}

	const bearerPrefix = "Bearer "
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return errors.New("invalid authorization header format")
	}
	token := strings.TrimPrefix(authHeader, bearerPrefix)

	// The audience is the URL of this endpoint
	scheme := "https"
	if req.TLS == nil {
		scheme = "http"
	}
	audience := fmt.Sprintf("%s://%s%s", scheme, req.Host, req.URL.Path)

	payload, err := idtoken.Validate(req.Context(), token, audience)
	if err != nil {
		return errors.Wrap(err, "failed to validate token")
	}

	if payload.Issuer != "accounts.google.com" && payload.Issuer != "https://accounts.google.com" {
		return errors.Errorf("invalid issuer: %s", payload.Issuer)
	}

	if emailVerified, ok := payload.Claims["email_verified"].(bool); ok && !emailVerified {
		return errors.New("email not verified")
	}

	return nil
}
