package middleware

import (
	"log/slog"
	"strings"

	"fuelwatch/config"
	"fuelwatch/internal/delivery/api/response"
	deliverycontext "fuelwatch/internal/delivery/context"
	"fuelwatch/internal/domain/constants"
	domainerrors "fuelwatch/internal/domain/errors"
	"fuelwatch/internal/domain/service"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AuthMiddleware authenticates user routes with Firebase ID tokens
type AuthMiddleware struct {
	verifier service.IDTokenVerifier
	disabled bool
	logger   *slog.Logger
}

// AuthMiddlewareParams holds dependencies for AuthMiddleware, injected by Fx.
type AuthMiddlewareParams struct {
	fx.In

	Verifier service.IDTokenVerifier
	Config   *config.Config
	Logger   *slog.Logger
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(params AuthMiddlewareParams) *AuthMiddleware {
	disabled := params.Config.Auth != nil && params.Config.Auth.Disabled
	if disabled {
		params.Logger.Warn("ID token verification disabled, trusting the " + constants.HeaderUserID + " header")
	}

	return &AuthMiddleware{
		verifier: params.Verifier,
		disabled: disabled,
		logger:   params.Logger,
	}
}

// Authenticate verifies the bearer ID token and stores the user ID on the context
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if m.disabled {
			userID := strings.TrimSpace(c.Request().Header.Get(constants.HeaderUserID))
			if userID == "" {
				return response.HandleAppError(c, domainerrors.ErrUnauthorized)
			}
			deliverycontext.SetUserID(c, userID)

			return next(c)
		}

		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			return response.HandleAppError(c, domainerrors.ErrUnauthorized)
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == authHeader {
			return response.Unauthorized(c, "INVALID_TOKEN_FORMAT", "Invalid token format, must be Bearer token")
		}

		userID, err := m.verifier.VerifyIDToken(c.Request().Context(), token)
		if err != nil {
			deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger).Debug("ID token rejected",
				slog.Any("error", err),
			)

			return response.HandleAppError(c, err)
		}

		deliverycontext.SetUserID(c, userID)

		return next(c)
	}
}
