package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/HtTelekom/ecommerce/internal/api/metrics"
	"github.com/HtTelekom/ecommerce/internal/core/domain"
	"github.com/HtTelekom/ecommerce/internal/core/ports"
)

// Context keys set by the Auth middleware.
const (
	SessionKey    = "session"
	CredentialKey = "credential"
)

// Auth validates the bearer credential against the session store and injects
// the session record into context.
func Auth(tokens ports.TokenAuthenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			record, err := tokens.Validate(c.Request().Context(), parts[1])
			if err != nil {
				switch {
				case errors.Is(err, domain.ErrSessionExpired):
					metrics.TokenValidationsTotal.WithLabelValues("expired").Inc()
					return echo.NewHTTPError(http.StatusUnauthorized, "token expired")
				case errors.Is(err, domain.ErrUnauthenticated):
					metrics.TokenValidationsTotal.WithLabelValues("invalid").Inc()
					return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
				default:
					return err
				}
			}
			metrics.TokenValidationsTotal.WithLabelValues("valid").Inc()

			c.Set(SessionKey, record)
			c.Set(CredentialKey, parts[1])

			return next(c)
		}
	}
}
