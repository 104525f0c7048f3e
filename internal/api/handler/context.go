package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/HtTelekom/ecommerce/internal/api/middleware"
	"github.com/HtTelekom/ecommerce/internal/core/domain"
)

// ctxSession extracts the session record injected by the Auth middleware and
// performs a fast-fail check before any service call: a missing record means
// the route was wired without the middleware, reject with 401 rather than
// proceeding unauthenticated.
func ctxSession(c echo.Context) (*domain.SessionRecord, error) {
	record, ok := c.Get(middleware.SessionKey).(*domain.SessionRecord)
	if !ok || record.UserID == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return record, nil
}

// ctxCredential returns the raw bearer string the Auth middleware validated.
func ctxCredential(c echo.Context) (string, error) {
	credential, _ := c.Get(middleware.CredentialKey).(string)
	if credential == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return credential, nil
}
