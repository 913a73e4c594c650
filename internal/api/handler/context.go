package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/yalajobs/jobboard-api/internal/api/middleware"
	"github.com/yalajobs/jobboard-api/internal/core/domain"
)

// ctxSession extracts the session injected by the Auth middleware and
// performs a fast-fail check before any service call: a jobseeker or
// company operation without a session means the middleware chain is
// misconfigured, so reject rather than guess.
func ctxSession(c echo.Context) (*domain.Session, error) {
	sess := middleware.SessionFromContext(c)
	if sess == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return sess, nil
}
