package httpserver

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/shope/internal/nav"
	"github.com/Skotchmaster/shope/internal/service"
	"github.com/Skotchmaster/shope/pkg/middleware/session"
)

var errNoSession = errors.New("missing session id")

func sessionID(c echo.Context) (string, error) {
	sid := session.ID(c)
	if sid == "" {
		return "", errNoSession
	}
	return sid, nil
}

// productParams reads nav params from the query string, or from a JSON body
// when the query carries none.
func productParams(c echo.Context) (nav.Params, error) {
	q := c.QueryParams()
	if q.Has(nav.KeyID) {
		return nav.FromValues(q), nil
	}

	var p nav.Params
	if c.Request().ContentLength == 0 {
		return p, nil
	}
	if err := c.Bind(&p); err != nil {
		return p, err
	}
	return p, nil
}

// serviceError logs err under event and maps it to an HTTP error.
func serviceError(l *slog.Logger, event string, err error) error {
	if errors.Is(err, service.ErrValidation) {
		l.Warn(event, "status", 400, "reason", "validation", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if errors.Is(err, service.ErrNotFound) {
		l.Warn(event, "status", 404, "reason", "not found", "error", err)
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	l.Error(event, "status", 500, "reason", "internal", "error", err)
	return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
}
