package session

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	Header     = "X-Session-ID"
	ContextKey = "session_id"
)

// Middleware resolves the caller's session id from the X-Session-ID header,
// minting a new one when absent, and echoes it back on the response.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sid := c.Request().Header.Get(Header)
			if sid == "" {
				sid = uuid.NewString()
				c.Request().Header.Set(Header, sid)
			}
			c.Set(ContextKey, sid)
			c.Response().Header().Set(Header, sid)
			return next(c)
		}
	}
}

// ID returns the session id stored by Middleware, falling back to the raw header.
func ID(c echo.Context) string {
	if v, ok := c.Get(ContextKey).(string); ok && v != "" {
		return v
	}
	return c.Request().Header.Get(Header)
}
