package middlewares

import (
	"github.com/labstack/echo/v4"
	"whisperwall/internal/server/session"
)

// CurrentSessionContextKey is the key to retrieve the current session from echo.Context.
const CurrentSessionContextKey = "current_session"

// Session returns a middleware that loads the cookie session into the context.
// Every request carries a session: a missing, tampered or expired cookie
// loads as a fresh one. Nothing is persisted server-side.
func Session(m session.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(CurrentSessionContextKey, m.Load(c))
			return next(c)
		}
	}
}
