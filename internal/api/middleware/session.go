package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/tinymarket/market/internal/session"
)

// SessionContextKey is the echo context key holding the *session.Session.
const SessionContextKey = "session"

// Session decodes the session cookie into the context and writes it back,
// if it changed, just before the response header goes out.
func Session(m *session.Manager, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			s := m.Load(c.Request())
			c.Set(SessionContextKey, s)

			c.Response().Before(func() {
				if err := m.Save(c.Response(), s); err != nil {
					log.Error().Err(err).Str("path", c.Path()).Msg("failed to write session cookie")
				}
			})

			return next(c)
		}
	}
}

// CurrentSession returns the request's session. Outside the Session
// middleware it returns a fresh anonymous session stored on c.
func CurrentSession(c echo.Context) *session.Session {
	if s, ok := c.Get(SessionContextKey).(*session.Session); ok && s != nil {
		return s
	}
	s := &session.Session{}
	c.Set(SessionContextKey, s)
	return s
}
