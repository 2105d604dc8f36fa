package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// LoginRequiredMessage is flashed when an anonymous caller hits a protected page.
const LoginRequiredMessage = "Login required."

// RequireLogin redirects callers without a session user to /login.
func RequireLogin(loginPath string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			s := CurrentSession(c)
			if !s.IsAuthenticated() {
				s.AddFlash(LoginRequiredMessage)
				return c.Redirect(http.StatusFound, loginPath)
			}
			return next(c)
		}
	}
}
