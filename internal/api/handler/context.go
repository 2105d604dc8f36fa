package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/tinymarket/market/internal/api/middleware"
	"github.com/tinymarket/market/internal/api/view"
)

// render fills the per-request parts of page (flashes, CSRF token, login
// state) and renders the named template. Pending flashes are consumed.
func render(c echo.Context, status int, name string, page view.Page) error {
	s := middleware.CurrentSession(c)
	page.Flashes = s.PopFlashes()
	page.LoggedIn = s.IsAuthenticated()
	page.CSRFToken, _ = c.Get(echomiddleware.DefaultCSRFConfig.ContextKey).(string)
	return c.Render(status, name, page)
}

// redirectWithFlash queues msg for the next page and redirects to path.
func redirectWithFlash(c echo.Context, path, msg string) error {
	middleware.CurrentSession(c).AddFlash(msg)
	return c.Redirect(http.StatusFound, path)
}

// sessionUserID returns the logged-in user's id or "" for anonymous callers.
func sessionUserID(c echo.Context) string {
	return middleware.CurrentSession(c).UserID()
}
