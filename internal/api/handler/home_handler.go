package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tinymarket/market/internal/api/view"
)

// Index handles GET /.
func Index(c echo.Context) error {
	return render(c, http.StatusOK, "index.html", view.Page{})
}
