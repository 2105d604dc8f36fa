package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tinymarket/market/internal/api/middleware"
	"github.com/tinymarket/market/internal/api/view"
	"github.com/tinymarket/market/internal/core/domain"
	"github.com/tinymarket/market/internal/core/ports"
)

const msgProfileUpdated = "Profile updated."

type ProfileHandler struct {
	service ports.ProfileService
}

func NewProfileHandler(service ports.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// Show handles GET /profile (session required).
func (h *ProfileHandler) Show(c echo.Context) error {
	user, err := h.service.GetProfile(c.Request().Context(), sessionUserID(c))
	if errors.Is(err, domain.ErrUserNotFound) {
		// The cookie names an account that no longer exists.
		middleware.CurrentSession(c).ClearUser()
		return redirectWithFlash(c, "/login", middleware.LoginRequiredMessage)
	}
	if err != nil {
		return err
	}
	return render(c, http.StatusOK, "profile.html", view.Page{Title: "Profile", User: user})
}

// Update handles POST /profile (session required).
func (h *ProfileHandler) Update(c echo.Context) error {
	var form profileForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}

	if err := h.service.UpdateBio(c.Request().Context(), sessionUserID(c), form.Bio); err != nil {
		return err
	}
	return redirectWithFlash(c, "/profile", msgProfileUpdated)
}
