package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tinymarket/market/internal/api/metrics"
	"github.com/tinymarket/market/internal/api/middleware"
	"github.com/tinymarket/market/internal/api/view"
	"github.com/tinymarket/market/internal/core/domain"
	"github.com/tinymarket/market/internal/core/ports"
)

const (
	msgUsernameTaken      = "Username already exists."
	msgCredentialsMissing = "Username and password are required."
	msgPasswordTooLong    = "Password must be at most 72 bytes."
	msgRegistered         = "Registration complete."
	msgLoginOK            = "Login successful!"
	msgLoginFailed        = "Invalid username or password."
	msgLoggedOut          = "You have been logged out."
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterForm handles GET /register.
func (h *AuthHandler) RegisterForm(c echo.Context) error {
	return render(c, http.StatusOK, "register.html", view.Page{Title: "Register"})
}

// Register handles POST /register. A taken username flashes a notice and
// sends the caller back to the form; success sends them to /login.
func (h *AuthHandler) Register(c echo.Context) error {
	var form credentialsForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	if err := c.Validate(&form); err != nil {
		return redirectWithFlash(c, "/register", msgCredentialsMissing)
	}

	_, err := h.authService.Register(c.Request().Context(), form.Username, form.Password)
	switch {
	case errors.Is(err, domain.ErrUserExists):
		return redirectWithFlash(c, "/register", msgUsernameTaken)
	case errors.Is(err, domain.ErrInvalidCredentials):
		return redirectWithFlash(c, "/register", msgCredentialsMissing)
	case errors.Is(err, domain.ErrPasswordTooLong):
		return redirectWithFlash(c, "/register", msgPasswordTooLong)
	case err != nil:
		return err
	}

	metrics.UsersRegisteredTotal.Inc()
	return redirectWithFlash(c, "/login", msgRegistered)
}

// LoginForm handles GET /login.
func (h *AuthHandler) LoginForm(c echo.Context) error {
	return render(c, http.StatusOK, "login.html", view.Page{Title: "Login"})
}

// Login handles POST /login. Every rejection uses the same message so the
// page does not reveal which factor failed.
func (h *AuthHandler) Login(c echo.Context) error {
	var form credentialsForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	if err := c.Validate(&form); err != nil {
		return h.loginFailed(c, "invalid")
	}

	user, err := h.authService.Login(c.Request().Context(), form.Username, form.Password)
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return h.loginFailed(c, "invalid")
	case errors.Is(err, domain.ErrTooManyAttempts):
		return h.loginFailed(c, "throttled")
	case err != nil:
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	middleware.CurrentSession(c).SetUser(user.ID)
	return redirectWithFlash(c, "/products", msgLoginOK)
}

func (h *AuthHandler) loginFailed(c echo.Context, result string) error {
	metrics.LoginsTotal.WithLabelValues(result).Inc()
	middleware.CurrentSession(c).AddFlash(msgLoginFailed)
	return render(c, http.StatusOK, "login.html", view.Page{Title: "Login"})
}

// Logout handles GET /logout. It always succeeds, session or not.
func (h *AuthHandler) Logout(c echo.Context) error {
	middleware.CurrentSession(c).ClearUser()
	return redirectWithFlash(c, "/", msgLoggedOut)
}
