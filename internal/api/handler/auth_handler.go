package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/devconnect/social-network/internal/api/metrics"
	"github.com/devconnect/social-network/internal/core/domain"
	"github.com/devconnect/social-network/internal/core/ports"
)

// AuthHandler handles registration, login, and the current-user lookup.
type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a new account and returns a token.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      200   {object}  tokenResponse
// @Failure      400   {object}  errorsResponse
// @Failure      500   {object}  map[string]string
// @Router       /api/user [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}

	_, token, err := h.authService.Register(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return errorList(c, http.StatusBadRequest, "user already exists")
		}
		return err
	}

	metrics.RegistrationsTotal.Inc()
	return c.JSON(http.StatusOK, tokenResponse{Token: token})
}

// Login authenticates a user and returns a token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  tokenResponse
// @Failure      400   {object}  errorsResponse
// @Failure      429   {object}  map[string]string
// @Router       /api/auth [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}

	token, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			return errorList(c, http.StatusBadRequest, "invalid credentials")
		case errors.Is(err, domain.ErrTooManyAttempts):
			metrics.LoginsTotal.WithLabelValues("throttled").Inc()
		}
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, tokenResponse{Token: token})
}

// Me returns the authenticated user's record, password hash omitted.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Param        x-auth-token  header    string  true  "Bearer token"
// @Success      200  {object}  domain.User
// @Failure      401  {object}  map[string]string
// @Router       /api/auth [get]
func (h *AuthHandler) Me(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	user, err := h.authService.CurrentUser(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}
