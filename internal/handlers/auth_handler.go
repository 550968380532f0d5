package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/SimpnicServerTeam/packages-auth/internal/models"
	"github.com/SimpnicServerTeam/packages-auth/internal/service"
)

// AuthHandler handles signup and login HTTP requests
type AuthHandler struct {
	AuthService service.AuthGenerator
	cookieName  string
	tokenTTL    time.Duration
}

// NewAuthHandler creates a new AuthHandler. The issued token is also set as
// cookieName so browser clients can call protected routes without a header.
func NewAuthHandler(authService service.AuthGenerator, cookieName string, tokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		AuthService: authService,
		cookieName:  cookieName,
		tokenTTL:    tokenTTL,
	}
}

func (h *AuthHandler) setTokenCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     h.cookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.tokenTTL.Seconds()),
		HttpOnly: true,
		Secure:   c.IsTLS(),
		SameSite: http.SameSiteLaxMode,
	})
}

// Signup handles user registration requests
func (h *AuthHandler) Signup(c echo.Context) error {
	req := new(models.CredentialsRequest)
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	result, err := h.AuthService.Signup(c.Request().Context(), *req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			return echo.NewHTTPError(http.StatusBadRequest, "Username and password are required")
		case errors.Is(err, service.ErrUsernameTaken):
			return echo.NewHTTPError(http.StatusConflict, "Username already exists")
		}
		log.Error().Err(err).Str("username", req.Username).Msg("Registration failed")
		return echo.NewHTTPError(http.StatusInternalServerError, "Registration failed")
	}

	h.setTokenCookie(c, result.Token)
	return c.JSON(http.StatusCreated, models.AuthResponse{
		Message:  "User created successfully",
		Username: result.Username,
		Token:    result.Token,
	})
}

// Login handles password login requests. Unknown users and wrong passwords get the same 401.
func (h *AuthHandler) Login(c echo.Context) error {
	req := new(models.CredentialsRequest)
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	result, err := h.AuthService.Login(c.Request().Context(), *req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid username or password")
		case errors.Is(err, service.ErrValidation):
			return echo.NewHTTPError(http.StatusBadRequest, "Username and password are required")
		}
		log.Error().Err(err).Str("username", req.Username).Msg("Login failed")
		return echo.NewHTTPError(http.StatusInternalServerError, "Login failed")
	}

	h.setTokenCookie(c, result.Token)
	return c.JSON(http.StatusOK, models.AuthResponse{
		Message:  "Login successful",
		Username: result.Username,
		Token:    result.Token,
	})
}
