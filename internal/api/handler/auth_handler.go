package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/barangay-bis/records-system/internal/api/metrics"
	"github.com/barangay-bis/records-system/internal/api/middleware"
	"github.com/barangay-bis/records-system/internal/core/domain"
	"github.com/barangay-bis/records-system/internal/core/ports"
)

type AuthHandler struct {
	service ports.AccountService
}

func NewAuthHandler(service ports.AccountService) *AuthHandler {
	return &AuthHandler{service: service}
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token string          `json:"token"`
	User  accountResponse `json:"user"`
}

// Login authenticates a user and returns a signed session token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tok, account, err := h.service.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		} else if !errors.Is(err, domain.ErrInvalidInput) {
			metrics.LoginsTotal.WithLabelValues("error").Inc()
		}
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, loginResponse{
		Token: tok,
		User:  toAccountResponse(account),
	})
}

// Me returns the identity carried by the verified bearer token.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Success      200  {object}  accountResponse
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	return c.JSON(http.StatusOK, accountResponse{
		UserID:   claims.AccountID,
		Username: claims.Username,
		Role:     claims.Role,
	})
}

// Logout acknowledges a logout. Sessions are stateless, so there is nothing
// to invalidate server-side; the client discards its token.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"message": "logged out successfully"})
}
