package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/barangay-bis/records-system/internal/api/metrics"
	"github.com/barangay-bis/records-system/internal/core/domain"
	"github.com/barangay-bis/records-system/internal/core/ports"
)

type AccountHandler struct {
	service ports.AccountService
}

func NewAccountHandler(service ports.AccountService) *AccountHandler {
	return &AccountHandler{service: service}
}

type createAccountRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role"     validate:"required,oneof=Admin Staff"`
}

type updateAccountRequest struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
}

// accountResponse is the external representation of an account. The password
// hash never appears in any response.
type accountResponse struct {
	UserID   int64       `json:"user_id"`
	Username string      `json:"username"`
	Role     domain.Role `json:"role"`
}

func toAccountResponse(a *domain.Account) accountResponse {
	return accountResponse{UserID: a.ID, Username: a.Username, Role: a.Role}
}

// List returns all accounts ordered by id.
//
// @Summary      List accounts
// @Tags         accounts
// @Produce      json
// @Success      200  {array}   accountResponse
// @Failure      500  {object}  map[string]string
// @Router       /accounts [get]
func (h *AccountHandler) List(c echo.Context) error {
	accounts, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}

	resp := make([]accountResponse, 0, len(accounts))
	for _, a := range accounts {
		resp = append(resp, toAccountResponse(a))
	}
	return c.JSON(http.StatusOK, resp)
}

// Get returns a single account by id.
//
// @Summary      Get an account
// @Tags         accounts
// @Produce      json
// @Param        id   path      int  true  "Account id"
// @Success      200  {object}  accountResponse
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /accounts/{id} [get]
func (h *AccountHandler) Get(c echo.Context) error {
	id, err := accountID(c)
	if err != nil {
		return err
	}

	account, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAccountResponse(account))
}

// Create registers a new account.
//
// @Summary      Create an account
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        body  body      createAccountRequest  true  "Account details"
// @Success      201   {object}  accountResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /accounts [post]
func (h *AccountHandler) Create(c echo.Context) error {
	var req createAccountRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	account, err := h.service.Create(c.Request().Context(), req.Username, req.Password, req.Role)
	if err != nil {
		return err
	}

	metrics.AccountMutationsTotal.WithLabelValues("create").Inc()
	return c.JSON(http.StatusCreated, toAccountResponse(account))
}

// Update modifies any non-empty subset of {username, password, role}. The
// response echoes the id and the changed fields, never the password.
//
// @Summary      Update an account
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        id    path      int                   true  "Account id"
// @Param        body  body      updateAccountRequest  true  "Fields to change"
// @Success      200   {object}  map[string]any
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /accounts/{id} [put]
func (h *AccountHandler) Update(c echo.Context) error {
	id, err := accountID(c)
	if err != nil {
		return err
	}

	var req updateAccountRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	in := ports.UpdateAccountInput{
		Username: req.Username,
		Password: req.Password,
		Role:     req.Role,
	}
	if err := h.service.Update(c.Request().Context(), id, in); err != nil {
		return err
	}

	metrics.AccountMutationsTotal.WithLabelValues("update").Inc()

	resp := map[string]any{"user_id": id}
	if req.Username != nil {
		resp["username"] = *req.Username
	}
	if req.Role != nil {
		resp["role"] = *req.Role
	}
	return c.JSON(http.StatusOK, resp)
}

// Delete removes an account by id.
//
// @Summary      Delete an account
// @Tags         accounts
// @Produce      json
// @Param        id   path      int  true  "Account id"
// @Success      200  {object}  map[string]int64
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /accounts/{id} [delete]
func (h *AccountHandler) Delete(c echo.Context) error {
	id, err := accountID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}

	metrics.AccountMutationsTotal.WithLabelValues("delete").Inc()
	return c.JSON(http.StatusOK, map[string]int64{"user_id": id})
}

// accountID parses the {id} path parameter.
func accountID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid account id")
	}
	return id, nil
}
