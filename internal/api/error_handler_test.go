package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/barangay-bis/records-system/internal/core/domain"
)

func TestHTTPErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{"validation", fmt.Errorf("%w: username is required", domain.ErrInvalidInput), http.StatusBadRequest, "invalid input: username is required"},
		{"not found", domain.ErrAccountNotFound, http.StatusNotFound, "account not found"},
		{"conflict", domain.ErrUsernameTaken, http.StatusConflict, "username already exists"},
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid username or password"},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, "access forbidden"},
		{"wrapped store failure", fmt.Errorf("list accounts: %w", errors.New("connection reset")), http.StatusInternalServerError, "internal server error"},
		{"echo error", echo.NewHTTPError(http.StatusTooManyRequests, "too many login attempts"), http.StatusTooManyRequests, "too many login attempts"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			NewHTTPErrorHandler(zerolog.Nop())(tc.err, c)

			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}

			var resp map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if resp["error"] != tc.msg {
				t.Fatalf("expected %q, got %q", tc.msg, resp["error"])
			}
		})
	}
}

// Internal failures must never leak storage detail to the client.
func TestHTTPErrorHandler_NoDetailLeak(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(errors.New("pq: relation accounts does not exist"), c)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if body := rec.Body.String(); body != `{"error":"internal server error"}`+"\n" {
		t.Fatalf("unexpected body: %q", body)
	}
}
