package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func updateRoleRequest(t *testing.T, userID, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("user_id")
	c.SetParamValues(userID)
	if err := UpdateUserRole(c); err != nil {
		t.Fatalf("handler err: %v", err)
	}
	return rec
}

func TestUpdateUserRoleRejectsBadUserID(t *testing.T) {
	rec := updateRoleRequest(t, "not-a-number", `{"role": "owner"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestUpdateUserRoleRejectsUnknownRole(t *testing.T) {
	rec := updateRoleRequest(t, "7", `{"role": "admin"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown role, got %d", rec.Code)
	}
}
