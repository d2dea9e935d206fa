package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"techstock/internal/model"
	"techstock/pkg/jwtutil"

	"github.com/labstack/echo/v4"
)

func okHandler(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func doRequest(t *testing.T, h echo.HandlerFunc, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := h(c); err != nil {
		t.Fatalf("handler returned err: %v", err)
	}
	return rec
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	rec := doRequest(t, AuthMiddleware(okHandler), "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddlewareBadFormat(t *testing.T) {
	rec := doRequest(t, AuthMiddleware(okHandler), "Token abc")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	rec := doRequest(t, AuthMiddleware(okHandler), "Bearer not-a-token")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	token, err := jwtutil.GenerateToken("owner@techstock.local", 1, "Owner", model.RoleOwner)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	h := AuthMiddleware(func(c echo.Context) error {
		called = true
		if id, ok := GetUserIDFromContext(c); !ok || id != 1 {
			t.Fatalf("user_id not set, got %v %v", id, ok)
		}
		if role, ok := GetRoleFromContext(c); !ok || role != model.RoleOwner {
			t.Fatalf("role not set, got %v %v", role, ok)
		}
		return c.String(http.StatusOK, "ok")
	})
	if err := h(c); err != nil {
		t.Fatalf("handler err: %v", err)
	}
	if !called {
		t.Fatal("next handler not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRequireOwnerDeniesManager(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_role", model.RoleManager)

	if err := RequireOwner(okHandler)(c); err != nil {
		t.Fatalf("handler err: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRequireOwnerAllowsOwner(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_role", model.RoleOwner)

	if err := RequireOwner(okHandler)(c); err != nil {
		t.Fatalf("handler err: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
