package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func TestRequestIDGeneratedWhenAbsent(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := RequestIDMiddleware(okHandler)(c); err != nil {
		t.Fatalf("handler err: %v", err)
	}

	id := rec.Header().Get("X-Request-ID")
	if id == "" {
		t.Fatal("expected a generated request ID")
	}
	if ctxID, _ := c.Get("request_id").(string); ctxID != id {
		t.Fatalf("context request_id %q does not match header %q", ctxID, id)
	}
	if _, ok := c.Get("logger").(*zap.Logger); !ok {
		t.Fatal("expected request-scoped logger in context")
	}
}

func TestRequestIDInboundPreserved(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "upstream-42")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := RequestIDMiddleware(okHandler)(c); err != nil {
		t.Fatalf("handler err: %v", err)
	}

	if got := rec.Header().Get("X-Request-ID"); got != "upstream-42" {
		t.Fatalf("inbound request ID overwritten: %q", got)
	}
	if ctxID, _ := c.Get("request_id").(string); ctxID != "upstream-42" {
		t.Fatalf("context request_id %q", ctxID)
	}
}
