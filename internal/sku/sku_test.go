package sku

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestLocalGenerateFormat(t *testing.T) {
	g := NewLocal()
	got, err := g.Generate("Laptop", "HP", "EliteBook 840 G6")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	parts := strings.Split(got, "-")
	if len(parts) != 4 {
		t.Fatalf("expected 4 segments, got %q", got)
	}
	if parts[0] != "LAP" || parts[1] != "HP" || parts[2] != "ELI" {
		t.Fatalf("unexpected prefix segments in %q", got)
	}
	if len(parts[3]) != 6 {
		t.Fatalf("expected 6-char suffix, got %q", parts[3])
	}
}

func TestLocalGenerateUnique(t *testing.T) {
	g := NewLocal()
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		s, err := g.Generate("Laptop", "HP", "EliteBook")
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if seen[s] {
			t.Fatalf("duplicate sku %q", s)
		}
		seen[s] = true
	}
}

func TestFragmentEmptyAndShort(t *testing.T) {
	g := NewLocal()
	got, err := g.Generate("", "HP", "X")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !strings.HasPrefix(got, "XXX-HP-X-") {
		t.Fatalf("expected XXX-HP-X- prefix, got %q", got)
	}
}

func TestFallbackSKU(t *testing.T) {
	now := time.UnixMilli(1700000000000)
	if got := Fallback(now); got != "SKU-1700000000000" {
		t.Fatalf("unexpected fallback sku %q", got)
	}
}

func TestClientGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/sku/generate" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		var req map[string]string
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if req["brand"] != "HP" {
			t.Fatalf("unexpected brand %q", req["brand"])
		}
		json.NewEncoder(w).Encode(map[string]string{"sku": "LAP-HP-ELI-REMOTE"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 2*time.Second, zap.NewNop())
	got, err := c.Generate("Laptop", "HP", "EliteBook")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got != "LAP-HP-ELI-REMOTE" {
		t.Fatalf("unexpected sku %q", got)
	}
}

func TestClientGenerateErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 2*time.Second, zap.NewNop())
	if _, err := c.Generate("Laptop", "HP", "EliteBook"); err == nil {
		t.Fatal("expected error from 500 response")
	}
}
