package jwtutil

import (
	"testing"

	"techstock/pkg/config"
)

func TestGenerateAndValidateToken(t *testing.T) {
	Initialize(&config.JWTConfig{SigningKey: "test-key", ExpirationHours: 1})

	token, err := GenerateToken("owner@techstock.local", 7, "Owner Person", "owner")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != 7 || claims.Email != "owner@techstock.local" {
		t.Fatalf("claims: %+v", claims)
	}
	if claims.Role != "owner" {
		t.Fatalf("role: %s", claims.Role)
	}
}

func TestValidateTokenWrongKey(t *testing.T) {
	Initialize(&config.JWTConfig{SigningKey: "key-one", ExpirationHours: 1})
	token, err := GenerateToken("m@techstock.local", 2, "Manager", "manager")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	Initialize(&config.JWTConfig{SigningKey: "key-two", ExpirationHours: 1})
	if _, err := ValidateToken(token); err == nil {
		t.Fatal("expected validation failure with different signing key")
	}
}

func TestValidateTokenGarbage(t *testing.T) {
	Initialize(&config.JWTConfig{SigningKey: "test-key", ExpirationHours: 1})
	if _, err := ValidateToken("not.a.jwt"); err == nil {
		t.Fatal("expected error for malformed token")
	}
}
