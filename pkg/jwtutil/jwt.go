package jwtutil

import (
	"time"

	"techstock/pkg/config"

	"github.com/golang-jwt/jwt/v5"
)

var (
	secret          = []byte("secret-key")
	expirationHours = 24
)

// Initialize configures the signing key and token lifetime from configuration.
// Tokens are issued by the external auth service with the same key; this
// package only needs to mint tokens for tests and local tooling.
func Initialize(cfg *config.JWTConfig) {
	if cfg.SigningKey != "" {
		secret = []byte(cfg.SigningKey)
	}
	if cfg.ExpirationHours > 0 {
		expirationHours = cfg.ExpirationHours
	}
}

// UserClaims represents the JWT claims for user authentication
type UserClaims struct {
	Email    string `json:"email"`
	UserID   uint   `json:"user_id"`
	FullName string `json:"full_name,omitempty"`
	Role     string `json:"role,omitempty"` // owner or manager
	jwt.RegisteredClaims
}

// GenerateToken creates a JWT token with user and role information
func GenerateToken(email string, userID uint, fullName, role string) (string, error) {
	claims := UserClaims{
		Email:    email,
		UserID:   userID,
		FullName: fullName,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(expirationHours) * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ValidateToken validates and parses the JWT token
func ValidateToken(tokenString string) (*UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*UserClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, jwt.ErrSignatureInvalid
}
