package auth

import (
	"encoding/base64"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenService implements JWT issuance and verification. The signing key
// is configured as a base64 string and decoded once at construction; the
// token lifetime is configured in milliseconds.
type TokenService struct {
	signingKey []byte
	ttl        time.Duration
}

// NewTokenService creates a new token service from a base64-encoded secret
func NewTokenService(encodedSecret string, expirationMs int64) (*TokenService, error) {
	key, err := base64.StdEncoding.DecodeString(encodedSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to decode signing key: %w", err)
	}
	if expirationMs <= 0 {
		return nil, fmt.Errorf("token expiration must be positive, got %d", expirationMs)
	}
	return &TokenService{
		signingKey: key,
		ttl:        time.Duration(expirationMs) * time.Millisecond,
	}, nil
}

// Issue signs a new token whose subject is the given account identifier
func (ts *TokenService) Issue(subject string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ts.ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	signed, err := token.SignedString(ts.signingKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token, returning its subject. Any failure
// (malformed input, wrong signature, expired claims) yields ok=false; the
// caller never sees a parse error or a panic.
func (ts *TokenService) Verify(tokenString string) (string, bool) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Validate signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return ts.signingKey, nil
	})
	if err != nil || !token.Valid {
		return "", false
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", false
	}
	if claims.ExpiresAt != nil && claims.ExpiresAt.Time.Before(time.Now()) {
		return "", false
	}
	return claims.Subject, true
}
