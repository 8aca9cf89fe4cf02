package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWT errors
var (
	ErrInvalidFormat = errors.New("invalid token format")
)

// TokenInfo is what the console can learn from a backend token without the
// signing key. None of it is trusted for authorization; the backend still
// verifies every request.
type TokenInfo struct {
	Subject   string
	Email     string
	Role      string
	ExpiresAt time.Time
}

// Claims defines the token content the backend is known to issue
type Claims struct {
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// InspectToken decodes the claims of a JWT without verifying its signature.
// Opaque (non-JWT) tokens yield ErrInvalidFormat.
func InspectToken(token string) (*TokenInfo, error) {
	token = strings.TrimSpace(token)
	if strings.Count(token, ".") != 2 {
		return nil, ErrInvalidFormat
	}

	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, ErrInvalidFormat
	}

	info := &TokenInfo{
		Subject: claims.Subject,
		Email:   claims.Email,
		Role:    claims.Role,
	}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
	}
	return info, nil
}

// SessionLifetime bounds maxTTL by the token's own expiry when it has one.
// A token already past its expiry yields 0.
func SessionLifetime(token string, maxTTL time.Duration, now time.Time) time.Duration {
	info, err := InspectToken(token)
	if err != nil || info.ExpiresAt.IsZero() {
		return maxTTL
	}

	remaining := info.ExpiresAt.Sub(now)
	if remaining <= 0 {
		return 0
	}
	if maxTTL > 0 && remaining > maxTTL {
		return maxTTL
	}
	return remaining
}

// ExtractBearerToken extracts the token from the Authorization header
func ExtractBearerToken(authHeader string) (string, error) {
	if authHeader == "" {
		return "", ErrInvalidFormat
	}
	parts := strings.SplitN(strings.TrimSpace(authHeader), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", ErrInvalidFormat
	}
	return strings.TrimSpace(parts[1]), nil
}
