package auth

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

// Token errors
var (
	ErrInvalidFormat = errors.New("invalid token format")
)

// NewSessionToken generates an opaque session token. The token carries no
// claims; it is only meaningful when resolved against the session store.
func NewSessionToken() string {
	return uuid.New().String()
}

// ExtractBearerToken extracts the token from an Authorization header value
func ExtractBearerToken(authHeader string) (string, error) {
	if authHeader == "" {
		return "", ErrInvalidFormat
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", ErrInvalidFormat
	}

	return parts[1], nil
}
