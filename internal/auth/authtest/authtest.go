// Package authtest signs session tokens for tests.
package authtest

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/festy23/pitmstr/internal/auth"
)

// Secret is the HS256 key shared by Verifier and Token.
const Secret = "test-secret"

// Verifier returns an HS256 verifier keyed with Secret.
func Verifier(t *testing.T) *auth.Verifier {
	t.Helper()
	v, err := auth.NewVerifier("", Secret)
	require.NoError(t, err)
	return v
}

// Token signs a one hour session token for userID with metadata.
func Token(t *testing.T, userID string, metadata auth.Metadata) string {
	t.Helper()
	claims := auth.Claims{
		Metadata: metadata,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(Secret))
	require.NoError(t, err)
	return signed
}

// Bearer returns an Authorization header value for a user with role.
func Bearer(t *testing.T, userID, role string) string {
	t.Helper()
	return "Bearer " + Token(t, userID, auth.Metadata{Role: role})
}
